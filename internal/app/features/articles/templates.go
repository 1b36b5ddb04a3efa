// internal/app/features/articles/templates.go
package articles

import (
	"embed"

	"github.com/dalemusser/waffle/pantry/templates"
)

//go:embed templates/*.gohtml
var FS embed.FS

func init() {
	templates.Register(templates.Set{
		Name:     "articles",
		FS:       FS,
		Patterns: []string{"templates/*.gohtml"},
	})
}
