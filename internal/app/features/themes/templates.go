// internal/app/features/themes/templates.go
package themes

import (
	"embed"

	"github.com/dalemusser/waffle/pantry/templates"
)

//go:embed templates/*.gohtml
var FS embed.FS

func init() {
	templates.Register(templates.Set{
		Name:     "themes",
		FS:       FS,
		Patterns: []string{"templates/*.gohtml"},
	})
}
