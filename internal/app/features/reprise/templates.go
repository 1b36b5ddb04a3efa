// internal/app/features/reprise/templates.go
package reprise

import (
	"embed"

	"github.com/dalemusser/waffle/pantry/templates"
)

//go:embed templates/*.gohtml
var FS embed.FS

func init() {
	templates.Register(templates.Set{
		Name:     "reprise",
		FS:       FS,
		Patterns: []string{"templates/*.gohtml"},
	})
}
