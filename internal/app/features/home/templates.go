// internal/app/features/home/templates.go
package home

import (
	"embed"

	"github.com/dalemusser/waffle/pantry/templates"
)

//go:embed templates/index.gohtml
var templatesFS embed.FS

func init() {
	templates.Register(templates.Set{
		Name:     "home",
		FS:       templatesFS,
		Patterns: []string{"templates/*.gohtml"},
	})
}
