// internal/app/features/errors/templates.go
package errors

import (
	"embed"

	"github.com/dalemusser/waffle/pantry/templates"
)

//go:embed templates/not_found.gohtml templates/internal.gohtml
var templatesFS embed.FS

func init() {
	templates.Register(templates.Set{
		Name:     "errors",
		FS:       templatesFS,
		Patterns: []string{"templates/not_found.gohtml", "templates/internal.gohtml"},
	})
}
