// internal/app/bootstrap/hooks.go
package bootstrap

import (
	"github.com/dalemusser/waffle/app"
)

// Hooks wires LUNICAR into the WAFFLE lifecycle. app.Run calls them in
// order, from configuration loading to graceful shutdown.
var Hooks = app.Hooks[AppConfig, DBDeps]{
	Name:           "lunicar",      // used only for logging/diagnostics
	LoadConfig:     LoadConfig,     // load core + app config
	ValidateConfig: ValidateConfig, // backend, storage, limits and secrets
	ConnectDB:      ConnectDB,      // content backend, upload storage, mailer
	EnsureSchema:   EnsureSchema,   // Mongo validator/indexes, content seeding
	Startup:        Startup,        // shared templates, admin guard, wizard sessions, task runner
	BuildHandler:   BuildHandler,   // chi router + middleware stack
	Shutdown:       Shutdown,       // stop jobs, flush emails, disconnect Mongo
}
