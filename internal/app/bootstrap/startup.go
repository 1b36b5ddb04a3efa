// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"
	"time"

	"github.com/dalemusser/waffle/config"
	"github.com/lunicar/lunicar/internal/app/resources"
	"github.com/lunicar/lunicar/internal/app/store/adminsessions"
	"github.com/lunicar/lunicar/internal/app/store/ratelimit"
	"github.com/lunicar/lunicar/internal/app/system/adminauth"
	"github.com/lunicar/lunicar/internal/app/system/authutil"
	"github.com/lunicar/lunicar/internal/app/system/seo"
	"github.com/lunicar/lunicar/internal/app/system/tasks"
	"github.com/lunicar/lunicar/internal/app/system/timeouts"
	"github.com/lunicar/lunicar/internal/app/system/viewdata"
	"github.com/lunicar/lunicar/internal/app/system/wizard"
	"github.com/lunicar/lunicar/internal/domain/models"
	"go.uber.org/zap"
)

// Process-wide state built in Startup: the admin guard and the wizard
// session store are shared by their routes and sweep jobs, and the runner
// is stopped in Shutdown.
var (
	adminGuard     *adminauth.Guard
	wizardSessions *wizard.SessionStore
	taskRunner     *tasks.Runner
)

// wizardSweepInterval is how often abandoned wizard session files are
// deleted.
const wizardSweepInterval = time.Hour

// Startup applies the configured timeouts, registers shared templates,
// sets the site identity, builds the admin guard and the wizard session
// store and starts the background jobs.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	timeouts.Configure(timeouts.Config{
		Short:   appCfg.TimeoutShort,
		Long:    appCfg.TimeoutLong,
		Request: appCfg.TimeoutRequest,
	})
	resources.LoadSharedTemplates()
	viewdata.Init(seo.NewSite(models.DefaultSiteName, appCfg.SiteURL))

	adminGuard = adminauth.New(
		adminsessions.New(appCfg.AdminSessionIdle, time.Now),
		ratelimit.New(appCfg.AdminLoginAttempts, appCfg.AdminLoginLockout, time.Now),
		authutil.Matcher(appCfg.AdminPassword, appCfg.AdminPasswordHash),
		time.Now,
		logger,
	)

	var err error
	wizardSessions, err = wizard.NewSessionStore(appCfg.SessionKey, appCfg.SessionName, appCfg.SessionDir, coreCfg.Env == "prod", logger)
	if err != nil {
		logger.Error("wizard session store init failed", zap.Error(err))
		return err
	}

	taskRunner = tasks.New(logger)
	taskRunner.Register(tasks.AdminSweepJob(adminGuard, appCfg.AdminSweepInterval, logger))
	taskRunner.Register(tasks.BackendProbeJob(deps.Content, appCfg.BackendProbeInterval, logger))
	taskRunner.Register(tasks.WizardSessionSweepJob(wizardSessions, wizardSweepInterval, wizard.SessionMaxAge, time.Now, logger))
	taskRunner.Start()

	return nil
}
