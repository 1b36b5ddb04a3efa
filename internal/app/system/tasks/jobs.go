// internal/app/system/tasks/jobs.go
package tasks

import (
	"context"
	"time"

	"github.com/lunicar/lunicar/internal/app/system/timeouts"
	"go.uber.org/zap"
)

// Sweeper evicts expired admin state. Implemented by adminauth.Guard.
type Sweeper interface {
	Sweep() (sessions, attempts int)
}

// AdminSweepJob creates a job that evicts idle admin sessions and login
// attempt records whose lockout has elapsed.
func AdminSweepJob(s Sweeper, interval time.Duration, logger *zap.Logger) Job {
	return Job{
		Name:     "admin-sweep",
		Interval: interval,
		Run: func(ctx context.Context) error {
			sessions, attempts := s.Sweep()
			if sessions > 0 || attempts > 0 {
				logger.Info("swept admin state",
					zap.Int("sessions", sessions),
					zap.Int("attempts", attempts))
			}
			return nil
		},
	}
}

// FileSweeper deletes stored sessions idle for longer than maxAge.
// Implemented by wizard.SessionStore.
type FileSweeper interface {
	Sweep(now time.Time, maxAge time.Duration) (int, error)
}

// WizardSessionSweepJob creates a job that deletes abandoned wizard
// session files.
func WizardSessionSweepJob(s FileSweeper, interval, maxAge time.Duration, now func() time.Time, logger *zap.Logger) Job {
	return Job{
		Name:     "wizard-session-sweep",
		Interval: interval,
		Run: func(ctx context.Context) error {
			n, err := s.Sweep(now(), maxAge)
			if err != nil {
				return err
			}
			if n > 0 {
				logger.Info("swept wizard sessions", zap.Int("files", n))
			}
			return nil
		},
	}
}

// Pinger is a backend health probe.
type Pinger interface {
	Ping(ctx context.Context) error
}

// BackendProbeJob creates a job that pings the content backend and logs
// when it becomes unreachable or recovers.
func BackendProbeJob(p Pinger, interval time.Duration, logger *zap.Logger) Job {
	healthy := true
	return Job{
		Name:     "content-backend-probe",
		Interval: interval,
		Run: func(ctx context.Context) error {
			pctx, cancel := timeouts.WithTimeout(ctx, timeouts.Ping(), logger, "content backend ping")
			defer cancel()
			err := p.Ping(pctx)
			switch {
			case err != nil && healthy:
				healthy = false
				logger.Warn("content backend unreachable", zap.Error(err))
			case err == nil && !healthy:
				healthy = true
				logger.Info("content backend reachable again")
			}
			return nil
		},
	}
}
