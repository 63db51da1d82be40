package jobs

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"coffeeshop/internal/core/ports"
)

// SessionJanitorJob periodically removes conversation sessions whose idle
// timeout has elapsed. Access-time expiry stays the authoritative check; the
// sweep only reclaims sessions that will never be touched again.
type SessionJanitorJob struct {
	store       ports.SessionStore
	idleTimeout time.Duration
	cron        *cron.Cron
	logger      *zap.Logger
}

// NewSessionJanitorJob creates a janitor that sweeps the given store every
// minute.
func NewSessionJanitorJob(store ports.SessionStore, idleTimeout time.Duration, logger *zap.Logger) *SessionJanitorJob {
	return &SessionJanitorJob{
		store:       store,
		idleTimeout: idleTimeout,
		cron:        cron.New(),
		logger:      logger.With(zap.String("component", "session_janitor_job")),
	}
}

// Start begins the janitor sweep, running once a minute.
func (j *SessionJanitorJob) Start() error {
	_, err := j.cron.AddFunc("* * * * *", func() {
		pruned, pruneErr := j.store.PruneExpired(context.Background(), time.Now(), j.idleTimeout)
		if pruneErr != nil {
			j.logger.Error("session sweep failed", zap.Error(pruneErr))
			return
		}
		if pruned > 0 {
			j.logger.Info("pruned expired sessions", zap.Int("count", pruned))
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.Info("session janitor started (running every minute)")
	return nil
}

// Stop stops the janitor sweep.
func (j *SessionJanitorJob) Stop() {
	j.cron.Stop()
	j.logger.Info("session janitor stopped")
}
