package jobs

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"coffeeshop/internal/core/ports"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	sessionJanitorJob *SessionJanitorJob
}

// NewJobManager creates a new job manager with all required jobs.
func NewJobManager(store ports.SessionStore, idleTimeout time.Duration, logger *zap.Logger) *JobManager {
	return &JobManager{
		sessionJanitorJob: NewSessionJanitorJob(store, idleTimeout, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.sessionJanitorJob.Start(); err != nil {
		return fmt.Errorf("failed to start session janitor job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.sessionJanitorJob.Stop()
}
