// Package jobs provides scheduled background tasks for the ordering system.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3.
//
// # Available Jobs
//
// 1. SessionJanitorJob - Periodically prunes conversation sessions whose idle
// timeout has elapsed. Expiry is still enforced at access time; the janitor
// only reclaims memory held by sessions nobody will ever touch again. Stores
// with native TTL expiry make this sweep a no-op.
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	jobManager := jobs.NewJobManager(store, idleTimeout, logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	defer jobManager.StopAll()
package jobs
