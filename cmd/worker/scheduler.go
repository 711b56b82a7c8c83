package main

import (
	"log"

	"hoodlab-backend/internal/config"
	"hoodlab-backend/internal/infrastructure/queue"
	"hoodlab-backend/pkg/logger"
)

// asynqScheduler wraps queue.Scheduler with graceful shutdown
type asynqScheduler struct {
	*queue.Scheduler
}

// setupScheduler creates and configures the scheduler
func setupScheduler(cfg *config.Config) *asynqScheduler {
	scheduler := queue.NewScheduler(cfg.Redis.Host, cfg.Redis.Password, cfg.Redis.DB)

	if err := scheduler.RegisterJobs(); err != nil {
		log.Fatalf("Scheduler failed to register jobs: %v", err)
	}

	go func() {
		logger.Info("scheduler starting", nil)
		if err := scheduler.Start(); err != nil {
			log.Fatalf("Scheduler failed: %v", err)
		}
	}()

	return &asynqScheduler{Scheduler: scheduler}
}

// Shutdown gracefully shuts down the scheduler
func (s *asynqScheduler) Shutdown() {
	logger.Info("scheduler shutting down", nil)
	s.Scheduler.Shutdown()
}
