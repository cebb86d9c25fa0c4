package main

import (
	"blog-backend/internal/infrastructure/queue"
	"blog-backend/pkg/logger"
)

// asynqScheduler wraps queue.Scheduler for the worker lifecycle.
type asynqScheduler struct {
	*queue.Scheduler
}

func setupScheduler(redisAddr string) *asynqScheduler {
	scheduler := queue.NewScheduler(redisAddr)

	if err := scheduler.RegisterJobs(); err != nil {
		logger.Fatal("Failed to register scheduled jobs", err)
	}

	go func() {
		logger.Info("Scheduler starting", nil)
		if err := scheduler.Start(); err != nil {
			logger.Fatal("Scheduler failed", err)
		}
	}()

	return &asynqScheduler{Scheduler: scheduler}
}

func (s *asynqScheduler) Shutdown() {
	logger.Info("Scheduler shutting down", nil)
	s.Scheduler.Shutdown()
	logger.Info("Scheduler stopped", nil)
}
