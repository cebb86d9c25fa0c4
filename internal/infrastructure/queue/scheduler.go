package queue

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"

	"blog-backend/internal/shared"
	"blog-backend/pkg/logger"
)

// Scheduler registers the periodic jobs. It runs inside the worker
// binary, next to the task server.
type Scheduler struct {
	scheduler *asynq.Scheduler
}

func NewScheduler(redisAddress string) *Scheduler {
	scheduler := asynq.NewScheduler(
		asynq.RedisClientOpt{Addr: redisAddress},
		&asynq.SchedulerOpts{
			Location: time.UTC,
			LogLevel: asynq.InfoLevel,
		},
	)

	return &Scheduler{scheduler: scheduler}
}

// RegisterJobs wires every cron entry. Currently just the orphan-image
// sweep; it runs nightly at 3 AM, a low-traffic hour.
func (s *Scheduler) RegisterJobs() error {
	logger.Debug("Registering scheduled jobs")

	if err := s.registerSweepOrphanImagesJob(); err != nil {
		return err
	}
	return nil
}

func (s *Scheduler) registerSweepOrphanImagesJob() error {
	payload, err := json.Marshal(struct{}{})
	if err != nil {
		return err
	}

	task := asynq.NewTask(shared.TypeSweepOrphanImages, payload)

	_, err = s.scheduler.Register(
		"0 3 * * *",
		task,
		asynq.Queue(shared.QueueLow),
		asynq.MaxRetry(1),
		asynq.Timeout(10*time.Minute),
	)
	if err != nil {
		logger.Error("Failed to register SweepOrphanImages job", err)
		return err
	}

	logger.Info("Registered SweepOrphanImages: daily at 3 AM", nil)
	return nil
}

func (s *Scheduler) Start() error {
	return s.scheduler.Run()
}

func (s *Scheduler) Shutdown() {
	s.scheduler.Shutdown()
}
