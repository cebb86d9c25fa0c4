package main

import (
	"github.com/hibiken/asynq"

	blogJob "blog-backend/internal/domains/blog/job"
	"blog-backend/internal/shared"
	"blog-backend/pkg/container"
)

// HandlerRegistry holds every job handler the worker serves.
type HandlerRegistry struct {
	processCover *blogJob.ProcessCoverHandler
	deleteImages *blogJob.DeleteImagesHandler
	sweepOrphans *blogJob.SweepOrphansHandler
}

func initializeHandlers(c *container.Container) *HandlerRegistry {
	return &HandlerRegistry{
		processCover: blogJob.NewProcessCoverHandler(c.Storage),
		deleteImages: blogJob.NewDeleteImagesHandler(c.Storage),
		sweepOrphans: blogJob.NewSweepOrphansHandler(c.BlogRepo, c.Storage),
	}
}

func (h *HandlerRegistry) RegisterHandlers(mux *asynq.ServeMux) {
	mux.HandleFunc(shared.TypeProcessCoverImage, h.processCover.ProcessTask)
	mux.HandleFunc(shared.TypeDeleteBlogImages, h.deleteImages.ProcessTask)
	mux.HandleFunc(shared.TypeSweepOrphanImages, h.sweepOrphans.ProcessTask)
}
