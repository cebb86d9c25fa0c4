package service

import (
	"context"
	"encoding/json"
	"fmt"
	"path"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"blog-backend/internal/domains/blog"
	"blog-backend/internal/infrastructure/storage"
	"blog-backend/internal/shared"
)

// ObjectStorage is the slice of the image store this service needs.
type ObjectStorage interface {
	Upload(ctx context.Context, key string, data []byte, contentType string) (string, error)
	KeyFromURL(url string) string
}

// TaskEnqueuer queues background work. *asynq.Client satisfies it.
type TaskEnqueuer interface {
	Enqueue(task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

type blogService struct {
	repo      blog.Repository
	store     ObjectStorage
	tasks     TaskEnqueuer
	processor *storage.ImageProcessor
}

// NewBlogService wires the post domain. tasks may be nil (tests, or a
// deployment without the worker); background jobs are then skipped.
func NewBlogService(repo blog.Repository, store ObjectStorage, tasks TaskEnqueuer) blog.Service {
	return &blogService{
		repo:      repo,
		store:     store,
		tasks:     tasks,
		processor: storage.NewImageProcessor(),
	}
}

func (s *blogService) Create(ctx context.Context, authorID uuid.UUID, req blog.CreateBlogRequest, cover *shared.ImageUpload) (*blog.Blog, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	tags, err := req.ParsedTags()
	if err != nil {
		return nil, blog.ErrInvalidTags
	}

	now := time.Now()
	b := &blog.Blog{
		ID:        uuid.New(),
		Title:     req.Title,
		Excerpt:   req.Excerpt,
		Content:   req.Content,
		Category:  req.Category,
		Tags:      tags,
		Author:    authorID, // from the verified token, never the body
		Status:    blog.Status(req.Status),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if b.Category == "" {
		b.Category = blog.DefaultCategory
	}
	if b.Status == "" {
		b.Status = blog.StatusPublished
	}

	var coverKey string
	if cover != nil {
		var url string
		coverKey, url, err = s.uploadCover(ctx, b.ID, cover)
		if err != nil {
			return nil, err
		}
		b.CoverImage = url
	}

	if err := s.repo.Create(ctx, b); err != nil {
		return nil, err
	}

	if coverKey != "" {
		s.enqueue(shared.TypeProcessCoverImage, shared.ProcessCoverPayload{
			BlogID:   b.ID.String(),
			CoverKey: coverKey,
		})
	}

	return b, nil
}

func (s *blogService) GetPublished(ctx context.Context) ([]blog.Blog, error) {
	return s.repo.ListPublished(ctx)
}

func (s *blogService) GetByAuthor(ctx context.Context, authorID uuid.UUID) ([]blog.Blog, error) {
	return s.repo.ListByAuthor(ctx, authorID)
}

// GetByID returns the post and bumps its view counter. The increment is
// a single atomic UPDATE at the store; a failed bump does not fail the
// read.
func (s *blogService) GetByID(ctx context.Context, id uuid.UUID) (*blog.Blog, error) {
	b, err := s.repo.FindByIDWithAuthor(ctx, id)
	if err != nil {
		return nil, err
	}

	views, err := s.repo.IncrementViews(ctx, id)
	if err != nil {
		log.Warn().Err(err).Str("blog_id", id.String()).Msg("View counter increment failed")
		return b, nil
	}
	b.Views = views

	return b, nil
}

func (s *blogService) Update(ctx context.Context, id, authorID uuid.UUID, req blog.UpdateBlogRequest) (*blog.Blog, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	// 404 before the ownership guard: a missing post is not an
	// authorization question.
	b, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !b.IsOwnedBy(authorID) {
		return nil, blog.ErrNotOwner
	}

	if req.Title != nil {
		b.Title = *req.Title
	}
	if req.Excerpt != nil {
		b.Excerpt = *req.Excerpt
	}
	if req.Content != nil {
		b.Content = *req.Content
	}
	if req.Category != nil {
		b.Category = *req.Category
	}
	if req.Tags != nil {
		b.Tags = *req.Tags
	}
	if req.Status != nil {
		b.Status = blog.Status(*req.Status)
	}
	b.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, b); err != nil {
		return nil, err
	}

	return b, nil
}

func (s *blogService) Delete(ctx context.Context, id, authorID uuid.UUID) error {
	b, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if !b.IsOwnedBy(authorID) {
		return blog.ErrNotOwner
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	if b.CoverImage != "" {
		s.enqueue(shared.TypeDeleteBlogImages, shared.DeleteBlogImagesPayload{
			BlogID: b.ID.String(),
		})
	}

	return nil
}

// uploadCover validates the upload and stores the original; the worker
// renders the resized variants afterwards.
func (s *blogService) uploadCover(ctx context.Context, blogID uuid.UUID, cover *shared.ImageUpload) (key, url string, err error) {
	if err := s.processor.ValidateImage(cover.Data); err != nil {
		return "", "", fmt.Errorf("%w: %v", blog.ErrInvalidImage, err)
	}

	key = path.Join("blog_covers", blogID.String(), "original.jpg")
	url, err = s.store.Upload(ctx, key, cover.Data, cover.ContentType)
	if err != nil {
		return "", "", fmt.Errorf("upload cover: %w", err)
	}
	return key, url, nil
}

// enqueue hands a job to the worker. Best-effort: the API response does
// not depend on background processing.
func (s *blogService) enqueue(taskType string, payload interface{}) {
	if s.tasks == nil {
		return
	}

	data, err := json.Marshal(payload)
	if err != nil {
		log.Error().Err(err).Str("task", taskType).Msg("Failed to marshal task payload")
		return
	}

	if _, err := s.tasks.Enqueue(asynq.NewTask(taskType, data), asynq.Queue(shared.QueueLow)); err != nil {
		log.Warn().Err(err).Str("task", taskType).Msg("Failed to enqueue task")
	}
}
