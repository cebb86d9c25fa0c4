package job

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"blog-backend/internal/domains/blog"
)

// SweepStorage adds the listing the orphan sweep needs on top of the
// variant operations.
type SweepStorage interface {
	VariantStorage
	ListKeys(ctx context.Context, prefix string) ([]string, error)
}

// SweepOrphansHandler walks the cover tree and removes objects whose
// post no longer exists. Covers the window where a delete-images job
// was lost (worker down, max retries exhausted).
type SweepOrphansHandler struct {
	repo  blog.Repository
	store SweepStorage
}

func NewSweepOrphansHandler(repo blog.Repository, store SweepStorage) *SweepOrphansHandler {
	return &SweepOrphansHandler{repo: repo, store: store}
}

func (h *SweepOrphansHandler) ProcessTask(ctx context.Context, _ *asynq.Task) error {
	keys, err := h.store.ListKeys(ctx, "blog_covers/")
	if err != nil {
		log.Error().Err(err).Msg("Failed to list cover objects")
		return err
	}

	// Keys look like blog_covers/<uuid>/<file>; dedupe by the id segment.
	seen := make(map[string]bool)
	swept := 0
	for _, key := range keys {
		parts := strings.Split(key, "/")
		if len(parts) < 3 || seen[parts[1]] {
			continue
		}
		seen[parts[1]] = true

		id, err := uuid.Parse(parts[1])
		if err != nil {
			continue
		}

		_, err = h.repo.FindByID(ctx, id)
		if err == nil {
			continue
		}
		if !errors.Is(err, blog.ErrBlogNotFound) {
			return err
		}

		prefix := "blog_covers/" + id.String() + "/"
		if err := h.store.DeletePrefix(ctx, prefix); err != nil {
			log.Error().Err(err).Str("prefix", prefix).Msg("Failed to sweep orphan cover")
			return err
		}
		swept++
	}

	log.Info().
		Int("scanned", len(seen)).
		Int("swept", swept).
		Msg("Orphan cover sweep finished")

	return nil
}
