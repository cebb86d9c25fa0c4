package job

import (
	"context"
	"encoding/json"
	"fmt"
	"path"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"blog-backend/internal/infrastructure/storage"
	"blog-backend/internal/shared"
)

// VariantStorage is the slice of the object store the cover jobs need.
type VariantStorage interface {
	Download(ctx context.Context, key string) ([]byte, error)
	Upload(ctx context.Context, key string, data []byte, contentType string) (string, error)
	DeletePrefix(ctx context.Context, prefix string) error
}

// ProcessCoverHandler renders the resized cover variants next to the
// uploaded original.
type ProcessCoverHandler struct {
	store     VariantStorage
	processor *storage.ImageProcessor
}

func NewProcessCoverHandler(store VariantStorage) *ProcessCoverHandler {
	return &ProcessCoverHandler{
		store:     store,
		processor: storage.NewImageProcessor(),
	}
}

func (h *ProcessCoverHandler) ProcessTask(ctx context.Context, task *asynq.Task) error {
	var payload shared.ProcessCoverPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		log.Error().Err(err).Msg("Failed to unmarshal ProcessCover payload")
		return fmt.Errorf("unmarshal payload: %w", err)
	}

	log.Info().
		Str("blog_id", payload.BlogID).
		Str("cover_key", payload.CoverKey).
		Msg("Processing cover image variants")

	original, err := h.store.Download(ctx, payload.CoverKey)
	if err != nil {
		log.Error().Err(err).Str("cover_key", payload.CoverKey).Msg("Failed to fetch cover original")
		return fmt.Errorf("fetch original: %w", err)
	}

	variants, err := h.processor.ProcessImage(original)
	if err != nil {
		log.Error().Err(err).Str("cover_key", payload.CoverKey).Msg("Failed to render cover variants")
		return fmt.Errorf("render variants: %w", err)
	}

	// Variants live beside the original: blog_covers/<id>/<variant>.jpg.
	dir := path.Dir(payload.CoverKey)
	for name, data := range variants {
		key := path.Join(dir, name+".jpg")
		if _, err := h.store.Upload(ctx, key, data, "image/jpeg"); err != nil {
			log.Error().Err(err).Str("key", key).Msg("Failed to upload cover variant")
			return fmt.Errorf("upload %s variant: %w", name, err)
		}
	}

	log.Info().
		Str("blog_id", payload.BlogID).
		Int("variants", len(variants)).
		Msg("Cover image variants rendered")

	return nil
}
