package job

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"blog-backend/internal/shared"
)

// DeleteImagesHandler removes every stored object of a deleted post:
// the original cover and all variants under its prefix.
type DeleteImagesHandler struct {
	store VariantStorage
}

func NewDeleteImagesHandler(store VariantStorage) *DeleteImagesHandler {
	return &DeleteImagesHandler{store: store}
}

func (h *DeleteImagesHandler) ProcessTask(ctx context.Context, task *asynq.Task) error {
	var payload shared.DeleteBlogImagesPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		log.Error().Err(err).Msg("Failed to unmarshal DeleteBlogImages payload")
		return fmt.Errorf("unmarshal payload: %w", err)
	}

	log.Info().
		Str("blog_id", payload.BlogID).
		Msg("Deleting blog images")

	prefix := "blog_covers/" + payload.BlogID + "/"
	if err := h.store.DeletePrefix(ctx, prefix); err != nil {
		log.Error().Err(err).Str("blog_id", payload.BlogID).Msg("Failed to delete blog images")
		return fmt.Errorf("delete images: %w", err)
	}

	log.Info().
		Str("blog_id", payload.BlogID).
		Msg("Blog images deleted")

	return nil
}
