package blog

import (
	"context"

	"github.com/google/uuid"

	"blog-backend/internal/shared"
)

// Service is the business logic contract for the post domain.
type Service interface {
	// Create stores a new post owned by authorID. The owner is taken
	// from the authenticated identity, never from the request body.
	Create(ctx context.Context, authorID uuid.UUID, req CreateBlogRequest, cover *shared.ImageUpload) (*Blog, error)

	// GetPublished returns published posts, newest first, with the
	// author projection joined in.
	GetPublished(ctx context.Context) ([]Blog, error)

	// GetByAuthor returns every post by one author, newest first,
	// drafts included (the author dashboard view).
	GetByAuthor(ctx context.Context, authorID uuid.UUID) ([]Blog, error)

	// GetByID returns one post and bumps its view counter.
	GetByID(ctx context.Context, id uuid.UUID) (*Blog, error)

	// Update mutates a post after the ownership guard passes. Returns
	// ErrBlogNotFound or ErrNotOwner.
	Update(ctx context.Context, id, authorID uuid.UUID, req UpdateBlogRequest) (*Blog, error)

	// Delete removes a post after the ownership guard passes. Returns
	// ErrBlogNotFound or ErrNotOwner.
	Delete(ctx context.Context, id, authorID uuid.UUID) error
}
