package blog

import (
	"context"

	"github.com/google/uuid"
)

// Repository is the data access contract for posts.
type Repository interface {
	// Create inserts a new post.
	Create(ctx context.Context, b *Blog) error

	// FindByID returns ErrBlogNotFound when no post matches.
	FindByID(ctx context.Context, id uuid.UUID) (*Blog, error)

	// FindByIDWithAuthor is FindByID plus the joined author projection.
	FindByIDWithAuthor(ctx context.Context, id uuid.UUID) (*Blog, error)

	// ListPublished returns published posts newest first, author joined.
	ListPublished(ctx context.Context) ([]Blog, error)

	// ListByAuthor returns all posts by one author, newest first.
	ListByAuthor(ctx context.Context, authorID uuid.UUID) ([]Blog, error)

	// Update persists mutable fields. The author column is not part of
	// the update statement. Returns ErrBlogNotFound when absent.
	Update(ctx context.Context, b *Blog) error

	// Delete removes a post. Returns ErrBlogNotFound when absent.
	Delete(ctx context.Context, id uuid.UUID) error

	// IncrementViews bumps the view counter atomically at the store
	// (single UPDATE, no read-modify-write) and returns the new value.
	IncrementViews(ctx context.Context, id uuid.UUID) (int, error)
}
