package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"

	"blog-backend/internal/domains/blog"
	"blog-backend/pkg/cache"
)

// publishedFeedKey caches the landing feed. Short TTL; any write to the
// blogs table invalidates it so readers never see a deleted post.
const (
	publishedFeedKey = "blogs:published"
	publishedFeedTTL = time.Minute
)

type postgresRepository struct {
	pool  *pgxpool.Pool
	cache cache.Cache
}

func NewPostgresRepository(pool *pgxpool.Pool, cache cache.Cache) blog.Repository {
	return &postgresRepository{pool: pool, cache: cache}
}

const blogColumns = `id, title, excerpt, content, category, tags, author, status, views, likes, cover_image, created_at, updated_at`

func (r *postgresRepository) Create(ctx context.Context, b *blog.Blog) error {
	query := `
		INSERT INTO blogs (id, title, excerpt, content, category, tags, author, status, views, likes, cover_image, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`

	_, err := r.pool.Exec(ctx, query,
		b.ID,
		b.Title,
		b.Excerpt,
		b.Content,
		b.Category,
		b.Tags,
		b.Author,
		b.Status,
		b.Views,
		b.Likes,
		b.CoverImage,
		b.CreatedAt,
		b.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert blog: %w", err)
	}

	r.invalidateFeed(ctx)
	return nil
}

func (r *postgresRepository) FindByID(ctx context.Context, id uuid.UUID) (*blog.Blog, error) {
	query := fmt.Sprintf(`SELECT %s FROM blogs WHERE id = $1`, blogColumns)

	var b blog.Blog
	err := scanBlog(r.pool.QueryRow(ctx, query, id), &b)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *postgresRepository) FindByIDWithAuthor(ctx context.Context, id uuid.UUID) (*blog.Blog, error) {
	query := `
		SELECT b.id, b.title, b.excerpt, b.content, b.category, b.tags, b.author, b.status,
		       b.views, b.likes, b.cover_image, b.created_at, b.updated_at,
		       u.username, u.email, u.profile_img
		FROM blogs b
		JOIN users u ON u.id = b.author
		WHERE b.id = $1
	`

	var b blog.Blog
	var ref blog.AuthorRef
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&b.ID, &b.Title, &b.Excerpt, &b.Content, &b.Category, &b.Tags, &b.Author, &b.Status,
		&b.Views, &b.Likes, &b.CoverImage, &b.CreatedAt, &b.UpdatedAt,
		&ref.Username, &ref.Email, &ref.ProfileImg,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, blog.ErrBlogNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan blog with author: %w", err)
	}

	b.AuthorInfo = &ref
	return &b, nil
}

func (r *postgresRepository) ListPublished(ctx context.Context) ([]blog.Blog, error) {
	var cached []blog.Blog
	if found, err := r.cache.Get(ctx, publishedFeedKey, &cached); err == nil && found {
		return cached, nil
	} else if err != nil {
		// Cache trouble is never fatal for reads.
		log.Warn().Err(err).Msg("Published feed cache read failed")
	}

	query := `
		SELECT b.id, b.title, b.excerpt, b.content, b.category, b.tags, b.author, b.status,
		       b.views, b.likes, b.cover_image, b.created_at, b.updated_at,
		       u.username, u.email, u.profile_img
		FROM blogs b
		JOIN users u ON u.id = b.author
		WHERE b.status = 'published'
		ORDER BY b.created_at DESC
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list published blogs: %w", err)
	}
	defer rows.Close()

	blogs := []blog.Blog{}
	for rows.Next() {
		var b blog.Blog
		var ref blog.AuthorRef
		err := rows.Scan(
			&b.ID, &b.Title, &b.Excerpt, &b.Content, &b.Category, &b.Tags, &b.Author, &b.Status,
			&b.Views, &b.Likes, &b.CoverImage, &b.CreatedAt, &b.UpdatedAt,
			&ref.Username, &ref.Email, &ref.ProfileImg,
		)
		if err != nil {
			return nil, fmt.Errorf("scan published blog: %w", err)
		}
		b.AuthorInfo = &ref
		blogs = append(blogs, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate published blogs: %w", err)
	}

	if err := r.cache.Set(ctx, publishedFeedKey, blogs, publishedFeedTTL); err != nil {
		log.Warn().Err(err).Msg("Published feed cache write failed")
	}

	return blogs, nil
}

func (r *postgresRepository) ListByAuthor(ctx context.Context, authorID uuid.UUID) ([]blog.Blog, error) {
	query := fmt.Sprintf(`SELECT %s FROM blogs WHERE author = $1 ORDER BY created_at DESC`, blogColumns)

	rows, err := r.pool.Query(ctx, query, authorID)
	if err != nil {
		return nil, fmt.Errorf("list blogs by author: %w", err)
	}
	defer rows.Close()

	blogs := []blog.Blog{}
	for rows.Next() {
		var b blog.Blog
		if err := scanBlog(rows, &b); err != nil {
			return nil, err
		}
		blogs = append(blogs, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate blogs by author: %w", err)
	}

	return blogs, nil
}

// Update writes the mutable columns. author is deliberately not in the
// statement: the owning account is fixed at creation.
func (r *postgresRepository) Update(ctx context.Context, b *blog.Blog) error {
	query := `
		UPDATE blogs
		SET title = $2, excerpt = $3, content = $4, category = $5, tags = $6,
		    status = $7, cover_image = $8, updated_at = $9
		WHERE id = $1
	`

	tag, err := r.pool.Exec(ctx, query,
		b.ID,
		b.Title,
		b.Excerpt,
		b.Content,
		b.Category,
		b.Tags,
		b.Status,
		b.CoverImage,
		b.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update blog: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return blog.ErrBlogNotFound
	}

	r.invalidateFeed(ctx)
	return nil
}

func (r *postgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM blogs WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete blog: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return blog.ErrBlogNotFound
	}

	r.invalidateFeed(ctx)
	return nil
}

// IncrementViews is a single atomic UPDATE at the store, replacing the
// legacy read-modify-write that under-counted under concurrent load.
func (r *postgresRepository) IncrementViews(ctx context.Context, id uuid.UUID) (int, error) {
	var views int
	err := r.pool.QueryRow(ctx,
		`UPDATE blogs SET views = views + 1 WHERE id = $1 RETURNING views`, id,
	).Scan(&views)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, blog.ErrBlogNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("increment views: %w", err)
	}
	return views, nil
}

func (r *postgresRepository) invalidateFeed(ctx context.Context) {
	if err := r.cache.Delete(ctx, publishedFeedKey); err != nil {
		log.Warn().Err(err).Msg("Published feed cache invalidation failed")
	}
}

func scanBlog(row pgx.Row, b *blog.Blog) error {
	err := row.Scan(
		&b.ID,
		&b.Title,
		&b.Excerpt,
		&b.Content,
		&b.Category,
		&b.Tags,
		&b.Author,
		&b.Status,
		&b.Views,
		&b.Likes,
		&b.CoverImage,
		&b.CreatedAt,
		&b.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return blog.ErrBlogNotFound
	}
	if err != nil {
		return fmt.Errorf("scan blog: %w", err)
	}
	return nil
}
