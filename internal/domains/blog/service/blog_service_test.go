package service

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"testing"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blog-backend/internal/domains/blog"
	"blog-backend/internal/shared"
)

// fakeRepo is an in-memory blog.Repository.
type fakeRepo struct {
	blogs map[uuid.UUID]*blog.Blog
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{blogs: make(map[uuid.UUID]*blog.Blog)}
}

func (f *fakeRepo) Create(_ context.Context, b *blog.Blog) error {
	clone := *b
	f.blogs[b.ID] = &clone
	return nil
}

func (f *fakeRepo) FindByID(_ context.Context, id uuid.UUID) (*blog.Blog, error) {
	b, ok := f.blogs[id]
	if !ok {
		return nil, blog.ErrBlogNotFound
	}
	clone := *b
	return &clone, nil
}

func (f *fakeRepo) FindByIDWithAuthor(ctx context.Context, id uuid.UUID) (*blog.Blog, error) {
	b, err := f.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	b.AuthorInfo = &blog.AuthorRef{Username: "author"}
	return b, nil
}

func (f *fakeRepo) ListPublished(_ context.Context) ([]blog.Blog, error) {
	out := []blog.Blog{}
	for _, b := range f.blogs {
		if b.Status == blog.StatusPublished {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (f *fakeRepo) ListByAuthor(_ context.Context, authorID uuid.UUID) ([]blog.Blog, error) {
	out := []blog.Blog{}
	for _, b := range f.blogs {
		if b.Author == authorID {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (f *fakeRepo) Update(_ context.Context, b *blog.Blog) error {
	stored, ok := f.blogs[b.ID]
	if !ok {
		return blog.ErrBlogNotFound
	}
	// Mirror the SQL statement: author is not an updatable column.
	author := stored.Author
	clone := *b
	clone.Author = author
	f.blogs[b.ID] = &clone
	return nil
}

func (f *fakeRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := f.blogs[id]; !ok {
		return blog.ErrBlogNotFound
	}
	delete(f.blogs, id)
	return nil
}

func (f *fakeRepo) IncrementViews(_ context.Context, id uuid.UUID) (int, error) {
	b, ok := f.blogs[id]
	if !ok {
		return 0, blog.ErrBlogNotFound
	}
	b.Views++
	return b.Views, nil
}

type fakeStore struct{}

func (fakeStore) Upload(_ context.Context, key string, _ []byte, _ string) (string, error) {
	return "http://store.local/blog/" + key, nil
}

func (fakeStore) KeyFromURL(string) string { return "" }

type recordingEnqueuer struct {
	tasks []*asynq.Task
}

func (r *recordingEnqueuer) Enqueue(task *asynq.Task, _ ...asynq.Option) (*asynq.TaskInfo, error) {
	r.tasks = append(r.tasks, task)
	return &asynq.TaskInfo{}, nil
}

func newTestService() (blog.Service, *fakeRepo, *recordingEnqueuer) {
	repo := newFakeRepo()
	enq := &recordingEnqueuer{}
	return NewBlogService(repo, fakeStore{}, enq), repo, enq
}

func strPtr(s string) *string { return &s }

func pngUpload(t *testing.T) *shared.ImageUpload {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 8, 8))))
	return &shared.ImageUpload{Data: buf.Bytes(), ContentType: "image/png"}
}

func TestCreateSetsAuthorAndDefaults(t *testing.T) {
	t.Parallel()
	svc, repo, _ := newTestService()
	author := uuid.New()

	b, err := svc.Create(context.Background(), author, blog.CreateBlogRequest{
		Title:   "Hi",
		Content: "World",
	}, nil)
	require.NoError(t, err)

	assert.Equal(t, author, b.Author)
	assert.Equal(t, blog.DefaultCategory, b.Category)
	assert.Equal(t, blog.StatusPublished, b.Status)
	assert.Empty(t, b.Tags)
	assert.Zero(t, b.Views)
	require.Contains(t, repo.blogs, b.ID)
}

func TestCreateRequiresTitleAndContent(t *testing.T) {
	t.Parallel()
	svc, _, _ := newTestService()
	author := uuid.New()

	_, err := svc.Create(context.Background(), author, blog.CreateBlogRequest{Content: "body"}, nil)
	assert.Error(t, err)

	_, err = svc.Create(context.Background(), author, blog.CreateBlogRequest{Title: "t"}, nil)
	assert.Error(t, err)
}

func TestCreateParsesTags(t *testing.T) {
	t.Parallel()
	svc, _, _ := newTestService()
	author := uuid.New()

	b, err := svc.Create(context.Background(), author, blog.CreateBlogRequest{
		Title:   "Tagged",
		Content: "body",
		Tags:    `["go","databases"]`,
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"go", "databases"}, b.Tags)

	_, err = svc.Create(context.Background(), author, blog.CreateBlogRequest{
		Title:   "Bad tags",
		Content: "body",
		Tags:    `not-json`,
	}, nil)
	assert.ErrorIs(t, err, blog.ErrInvalidTags)
}

func TestUpdateOwnershipGuard(t *testing.T) {
	t.Parallel()
	svc, _, _ := newTestService()
	ctx := context.Background()
	owner := uuid.New()
	stranger := uuid.New()

	b, err := svc.Create(ctx, owner, blog.CreateBlogRequest{Title: "Hi", Content: "World"}, nil)
	require.NoError(t, err)

	// Non-owner is denied.
	_, err = svc.Update(ctx, b.ID, stranger, blog.UpdateBlogRequest{Title: strPtr("Hacked")})
	assert.ErrorIs(t, err, blog.ErrNotOwner)

	// Owner may mutate.
	updated, err := svc.Update(ctx, b.ID, owner, blog.UpdateBlogRequest{Title: strPtr("Hi v2")})
	require.NoError(t, err)
	assert.Equal(t, "Hi v2", updated.Title)
	assert.Equal(t, "World", updated.Content, "unset fields keep their values")

	// Missing post is a not-found, checked before the guard.
	_, err = svc.Update(ctx, uuid.New(), owner, blog.UpdateBlogRequest{Title: strPtr("x")})
	assert.ErrorIs(t, err, blog.ErrBlogNotFound)
}

func TestUpdateRejectsInvalidStatus(t *testing.T) {
	t.Parallel()
	svc, repo, _ := newTestService()
	ctx := context.Background()
	owner := uuid.New()

	b, err := svc.Create(ctx, owner, blog.CreateBlogRequest{Title: "Hi", Content: "World"}, nil)
	require.NoError(t, err)

	for _, status := range []string{"", "archived"} {
		_, err = svc.Update(ctx, b.ID, owner, blog.UpdateBlogRequest{Status: &status})
		assert.Error(t, err, "status %q must not pass validation", status)
		assert.Equal(t, blog.StatusPublished, repo.blogs[b.ID].Status, "invalid status %q must not be persisted", status)
	}

	// A real state transition still works.
	draft := string(blog.StatusDraft)
	updated, err := svc.Update(ctx, b.ID, owner, blog.UpdateBlogRequest{Status: &draft})
	require.NoError(t, err)
	assert.Equal(t, blog.StatusDraft, updated.Status)
}

func TestUpdateNeverChangesAuthor(t *testing.T) {
	t.Parallel()
	svc, repo, _ := newTestService()
	ctx := context.Background()
	owner := uuid.New()

	b, err := svc.Create(ctx, owner, blog.CreateBlogRequest{Title: "Hi", Content: "World"}, nil)
	require.NoError(t, err)

	_, err = svc.Update(ctx, b.ID, owner, blog.UpdateBlogRequest{Content: strPtr("new body")})
	require.NoError(t, err)

	assert.Equal(t, owner, repo.blogs[b.ID].Author)
}

func TestDeleteOwnershipGuard(t *testing.T) {
	t.Parallel()
	svc, repo, _ := newTestService()
	ctx := context.Background()
	owner := uuid.New()
	stranger := uuid.New()

	b, err := svc.Create(ctx, owner, blog.CreateBlogRequest{Title: "Hi", Content: "World"}, nil)
	require.NoError(t, err)

	err = svc.Delete(ctx, b.ID, stranger)
	assert.ErrorIs(t, err, blog.ErrNotOwner)
	assert.Contains(t, repo.blogs, b.ID, "denied delete must not remove the post")

	err = svc.Delete(ctx, b.ID, owner)
	require.NoError(t, err)
	assert.NotContains(t, repo.blogs, b.ID)

	err = svc.Delete(ctx, b.ID, owner)
	assert.ErrorIs(t, err, blog.ErrBlogNotFound)
}

func TestGetByIDIncrementsViews(t *testing.T) {
	t.Parallel()
	svc, _, _ := newTestService()
	ctx := context.Background()

	b, err := svc.Create(ctx, uuid.New(), blog.CreateBlogRequest{Title: "Hi", Content: "World"}, nil)
	require.NoError(t, err)

	got, err := svc.GetByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.Views)

	got, err = svc.GetByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, got.Views)

	_, err = svc.GetByID(ctx, uuid.New())
	assert.ErrorIs(t, err, blog.ErrBlogNotFound)
}

func TestGetPublishedExcludesDrafts(t *testing.T) {
	t.Parallel()
	svc, _, _ := newTestService()
	ctx := context.Background()
	author := uuid.New()

	_, err := svc.Create(ctx, author, blog.CreateBlogRequest{Title: "Public", Content: "x"}, nil)
	require.NoError(t, err)
	draft, err := svc.Create(ctx, author, blog.CreateBlogRequest{Title: "Secret", Content: "x", Status: "draft"}, nil)
	require.NoError(t, err)

	feed, err := svc.GetPublished(ctx)
	require.NoError(t, err)
	require.Len(t, feed, 1)
	assert.Equal(t, "Public", feed[0].Title)

	// The author dashboard still sees the draft.
	mine, err := svc.GetByAuthor(ctx, author)
	require.NoError(t, err)
	assert.Len(t, mine, 2)
	_ = draft
}

func TestDeleteEnqueuesImageCleanup(t *testing.T) {
	t.Parallel()
	svc, _, enq := newTestService()
	ctx := context.Background()
	owner := uuid.New()

	cover := pngUpload(t)
	b, err := svc.Create(ctx, owner, blog.CreateBlogRequest{Title: "Hi", Content: "World"}, cover)
	require.NoError(t, err)
	require.NotEmpty(t, b.CoverImage)

	created := len(enq.tasks)
	require.GreaterOrEqual(t, created, 1, "cover variant job enqueued on create")

	require.NoError(t, svc.Delete(ctx, b.ID, owner))
	require.Len(t, enq.tasks, created+1, "image cleanup job enqueued on delete")
}
