package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blog-backend/internal/domains/user"
	"blog-backend/pkg/jwt"
	"blog-backend/pkg/password"
)

// fakeRepo is an in-memory user.Repository.
type fakeRepo struct {
	users map[uuid.UUID]*user.User
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{users: make(map[uuid.UUID]*user.User)}
}

func (f *fakeRepo) Create(_ context.Context, u *user.User) error {
	for _, existing := range f.users {
		if existing.Email == u.Email {
			return user.ErrEmailAlreadyExists
		}
		if existing.Username == u.Username {
			return user.ErrUsernameAlreadyExists
		}
	}
	clone := *u
	f.users[u.ID] = &clone
	return nil
}

func (f *fakeRepo) FindByID(_ context.Context, id uuid.UUID) (*user.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, user.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

func (f *fakeRepo) FindByEmail(_ context.Context, email string) (*user.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, user.ErrUserNotFound
}

func (f *fakeRepo) Update(_ context.Context, u *user.User) error {
	if _, ok := f.users[u.ID]; !ok {
		return user.ErrUserNotFound
	}
	clone := *u
	f.users[u.ID] = &clone
	return nil
}

func (f *fakeRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	for _, u := range f.users {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

// fakeStorage is an in-memory ObjectStorage.
type fakeStorage struct {
	objects map[string][]byte
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{objects: make(map[string][]byte)}
}

func (f *fakeStorage) Upload(_ context.Context, key string, data []byte, _ string) (string, error) {
	f.objects[key] = data
	return "http://store.local/blog/" + key, nil
}

func (f *fakeStorage) Delete(_ context.Context, key string) error {
	delete(f.objects, key)
	return nil
}

func (f *fakeStorage) KeyFromURL(url string) string {
	const marker = "/blog/"
	idx := len(url)
	for i := 0; i+len(marker) <= len(url); i++ {
		if url[i:i+len(marker)] == marker {
			idx = i + len(marker)
			break
		}
	}
	if idx >= len(url) {
		return ""
	}
	return url[idx:]
}

func newTestService(t *testing.T) (user.Service, *fakeRepo, *jwt.Manager) {
	t.Helper()
	repo := newFakeRepo()
	tokens := jwt.NewManager("test-secret", 7*24*time.Hour)
	return NewUserService(repo, tokens, newFakeStorage()), repo, tokens
}

func TestRegisterThenLogin(t *testing.T) {
	t.Parallel()
	svc, _, tokens := newTestService(t)
	ctx := context.Background()

	dto, err := svc.Register(ctx, user.RegisterRequest{
		Username: "alice",
		Email:    "a@x.com",
		Password: "secret123",
	})
	require.NoError(t, err)
	assert.Equal(t, "alice", dto.Username)
	assert.Equal(t, user.DefaultProfileImg, dto.ProfileImg)
	assert.Equal(t, user.DefaultBio, dto.Bio)

	resp, err := svc.Login(ctx, user.LoginRequest{Email: "a@x.com", Password: "secret123"})
	require.NoError(t, err)
	require.NotEmpty(t, resp.Token)
	assert.Equal(t, dto.ID, resp.User.ID)

	claims, err := tokens.ValidateToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, dto.ID.String(), claims.UserID)
	assert.Equal(t, "a@x.com", claims.Email)
}

func TestRegisterValidation(t *testing.T) {
	t.Parallel()
	svc, repo, _ := newTestService(t)
	ctx := context.Background()

	cases := []user.RegisterRequest{
		{Email: "a@x.com", Password: "secret123"},
		{Username: "alice", Password: "secret123"},
		{Username: "alice", Email: "a@x.com"},
		{Username: "alice", Email: "not-an-email", Password: "secret123"},
	}
	for _, req := range cases {
		_, err := svc.Register(ctx, req)
		assert.Error(t, err, "request %+v", req)
	}
	assert.Empty(t, repo.users, "no account created for invalid input")
}

func TestRegisterDuplicateEmail(t *testing.T) {
	t.Parallel()
	svc, repo, _ := newTestService(t)
	ctx := context.Background()

	req := user.RegisterRequest{Username: "alice", Email: "a@x.com", Password: "secret123"}
	_, err := svc.Register(ctx, req)
	require.NoError(t, err)

	req.Username = "alice2"
	_, err = svc.Register(ctx, req)
	assert.ErrorIs(t, err, user.ErrEmailAlreadyExists)
	assert.Len(t, repo.users, 1, "second attempt must not create a record")
}

func TestLoginFailures(t *testing.T) {
	t.Parallel()
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, user.RegisterRequest{
		Username: "alice", Email: "a@x.com", Password: "secret123",
	})
	require.NoError(t, err)

	_, err = svc.Login(ctx, user.LoginRequest{Email: "nobody@x.com", Password: "secret123"})
	assert.ErrorIs(t, err, user.ErrUserNotFound)

	_, err = svc.Login(ctx, user.LoginRequest{Email: "a@x.com", Password: "wrong-password"})
	assert.ErrorIs(t, err, user.ErrInvalidPassword)
}

func TestPasswordIsStoredHashed(t *testing.T) {
	t.Parallel()
	svc, repo, _ := newTestService(t)
	ctx := context.Background()

	dto, err := svc.Register(ctx, user.RegisterRequest{
		Username: "alice", Email: "a@x.com", Password: "secret123",
	})
	require.NoError(t, err)

	stored := repo.users[dto.ID]
	assert.NotEqual(t, "secret123", stored.PasswordHash)
	assert.True(t, password.Verify("secret123", stored.PasswordHash))
}

func TestUpdateProfile(t *testing.T) {
	t.Parallel()
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	dto, err := svc.Register(ctx, user.RegisterRequest{
		Username: "alice", Email: "a@x.com", Password: "secret123",
	})
	require.NoError(t, err)

	updated, err := svc.UpdateProfile(ctx, dto.ID, user.UpdateProfileRequest{
		Bio: "Gopher. Writes about databases.",
	}, nil)
	require.NoError(t, err)

	// Untouched fields keep their values.
	assert.Equal(t, "alice", updated.Username)
	assert.Equal(t, "a@x.com", updated.Email)
	assert.Equal(t, "Gopher. Writes about databases.", updated.Bio)
}

func TestUpdateProfileUnknownUser(t *testing.T) {
	t.Parallel()
	svc, _, _ := newTestService(t)

	_, err := svc.UpdateProfile(context.Background(), uuid.New(), user.UpdateProfileRequest{Bio: "x"}, nil)
	assert.ErrorIs(t, err, user.ErrUserNotFound)
}
