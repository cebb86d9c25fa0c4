package service

import (
	"context"
	"fmt"
	"path"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"blog-backend/internal/domains/user"
	"blog-backend/internal/infrastructure/storage"
	"blog-backend/internal/shared"
	"blog-backend/pkg/jwt"
	"blog-backend/pkg/password"
)

// ObjectStorage is the slice of the image store this service needs.
// *storage.MinIOStorage satisfies it; tests plug in a fake.
type ObjectStorage interface {
	Upload(ctx context.Context, key string, data []byte, contentType string) (string, error)
	Delete(ctx context.Context, key string) error
	KeyFromURL(url string) string
}

type userService struct {
	repo      user.Repository
	tokens    *jwt.Manager
	store     ObjectStorage
	processor *storage.ImageProcessor
}

// NewUserService wires the account domain. The token manager carries
// the process-wide signing secret injected at startup.
func NewUserService(repo user.Repository, tokens *jwt.Manager, store ObjectStorage) user.Service {
	return &userService{
		repo:      repo,
		tokens:    tokens,
		store:     store,
		processor: storage.NewImageProcessor(),
	}
}

// Register creates a new account. Mirrors the legacy flow: presence
// check, duplicate-email check, hash, persist. No token on register.
func (s *userService) Register(ctx context.Context, req user.RegisterRequest) (*user.UserDTO, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	exists, err := s.repo.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("check email exists: %w", err)
	}
	if exists {
		return nil, user.ErrEmailAlreadyExists
	}

	digest, err := password.Hash(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now()
	newUser := &user.User{
		ID:           uuid.New(),
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: digest,
		ProfileImg:   user.DefaultProfileImg,
		Bio:          user.DefaultBio,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	// The unique index backstops the pre-check: a concurrent register
	// with the same email surfaces as ErrEmailAlreadyExists here.
	if err := s.repo.Create(ctx, newUser); err != nil {
		return nil, err
	}

	dto := newUser.ToDTO()
	return &dto, nil
}

// Login verifies credentials and issues the bearer token. Unknown email
// and wrong password stay distinct (ErrUserNotFound -> 404,
// ErrInvalidPassword -> 401) to match the existing client contract.
func (s *userService) Login(ctx context.Context, req user.LoginRequest) (*user.LoginResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	u, err := s.repo.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}

	if !password.Verify(req.Password, u.PasswordHash) {
		return nil, user.ErrInvalidPassword
	}

	token, err := s.tokens.GenerateToken(u.ID.String(), u.Email, u.ProfileImg)
	if err != nil {
		return nil, fmt.Errorf("generate token: %w", err)
	}

	return &user.LoginResponse{
		Token: token,
		User:  u.ToDTO(),
	}, nil
}

func (s *userService) GetProfile(ctx context.Context, userID uuid.UUID) (*user.UserDTO, error) {
	u, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	dto := u.ToDTO()
	return &dto, nil
}

// UpdateProfile applies a partial update. An uploaded avatar replaces
// the stored one; the previous object is removed from the store when it
// was ours (the default avatar is an external URL and is left alone).
func (s *userService) UpdateProfile(ctx context.Context, userID uuid.UUID, req user.UpdateProfileRequest, avatar *shared.ImageUpload) (*user.UserDTO, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	u, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if avatar != nil {
		url, err := s.uploadAvatar(ctx, u, avatar)
		if err != nil {
			return nil, err
		}
		u.ProfileImg = url
	}

	if req.Username != "" {
		u.Username = req.Username
	}
	if req.Email != "" {
		u.Email = req.Email
	}
	if req.Bio != "" {
		u.Bio = req.Bio
	}
	u.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, u); err != nil {
		return nil, err
	}

	dto := u.ToDTO()
	return &dto, nil
}

func (s *userService) uploadAvatar(ctx context.Context, u *user.User, avatar *shared.ImageUpload) (string, error) {
	if err := s.processor.ValidateImage(avatar.Data); err != nil {
		return "", fmt.Errorf("%w: %v", user.ErrInvalidImage, err)
	}

	if oldKey := s.store.KeyFromURL(u.ProfileImg); oldKey != "" {
		if err := s.store.Delete(ctx, oldKey); err != nil {
			// Orphaned object, the scheduled sweep picks it up.
			log.Warn().Err(err).Str("key", oldKey).Msg("Failed to delete previous avatar")
		}
	}

	key := path.Join("profile_images", u.ID.String()+"-"+uuid.NewString()+".jpg")
	url, err := s.store.Upload(ctx, key, avatar.Data, avatar.ContentType)
	if err != nil {
		return "", fmt.Errorf("upload avatar: %w", err)
	}
	return url, nil
}
