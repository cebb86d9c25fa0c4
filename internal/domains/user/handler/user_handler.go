package handler

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"blog-backend/internal/domains/user"
	"blog-backend/internal/shared"
	"blog-backend/internal/shared/middleware"
	"blog-backend/internal/shared/response"
)

// UserHandler is the HTTP boundary of the account domain. Stateless;
// all logic lives in the service.
type UserHandler struct {
	service user.Service
}

func NewUserHandler(service user.Service) *UserHandler {
	return &UserHandler{service: service}
}

// Register handles POST /register. 201 on success; no token is issued,
// the client logs in separately.
func (h *UserHandler) Register(c *gin.Context) {
	var req user.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "All fields are required")
		return
	}

	dto, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, "User created successfully", dto)
}

// Login handles POST /login. 200 with the bearer token and the public
// user projection.
func (h *UserHandler) Login(c *gin.Context) {
	var req user.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "All fields are required")
		return
	}

	resp, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Login successful", resp)
}

// GetProfile handles GET /profile/:id. Public read of the account
// projection; the password hash never leaves the model's json mapping.
func (h *UserHandler) GetProfile(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid user id")
		return
	}

	dto, err := h.service.GetProfile(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "User fetched successfully", dto)
}

// UpdateProfile handles PUT /profile/:id (multipart form, optional
// profileImg file). Only the account owner may update it: a mismatch
// between the path id and the authenticated identity is a 403.
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	targetID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid user id")
		return
	}

	authID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "Invalid token")
		return
	}
	if targetID != authID {
		response.Forbidden(c, "You cannot edit this profile")
		return
	}

	var req user.UpdateProfileRequest
	if err := c.ShouldBind(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	avatar, err := readImageFile(c, "profileImg")
	if err != nil {
		response.BadRequest(c, "Could not read uploaded image")
		return
	}

	dto, err := h.service.UpdateProfile(c.Request.Context(), targetID, req, avatar)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Profile updated successfully", dto)
}

// readImageFile pulls an optional multipart file into memory. Returns
// (nil, nil) when the field is absent.
func readImageFile(c *gin.Context, field string) (*shared.ImageUpload, error) {
	fileHeader, err := c.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return nil, nil
		}
		return nil, err
	}
	return loadUpload(fileHeader)
}

func loadUpload(fh *multipart.FileHeader) (*shared.ImageUpload, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, err
	}

	return &shared.ImageUpload{
		Data:        data,
		ContentType: fh.Header.Get("Content-Type"),
	}, nil
}

// handleError maps domain errors onto the HTTP taxonomy. Unexpected
// errors are logged and surfaced as a generic 500.
func (h *UserHandler) handleError(c *gin.Context, err error) {
	var vErrs validation.Errors
	switch {
	case errors.As(err, &vErrs):
		response.BadRequest(c, vErrs.Error())
	case errors.Is(err, user.ErrEmailAlreadyExists):
		response.BadRequest(c, "User already exists")
	case errors.Is(err, user.ErrUsernameAlreadyExists):
		response.BadRequest(c, "Username already taken")
	case errors.Is(err, user.ErrInvalidImage):
		response.BadRequest(c, "Invalid image upload")
	case errors.Is(err, user.ErrUserNotFound):
		response.NotFound(c, "User not found")
	case errors.Is(err, user.ErrInvalidPassword):
		response.Unauthorized(c, "Invalid password")
	default:
		log.Error().Err(err).Str("request_id", c.GetString("request_id")).Msg("Unexpected error in user handler")
		response.InternalServerError(c, "Internal server error")
	}
}
