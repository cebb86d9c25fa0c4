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

	"blog-backend/internal/domains/blog"
	"blog-backend/internal/shared"
	"blog-backend/internal/shared/middleware"
	"blog-backend/internal/shared/response"
)

// BlogHandler is the HTTP boundary of the post domain.
type BlogHandler struct {
	service blog.Service
}

func NewBlogHandler(service blog.Service) *BlogHandler {
	return &BlogHandler{service: service}
}

// Create handles POST /blog/create (multipart form, optional coverImage
// file). The author is always the authenticated identity; nothing in
// the request body can override it.
func (h *BlogHandler) Create(c *gin.Context) {
	authorID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "Invalid token")
		return
	}

	var req blog.CreateBlogRequest
	if err := c.ShouldBind(&req); err != nil {
		response.BadRequest(c, "Title and content are required")
		return
	}

	cover, err := readImageFile(c, "coverImage")
	if err != nil {
		response.BadRequest(c, "Could not read uploaded image")
		return
	}

	b, err := h.service.Create(c.Request.Context(), authorID, req, cover)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, "Blog created successfully", b)
}

// GetAll handles GET /blog/all: the public feed of published posts.
func (h *BlogHandler) GetAll(c *gin.Context) {
	blogs, err := h.service.GetPublished(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Blogs fetched successfully", blogs)
}

// GetByUser handles GET /blog/user/:userId: every post by one author,
// drafts included. The original app exposes this publicly and the
// dashboard relies on seeing its own drafts here.
func (h *BlogHandler) GetByUser(c *gin.Context) {
	authorID, err := uuid.Parse(c.Param("userId"))
	if err != nil {
		response.BadRequest(c, "Invalid user id")
		return
	}

	blogs, err := h.service.GetByAuthor(c.Request.Context(), authorID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Blogs fetched successfully", blogs)
}

// GetByID handles GET /blog/:id. Each successful read bumps the view
// counter.
func (h *BlogHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid blog id")
		return
	}

	b, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Blog fetched successfully", b)
}

// Update handles PUT /blog/:id. JSON body of optional fields; the
// service enforces the ownership check after the existence check.
func (h *BlogHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid blog id")
		return
	}

	authorID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "Invalid token")
		return
	}

	var req blog.UpdateBlogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	b, err := h.service.Update(c.Request.Context(), id, authorID, req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Blog updated successfully", b)
}

// Delete handles DELETE /blog/:id.
func (h *BlogHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid blog id")
		return
	}

	authorID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "Invalid token")
		return
	}

	if err := h.service.Delete(c.Request.Context(), id, authorID); err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Blog deleted successfully", nil)
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

// handleError maps domain errors onto the HTTP taxonomy. The not-found
// branch fires before the ownership branch can, so probing another
// account's post ids leaks nothing beyond existence.
func (h *BlogHandler) handleError(c *gin.Context, err error) {
	var vErrs validation.Errors
	switch {
	case errors.As(err, &vErrs):
		response.BadRequest(c, vErrs.Error())
	case errors.Is(err, blog.ErrInvalidTags):
		response.BadRequest(c, "Tags must be a JSON array of strings")
	case errors.Is(err, blog.ErrInvalidImage):
		response.BadRequest(c, "Invalid image upload")
	case errors.Is(err, blog.ErrBlogNotFound):
		response.NotFound(c, "Blog not found")
	case errors.Is(err, blog.ErrNotOwner):
		response.Forbidden(c, "You are not authorized to perform this action")
	default:
		log.Error().Err(err).Str("request_id", c.GetString("request_id")).Msg("Unexpected error in blog handler")
		response.InternalServerError(c, "Internal server error")
	}
}
