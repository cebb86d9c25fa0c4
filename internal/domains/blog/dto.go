package blog

import (
	"encoding/json"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// CreateBlogRequest - POST /blog/create. Sent as a multipart form so a
// cover image can ride along; tags arrive as a JSON-encoded array
// string, the way the SPA's FormData serializes them.
type CreateBlogRequest struct {
	Title    string `form:"title"`
	Excerpt  string `form:"excerpt"`
	Content  string `form:"content"`
	Category string `form:"category"`
	Tags     string `form:"tags"`
	Status   string `form:"status"`
}

func (r CreateBlogRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title,
			validation.Required.Error("title is required"),
			validation.Length(1, 255),
		),
		validation.Field(&r.Content,
			validation.Required.Error("content is required"),
		),
		validation.Field(&r.Status,
			validation.When(r.Status != "", validation.In(string(StatusPublished), string(StatusDraft)).
				Error("status must be published or draft")),
		),
	)
}

// ParsedTags decodes the tags form field. An absent or empty field is
// an empty list, not an error.
func (r CreateBlogRequest) ParsedTags() ([]string, error) {
	if r.Tags == "" {
		return []string{}, nil
	}
	var tags []string
	if err := json.Unmarshal([]byte(r.Tags), &tags); err != nil {
		return nil, err
	}
	return tags, nil
}

// UpdateBlogRequest - PUT /blog/:id. JSON body; nil means "keep the
// current value". The author field is deliberately absent: ownership
// never transfers.
type UpdateBlogRequest struct {
	Title    *string   `json:"title"`
	Excerpt  *string   `json:"excerpt"`
	Content  *string   `json:"content"`
	Category *string   `json:"category"`
	Tags     *[]string `json:"tags"`
	Status   *string   `json:"status"`
}

func (r UpdateBlogRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title,
			validation.NilOrNotEmpty.Error("title cannot be empty"),
			validation.Length(1, 255),
		),
		validation.Field(&r.Content,
			validation.NilOrNotEmpty.Error("content cannot be empty"),
		),
		// In skips empty strings, so NilOrNotEmpty has to reject "" first.
		validation.Field(&r.Status,
			validation.NilOrNotEmpty.Error("status must be published or draft"),
			validation.In(string(StatusPublished), string(StatusDraft)).
				Error("status must be published or draft"),
		),
	)
}
