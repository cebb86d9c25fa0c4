package blog

import "errors"

var (
	ErrBlogNotFound = errors.New("blog not found")
	ErrNotOwner     = errors.New("not the owner of this blog")
	ErrInvalidTags  = errors.New("tags must be a JSON array of strings")
	ErrInvalidImage = errors.New("invalid image upload")
)
