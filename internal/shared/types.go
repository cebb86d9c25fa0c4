package shared

// Asynq task type names. Declared here so the API (enqueue side) and
// the worker (handler side) agree without importing each other.
const (
	TypeProcessCoverImage = "blog:process_cover"
	TypeDeleteBlogImages  = "blog:delete_images"
	TypeSweepOrphanImages = "storage:sweep_orphans"
)

// Queue names, highest priority first. Image work is deliberately on
// the low queue so request-path enqueues never starve anything.
const (
	QueueDefault = "default"
	QueueLow     = "low"
)

// ProcessCoverPayload asks the worker to render resized variants for a
// freshly uploaded cover image.
type ProcessCoverPayload struct {
	BlogID   string `json:"blogId"`
	CoverKey string `json:"coverKey"`
}

// DeleteBlogImagesPayload asks the worker to remove every stored object
// belonging to a deleted post.
type DeleteBlogImagesPayload struct {
	BlogID string `json:"blogId"`
}

// ImageUpload carries a multipart upload from handler to service.
type ImageUpload struct {
	Data        []byte
	ContentType string
}
