package blog

import (
	"time"

	"github.com/google/uuid"
)

// Status is the publication state of a post.
type Status string

const (
	StatusPublished Status = "published"
	StatusDraft     Status = "draft"
)

func (s Status) IsValid() bool {
	return s == StatusPublished || s == StatusDraft
}

// DefaultCategory is applied when a post is created without one.
const DefaultCategory = "Technology"

// Blog is the post entity. Author is set exactly once, at creation,
// from the authenticated identity, and no update path writes it again.
type Blog struct {
	ID         uuid.UUID  `db:"id" json:"id"`
	Title      string     `db:"title" json:"title"`
	Excerpt    string     `db:"excerpt" json:"excerpt"`
	Content    string     `db:"content" json:"content"`
	Category   string     `db:"category" json:"category"`
	Tags       []string   `db:"tags" json:"tags"`
	Author     uuid.UUID  `db:"author" json:"author"`
	Status     Status     `db:"status" json:"status"`
	Views      int        `db:"views" json:"views"`
	Likes      int        `db:"likes" json:"likes"`
	CoverImage string     `db:"cover_image" json:"cover_image"`
	CreatedAt  time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time  `db:"updated_at" json:"updated_at"`
	AuthorInfo *AuthorRef `db:"-" json:"author_info,omitempty"`
}

// AuthorRef is the joined author projection returned with feed entries
// and single-post reads.
type AuthorRef struct {
	Username   string `json:"username"`
	Email      string `json:"email"`
	ProfileImg string `json:"profile_img"`
}

// IsOwnedBy is the ownership guard: a pure comparison of the recorded
// author against the authenticated account. Mutating routes consult it
// after the 404 check and before any write.
func (b *Blog) IsOwnedBy(accountID uuid.UUID) bool {
	return b.Author.String() == accountID.String()
}
