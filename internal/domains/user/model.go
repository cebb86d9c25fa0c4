package user

import (
	"time"

	"github.com/google/uuid"
)

// Defaults applied at registration, matching what new accounts start
// out with before the owner fills in a profile.
const (
	DefaultProfileImg = "https://encrypted-tbn0.gstatic.com/images?q=tbn:ANd9GcSkpxYROZjMxvGCpx7zhLJZCWES9cl-uG_XXw&s"
	DefaultBio        = "add your data about you"
)

// User is the account entity. Username and email are unique across all
// accounts; PasswordHash only ever holds a bcrypt digest, never the
// plaintext. Accounts are never deleted.
type User struct {
	ID           uuid.UUID `db:"id" json:"id"`
	Username     string    `db:"username" json:"username"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"` // never exposed
	ProfileImg   string    `db:"profile_img" json:"profile_img"`
	Bio          string    `db:"bio" json:"bio"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// ToDTO returns the public-safe projection of the account.
func (u *User) ToDTO() UserDTO {
	return UserDTO{
		ID:         u.ID,
		Username:   u.Username,
		Email:      u.Email,
		ProfileImg: u.ProfileImg,
		Bio:        u.Bio,
		CreatedAt:  u.CreatedAt,
		UpdatedAt:  u.UpdatedAt,
	}
}
