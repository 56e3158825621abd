package entity

import (
	"strings"
	"time"

	"github.com/vidtube/backend/pkg/helpers"
)

// User is the aggregate root for the identity domain.
//
// Password always holds a bcrypt digest, never plaintext: the only write paths
// are NewUser and SetPassword, both of which hash exactly once. There is no
// implicit persistence hook, so unrelated field updates can never re-hash.
type User struct {
	ID            string
	Username      string // stored lowercase
	Email         string
	Fullname      string
	Password      string // bcrypt digest
	AvatarURL     string
	CoverImageURL string
	WatchHistory  []string // video ids, most-recent appended last
	RefreshToken  string   // currently valid refresh token, empty when logged out
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// NewUser builds a user with a hashed password and a lowercased username.
func NewUser(username, email, fullname, plainPassword string) (*User, error) {
	u := &User{
		Username: strings.ToLower(strings.TrimSpace(username)),
		Email:    strings.TrimSpace(email),
		Fullname: strings.TrimSpace(fullname),
	}
	if err := u.SetPassword(plainPassword); err != nil {
		return nil, err
	}
	return u, nil
}

// SetPassword hashes plain and stores the digest.
func (u *User) SetPassword(plain string) error {
	hash, err := helpers.HashPassword(plain)
	if err != nil {
		return err
	}
	u.Password = hash
	return nil
}

// PasswordMatches verifies plain against the stored digest.
func (u *User) PasswordMatches(plain string) bool {
	return helpers.CompareHashAndPassword(u.Password, plain)
}

// PublicUser is the sanitized projection returned by the API:
// no password digest, no refresh token.
type PublicUser struct {
	ID            string    `json:"id"`
	Username      string    `json:"username"`
	Email         string    `json:"email"`
	Fullname      string    `json:"fullname"`
	AvatarURL     string    `json:"avatar_url"`
	CoverImageURL string    `json:"cover_image_url,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (u *User) Public() PublicUser {
	return PublicUser{
		ID:            u.ID,
		Username:      u.Username,
		Email:         u.Email,
		Fullname:      u.Fullname,
		AvatarURL:     u.AvatarURL,
		CoverImageURL: u.CoverImageURL,
		CreatedAt:     u.CreatedAt,
		UpdatedAt:     u.UpdatedAt,
	}
}
