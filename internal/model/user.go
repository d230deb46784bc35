package model

import (
	"errors"
	"time"
)

// User is a registered account. This service never touches credentials;
// identity arrives as a signed token issued elsewhere.
type User struct {
	ID        int64   `db:"id" json:"id"`
	Username  string  `db:"username" json:"username"`
	FullName  string  `db:"full_name" json:"full_name"`
	AvatarURL *string `db:"avatar_url" json:"avatar_url"`

	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// UserSummary is the minimal public profile embedded in read-models.
type UserSummary struct {
	ID        int64   `db:"id" json:"id"`
	Username  string  `db:"username" json:"username"`
	FullName  string  `db:"full_name" json:"full_name"`
	AvatarURL *string `db:"avatar_url" json:"avatar_url"`
}

// Summary projects a full user down to its public fields.
func (u *User) Summary() UserSummary {
	return UserSummary{
		ID:        u.ID,
		Username:  u.Username,
		FullName:  u.FullName,
		AvatarURL: u.AvatarURL,
	}
}

// Token error codes surfaced by the auth middleware.
const (
	CodeTokenExpired = "TOKEN_EXPIRED"
	CodeTokenInvalid = "TOKEN_INVALID"
)

var ErrUserNotFound = errors.New("user not found")
