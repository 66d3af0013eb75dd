package models

import (
	"time"
)

type User struct {
	ID               string    `json:"id"`
	Username         string    `json:"username"`
	Email            string    `json:"email"`
	PasswordHash     string    `json:"passwordHash,omitempty"` // bcrypt, never present on the session copy
	Avatar           string    `json:"avatar,omitempty"`
	Bio              string    `json:"bio,omitempty"`
	RegistrationDate time.Time `json:"registrationDate"`
	TopicsCount      int       `json:"topicsCount"`
	CommentsCount    int       `json:"commentsCount"`
	LikesReceived    int       `json:"likesReceived"`
}

// Public returns a copy of the user without the password hash.
func (u User) Public() User {
	u.PasswordHash = ""
	return u
}

// ProfilePatch carries the fields a user may change on their own profile.
// Nil fields are left untouched.
type ProfilePatch struct {
	Username *string `json:"username"`
	Email    *string `json:"email"`
	Avatar   *string `json:"avatar"`
	Bio      *string `json:"bio"`
	Password *string `json:"password"`
}
