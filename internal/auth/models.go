package auth

import "time"

type User struct {
	ID           int64
	Email        string
	PasswordHash string
	Role         string
	CreatedAt    time.Time
}

// PublicUser is the projection returned over the wire. The password
// hash never leaves this package.
type PublicUser struct {
	Email string `json:"email"`
	Role  string `json:"role"`
}

func (u User) Public() PublicUser {
	return PublicUser{Email: u.Email, Role: u.Role}
}
