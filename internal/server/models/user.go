// Package models defines the server-side records persisted by the repositories
// and returned, in projected form, by the API.
package models

import "time"

type User struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

// PublicUser is the projection of a User returned to clients. It never
// carries the password hash.
type PublicUser struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

func (u *User) Public() PublicUser {
	return PublicUser{ID: u.ID, Username: u.Username, Email: u.Email}
}

// Owner is the read-time projection of the user owning a resource.
type Owner struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}
