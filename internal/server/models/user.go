// Package models defines server-side data models persisted in the database
// and serialised by the HTTP layer.
package models

import "time"

// User is a registered account. PasswordHash never leaves the server.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Token        string    `json:"token,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Public returns a copy without credentials.
func (u *User) Public() *User {
	c := *u
	c.PasswordHash = ""
	c.Token = ""
	return &c
}
