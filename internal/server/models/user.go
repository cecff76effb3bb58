package models

import "time"

// User is an account row. PasswordHash holds the bcrypt hash of the user's
// password and must never be serialized to clients.
type User struct {
	ID           int64
	Email        string
	PasswordHash string
	Name         *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
