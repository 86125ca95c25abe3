package domain

import "time"

// User represents a registered user of the banking backend.
// The password is stored only as a one-way bcrypt digest, never plaintext.
// Users are immutable after registration except for credential rotation.
type User struct {
	UserID       string    `json:"userID"` // Primary Key (UUID)
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}
