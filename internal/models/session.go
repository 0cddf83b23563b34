package models

import "time"

// LoginSession stores issued login sessions (for logout, invalidation).
// The ID is a random UUID handed to the browser as an HTTP-only cookie;
// nothing in it is derivable from the configured password, so a session
// can be invalidated without rotating any secret.
type LoginSession struct {
	ID        string    `gorm:"primaryKey;size:64"` // UUID
	ExpiresAt time.Time `gorm:"index;not null"`
	Revoked   bool      `gorm:"index;not null"`
	CreatedAt time.Time
}
