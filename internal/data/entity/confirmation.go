package entity

import (
	"time"

	"github.com/google/uuid"
)

// ConfirmationCode is a one-time signup code; only the bcrypt hash is stored
type ConfirmationCode struct {
	BaseSimple
	UserID    uuid.UUID `db:"user_id"`
	CodeHash  string    `db:"code_hash"`
	ExpiresAt time.Time `db:"expires_at"`
	IsUsed    bool      `db:"is_used"`
}
