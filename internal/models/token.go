package models

import (
	"time"

	"github.com/google/uuid"
)

// RevokedToken backs logout for stateless JWTs. The auth middleware
// rejects tokens whose jti appears here.
type RevokedToken struct {
	JTI       string    `gorm:"primary_key" json:"jti"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	ExpiresAt time.Time `gorm:"not null" json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}
