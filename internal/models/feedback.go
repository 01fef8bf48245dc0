package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type EventFeedback struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	EventID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_feedback_event_user" json:"event_id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_feedback_event_user" json:"user_id"`
	User      *User     `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Rating    int       `gorm:"not null" json:"rating"`
	Comment   string    `json:"comment,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func (feedback *EventFeedback) BeforeCreate(tx *gorm.DB) (err error) {
	if feedback.ID == uuid.Nil {
		feedback.ID = uuid.New()
	}
	return
}
