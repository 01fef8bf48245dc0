package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// EventCommunication is a write-once message from an organizer to the
// attendees of an event. No delivery pipeline exists; rows are the
// record.
type EventCommunication struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	EventID   uuid.UUID `gorm:"type:uuid;not null;index" json:"event_id"`
	SenderID  uuid.UUID `gorm:"type:uuid;not null" json:"sender_id"`
	Sender    *User     `gorm:"foreignKey:SenderID" json:"sender,omitempty"`
	Subject   string    `gorm:"not null" json:"subject"`
	Body      string    `gorm:"not null" json:"body"`
	CreatedAt time.Time `json:"created_at"`
}

func (communication *EventCommunication) BeforeCreate(tx *gorm.DB) (err error) {
	if communication.ID == uuid.Nil {
		communication.ID = uuid.New()
	}
	return
}
