package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Attendee is the registration record joining a user to an event. The
// unique index makes duplicate registration a storage-level conflict.
// Rows are hard-deleted on cancellation so the pair can register again.
type Attendee struct {
	ID          uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	EventID     uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_attendees_event_user" json:"event_id"`
	UserID      uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_attendees_event_user" json:"user_id"`
	CheckedIn   bool       `gorm:"not null;default:false" json:"checked_in"`
	CheckedInAt *time.Time `json:"checked_in_at,omitempty"`
	Event       *Event     `gorm:"foreignKey:EventID" json:"event,omitempty"`
	User        *User      `gorm:"foreignKey:UserID" json:"user,omitempty"`
	CreatedAt   time.Time  `json:"registered_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func (attendee *Attendee) BeforeCreate(tx *gorm.DB) (err error) {
	if attendee.ID == uuid.Nil {
		attendee.ID = uuid.New()
	}
	return
}
