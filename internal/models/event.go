package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	EventTypeInPerson = "in_person"
	EventTypeVirtual  = "virtual"
	EventTypeHybrid   = "hybrid"
)

const (
	StatusUpcoming = "upcoming"
	StatusLive     = "live"
	StatusEnded    = "ended"
)

type Event struct {
	gorm.Model
	ID                   uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	Name                 string     `gorm:"not null" json:"name"`
	Slogan               string     `json:"slogan,omitempty"`
	Description          string     `gorm:"not null" json:"description"`
	Location             string     `gorm:"not null" json:"location"`
	StartTime            time.Time  `gorm:"not null" json:"start_time"`
	EndTime              time.Time  `gorm:"not null" json:"end_time"`
	MaxAttendees         *int       `json:"max_attendees,omitempty"`
	TicketPrice          int        `gorm:"not null;default:0" json:"ticket_price"`
	IsFree               bool       `gorm:"not null;default:true" json:"is_free"`
	RegistrationDeadline *time.Time `json:"registration_deadline,omitempty"`
	AllowWaitlist        bool       `gorm:"not null;default:false" json:"allow_waitlist"`
	MeetingLink          string     `json:"meeting_link,omitempty"`
	ImagePath            string     `json:"image_path,omitempty"`
	EventType            string     `gorm:"not null;default:'in_person'" json:"event_type"`
	Audience             string     `json:"audience,omitempty"`
	OrganizerID          uuid.UUID  `gorm:"type:uuid;not null;index" json:"organizer_id"`
	Organizer            *User      `gorm:"foreignKey:OrganizerID" json:"organizer,omitempty"`
	CategoryID           *uuid.UUID `gorm:"type:uuid;index" json:"category_id,omitempty"`
	Category             *Category  `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Attendees            []Attendee `gorm:"foreignKey:EventID" json:"attendees,omitempty"`

	// Populated by the filter service's attendee-count annotation.
	AttendeeCount int64 `gorm:"->;-:migration" json:"attendee_count"`

	// Derived from the schedule on read, see AfterFind.
	Status string `gorm:"-" json:"status"`
}

func (event *Event) BeforeCreate(tx *gorm.DB) (err error) {
	if event.ID == uuid.Nil {
		event.ID = uuid.New()
	}
	return
}

func (event *Event) AfterFind(tx *gorm.DB) (err error) {
	event.Status = event.StatusAt(time.Now())
	return
}

// StatusAt derives the event status from its schedule. There is no
// stored status column.
func (event *Event) StatusAt(now time.Time) string {
	switch {
	case now.Before(event.StartTime):
		return StatusUpcoming
	case now.Before(event.EndTime):
		return StatusLive
	default:
		return StatusEnded
	}
}

// IsOrganizedBy is the single source of truth for organizer checks.
func (event *Event) IsOrganizedBy(userID uuid.UUID) bool {
	return event.OrganizerID == userID
}

func (event *Event) IsVirtual() bool {
	return event.EventType == EventTypeVirtual || event.MeetingLink != ""
}

// RegistrationOpenAt reports whether the registration deadline has not
// passed. Events without a deadline accept registrations until start.
func (event *Event) RegistrationOpenAt(now time.Time) bool {
	if event.RegistrationDeadline != nil {
		return now.Before(*event.RegistrationDeadline)
	}
	return now.Before(event.StartTime)
}
