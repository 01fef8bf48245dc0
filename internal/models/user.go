package models

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	RoleMember    = "member"
	RoleOrganizer = "organizer"
	RoleAdmin     = "admin"
)

type User struct {
	gorm.Model
	ID             uuid.UUID                   `gorm:"type:uuid;primary_key" json:"id"`
	Name           string                      `gorm:"not null" json:"name"`
	Email          string                      `gorm:"unique;not null" json:"email"`
	Password       string                      `gorm:"not null" json:"-"`
	Role           string                      `gorm:"not null;default:'member'" json:"role"`
	ProfilePicture string                      `json:"profile_picture,omitempty"`
	Bio            string                      `json:"bio,omitempty"`
	SocialLinks    datatypes.JSONMap           `json:"social_links,omitempty"`
	Interests      datatypes.JSONSlice[string] `json:"interests,omitempty"`
	Events         []Event                     `gorm:"foreignKey:OrganizerID" json:"events,omitempty"`
	Registrations  []Attendee                  `gorm:"foreignKey:UserID" json:"registrations,omitempty"`

	// Computed from attendee rows on read, never stored.
	EventsAttended int64 `gorm:"-" json:"events_attended"`
}

func (user *User) BeforeCreate(tx *gorm.DB) (err error) {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	return
}

func (user *User) IsAdmin() bool {
	return user.Role == RoleAdmin
}
