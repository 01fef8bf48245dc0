package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Category struct {
	ID          uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primary_key" json:"id"`
	Name        string         `gorm:"unique;not null" json:"name"`
	Slug        string         `gorm:"unique;not null" json:"slug"`
	Description string         `json:"description,omitempty"`
	Events      []Event        `gorm:"foreignKey:CategoryID" json:"events,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

func (category *Category) BeforeSave(tx *gorm.DB) (err error) {
	if category.Slug == "" {
		category.Slug = Slugify(category.Name)
	}
	return
}

func Slugify(name string) string {
	// Map disallowed runes to spaces first so runs of them collapse
	// into a single hyphen.
	cleaned := strings.Map(func(r rune) rune {
		if r >= 'a' && r <= 'z' || r >= '0' && r <= '9' {
			return r
		}
		return ' '
	}, strings.ToLower(name))
	return strings.Join(strings.Fields(cleaned), "-")
}
