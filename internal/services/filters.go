package services

import (
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/gatherly/gatherly/internal/models"
)

// EventFilters carries the recognized filter keys of a list request.
// Absent keys are no-ops; predicates compose with AND and are
// order-independent.
type EventFilters struct {
	Category   string
	Place      string
	Search     string
	AttendeeID *uuid.UUID
	Organizer  *uuid.UUID
	StartDate  *time.Time
	EndDate    *time.Time
	EventType  string
	Audience   string
}

func ByCategory(query *gorm.DB, name string) *gorm.DB {
	return query.Joins("JOIN categories ON categories.id = events.category_id").
		Where("categories.name ILIKE ?", "%"+name+"%")
}

func ByPlace(query *gorm.DB, place string) *gorm.DB {
	return query.Where("events.location ILIKE ?", "%"+place+"%")
}

func BySearch(query *gorm.DB, text string) *gorm.DB {
	pattern := "%" + text + "%"
	return query.Where(
		"events.id::text ILIKE ? OR events.name ILIKE ? OR events.slogan ILIKE ? OR events.description ILIKE ?",
		pattern, pattern, pattern, pattern,
	)
}

func ByAttendee(query *gorm.DB, userID uuid.UUID) *gorm.DB {
	return query.Joins("JOIN attendees ON attendees.event_id = events.id").
		Where("attendees.user_id = ?", userID)
}

func ByOrganizer(query *gorm.DB, organizerID uuid.UUID) *gorm.DB {
	return query.Where("events.organizer_id = ?", organizerID)
}

func ByDateRange(query *gorm.DB, start, end *time.Time) *gorm.DB {
	if start != nil {
		query = query.Where("events.start_time >= ?", *start)
	}
	if end != nil {
		query = query.Where("events.start_time <= ?", *end)
	}
	return query
}

func ByEventType(query *gorm.DB, eventType string) *gorm.DB {
	return query.Where("events.event_type = ?", eventType)
}

func ByAudience(query *gorm.DB, audience string) *gorm.DB {
	return query.Where("events.audience ILIKE ?", "%"+audience+"%")
}

// WithAttendeeCount annotates each row with the computed count of its
// attendee rows. The count is a read-only aggregate, never stored.
func WithAttendeeCount(query *gorm.DB) *gorm.DB {
	return query.Select(
		"events.*, (SELECT COUNT(*) FROM attendees WHERE attendees.event_id = events.id) AS attendee_count",
	)
}

// ApplyFilters chains whichever predicates the filter set carries onto
// the base query. Unknown request keys never reach this point.
func ApplyFilters(query *gorm.DB, filters EventFilters) *gorm.DB {
	if filters.Category != "" {
		query = ByCategory(query, filters.Category)
	}
	if filters.Place != "" {
		query = ByPlace(query, filters.Place)
	}
	if filters.Search != "" {
		query = BySearch(query, filters.Search)
	}
	if filters.AttendeeID != nil {
		query = ByAttendee(query, *filters.AttendeeID)
	}
	if filters.Organizer != nil {
		query = ByOrganizer(query, *filters.Organizer)
	}
	if filters.StartDate != nil || filters.EndDate != nil {
		query = ByDateRange(query, filters.StartDate, filters.EndDate)
	}
	if filters.EventType != "" {
		query = ByEventType(query, filters.EventType)
	}
	if filters.Audience != "" {
		query = ByAudience(query, filters.Audience)
	}
	return query
}

// CanViewAttendeeFilters gates the attendee_id filter: admins, or users
// who organize at least one event.
func CanViewAttendeeFilters(db *gorm.DB, user *models.User) bool {
	if user.IsAdmin() {
		return true
	}
	var organized int64
	err := db.Model(&models.Event{}).Where("organizer_id = ?", user.ID).Count(&organized).Error
	if err != nil {
		log.Error().Err(err).Str("user_id", user.ID.String()).Msg("failed to count organized events")
		return false
	}
	return organized > 0
}
