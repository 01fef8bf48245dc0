package services

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/gatherly/gatherly/internal/models"
)

type EventAnalytics struct {
	TotalRegistrations int64    `json:"total_registrations"`
	CheckedIn          int64    `json:"checked_in"`
	CheckInRate        float64  `json:"check_in_rate"`
	Capacity           *int     `json:"capacity,omitempty"`
	SpotsRemaining     *int64   `json:"spots_remaining,omitempty"`
	FeedbackCount      int64    `json:"feedback_count"`
	AverageRating      *float64 `json:"average_rating,omitempty"`
}

// ComputeEventAnalytics aggregates registration, check-in and feedback
// figures for one event. Everything is computed on read.
func ComputeEventAnalytics(db *gorm.DB, event *models.Event) (*EventAnalytics, error) {
	analytics := &EventAnalytics{Capacity: event.MaxAttendees}

	if err := db.Model(&models.Attendee{}).
		Where("event_id = ?", event.ID).
		Count(&analytics.TotalRegistrations).Error; err != nil {
		return nil, err
	}

	if err := db.Model(&models.Attendee{}).
		Where("event_id = ? AND checked_in = true", event.ID).
		Count(&analytics.CheckedIn).Error; err != nil {
		return nil, err
	}

	if analytics.TotalRegistrations > 0 {
		analytics.CheckInRate = float64(analytics.CheckedIn) / float64(analytics.TotalRegistrations)
	}

	if event.MaxAttendees != nil {
		remaining := int64(*event.MaxAttendees) - analytics.TotalRegistrations
		if remaining < 0 {
			remaining = 0
		}
		analytics.SpotsRemaining = &remaining
	}

	if err := db.Model(&models.EventFeedback{}).
		Where("event_id = ?", event.ID).
		Count(&analytics.FeedbackCount).Error; err != nil {
		return nil, err
	}

	if analytics.FeedbackCount > 0 {
		var average float64
		if err := db.Model(&models.EventFeedback{}).
			Where("event_id = ?", event.ID).
			Select("AVG(rating)").Scan(&average).Error; err != nil {
			return nil, err
		}
		analytics.AverageRating = &average
	}

	return analytics, nil
}

// CountEventsAttended backs the computed events_attended field on
// profile reads.
func CountEventsAttended(db *gorm.DB, userID uuid.UUID) (int64, error) {
	var count int64
	err := db.Model(&models.Attendee{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}
