package services

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/gatherly/gatherly/internal/metrics"
	"github.com/gatherly/gatherly/internal/models"
)

// Register creates the attendee row for a (user, event) pair. It is the
// only registration entry point; every handler goes through it so the
// capacity, deadline and duplicate rules cannot diverge per call path.
//
// The capacity check and insert run in one transaction with the event
// row locked, so concurrent registrations for the same event serialize
// and cannot overshoot max_attendees. The unique (event_id, user_id)
// index backstops duplicates regardless.
func Register(db *gorm.DB, eventID, userID uuid.UUID) (*models.Attendee, error) {
	var attendee *models.Attendee

	err := db.Transaction(func(tx *gorm.DB) error {
		var event models.Event
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", eventID).First(&event).Error; err != nil {
			return err
		}

		if event.IsOrganizedBy(userID) {
			return ErrOrganizerSelfSignup
		}

		if !event.RegistrationOpenAt(time.Now()) {
			return ErrRegistrationClosed
		}

		if event.MaxAttendees != nil {
			var registered int64
			if err := tx.Model(&models.Attendee{}).
				Where("event_id = ?", event.ID).Count(&registered).Error; err != nil {
				return err
			}
			if registered >= int64(*event.MaxAttendees) {
				return ErrCapacityExceeded
			}
		}

		attendee = &models.Attendee{EventID: event.ID, UserID: userID}
		if err := tx.Create(attendee).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrAlreadyRegistered
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.RegistrationsTotal.Inc()
	log.Info().
		Str("event_id", eventID.String()).
		Str("user_id", userID.String()).
		Msg("attendee registered")
	return attendee, nil
}

// CheckIn flips the attendee to checked in. One-way: nothing in the
// exposed API reverses it.
func CheckIn(db *gorm.DB, attendee *models.Attendee) error {
	if attendee.CheckedIn {
		return ErrAlreadyCheckedIn
	}

	now := time.Now()
	attendee.CheckedIn = true
	attendee.CheckedInAt = &now
	if err := db.Model(attendee).
		Updates(map[string]interface{}{"checked_in": true, "checked_in_at": now}).Error; err != nil {
		return err
	}

	metrics.CheckInsTotal.Inc()
	log.Info().
		Str("attendee_id", attendee.ID.String()).
		Str("event_id", attendee.EventID.String()).
		Msg("attendee checked in")
	return nil
}

// Cancel removes the registration. Deletion is unconditional once the
// policy layer has admitted the caller; a checked-in attendee may still
// cancel.
func Cancel(db *gorm.DB, attendee *models.Attendee) error {
	if err := db.Delete(attendee).Error; err != nil {
		return err
	}

	metrics.CancellationsTotal.Inc()
	log.Info().
		Str("attendee_id", attendee.ID.String()).
		Str("event_id", attendee.EventID.String()).
		Msg("registration cancelled")
	return nil
}
