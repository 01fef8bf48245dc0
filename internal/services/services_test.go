package services

import (
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/gatherly/gatherly/internal/models"
)

// setupTestDB connects to the database named by TEST_DATABASE_URL,
// migrates the schema and truncates it. Tests needing storage skip
// when the variable is unset.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.Exec("CREATE EXTENSION IF NOT EXISTS \"uuid-ossp\"").Error)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Event{},
		&models.Attendee{},
		&models.EventCommunication{},
		&models.EventFeedback{},
		&models.RevokedToken{},
	))

	for _, table := range []string{"attendees", "event_communications", "event_feedbacks", "events", "categories", "revoked_tokens", "users"} {
		require.NoError(t, db.Exec("DELETE FROM "+table).Error)
	}

	return db
}

func createTestUser(t *testing.T, db *gorm.DB, role string) *models.User {
	t.Helper()
	user := &models.User{
		Name:     "Test User",
		Email:    fmt.Sprintf("%s@example.com", uuid.New().String()),
		Password: "hashed",
		Role:     role,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

type eventOpts struct {
	maxAttendees *int
	deadline     *time.Time
	category     *models.Category
	location     string
	name         string
}

func createTestEvent(t *testing.T, db *gorm.DB, organizer *models.User, opts eventOpts) *models.Event {
	t.Helper()

	name := opts.name
	if name == "" {
		name = "Test Event"
	}
	location := opts.location
	if location == "" {
		location = "Test Hall"
	}

	event := &models.Event{
		Name:                 name,
		Description:          "A test event",
		Location:             location,
		StartTime:            time.Now().Add(48 * time.Hour),
		EndTime:              time.Now().Add(50 * time.Hour),
		OrganizerID:          organizer.ID,
		MaxAttendees:         opts.maxAttendees,
		RegistrationDeadline: opts.deadline,
		EventType:            models.EventTypeInPerson,
	}
	if opts.category != nil {
		event.CategoryID = &opts.category.ID
	}
	require.NoError(t, db.Create(event).Error)
	return event
}

func createTestCategory(t *testing.T, db *gorm.DB, name string) *models.Category {
	t.Helper()
	category := &models.Category{Name: name}
	require.NoError(t, db.Create(category).Error)
	return category
}
