package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gatherly/gatherly/internal/models"
)

func TestRegisterCreatesAttendee(t *testing.T) {
	db := setupTestDB(t)
	organizer := createTestUser(t, db, models.RoleOrganizer)
	member := createTestUser(t, db, models.RoleMember)
	event := createTestEvent(t, db, organizer, eventOpts{})

	attendee, err := Register(db, event.ID, member.ID)
	require.NoError(t, err)
	assert.Equal(t, event.ID, attendee.EventID)
	assert.Equal(t, member.ID, attendee.UserID)
	assert.False(t, attendee.CheckedIn)
}

func TestRegisterTwiceConflicts(t *testing.T) {
	db := setupTestDB(t)
	organizer := createTestUser(t, db, models.RoleOrganizer)
	member := createTestUser(t, db, models.RoleMember)
	event := createTestEvent(t, db, organizer, eventOpts{})

	_, err := Register(db, event.ID, member.ID)
	require.NoError(t, err)

	_, err = Register(db, event.ID, member.ID)
	assert.ErrorIs(t, err, ErrAlreadyRegistered)

	// No second row was created.
	var count int64
	db.Model(&models.Attendee{}).Where("event_id = ? AND user_id = ?", event.ID, member.ID).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestRegisterCapacityExceeded(t *testing.T) {
	db := setupTestDB(t)
	organizer := createTestUser(t, db, models.RoleOrganizer)
	max := 2
	event := createTestEvent(t, db, organizer, eventOpts{maxAttendees: &max})

	first := createTestUser(t, db, models.RoleMember)
	second := createTestUser(t, db, models.RoleMember)
	third := createTestUser(t, db, models.RoleMember)

	_, err := Register(db, event.ID, first.ID)
	require.NoError(t, err)
	_, err = Register(db, event.ID, second.ID)
	require.NoError(t, err)

	_, err = Register(db, event.ID, third.ID)
	assert.ErrorIs(t, err, ErrCapacityExceeded)
}

func TestRegisterAfterDeadline(t *testing.T) {
	db := setupTestDB(t)
	organizer := createTestUser(t, db, models.RoleOrganizer)
	member := createTestUser(t, db, models.RoleMember)
	passed := time.Now().Add(-time.Hour)
	max := 100
	event := createTestEvent(t, db, organizer, eventOpts{deadline: &passed, maxAttendees: &max})

	_, err := Register(db, event.ID, member.ID)
	assert.ErrorIs(t, err, ErrRegistrationClosed, "deadline rejection applies regardless of capacity")
}

func TestRegisterOrganizerOwnEvent(t *testing.T) {
	db := setupTestDB(t)
	organizer := createTestUser(t, db, models.RoleOrganizer)
	event := createTestEvent(t, db, organizer, eventOpts{})

	_, err := Register(db, event.ID, organizer.ID)
	assert.ErrorIs(t, err, ErrOrganizerSelfSignup)
}

func TestCheckInIsMonotonic(t *testing.T) {
	db := setupTestDB(t)
	organizer := createTestUser(t, db, models.RoleOrganizer)
	member := createTestUser(t, db, models.RoleMember)
	event := createTestEvent(t, db, organizer, eventOpts{})

	attendee, err := Register(db, event.ID, member.ID)
	require.NoError(t, err)

	require.NoError(t, CheckIn(db, attendee))
	assert.True(t, attendee.CheckedIn)
	require.NotNil(t, attendee.CheckedInAt)

	err = CheckIn(db, attendee)
	assert.ErrorIs(t, err, ErrAlreadyCheckedIn)

	// The stored row stays checked in.
	var stored models.Attendee
	require.NoError(t, db.Where("id = ?", attendee.ID).First(&stored).Error)
	assert.True(t, stored.CheckedIn)
}

func TestCancelRemovesRowAndAllowsReRegistration(t *testing.T) {
	db := setupTestDB(t)
	organizer := createTestUser(t, db, models.RoleOrganizer)
	member := createTestUser(t, db, models.RoleMember)
	event := createTestEvent(t, db, organizer, eventOpts{})

	attendee, err := Register(db, event.ID, member.ID)
	require.NoError(t, err)

	require.NoError(t, Cancel(db, attendee))

	var count int64
	db.Model(&models.Attendee{}).Where("event_id = ? AND user_id = ?", event.ID, member.ID).Count(&count)
	assert.Equal(t, int64(0), count)

	// The pair can register again after cancelling.
	_, err = Register(db, event.ID, member.ID)
	assert.NoError(t, err)
}

func TestCancelAfterCheckIn(t *testing.T) {
	db := setupTestDB(t)
	organizer := createTestUser(t, db, models.RoleOrganizer)
	member := createTestUser(t, db, models.RoleMember)
	event := createTestEvent(t, db, organizer, eventOpts{})

	attendee, err := Register(db, event.ID, member.ID)
	require.NoError(t, err)
	require.NoError(t, CheckIn(db, attendee))

	// A checked-in attendee can still cancel their registration.
	assert.NoError(t, Cancel(db, attendee))
}

func TestCountEventsAttended(t *testing.T) {
	db := setupTestDB(t)
	organizer := createTestUser(t, db, models.RoleOrganizer)
	member := createTestUser(t, db, models.RoleMember)

	for i := 0; i < 3; i++ {
		event := createTestEvent(t, db, organizer, eventOpts{})
		_, err := Register(db, event.ID, member.ID)
		require.NoError(t, err)
	}

	count, err := CountEventsAttended(db, member.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
}
