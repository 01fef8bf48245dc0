package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gatherly/gatherly/internal/models"
)

func eventNames(events []models.Event) []string {
	names := make([]string, 0, len(events))
	for _, event := range events {
		names = append(names, event.Name)
	}
	return names
}

func TestFilterComposition(t *testing.T) {
	db := setupTestDB(t)
	organizer := createTestUser(t, db, models.RoleOrganizer)
	tech := createTestCategory(t, db, "Tech")
	music := createTestCategory(t, db, "Music")

	// A(Tech, NYC), B(Music, NYC), C(Tech, LA)
	createTestEvent(t, db, organizer, eventOpts{name: "A", category: tech, location: "NYC"})
	createTestEvent(t, db, organizer, eventOpts{name: "B", category: music, location: "NYC"})
	createTestEvent(t, db, organizer, eventOpts{name: "C", category: tech, location: "LA"})

	var byCategory []models.Event
	require.NoError(t, ByCategory(db.Model(&models.Event{}), "Tech").Find(&byCategory).Error)
	assert.ElementsMatch(t, []string{"A", "C"}, eventNames(byCategory))

	// Predicates compose with AND; order does not matter.
	var composed []models.Event
	query := ApplyFilters(db.Model(&models.Event{}), EventFilters{Category: "Tech", Place: "NYC"})
	require.NoError(t, query.Find(&composed).Error)
	assert.Equal(t, []string{"A"}, eventNames(composed))

	var reversed []models.Event
	query = ByCategory(ByPlace(db.Model(&models.Event{}), "NYC"), "Tech")
	require.NoError(t, query.Find(&reversed).Error)
	assert.Equal(t, []string{"A"}, eventNames(reversed))
}

func TestBySearchMatchesNameSloganDescription(t *testing.T) {
	db := setupTestDB(t)
	organizer := createTestUser(t, db, models.RoleOrganizer)

	event := createTestEvent(t, db, organizer, eventOpts{name: "GopherCon"})
	createTestEvent(t, db, organizer, eventOpts{name: "Jazz Night"})

	var results []models.Event
	require.NoError(t, BySearch(db.Model(&models.Event{}), "gopher").Find(&results).Error)
	assert.Equal(t, []string{"GopherCon"}, eventNames(results))

	// Ids match by substring, same as the text columns.
	results = nil
	require.NoError(t, BySearch(db.Model(&models.Event{}), event.ID.String()).Find(&results).Error)
	assert.Equal(t, []string{"GopherCon"}, eventNames(results))

	results = nil
	require.NoError(t, BySearch(db.Model(&models.Event{}), event.ID.String()[:8]).Find(&results).Error)
	assert.Equal(t, []string{"GopherCon"}, eventNames(results))
}

func TestByAttendeeAndOrganizer(t *testing.T) {
	db := setupTestDB(t)
	organizer := createTestUser(t, db, models.RoleOrganizer)
	other := createTestUser(t, db, models.RoleOrganizer)
	member := createTestUser(t, db, models.RoleMember)

	attended := createTestEvent(t, db, organizer, eventOpts{name: "Attended"})
	createTestEvent(t, db, other, eventOpts{name: "Skipped"})

	_, err := Register(db, attended.ID, member.ID)
	require.NoError(t, err)

	var byAttendee []models.Event
	require.NoError(t, ByAttendee(db.Model(&models.Event{}), member.ID).Find(&byAttendee).Error)
	assert.Equal(t, []string{"Attended"}, eventNames(byAttendee))

	var byOrganizer []models.Event
	require.NoError(t, ByOrganizer(db.Model(&models.Event{}), other.ID).Find(&byOrganizer).Error)
	assert.Equal(t, []string{"Skipped"}, eventNames(byOrganizer))
}

func TestByDateRange(t *testing.T) {
	db := setupTestDB(t)
	organizer := createTestUser(t, db, models.RoleOrganizer)

	createTestEvent(t, db, organizer, eventOpts{name: "Soon"})
	late := createTestEvent(t, db, organizer, eventOpts{name: "Late"})
	require.NoError(t, db.Model(late).Update("start_time", time.Now().Add(30*24*time.Hour)).Error)

	cutoff := time.Now().Add(7 * 24 * time.Hour)
	var results []models.Event
	require.NoError(t, ByDateRange(db.Model(&models.Event{}), nil, &cutoff).Find(&results).Error)
	assert.Equal(t, []string{"Soon"}, eventNames(results))

	results = nil
	require.NoError(t, ByDateRange(db.Model(&models.Event{}), &cutoff, nil).Find(&results).Error)
	assert.Equal(t, []string{"Late"}, eventNames(results))
}

func TestWithAttendeeCount(t *testing.T) {
	db := setupTestDB(t)
	organizer := createTestUser(t, db, models.RoleOrganizer)
	event := createTestEvent(t, db, organizer, eventOpts{})

	for i := 0; i < 2; i++ {
		member := createTestUser(t, db, models.RoleMember)
		_, err := Register(db, event.ID, member.ID)
		require.NoError(t, err)
	}

	var annotated models.Event
	require.NoError(t, WithAttendeeCount(db.Model(&models.Event{})).
		Where("events.id = ?", event.ID).First(&annotated).Error)
	assert.Equal(t, int64(2), annotated.AttendeeCount)
}

func TestCanViewAttendeeFilters(t *testing.T) {
	db := setupTestDB(t)

	admin := createTestUser(t, db, models.RoleAdmin)
	assert.True(t, CanViewAttendeeFilters(db, admin))

	member := createTestUser(t, db, models.RoleMember)
	assert.False(t, CanViewAttendeeFilters(db, member))

	organizer := createTestUser(t, db, models.RoleOrganizer)
	createTestEvent(t, db, organizer, eventOpts{})
	assert.True(t, CanViewAttendeeFilters(db, organizer))
}

func TestCanViewAttendeeFiltersDeniesOnStorageFault(t *testing.T) {
	db := setupTestDB(t)
	organizer := createTestUser(t, db, models.RoleOrganizer)
	createTestEvent(t, db, organizer, eventOpts{})

	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	// A failed count denies the privileged filter instead of granting it.
	assert.False(t, CanViewAttendeeFilters(db, organizer))
}

func TestApplyFiltersIgnoresEmptyKeys(t *testing.T) {
	db := setupTestDB(t)
	organizer := createTestUser(t, db, models.RoleOrganizer)
	createTestEvent(t, db, organizer, eventOpts{name: "Only"})

	var results []models.Event
	require.NoError(t, ApplyFilters(db.Model(&models.Event{}), EventFilters{}).Find(&results).Error)
	assert.Equal(t, []string{"Only"}, eventNames(results))
}
