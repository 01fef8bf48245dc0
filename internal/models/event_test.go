package models

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestEventStatusAt(t *testing.T) {
	start := time.Date(2026, 6, 1, 18, 0, 0, 0, time.UTC)
	end := start.Add(3 * time.Hour)
	event := &Event{StartTime: start, EndTime: end}

	assert.Equal(t, StatusUpcoming, event.StatusAt(start.Add(-time.Hour)))
	assert.Equal(t, StatusLive, event.StatusAt(start))
	assert.Equal(t, StatusLive, event.StatusAt(start.Add(time.Hour)))
	assert.Equal(t, StatusEnded, event.StatusAt(end))
	assert.Equal(t, StatusEnded, event.StatusAt(end.Add(time.Hour)))
}

func TestEventRegistrationOpenAt(t *testing.T) {
	start := time.Date(2026, 6, 1, 18, 0, 0, 0, time.UTC)
	deadline := start.Add(-24 * time.Hour)

	withDeadline := &Event{StartTime: start, EndTime: start.Add(time.Hour), RegistrationDeadline: &deadline}
	assert.True(t, withDeadline.RegistrationOpenAt(deadline.Add(-time.Minute)))
	assert.False(t, withDeadline.RegistrationOpenAt(deadline))
	assert.False(t, withDeadline.RegistrationOpenAt(start))

	// Without a deadline, registration stays open until start.
	withoutDeadline := &Event{StartTime: start, EndTime: start.Add(time.Hour)}
	assert.True(t, withoutDeadline.RegistrationOpenAt(start.Add(-time.Minute)))
	assert.False(t, withoutDeadline.RegistrationOpenAt(start))
}

func TestEventIsOrganizedBy(t *testing.T) {
	organizerID := uuid.New()
	event := &Event{OrganizerID: organizerID}

	assert.True(t, event.IsOrganizedBy(organizerID))
	assert.False(t, event.IsOrganizedBy(uuid.New()))
}

func TestEventIsVirtual(t *testing.T) {
	assert.True(t, (&Event{EventType: EventTypeVirtual}).IsVirtual())
	assert.True(t, (&Event{EventType: EventTypeInPerson, MeetingLink: "https://meet.example.com/x"}).IsVirtual())
	assert.False(t, (&Event{EventType: EventTypeInPerson}).IsVirtual())
}

func TestSlugify(t *testing.T) {
	assert.Equal(t, "tech-meetups", Slugify("Tech Meetups"))
	assert.Equal(t, "rock-roll", Slugify("  Rock & Roll!  "))
	assert.Equal(t, "food-drink", Slugify("Food -- & -- Drink"))
	assert.Equal(t, "2026-kickoff", Slugify("2026 Kickoff"))
}
