package policies

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/gatherly/gatherly/internal/models"
)

func TestCanCreateEvent(t *testing.T) {
	assert.True(t, CanCreateEvent(&models.User{Role: models.RoleMember}))
	assert.True(t, CanCreateEvent(&models.User{Role: models.RoleOrganizer}))
	assert.True(t, CanCreateEvent(&models.User{Role: models.RoleAdmin}))
	assert.False(t, CanCreateEvent(&models.User{Role: "banned"}))
}

func TestEventOwnershipPolicies(t *testing.T) {
	organizer := &models.User{ID: uuid.New(), Role: models.RoleOrganizer}
	admin := &models.User{ID: uuid.New(), Role: models.RoleAdmin}
	stranger := &models.User{ID: uuid.New(), Role: models.RoleOrganizer}
	event := &models.Event{ID: uuid.New(), OrganizerID: organizer.ID}

	checks := []func(*models.User, *models.Event) bool{
		CanUpdateEvent,
		CanDeleteEvent,
		CanViewAnalytics,
		CanSendCommunications,
		CanCheckInAttendees,
	}

	for _, check := range checks {
		assert.True(t, check(organizer, event))
		assert.True(t, check(admin, event))
		assert.False(t, check(stranger, event))
	}
}

func TestCanRegister(t *testing.T) {
	organizer := &models.User{ID: uuid.New(), Role: models.RoleOrganizer}
	member := &models.User{ID: uuid.New(), Role: models.RoleMember}
	event := &models.Event{OrganizerID: organizer.ID}

	assert.True(t, CanRegister(member, event))
	assert.False(t, CanRegister(organizer, event), "organizer cannot register for their own event")
}
