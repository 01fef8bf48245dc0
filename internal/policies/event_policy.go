// Package policies holds the authorization predicates for events and
// attendees. Every function is pure: it inspects the actor and the
// entity and returns a verdict, with no storage access and no side
// effects. Handlers evaluate the policy before calling into services;
// a denial short-circuits with 403 and no mutation.
package policies

import (
	"github.com/gatherly/gatherly/internal/models"
)

// CanCreateEvent admits organizers and admins. Members qualify too:
// the create handler promotes them to organizer first, via
// services.PromoteToOrganizer, so the transition stays explicit.
func CanCreateEvent(actor *models.User) bool {
	switch actor.Role {
	case models.RoleOrganizer, models.RoleAdmin, models.RoleMember:
		return true
	}
	return false
}

func CanUpdateEvent(actor *models.User, event *models.Event) bool {
	return event.IsOrganizedBy(actor.ID) || actor.IsAdmin()
}

func CanDeleteEvent(actor *models.User, event *models.Event) bool {
	return event.IsOrganizedBy(actor.ID) || actor.IsAdmin()
}

func CanViewAnalytics(actor *models.User, event *models.Event) bool {
	return event.IsOrganizedBy(actor.ID) || actor.IsAdmin()
}

func CanSendCommunications(actor *models.User, event *models.Event) bool {
	return event.IsOrganizedBy(actor.ID) || actor.IsAdmin()
}

func CanCheckInAttendees(actor *models.User, event *models.Event) bool {
	return event.IsOrganizedBy(actor.ID) || actor.IsAdmin()
}

// CanRegister admits anyone but the event's own organizer. Deadline
// and capacity are not policy concerns: the registration service owns
// them, so the rules cannot diverge between entry points.
func CanRegister(actor *models.User, event *models.Event) bool {
	return !event.IsOrganizedBy(actor.ID)
}
