package policies

import (
	"github.com/gatherly/gatherly/internal/models"
)

func CanViewAttendee(actor *models.User, attendee *models.Attendee, event *models.Event) bool {
	return attendee.UserID == actor.ID || event.IsOrganizedBy(actor.ID) || actor.IsAdmin()
}

func CanListAttendees(actor *models.User, event *models.Event) bool {
	return event.IsOrganizedBy(actor.ID) || actor.IsAdmin()
}

// CanCancelRegistration admits only the registrant. Organizers cannot
// cancel on a user's behalf.
func CanCancelRegistration(actor *models.User, attendee *models.Attendee) bool {
	return attendee.UserID == actor.ID
}

// CanCheckInAttendee admits the event organizer and admins, plus the
// attendee themself for virtual events (self check-in via meeting
// link, no organizer at the door).
func CanCheckInAttendee(actor *models.User, attendee *models.Attendee, event *models.Event) bool {
	if event.IsOrganizedBy(actor.ID) || actor.IsAdmin() {
		return true
	}
	return attendee.UserID == actor.ID && event.IsVirtual()
}
