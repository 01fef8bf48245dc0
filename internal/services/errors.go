package services

import "errors"

// Failure reasons for state-machine transitions. Handlers map these to
// HTTP statuses at the boundary.
var (
	ErrAlreadyRegistered   = errors.New("user is already registered for this event")
	ErrCapacityExceeded    = errors.New("event has reached maximum capacity")
	ErrRegistrationClosed  = errors.New("registration deadline has passed")
	ErrAlreadyCheckedIn    = errors.New("attendee is already checked in")
	ErrOrganizerSelfSignup = errors.New("organizers cannot register for their own event")
)
