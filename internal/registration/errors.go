package registration

import "errors"

var (
	// ErrEventNotFound means the event id does not match any record.
	ErrEventNotFound = errors.New("event not found")

	// ErrCapacityExceeded means the requested tickets would push the
	// event past its capacity.
	ErrCapacityExceeded = errors.New("event capacity exceeded")

	// ErrRegistrationBusy means another registration for the same
	// event held the write lock for the whole retry window.
	ErrRegistrationBusy = errors.New("another registration is in progress for this event")

	// ErrVersionConflict means the event row changed between read and
	// write despite the lock; the registration was not recorded.
	ErrVersionConflict = errors.New("event was modified concurrently")

	// ErrRegistrationNotFound means the registration id does not
	// appear on the event's list.
	ErrRegistrationNotFound = errors.New("registration not found")
)
