package store

import (
	"errors"
	"fmt"
)

var ErrNotFound = errors.New("not found")

// Constraint names the schema declares. Service code maps these back to the
// same conflict errors its pre-insert checks produce, so a caller cannot
// tell a race-detected conflict from a pre-detected one.
const (
	ConstraintAvailabilityNoOverlap    = "trainer_availability_no_overlap"
	ConstraintSessionsRoomNoOverlap    = "sessions_room_no_overlap"
	ConstraintSessionsTrainerNoOverlap = "sessions_trainer_no_overlap"
	ConstraintSessionsMemberNoOverlap  = "sessions_member_no_overlap"
	ConstraintRoomsNameUnique          = "rooms_name_key"
	ConstraintMembersEmailUnique       = "members_email_key"
	ConstraintMembersPhoneUnique       = "members_phone_key"
)

// ConstraintViolationError surfaces when a database constraint aborts a
// transaction after the application-level checks passed (a lost race), or
// when no application-level check covers the constraint at all.
type ConstraintViolationError struct {
	Constraint string
	Detail     string
}

func (e *ConstraintViolationError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("store constraint %q violated", e.Constraint)
	}
	return fmt.Sprintf("store constraint %q violated: %s", e.Constraint, e.Detail)
}
