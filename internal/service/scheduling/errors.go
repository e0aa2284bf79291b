package scheduling

import (
	"errors"
	"fmt"
	"time"

	"github.com/malik0174/fitclub/internal/store"
)

var (
	ErrInvalidWindow      = errors.New("end time must be after start time")
	ErrPastStart          = errors.New("start time must not be in the past")
	ErrInvalidName        = errors.New("room name cannot be empty")
	ErrInvalidCapacity    = errors.New("capacity must be a positive integer")
	ErrCapacityExceeded   = errors.New("class capacity cannot exceed room capacity")
	ErrDuplicateName      = errors.New("a room with that name already exists")
	ErrTrainerUnavailable = errors.New("trainer is not available for the requested time range")
	ErrRoomConflict       = errors.New("room is already booked for this time range")
)

// AvailabilityConflictError reports the bounds of the existing window the
// proposed one overlaps. Bounds are zero when the conflict was detected by
// the store constraint instead of the pre-insert check.
type AvailabilityConflictError struct {
	Start time.Time
	End   time.Time
}

func (e *AvailabilityConflictError) Error() string {
	if e.Start.IsZero() {
		return "availability conflicts with an existing window"
	}
	return fmt.Sprintf("availability conflicts with an existing window (%s -> %s)",
		e.Start.Format(time.RFC3339), e.End.Format(time.RFC3339))
}

// TrainerDoubleBookedError means the trainer already has a session that
// overlaps the proposed window. SessionID is zero when the conflict was
// detected by the store constraint.
type TrainerDoubleBookedError struct {
	SessionID int64
}

func (e *TrainerDoubleBookedError) Error() string {
	if e.SessionID == 0 {
		return "trainer already has a session that overlaps this time"
	}
	return fmt.Sprintf("trainer already has a session that overlaps this time (session id %d)", e.SessionID)
}

// MemberDoubleBookedError means the member already has a session that
// overlaps the proposed window. SessionID is zero when the conflict was
// detected by the store constraint.
type MemberDoubleBookedError struct {
	SessionID int64
}

func (e *MemberDoubleBookedError) Error() string {
	if e.SessionID == 0 {
		return "member already has a session that overlaps this time"
	}
	return fmt.Sprintf("member already has a session that overlaps this time (session id %d)", e.SessionID)
}

// mapConstraintViolation translates a store constraint failure into the same
// conflict error the pre-insert check would have produced, wrapping the raw
// violation so it stays reachable via errors.As. Unknown constraints pass
// through as the violation itself.
func mapConstraintViolation(err error) error {
	var cv *store.ConstraintViolationError
	if !errors.As(err, &cv) {
		return err
	}
	switch cv.Constraint {
	case store.ConstraintSessionsRoomNoOverlap:
		return fmt.Errorf("%w: %w", ErrRoomConflict, cv)
	case store.ConstraintSessionsTrainerNoOverlap:
		return fmt.Errorf("%w: %w", &TrainerDoubleBookedError{}, cv)
	case store.ConstraintSessionsMemberNoOverlap:
		return fmt.Errorf("%w: %w", &MemberDoubleBookedError{}, cv)
	case store.ConstraintAvailabilityNoOverlap:
		return fmt.Errorf("%w: %w", &AvailabilityConflictError{}, cv)
	case store.ConstraintRoomsNameUnique:
		return fmt.Errorf("%w: %w", ErrDuplicateName, cv)
	}
	return cv
}
