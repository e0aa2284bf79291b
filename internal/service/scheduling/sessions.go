package scheduling

import (
	"context"
	"time"

	"github.com/malik0174/fitclub/internal/domain"
	"github.com/malik0174/fitclub/internal/store"
)

type SchedulePTInput struct {
	MemberID  int64
	TrainerID int64
	RoomID    int64
	AdminID   int64
	StartTime time.Time
	EndTime   time.Time
}

// SchedulePTSession books a one-on-one session. Checks run in a fixed order
// and the first failure wins; nothing is persisted unless every check
// passes. PT capacity is fixed at 1.
func (s *Service) SchedulePTSession(ctx context.Context, in SchedulePTInput) (domain.Session, error) {
	start := in.StartTime.UTC()
	end := in.EndTime.UTC()
	if !end.After(start) {
		return domain.Session{}, ErrInvalidWindow
	}
	if start.Before(s.now().UTC()) {
		return domain.Session{}, ErrPastStart
	}

	locks := []store.LockKey{
		{Dimension: store.DimensionRoom, ID: in.RoomID},
		{Dimension: store.DimensionTrainer, ID: in.TrainerID},
		{Dimension: store.DimensionMember, ID: in.MemberID},
	}

	var out domain.Session
	err := s.store.InTransaction(ctx, locks, func(ctx context.Context, tx store.ClubTx) error {
		if _, err := findMember(ctx, tx, in.MemberID); err != nil {
			return err
		}
		if _, err := findTrainer(ctx, tx, in.TrainerID); err != nil {
			return err
		}
		if _, err := findRoom(ctx, tx, in.RoomID); err != nil {
			return err
		}
		if _, err := findAdmin(ctx, tx, in.AdminID); err != nil {
			return err
		}

		if err := s.checkBookable(ctx, tx, in.TrainerID, start, end); err != nil {
			return err
		}
		if conflict, err := s.check.OverlappingSession(ctx, tx, store.DimensionMember, in.MemberID, start, end); err != nil {
			return err
		} else if conflict != nil {
			return &MemberDoubleBookedError{SessionID: conflict.ID}
		}
		if err := s.checkRoomFree(ctx, tx, in.RoomID, start, end); err != nil {
			return err
		}

		memberID := in.MemberID
		sess, err := tx.InsertSession(ctx, domain.Session{
			Type:        domain.SessionTypePT,
			StartTime:   start,
			EndTime:     end,
			MaxCapacity: 1,
			RoomID:      in.RoomID,
			AdminID:     in.AdminID,
			TrainerID:   in.TrainerID,
			MemberID:    &memberID,
		})
		if err != nil {
			return mapConstraintViolation(err)
		}
		out = sess
		return nil
	})
	if err != nil {
		return domain.Session{}, err
	}
	return out, nil
}

type CreateClassInput struct {
	AdminID     int64
	TrainerID   int64
	RoomID      int64
	StartTime   time.Time
	EndTime     time.Time
	MaxCapacity int
}

// CreateClassSession books a group class. No member is attached and no
// member-overlap check applies, but the class capacity must be positive and
// must not exceed the room's capacity.
func (s *Service) CreateClassSession(ctx context.Context, in CreateClassInput) (domain.Session, error) {
	start := in.StartTime.UTC()
	end := in.EndTime.UTC()
	if !end.After(start) {
		return domain.Session{}, ErrInvalidWindow
	}
	if start.Before(s.now().UTC()) {
		return domain.Session{}, ErrPastStart
	}
	if in.MaxCapacity <= 0 {
		return domain.Session{}, ErrInvalidCapacity
	}

	locks := []store.LockKey{
		{Dimension: store.DimensionRoom, ID: in.RoomID},
		{Dimension: store.DimensionTrainer, ID: in.TrainerID},
	}

	var out domain.Session
	err := s.store.InTransaction(ctx, locks, func(ctx context.Context, tx store.ClubTx) error {
		if _, err := findAdmin(ctx, tx, in.AdminID); err != nil {
			return err
		}
		if _, err := findTrainer(ctx, tx, in.TrainerID); err != nil {
			return err
		}
		room, err := findRoom(ctx, tx, in.RoomID)
		if err != nil {
			return err
		}
		if in.MaxCapacity > room.MaxCapacity {
			return ErrCapacityExceeded
		}

		if err := s.checkBookable(ctx, tx, in.TrainerID, start, end); err != nil {
			return err
		}
		if err := s.checkRoomFree(ctx, tx, in.RoomID, start, end); err != nil {
			return err
		}

		sess, err := tx.InsertSession(ctx, domain.Session{
			Type:        domain.SessionTypeClass,
			StartTime:   start,
			EndTime:     end,
			MaxCapacity: in.MaxCapacity,
			RoomID:      in.RoomID,
			AdminID:     in.AdminID,
			TrainerID:   in.TrainerID,
		})
		if err != nil {
			return mapConstraintViolation(err)
		}
		out = sess
		return nil
	})
	if err != nil {
		return domain.Session{}, err
	}
	return out, nil
}

// checkBookable enforces the two trainer-side rules shared by PT and CLASS
// scheduling: the window must sit inside an availability window, and the
// trainer must not already be booked.
func (s *Service) checkBookable(ctx context.Context, tx store.ClubTx, trainerID int64, start, end time.Time) error {
	covered, err := s.check.TrainerHasAvailabilityCovering(ctx, tx, trainerID, start, end)
	if err != nil {
		return err
	}
	if !covered {
		return ErrTrainerUnavailable
	}
	conflict, err := s.check.OverlappingSession(ctx, tx, store.DimensionTrainer, trainerID, start, end)
	if err != nil {
		return err
	}
	if conflict != nil {
		return &TrainerDoubleBookedError{SessionID: conflict.ID}
	}
	return nil
}

// checkRoomFree is the final application-level backstop before the insert;
// the room exclusion constraint re-validates it at commit time.
func (s *Service) checkRoomFree(ctx context.Context, tx store.ClubTx, roomID int64, start, end time.Time) error {
	conflict, err := s.check.OverlappingSession(ctx, tx, store.DimensionRoom, roomID, start, end)
	if err != nil {
		return err
	}
	if conflict != nil {
		return ErrRoomConflict
	}
	return nil
}
