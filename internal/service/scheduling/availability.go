package scheduling

import (
	"context"
	"time"

	"github.com/malik0174/fitclub/internal/domain"
	"github.com/malik0174/fitclub/internal/store"
)

type CreateAvailabilityInput struct {
	TrainerID int64
	StartTime time.Time
	EndTime   time.Time
}

// CreateAvailability records a new availability window for a trainer. The
// window must start in the future and must not overlap any of the trainer's
// existing windows.
func (s *Service) CreateAvailability(ctx context.Context, in CreateAvailabilityInput) (domain.TrainerAvailability, error) {
	start := in.StartTime.UTC()
	end := in.EndTime.UTC()
	if !end.After(start) {
		return domain.TrainerAvailability{}, ErrInvalidWindow
	}
	if start.Before(s.now().UTC()) {
		return domain.TrainerAvailability{}, ErrPastStart
	}

	locks := []store.LockKey{{Dimension: store.DimensionTrainer, ID: in.TrainerID}}

	var out domain.TrainerAvailability
	err := s.store.InTransaction(ctx, locks, func(ctx context.Context, tx store.ClubTx) error {
		if _, err := findTrainer(ctx, tx, in.TrainerID); err != nil {
			return err
		}

		windows, err := tx.ListTrainerAvailability(ctx, in.TrainerID)
		if err != nil {
			return err
		}
		for _, w := range windows {
			if domain.Overlaps(w.StartTime, w.EndTime, start, end) {
				return &AvailabilityConflictError{Start: w.StartTime, End: w.EndTime}
			}
		}

		w, err := tx.InsertAvailability(ctx, domain.TrainerAvailability{
			TrainerID: in.TrainerID,
			StartTime: start,
			EndTime:   end,
		})
		if err != nil {
			return mapConstraintViolation(err)
		}
		out = w
		return nil
	})
	if err != nil {
		return domain.TrainerAvailability{}, err
	}
	return out, nil
}
