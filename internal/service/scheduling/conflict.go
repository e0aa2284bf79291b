package scheduling

import (
	"context"
	"time"

	"github.com/malik0174/fitclub/internal/domain"
	"github.com/malik0174/fitclub/internal/store"
)

// Checker answers whether a proposed window fits inside a trainer's declared
// availability and whether it collides with existing sessions. It only reads
// state; callers decide what to do with a hit. Both checks run against the
// same transaction as the insert that follows them.
type Checker struct{}

// TrainerHasAvailabilityCovering reports whether some availability window of
// the trainer fully contains [start, end). Mere overlap is not enough: a
// session must fit inside a single window.
func (Checker) TrainerHasAvailabilityCovering(ctx context.Context, tx store.ClubTx, trainerID int64, start, end time.Time) (bool, error) {
	windows, err := tx.ListTrainerAvailability(ctx, trainerID)
	if err != nil {
		return false, err
	}
	for _, w := range windows {
		if domain.Covers(w.StartTime, w.EndTime, start, end) {
			return true, nil
		}
	}
	return false, nil
}

// OverlappingSession returns the first existing session sharing the given
// dimension's id whose interval overlaps [start, end), or nil.
func (Checker) OverlappingSession(ctx context.Context, tx store.ClubTx, dim store.SessionDimension, id int64, start, end time.Time) (*domain.Session, error) {
	sessions, err := tx.ListSessionsOverlapping(ctx, dim, id, start, end)
	if err != nil {
		return nil, err
	}
	for i := range sessions {
		if domain.Overlaps(sessions[i].StartTime, sessions[i].EndTime, start, end) {
			return &sessions[i], nil
		}
	}
	return nil, nil
}
