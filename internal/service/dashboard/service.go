// Package dashboard projects committed sessions into the upcoming-schedule
// views shown to members and trainers. It is read-only.
package dashboard

import (
	"context"
	"time"

	"github.com/malik0174/fitclub/internal/domain"
	"github.com/malik0174/fitclub/internal/store"
)

type Service struct {
	store store.ClubStore
	now   func() time.Time
}

func NewService(st store.ClubStore) *Service {
	return &Service{store: st, now: time.Now}
}

// UpcomingForMember returns the member's sessions that have not started yet,
// ordered by start time ascending.
func (s *Service) UpcomingForMember(ctx context.Context, memberID int64) ([]domain.MemberScheduleEntry, error) {
	return s.store.UpcomingForMember(ctx, memberID, s.now().UTC())
}

// UpcomingForTrainer returns the trainer's sessions that have not started
// yet, ordered by start time ascending. CLASS sessions show a placeholder
// instead of a member name.
func (s *Service) UpcomingForTrainer(ctx context.Context, trainerID int64) ([]domain.TrainerScheduleEntry, error) {
	return s.store.UpcomingForTrainer(ctx, trainerID, s.now().UTC())
}
