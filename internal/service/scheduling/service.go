// Package scheduling is the booking core: it validates and commits trainer
// availability windows, PT and CLASS sessions, and rooms. All writes happen
// inside a single store transaction; interval conflicts are checked up front
// for friendly errors and re-enforced by store constraints for correctness
// under concurrent access.
package scheduling

import (
	"context"
	"errors"
	"time"

	"github.com/malik0174/fitclub/internal/domain"
	"github.com/malik0174/fitclub/internal/store"
)

type Service struct {
	store store.ClubStore
	check Checker
	now   func() time.Time
}

func NewService(st store.ClubStore) *Service {
	return &Service{store: st, now: time.Now}
}

// Session looks up a committed session by id.
func (s *Service) Session(ctx context.Context, id int64) (domain.Session, error) {
	sess, err := s.store.FindSession(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Session{}, &domain.NotFoundError{Kind: domain.KindSession, ID: id}
		}
		return domain.Session{}, err
	}
	return sess, nil
}

func findTrainer(ctx context.Context, tx store.ClubTx, id int64) (domain.Trainer, error) {
	t, err := tx.FindTrainer(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Trainer{}, &domain.NotFoundError{Kind: domain.KindTrainer, ID: id}
		}
		return domain.Trainer{}, err
	}
	return t, nil
}

func findAdmin(ctx context.Context, tx store.ClubTx, id int64) (domain.Admin, error) {
	a, err := tx.FindAdmin(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Admin{}, &domain.NotFoundError{Kind: domain.KindAdmin, ID: id}
		}
		return domain.Admin{}, err
	}
	return a, nil
}

func findRoom(ctx context.Context, tx store.ClubTx, id int64) (domain.Room, error) {
	r, err := tx.FindRoom(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Room{}, &domain.NotFoundError{Kind: domain.KindRoom, ID: id}
		}
		return domain.Room{}, err
	}
	return r, nil
}

func findMember(ctx context.Context, tx store.ClubTx, id int64) (domain.Member, error) {
	m, err := tx.FindMember(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Member{}, &domain.NotFoundError{Kind: domain.KindMember, ID: id}
		}
		return domain.Member{}, err
	}
	return m, nil
}
