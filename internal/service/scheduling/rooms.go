package scheduling

import (
	"context"
	"errors"
	"strings"

	"github.com/malik0174/fitclub/internal/domain"
	"github.com/malik0174/fitclub/internal/store"
)

type CreateRoomInput struct {
	AdminID     int64
	Name        string
	MaxCapacity int
}

// CreateRoom registers a new room owned by an admin. Names are trimmed and
// must be unique (exact, case-sensitive match).
func (s *Service) CreateRoom(ctx context.Context, in CreateRoomInput) (domain.Room, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return domain.Room{}, ErrInvalidName
	}
	if in.MaxCapacity <= 0 {
		return domain.Room{}, ErrInvalidCapacity
	}

	var out domain.Room
	err := s.store.InTransaction(ctx, nil, func(ctx context.Context, tx store.ClubTx) error {
		if _, err := findAdmin(ctx, tx, in.AdminID); err != nil {
			return err
		}

		_, err := tx.FindRoomByName(ctx, name)
		if err == nil {
			return ErrDuplicateName
		}
		if !errors.Is(err, store.ErrNotFound) {
			return err
		}

		r, err := tx.InsertRoom(ctx, domain.Room{
			Name:        name,
			MaxCapacity: in.MaxCapacity,
			AdminID:     in.AdminID,
		})
		if err != nil {
			return mapConstraintViolation(err)
		}
		out = r
		return nil
	})
	if err != nil {
		return domain.Room{}, err
	}
	return out, nil
}
