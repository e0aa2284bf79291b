// Package members handles member registration and profile upkeep.
package members

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/malik0174/fitclub/internal/domain"
	"github.com/malik0174/fitclub/internal/store"
)

var (
	ErrEmailInUse = errors.New("a member with that email already exists")
	ErrPhoneInUse = errors.New("another member already uses that phone number")
)

type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string {
	return e.msg
}

func validationError(msg string) error {
	return &ValidationError{msg: msg}
}

type Service struct {
	store store.ClubStore
}

func NewService(st store.ClubStore) *Service {
	return &Service{store: st}
}

type RegisterInput struct {
	FirstName     string
	LastName      string
	Gender        string
	Email         string
	Phone         *string
	DateOfBirth   *time.Time
	GoalWeight    *float64
	CurrentWeight *float64
}

// Register creates a new member. Email and phone must not already belong to
// another member; the unique constraints back the checks up under races.
func (s *Service) Register(ctx context.Context, in RegisterInput) (domain.Member, error) {
	firstName := strings.TrimSpace(in.FirstName)
	lastName := strings.TrimSpace(in.LastName)
	email := strings.TrimSpace(in.Email)

	if firstName == "" {
		return domain.Member{}, validationError("first_name is required")
	}
	if lastName == "" {
		return domain.Member{}, validationError("last_name is required")
	}
	if email == "" {
		return domain.Member{}, validationError("email is required")
	}
	if !domain.GenderAllowed(in.Gender) {
		return domain.Member{}, validationError(fmt.Sprintf("gender must be one of %v", domain.AllowedGenders))
	}

	var phone *string
	if in.Phone != nil {
		if p := strings.TrimSpace(*in.Phone); p != "" {
			phone = &p
		}
	}
	if in.GoalWeight != nil && *in.GoalWeight <= 0 {
		return domain.Member{}, validationError("goal_weight must be a positive number")
	}
	if in.CurrentWeight != nil && *in.CurrentWeight <= 0 {
		return domain.Member{}, validationError("current_weight must be a positive number")
	}

	var out domain.Member
	err := s.store.InTransaction(ctx, nil, func(ctx context.Context, tx store.ClubTx) error {
		if _, err := tx.FindMemberByEmail(ctx, email); err == nil {
			return ErrEmailInUse
		} else if !errors.Is(err, store.ErrNotFound) {
			return err
		}
		if phone != nil {
			if _, err := tx.FindMemberByPhone(ctx, *phone); err == nil {
				return ErrPhoneInUse
			} else if !errors.Is(err, store.ErrNotFound) {
				return err
			}
		}

		m, err := tx.InsertMember(ctx, domain.Member{
			FirstName:     firstName,
			LastName:      lastName,
			Gender:        in.Gender,
			Email:         email,
			Phone:         phone,
			DateOfBirth:   in.DateOfBirth,
			GoalWeight:    in.GoalWeight,
			CurrentWeight: in.CurrentWeight,
		})
		if err != nil {
			return mapConstraintViolation(err)
		}
		out = m
		return nil
	})
	if err != nil {
		return domain.Member{}, err
	}
	return out, nil
}

type UpdateProfileInput struct {
	MemberID int64
	NewPhone *string
	NewEmail *string
}

// UpdateProfile changes a member's phone and/or email. Blank values are
// ignored; new values must not belong to some other member.
func (s *Service) UpdateProfile(ctx context.Context, in UpdateProfileInput) (domain.Member, error) {
	var out domain.Member
	err := s.store.InTransaction(ctx, nil, func(ctx context.Context, tx store.ClubTx) error {
		m, err := tx.FindMember(ctx, in.MemberID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return &domain.NotFoundError{Kind: domain.KindMember, ID: in.MemberID}
			}
			return err
		}

		if in.NewPhone != nil {
			if phone := strings.TrimSpace(*in.NewPhone); phone != "" {
				other, err := tx.FindMemberByPhone(ctx, phone)
				if err == nil && other.ID != m.ID {
					return ErrPhoneInUse
				}
				if err != nil && !errors.Is(err, store.ErrNotFound) {
					return err
				}
				m.Phone = &phone
			}
		}
		if in.NewEmail != nil {
			if email := strings.TrimSpace(*in.NewEmail); email != "" {
				other, err := tx.FindMemberByEmail(ctx, email)
				if err == nil && other.ID != m.ID {
					return ErrEmailInUse
				}
				if err != nil && !errors.Is(err, store.ErrNotFound) {
					return err
				}
				m.Email = email
			}
		}

		updated, err := tx.UpdateMember(ctx, m)
		if err != nil {
			return mapConstraintViolation(err)
		}
		out = updated
		return nil
	})
	if err != nil {
		return domain.Member{}, err
	}
	return out, nil
}

func mapConstraintViolation(err error) error {
	var cv *store.ConstraintViolationError
	if !errors.As(err, &cv) {
		return err
	}
	switch cv.Constraint {
	case store.ConstraintMembersEmailUnique:
		return fmt.Errorf("%w: %w", ErrEmailInUse, cv)
	case store.ConstraintMembersPhoneUnique:
		return fmt.Errorf("%w: %w", ErrPhoneInUse, cv)
	}
	return cv
}
