package store

import (
	"context"
	"time"

	"github.com/malik0174/fitclub/internal/domain"
)

// SessionDimension selects which foreign key of a session an overlap query
// filters on. Each dimension carries its own no-overlap invariant.
type SessionDimension string

const (
	DimensionRoom    SessionDimension = "room"
	DimensionTrainer SessionDimension = "trainer"
	DimensionMember  SessionDimension = "member"
)

// LockKey names an advisory lock taken for the duration of a transaction so
// that two writers touching the same room, trainer or member serialize on
// each other instead of racing to the constraint backstop.
type LockKey struct {
	Dimension SessionDimension
	ID        int64
}

// ClubTx is the per-transaction view of the store. Every method runs inside
// the transaction it was handed; a returned error rolls the whole
// transaction back, so a failed validation step never leaves partial rows.
type ClubTx interface {
	FindMember(ctx context.Context, id int64) (domain.Member, error)
	FindMemberByEmail(ctx context.Context, email string) (domain.Member, error)
	FindMemberByPhone(ctx context.Context, phone string) (domain.Member, error)
	InsertMember(ctx context.Context, m domain.Member) (domain.Member, error)
	UpdateMember(ctx context.Context, m domain.Member) (domain.Member, error)

	FindTrainer(ctx context.Context, id int64) (domain.Trainer, error)
	FindAdmin(ctx context.Context, id int64) (domain.Admin, error)

	FindRoom(ctx context.Context, id int64) (domain.Room, error)
	FindRoomByName(ctx context.Context, name string) (domain.Room, error)
	InsertRoom(ctx context.Context, r domain.Room) (domain.Room, error)

	ListTrainerAvailability(ctx context.Context, trainerID int64) ([]domain.TrainerAvailability, error)
	InsertAvailability(ctx context.Context, w domain.TrainerAvailability) (domain.TrainerAvailability, error)

	// ListSessionsOverlapping returns the sessions sharing the dimension's id
	// whose [start_time, end_time) interval overlaps [start, end), ordered by
	// start time ascending.
	ListSessionsOverlapping(ctx context.Context, dim SessionDimension, id int64, start, end time.Time) ([]domain.Session, error)
	InsertSession(ctx context.Context, s domain.Session) (domain.Session, error)
}

// ClubStore is the transactional entity store the scheduling core borrows
// entities from, plus the committed read side used by the dashboard.
type ClubStore interface {
	// InTransaction runs fn inside a single transaction, acquiring the given
	// advisory locks first. It commits on nil return and rolls back on error.
	InTransaction(ctx context.Context, locks []LockKey, fn func(ctx context.Context, tx ClubTx) error) error

	FindSession(ctx context.Context, id int64) (domain.Session, error)

	UpcomingForMember(ctx context.Context, memberID int64, now time.Time) ([]domain.MemberScheduleEntry, error)
	UpcomingForTrainer(ctx context.Context, trainerID int64, now time.Time) ([]domain.TrainerScheduleEntry, error)
}
