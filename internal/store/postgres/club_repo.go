package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/uptrace/bun"

	"github.com/malik0174/fitclub/internal/domain"
	"github.com/malik0174/fitclub/internal/store"
)

// ClubRepo implements store.ClubStore on Postgres via bun.
type ClubRepo struct {
	db *bun.DB
}

var _ store.ClubStore = (*ClubRepo)(nil)

func NewClubRepo(db *bun.DB) *ClubRepo {
	return &ClubRepo{db: db}
}

type clubTx struct {
	tx bun.Tx
}

func (r *ClubRepo) InTransaction(ctx context.Context, locks []store.LockKey, fn func(ctx context.Context, tx store.ClubTx) error) error {
	return r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		for _, key := range sortedLocks(locks) {
			if err := lockDimension(ctx, tx, key); err != nil {
				return err
			}
		}
		return fn(ctx, clubTx{tx: tx})
	})
}

// sortedLocks orders lock keys so that concurrent transactions touching the
// same dimensions always acquire them in the same order.
func sortedLocks(locks []store.LockKey) []store.LockKey {
	out := make([]store.LockKey, len(locks))
	copy(out, locks)
	sort.Slice(out, func(i, j int) bool {
		if out[i].Dimension != out[j].Dimension {
			return out[i].Dimension < out[j].Dimension
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func lockDimension(ctx context.Context, tx bun.Tx, key store.LockKey) error {
	_, err := tx.NewRaw(
		"SELECT pg_advisory_xact_lock(hashtext(?))",
		fmt.Sprintf("%s:%d", key.Dimension, key.ID),
	).Exec(ctx)
	return err
}

func (r *ClubRepo) FindSession(ctx context.Context, id int64) (domain.Session, error) {
	var s domain.Session
	err := r.db.NewSelect().Model(&s).Where("id = ?", id).Limit(1).Scan(ctx)
	if err != nil {
		return domain.Session{}, notFoundOr(err)
	}
	return s, nil
}

func (r *ClubRepo) UpcomingForMember(ctx context.Context, memberID int64, now time.Time) ([]domain.MemberScheduleEntry, error) {
	rows := make([]domain.MemberScheduleEntry, 0)
	err := r.db.NewSelect().
		TableExpr("sessions AS s").
		ColumnExpr("s.id AS session_id").
		ColumnExpr("s.session_type AS session_type").
		ColumnExpr("s.start_time AS start_time").
		ColumnExpr("s.end_time AS end_time").
		ColumnExpr("r.name AS room_name").
		ColumnExpr("t.first_name || ' ' || t.last_name AS trainer_name").
		Join("JOIN rooms AS r ON r.id = s.room_id").
		Join("JOIN trainers AS t ON t.id = s.trainer_id").
		Where("s.member_id = ?", memberID).
		Where("s.start_time >= ?", now).
		OrderExpr("s.start_time ASC").
		Scan(ctx, &rows)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *ClubRepo) UpcomingForTrainer(ctx context.Context, trainerID int64, now time.Time) ([]domain.TrainerScheduleEntry, error) {
	rows := make([]domain.TrainerScheduleEntry, 0)
	err := r.db.NewSelect().
		TableExpr("sessions AS s").
		ColumnExpr("s.id AS session_id").
		ColumnExpr("s.session_type AS session_type").
		ColumnExpr("s.start_time AS start_time").
		ColumnExpr("s.end_time AS end_time").
		ColumnExpr("r.name AS room_name").
		ColumnExpr("COALESCE(m.first_name || ' ' || m.last_name, ?) AS member_name", domain.GroupClassPlaceholder).
		Join("JOIN rooms AS r ON r.id = s.room_id").
		Join("LEFT JOIN members AS m ON m.id = s.member_id").
		Where("s.trainer_id = ?", trainerID).
		Where("s.start_time >= ?", now).
		OrderExpr("s.start_time ASC").
		Scan(ctx, &rows)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (t clubTx) FindMember(ctx context.Context, id int64) (domain.Member, error) {
	var m domain.Member
	if err := t.tx.NewSelect().Model(&m).Where("id = ?", id).Limit(1).Scan(ctx); err != nil {
		return domain.Member{}, notFoundOr(err)
	}
	return m, nil
}

func (t clubTx) FindMemberByEmail(ctx context.Context, email string) (domain.Member, error) {
	var m domain.Member
	if err := t.tx.NewSelect().Model(&m).Where("email = ?", email).Limit(1).Scan(ctx); err != nil {
		return domain.Member{}, notFoundOr(err)
	}
	return m, nil
}

func (t clubTx) FindMemberByPhone(ctx context.Context, phone string) (domain.Member, error) {
	var m domain.Member
	if err := t.tx.NewSelect().Model(&m).Where("phone = ?", phone).Limit(1).Scan(ctx); err != nil {
		return domain.Member{}, notFoundOr(err)
	}
	return m, nil
}

func (t clubTx) InsertMember(ctx context.Context, m domain.Member) (domain.Member, error) {
	if _, err := t.tx.NewInsert().Model(&m).Exec(ctx); err != nil {
		return domain.Member{}, decodeConstraintViolation(err)
	}
	return m, nil
}

func (t clubTx) UpdateMember(ctx context.Context, m domain.Member) (domain.Member, error) {
	res, err := t.tx.NewUpdate().Model(&m).WherePK().Exec(ctx)
	if err != nil {
		return domain.Member{}, decodeConstraintViolation(err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return domain.Member{}, err
	}
	if affected == 0 {
		return domain.Member{}, store.ErrNotFound
	}
	return m, nil
}

func (t clubTx) FindTrainer(ctx context.Context, id int64) (domain.Trainer, error) {
	var tr domain.Trainer
	if err := t.tx.NewSelect().Model(&tr).Where("id = ?", id).Limit(1).Scan(ctx); err != nil {
		return domain.Trainer{}, notFoundOr(err)
	}
	return tr, nil
}

func (t clubTx) FindAdmin(ctx context.Context, id int64) (domain.Admin, error) {
	var a domain.Admin
	if err := t.tx.NewSelect().Model(&a).Where("id = ?", id).Limit(1).Scan(ctx); err != nil {
		return domain.Admin{}, notFoundOr(err)
	}
	return a, nil
}

func (t clubTx) FindRoom(ctx context.Context, id int64) (domain.Room, error) {
	var r domain.Room
	if err := t.tx.NewSelect().Model(&r).Where("id = ?", id).Limit(1).Scan(ctx); err != nil {
		return domain.Room{}, notFoundOr(err)
	}
	return r, nil
}

func (t clubTx) FindRoomByName(ctx context.Context, name string) (domain.Room, error) {
	var r domain.Room
	if err := t.tx.NewSelect().Model(&r).Where("name = ?", name).Limit(1).Scan(ctx); err != nil {
		return domain.Room{}, notFoundOr(err)
	}
	return r, nil
}

func (t clubTx) InsertRoom(ctx context.Context, r domain.Room) (domain.Room, error) {
	if _, err := t.tx.NewInsert().Model(&r).Exec(ctx); err != nil {
		return domain.Room{}, decodeConstraintViolation(err)
	}
	return r, nil
}

func (t clubTx) ListTrainerAvailability(ctx context.Context, trainerID int64) ([]domain.TrainerAvailability, error) {
	var rows []domain.TrainerAvailability
	err := t.tx.NewSelect().
		Model(&rows).
		Where("trainer_id = ?", trainerID).
		OrderExpr("start_time ASC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (t clubTx) InsertAvailability(ctx context.Context, w domain.TrainerAvailability) (domain.TrainerAvailability, error) {
	if _, err := t.tx.NewInsert().Model(&w).Exec(ctx); err != nil {
		return domain.TrainerAvailability{}, decodeConstraintViolation(err)
	}
	return w, nil
}

func (t clubTx) ListSessionsOverlapping(ctx context.Context, dim store.SessionDimension, id int64, start, end time.Time) ([]domain.Session, error) {
	column, err := sessionDimensionColumn(dim)
	if err != nil {
		return nil, err
	}
	var rows []domain.Session
	err = t.tx.NewSelect().
		Model(&rows).
		Where("? = ?", bun.Ident(column), id).
		Where("start_time < ?", end).
		Where("end_time > ?", start).
		OrderExpr("start_time ASC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (t clubTx) InsertSession(ctx context.Context, s domain.Session) (domain.Session, error) {
	if _, err := t.tx.NewInsert().Model(&s).Exec(ctx); err != nil {
		return domain.Session{}, decodeConstraintViolation(err)
	}
	return s, nil
}

func sessionDimensionColumn(dim store.SessionDimension) (string, error) {
	switch dim {
	case store.DimensionRoom:
		return "room_id", nil
	case store.DimensionTrainer:
		return "trainer_id", nil
	case store.DimensionMember:
		return "member_id", nil
	}
	return "", fmt.Errorf("unknown session dimension %q", dim)
}

func notFoundOr(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return store.ErrNotFound
	}
	return err
}

// decodeConstraintViolation turns exclusion (23P01), unique (23505) and
// check (23514) failures into store.ConstraintViolationError so the service
// layer can fold them into its conflict taxonomy.
func decodeConstraintViolation(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}
	switch pgErr.Code {
	case "23P01", "23505", "23514":
		detail := pgErr.Detail
		if detail == "" {
			detail = pgErr.Message
		}
		return &store.ConstraintViolationError{
			Constraint: pgErr.ConstraintName,
			Detail:     detail,
		}
	}
	return err
}
