package domain

import (
	"context"
	"time"

	"github.com/uptrace/bun"
)

type SessionType string

const (
	SessionTypePT    SessionType = "PT"
	SessionTypeClass SessionType = "CLASS"
)

// Session is a committed booking. PT sessions carry exactly one member and a
// fixed capacity of 1; CLASS sessions have no single member. Sessions are
// never updated or deleted once committed.
type Session struct {
	bun.BaseModel `bun:"table:sessions"`

	ID          int64       `bun:"id,pk,autoincrement" json:"id"`
	Type        SessionType `bun:"session_type,notnull" json:"session_type"`
	StartTime   time.Time   `bun:"start_time,notnull" json:"start_time"`
	EndTime     time.Time   `bun:"end_time,notnull" json:"end_time"`
	MaxCapacity int         `bun:"max_capacity,notnull" json:"max_capacity"`
	RoomID      int64       `bun:"room_id,notnull" json:"room_id"`
	AdminID     int64       `bun:"admin_id,notnull" json:"admin_id"`
	TrainerID   int64       `bun:"trainer_id,notnull" json:"trainer_id"`
	MemberID    *int64      `bun:"member_id" json:"member_id,omitempty"`
	CreatedAt   time.Time   `bun:"created_at,notnull" json:"created_at"`
}

func (s *Session) BeforeAppendModel(ctx context.Context, query bun.Query) error {
	if _, ok := query.(*bun.InsertQuery); ok && s.CreatedAt.IsZero() {
		s.CreatedAt = time.Now().UTC()
	}
	return nil
}

// TrainerAvailability is a trainer-declared window during which sessions may
// be booked. Windows for one trainer never overlap each other.
type TrainerAvailability struct {
	bun.BaseModel `bun:"table:trainer_availability"`

	ID        int64     `bun:"id,pk,autoincrement" json:"id"`
	TrainerID int64     `bun:"trainer_id,notnull" json:"trainer_id"`
	StartTime time.Time `bun:"start_time,notnull" json:"start_time"`
	EndTime   time.Time `bun:"end_time,notnull" json:"end_time"`
	CreatedAt time.Time `bun:"created_at,notnull" json:"created_at"`
}

func (a *TrainerAvailability) BeforeAppendModel(ctx context.Context, query bun.Query) error {
	if _, ok := query.(*bun.InsertQuery); ok && a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now().UTC()
	}
	return nil
}
