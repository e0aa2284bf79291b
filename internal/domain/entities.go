package domain

import (
	"context"
	"time"

	"github.com/uptrace/bun"
)

// AllowedGenders mirrors the check constraint on members and trainers.
var AllowedGenders = []string{"Male", "Female", "Other", "Prefer not to say"}

func GenderAllowed(gender string) bool {
	for _, g := range AllowedGenders {
		if g == gender {
			return true
		}
	}
	return false
}

type Member struct {
	bun.BaseModel `bun:"table:members"`

	ID            int64      `bun:"id,pk,autoincrement" json:"id"`
	FirstName     string     `bun:"first_name,notnull" json:"first_name"`
	LastName      string     `bun:"last_name,notnull" json:"last_name"`
	Gender        string     `bun:"gender,notnull" json:"gender"`
	Email         string     `bun:"email,notnull" json:"email"`
	Phone         *string    `bun:"phone" json:"phone,omitempty"`
	DateOfBirth   *time.Time `bun:"date_of_birth" json:"date_of_birth,omitempty"`
	GoalWeight    *float64   `bun:"goal_weight" json:"goal_weight,omitempty"`
	CurrentWeight *float64   `bun:"current_weight" json:"current_weight,omitempty"`
	CreatedAt     time.Time  `bun:"created_at,notnull" json:"created_at"`
	UpdatedAt     time.Time  `bun:"updated_at,notnull" json:"updated_at"`
}

func (m *Member) BeforeAppendModel(ctx context.Context, query bun.Query) error {
	now := time.Now().UTC()
	switch query.(type) {
	case *bun.InsertQuery:
		if m.CreatedAt.IsZero() {
			m.CreatedAt = now
		}
		if m.UpdatedAt.IsZero() {
			m.UpdatedAt = now
		}
	case *bun.UpdateQuery:
		m.UpdatedAt = now
	}
	return nil
}

func (m Member) FullName() string {
	return m.FirstName + " " + m.LastName
}

type Trainer struct {
	bun.BaseModel `bun:"table:trainers"`

	ID        int64     `bun:"id,pk,autoincrement" json:"id"`
	FirstName string    `bun:"first_name,notnull" json:"first_name"`
	LastName  string    `bun:"last_name,notnull" json:"last_name"`
	Gender    string    `bun:"gender" json:"gender"`
	Email     string    `bun:"email,notnull" json:"email"`
	CreatedAt time.Time `bun:"created_at,notnull" json:"created_at"`
}

func (t Trainer) FullName() string {
	return t.FirstName + " " + t.LastName
}

type Admin struct {
	bun.BaseModel `bun:"table:admin_staff"`

	ID        int64     `bun:"id,pk,autoincrement" json:"id"`
	FirstName string    `bun:"first_name,notnull" json:"first_name"`
	LastName  string    `bun:"last_name,notnull" json:"last_name"`
	Email     string    `bun:"email,notnull" json:"email"`
	CreatedAt time.Time `bun:"created_at,notnull" json:"created_at"`
}

// Room is created by an admin and immutable afterwards.
type Room struct {
	bun.BaseModel `bun:"table:rooms"`

	ID          int64     `bun:"id,pk,autoincrement" json:"id"`
	Name        string    `bun:"name,notnull" json:"name"`
	MaxCapacity int       `bun:"max_capacity,notnull" json:"max_capacity"`
	AdminID     int64     `bun:"admin_id,notnull" json:"admin_id"`
	CreatedAt   time.Time `bun:"created_at,notnull" json:"created_at"`
}

func (r *Room) BeforeAppendModel(ctx context.Context, query bun.Query) error {
	if _, ok := query.(*bun.InsertQuery); ok && r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now().UTC()
	}
	return nil
}
