package postgres

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/malik0174/fitclub/internal/store"
)

func TestSortedLocks(t *testing.T) {
	in := []store.LockKey{
		{Dimension: store.DimensionTrainer, ID: 7},
		{Dimension: store.DimensionMember, ID: 3},
		{Dimension: store.DimensionRoom, ID: 9},
		{Dimension: store.DimensionMember, ID: 1},
	}
	got := sortedLocks(in)

	want := []store.LockKey{
		{Dimension: store.DimensionMember, ID: 1},
		{Dimension: store.DimensionMember, ID: 3},
		{Dimension: store.DimensionRoom, ID: 9},
		{Dimension: store.DimensionTrainer, ID: 7},
	}
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("sortedLocks[%d] = %v, want %v", i, got[i], want[i])
		}
	}
	// Input order is preserved; only the copy is sorted.
	if in[0] != (store.LockKey{Dimension: store.DimensionTrainer, ID: 7}) {
		t.Fatalf("input mutated: %v", in)
	}
}

func TestSessionDimensionColumn(t *testing.T) {
	cases := map[store.SessionDimension]string{
		store.DimensionRoom:    "room_id",
		store.DimensionTrainer: "trainer_id",
		store.DimensionMember:  "member_id",
	}
	for dim, want := range cases {
		col, err := sessionDimensionColumn(dim)
		if err != nil {
			t.Fatalf("sessionDimensionColumn(%q) error: %v", dim, err)
		}
		if col != want {
			t.Fatalf("sessionDimensionColumn(%q) = %q, want %q", dim, col, want)
		}
	}
	if _, err := sessionDimensionColumn("admin"); err == nil {
		t.Fatalf("unknown dimension must error")
	}
}

func TestDecodeConstraintViolation(t *testing.T) {
	cases := []struct {
		name       string
		code       string
		constraint string
		decoded    bool
	}{
		{"exclusion", "23P01", store.ConstraintSessionsRoomNoOverlap, true},
		{"unique", "23505", store.ConstraintMembersEmailUnique, true},
		{"check", "23514", "ck_sessions_end_after_start", true},
		{"foreign key", "23503", "sessions_room_id_fkey", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := fmt.Errorf("insert: %w", &pgconn.PgError{
				Code:           tc.code,
				ConstraintName: tc.constraint,
				Detail:         "conflicting row",
			})
			err := decodeConstraintViolation(in)

			var cv *store.ConstraintViolationError
			if tc.decoded {
				if !errors.As(err, &cv) {
					t.Fatalf("error = %v, want *store.ConstraintViolationError", err)
				}
				if cv.Constraint != tc.constraint || cv.Detail != "conflicting row" {
					t.Fatalf("decoded = %+v", cv)
				}
				return
			}
			if errors.As(err, &cv) {
				t.Fatalf("code %s must pass through, got %+v", tc.code, cv)
			}
			var pgErr *pgconn.PgError
			if !errors.As(err, &pgErr) {
				t.Fatalf("original error lost: %v", err)
			}
		})
	}
}

func TestDecodeConstraintViolation_FallsBackToMessage(t *testing.T) {
	err := decodeConstraintViolation(&pgconn.PgError{
		Code:           "23P01",
		ConstraintName: store.ConstraintSessionsTrainerNoOverlap,
		Message:        "conflicting key value violates exclusion constraint",
	})
	var cv *store.ConstraintViolationError
	if !errors.As(err, &cv) {
		t.Fatalf("error = %v, want *store.ConstraintViolationError", err)
	}
	if cv.Detail != "conflicting key value violates exclusion constraint" {
		t.Fatalf("detail = %q", cv.Detail)
	}
}

func TestNotFoundOr(t *testing.T) {
	if err := notFoundOr(sql.ErrNoRows); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("error = %v, want store.ErrNotFound", err)
	}
	other := errors.New("connection reset")
	if err := notFoundOr(other); !errors.Is(err, other) {
		t.Fatalf("error = %v, want passthrough", err)
	}
}
