package postgres

import (
	"context"

	"github.com/uptrace/bun"
)

// schemaDDL mirrors the models in internal/domain. The exclusion constraints
// are the transactional backstop for the overlap invariants: the pre-insert
// checks in the scheduling service produce the friendly errors, while these
// constraints abort the second of two racing transactions at commit time.
// Ranges are half-open [), matching the overlap rule everywhere else.
const schemaDDL = `
CREATE EXTENSION IF NOT EXISTS btree_gist;

CREATE TABLE IF NOT EXISTS admin_staff (
    id BIGSERIAL PRIMARY KEY,
    first_name VARCHAR(50) NOT NULL,
    last_name VARCHAR(50) NOT NULL,
    email VARCHAR(255) NOT NULL,
    created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
    CONSTRAINT admin_staff_email_key UNIQUE (email)
);

CREATE TABLE IF NOT EXISTS trainers (
    id BIGSERIAL PRIMARY KEY,
    first_name VARCHAR(50) NOT NULL,
    last_name VARCHAR(50) NOT NULL,
    gender VARCHAR(20),
    email VARCHAR(255) NOT NULL,
    created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
    CONSTRAINT trainers_email_key UNIQUE (email),
    CONSTRAINT ck_trainers_gender CHECK (
        gender IS NULL OR gender IN ('Male','Female','Other','Prefer not to say')
    )
);

CREATE TABLE IF NOT EXISTS members (
    id BIGSERIAL PRIMARY KEY,
    first_name VARCHAR(50) NOT NULL,
    last_name VARCHAR(50) NOT NULL,
    gender VARCHAR(20) NOT NULL,
    email VARCHAR(255) NOT NULL,
    phone VARCHAR(20),
    date_of_birth DATE,
    goal_weight NUMERIC(5,2),
    current_weight NUMERIC(5,2),
    created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
    updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
    CONSTRAINT members_email_key UNIQUE (email),
    CONSTRAINT members_phone_key UNIQUE (phone),
    CONSTRAINT ck_members_gender CHECK (
        gender IN ('Male','Female','Other','Prefer not to say')
    ),
    CONSTRAINT ck_members_goal_weight_positive CHECK (goal_weight IS NULL OR goal_weight > 0),
    CONSTRAINT ck_members_current_weight_positive CHECK (current_weight IS NULL OR current_weight > 0)
);

CREATE TABLE IF NOT EXISTS rooms (
    id BIGSERIAL PRIMARY KEY,
    name VARCHAR(100) NOT NULL,
    max_capacity INTEGER NOT NULL,
    admin_id BIGINT NOT NULL REFERENCES admin_staff (id),
    created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
    CONSTRAINT rooms_name_key UNIQUE (name),
    CONSTRAINT ck_rooms_max_capacity_positive CHECK (max_capacity > 0)
);

CREATE TABLE IF NOT EXISTS trainer_availability (
    id BIGSERIAL PRIMARY KEY,
    trainer_id BIGINT NOT NULL REFERENCES trainers (id),
    start_time TIMESTAMPTZ NOT NULL,
    end_time TIMESTAMPTZ NOT NULL,
    created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
    CONSTRAINT ck_trainer_availability_end_after_start CHECK (end_time > start_time),
    CONSTRAINT trainer_availability_no_overlap EXCLUDE USING gist (
        trainer_id WITH =,
        tstzrange(start_time, end_time) WITH &&
    )
);

CREATE TABLE IF NOT EXISTS sessions (
    id BIGSERIAL PRIMARY KEY,
    session_type VARCHAR(10) NOT NULL,
    start_time TIMESTAMPTZ NOT NULL,
    end_time TIMESTAMPTZ NOT NULL,
    max_capacity INTEGER NOT NULL,
    room_id BIGINT NOT NULL REFERENCES rooms (id),
    admin_id BIGINT NOT NULL REFERENCES admin_staff (id),
    trainer_id BIGINT NOT NULL REFERENCES trainers (id),
    member_id BIGINT REFERENCES members (id),
    created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
    CONSTRAINT ck_sessions_type CHECK (session_type IN ('PT','CLASS')),
    CONSTRAINT ck_sessions_max_capacity_positive CHECK (max_capacity > 0),
    CONSTRAINT ck_sessions_end_after_start CHECK (end_time > start_time),
    CONSTRAINT sessions_room_no_overlap EXCLUDE USING gist (
        room_id WITH =,
        tstzrange(start_time, end_time) WITH &&
    ),
    CONSTRAINT sessions_trainer_no_overlap EXCLUDE USING gist (
        trainer_id WITH =,
        tstzrange(start_time, end_time) WITH &&
    ),
    CONSTRAINT sessions_member_no_overlap EXCLUDE USING gist (
        member_id WITH =,
        tstzrange(start_time, end_time) WITH &&
    ) WHERE (member_id IS NOT NULL)
);

CREATE INDEX IF NOT EXISTS idx_sessions_room_start ON sessions (room_id, start_time);
`

// CreateSchema applies the idempotent DDL. The server runs it at startup.
func CreateSchema(ctx context.Context, db bun.IDB) error {
	_, err := db.ExecContext(ctx, schemaDDL)
	return err
}
