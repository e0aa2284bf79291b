package domain

import "time"

// GroupClassPlaceholder is shown in a trainer's schedule for CLASS sessions,
// which have no single member attached.
const GroupClassPlaceholder = "(group class)"

// MemberScheduleEntry is one row of a member's upcoming-sessions view.
type MemberScheduleEntry struct {
	SessionID   int64       `bun:"session_id" json:"session_id"`
	SessionType SessionType `bun:"session_type" json:"session_type"`
	StartTime   time.Time   `bun:"start_time" json:"start_time"`
	EndTime     time.Time   `bun:"end_time" json:"end_time"`
	RoomName    string      `bun:"room_name" json:"room_name"`
	TrainerName string      `bun:"trainer_name" json:"trainer_name"`
}

// TrainerScheduleEntry is one row of a trainer's upcoming-sessions view.
type TrainerScheduleEntry struct {
	SessionID   int64       `bun:"session_id" json:"session_id"`
	SessionType SessionType `bun:"session_type" json:"session_type"`
	StartTime   time.Time   `bun:"start_time" json:"start_time"`
	EndTime     time.Time   `bun:"end_time" json:"end_time"`
	RoomName    string      `bun:"room_name" json:"room_name"`
	MemberName  string      `bun:"member_name" json:"member_name"`
}
