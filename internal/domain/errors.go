package domain

import "fmt"

type EntityKind string

const (
	KindMember  EntityKind = "member"
	KindTrainer EntityKind = "trainer"
	KindAdmin   EntityKind = "admin"
	KindRoom    EntityKind = "room"
	KindSession EntityKind = "session"
)

// NotFoundError identifies which referenced entity was missing.
type NotFoundError struct {
	Kind EntityKind
	ID   int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with id %d not found", e.Kind, e.ID)
}
