package domain

import (
	"time"

	"github.com/google/uuid"
)

// ActivityRecord is one append-only audit entry emitted by every mutating
// operation. Writing it is best-effort: a failed append is logged and never
// fails the primary operation.
type ActivityRecord struct {
	ID        uuid.UUID `json:"id" db:"id"`
	ActorID   uuid.UUID `json:"actorId" db:"actor_id"`
	ActorRole ActorRole `json:"actorRole" db:"actor_role"`
	Action    string    `json:"action" db:"action"`
	Detail    string    `json:"detail" db:"detail"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// ActivityFilter narrows activity log listing.
type ActivityFilter struct {
	ActorID uuid.UUID
	Action  string
	Since   *time.Time
	Until   *time.Time
	Limit   int
	Offset  int
}
