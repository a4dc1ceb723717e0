package task

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("task not found")

// StatusFilter values accepted by List. "atrasada" is a derived predicate
// (stored pendente with due_date before Today), not a stored-value match.
type Filter struct {
	Status   string
	Type     *Type
	ClientID *uuid.UUID
	Today    time.Time
	Limit    int
	Offset   int
}

type Counts struct {
	Total     int64
	Pending   int64
	Completed int64
	Overdue   int64
	DueToday  int64
}

// Every operation is scoped to an owner; foreign rows behave like missing
// rows.
type Repository interface {
	Create(ctx context.Context, t Task) (Task, error)
	GetByID(ctx context.Context, ownerID, id uuid.UUID) (Task, error)
	List(ctx context.Context, ownerID uuid.UUID, f Filter) ([]Task, error)
	Update(ctx context.Context, t Task) (Task, error)
	UpdateStatus(ctx context.Context, ownerID, id uuid.UUID, s Status) (Task, error)
	Delete(ctx context.Context, ownerID, id uuid.UUID) error
	CountsByOwner(ctx context.Context, ownerID uuid.UUID, today time.Time) (Counts, error)
	Upcoming(ctx context.Context, ownerID uuid.UUID, today time.Time, limit int) ([]Task, error)
}
