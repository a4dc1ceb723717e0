package client

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("client not found")

type Filter struct {
	PersonType *PersonType
	Search     string
	Limit      int
	Offset     int
}

// Every operation is scoped to an owner: a client belonging to another
// profile behaves exactly like a missing row.
type Repository interface {
	Create(ctx context.Context, c Client) (Client, error)
	GetByID(ctx context.Context, ownerID, id uuid.UUID) (Client, error)
	List(ctx context.Context, ownerID uuid.UUID, f Filter) ([]Client, error)
	Update(ctx context.Context, c Client) (Client, error)
	Delete(ctx context.Context, ownerID, id uuid.UUID) error
	CountByOwner(ctx context.Context, ownerID uuid.UUID) (int64, error)
}
