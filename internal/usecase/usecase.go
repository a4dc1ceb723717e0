package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput        = errors.New("invalid input")
	ErrNotFound            = errors.New("not found")
	ErrUnauthorized        = errors.New("unauthorized")
	ErrInvalidRefreshToken = errors.New("invalid refresh token")
	ErrRefreshTokenExpired = errors.New("refresh token expired")
	ErrResetTokenInvalid   = errors.New("reset token invalid")
	ErrInternal            = errors.New("internal error")
)

// TokenStore holds single-use and denylisted tokens. Backed by Redis; an
// unavailable store makes token flows fail closed (reset) or no-op (logout).
type TokenStore interface {
	SetValue(ctx context.Context, key, value string, ttl time.Duration) error
	TakeValue(ctx context.Context, key string) (string, bool, error)
	Exists(ctx context.Context, key string) (bool, error)
}

// SummaryCache caches the dashboard summary per user and local date.
type SummaryCache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	DeleteByPattern(ctx context.Context, pattern string) error
}

// Notifier pushes change hints to a user's open connections so list screens
// re-fetch after mutations.
type Notifier interface {
	NotifyUser(userID uuid.UUID, event string)
}

const (
	EventClientsUpdated = "clients_updated"
	EventTasksUpdated   = "tasks_updated"
)

func dashboardKey(userID uuid.UUID, today time.Time) string {
	return fmt.Sprintf("dashboard:%s:%s", userID, today.Format("2006-01-02"))
}

func dashboardPattern(userID uuid.UUID) string {
	return fmt.Sprintf("dashboard:%s:*", userID)
}
