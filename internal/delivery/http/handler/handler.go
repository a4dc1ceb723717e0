package handler

import (
	"strings"
	"time"

	"contaflow/internal/delivery/http/middleware"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

const localDateHeader = "X-Local-Date"

func currentUserID(c fiber.Ctx) (uuid.UUID, bool) {
	id, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	return id, ok
}

// localToday resolves the viewer's local date for day-granularity status
// derivation: the X-Local-Date header (or ?today=) wins, server-local date
// otherwise. A malformed value falls back rather than failing the request.
func localToday(c fiber.Ctx) time.Time {
	raw := strings.TrimSpace(c.Get(localDateHeader))
	if raw == "" {
		raw = strings.TrimSpace(c.Query("today"))
	}
	if raw != "" {
		if d, err := time.Parse("2006-01-02", raw); err == nil {
			return d
		}
	}
	return time.Now()
}
