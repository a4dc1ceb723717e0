package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"contaflow/internal/domain/client"
	"contaflow/internal/domain/task"
)

const summaryTTL = time.Minute

type Summary struct {
	ClientsTotal   int64       `json:"clients_total"`
	TasksTotal     int64       `json:"tasks_total"`
	TasksPending   int64       `json:"tasks_pending"`
	TasksCompleted int64       `json:"tasks_completed"`
	TasksOverdue   int64       `json:"tasks_overdue"`
	TasksDueToday  int64       `json:"tasks_due_today"`
	Upcoming       []task.Task `json:"upcoming"`
}

type DashboardUsecase interface {
	Summary(ctx context.Context, ownerID uuid.UUID, today time.Time) (Summary, error)
}

type Dashboard struct {
	tasks   task.Repository
	clients client.Repository
	cache   SummaryCache
}

func NewDashboardUsecase(tasks task.Repository, clients client.Repository, cache SummaryCache) *Dashboard {
	return &Dashboard{tasks: tasks, clients: clients, cache: cache}
}

// Summary aggregates the owner's workload against the viewer's local date.
// Cached per user and date; mutations on clients or tasks invalidate it.
func (s *Dashboard) Summary(ctx context.Context, ownerID uuid.UUID, today time.Time) (Summary, error) {
	if today.IsZero() {
		today = time.Now()
	}
	key := dashboardKey(ownerID, today)

	if s.cache != nil {
		var cached Summary
		if hit, err := s.cache.GetJSON(ctx, key, &cached); err == nil && hit {
			return cached, nil
		}
	}

	counts, err := s.tasks.CountsByOwner(ctx, ownerID, today)
	if err != nil {
		return Summary{}, ErrInternal
	}

	clientsTotal, err := s.clients.CountByOwner(ctx, ownerID)
	if err != nil {
		return Summary{}, ErrInternal
	}

	upcoming, err := s.tasks.Upcoming(ctx, ownerID, today, 5)
	if err != nil {
		return Summary{}, ErrInternal
	}

	sum := Summary{
		ClientsTotal:   clientsTotal,
		TasksTotal:     counts.Total,
		TasksPending:   counts.Pending,
		TasksCompleted: counts.Completed,
		TasksOverdue:   counts.Overdue,
		TasksDueToday:  counts.DueToday,
		Upcoming:       upcoming,
	}

	if s.cache != nil {
		_ = s.cache.SetJSON(ctx, key, sum, summaryTTL)
	}
	return sum, nil
}
