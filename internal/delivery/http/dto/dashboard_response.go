package dto

import (
	"time"

	"contaflow/internal/usecase"
)

type DashboardSummaryResponse struct {
	ClientsTotal   int64          `json:"clients_total"`
	TasksTotal     int64          `json:"tasks_total"`
	TasksPending   int64          `json:"tasks_pending"`
	TasksCompleted int64          `json:"tasks_completed"`
	TasksOverdue   int64          `json:"tasks_overdue"`
	TasksDueToday  int64          `json:"tasks_due_today"`
	Upcoming       []TaskResponse `json:"upcoming"`
}

func NewDashboardSummaryResponse(s usecase.Summary, today time.Time) DashboardSummaryResponse {
	return DashboardSummaryResponse{
		ClientsTotal:   s.ClientsTotal,
		TasksTotal:     s.TasksTotal,
		TasksPending:   s.TasksPending,
		TasksCompleted: s.TasksCompleted,
		TasksOverdue:   s.TasksOverdue,
		TasksDueToday:  s.TasksDueToday,
		Upcoming:       NewTaskListResponse(s.Upcoming, today),
	}
}
