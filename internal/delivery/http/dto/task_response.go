package dto

import (
	"time"

	"github.com/google/uuid"

	"contaflow/internal/domain/task"
)

type TaskResponse struct {
	ID          uuid.UUID  `json:"id"`
	ClientID    *uuid.UUID `json:"client_id"`
	Title       string     `json:"title"`
	Description *string    `json:"description"`
	TaskType    string     `json:"task_type"`
	DueDate     string     `json:"due_date"`
	Status      string     `json:"status"`
	// DisplayStatus is derived against the viewer's local date and is what
	// list screens render; it is never stored.
	DisplayStatus string    `json:"display_status"`
	CreatedAt     time.Time `json:"created_at"`
}

func NewTaskResponse(t task.Task, today time.Time) TaskResponse {
	return TaskResponse{
		ID:            t.ID,
		ClientID:      t.ClientID,
		Title:         t.Title,
		Description:   t.Description,
		TaskType:      string(t.Type),
		DueDate:       t.DueDate.Format("2006-01-02"),
		Status:        string(t.Status),
		DisplayStatus: string(t.DisplayStatus(today)),
		CreatedAt:     t.CreatedAt,
	}
}

func NewTaskListResponse(items []task.Task, today time.Time) []TaskResponse {
	out := make([]TaskResponse, 0, len(items))
	for _, t := range items {
		out = append(out, NewTaskResponse(t, today))
	}
	return out
}
