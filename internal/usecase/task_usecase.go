package usecase

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"contaflow/internal/domain/client"
	"contaflow/internal/domain/task"
)

type TaskListParams struct {
	Status   string
	Type     string
	ClientID *uuid.UUID
	Today    time.Time
	Limit    int
	Offset   int
}

type TaskInput struct {
	Title       string
	Description *string
	Type        string
	DueDate     time.Time
	ClientID    *uuid.UUID
}

type TaskUsecase interface {
	List(ctx context.Context, ownerID uuid.UUID, p TaskListParams) ([]task.Task, error)
	Get(ctx context.Context, ownerID, id uuid.UUID) (task.Task, error)
	Create(ctx context.Context, ownerID uuid.UUID, in TaskInput) (task.Task, error)
	Update(ctx context.Context, ownerID, id uuid.UUID, in TaskInput) (task.Task, error)
	SetStatus(ctx context.Context, ownerID, id uuid.UUID, status string) (task.Task, error)
	Delete(ctx context.Context, ownerID, id uuid.UUID) error
}

type Tasks struct {
	tasks    task.Repository
	clients  client.Repository
	cache    SummaryCache
	notifier Notifier
}

func NewTaskUsecase(tasks task.Repository, clients client.Repository, cache SummaryCache, notifier Notifier) *Tasks {
	return &Tasks{tasks: tasks, clients: clients, cache: cache, notifier: notifier}
}

func (s *Tasks) List(ctx context.Context, ownerID uuid.UUID, p TaskListParams) ([]task.Task, error) {
	f := task.Filter{
		ClientID: p.ClientID,
		Today:    p.Today,
		Limit:    clampLimit(p.Limit),
		Offset:   max(p.Offset, 0),
	}
	if f.Today.IsZero() {
		f.Today = time.Now()
	}

	switch st := strings.TrimSpace(p.Status); st {
	case "", string(task.StatusPendente), string(task.StatusConcluida), string(task.DisplayAtrasada):
		f.Status = st
	default:
		return nil, ErrInvalidInput
	}

	if tt := strings.TrimSpace(p.Type); tt != "" {
		t := task.Type(tt)
		if !t.Valid() {
			return nil, ErrInvalidInput
		}
		f.Type = &t
	}

	items, err := s.tasks.List(ctx, ownerID, f)
	if err != nil {
		return nil, ErrInternal
	}
	return items, nil
}

func (s *Tasks) Get(ctx context.Context, ownerID, id uuid.UUID) (task.Task, error) {
	t, err := s.tasks.GetByID(ctx, ownerID, id)
	if err != nil {
		if errors.Is(err, task.ErrNotFound) {
			return task.Task{}, ErrNotFound
		}
		return task.Task{}, ErrInternal
	}
	return t, nil
}

func (s *Tasks) Create(ctx context.Context, ownerID uuid.UUID, in TaskInput) (task.Task, error) {
	t, err := s.validate(ctx, ownerID, in)
	if err != nil {
		return task.Task{}, err
	}
	t.ID = uuid.New()
	t.Status = task.StatusPendente

	created, err := s.tasks.Create(ctx, t)
	if err != nil {
		return task.Task{}, ErrInternal
	}

	s.invalidate(ctx, ownerID)
	return created, nil
}

func (s *Tasks) Update(ctx context.Context, ownerID, id uuid.UUID, in TaskInput) (task.Task, error) {
	t, err := s.validate(ctx, ownerID, in)
	if err != nil {
		return task.Task{}, err
	}
	t.ID = id

	updated, err := s.tasks.Update(ctx, t)
	if err != nil {
		if errors.Is(err, task.ErrNotFound) {
			return task.Task{}, ErrNotFound
		}
		return task.Task{}, ErrInternal
	}

	s.invalidate(ctx, ownerID)
	return updated, nil
}

// SetStatus persists pendente or concluida only; atrasada is never written,
// it is derived on read.
func (s *Tasks) SetStatus(ctx context.Context, ownerID, id uuid.UUID, status string) (task.Task, error) {
	st := task.Status(strings.TrimSpace(status))
	if !st.Writable() {
		return task.Task{}, ErrInvalidInput
	}

	updated, err := s.tasks.UpdateStatus(ctx, ownerID, id, st)
	if err != nil {
		if errors.Is(err, task.ErrNotFound) {
			return task.Task{}, ErrNotFound
		}
		return task.Task{}, ErrInternal
	}

	s.invalidate(ctx, ownerID)
	return updated, nil
}

func (s *Tasks) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	if err := s.tasks.Delete(ctx, ownerID, id); err != nil {
		if errors.Is(err, task.ErrNotFound) {
			return ErrNotFound
		}
		return ErrInternal
	}

	s.invalidate(ctx, ownerID)
	return nil
}

func (s *Tasks) validate(ctx context.Context, ownerID uuid.UUID, in TaskInput) (task.Task, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" || utf8.RuneCountInString(title) > maxNameLen {
		return task.Task{}, ErrInvalidInput
	}

	tt := task.Type(strings.TrimSpace(in.Type))
	if !tt.Valid() {
		return task.Task{}, ErrInvalidInput
	}

	if in.DueDate.IsZero() {
		return task.Task{}, ErrInvalidInput
	}

	// A referenced client must resolve within the owner's rows; a foreign
	// client id is indistinguishable from a missing one.
	if in.ClientID != nil {
		if _, err := s.clients.GetByID(ctx, ownerID, *in.ClientID); err != nil {
			if errors.Is(err, client.ErrNotFound) {
				return task.Task{}, ErrNotFound
			}
			return task.Task{}, ErrInternal
		}
	}

	return task.Task{
		UserID:      ownerID,
		ClientID:    in.ClientID,
		Title:       title,
		Description: normalizeOptional(in.Description),
		Type:        tt,
		DueDate:     in.DueDate,
	}, nil
}

func (s *Tasks) invalidate(ctx context.Context, ownerID uuid.UUID) {
	if s.cache != nil {
		_ = s.cache.DeleteByPattern(ctx, dashboardPattern(ownerID))
	}
	if s.notifier != nil {
		s.notifier.NotifyUser(ownerID, EventTasksUpdated)
	}
}
