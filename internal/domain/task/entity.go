package task

import (
	"time"

	"github.com/google/uuid"
)

type Type string

const (
	TypeImposto    Type = "imposto"
	TypeFolha      Type = "folha"
	TypeDeclaracao Type = "declaracao"
	TypeOutro      Type = "outro"
)

func (t Type) Valid() bool {
	switch t {
	case TypeImposto, TypeFolha, TypeDeclaracao, TypeOutro:
		return true
	}
	return false
}

// Status is what the tasks table stores. The application only ever writes
// pendente and concluida; atrasada remains in the enum for rows written by
// older clients and is always re-derived on read.
type Status string

const (
	StatusPendente  Status = "pendente"
	StatusConcluida Status = "concluida"
	StatusAtrasada  Status = "atrasada"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPendente, StatusConcluida, StatusAtrasada:
		return true
	}
	return false
}

// Writable reports whether the application is allowed to persist this value.
func (s Status) Writable() bool {
	return s == StatusPendente || s == StatusConcluida
}

// DisplayStatus is the classification shown on list screens. It is derived
// per request and never persisted.
type DisplayStatus string

const (
	DisplayPendente  DisplayStatus = "pendente"
	DisplayVenceHoje DisplayStatus = "vence_hoje"
	DisplayAtrasada  DisplayStatus = "atrasada"
	DisplayConcluida DisplayStatus = "concluida"
)

type Task struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	ClientID    *uuid.UUID
	Title       string
	Description *string
	Type        Type
	DueDate     time.Time
	Status      Status
	CreatedAt   time.Time
}

// DisplayStatus classifies the task against the viewer's local date at day
// granularity. An explicit concluida always wins; everything else is derived
// from the due date, so a stored atrasada row with a future due date reads
// as pendente.
func (t Task) DisplayStatus(today time.Time) DisplayStatus {
	if t.Status == StatusConcluida {
		return DisplayConcluida
	}
	due := dayOf(t.DueDate)
	now := dayOf(today)
	switch {
	case due.Before(now):
		return DisplayAtrasada
	case due.Equal(now):
		return DisplayVenceHoje
	default:
		return DisplayPendente
	}
}

func (t Task) IsOverdue(today time.Time) bool {
	return t.DisplayStatus(today) == DisplayAtrasada
}

func (t Task) IsDueToday(today time.Time) bool {
	return t.DisplayStatus(today) == DisplayVenceHoje
}

func dayOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
