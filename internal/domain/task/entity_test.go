package task

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestDisplayStatus_Classification(t *testing.T) {
	today := date(2024, time.April, 15)

	tests := []struct {
		name    string
		status  Status
		dueDate time.Time
		want    DisplayStatus
	}{
		{"pending past due is overdue", StatusPendente, date(2024, time.April, 14), DisplayAtrasada},
		{"pending due today", StatusPendente, date(2024, time.April, 15), DisplayVenceHoje},
		{"pending due tomorrow", StatusPendente, date(2024, time.April, 16), DisplayPendente},
		{"completed past due stays completed", StatusConcluida, date(2024, time.April, 14), DisplayConcluida},
		{"completed due today stays completed", StatusConcluida, date(2024, time.April, 15), DisplayConcluida},
		{"legacy stored atrasada past due", StatusAtrasada, date(2024, time.April, 1), DisplayAtrasada},
		{"legacy stored atrasada future due reads as pending", StatusAtrasada, date(2024, time.April, 20), DisplayPendente},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Task{Status: tt.status, DueDate: tt.dueDate}.DisplayStatus(today)
			if got != tt.want {
				t.Fatalf("DisplayStatus = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDisplayStatus_DayGranularity(t *testing.T) {
	// Time of day must not matter: due at 23:59 yesterday is overdue, due
	// at 00:01 today is due today.
	today := time.Date(2024, time.April, 15, 9, 30, 0, 0, time.UTC)

	lateEvening := Task{Status: StatusPendente, DueDate: time.Date(2024, time.April, 14, 23, 59, 0, 0, time.UTC)}
	if got := lateEvening.DisplayStatus(today); got != DisplayAtrasada {
		t.Fatalf("DisplayStatus = %q, want %q", got, DisplayAtrasada)
	}

	earlyMorning := Task{Status: StatusPendente, DueDate: time.Date(2024, time.April, 15, 0, 1, 0, 0, time.UTC)}
	if got := earlyMorning.DisplayStatus(today); got != DisplayVenceHoje {
		t.Fatalf("DisplayStatus = %q, want %q", got, DisplayVenceHoje)
	}
}

func TestDisplayStatus_CompleteOverdueTask(t *testing.T) {
	yesterday := date(2024, time.April, 14)
	today := date(2024, time.April, 15)

	tsk := Task{Title: "IRPF 2024", Status: StatusPendente, DueDate: yesterday}
	if got := tsk.DisplayStatus(today); got != DisplayAtrasada {
		t.Fatalf("pending task due yesterday: DisplayStatus = %q, want %q", got, DisplayAtrasada)
	}

	tsk.Status = StatusConcluida
	if got := tsk.DisplayStatus(today); got != DisplayConcluida {
		t.Fatalf("completed task due yesterday: DisplayStatus = %q, want %q", got, DisplayConcluida)
	}
}

func TestStatusWritable(t *testing.T) {
	if !StatusPendente.Writable() || !StatusConcluida.Writable() {
		t.Fatal("pendente and concluida must be writable")
	}
	if StatusAtrasada.Writable() {
		t.Fatal("atrasada must never be persisted by the application")
	}
}
