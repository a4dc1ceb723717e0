package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"contaflow/internal/database"
	"contaflow/internal/domain/task"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type PostgresTaskRepository struct {
	db database.DB
}

func NewPostgresTaskRepository(db database.DB) *PostgresTaskRepository {
	return &PostgresTaskRepository{db: db}
}

const taskColumns = `id, user_id, client_id, title, description, task_type, due_date, status, created_at`

const dateLayout = "2006-01-02"

func (r *PostgresTaskRepository) Create(ctx context.Context, t task.Task) (task.Task, error) {
	_, err := r.db.Exec(ctx,
		`INSERT INTO tasks (id, user_id, client_id, title, description, task_type, due_date, status)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		t.ID, t.UserID, t.ClientID, t.Title, t.Description, t.Type, t.DueDate.Format(dateLayout), t.Status,
	)
	if err != nil {
		return task.Task{}, err
	}
	return r.GetByID(ctx, t.UserID, t.ID)
}

func (r *PostgresTaskRepository) GetByID(ctx context.Context, ownerID, id uuid.UUID) (task.Task, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+taskColumns+` FROM tasks WHERE id = $1 AND user_id = $2`,
		id, ownerID,
	)
	return scanTask(row)
}

func (r *PostgresTaskRepository) List(ctx context.Context, ownerID uuid.UUID, f task.Filter) ([]task.Task, error) {
	var sb strings.Builder
	sb.WriteString(`SELECT ` + taskColumns + ` FROM tasks WHERE user_id = $1`)
	args := []any{ownerID}

	// "atrasada" is never matched against the stored column: it is the
	// derived late-and-not-done predicate.
	switch f.Status {
	case string(task.DisplayAtrasada):
		args = append(args, f.Today.Format(dateLayout))
		fmt.Fprintf(&sb, ` AND status <> 'concluida' AND due_date < $%d`, len(args))
	case string(task.StatusPendente), string(task.StatusConcluida):
		args = append(args, f.Status)
		fmt.Fprintf(&sb, ` AND status = $%d`, len(args))
	}

	if f.Type != nil {
		args = append(args, *f.Type)
		fmt.Fprintf(&sb, ` AND task_type = $%d`, len(args))
	}
	if f.ClientID != nil {
		args = append(args, *f.ClientID)
		fmt.Fprintf(&sb, ` AND client_id = $%d`, len(args))
	}

	sb.WriteString(` ORDER BY due_date ASC, created_at ASC`)
	if f.Limit > 0 {
		args = append(args, f.Limit)
		fmt.Fprintf(&sb, ` LIMIT $%d`, len(args))
	}
	if f.Offset > 0 {
		args = append(args, f.Offset)
		fmt.Fprintf(&sb, ` OFFSET $%d`, len(args))
	}

	rows, err := r.db.Query(ctx, sb.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]task.Task, 0)
	for rows.Next() {
		t, err := scanTaskRow(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresTaskRepository) Update(ctx context.Context, t task.Task) (task.Task, error) {
	affected, err := r.db.Exec(ctx,
		`UPDATE tasks
		 SET client_id = $1, title = $2, description = $3, task_type = $4, due_date = $5
		 WHERE id = $6 AND user_id = $7`,
		t.ClientID, t.Title, t.Description, t.Type, t.DueDate.Format(dateLayout), t.ID, t.UserID,
	)
	if err != nil {
		return task.Task{}, err
	}
	if affected == 0 {
		return task.Task{}, task.ErrNotFound
	}
	return r.GetByID(ctx, t.UserID, t.ID)
}

func (r *PostgresTaskRepository) UpdateStatus(ctx context.Context, ownerID, id uuid.UUID, s task.Status) (task.Task, error) {
	affected, err := r.db.Exec(ctx,
		`UPDATE tasks SET status = $1 WHERE id = $2 AND user_id = $3`,
		s, id, ownerID,
	)
	if err != nil {
		return task.Task{}, err
	}
	if affected == 0 {
		return task.Task{}, task.ErrNotFound
	}
	return r.GetByID(ctx, ownerID, id)
}

func (r *PostgresTaskRepository) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	affected, err := r.db.Exec(ctx,
		`DELETE FROM tasks WHERE id = $1 AND user_id = $2`,
		id, ownerID,
	)
	if err != nil {
		return err
	}
	if affected == 0 {
		return task.ErrNotFound
	}
	return nil
}

func (r *PostgresTaskRepository) CountsByOwner(ctx context.Context, ownerID uuid.UUID, today time.Time) (task.Counts, error) {
	row := r.db.QueryRow(ctx,
		`SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE status <> 'concluida'),
			COUNT(*) FILTER (WHERE status = 'concluida'),
			COUNT(*) FILTER (WHERE status <> 'concluida' AND due_date < $2),
			COUNT(*) FILTER (WHERE status <> 'concluida' AND due_date = $2)
		 FROM tasks WHERE user_id = $1`,
		ownerID, today.Format(dateLayout),
	)

	var c task.Counts
	if err := row.Scan(&c.Total, &c.Pending, &c.Completed, &c.Overdue, &c.DueToday); err != nil {
		return task.Counts{}, err
	}
	return c, nil
}

func (r *PostgresTaskRepository) Upcoming(ctx context.Context, ownerID uuid.UUID, today time.Time, limit int) ([]task.Task, error) {
	if limit <= 0 {
		limit = 5
	}
	rows, err := r.db.Query(ctx,
		`SELECT `+taskColumns+` FROM tasks
		 WHERE user_id = $1 AND status <> 'concluida' AND due_date >= $2
		 ORDER BY due_date ASC, created_at ASC
		 LIMIT $3`,
		ownerID, today.Format(dateLayout), limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]task.Task, 0, limit)
	for rows.Next() {
		t, err := scanTaskRow(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func scanTask(row database.Row) (task.Task, error) {
	var t task.Task
	if err := row.Scan(&t.ID, &t.UserID, &t.ClientID, &t.Title, &t.Description, &t.Type, &t.DueDate, &t.Status, &t.CreatedAt); err != nil {
		if err == sql.ErrNoRows || errors.Is(err, pgx.ErrNoRows) {
			return task.Task{}, task.ErrNotFound
		}
		return task.Task{}, err
	}
	return t, nil
}

func scanTaskRow(rows database.Rows) (task.Task, error) {
	var t task.Task
	if err := rows.Scan(&t.ID, &t.UserID, &t.ClientID, &t.Title, &t.Description, &t.Type, &t.DueDate, &t.Status, &t.CreatedAt); err != nil {
		return task.Task{}, err
	}
	return t, nil
}
