package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"contaflow/internal/database"
	"contaflow/internal/domain/client"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type PostgresClientRepository struct {
	db database.DB
}

func NewPostgresClientRepository(db database.DB) *PostgresClientRepository {
	return &PostgresClientRepository{db: db}
}

const clientColumns = `id, user_id, name, cpf_cnpj, person_type, email, phone, created_at`

func (r *PostgresClientRepository) Create(ctx context.Context, c client.Client) (client.Client, error) {
	_, err := r.db.Exec(ctx,
		`INSERT INTO clients (id, user_id, name, cpf_cnpj, person_type, email, phone)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		c.ID, c.UserID, c.Name, c.CpfCnpj, c.PersonType, c.Email, c.Phone,
	)
	if err != nil {
		return client.Client{}, err
	}
	return r.GetByID(ctx, c.UserID, c.ID)
}

func (r *PostgresClientRepository) GetByID(ctx context.Context, ownerID, id uuid.UUID) (client.Client, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+clientColumns+` FROM clients WHERE id = $1 AND user_id = $2`,
		id, ownerID,
	)
	return scanClient(row)
}

func (r *PostgresClientRepository) List(ctx context.Context, ownerID uuid.UUID, f client.Filter) ([]client.Client, error) {
	var sb strings.Builder
	sb.WriteString(`SELECT ` + clientColumns + ` FROM clients WHERE user_id = $1`)
	args := []any{ownerID}

	if f.PersonType != nil {
		args = append(args, *f.PersonType)
		fmt.Fprintf(&sb, ` AND person_type = $%d`, len(args))
	}
	if s := strings.TrimSpace(f.Search); s != "" {
		args = append(args, "%"+escapeLike(s)+"%")
		fmt.Fprintf(&sb, ` AND (name ILIKE $%d OR cpf_cnpj ILIKE $%d)`, len(args), len(args))
	}

	sb.WriteString(` ORDER BY name ASC`)
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

	out := make([]client.Client, 0)
	for rows.Next() {
		c, err := scanClientRow(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresClientRepository) Update(ctx context.Context, c client.Client) (client.Client, error) {
	affected, err := r.db.Exec(ctx,
		`UPDATE clients
		 SET name = $1, cpf_cnpj = $2, person_type = $3, email = $4, phone = $5
		 WHERE id = $6 AND user_id = $7`,
		c.Name, c.CpfCnpj, c.PersonType, c.Email, c.Phone, c.ID, c.UserID,
	)
	if err != nil {
		return client.Client{}, err
	}
	if affected == 0 {
		return client.Client{}, client.ErrNotFound
	}
	return r.GetByID(ctx, c.UserID, c.ID)
}

func (r *PostgresClientRepository) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	affected, err := r.db.Exec(ctx,
		`DELETE FROM clients WHERE id = $1 AND user_id = $2`,
		id, ownerID,
	)
	if err != nil {
		return err
	}
	if affected == 0 {
		return client.ErrNotFound
	}
	return nil
}

func (r *PostgresClientRepository) CountByOwner(ctx context.Context, ownerID uuid.UUID) (int64, error) {
	var n int64
	row := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM clients WHERE user_id = $1`, ownerID)
	if err := row.Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike neutralizes LIKE wildcards in user-supplied search text so a
// literal "%" or "_" matches itself instead of everything.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

func scanClient(row database.Row) (client.Client, error) {
	var c client.Client
	if err := row.Scan(&c.ID, &c.UserID, &c.Name, &c.CpfCnpj, &c.PersonType, &c.Email, &c.Phone, &c.CreatedAt); err != nil {
		if err == sql.ErrNoRows || errors.Is(err, pgx.ErrNoRows) {
			return client.Client{}, client.ErrNotFound
		}
		return client.Client{}, err
	}
	return c, nil
}

func scanClientRow(rows database.Rows) (client.Client, error) {
	var c client.Client
	if err := rows.Scan(&c.ID, &c.UserID, &c.Name, &c.CpfCnpj, &c.PersonType, &c.Email, &c.Phone, &c.CreatedAt); err != nil {
		return client.Client{}, err
	}
	return c, nil
}
