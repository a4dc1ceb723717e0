package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"contaflow/internal/database"
	"contaflow/internal/domain/profile"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const uniqueViolation = "23505"

type PostgresProfileRepository struct {
	db database.DB
}

func NewPostgresProfileRepository(db database.DB) *PostgresProfileRepository {
	return &PostgresProfileRepository{db: db}
}

func (r *PostgresProfileRepository) Create(ctx context.Context, p profile.Profile) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO profiles (id, name, email, account_type, password_hash)
		 VALUES ($1, $2, $3, $4, $5)`,
		p.ID, p.Name, p.Email, p.AccountType, p.PasswordHash,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return profile.ErrEmailTaken
		}
		return err
	}
	return nil
}

func (r *PostgresProfileRepository) GetByID(ctx context.Context, id uuid.UUID) (profile.Profile, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id, name, email, account_type, password_hash, created_at, last_login
		 FROM profiles WHERE id = $1`,
		id,
	)
	return scanProfile(row)
}

func (r *PostgresProfileRepository) GetByEmail(ctx context.Context, email string) (profile.Profile, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id, name, email, account_type, password_hash, created_at, last_login
		 FROM profiles WHERE email = $1`,
		email,
	)
	return scanProfile(row)
}

func (r *PostgresProfileRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	row := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM profiles WHERE email = $1)`, email)
	if err := row.Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *PostgresProfileRepository) UpdateName(ctx context.Context, id uuid.UUID, name string) error {
	affected, err := r.db.Exec(ctx, `UPDATE profiles SET name = $1 WHERE id = $2`, name, id)
	if err != nil {
		return err
	}
	if affected == 0 {
		return profile.ErrNotFound
	}
	return nil
}

func (r *PostgresProfileRepository) UpdatePasswordHash(ctx context.Context, id uuid.UUID, hash string) error {
	affected, err := r.db.Exec(ctx, `UPDATE profiles SET password_hash = $1 WHERE id = $2`, hash, id)
	if err != nil {
		return err
	}
	if affected == 0 {
		return profile.ErrNotFound
	}
	return nil
}

func (r *PostgresProfileRepository) TouchLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error {
	affected, err := r.db.Exec(ctx, `UPDATE profiles SET last_login = $1 WHERE id = $2`, at.UTC(), id)
	if err != nil {
		return err
	}
	if affected == 0 {
		return profile.ErrNotFound
	}
	return nil
}

func (r *PostgresProfileRepository) Delete(ctx context.Context, id uuid.UUID) error {
	affected, err := r.db.Exec(ctx, `DELETE FROM profiles WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if affected == 0 {
		return profile.ErrNotFound
	}
	return nil
}

func scanProfile(row database.Row) (profile.Profile, error) {
	var p profile.Profile
	var lastLogin *time.Time
	if err := row.Scan(&p.ID, &p.Name, &p.Email, &p.AccountType, &p.PasswordHash, &p.CreatedAt, &lastLogin); err != nil {
		if err == sql.ErrNoRows || errors.Is(err, pgx.ErrNoRows) {
			return profile.Profile{}, profile.ErrNotFound
		}
		return profile.Profile{}, err
	}
	p.LastLogin = lastLogin
	return p, nil
}
