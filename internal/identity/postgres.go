// internal/identity/postgres.go
package identity

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"paddock/internal/apperr"
)

// PostgresRepository stores user accounts in a relational table.
type PostgresRepository struct {
	db *sql.DB
}

// NewPostgresRepository creates a user repository over db.
func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) scanUser(row *sql.Row) (*User, error) {
	user := &User{}
	err := row.Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.Role,
		&user.PasswordHash,
		&user.Salt,
		&user.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query user: %w", err)
	}
	return user, nil
}

func (r *PostgresRepository) FindByID(ctx context.Context, id uuid.UUID) (*User, error) {
	return r.scanUser(r.db.QueryRowContext(ctx, `
		SELECT id, name, email, role, password_hash, salt, created_at
		FROM users
		WHERE id = $1
	`, id))
}

func (r *PostgresRepository) FindByEmail(ctx context.Context, email string) (*User, error) {
	return r.scanUser(r.db.QueryRowContext(ctx, `
		SELECT id, name, email, role, password_hash, salt, created_at
		FROM users
		WHERE lower(email) = lower($1)
	`, email))
}

func (r *PostgresRepository) Create(ctx context.Context, user *User) (*User, error) {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO users (id, name, email, role, password_hash, salt, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, user.ID, user.Name, user.Email, user.Role, user.PasswordHash, user.Salt, user.CreatedAt)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return nil, apperr.Conflict(fmt.Sprintf("email %q already registered", user.Email))
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}
	cp := *user
	return &cp, nil
}
