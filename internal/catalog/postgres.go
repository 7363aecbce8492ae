// internal/catalog/postgres.go
package catalog

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"paddock/internal/apperr"
)

// PostgresRepository stores parts in a relational table. Stock
// adjustments use a conditional single-row UPDATE, so the row itself is
// the lock scope and oversell cannot happen under concurrency.
type PostgresRepository struct {
	db *sql.DB
}

// NewPostgresRepository creates a part repository over db.
func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func scanPart(row interface{ Scan(...any) error }) (*Part, error) {
	part := &Part{}
	err := row.Scan(
		&part.ID,
		&part.Name,
		&part.Category,
		&part.Price,
		&part.Stock,
		&part.Performance.P,
		&part.Performance.A,
		&part.Performance.M,
		&part.CreatedAt,
		&part.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return part, nil
}

func (r *PostgresRepository) List(ctx context.Context) ([]*Part, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, category, price, stock, perf_p, perf_a, perf_m, created_at, updated_at
		FROM parts
		ORDER BY created_at
	`)
	if err != nil {
		return nil, fmt.Errorf("query parts: %w", err)
	}
	defer rows.Close()

	var parts []*Part
	for rows.Next() {
		part, err := scanPart(rows)
		if err != nil {
			return nil, fmt.Errorf("scan part: %w", err)
		}
		parts = append(parts, part)
	}
	return parts, rows.Err()
}

func (r *PostgresRepository) FindByID(ctx context.Context, id uuid.UUID) (*Part, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, name, category, price, stock, perf_p, perf_a, perf_m, created_at, updated_at
		FROM parts
		WHERE id = $1
	`, id)
	part, err := scanPart(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query part: %w", err)
	}
	return part, nil
}

func (r *PostgresRepository) FindByName(ctx context.Context, name string) (*Part, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, name, category, price, stock, perf_p, perf_a, perf_m, created_at, updated_at
		FROM parts
		WHERE name = $1
	`, name)
	part, err := scanPart(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query part by name: %w", err)
	}
	return part, nil
}

func (r *PostgresRepository) Create(ctx context.Context, part *Part) (*Part, error) {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO parts (id, name, category, price, stock, perf_p, perf_a, perf_m, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`, part.ID, part.Name, part.Category, part.Price, part.Stock,
		part.Performance.P, part.Performance.A, part.Performance.M,
		part.CreatedAt, part.UpdatedAt)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return nil, apperr.Conflict(fmt.Sprintf("part %q already exists", part.Name))
		}
		return nil, fmt.Errorf("insert part: %w", err)
	}
	cp := *part
	return &cp, nil
}

func (r *PostgresRepository) AdjustStock(ctx context.Context, id uuid.UUID, delta int) (*Part, error) {
	row := r.db.QueryRowContext(ctx, `
		UPDATE parts
		SET stock = stock + $1, updated_at = NOW()
		WHERE id = $2 AND stock + $1 >= 0
		RETURNING id, name, category, price, stock, perf_p, perf_a, perf_m, created_at, updated_at
	`, delta, id)
	part, err := scanPart(row)
	if err == sql.ErrNoRows {
		// Missing row or underflow; both are the caller's no-op sentinel.
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("adjust stock: %w", err)
	}
	return part, nil
}
