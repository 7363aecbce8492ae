// internal/sponsors/postgres.go
package sponsors

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"paddock/internal/apperr"
)

type postgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) Repository {
	return &postgresRepository{db: db}
}

const sponsorColumns = "id, name, date, created_at"

func scanSponsor(row interface{ Scan(...any) error }) (*Sponsor, error) {
	var sp Sponsor
	if err := row.Scan(&sp.ID, &sp.Name, &sp.Date, &sp.CreatedAt); err != nil {
		return nil, err
	}
	return &sp, nil
}

func (r *postgresRepository) List(ctx context.Context) ([]Sponsor, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+sponsorColumns+" FROM sponsors ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Sponsor
	for rows.Next() {
		sp, err := scanSponsor(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *sp)
	}
	return out, rows.Err()
}

func (r *postgresRepository) FindByID(ctx context.Context, id uuid.UUID) (*Sponsor, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+sponsorColumns+" FROM sponsors WHERE id = $1", id)
	sp, err := scanSponsor(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return sp, err
}

func (r *postgresRepository) FindByName(ctx context.Context, name string) (*Sponsor, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+sponsorColumns+" FROM sponsors WHERE lower(name) = lower($1)", name)
	sp, err := scanSponsor(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return sp, err
}

func (r *postgresRepository) Create(ctx context.Context, s *Sponsor) error {
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO sponsors (id, name, date, created_at) VALUES ($1, $2, $3, $4)",
		s.ID, s.Name, s.Date, s.CreatedAt)
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" {
		return apperr.Conflict(fmt.Sprintf("sponsor %q already exists", s.Name))
	}
	return err
}

func (r *postgresRepository) Update(ctx context.Context, s *Sponsor) (*Sponsor, error) {
	row := r.db.QueryRowContext(ctx,
		"UPDATE sponsors SET name = $1, date = $2 WHERE id = $3 RETURNING "+sponsorColumns,
		s.Name, s.Date, s.ID)
	sp, err := scanSponsor(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return sp, err
}

func (r *postgresRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	res, err := r.db.ExecContext(ctx, "DELETE FROM sponsors WHERE id = $1", id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}
