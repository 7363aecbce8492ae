// Package aggstore provides a versioned JSONB document store for
// aggregates with optimistic concurrency control over PostgreSQL.
package aggstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

var (
	ErrVersionConflict = errors.New("version conflict: aggregate was modified concurrently")
	ErrNotFound        = errors.New("aggregate not found")
	ErrDuplicate       = errors.New("aggregate already exists")
)

// Store persists one JSONB document per aggregate, guarded by a version
// counter.
type Store struct {
	db     *sql.DB
	tracer trace.Tracer
}

// NewStore creates a document store over db.
func NewStore(db *sql.DB) *Store {
	return &Store{
		db:     db,
		tracer: otel.Tracer("paddock/aggstore"),
	}
}

// Insert stores a new aggregate document at version 1.
func (s *Store) Insert(ctx context.Context, collection string, id uuid.UUID, doc any) error {
	ctx, span := s.tracer.Start(ctx, "aggstore.insert",
		trace.WithAttributes(
			attribute.String("aggregate.collection", collection),
			attribute.String("aggregate.id", id.String()),
		),
	)
	defer span.End()

	body, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshal document: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO aggregates (collection, id, version, doc, updated_at)
		VALUES ($1, $2, 1, $3, $4)
	`, collection, id, body, time.Now().UTC())
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return ErrDuplicate
		}
		return fmt.Errorf("insert aggregate: %w", err)
	}
	return nil
}

// Get loads the document and its current version.
func (s *Store) Get(ctx context.Context, collection string, id uuid.UUID) (json.RawMessage, int, error) {
	ctx, span := s.tracer.Start(ctx, "aggstore.get",
		trace.WithAttributes(
			attribute.String("aggregate.collection", collection),
			attribute.String("aggregate.id", id.String()),
		),
	)
	defer span.End()

	var doc json.RawMessage
	var version int
	err := s.db.QueryRowContext(ctx, `
		SELECT doc, version
		FROM aggregates
		WHERE collection = $1 AND id = $2
	`, collection, id).Scan(&doc, &version)
	if err == sql.ErrNoRows {
		return nil, 0, ErrNotFound
	}
	if err != nil {
		return nil, 0, fmt.Errorf("query aggregate: %w", err)
	}

	span.SetAttributes(attribute.Int("aggregate.version", version))
	return doc, version, nil
}

// Replace atomically swaps the document for the next version. It fails
// with ErrVersionConflict if the stored version no longer matches
// expectedVersion.
func (s *Store) Replace(ctx context.Context, collection string, id uuid.UUID, expectedVersion int, doc any) error {
	ctx, span := s.tracer.Start(ctx, "aggstore.replace",
		trace.WithAttributes(
			attribute.String("aggregate.collection", collection),
			attribute.String("aggregate.id", id.String()),
			attribute.Int("expected.version", expectedVersion),
		),
	)
	defer span.End()

	body, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshal document: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{
		Isolation: sql.LevelSerializable,
	})
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	var currentVersion int
	err = tx.QueryRowContext(ctx, `
		SELECT version
		FROM aggregates
		WHERE collection = $1 AND id = $2
		FOR UPDATE
	`, collection, id).Scan(&currentVersion)
	if err == sql.ErrNoRows {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("query current version: %w", err)
	}

	if currentVersion != expectedVersion {
		span.SetAttributes(
			attribute.Int("actual.version", currentVersion),
			attribute.Bool("conflict.detected", true),
		)
		return ErrVersionConflict
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE aggregates
		SET doc = $1, version = version + 1, updated_at = $2
		WHERE collection = $3 AND id = $4
	`, body, time.Now().UTC(), collection, id)
	if err != nil {
		return fmt.Errorf("update aggregate: %w", err)
	}

	return tx.Commit()
}

// Delete removes the aggregate document.
func (s *Store) Delete(ctx context.Context, collection string, id uuid.UUID) error {
	ctx, span := s.tracer.Start(ctx, "aggstore.delete",
		trace.WithAttributes(
			attribute.String("aggregate.collection", collection),
			attribute.String("aggregate.id", id.String()),
		),
	)
	defer span.End()

	result, err := s.db.ExecContext(ctx, `
		DELETE FROM aggregates
		WHERE collection = $1 AND id = $2
	`, collection, id)
	if err != nil {
		return fmt.Errorf("delete aggregate: %w", err)
	}
	affected, _ := result.RowsAffected()
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// List returns every document in a collection, oldest first.
func (s *Store) List(ctx context.Context, collection string) ([]json.RawMessage, error) {
	ctx, span := s.tracer.Start(ctx, "aggstore.list",
		trace.WithAttributes(attribute.String("aggregate.collection", collection)),
	)
	defer span.End()

	rows, err := s.db.QueryContext(ctx, `
		SELECT doc
		FROM aggregates
		WHERE collection = $1
		ORDER BY updated_at
	`, collection)
	if err != nil {
		return nil, fmt.Errorf("query aggregates: %w", err)
	}
	defer rows.Close()

	var docs []json.RawMessage
	for rows.Next() {
		var doc json.RawMessage
		if err := rows.Scan(&doc); err != nil {
			return nil, fmt.Errorf("scan aggregate: %w", err)
		}
		docs = append(docs, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate aggregates: %w", err)
	}

	span.SetAttributes(attribute.Int("aggregates.loaded", len(docs)))
	return docs, nil
}
