package idmap

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type querier interface {
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
}

// PGStore keeps mappings in the resource_id_map table, whose primary key
// on (scope_id, resource_type, source_id) enforces at-most-once creation.
type PGStore struct {
	db querier
}

func NewPGStore(pool *pgxpool.Pool) *PGStore {
	return &PGStore{db: pool}
}

func (s *PGStore) Lookup(ctx context.Context, key Key) (uuid.UUID, bool, error) {
	var id uuid.UUID
	err := s.db.QueryRow(ctx, `
		SELECT global_id FROM resource_id_map
		WHERE scope_id = $1 AND resource_type = $2 AND source_id = $3`,
		key.Scope, key.ResourceType, key.LocalID,
	).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return uuid.Nil, false, nil
	}
	if err != nil {
		return uuid.Nil, false, fmt.Errorf("lookup %s: %w", key, err)
	}
	return id, true, nil
}

func (s *PGStore) Insert(ctx context.Context, key Key, id uuid.UUID) (uuid.UUID, bool, error) {
	var got uuid.UUID
	err := s.db.QueryRow(ctx, `
		INSERT INTO resource_id_map (scope_id, resource_type, source_id, global_id)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (scope_id, resource_type, source_id) DO NOTHING
		RETURNING global_id`,
		key.Scope, key.ResourceType, key.LocalID, id,
	).Scan(&got)
	if err == nil {
		return got, true, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return uuid.Nil, false, fmt.Errorf("insert %s: %w", key, err)
	}

	// Lost the race: another writer created the row between our lookup and
	// insert, so its id wins.
	winner, ok, err := s.Lookup(ctx, key)
	if err != nil {
		return uuid.Nil, false, err
	}
	if !ok {
		return uuid.Nil, false, fmt.Errorf("insert %s: conflicting row vanished", key)
	}
	return winner, false, nil
}

func (s *PGStore) Reverse(ctx context.Context, resourceType string, id uuid.UUID) ([]Mapping, error) {
	rows, err := s.db.Query(ctx, `
		SELECT scope_id, resource_type, source_id, global_id, created_at
		FROM resource_id_map
		WHERE resource_type = $1 AND global_id = $2
		ORDER BY created_at, source_id`,
		resourceType, id,
	)
	if err != nil {
		return nil, fmt.Errorf("reverse %s/%s: %w", resourceType, id, err)
	}
	defer rows.Close()

	var out []Mapping
	for rows.Next() {
		var m Mapping
		if err := rows.Scan(&m.Scope, &m.ResourceType, &m.LocalID, &m.GlobalID, &m.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}
