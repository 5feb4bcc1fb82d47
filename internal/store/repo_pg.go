package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ehr/transforms/pkg/fhirmodels"
)

type querier interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
}

// PGStore keeps the latest body of each resource in resource_current and
// every save or delete in the append-only resource_history table.
type PGStore struct {
	db querier
}

func NewPGStore(pool *pgxpool.Pool) *PGStore {
	return &PGStore{db: pool}
}

func unavailable(op string, key Key, err error) error {
	return fmt.Errorf("%s %s: %w: %w", op, key, ErrUnavailable, err)
}

func (s *PGStore) GetCurrentVersion(ctx context.Context, key Key) (fhirmodels.Resource, error) {
	var body []byte
	err := s.db.QueryRow(ctx, `
		SELECT body FROM resource_current
		WHERE scope_id = $1 AND resource_type = $2 AND resource_id = $3`,
		key.Scope, string(key.Kind), key.ID,
	).Scan(&body)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", key, ErrNotFound)
	}
	if err != nil {
		return nil, unavailable("get", key, err)
	}
	r, err := fhirmodels.Unmarshal(body)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", key, err)
	}
	return r, nil
}

func (s *PGStore) Save(ctx context.Context, key Key, r fhirmodels.Resource) (int, error) {
	body, err := fhirmodels.Marshal(r)
	if err != nil {
		return 0, fmt.Errorf("encode %s: %w", key, err)
	}

	var version int
	err = pgx.BeginFunc(ctx, s.db, func(tx pgx.Tx) error {
		v, err := nextVersion(ctx, tx, key)
		if err != nil {
			return err
		}
		version = v
		if _, err := tx.Exec(ctx, `
			INSERT INTO resource_current (scope_id, resource_type, resource_id, version, body, updated_at)
			VALUES ($1, $2, $3, $4, $5, NOW())
			ON CONFLICT (scope_id, resource_type, resource_id)
			DO UPDATE SET version = EXCLUDED.version, body = EXCLUDED.body, updated_at = EXCLUDED.updated_at`,
			key.Scope, string(key.Kind), key.ID, v, body,
		); err != nil {
			return err
		}
		_, err = tx.Exec(ctx, `
			INSERT INTO resource_history (scope_id, resource_type, resource_id, version, action, body)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			key.Scope, string(key.Kind), key.ID, v, ActionSave, body,
		)
		return err
	})
	if err != nil {
		return 0, unavailable("save", key, err)
	}
	return version, nil
}

func (s *PGStore) Delete(ctx context.Context, key Key) error {
	err := pgx.BeginFunc(ctx, s.db, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, `
			DELETE FROM resource_current
			WHERE scope_id = $1 AND resource_type = $2 AND resource_id = $3`,
			key.Scope, string(key.Kind), key.ID,
		)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return ErrNotFound
		}
		v, err := nextVersion(ctx, tx, key)
		if err != nil {
			return err
		}
		_, err = tx.Exec(ctx, `
			INSERT INTO resource_history (scope_id, resource_type, resource_id, version, action)
			VALUES ($1, $2, $3, $4, $5)`,
			key.Scope, string(key.Kind), key.ID, v, ActionDelete,
		)
		return err
	})
	if errors.Is(err, ErrNotFound) {
		return fmt.Errorf("%s: %w", key, ErrNotFound)
	}
	if err != nil {
		return unavailable("delete", key, err)
	}
	return nil
}

func (s *PGStore) History(ctx context.Context, key Key) ([]Version, error) {
	rows, err := s.db.Query(ctx, `
		SELECT version, action, body, recorded_at FROM resource_history
		WHERE scope_id = $1 AND resource_type = $2 AND resource_id = $3
		ORDER BY version`,
		key.Scope, string(key.Kind), key.ID,
	)
	if err != nil {
		return nil, unavailable("history", key, err)
	}
	defer rows.Close()

	var out []Version
	for rows.Next() {
		var (
			v    Version
			body []byte
			at   time.Time
		)
		if err := rows.Scan(&v.Version, &v.Action, &body, &at); err != nil {
			return nil, unavailable("history", key, err)
		}
		v.RecordedAt = at
		if body != nil {
			if v.Resource, err = fhirmodels.Unmarshal(body); err != nil {
				return nil, fmt.Errorf("decode %s v%d: %w", key, v.Version, err)
			}
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, unavailable("history", key, err)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%s: %w", key, ErrNotFound)
	}
	return out, nil
}

func nextVersion(ctx context.Context, tx pgx.Tx, key Key) (int, error) {
	var v int
	err := tx.QueryRow(ctx, `
		SELECT COALESCE(MAX(version), 0) + 1 FROM resource_history
		WHERE scope_id = $1 AND resource_type = $2 AND resource_id = $3`,
		key.Scope, string(key.Kind), key.ID,
	).Scan(&v)
	return v, err
}
