// Package pgstore keeps each todo as one JSONB document in Postgres, keyed
// by id. The table is plain key/doc so the store contract stays the same as
// the Redis driver's: no relational schema for the task fields themselves.
package pgstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/swapnil-SN7/TODO-App/internal/domain"
	"github.com/swapnil-SN7/TODO-App/internal/store"
	"github.com/swapnil-SN7/TODO-App/internal/utils"
)

// Store implements store.RecordStore on a pgx pool.
type Store struct {
	db *pgxpool.Pool
}

func New(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

// document is the JSONB shape; field names match the wire format so the
// stored doc round-trips through the patch merge untouched.
type document struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Status      string `json:"status"`
}

func (s *Store) Create(ctx context.Context, t domain.Todo) error {
	doc, err := json.Marshal(toDocument(t))
	if err != nil {
		return fmt.Errorf("pg create %s: %w", t.ID, err)
	}
	_, err = s.db.Exec(ctx, `INSERT INTO todos (id, doc) VALUES ($1, $2)`, t.ID, doc)
	if err != nil {
		if utils.IsPGUniqueViolation(err) {
			return store.ErrConflict
		}
		return fmt.Errorf("pg create %s: %w", t.ID, err)
	}
	return nil
}

func (s *Store) List(ctx context.Context) ([]domain.Todo, error) {
	rows, err := s.db.Query(ctx, `SELECT doc FROM todos`)
	if err != nil {
		return nil, fmt.Errorf("pg list: %w", err)
	}
	defer rows.Close()

	list := make([]domain.Todo, 0)
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("pg list: %w", err)
		}
		t, err := fromRaw(raw)
		if err != nil {
			return nil, fmt.Errorf("pg list: %w", err)
		}
		list = append(list, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("pg list: %w", err)
	}
	return list, nil
}

func (s *Store) GetByID(ctx context.Context, id string) (domain.Todo, bool, error) {
	var raw []byte
	err := s.db.QueryRow(ctx, `SELECT doc FROM todos WHERE id = $1`, id).Scan(&raw)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Todo{}, false, nil
		}
		return domain.Todo{}, false, fmt.Errorf("pg get %s: %w", id, err)
	}
	t, err := fromRaw(raw)
	if err != nil {
		return domain.Todo{}, false, fmt.Errorf("pg get %s: %w", id, err)
	}
	return t, true, nil
}

func (s *Store) UpdateByID(ctx context.Context, id string, p store.Patch) (domain.Todo, error) {
	if p.IsEmpty() {
		t, found, err := s.GetByID(ctx, id)
		if err != nil {
			return domain.Todo{}, err
		}
		if !found {
			return domain.Todo{}, store.ErrNotFound
		}
		return t, nil
	}

	patch, err := json.Marshal(patchFields(p))
	if err != nil {
		return domain.Todo{}, fmt.Errorf("pg update %s: %w", id, err)
	}

	var raw []byte
	err = s.db.QueryRow(ctx,
		`UPDATE todos SET doc = doc || $2::jsonb WHERE id = $1 RETURNING doc`,
		id, patch,
	).Scan(&raw)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Todo{}, store.ErrNotFound
		}
		return domain.Todo{}, fmt.Errorf("pg update %s: %w", id, err)
	}
	t, err := fromRaw(raw)
	if err != nil {
		return domain.Todo{}, fmt.Errorf("pg update %s: %w", id, err)
	}
	return t, nil
}

func (s *Store) DeleteByID(ctx context.Context, id string) error {
	// Affected-row count is ignored: delete of a missing id is a no-op.
	if _, err := s.db.Exec(ctx, `DELETE FROM todos WHERE id = $1`, id); err != nil {
		return fmt.Errorf("pg delete %s: %w", id, err)
	}
	return nil
}

// patchFields maps only the present patch fields to their wire names, the
// merge operand for doc || patch.
func patchFields(p store.Patch) map[string]string {
	m := make(map[string]string, 3)
	if p.Title != nil {
		m["title"] = *p.Title
	}
	if p.Description != nil {
		m["description"] = *p.Description
	}
	if p.Status != nil {
		m["status"] = *p.Status
	}
	return m
}

func toDocument(t domain.Todo) document {
	return document{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Status:      string(t.Status),
	}
}

func fromRaw(raw []byte) (domain.Todo, error) {
	var d document
	if err := json.Unmarshal(raw, &d); err != nil {
		return domain.Todo{}, fmt.Errorf("decode doc: %w", err)
	}
	return domain.Todo{
		ID:          d.ID,
		Title:       d.Title,
		Description: d.Description,
		Status:      domain.Status(d.Status),
	}, nil
}
