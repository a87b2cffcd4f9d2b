// Package redisstore keeps each todo as a Redis hash under <table>:<id>.
// The guarded create and the sparse update each run as a single Lua script,
// so guard and write are one atomic step at the store layer.
package redisstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/swapnil-SN7/TODO-App/internal/domain"
	"github.com/swapnil-SN7/TODO-App/internal/store"
)

const (
	fieldID          = "id"
	fieldTitle       = "title"
	fieldDescription = "description"
	fieldStatus      = "status"
)

// createScript writes the full document only when the key does not already
// exist. Guard and write must be one step: a reader between a separate guard
// and write would see a partial document, and a concurrent delete would be
// undone by the trailing write.
var createScript = redis.NewScript(`
if redis.call('EXISTS', KEYS[1]) == 1 then
  return false
end
for i = 1, #ARGV, 2 do
  redis.call('HSET', KEYS[1], ARGV[i], ARGV[i + 1])
end
return true
`)

// updateScript applies a sparse HSET only when the document still exists, so
// an update racing a delete no-ops instead of resurrecting the key. Returns
// the full post-update hash.
var updateScript = redis.NewScript(`
if redis.call('EXISTS', KEYS[1]) == 0 then
  return false
end
for i = 1, #ARGV, 2 do
  redis.call('HSET', KEYS[1], ARGV[i], ARGV[i + 1])
end
return redis.call('HGETALL', KEYS[1])
`)

// Store implements store.RecordStore on a Redis client.
type Store struct {
	rdb   *redis.Client
	table string
}

// New returns a Store namespacing its keys under table.
func New(rdb *redis.Client, table string) *Store {
	return &Store{rdb: rdb, table: table}
}

func (s *Store) key(id string) string { return s.table + ":" + id }

func (s *Store) Create(ctx context.Context, t domain.Todo) error {
	err := createScript.Run(ctx, s.rdb, []string{s.key(t.ID)}, createArgs(t)...).Err()
	if err != nil {
		// A false reply from the script surfaces as redis.Nil: the
		// existence guard lost.
		if errors.Is(err, redis.Nil) {
			return store.ErrConflict
		}
		return fmt.Errorf("redis create %s: %w", t.ID, err)
	}
	return nil
}

func (s *Store) List(ctx context.Context) ([]domain.Todo, error) {
	var keys []string
	iter := s.rdb.Scan(ctx, 0, s.table+":*", 100).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("redis scan: %w", err)
	}

	list := make([]domain.Todo, 0, len(keys))
	if len(keys) == 0 {
		return list, nil
	}

	pipe := s.rdb.Pipeline()
	cmds := make([]*redis.MapStringStringCmd, len(keys))
	for i, key := range keys {
		cmds[i] = pipe.HGetAll(ctx, key)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, fmt.Errorf("redis list: %w", err)
	}
	for _, cmd := range cmds {
		h := cmd.Val()
		if len(h) == 0 {
			// Key deleted between scan and read.
			continue
		}
		list = append(list, fromHash(h))
	}
	return list, nil
}

func (s *Store) GetByID(ctx context.Context, id string) (domain.Todo, bool, error) {
	h, err := s.rdb.HGetAll(ctx, s.key(id)).Result()
	if err != nil {
		return domain.Todo{}, false, fmt.Errorf("redis get %s: %w", id, err)
	}
	if len(h) == 0 {
		return domain.Todo{}, false, nil
	}
	return fromHash(h), true, nil
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

	res, err := updateScript.Run(ctx, s.rdb, []string{s.key(id)}, patchArgs(p)...).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return domain.Todo{}, store.ErrNotFound
		}
		return domain.Todo{}, fmt.Errorf("redis update %s: %w", id, err)
	}

	flat, ok := res.([]interface{})
	if !ok {
		return domain.Todo{}, fmt.Errorf("redis update %s: unexpected reply %T", id, res)
	}
	h := make(map[string]string, len(flat)/2)
	for i := 0; i+1 < len(flat); i += 2 {
		h[fmt.Sprint(flat[i])] = fmt.Sprint(flat[i+1])
	}
	return fromHash(h), nil
}

func (s *Store) DeleteByID(ctx context.Context, id string) error {
	if err := s.rdb.Del(ctx, s.key(id)).Err(); err != nil {
		return fmt.Errorf("redis delete %s: %w", id, err)
	}
	return nil
}

// createArgs flattens the whole document into HSET field/value pairs for the
// create script, id included, so one script invocation writes every field.
func createArgs(t domain.Todo) []interface{} {
	return []interface{}{
		fieldID, t.ID,
		fieldTitle, t.Title,
		fieldDescription, t.Description,
		fieldStatus, string(t.Status),
	}
}

// patchArgs flattens the present patch fields into HSET field/value pairs.
func patchArgs(p store.Patch) []interface{} {
	args := make([]interface{}, 0, 6)
	if p.Title != nil {
		args = append(args, fieldTitle, *p.Title)
	}
	if p.Description != nil {
		args = append(args, fieldDescription, *p.Description)
	}
	if p.Status != nil {
		args = append(args, fieldStatus, *p.Status)
	}
	return args
}

func fromHash(h map[string]string) domain.Todo {
	return domain.Todo{
		ID:          h[fieldID],
		Title:       h[fieldTitle],
		Description: h[fieldDescription],
		Status:      domain.Status(h[fieldStatus]),
	}
}
