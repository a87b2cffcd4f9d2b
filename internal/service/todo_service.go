package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"github.com/swapnil-SN7/TODO-App/internal/cache"
	"github.com/swapnil-SN7/TODO-App/internal/domain"
	"github.com/swapnil-SN7/TODO-App/internal/dto"
	"github.com/swapnil-SN7/TODO-App/internal/store"
	"github.com/swapnil-SN7/TODO-App/internal/validation"
)

// ErrNotFound means the referenced todo does not exist.
var ErrNotFound = errors.New("todo not found")

// TodoService orchestrates validation and the record store per operation.
// The store does not verify existence on update/delete, so the service
// pre-checks with GetByID; a silent no-op on a missing id would otherwise
// report success for a resource that is not there.
type TodoService struct {
	store store.RecordStore
	cache *cache.TodoCache
	sf    singleflight.Group
}

// NewTodoService creates a TodoService. If c is nil, caching is disabled.
func NewTodoService(s store.RecordStore, c *cache.TodoCache) *TodoService {
	return &TodoService{store: s, cache: c}
}

// Create validates the payload, mints an id and persists the todo with
// status forced to pending. Title and description are stored trimmed.
func (s *TodoService) Create(ctx context.Context, req dto.CreateTodoRequest) (domain.Todo, error) {
	if err := validation.ValidateCreate(req); err != nil {
		return domain.Todo{}, err
	}

	t := domain.Todo{
		ID:     uuid.NewString(),
		Title:  strings.TrimSpace(*req.Title),
		Status: domain.StatusPending,
	}
	if req.Description != nil {
		t.Description = strings.TrimSpace(*req.Description)
	}

	if err := s.store.Create(ctx, t); err != nil {
		return domain.Todo{}, fmt.Errorf("create todo: %w", err)
	}
	s.invalidateCache(ctx)
	return t, nil
}

func (s *TodoService) List(ctx context.Context) ([]domain.Todo, error) {
	if s.cache != nil {
		v, err, _ := s.sf.Do("list", func() (interface{}, error) {
			if list, err := s.cache.GetList(ctx); err == nil && list != nil {
				return list, nil
			}
			list, err := s.store.List(ctx)
			if err != nil {
				return nil, err
			}
			_ = s.cache.SetList(ctx, list)
			return list, nil
		})
		if err != nil {
			return nil, err
		}
		return v.([]domain.Todo), nil
	}
	return s.store.List(ctx)
}

func (s *TodoService) GetByID(ctx context.Context, id string) (domain.Todo, error) {
	t, found, err := s.store.GetByID(ctx, id)
	if err != nil {
		return domain.Todo{}, err
	}
	if !found {
		return domain.Todo{}, ErrNotFound
	}
	return t, nil
}

// Update applies only the fields present in req. The store may still report
// not-found after the pre-check passes (concurrent delete); that surfaces as
// ErrNotFound too, never as an internal fault.
func (s *TodoService) Update(ctx context.Context, id string, req dto.UpdateTodoRequest) (domain.Todo, error) {
	if err := validation.ValidateUpdate(req); err != nil {
		return domain.Todo{}, err
	}

	if _, found, err := s.store.GetByID(ctx, id); err != nil {
		return domain.Todo{}, err
	} else if !found {
		return domain.Todo{}, ErrNotFound
	}

	patch := store.Patch{Status: req.Status}
	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		patch.Title = &title
	}
	if req.Description != nil {
		desc := strings.TrimSpace(*req.Description)
		patch.Description = &desc
	}

	t, err := s.store.UpdateByID(ctx, id, patch)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Todo{}, ErrNotFound
		}
		return domain.Todo{}, fmt.Errorf("update todo %s: %w", id, err)
	}
	s.invalidateCache(ctx)
	return t, nil
}

// Delete removes the todo. The store delete itself is idempotent; the 404 on
// a missing id comes from the pre-check here.
func (s *TodoService) Delete(ctx context.Context, id string) error {
	if _, found, err := s.store.GetByID(ctx, id); err != nil {
		return err
	} else if !found {
		return ErrNotFound
	}

	if err := s.store.DeleteByID(ctx, id); err != nil {
		return fmt.Errorf("delete todo %s: %w", id, err)
	}
	s.invalidateCache(ctx)
	return nil
}

func (s *TodoService) invalidateCache(ctx context.Context) {
	if s.cache != nil {
		_ = s.cache.Invalidate(ctx)
	}
}
