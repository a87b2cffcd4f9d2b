// Package testutil provides testing utilities.
package testutil

import (
	"context"
	"sync"

	"github.com/swapnil-SN7/TODO-App/internal/domain"
	"github.com/swapnil-SN7/TODO-App/internal/store"
)

// FakeStore is an in-memory implementation of store.RecordStore for tests.
// Zero value is not usable; use NewFakeStore.
type FakeStore struct {
	mu    sync.RWMutex
	docs  map[string]domain.Todo
	calls map[string]int

	// Error injection. A non-nil error is returned by the matching
	// operation instead of touching the data.
	CreateErr error
	ListErr   error
	GetErr    error
	UpdateErr error
	DeleteErr error
}

func NewFakeStore() *FakeStore {
	return &FakeStore{
		docs:  make(map[string]domain.Todo),
		calls: make(map[string]int),
	}
}

// Calls returns how many times the named operation ran
// ("Create", "List", "GetByID", "UpdateByID", "DeleteByID").
func (f *FakeStore) Calls(op string) int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.calls[op]
}

// Seed inserts a todo directly, bypassing the create guard.
func (f *FakeStore) Seed(t domain.Todo) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.docs[t.ID] = t
}

// Remove drops a todo directly; used to simulate a concurrent delete
// between an existence check and the following store call.
func (f *FakeStore) Remove(id string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.docs, id)
}

func (f *FakeStore) Create(_ context.Context, t domain.Todo) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls["Create"]++
	if f.CreateErr != nil {
		return f.CreateErr
	}
	if _, exists := f.docs[t.ID]; exists {
		return store.ErrConflict
	}
	f.docs[t.ID] = t
	return nil
}

func (f *FakeStore) List(_ context.Context) ([]domain.Todo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls["List"]++
	if f.ListErr != nil {
		return nil, f.ListErr
	}
	list := make([]domain.Todo, 0, len(f.docs))
	for _, t := range f.docs {
		list = append(list, t)
	}
	return list, nil
}

func (f *FakeStore) GetByID(_ context.Context, id string) (domain.Todo, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls["GetByID"]++
	if f.GetErr != nil {
		return domain.Todo{}, false, f.GetErr
	}
	t, found := f.docs[id]
	return t, found, nil
}

func (f *FakeStore) UpdateByID(_ context.Context, id string, p store.Patch) (domain.Todo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls["UpdateByID"]++
	if f.UpdateErr != nil {
		return domain.Todo{}, f.UpdateErr
	}
	t, found := f.docs[id]
	if !found {
		return domain.Todo{}, store.ErrNotFound
	}
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.Status != nil {
		t.Status = domain.Status(*p.Status)
	}
	f.docs[id] = t
	return t, nil
}

func (f *FakeStore) DeleteByID(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls["DeleteByID"]++
	if f.DeleteErr != nil {
		return f.DeleteErr
	}
	delete(f.docs, id)
	return nil
}
