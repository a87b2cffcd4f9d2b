package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/swapnil-SN7/TODO-App/internal/domain"
	"github.com/swapnil-SN7/TODO-App/internal/dto"
	"github.com/swapnil-SN7/TODO-App/internal/service"
	"github.com/swapnil-SN7/TODO-App/internal/testutil"
	"github.com/swapnil-SN7/TODO-App/internal/validation"
)

func strPtr(s string) *string { return &s }

func TestCreateTrimsAndForcesPending(t *testing.T) {
	fake := testutil.NewFakeStore()
	svc := service.NewTodoService(fake, nil)

	got, err := svc.Create(context.Background(), dto.CreateTodoRequest{
		Title:       strPtr("  Buy milk  "),
		Description: strPtr(" 2 liters "),
		Status:      strPtr("completed"), // valid but ignored at creation
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if got.ID == "" {
		t.Error("expected a server-assigned id")
	}
	if got.Title != "Buy milk" {
		t.Errorf("expected trimmed title %q, got %q", "Buy milk", got.Title)
	}
	if got.Description != "2 liters" {
		t.Errorf("expected trimmed description, got %q", got.Description)
	}
	if got.Status != domain.StatusPending {
		t.Errorf("expected status pending, got %q", got.Status)
	}

	stored, err := svc.GetByID(context.Background(), got.ID)
	if err != nil {
		t.Fatalf("GetByID after Create failed: %v", err)
	}
	if stored != got {
		t.Errorf("stored record differs: got %+v, want %+v", stored, got)
	}
}

func TestCreateMintsFreshIDs(t *testing.T) {
	fake := testutil.NewFakeStore()
	svc := service.NewTodoService(fake, nil)

	seen := make(map[string]bool)
	for i := 0; i < 10; i++ {
		got, err := svc.Create(context.Background(), dto.CreateTodoRequest{Title: strPtr("task")})
		if err != nil {
			t.Fatalf("Create failed: %v", err)
		}
		if seen[got.ID] {
			t.Fatalf("id %q minted twice", got.ID)
		}
		seen[got.ID] = true
	}
}

func TestCreateInvalidNeverReachesStore(t *testing.T) {
	tests := []struct {
		name string
		req  dto.CreateTodoRequest
		want string
	}{
		{"missing title", dto.CreateTodoRequest{}, "Title is required"},
		{"blank title", dto.CreateTodoRequest{Title: strPtr("   ")}, "Title is required"},
		{"bad status", dto.CreateTodoRequest{Title: strPtr("x"), Status: strPtr("nope")}, "Invalid status"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := testutil.NewFakeStore()
			svc := service.NewTodoService(fake, nil)

			_, err := svc.Create(context.Background(), tt.req)
			var verr *validation.Error
			if !errors.As(err, &verr) || verr.Message != tt.want {
				t.Fatalf("expected validation error %q, got %v", tt.want, err)
			}
			if n := fake.Calls("Create"); n != 0 {
				t.Errorf("store Create called %d times for invalid payload", n)
			}
		})
	}
}

func TestUpdateAppliesOnlySuppliedFields(t *testing.T) {
	fake := testutil.NewFakeStore()
	fake.Seed(domain.Todo{ID: "t1", Title: "Buy milk", Description: "2 liters", Status: domain.StatusPending})
	svc := service.NewTodoService(fake, nil)

	got, err := svc.Update(context.Background(), "t1", dto.UpdateTodoRequest{Status: strPtr("completed")})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if got.Status != domain.StatusCompleted {
		t.Errorf("expected status completed, got %q", got.Status)
	}
	if got.Title != "Buy milk" || got.Description != "2 liters" {
		t.Errorf("untouched fields changed: %+v", got)
	}
}

func TestUpdateTrimsTitleAndDescription(t *testing.T) {
	fake := testutil.NewFakeStore()
	fake.Seed(domain.Todo{ID: "t1", Title: "old", Status: domain.StatusPending})
	svc := service.NewTodoService(fake, nil)

	got, err := svc.Update(context.Background(), "t1", dto.UpdateTodoRequest{
		Title:       strPtr("  new title "),
		Description: strPtr("  note "),
	})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if got.Title != "new title" || got.Description != "note" {
		t.Errorf("expected trimmed fields, got %+v", got)
	}
}

func TestUpdateMissingIsNotFound(t *testing.T) {
	fake := testutil.NewFakeStore()
	svc := service.NewTodoService(fake, nil)

	_, err := svc.Update(context.Background(), "ghost", dto.UpdateTodoRequest{Status: strPtr("completed")})
	if !errors.Is(err, service.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if n := fake.Calls("UpdateByID"); n != 0 {
		t.Errorf("store UpdateByID called %d times for missing id", n)
	}
}

func TestUpdateInvalidNeverReachesStore(t *testing.T) {
	fake := testutil.NewFakeStore()
	fake.Seed(domain.Todo{ID: "t1", Title: "x", Status: domain.StatusPending})
	svc := service.NewTodoService(fake, nil)

	_, err := svc.Update(context.Background(), "t1", dto.UpdateTodoRequest{})
	var verr *validation.Error
	if !errors.As(err, &verr) || verr.Message != "No updatable fields provided" {
		t.Fatalf("expected validation error, got %v", err)
	}
	if n := fake.Calls("GetByID"); n != 0 {
		t.Errorf("store reached (%d GetByID calls) for invalid payload", n)
	}
}

// A delete can land between the service's existence check and the store
// update. The store reports not-found; the caller must see the same
// not-found as if the pre-check had failed, not an internal fault.
func TestUpdateRacingDeleteIsNotFound(t *testing.T) {
	fake := testutil.NewFakeStore()
	fake.Seed(domain.Todo{ID: "t1", Title: "x", Status: domain.StatusPending})
	svc := service.NewTodoService(raceStore{fake}, nil)

	_, err := svc.Update(context.Background(), "t1", dto.UpdateTodoRequest{Status: strPtr("completed")})
	if !errors.Is(err, service.ErrNotFound) {
		t.Fatalf("expected ErrNotFound on racing delete, got %v", err)
	}
}

// raceStore deletes the document after every successful existence check,
// simulating a concurrent delete winning the race.
type raceStore struct {
	*testutil.FakeStore
}

func (r raceStore) GetByID(ctx context.Context, id string) (domain.Todo, bool, error) {
	t, found, err := r.FakeStore.GetByID(ctx, id)
	if found {
		r.FakeStore.Remove(id)
	}
	return t, found, err
}

func TestDeleteThenGetIsNotFound(t *testing.T) {
	fake := testutil.NewFakeStore()
	fake.Seed(domain.Todo{ID: "t1", Title: "x", Status: domain.StatusPending})
	svc := service.NewTodoService(fake, nil)

	if err := svc.Delete(context.Background(), "t1"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := svc.GetByID(context.Background(), "t1"); !errors.Is(err, service.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
	// Second delete is reported not-found, not a crash.
	if err := svc.Delete(context.Background(), "t1"); !errors.Is(err, service.ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second delete, got %v", err)
	}
}

func TestListReturnsAll(t *testing.T) {
	fake := testutil.NewFakeStore()
	fake.Seed(domain.Todo{ID: "a", Title: "one", Status: domain.StatusPending})
	fake.Seed(domain.Todo{ID: "b", Title: "two", Status: domain.StatusCompleted})
	svc := service.NewTodoService(fake, nil)

	list, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 todos, got %d", len(list))
	}
	byID := make(map[string]domain.Todo, len(list))
	for _, td := range list {
		byID[td.ID] = td
	}
	if byID["a"].Title != "one" || byID["b"].Title != "two" {
		t.Errorf("unexpected list contents: %+v", list)
	}
}

func TestStoreFaultPropagates(t *testing.T) {
	fake := testutil.NewFakeStore()
	fake.ListErr = errors.New("connection refused")
	svc := service.NewTodoService(fake, nil)

	if _, err := svc.List(context.Background()); err == nil {
		t.Fatal("expected store fault to propagate")
	}
}
