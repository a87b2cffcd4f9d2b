// Package store defines the document-store contract the service runs
// against. Each todo is one document keyed by its id; implementations live
// in the redisstore and pgstore subpackages.
package store

import (
	"context"
	"errors"

	"github.com/swapnil-SN7/TODO-App/internal/domain"
)

var (
	// ErrConflict means a document with the same id already exists
	// (existence-guarded create lost).
	ErrConflict = errors.New("id already exists")

	// ErrNotFound is returned by UpdateByID when the document vanished,
	// e.g. a concurrent delete between the caller's existence check and the
	// update. GetByID and DeleteByID never return it.
	ErrNotFound = errors.New("document not found")
)

// Patch is a sparse field set for partial updates: nil means leave the
// stored value untouched.
type Patch struct {
	Title       *string
	Description *string
	Status      *string
}

// IsEmpty reports whether the patch carries no fields.
func (p Patch) IsEmpty() bool {
	return p.Title == nil && p.Description == nil && p.Status == nil
}

// RecordStore is the document-keyed store behind the todo service.
//
// Create fails with ErrConflict if a document with the same id exists.
// List is a full scan with no ordering guarantee.
// GetByID reports absence through the bool, not an error.
// UpdateByID applies only the fields present in the patch and returns the
// full post-update document; an empty patch is a read. It does not verify
// existence up front but fails with ErrNotFound if there is nothing to
// update.
// DeleteByID is idempotent; deleting a missing id is not an error.
type RecordStore interface {
	Create(ctx context.Context, t domain.Todo) error
	List(ctx context.Context) ([]domain.Todo, error)
	GetByID(ctx context.Context, id string) (domain.Todo, bool, error)
	UpdateByID(ctx context.Context, id string, p Patch) (domain.Todo, error)
	DeleteByID(ctx context.Context, id string) error
}
