// Package validation holds the pure payload checks for todo create/update
// bodies. The error messages are part of the HTTP contract and must not
// change wording.
package validation

import (
	"strings"

	"github.com/swapnil-SN7/TODO-App/internal/domain"
	"github.com/swapnil-SN7/TODO-App/internal/dto"
)

// Error is a client-input validation failure. Its message is returned to the
// caller verbatim in the 400 body.
type Error struct {
	Message string
}

func (e *Error) Error() string { return e.Message }

// ErrInvalidBody covers payloads that are not a structured object at all
// (malformed JSON, arrays, scalars).
var ErrInvalidBody = &Error{Message: "Invalid request body"}

// ValidateCreate checks a create payload. It does not mutate the request.
func ValidateCreate(req dto.CreateTodoRequest) error {
	if req.Title == nil || strings.TrimSpace(*req.Title) == "" {
		return &Error{Message: "Title is required"}
	}
	if req.Status != nil && !domain.Status(*req.Status).Valid() {
		return &Error{Message: "Invalid status"}
	}
	return nil
}

// ValidateUpdate checks an update payload. At least one updatable field must
// be present; a present title must be non-blank after trimming.
func ValidateUpdate(req dto.UpdateTodoRequest) error {
	if req.Title == nil && req.Description == nil && req.Status == nil {
		return &Error{Message: "No updatable fields provided"}
	}
	if req.Title != nil && strings.TrimSpace(*req.Title) == "" {
		return &Error{Message: "Title cannot be empty"}
	}
	if req.Status != nil && !domain.Status(*req.Status).Valid() {
		return &Error{Message: "Invalid status"}
	}
	return nil
}
