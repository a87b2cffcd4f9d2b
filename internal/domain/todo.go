package domain

// Status is the lifecycle state of a todo. It is data, not workflow:
// there are exactly two values and no transitions beyond direct assignment.
type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
)

// Valid reports whether s is one of the enumerated statuses.
func (s Status) Valid() bool {
	return s == StatusPending || s == StatusCompleted
}

// Todo is the domain entity (the truth).
// It does not depend on Gin, Redis or Postgres.
type Todo struct {
	ID          string
	Title       string
	Description string
	Status      Status
}
