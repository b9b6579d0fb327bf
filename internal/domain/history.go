package domain

import "time"

// StatusChange is one status transition of an order, as published to the
// status topic and stored in the order timeline.
type StatusChange struct {
	OrderID      string
	Situacao     Situacao
	DataEntregue *time.Time
	EmployeeID   string
	BulkID       string
	ChangedAt    time.Time
}

// BulkOutcome is the result of one order inside a bulk run.
type BulkOutcome string

// Bulk outcomes.
const (
	OutcomeUpdated BulkOutcome = "updated"
	OutcomeFailed  BulkOutcome = "failed"
	OutcomeAborted BulkOutcome = "aborted"
)

// BulkRun is the persisted summary of one bulk transition.
type BulkRun struct {
	ID         string
	Action     BulkActionKind
	EmployeeID string
	Target     string
	ImageURL   string
	StartedAt  time.Time
	FinishedAt time.Time
	Items      []BulkRunItem
}

// BulkRunItem is the outcome of one order inside a BulkRun.
type BulkRunItem struct {
	OrderID string
	Outcome BulkOutcome
	Reason  string
}
