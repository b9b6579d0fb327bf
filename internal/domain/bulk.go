package domain

import (
	"fmt"
	"time"
)

const localDateLayout = "2006-01-02"

// LocalDate is a calendar date as typed by the operator (yyyy-mm-dd), without zone.
type LocalDate struct {
	Year  int
	Month time.Month
	Day   int
}

// ParseLocalDate parses a yyyy-mm-dd value.
func ParseLocalDate(s string) (LocalDate, error) {
	t, err := time.Parse(localDateLayout, s)
	if err != nil {
		return LocalDate{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return LocalDate{Year: t.Year(), Month: t.Month(), Day: t.Day()}, nil
}

// DateOf returns the calendar date of t in t's location.
func DateOf(t time.Time) LocalDate {
	y, m, d := t.Date()
	return LocalDate{Year: y, Month: m, Day: d}
}

// Midnight returns 00:00 of the date in loc. It is local midnight, not UTC.
func (d LocalDate) Midnight(loc *time.Location) time.Time {
	if loc == nil {
		loc = time.Local
	}
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, loc)
}

// IsZero reports whether the date is unset.
func (d LocalDate) IsZero() bool { return d == LocalDate{} }

func (d LocalDate) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// Attachment is a file uploaded together with a Finalize action.
type Attachment struct {
	Filename    string
	ContentType string
	Data        []byte
}

// BulkActionKind tags the variants of BulkAction.
type BulkActionKind string

// Bulk action kinds.
const (
	ActionFinalize       BulkActionKind = "finalize"
	ActionInsertIntoList BulkActionKind = "list"
	ActionCancel         BulkActionKind = "cancel"
)

// BulkAction is one of FinalizeAction, InsertIntoListAction or CancelAction.
type BulkAction interface {
	Kind() BulkActionKind
	// Target returns the status written to every selected order.
	Target() Situacao
	// DateFor returns the operator-edited delivery date for an order, if any.
	DateFor(orderID string) (LocalDate, bool)
	isBulkAction()
}

// Dates maps a selected order id to its delivery date.
type Dates map[string]LocalDate

// DateFor returns the date for orderID.
func (d Dates) DateFor(orderID string) (LocalDate, bool) {
	v, ok := d[orderID]
	return v, ok
}

// FinalizeAction marks orders as "Finalizado", optionally with one shared attachment.
type FinalizeAction struct {
	Dates
	Attachment *Attachment
}

// Kind implements BulkAction.
func (FinalizeAction) Kind() BulkActionKind { return ActionFinalize }

// Target implements BulkAction.
func (FinalizeAction) Target() Situacao { return Finalized() }

func (FinalizeAction) isBulkAction() {}

// InsertIntoListAction assigns orders to the round of one deliverer.
type InsertIntoListAction struct {
	Dates
	Deliverer *Deliverer
}

// Kind implements BulkAction.
func (InsertIntoListAction) Kind() BulkActionKind { return ActionInsertIntoList }

// Target implements BulkAction.
func (a InsertIntoListAction) Target() Situacao {
	if a.Deliverer == nil {
		return Listed("")
	}
	return Listed(a.Deliverer.Name)
}

func (InsertIntoListAction) isBulkAction() {}

// CancelAction marks orders as "Cancelado".
type CancelAction struct {
	Dates
}

// Kind implements BulkAction.
func (CancelAction) Kind() BulkActionKind { return ActionCancel }

// Target implements BulkAction.
func (CancelAction) Target() Situacao { return Cancelled() }

func (CancelAction) isBulkAction() {}

var (
	_ BulkAction = FinalizeAction{}
	_ BulkAction = InsertIntoListAction{}
	_ BulkAction = CancelAction{}
)
