package core

import (
	"errors"
	"fmt"
	"math"
)

// Validation messages.
const (
	MsgInvalidSeniority = "must be junior or senior"
	MsgInvalidYears     = "must be a non-negative integer"

	MsgYearsNotRepresentable = "is too large to represent as an integer"
)

var (
	// ErrEmptyInput is returned when the decoded grid has no rows.
	ErrEmptyInput = errors.New("empty file: no rows with data")

	// ErrNoPlausibleRow is returned by StrictSelection when no row qualifies.
	ErrNoPlausibleRow = errors.New("no row contains seniority, years of experience and availability")

	// ErrNoFile is returned when an upload carries no file.
	ErrNoFile = errors.New("no file provided")

	// ErrFileTooLarge is returned when an upload exceeds the configured size.
	ErrFileTooLarge = errors.New("file too large")
)

// MaxStoredYears is the largest years of experience the Postgres INTEGER column
// holds. SQLite is held to the same limit so both backends accept the same rows.
const MaxStoredYears = math.MaxInt32

// StorageLimitError is returned when a valid record does not fit the storage
// columns.
type StorageLimitError struct {
	Field string
	Value int
	Limit int
}

func (e *StorageLimitError) Error() string {
	return fmt.Sprintf("%s %d exceeds storage limit %d", e.Field, e.Value, e.Limit)
}

// InsufficientColumnsError is returned when the selected row is too short to
// hold all three fields.
type InsufficientColumnsError struct {
	Row     int // index of the selected row in the grid
	Columns int
}

func (e *InsufficientColumnsError) Error() string {
	return fmt.Sprintf("insufficient columns: row %d has %d, need at least %d", e.Row, e.Columns, MinColumns)
}

// FieldNotFoundError names the first field no cell could be bound to.
type FieldNotFoundError struct {
	Field string
}

func (e *FieldNotFoundError) Error() string {
	return fmt.Sprintf("field not found: %s", e.Field)
}

// RequestError reports an invalid upload request field.
type RequestError struct {
	Field   string
	Message string
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("invalid request: %s %s", e.Field, e.Message)
}
