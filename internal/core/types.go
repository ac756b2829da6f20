package core

import (
	"context"
	"time"
)

// Seniority is the validated seniority level.
type Seniority string

const (
	Junior Seniority = "junior"
	Senior Seniority = "senior"
)

// Field names used in errors, in the order they are resolved.
const (
	FieldSeniority         = "seniority"
	FieldYearsOfExperience = "yearsOfExperience"
	FieldAvailability      = "availability"
)

// MinColumns is the smallest row that can carry all three fields.
const MinColumns = 3

// CandidateRecord is the unchecked triple produced by extraction.
type CandidateRecord struct {
	Seniority         string  // lowercased, not yet checked
	YearsOfExperience float64 // may be fractional or negative
	Availability      bool
}

// ValidatedRecord is a CandidateRecord whose fields satisfy the domain rules.
type ValidatedRecord struct {
	Seniority         Seniority `json:"seniority"`
	YearsOfExperience int       `json:"yearsOfExperience"`
	Availability      bool      `json:"availability"`
}

// FieldIndices records which column each field was read from.
type FieldIndices struct {
	Seniority         int `json:"seniority"`
	YearsOfExperience int `json:"yearsOfExperience"`
	Availability      int `json:"availability"`
}

// SelectionPolicy controls what happens when no row looks like data.
type SelectionPolicy int

const (
	// FallbackLastRow uses the last row when no row qualifies.
	FallbackLastRow SelectionPolicy = iota
	// StrictSelection fails with ErrNoPlausibleRow instead.
	StrictSelection
)

func (p SelectionPolicy) String() string {
	if p == StrictSelection {
		return "strict"
	}
	return "fallback-last-row"
}

// Candidate is a persisted candidate.
type Candidate struct {
	ID                int64     `json:"id"`
	UploadID          string    `json:"uploadId"`
	Name              string    `json:"name"`
	Surname           string    `json:"surname"`
	Seniority         Seniority `json:"seniority"`
	YearsOfExperience int       `json:"yearsOfExperience"`
	Availability      bool      `json:"availability"`
	SourceFile        string    `json:"sourceFile,omitempty"`
	CreatedAt         time.Time `json:"createdAt"`
}

// NewCandidate holds the values written by Repository.Create.
type NewCandidate struct {
	UploadID   string
	Name       string
	Surname    string
	Record     ValidatedRecord
	SourceFile string
}

// Repository persists candidates.
type Repository interface {
	Create(ctx context.Context, c NewCandidate) (*Candidate, error)
	// List returns candidates newest first.
	List(ctx context.Context) ([]Candidate, error)
}
