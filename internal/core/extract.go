package core

import (
	"math"

	"github.com/JonMunkholm/candidates/internal/sheet"
)

// Locate binds each field to a column.
//
// Three left-to-right scans run in fixed order: seniority first, then years
// skipping the seniority column, then availability skipping both. Each field
// therefore lands on a distinct column, and the ordering is the tie-break for
// ambiguous rows.
func Locate(row sheet.Row) (FieldIndices, error) {
	seniority := findCell(row, IsSeniorityLike)
	if seniority < 0 {
		return FieldIndices{}, &FieldNotFoundError{Field: FieldSeniority}
	}

	years := findCell(row, IsNumberLike, seniority)
	if years < 0 {
		return FieldIndices{}, &FieldNotFoundError{Field: FieldYearsOfExperience}
	}

	availability := findCell(row, IsBooleanLike, seniority, years)
	if availability < 0 {
		return FieldIndices{}, &FieldNotFoundError{Field: FieldAvailability}
	}

	return FieldIndices{
		Seniority:         seniority,
		YearsOfExperience: years,
		Availability:      availability,
	}, nil
}

// findCell returns the first index whose cell matches, skipping claimed indices.
func findCell(row sheet.Row, match func(sheet.Cell) bool, claimed ...int) int {
next:
	for i, c := range row {
		for _, j := range claimed {
			if i == j {
				continue next
			}
		}
		if match(c) {
			return i
		}
	}
	return -1
}

// Extract locates and coerces the three fields of row.
func Extract(row sheet.Row) (CandidateRecord, error) {
	rec, _, err := extract(row)
	return rec, err
}

func extract(row sheet.Row) (CandidateRecord, FieldIndices, error) {
	idx, err := Locate(row)
	if err != nil {
		return CandidateRecord{}, FieldIndices{}, err
	}
	return CandidateRecord{
		Seniority:         coerceSeniority(row[idx.Seniority]),
		YearsOfExperience: coerceYears(row[idx.YearsOfExperience]),
		Availability:      coerceAvailability(row[idx.Availability]),
	}, idx, nil
}

// intLimit is the smallest float64 that does not fit in an int (2^63 on 64-bit
// platforms). It is exact, so whole numbers below it convert without overflow.
const intLimit = -float64(math.MinInt)

// Validate checks rec field by field and reports the first violation.
func Validate(rec CandidateRecord) (ValidatedRecord, error) {
	seniority := Seniority(rec.Seniority)
	if seniority != Junior && seniority != Senior {
		return ValidatedRecord{}, &ValidationError{
			Field:   FieldSeniority,
			Value:   rec.Seniority,
			Message: MsgInvalidSeniority,
		}
	}

	years := rec.YearsOfExperience
	if math.IsNaN(years) || math.IsInf(years, 0) || years < 0 ||
		years != math.Trunc(years) {
		return ValidatedRecord{}, &ValidationError{
			Field:   FieldYearsOfExperience,
			Value:   sheet.Num(years).String(),
			Message: MsgInvalidYears,
		}
	}
	if years >= intLimit {
		return ValidatedRecord{}, &ValidationError{
			Field:   FieldYearsOfExperience,
			Value:   sheet.Num(years).String(),
			Message: MsgYearsNotRepresentable,
		}
	}

	// Availability is a bool by construction; there is nothing left to check.

	return ValidatedRecord{
		Seniority:         seniority,
		YearsOfExperience: int(years),
		Availability:      rec.Availability,
	}, nil
}

// ExtractAndValidate runs Extract and then Validate on row.
func ExtractAndValidate(row sheet.Row) (ValidatedRecord, error) {
	rec, _, err := extractAndValidate(row)
	return rec, err
}

func extractAndValidate(row sheet.Row) (ValidatedRecord, FieldIndices, error) {
	rec, idx, err := extract(row)
	if err != nil {
		return ValidatedRecord{}, FieldIndices{}, err
	}
	v, err := Validate(rec)
	if err != nil {
		return ValidatedRecord{}, idx, err
	}
	return v, idx, nil
}
