package core

import "github.com/JonMunkholm/candidates/internal/sheet"

// IsPlausibleRow reports whether row has at least three cells and contains a
// seniority-like, a number-like and a boolean-like cell. The three need not
// be distinct here; extraction resolves overlaps.
func IsPlausibleRow(row sheet.Row) bool {
	if len(row) < MinColumns {
		return false
	}
	var seniority, number, boolean bool
	for _, c := range row {
		seniority = seniority || IsSeniorityLike(c)
		number = number || IsNumberLike(c)
		boolean = boolean || IsBooleanLike(c)
	}
	return seniority && number && boolean
}

// SelectRow picks the data row of grid using the default fallback policy.
func SelectRow(grid sheet.Grid) (sheet.Row, error) {
	i, err := SelectRowIndex(grid, FallbackLastRow)
	if err != nil {
		return nil, err
	}
	return grid[i], nil
}

// SelectRowIndex returns the index of the row most likely to hold the
// candidate data.
//
// A single-row grid is taken as headerless data. Otherwise the first plausible
// row wins. When nothing qualifies, FallbackLastRow takes the last row on the
// assumption that headers come first; this can pick a meaningless row for a
// malformed file, and extraction then reports the failure. StrictSelection
// returns ErrNoPlausibleRow instead.
func SelectRowIndex(grid sheet.Grid, policy SelectionPolicy) (int, error) {
	if len(grid) == 0 {
		return -1, ErrEmptyInput
	}

	idx := -1
	switch {
	case len(grid) == 1:
		idx = 0
	default:
		for i, row := range grid {
			if IsPlausibleRow(row) {
				idx = i
				break
			}
		}
	}

	if idx < 0 {
		if policy == StrictSelection {
			return -1, ErrNoPlausibleRow
		}
		idx = len(grid) - 1
	}

	if n := len(grid[idx]); n < MinColumns {
		return -1, &InsufficientColumnsError{Row: idx, Columns: n}
	}
	return idx, nil
}
