// Package sheet decodes uploaded spreadsheets and delimited text into a
// typed grid of cells.
//
// Decoding is the only place that knows about file formats. Everything
// downstream works on [Grid], an ordered list of rows whose cells are one of
// four kinds: empty, string, number or boolean. Column positions carry no
// meaning at this level; headers are just another row.
package sheet

import (
	"strconv"
	"strings"
)

// Kind identifies which value a Cell holds.
type Kind int

const (
	KindEmpty Kind = iota
	KindString
	KindNumber
	KindBool
)

// String returns the lowercase name of the kind.
func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindBool:
		return "bool"
	default:
		return "empty"
	}
}

// Cell is a single decoded value. The zero value is an empty cell.
type Cell struct {
	Kind Kind
	Text string  // set when Kind == KindString
	Num  float64 // set when Kind == KindNumber
	Bool bool    // set when Kind == KindBool
}

// Str returns a string cell.
func Str(s string) Cell { return Cell{Kind: KindString, Text: s} }

// Num returns a numeric cell.
func Num(f float64) Cell { return Cell{Kind: KindNumber, Num: f} }

// Bool returns a boolean cell.
func Bool(b bool) Cell { return Cell{Kind: KindBool, Bool: b} }

// Empty returns an empty cell.
func Empty() Cell { return Cell{} }

// IsEmpty reports whether the cell holds no value.
func (c Cell) IsEmpty() bool { return c.Kind == KindEmpty }

// String renders the cell the way a spreadsheet would display it.
func (c Cell) String() string {
	switch c.Kind {
	case KindString:
		return c.Text
	case KindNumber:
		return strconv.FormatFloat(c.Num, 'f', -1, 64)
	case KindBool:
		if c.Bool {
			return "TRUE"
		}
		return "FALSE"
	default:
		return ""
	}
}

// Row is an ordered sequence of cells.
type Row []Cell

// Strings renders every cell of the row.
func (r Row) Strings() []string {
	out := make([]string, len(r))
	for i, c := range r {
		out[i] = c.String()
	}
	return out
}

// isBlank reports whether every cell is empty or whitespace-only text.
func (r Row) isBlank() bool {
	for _, c := range r {
		switch c.Kind {
		case KindEmpty:
			continue
		case KindString:
			if strings.TrimSpace(c.Text) != "" {
				return false
			}
		default:
			return false
		}
	}
	return true
}

// Grid is the full decoded table, rows in file order.
type Grid []Row

// Width returns the length of the longest row.
func (g Grid) Width() int {
	w := 0
	for _, r := range g {
		if len(r) > w {
			w = len(r)
		}
	}
	return w
}
