package core

import (
	"math"
	"testing"

	"github.com/JonMunkholm/candidates/internal/sheet"
)

func TestIsSeniorityLike(t *testing.T) {
	tests := []struct {
		name string
		cell sheet.Cell
		want bool
	}{
		{"junior", sheet.Str("junior"), true},
		{"senior", sheet.Str("senior"), true},
		{"mixed case", sheet.Str("SeNiOr"), true},
		{"upper", sheet.Str("JUNIOR"), true},
		{"trailing space", sheet.Str("Junior "), false},
		{"leading space", sheet.Str(" senior"), false},
		{"partial", sheet.Str("senior developer"), false},
		{"mid", sheet.Str("mid"), false},
		{"header", sheet.Str("seniority"), false},
		{"number", sheet.Num(1), false},
		{"bool", sheet.Bool(true), false},
		{"empty", sheet.Empty(), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsSeniorityLike(tt.cell); got != tt.want {
				t.Errorf("IsSeniorityLike(%v) = %v, want %v", tt.cell, got, tt.want)
			}
		})
	}
}

func TestIsNumberLike(t *testing.T) {
	tests := []struct {
		name string
		cell sheet.Cell
		want bool
	}{
		{"numeric cell", sheet.Num(2), true},
		{"negative numeric cell", sheet.Num(-3.5), true},
		{"integer text", sheet.Str("8"), true},
		{"decimal text", sheet.Str("2.5"), true},
		{"leading dot", sheet.Str(".5"), true},
		{"trailing dot", sheet.Str("5."), true},
		{"signed", sheet.Str("+3"), true},
		{"negative text", sheet.Str("-1"), true},
		{"exponent", sheet.Str("1e3"), true},
		{"huge exponent", sheet.Str("1e400"), true},
		{"empty text", sheet.Str(""), false},
		{"whitespace", sheet.Str(" "), false},
		{"padded", sheet.Str(" 8"), false},
		{"thousands separator", sheet.Str("1,000"), false},
		{"currency", sheet.Str("$5"), false},
		{"hex", sheet.Str("0x10"), false},
		{"infinity", sheet.Str("Infinity"), false},
		{"inf", sheet.Str("inf"), false},
		{"nan", sheet.Str("NaN"), false},
		{"partial", sheet.Str("8 years"), false},
		{"true text", sheet.Str("true"), false},
		{"bool cell", sheet.Bool(true), false},
		{"empty cell", sheet.Empty(), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsNumberLike(tt.cell); got != tt.want {
				t.Errorf("IsNumberLike(%v) = %v, want %v", tt.cell, got, tt.want)
			}
		})
	}
}

func TestIsBooleanLike(t *testing.T) {
	tests := []struct {
		name string
		cell sheet.Cell
		want bool
	}{
		{"bool true", sheet.Bool(true), true},
		{"bool false", sheet.Bool(false), true},
		{"true text", sheet.Str("true"), true},
		{"FALSE text", sheet.Str("FALSE"), true},
		{"mixed case", sheet.Str("True"), true},
		{"yes", sheet.Str("yes"), false},
		{"one text", sheet.Str("1"), false},
		{"zero number", sheet.Num(0), false},
		{"padded", sheet.Str("true "), false},
		{"empty", sheet.Empty(), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsBooleanLike(tt.cell); got != tt.want {
				t.Errorf("IsBooleanLike(%v) = %v, want %v", tt.cell, got, tt.want)
			}
		})
	}
}

// Every cell a classifier accepts must coerce to a well-formed value.
func TestCoercionMatchesClassifiers(t *testing.T) {
	cells := []sheet.Cell{
		sheet.Str("junior"), sheet.Str("SENIOR"), sheet.Str("Senior"),
		sheet.Num(0), sheet.Num(2.5), sheet.Str("8"), sheet.Str("-1e2"), sheet.Str(".5"),
		sheet.Bool(true), sheet.Bool(false), sheet.Str("TRUE"), sheet.Str("false"),
		sheet.Str("mid"), sheet.Empty(),
	}

	for _, c := range cells {
		if IsSeniorityLike(c) {
			got := coerceSeniority(c)
			if got != string(Junior) && got != string(Senior) {
				t.Errorf("coerceSeniority(%v) = %q", c, got)
			}
		}
		if IsNumberLike(c) {
			if got := coerceYears(c); math.IsNaN(got) {
				t.Errorf("coerceYears(%v) = NaN", c)
			}
		}
		if IsBooleanLike(c) {
			want := c.Kind == sheet.KindBool && c.Bool || c.Kind == sheet.KindString && (c.Text == "TRUE" || c.Text == "true")
			if got := coerceAvailability(c); got != want {
				t.Errorf("coerceAvailability(%v) = %v, want %v", c, got, want)
			}
		}
	}
}
