package core

// classify.go holds the per-cell predicates and their coercions.
//
// Every classifier has a coercion partner that must succeed for any cell the
// classifier accepts. Changing one without the other introduces failures that
// the extraction pipeline does not expect.

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/JonMunkholm/candidates/internal/sheet"
)

// numericRegex matches integers, decimals, and scientific notation.
// No surrounding whitespace, thousands separators, or currency symbols.
var numericRegex = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?$`)

// IsSeniorityLike reports whether c is text equal to junior or senior,
// ignoring case only.
func IsSeniorityLike(c sheet.Cell) bool {
	if c.Kind != sheet.KindString {
		return false
	}
	s := strings.ToLower(c.Text)
	return s == string(Junior) || s == string(Senior)
}

// IsNumberLike reports whether c is numeric or text in plain decimal notation.
func IsNumberLike(c sheet.Cell) bool {
	switch c.Kind {
	case sheet.KindNumber:
		return true
	case sheet.KindString:
		_, ok := parseDecimal(c.Text)
		return ok
	default:
		return false
	}
}

// IsBooleanLike reports whether c is a boolean or the text true/false in any case.
func IsBooleanLike(c sheet.Cell) bool {
	switch c.Kind {
	case sheet.KindBool:
		return true
	case sheet.KindString:
		return strings.EqualFold(c.Text, "true") || strings.EqualFold(c.Text, "false")
	default:
		return false
	}
}

func parseDecimal(s string) (float64, bool) {
	if !numericRegex.MatchString(s) {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil && !isRangeErr(err) {
		return 0, false
	}
	return f, true
}

// isRangeErr accepts overflowing literals such as 1e400; they parse to ±Inf
// and are rejected by validation rather than classification.
func isRangeErr(err error) bool {
	ne, ok := err.(*strconv.NumError)
	return ok && ne.Err == strconv.ErrRange
}

func coerceSeniority(c sheet.Cell) string {
	return strings.ToLower(c.Text)
}

func coerceYears(c sheet.Cell) float64 {
	if c.Kind == sheet.KindNumber {
		return c.Num
	}
	f, ok := parseDecimal(c.Text)
	if !ok {
		return math.NaN()
	}
	return f
}

func coerceAvailability(c sheet.Cell) bool {
	if c.Kind == sheet.KindBool {
		return c.Bool
	}
	return strings.EqualFold(c.Text, "true")
}
