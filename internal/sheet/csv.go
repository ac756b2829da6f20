package sheet

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// DecodeCSV parses delimited text into a grid of string cells.
// Empty fields become empty cells and fully blank lines are dropped.
func DecodeCSV(data []byte) (Grid, error) {
	data, err := normalizeText(data)
	if err != nil {
		return nil, err
	}

	records, err := parseCSV(data)
	if err != nil {
		return nil, fmt.Errorf("%w: parse csv: %v", ErrUnreadable, err)
	}

	grid := make(Grid, 0, len(records))
	for _, record := range records {
		row := make(Row, len(record))
		for i, field := range record {
			if field == "" {
				continue
			}
			row[i] = Str(field)
		}
		if row.isBlank() {
			continue
		}
		grid = append(grid, row)
	}
	return grid, nil
}

// normalizeText strips a UTF-8 BOM and transcodes non-UTF-8 input from
// Windows-1252, the encoding Excel uses when saving CSV on Windows.
func normalizeText(data []byte) ([]byte, error) {
	data = bytes.TrimPrefix(data, utf8BOM)
	if utf8.Valid(data) {
		return data, nil
	}
	out, err := charmap.Windows1252.NewDecoder().Bytes(data)
	if err != nil {
		return nil, fmt.Errorf("%w: transcode windows-1252: %v", ErrUnreadable, err)
	}
	return out, nil
}

func parseCSV(data []byte) ([][]string, error) {
	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	return r.ReadAll()
}
