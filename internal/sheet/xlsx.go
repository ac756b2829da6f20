package sheet

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/xuri/excelize/v2"
)

// DecodeXLSX reads the first worksheet of an OOXML workbook.
//
// Values are read raw so numbers keep full precision instead of the cell's
// display format. Boolean cells are stored as 1/0 and are recovered through
// the cell type.
func DecodeXLSX(data []byte) (Grid, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: open workbook: %v", ErrUnreadable, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("%w: workbook has no sheets", ErrUnreadable)
	}
	name := sheets[0]

	rows, err := f.GetRows(name, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("%w: read sheet %q: %v", ErrUnreadable, name, err)
	}

	grid := make(Grid, 0, len(rows))
	for r, values := range rows {
		row := make(Row, len(values))
		for c, raw := range values {
			if raw == "" {
				continue
			}
			ref, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				return nil, fmt.Errorf("%w: %v", ErrUnreadable, err)
			}
			typ, err := f.GetCellType(name, ref)
			if err != nil {
				return nil, fmt.Errorf("%w: cell %s: %v", ErrUnreadable, ref, err)
			}
			row[c] = typedCell(typ, raw)
		}
		if row.isBlank() {
			continue
		}
		grid = append(grid, row)
	}
	return grid, nil
}

// typedCell maps an excelize cell type and raw value onto a Cell.
func typedCell(typ excelize.CellType, raw string) Cell {
	switch typ {
	case excelize.CellTypeBool:
		return Bool(raw == "1" || raw == "TRUE" || raw == "true")
	case excelize.CellTypeNumber, excelize.CellTypeUnset, excelize.CellTypeDate:
		if f, err := strconv.ParseFloat(raw, 64); err == nil {
			return Num(f)
		}
		return Str(raw)
	default:
		return Str(raw)
	}
}
