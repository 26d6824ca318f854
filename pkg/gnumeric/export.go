package gnumeric

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ExportXLSX converts the workbook to an xlsx file. Regular sheets map
// one to one; chart sheets have no cell grid and are skipped. Expression
// cells are written as formulas with the back-references resolved to the
// originating text. The caller owns closing the returned file.
func ExportXLSX(wb *Workbook) (*excelize.File, error) {
	f := excelize.NewFile()
	first := true
	for _, s := range wb.Worksheets() {
		name := s.Title()
		if first {
			if err := f.SetSheetName("Sheet1", name); err != nil {
				return nil, fmt.Errorf("sheet %q: %w", name, err)
			}
			first = false
		} else {
			if _, err := f.NewSheet(name); err != nil {
				return nil, fmt.Errorf("sheet %q: %w", name, err)
			}
		}
		if err := exportCells(f, s, name); err != nil {
			return nil, err
		}
	}
	return f, nil
}

func exportCells(f *excelize.File, s *Sheet, name string) error {
	for _, c := range s.CellCollection(false, RowMajor) {
		axis, err := excelize.CoordinatesToCellName(c.Column()+1, c.Row()+1)
		if err != nil {
			return fmt.Errorf("sheet %q cell (%d, %d): %w", name, c.Row(), c.Column(), err)
		}
		v, err := c.Value()
		if err != nil {
			return fmt.Errorf("sheet %q cell %s: %w", name, axis, err)
		}
		switch val := v.(type) {
		case nil:
			// Explicitly typed but contentless; nothing to carry over.
		case Bool:
			err = f.SetCellBool(name, axis, bool(val))
		case Int:
			err = f.SetCellValue(name, axis, int64(val))
		case Float:
			err = f.SetCellValue(name, axis, float64(val))
		case String:
			err = f.SetCellValue(name, axis, string(val))
		case *Expression:
			var text string
			text, err = val.Value()
			if err == nil {
				err = f.SetCellFormula(name, axis, strings.TrimPrefix(text, "="))
			}
		}
		if err != nil {
			return fmt.Errorf("sheet %q cell %s: %w", name, axis, err)
		}
	}
	return nil
}
