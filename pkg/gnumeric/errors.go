package gnumeric

import (
	"errors"
	"fmt"
)

// ErrFileNotFound indicates the input file does not exist.
var ErrFileNotFound = errors.New("file not found")

// ErrInvalidFormat indicates the input is not a valid Gnumeric document.
var ErrInvalidFormat = errors.New("invalid gnumeric format")

// ErrCrossSheetExpression indicates an attempt to assign an expression
// owned by one sheet into a cell of another. Sharing a formula across
// sheets is not supported.
var ErrCrossSheetExpression = errors.New("expression belongs to a different sheet")

// ErrDuplicateTitle indicates the workbook already holds a sheet with the
// requested title.
var ErrDuplicateTitle = errors.New("duplicate sheet title")

// ErrWrongWorkbook indicates a sheet from one workbook was passed to an
// operation on a different workbook.
var ErrWrongWorkbook = errors.New("sheet belongs to a different workbook")

// ErrSheetNotFound indicates no sheet with the given title exists.
var ErrSheetNotFound = errors.New("sheet not found")

// ErrNoStyleFormat indicates the style covering a cell carries no number
// format string.
var ErrNoStyleFormat = errors.New("style carries no format string")

// UnrecognizedCellTypeError reports a cell whose type can neither be read
// from its ValueType attribute nor inferred from an ExprID attribute or a
// leading "=". Node holds the serialized cell element for diagnosis.
type UnrecognizedCellTypeError struct {
	Node string
}

func (e *UnrecognizedCellTypeError) Error() string {
	return fmt.Sprintf("cannot determine cell type: %s", e.Node)
}

// IndexOutOfRangeError reports a cell address outside the sheet's allowed
// bounds, or a lookup of a cell that does not exist. When a bound was
// violated, Axis names the offending axis ("row" or "column") and Max is
// the upper end of the valid range.
type IndexOutOfRangeError struct {
	Row  int
	Col  int
	Axis string
	Max  int
}

func (e *IndexOutOfRangeError) Error() string {
	switch e.Axis {
	case "row":
		return fmt.Sprintf("row %d is out of allowed bounds [0, %d]", e.Row, e.Max)
	case "column":
		return fmt.Sprintf("column %d is out of allowed bounds [0, %d]", e.Col, e.Max)
	}
	return fmt.Sprintf("no cell exists at (%d, %d)", e.Row, e.Col)
}

// UnsupportedOperationError reports a grid operation attempted on an
// object (chart) sheet, which has no row/column grid.
type UnsupportedOperationError struct {
	Op string
}

func (e *UnsupportedOperationError) Error() string {
	return fmt.Sprintf("chartsheet does not support %s", e.Op)
}

// SheetIndexError reports a sheet index outside the workbook's range.
type SheetIndexError struct {
	Index int
	Count int
}

func (e *SheetIndexError) Error() string {
	return fmt.Sprintf("sheet index %d is out of range for a workbook with %d sheets", e.Index, e.Count)
}
