package gnumeric

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSheetTitle(t *testing.T) {
	ws := newBlankSheet(t)
	assert.Equal(t, "Title", ws.Title())

	ws.SetTitle("Renamed")
	assert.Equal(t, "Renamed", ws.Title())
	// Both storage points must stay in sync.
	assert.Equal(t, "Renamed", ws.nameEl.Text())
	assert.Equal(t, "Renamed", findChild(ws.el, spaceGnm, "Name").Text())
}

func TestSheetType(t *testing.T) {
	wb := loadTestWorkbook(t)
	assert.Equal(t, SheetTypeRegular, testSheet(t, wb, "Sheet1").Type())
	assert.Equal(t, SheetTypeObject, testSheet(t, wb, "Graph1").Type())
}

func TestSheetBounds(t *testing.T) {
	ws := testSheet(t, loadTestWorkbook(t), "BoundingRegion")

	minRow, err := ws.MinRow()
	require.NoError(t, err)
	assert.Equal(t, 6, minRow)

	minCol, err := ws.MinColumn()
	require.NoError(t, err)
	assert.Equal(t, 3, minCol)

	maxRow, err := ws.MaxRow()
	require.NoError(t, err)
	assert.Equal(t, 12, maxRow)

	maxCol, err := ws.MaxColumn()
	require.NoError(t, err)
	assert.Equal(t, 9, maxCol)

	assert.Equal(t, Dimension{MinRow: 6, MinCol: 3, MaxRow: 12, MaxCol: 9}, mustDimension(t, ws))
}

func TestBoundsOnChartsheet(t *testing.T) {
	graph := testSheet(t, loadTestWorkbook(t), "Graph1")

	var unsupported *UnsupportedOperationError
	_, err := graph.MinRow()
	assert.ErrorAs(t, err, &unsupported)
	_, err = graph.MinColumn()
	assert.ErrorAs(t, err, &unsupported)
	_, err = graph.MaxRow()
	assert.ErrorAs(t, err, &unsupported)
	_, err = graph.MaxColumn()
	assert.ErrorAs(t, err, &unsupported)
	_, err = graph.CalculateDimension()
	assert.ErrorAs(t, err, &unsupported)
}

func TestBoundsOnEmptySheet(t *testing.T) {
	ws := testSheet(t, loadTestWorkbook(t), "Small")
	assert.Equal(t, Dimension{MinRow: -1, MinCol: -1, MaxRow: -1, MaxCol: -1}, mustDimension(t, ws))
}

func TestMaxAllowed(t *testing.T) {
	wb := loadTestWorkbook(t)
	small := testSheet(t, wb, "Small")
	assert.Equal(t, 100, small.MaxAllowedRow())
	assert.Equal(t, 50, small.MaxAllowedColumn())

	sheet1 := testSheet(t, wb, "Sheet1")
	assert.Equal(t, 65535, sheet1.MaxAllowedRow())
	assert.Equal(t, 255, sheet1.MaxAllowedColumn())

	// Capacity metadata stays readable on chart sheets.
	graph := testSheet(t, wb, "Graph1")
	assert.Equal(t, 65535, graph.MaxAllowedRow())
}

func TestIsValid(t *testing.T) {
	ws := testSheet(t, loadTestWorkbook(t), "Small")
	assert.True(t, ws.IsValidRow(0))
	assert.True(t, ws.IsValidRow(100))
	assert.False(t, ws.IsValidRow(101))
	assert.False(t, ws.IsValidRow(-1))
	assert.True(t, ws.IsValidColumn(50))
	assert.False(t, ws.IsValidColumn(51))
}

func TestCellLookup(t *testing.T) {
	ws := testSheet(t, loadTestWorkbook(t), "Sheet1")
	c := mustCell(t, ws, 1, 0)
	assert.Equal(t, 1, c.Row())
	assert.Equal(t, 0, c.Column())
	assert.Equal(t, "2", c.Text())
}

func TestCellCreatesWhenAbsent(t *testing.T) {
	ws := testSheet(t, loadTestWorkbook(t), "Sheet1")
	c := mustCell(t, ws, 0, 2)
	assert.Equal(t, "", c.Text())
	got, err := c.ValueType()
	require.NoError(t, err)
	assert.Equal(t, ValueTypeEmpty, got)
}

func TestCellIdempotent(t *testing.T) {
	ws := testSheet(t, loadTestWorkbook(t), "Sheet1")
	before := len(ws.CellCollection(true, Unsorted))

	a := mustCell(t, ws, 0, 2)
	b := mustCell(t, ws, 0, 2)
	assert.True(t, a.Equal(b))
	assert.Equal(t, before+1, len(ws.CellCollection(true, Unsorted)))
}

func TestCellOutOfBounds(t *testing.T) {
	ws := testSheet(t, loadTestWorkbook(t), "Small")
	before := len(ws.CellCollection(true, Unsorted))

	_, err := ws.Cell(101, 0)
	var oob *IndexOutOfRangeError
	require.ErrorAs(t, err, &oob)
	assert.Equal(t, "row", oob.Axis)
	assert.Equal(t, 101, oob.Row)
	assert.Equal(t, 100, oob.Max)

	_, err = ws.Cell(0, 51)
	require.ErrorAs(t, err, &oob)
	assert.Equal(t, "column", oob.Axis)
	assert.Equal(t, 50, oob.Max)

	// Failed addressing must not materialize a cell.
	assert.Equal(t, before, len(ws.CellCollection(true, Unsorted)))
}

func TestCellOnChartsheet(t *testing.T) {
	graph := testSheet(t, loadTestWorkbook(t), "Graph1")

	var unsupported *UnsupportedOperationError
	_, err := graph.Cell(0, 0)
	assert.ErrorAs(t, err, &unsupported)
	_, err = graph.ExistingCell(0, 0)
	assert.ErrorAs(t, err, &unsupported)
	assert.Empty(t, graph.CellCollection(true, Unsorted))
}

func TestExistingCellAbsent(t *testing.T) {
	ws := testSheet(t, loadTestWorkbook(t), "Sheet1")
	before := len(ws.CellCollection(true, Unsorted))

	_, err := ws.ExistingCell(0, 2)
	var oob *IndexOutOfRangeError
	require.ErrorAs(t, err, &oob)
	assert.Equal(t, "", oob.Axis)
	assert.Equal(t, before, len(ws.CellCollection(true, Unsorted)))
}

func TestCellText(t *testing.T) {
	ws := testSheet(t, loadTestWorkbook(t), "Sheet1")

	text, err := ws.CellText(1, 0)
	require.NoError(t, err)
	assert.Equal(t, "2", text)

	_, err = ws.CellText(0, 2)
	var oob *IndexOutOfRangeError
	assert.ErrorAs(t, err, &oob)
}

func TestCreatingCellDoesNotGrowRectangle(t *testing.T) {
	ws := testSheet(t, loadTestWorkbook(t), "Sheet1")
	before := mustDimension(t, ws)

	mustCell(t, ws, 15, 30)
	assert.Equal(t, before, mustDimension(t, ws))

	require.NoError(t, mustCell(t, ws, 15, 30).Set(String("")))
	assert.Equal(t, before, mustDimension(t, ws))

	require.NoError(t, mustCell(t, ws, 15, 30).Set(nil))
	assert.Equal(t, before, mustDimension(t, ws))
}

func TestNonEmptyValueGrowsRectangle(t *testing.T) {
	tests := []struct {
		name  string
		value Value
	}{
		{"string", String("new value")},
		{"expression", String("=max(A1:A5)")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ws := testSheet(t, loadTestWorkbook(t), "Sheet1")
			before := mustDimension(t, ws)

			require.NoError(t, mustCell(t, ws, 15, 30).Set(tt.value))
			want := Dimension{MinRow: before.MinRow, MinCol: before.MinCol, MaxRow: 15, MaxCol: 30}
			assert.Equal(t, want, mustDimension(t, ws))
		})
	}
}

// A cell with an explicit non-EMPTY tag counts as non-empty even with
// zero-length text.
func TestEmptinessPredicateAsymmetry(t *testing.T) {
	ws := testSheet(t, loadTestWorkbook(t), "Small")
	c := mustCell(t, ws, 4, 4)
	require.NoError(t, c.SetValue(String(""), As(ValueTypeString)))

	assert.Equal(t, "", c.Text())
	assert.Equal(t, Dimension{MinRow: 4, MinCol: 4, MaxRow: 4, MaxCol: 4}, mustDimension(t, ws))
}

// The scenario from the sheet's contract: one integer cell defines the
// whole rectangle, and clearing it empties the sheet again.
func TestDimensionScenario(t *testing.T) {
	ws := testSheet(t, loadTestWorkbook(t), "Small")

	c := mustCell(t, ws, 5, 5)
	require.NoError(t, c.Set(Int(42)))
	got, err := c.ValueType()
	require.NoError(t, err)
	assert.Equal(t, ValueTypeInteger, got)
	assert.Equal(t, Dimension{MinRow: 5, MinCol: 5, MaxRow: 5, MaxCol: 5}, mustDimension(t, ws))

	require.NoError(t, c.Set(String("")))
	assert.Equal(t, Dimension{MinRow: -1, MinCol: -1, MaxRow: -1, MaxCol: -1}, mustDimension(t, ws))
}

func TestCellCollection(t *testing.T) {
	ws := testSheet(t, loadTestWorkbook(t), "Sheet1")
	require.Len(t, ws.CellCollection(false, Unsorted), 4)

	// Materialize an empty cell; only includeEmpty sees it.
	mustCell(t, ws, 20, 20)
	assert.Len(t, ws.CellCollection(false, Unsorted), 4)
	assert.Len(t, ws.CellCollection(true, Unsorted), 5)
}

func TestCellCollectionSorting(t *testing.T) {
	ws := testSheet(t, loadTestWorkbook(t), "Sheet1")

	coords := func(cells []*Cell) [][2]int {
		out := make([][2]int, 0, len(cells))
		for _, c := range cells {
			out = append(out, [2]int{c.Row(), c.Column()})
		}
		return out
	}

	rowMajor := ws.CellCollection(false, RowMajor)
	assert.Equal(t, [][2]int{{0, 0}, {0, 1}, {1, 0}, {2, 0}}, coords(rowMajor))

	colMajor := ws.CellCollection(false, ColumnMajor)
	assert.Equal(t, [][2]int{{0, 0}, {1, 0}, {2, 0}, {0, 1}}, coords(colMajor))
}

func TestCompact(t *testing.T) {
	ws := testSheet(t, loadTestWorkbook(t), "Sheet1")
	mustCell(t, ws, 20, 20)
	mustCell(t, ws, 30, 30)
	require.Len(t, ws.CellCollection(true, Unsorted), 6)

	ws.compact()
	assert.Len(t, ws.CellCollection(true, Unsorted), 4)
	assert.Equal(t, "2", findChild(ws.el, spaceGnm, "MaxRow").Text())
	assert.Equal(t, "1", findChild(ws.el, spaceGnm, "MaxCol").Text())

	// Idempotent: nothing further to remove, data untouched.
	ws.compact()
	assert.Len(t, ws.CellCollection(true, Unsorted), 4)
	text, err := ws.CellText(1, 0)
	require.NoError(t, err)
	assert.Equal(t, "2", text)
}

func TestCompactDropsExplicitlyEmptyCells(t *testing.T) {
	ws := testSheet(t, loadTestWorkbook(t), "BoundingRegion")
	require.Len(t, ws.CellCollection(true, Unsorted), 3)

	ws.compact()
	// The ValueType="10" cell goes away, the two content cells stay.
	assert.Len(t, ws.CellCollection(true, Unsorted), 2)
	assert.Equal(t, "12", findChild(ws.el, spaceGnm, "MaxRow").Text())
	assert.Equal(t, "9", findChild(ws.el, spaceGnm, "MaxCol").Text())
}

func TestExpressionMap(t *testing.T) {
	ws := newBlankSheet(t)
	a := mustCell(t, ws, 0, 0)
	require.NoError(t, a.Set(String("=sum(A1:A5)")))

	// Unshared formulas have no id and are invisible to the map.
	assert.Empty(t, ws.ExpressionMap())

	v, err := a.Value()
	require.NoError(t, err)
	expr, ok := v.(*Expression)
	require.True(t, ok)
	b := mustCell(t, ws, 1, 0)
	require.NoError(t, b.Set(expr))

	m := ws.ExpressionMap()
	require.Len(t, m, 1)
	assert.Equal(t, ExpressionEntry{Row: 0, Col: 0, Text: "=sum(A1:A5)"}, m["1"])
}

func TestNextExpressionID(t *testing.T) {
	ws := newBlankSheet(t)
	assert.Equal(t, "1", ws.nextExpressionID())

	// Ids larger than an int64 still order and increment correctly.
	c := mustCell(t, ws, 0, 0)
	require.NoError(t, c.Set(String("=max()")))
	c.setExpressionID("99999999999999999999")
	assert.Equal(t, "100000000000000000000", ws.nextExpressionID())
}

func TestSheetEquality(t *testing.T) {
	wb := loadTestWorkbook(t)
	a := testSheet(t, wb, "Sheet1")
	b := testSheet(t, wb, "Sheet1")
	other := testSheet(t, wb, "Small")

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(other))

	wb2 := loadTestWorkbook(t)
	foreign := testSheet(t, wb2, "Sheet1")
	assert.False(t, a.Equal(foreign))
}

func TestEmptinessPredicate(t *testing.T) {
	tests := []struct {
		name      string
		valueType string // "" means no attribute
		exprID    string
		text      string
		want      bool
	}{
		{"explicit empty tag", strconv.Itoa(int(ValueTypeEmpty)), "", "", true},
		{"explicit empty tag with text", strconv.Itoa(int(ValueTypeEmpty)), "", "stale", true},
		{"no tag no id no text", "", "", "", true},
		{"string tag empty text", strconv.Itoa(int(ValueTypeString)), "", "", false},
		{"no tag with expr id", "", "7", "", false},
		{"no tag with text", "", "", "=a1", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ws := newBlankSheet(t)
			el := ws.cellsEl().CreateElement("gnm:Cell")
			el.CreateAttr("Row", "0")
			el.CreateAttr("Col", "0")
			if tt.valueType != "" {
				el.CreateAttr("ValueType", tt.valueType)
			}
			if tt.exprID != "" {
				el.CreateAttr("ExprID", tt.exprID)
			}
			el.SetText(tt.text)
			assert.Equal(t, tt.want, isEmptyElement(el))
		})
	}
}
