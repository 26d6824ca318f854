package gnumeric

import (
	"math/big"
	"sort"
	"strconv"

	"github.com/beevik/etree"
)

// SheetType distinguishes regular worksheets from object (chart) sheets.
type SheetType int

const (
	// SheetTypeRegular is an ordinary worksheet with a cell grid.
	SheetTypeRegular SheetType = iota
	// SheetTypeObject is a chart sheet. It has no row/column grid, and
	// grid operations on it fail with UnsupportedOperationError.
	SheetTypeObject
)

// SortOrder controls the ordering of CellCollection results.
type SortOrder int

const (
	// Unsorted returns cells in sheet-storage order.
	Unsorted SortOrder = iota
	// RowMajor sorts by row, then by column within each row.
	RowMajor
	// ColumnMajor sorts by column, then by row within each column.
	ColumnMajor
)

// Dimension is the minimal bounding rectangle enclosing all non-empty
// cells of a sheet. All four fields are -1 on a sheet with no data.
type Dimension struct {
	MinRow int
	MinCol int
	MaxRow int
	MaxCol int
}

// Sheet is one sheet of a workbook. It wraps the sheet's two live
// elements in the backing tree: its entry in the SheetNameIndex (which
// carries the capacity and sheet-type metadata) and the gnm:Sheet element
// holding the cell grid.
//
// Cell storage is sparse: only non-empty cells, plus cells created and
// not yet compacted away, exist in the tree. Bounding-rectangle queries
// scan all materialized cells on every call; nothing is cached.
type Sheet struct {
	nameEl *etree.Element
	el     *etree.Element
	wb     *Workbook
}

// Workbook returns the workbook this sheet belongs to.
func (s *Sheet) Workbook() *Workbook {
	return s.wb
}

// Title returns the sheet's title.
func (s *Sheet) Title() string {
	return s.nameEl.Text()
}

// SetTitle renames the sheet. The title lives in two places in the tree,
// the name-index entry and the sheet's gnm:Name child, and both are
// rewritten together.
func (s *Sheet) SetTitle(title string) {
	s.nameEl.SetText(title)
	if name := findChild(s.el, spaceGnm, "Name"); name != nil {
		name.SetText(title)
	}
}

// Type returns whether this is a regular worksheet or an object (chart)
// sheet.
func (s *Sheet) Type() SheetType {
	if v, ok := nsAttrValue(s.nameEl, spaceGnm, "SheetType"); ok && v == "object" {
		return SheetTypeObject
	}
	return SheetTypeRegular
}

// MaxAllowedColumn returns the sheet's fixed column capacity minus one.
// Available on object sheets as well.
func (s *Sheet) MaxAllowedColumn() int {
	v, _ := nsAttrValue(s.nameEl, spaceGnm, "Cols")
	n, _ := strconv.Atoi(v)
	return n - 1
}

// MaxAllowedRow returns the sheet's fixed row capacity minus one.
// Available on object sheets as well.
func (s *Sheet) MaxAllowedRow() int {
	v, _ := nsAttrValue(s.nameEl, spaceGnm, "Rows")
	n, _ := strconv.Atoi(v)
	return n - 1
}

// IsValidColumn reports whether column is within [0, MaxAllowedColumn].
func (s *Sheet) IsValidColumn(column int) bool {
	return 0 <= column && column <= s.MaxAllowedColumn()
}

// IsValidRow reports whether row is within [0, MaxAllowedRow].
func (s *Sheet) IsValidRow(row int) bool {
	return 0 <= row && row <= s.MaxAllowedRow()
}

func (s *Sheet) cellsEl() *etree.Element {
	return findChild(s.el, spaceGnm, "Cells")
}

func (s *Sheet) cellElements() []*etree.Element {
	return findChildren(s.cellsEl(), spaceGnm, "Cell")
}

// isEmptyElement is the emptiness predicate shared by compaction and the
// bounding-rectangle queries: a cell is empty iff it is explicitly tagged
// EMPTY, or it has no type tag, no expression id and zero-length text.
// A cell with an explicit non-EMPTY tag but empty text is NOT empty.
func isEmptyElement(el *etree.Element) bool {
	if v, ok := attrValue(el, "ValueType"); ok {
		return v == strconv.Itoa(int(ValueTypeEmpty))
	}
	if _, ok := attrValue(el, "ExprID"); ok {
		return false
	}
	return el.Text() == ""
}

func (s *Sheet) nonEmptyCellElements() []*etree.Element {
	var out []*etree.Element
	for _, el := range s.cellElements() {
		if !isEmptyElement(el) {
			out = append(out, el)
		}
	}
	return out
}

func (s *Sheet) emptyCellElements() []*etree.Element {
	var out []*etree.Element
	for _, el := range s.cellElements() {
		if isEmptyElement(el) {
			out = append(out, el)
		}
	}
	return out
}

// bound scans the non-empty cells and reduces the chosen coordinate with
// the chosen comparison, returning -1 on a sheet with no data.
func (s *Sheet) bound(op string, coord func(*etree.Element) int, better func(a, b int) bool) (int, error) {
	if s.Type() == SheetTypeObject {
		return 0, &UnsupportedOperationError{Op: op}
	}
	best := -1
	for _, el := range s.nonEmptyCellElements() {
		v := coord(el)
		if best == -1 || better(v, best) {
			best = v
		}
	}
	return best, nil
}

func elementRow(el *etree.Element) int {
	n, _ := strconv.Atoi(el.SelectAttrValue("Row", "0"))
	return n
}

func elementCol(el *etree.Element) int {
	n, _ := strconv.Atoi(el.SelectAttrValue("Col", "0"))
	return n
}

func less(a, b int) bool { return a < b }
func more(a, b int) bool { return a > b }

// MinRow returns the smallest row holding data, or -1 on an empty sheet.
func (s *Sheet) MinRow() (int, error) {
	return s.bound("min row", elementRow, less)
}

// MinColumn returns the smallest column holding data, or -1 on an empty
// sheet.
func (s *Sheet) MinColumn() (int, error) {
	return s.bound("min column", elementCol, less)
}

// MaxRow returns the largest row holding data, or -1 on an empty sheet.
func (s *Sheet) MaxRow() (int, error) {
	return s.bound("max row", elementRow, more)
}

// MaxColumn returns the largest column holding data, or -1 on an empty
// sheet.
func (s *Sheet) MaxColumn() (int, error) {
	return s.bound("max column", elementCol, more)
}

// CalculateDimension returns the minimal bounding rectangle containing
// all data in the sheet.
func (s *Sheet) CalculateDimension() (Dimension, error) {
	if s.Type() == SheetTypeObject {
		return Dimension{}, &UnsupportedOperationError{Op: "rows or columns"}
	}
	minRow, err := s.MinRow()
	if err != nil {
		return Dimension{}, err
	}
	minCol, err := s.MinColumn()
	if err != nil {
		return Dimension{}, err
	}
	maxRow, err := s.MaxRow()
	if err != nil {
		return Dimension{}, err
	}
	maxCol, err := s.MaxColumn()
	if err != nil {
		return Dimension{}, err
	}
	return Dimension{MinRow: minRow, MinCol: minCol, MaxRow: maxRow, MaxCol: maxCol}, nil
}

func (s *Sheet) checkBounds(row, col int) error {
	if !s.IsValidRow(row) {
		return &IndexOutOfRangeError{Row: row, Col: col, Axis: "row", Max: s.MaxAllowedRow()}
	}
	if !s.IsValidColumn(col) {
		return &IndexOutOfRangeError{Row: row, Col: col, Axis: "column", Max: s.MaxAllowedColumn()}
	}
	return nil
}

func (s *Sheet) findCellElement(row, col int) *etree.Element {
	for _, el := range s.cellElements() {
		if elementRow(el) == row && elementCol(el) == col {
			return el
		}
	}
	return nil
}

// Cell returns the cell at (row, col), creating an EMPTY cell in the
// sheet when none exists yet. The created cell stays materialized until
// pre-save compaction; it does not affect the bounding rectangle while it
// is empty.
func (s *Sheet) Cell(row, col int) (*Cell, error) {
	if err := s.checkBounds(row, col); err != nil {
		return nil, err
	}
	cells := s.cellsEl()
	if cells == nil {
		return nil, &UnsupportedOperationError{Op: "cell addressing"}
	}
	el := s.findCellElement(row, col)
	if el == nil {
		el = cells.CreateElement("gnm:Cell")
		el.CreateAttr("Row", strconv.Itoa(row))
		el.CreateAttr("Col", strconv.Itoa(col))
		el.CreateAttr("ValueType", strconv.Itoa(int(ValueTypeEmpty)))
	}
	return &Cell{el: el, sheet: s}, nil
}

// ExistingCell returns the cell at (row, col) without creating one,
// failing with IndexOutOfRangeError when no cell is materialized there.
func (s *Sheet) ExistingCell(row, col int) (*Cell, error) {
	if err := s.checkBounds(row, col); err != nil {
		return nil, err
	}
	if s.cellsEl() == nil {
		return nil, &UnsupportedOperationError{Op: "cell addressing"}
	}
	el := s.findCellElement(row, col)
	if el == nil {
		return nil, &IndexOutOfRangeError{Row: row, Col: col}
	}
	return &Cell{el: el, sheet: s}, nil
}

// CellText returns the stored text of the cell at (row, col), failing
// when no such cell exists.
func (s *Sheet) CellText(row, col int) (string, error) {
	c, err := s.ExistingCell(row, col)
	if err != nil {
		return "", err
	}
	return c.Text(), nil
}

// CellCollection returns the sheet's cells. By default only cells with
// content are included; includeEmpty adds materialized-but-empty cells.
// Unsorted returns sheet-storage order.
func (s *Sheet) CellCollection(includeEmpty bool, order SortOrder) []*Cell {
	var els []*etree.Element
	if includeEmpty {
		els = s.cellElements()
	} else {
		els = s.nonEmptyCellElements()
	}
	cells := make([]*Cell, 0, len(els))
	for _, el := range els {
		cells = append(cells, &Cell{el: el, sheet: s})
	}
	switch order {
	case RowMajor:
		sort.Slice(cells, func(i, j int) bool {
			if cells[i].Row() != cells[j].Row() {
				return cells[i].Row() < cells[j].Row()
			}
			return cells[i].Column() < cells[j].Column()
		})
	case ColumnMajor:
		sort.Slice(cells, func(i, j int) bool {
			if cells[i].Column() != cells[j].Column() {
				return cells[i].Column() < cells[j].Column()
			}
			return cells[i].Row() < cells[j].Row()
		})
	}
	return cells
}

// ExpressionEntry is one entry of ExpressionMap: the coordinate of the
// originating cell and the literal formula text.
type ExpressionEntry struct {
	Row  int
	Col  int
	Text string
}

// ExpressionMap maps each expression id to its originating cell and
// formula text. The map is not necessarily complete: a formula used only
// once never receives an id and is invisible here.
func (s *Sheet) ExpressionMap() map[string]ExpressionEntry {
	out := make(map[string]ExpressionEntry)
	for _, el := range s.cellElements() {
		id, ok := attrValue(el, "ExprID")
		if !ok || el.Text() == "" {
			continue
		}
		out[id] = ExpressionEntry{Row: elementRow(el), Col: elementCol(el), Text: el.Text()}
	}
	return out
}

// nextExpressionID allocates a fresh expression id: the largest existing
// id plus one, or "1" on a sheet with no ids yet. Ids are decimal strings
// of unbounded size.
func (s *Sheet) nextExpressionID() string {
	max := big.NewInt(0)
	for id := range s.ExpressionMap() {
		n, ok := new(big.Int).SetString(id, 10)
		if ok && n.Cmp(max) > 0 {
			max = n
		}
	}
	return max.Add(max, big.NewInt(1)).String()
}

// compact performs pre-save housekeeping: it drops all empty materialized
// cells and rewrites the sheet's recorded MaxCol/MaxRow metadata from the
// cells that remain. Idempotent; non-empty cells are untouched. The
// workbook calls this for every regular sheet before writing to file.
func (s *Sheet) compact() {
	cells := s.cellsEl()
	if cells == nil {
		return
	}
	for _, el := range s.emptyCellElements() {
		cells.RemoveChild(el)
	}
	maxRow, err := s.MaxRow()
	if err != nil {
		return
	}
	maxCol, _ := s.MaxColumn()
	setChildText(s.el, "MaxRow", strconv.Itoa(maxRow))
	setChildText(s.el, "MaxCol", strconv.Itoa(maxCol))
}

func setChildText(el *etree.Element, tag, text string) {
	ch := findChild(el, spaceGnm, tag)
	if ch == nil {
		ch = el.CreateElement("gnm:" + tag)
	}
	ch.SetText(text)
}

// styleFor returns the gnm:Style element of the style region covering
// (row, col), or nil when no region covers it.
func (s *Sheet) styleFor(row, col int) *etree.Element {
	styles := findChild(s.el, spaceGnm, "Styles")
	for _, region := range findChildren(styles, spaceGnm, "StyleRegion") {
		startRow, _ := strconv.Atoi(region.SelectAttrValue("startRow", "0"))
		startCol, _ := strconv.Atoi(region.SelectAttrValue("startCol", "0"))
		endRow, _ := strconv.Atoi(region.SelectAttrValue("endRow", "-1"))
		endCol, _ := strconv.Atoi(region.SelectAttrValue("endCol", "-1"))
		if row >= startRow && row <= endRow && col >= startCol && col <= endCol {
			return findChild(region, spaceGnm, "Style")
		}
	}
	return nil
}

// Equal reports whether two handles name the same sheet of the same
// workbook. Identity routes through the backing elements.
func (s *Sheet) Equal(o *Sheet) bool {
	return o != nil && s.wb == o.wb && s.nameEl == o.nameEl && s.el == o.el
}

func (s *Sheet) String() string {
	return s.Title()
}
