package gnumeric

import "fmt"

// Expression is a handle to a formula shared by id across cells of one
// sheet. Gnumeric stores a formula's literal text once, in the cell where
// it first appears, and every other cell using it carries only the id as
// a back-reference. An Expression with an empty id has not been shared
// yet; an id is allocated the first time it is assigned to another cell.
//
// The set of cells using an expression is computed by scanning the sheet,
// not stored, so a handle stays valid as the sheet changes.
type Expression struct {
	id    string
	sheet *Sheet
	cell  *Cell
}

func (*Expression) isValue() {}

// ID returns the expression's id within its sheet, or "" when the
// expression has not been shared yet.
func (e *Expression) ID() string {
	return e.id
}

// Sheet returns the sheet owning this expression.
func (e *Expression) Sheet() *Sheet {
	return e.sheet
}

// Cells returns every cell currently referencing this expression's id,
// including the originating cell. An unshared expression has exactly one
// cell, the one it was read from.
func (e *Expression) Cells() []*Cell {
	if e.id == "" {
		return []*Cell{e.cell}
	}
	var out []*Cell
	for _, el := range e.sheet.cellElements() {
		if id, ok := attrValue(el, "ExprID"); ok && id == e.id {
			out = append(out, &Cell{el: el, sheet: e.sheet})
		}
	}
	return out
}

// OriginatingCell returns the cell holding the literal formula text. It is
// looked up, not remembered: referencing cells have empty text, so the
// originating cell is the id-bearing cell whose text is non-empty.
func (e *Expression) OriginatingCell() *Cell {
	if e.id == "" {
		return e.cell
	}
	for _, c := range e.Cells() {
		if c.Text() != "" {
			return c
		}
	}
	return nil
}

// Value returns the literal formula text, read from the originating cell.
func (e *Expression) Value() (string, error) {
	orig := e.OriginatingCell()
	if orig == nil {
		return "", fmt.Errorf("expression %q has no originating cell", e.id)
	}
	return orig.Text(), nil
}
