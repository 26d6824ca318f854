package gnumeric

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/beevik/etree"
)

// ValueType is the storage kind of a cell, as recorded in the ValueType
// attribute of the cell element. The numeric tags are part of the file
// format and must round-trip exactly; the gaps are reserved space in the
// format itself.
type ValueType int

const (
	ValueTypeExpr      ValueType = -10
	ValueTypeEmpty     ValueType = 10
	ValueTypeBoolean   ValueType = 20
	ValueTypeInteger   ValueType = 30
	ValueTypeFloat     ValueType = 40
	ValueTypeError     ValueType = 50
	ValueTypeString    ValueType = 60
	ValueTypeCellRange ValueType = 70
	ValueTypeArray     ValueType = 80
)

// String returns a human-readable name for the value type.
func (t ValueType) String() string {
	switch t {
	case ValueTypeExpr:
		return "expression"
	case ValueTypeEmpty:
		return "empty"
	case ValueTypeBoolean:
		return "boolean"
	case ValueTypeInteger:
		return "integer"
	case ValueTypeFloat:
		return "float"
	case ValueTypeError:
		return "error"
	case ValueTypeString:
		return "string"
	case ValueTypeCellRange:
		return "cellrange"
	case ValueTypeArray:
		return "array"
	}
	return fmt.Sprintf("unknown(%d)", int(t))
}

// Cell is one cell of a sheet. It wraps the live cell element of the
// backing XML tree; reads and writes go straight to the tree. Cells are
// obtained from Sheet.Cell and are never destroyed explicitly: an emptied
// cell stays materialized until the workbook's pre-save compaction drops
// it.
type Cell struct {
	el    *etree.Element
	sheet *Sheet
}

// Row is the row this cell belongs to (0-indexed).
func (c *Cell) Row() int {
	n, _ := strconv.Atoi(c.el.SelectAttrValue("Row", "0"))
	return n
}

// Column is the column this cell belongs to (0-indexed).
func (c *Cell) Column() int {
	n, _ := strconv.Atoi(c.el.SelectAttrValue("Col", "0"))
	return n
}

// Coordinate returns the (row, column) of the cell.
func (c *Cell) Coordinate() (row, col int) {
	return c.Row(), c.Column()
}

// Sheet returns the sheet this cell belongs to.
func (c *Cell) Sheet() *Sheet {
	return c.sheet
}

// Text returns the raw text stored in the cell. An empty string means the
// cell holds no content.
func (c *Cell) Text() string {
	return c.el.Text()
}

// ValueType returns the type of value stored in the cell: the explicit
// ValueType attribute when present, otherwise ValueTypeExpr when the cell
// carries an ExprID attribute or its text starts with "=". A cell with
// neither is malformed and yields an UnrecognizedCellTypeError.
func (c *Cell) ValueType() (ValueType, error) {
	if v, ok := attrValue(c.el, "ValueType"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return 0, &UnrecognizedCellTypeError{Node: serializeElement(c.el)}
		}
		return ValueType(n), nil
	}
	if _, ok := attrValue(c.el, "ExprID"); ok || strings.HasPrefix(c.el.Text(), "=") {
		return ValueTypeExpr, nil
	}
	return 0, &UnrecognizedCellTypeError{Node: serializeElement(c.el)}
}

// Value returns the cell's value converted to its typed representation:
// Bool for boolean cells (any stored text counts as true), Int and Float
// for numeric cells, an *Expression handle for formula cells, and the raw
// text for everything else. An empty cell yields nil, not a synthesized
// zero value.
func (c *Cell) Value() (Value, error) {
	t, err := c.ValueType()
	if err != nil {
		return nil, err
	}
	text := c.el.Text()
	switch t {
	case ValueTypeBoolean:
		return Bool(text != ""), nil
	case ValueTypeInteger:
		n, err := strconv.ParseInt(text, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("integer cell (%d, %d): %w", c.Row(), c.Column(), err)
		}
		return Int(n), nil
	case ValueTypeFloat:
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return nil, fmt.Errorf("float cell (%d, %d): %w", c.Row(), c.Column(), err)
		}
		return Float(f), nil
	case ValueTypeExpr:
		id, _ := attrValue(c.el, "ExprID")
		return &Expression{id: id, sheet: c.sheet, cell: c}, nil
	}
	if text == "" {
		return nil, nil
	}
	return String(text), nil
}

// Set stores a value with the type inferred from the value itself.
func (c *Cell) Set(v Value) error {
	return c.SetValue(v, Infer())
}

// SetValue stores a value in the cell under the type chosen by the
// directive. The cell is left untouched when type resolution or the
// cross-sheet expression check fails.
func (c *Cell) SetValue(v Value, d TypeDirective) error {
	t, err := c.resolveType(v, d)
	if err != nil {
		return err
	}

	expr, isExpr := v.(*Expression)
	switch {
	case t == ValueTypeBoolean:
		if truthy(v) {
			c.el.SetText("TRUE")
		} else {
			c.el.SetText("FALSE")
		}
	case t == ValueTypeEmpty:
		c.el.SetText("")
	case t == ValueTypeExpr && isExpr:
		if err := c.setExpression(expr); err != nil {
			return err
		}
	default:
		c.el.SetText(valueText(v))
	}

	c.setType(t)
	return nil
}

// setExpression binds an expression into this cell. Assigning an
// expression back onto its only cell stores the literal text; anything
// else shares the formula by id, converting a previously unshared
// originating cell into an id carrier first.
func (c *Cell) setExpression(expr *Expression) error {
	if expr.sheet != c.sheet {
		return ErrCrossSheetExpression
	}

	id := expr.id
	if id == "" {
		id = c.sheet.nextExpressionID()
	}

	cells := expr.Cells()
	orig := expr.OriginatingCell()
	if len(cells) == 1 && orig != nil && orig.Equal(c) {
		text, err := expr.Value()
		if err != nil {
			return err
		}
		c.el.SetText(text)
		return nil
	}

	if len(cells) == 1 && orig != nil {
		orig.setExpressionID(id)
	}
	c.el.SetText("")
	c.setExpressionID(id)
	return nil
}

// resolveType maps a directive and value to the type that will be stored.
func (c *Cell) resolveType(v Value, d TypeDirective) (ValueType, error) {
	switch d.kind {
	case directiveExplicit:
		return d.typ, nil
	case directiveKeep:
		return c.ValueType()
	}

	switch val := v.(type) {
	case nil:
		return ValueTypeEmpty, nil
	case Bool:
		return ValueTypeBoolean, nil
	case Int:
		return ValueTypeInteger, nil
	case Float:
		return ValueTypeFloat, nil
	case *Expression:
		return ValueTypeExpr, nil
	case String:
		if val == "" {
			return ValueTypeEmpty, nil
		}
		if strings.HasPrefix(string(val), "=") {
			return ValueTypeExpr, nil
		}
		// A plain string overwrites a simple scalar as STRING, but a
		// cell already holding a kept type retains it.
		prior, err := c.ValueType()
		if err != nil {
			return 0, err
		}
		switch prior {
		case ValueTypeEmpty, ValueTypeBoolean, ValueTypeInteger, ValueTypeFloat, ValueTypeError:
			return ValueTypeString, nil
		}
		return prior, nil
	}
	return 0, fmt.Errorf("unsupported value kind %T", v)
}

// setType records the resolved type. Expression cells carry no ValueType
// attribute; their type is inferred from ExprID or the leading "=".
func (c *Cell) setType(t ValueType) {
	if t == ValueTypeExpr {
		c.el.RemoveAttr("ValueType")
		return
	}
	c.el.CreateAttr("ValueType", strconv.Itoa(int(t)))
}

func (c *Cell) setExpressionID(id string) {
	c.el.CreateAttr("ExprID", id)
}

// TextFormat returns the number format string of the style region covering
// this cell ("Number Format" in Gnumeric).
func (c *Cell) TextFormat() (string, error) {
	style := c.sheet.styleFor(c.Row(), c.Column())
	if style == nil {
		return "", fmt.Errorf("cell (%d, %d): %w", c.Row(), c.Column(), ErrNoStyleFormat)
	}
	format, ok := attrValue(style, "Format")
	if !ok {
		return "", fmt.Errorf("cell (%d, %d): %w", c.Row(), c.Column(), ErrNoStyleFormat)
	}
	return format, nil
}

// Equal reports whether two cells are the same cell: the same sheet and
// the same coordinate. The backing element is the canonical identity.
func (c *Cell) Equal(o *Cell) bool {
	if o == nil {
		return false
	}
	if c.el == o.el {
		return true
	}
	return c.sheet == o.sheet && c.Row() == o.Row() && c.Column() == o.Column()
}

func (c *Cell) String() string {
	return fmt.Sprintf("Cell[(%d, %d), sheet=%q]", c.Row(), c.Column(), c.sheet.Title())
}
