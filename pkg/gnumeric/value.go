package gnumeric

import "strconv"

// Value is a typed cell value. The concrete kinds are Bool, Int, Float,
// String and *Expression; a nil Value represents an empty cell. Gnumeric
// stores all of these as text plus a type tag, so Value is the boundary
// between Go types and the stored representation.
type Value interface {
	isValue()
}

// Bool is a boolean cell value.
type Bool bool

// Int is an integer cell value.
type Int int64

// Float is a floating-point cell value.
type Float float64

// String is a text cell value.
type String string

func (Bool) isValue()   {}
func (Int) isValue()    {}
func (Float) isValue()  {}
func (String) isValue() {}

// TypeDirective tells SetValue how to choose the stored value type. Use
// Infer, Keep or As to construct one.
type TypeDirective struct {
	kind directiveKind
	typ  ValueType
}

type directiveKind int

const (
	directiveInfer directiveKind = iota
	directiveKeep
	directiveExplicit
)

// Infer derives the value type from the value being set (the default
// behavior of Cell.Set).
func Infer() TypeDirective {
	return TypeDirective{kind: directiveInfer}
}

// Keep retains the cell's current value type regardless of the value
// being set. No type checking is performed, so it is possible to store
// text into a cell tagged as an integer.
func Keep() TypeDirective {
	return TypeDirective{kind: directiveKeep}
}

// As forces an explicit value type.
func As(t ValueType) TypeDirective {
	return TypeDirective{kind: directiveExplicit, typ: t}
}

// valueText renders a value as the text Gnumeric stores for non-boolean,
// non-expression types.
func valueText(v Value) string {
	switch val := v.(type) {
	case nil:
		return ""
	case Bool:
		if val {
			return "True"
		}
		return "False"
	case Int:
		return strconv.FormatInt(int64(val), 10)
	case Float:
		return strconv.FormatFloat(float64(val), 'g', -1, 64)
	case String:
		return string(val)
	case *Expression:
		text, err := val.Value()
		if err != nil {
			return ""
		}
		return text
	}
	return ""
}

// truthy reduces a value to a boolean, for storing under the BOOLEAN type.
func truthy(v Value) bool {
	switch val := v.(type) {
	case nil:
		return false
	case Bool:
		return bool(val)
	case Int:
		return val != 0
	case Float:
		return val != 0
	case String:
		return val != ""
	case *Expression:
		return true
	}
	return false
}
