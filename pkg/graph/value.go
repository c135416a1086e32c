package graph

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ValueKind names the variant of a Value.
type ValueKind int

const (
	KindInt ValueKind = iota
	KindBool
	KindFloat
	KindString
	KindColor
	KindEnum
	KindVector
	KindArray
	KindObjectRef
	KindStruct
)

var valueKindNames = [...]string{
	KindInt:       "int",
	KindBool:      "bool",
	KindFloat:     "float",
	KindString:    "string",
	KindColor:     "color",
	KindEnum:      "enum",
	KindVector:    "vector",
	KindArray:     "array",
	KindObjectRef: "ref",
	KindStruct:    "struct",
}

func (k ValueKind) String() string {
	if k >= 0 && int(k) < len(valueKindNames) {
		return valueKindNames[k]
	}
	return "unknown"
}

// Value is a property value. The set of implementations is closed; use a
// type switch over the types below.
type Value interface {
	Kind() ValueKind
	isValue()
}

type (
	Int    int64
	Bool   bool
	Float  float64
	String string

	// Color is an RGBA color with channels in [0, 1].
	Color struct{ R, G, B, A float64 }

	// Enum is an enumeration value identified by its name.
	Enum string

	// Vector holds 2, 3 or 4 components.
	Vector []float64

	// Array is an ordered sequence of values.
	Array []Value

	// ObjectRef points at another object. References are compared by
	// display name, so references into two different graphs that name the
	// same object are equal. The zero value is a null reference.
	ObjectRef struct {
		Name string
	}

	// Struct is a nested, ordered set of fields.
	Struct []Property
)

func (Int) Kind() ValueKind       { return KindInt }
func (Bool) Kind() ValueKind      { return KindBool }
func (Float) Kind() ValueKind     { return KindFloat }
func (String) Kind() ValueKind    { return KindString }
func (Color) Kind() ValueKind     { return KindColor }
func (Enum) Kind() ValueKind      { return KindEnum }
func (Vector) Kind() ValueKind    { return KindVector }
func (Array) Kind() ValueKind     { return KindArray }
func (ObjectRef) Kind() ValueKind { return KindObjectRef }
func (Struct) Kind() ValueKind    { return KindStruct }

func (Int) isValue()       {}
func (Bool) isValue()      {}
func (Float) isValue()     {}
func (String) isValue()    {}
func (Color) isValue()     {}
func (Enum) isValue()      {}
func (Vector) isValue()    {}
func (Array) isValue()     {}
func (ObjectRef) isValue() {}
func (Struct) isValue()    {}

// IsNull reports whether the reference points at nothing.
func (r ObjectRef) IsNull() bool {
	return r.Name == ""
}

// Format renders v for reports. It is the only stringifier for values.
func Format(v Value) string {
	switch v := v.(type) {
	case nil:
		return "null"
	case Int:
		return strconv.FormatInt(int64(v), 10)
	case Bool:
		return strconv.FormatBool(bool(v))
	case Float:
		return formatFloat(float64(v))
	case String:
		return string(v)
	case Color:
		return fmt.Sprintf("RGBA(%.3f, %.3f, %.3f, %.3f)", v.R, v.G, v.B, v.A)
	case Enum:
		return string(v)
	case Vector:
		parts := make([]string, len(v))
		for i, c := range v {
			parts[i] = formatFloat(c)
		}
		return "(" + strings.Join(parts, ", ") + ")"
	case Array:
		parts := make([]string, len(v))
		for i, e := range v {
			parts[i] = Format(e)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case ObjectRef:
		if v.IsNull() {
			return "null"
		}
		return v.Name
	case Struct:
		parts := make([]string, len(v))
		for i, f := range v {
			parts[i] = f.Name + ": " + Format(f.Value)
		}
		return "{" + strings.Join(parts, ", ") + "}"
	default:
		panic(fmt.Sprintf("graph: unhandled value type %T", v))
	}
}

// Equal compares two values by kind: exact for scalars and enums,
// element-wise for vectors, arrays and structs, by name for references.
// Values of different kinds are never equal.
func Equal(a, b Value) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if a.Kind() != b.Kind() {
		return false
	}

	switch a := a.(type) {
	case Int:
		return a == b.(Int)
	case Bool:
		return a == b.(Bool)
	case Float:
		return floatEqual(float64(a), float64(b.(Float)))
	case String:
		return a == b.(String)
	case Color:
		c := b.(Color)
		return floatEqual(a.R, c.R) && floatEqual(a.G, c.G) &&
			floatEqual(a.B, c.B) && floatEqual(a.A, c.A)
	case Enum:
		return a == b.(Enum)
	case Vector:
		w := b.(Vector)
		if len(a) != len(w) {
			return false
		}
		for i := range a {
			if !floatEqual(a[i], w[i]) {
				return false
			}
		}
		return true
	case Array:
		w := b.(Array)
		if len(a) != len(w) {
			return false
		}
		for i := range a {
			if !Equal(a[i], w[i]) {
				return false
			}
		}
		return true
	case ObjectRef:
		return a.Name == b.(ObjectRef).Name
	case Struct:
		w := b.(Struct)
		if len(a) != len(w) {
			return false
		}
		for i := range a {
			if a[i].Name != w[i].Name || !Equal(a[i].Value, w[i].Value) {
				return false
			}
		}
		return true
	default:
		panic(fmt.Sprintf("graph: unhandled value type %T", a))
	}
}

// floatEqual is exact equality that also treats two NaNs as equal.
func floatEqual(a, b float64) bool {
	return a == b || (math.IsNaN(a) && math.IsNaN(b))
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}
