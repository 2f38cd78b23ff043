package entities

import "fmt"

// ValueKind tags the dynamic type of one ParameterVector element, mirroring
// an IGES Parameter-Data value's possible types (IGES §2.2.4.4.3).
type ValueKind int

const (
	KindInteger ValueKind = iota
	KindReal
	KindString
	KindLogical
	KindPointer // object-reference, stored as a signed small-integer ID
)

// FormatHint preserves per-value formatting metadata (width, precision,
// exponent style) so a round-tripped real-valued field re-emits with the
// same textual shape it was read with (spec.md §9 "Formatting hints").
type FormatHint struct {
	Width     int
	Precision int
	Scientific bool
}

// Value is one typed, format-hinted element of a ParameterVector.
type Value struct {
	Kind    ValueKind
	Int     int64
	Real    float64
	Str     string
	Logical bool
	Format  FormatHint
}

func Int(v int64) Value    { return Value{Kind: KindInteger, Int: v} }
func Real(v float64) Value { return Value{Kind: KindReal, Real: v} }
func Str(v string) Value   { return Value{Kind: KindString, Str: v} }
func Logical(v bool) Value { return Value{Kind: KindLogical, Logical: v} }
func Pointer(v int64) Value { return Value{Kind: KindPointer, Int: v} }

// RealWithFormat attaches a formatting hint to a real value.
func RealWithFormat(v float64, hint FormatHint) Value {
	return Value{Kind: KindReal, Real: v, Format: hint}
}

// AsInt returns the value as an int64, or a TypeConversionError if the
// dynamic kind is not Integer or Pointer.
func (v Value) AsInt(entity string, index int) (int64, error) {
	switch v.Kind {
	case KindInteger, KindPointer:
		return v.Int, nil
	default:
		return 0, TypeConversionError{Entity: entity, Index: index, Expected: "integer", Got: kindName(v.Kind)}
	}
}

// AsReal returns the value as a float64, or a TypeConversionError if the
// dynamic kind is not Real (integers widen implicitly, matching IGES's
// free-format parameter reading).
func (v Value) AsReal(entity string, index int) (float64, error) {
	switch v.Kind {
	case KindReal:
		return v.Real, nil
	case KindInteger:
		return float64(v.Int), nil
	default:
		return 0, TypeConversionError{Entity: entity, Index: index, Expected: "real", Got: kindName(v.Kind)}
	}
}

// AsString returns the value as a string, or a TypeConversionError.
func (v Value) AsString(entity string, index int) (string, error) {
	if v.Kind != KindString {
		return "", TypeConversionError{Entity: entity, Index: index, Expected: "string", Got: kindName(v.Kind)}
	}
	return v.Str, nil
}

// AsLogical returns the value as a bool, or a TypeConversionError.
func (v Value) AsLogical(entity string, index int) (bool, error) {
	if v.Kind != KindLogical {
		return false, TypeConversionError{Entity: entity, Index: index, Expected: "logical", Got: kindName(v.Kind)}
	}
	return v.Logical, nil
}

func kindName(k ValueKind) string {
	switch k {
	case KindInteger:
		return "integer"
	case KindReal:
		return "real"
	case KindString:
		return "string"
	case KindLogical:
		return "logical"
	case KindPointer:
		return "pointer"
	default:
		return "unknown"
	}
}

// ParameterVector is the normalized, typed form of an IGES Parameter-Data
// record: an ordered, heterogeneous sequence of values (spec.md §2).
type ParameterVector struct {
	values []Value
}

// NewParameterVector builds a vector from the given values in order.
func NewParameterVector(values ...Value) ParameterVector {
	return ParameterVector{values: append([]Value(nil), values...)}
}

// Len returns the number of elements.
func (p ParameterVector) Len() int { return len(p.values) }

// At returns the element at index i, or an OutOfRangeError if out of bounds.
func (p ParameterVector) At(i int) (Value, error) {
	if i < 0 || i >= len(p.values) {
		return Value{}, OutOfRangeError{Reason: fmt.Sprintf("parameter index %d out of range [0,%d)", i, len(p.values))}
	}
	return p.values[i], nil
}

// Append returns a new vector with v appended.
func (p ParameterVector) Append(v Value) ParameterVector {
	return ParameterVector{values: append(append([]Value(nil), p.values...), v)}
}

// Slice returns the sub-vector [start, end).
func (p ParameterVector) Slice(start, end int) ParameterVector {
	if start < 0 {
		start = 0
	}
	if end > len(p.values) {
		end = len(p.values)
	}
	if start >= end {
		return ParameterVector{}
	}
	return ParameterVector{values: append([]Value(nil), p.values[start:end]...)}
}

// Values returns a defensive copy of the underlying slice.
func (p ParameterVector) Values() []Value {
	return append([]Value(nil), p.values...)
}
