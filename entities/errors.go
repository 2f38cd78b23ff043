// Package entities implements the IGES entity graph: the Directory-Entry
// record, the three-state reference-field wrapper, the polymorphic entity
// base and the Curve/Surface capability interfaces. The entity factory lives
// in the entities/build subpackage.
//
// Grounded on igesio's entities/entity_base.h, entities/de/de_field_wrapper.h
// and entities/de.h, adapted to Go's explicit-error-return idiom in the
// teacher's ErrXxx struct style (internal/parser/errors.go).
package entities

import "fmt"

// DataFormatError reports a parameter count/shape mismatch or a
// non-conforming field value (e.g. an ellipse form number with hyperbolic
// coefficients, or an invalid enum code).
type DataFormatError struct {
	Entity string
	Reason string
}

func (e DataFormatError) Error() string {
	return fmt.Sprintf("entities: data format error in %s: %s", e.Entity, e.Reason)
}

// TypeConversionError reports a parameter-vector element with the wrong
// dynamic type (e.g. a string where a real was expected).
type TypeConversionError struct {
	Entity   string
	Index    int
	Expected string
	Got      string
}

func (e TypeConversionError) Error() string {
	return fmt.Sprintf("entities: %s parameter[%d]: expected %s, got %s", e.Entity, e.Index, e.Expected, e.Got)
}

// OutOfRangeError reports a DE-pointer absent from the DE→ObjectID map, or a
// small-integer ID not found in the identity service.
type OutOfRangeError struct {
	Reason string
}

func (e OutOfRangeError) Error() string { return "entities: out of range: " + e.Reason }

// InvalidArgumentError reports a setter called with an invalid argument
// (nil pointer, reservation ID mismatch).
type InvalidArgumentError struct {
	Reason string
}

func (e InvalidArgumentError) Error() string { return "entities: invalid argument: " + e.Reason }

// NotImplementedError reports an operation not supported for this entity
// (e.g. third-order hyperbolic derivatives).
type NotImplementedError struct {
	Operation string
}

func (e NotImplementedError) Error() string {
	return "entities: not implemented: " + e.Operation
}

// ImplementationError reports an internal invariant violation that should
// never be observed by end users.
type ImplementationError struct {
	Reason string
}

func (e ImplementationError) Error() string { return "entities: internal error: " + e.Reason }

// ValidationResult aggregates a pass/fail flag with a list of human-readable
// messages. Validation never panics; it collects (spec.md §7).
type ValidationResult struct {
	Valid    bool
	Messages []string
}

// Valid constructs a passing result.
func Valid() ValidationResult { return ValidationResult{Valid: true} }

// AddError appends a failing message and marks the result invalid.
func (v *ValidationResult) AddError(format string, args ...any) {
	v.Valid = false
	v.Messages = append(v.Messages, fmt.Sprintf(format, args...))
}

// Merge folds other into v, preserving v.Valid only if both are valid.
func (v *ValidationResult) Merge(other ValidationResult) {
	v.Valid = v.Valid && other.Valid
	v.Messages = append(v.Messages, other.Messages...)
}
