package entities

import "github.com/habami/igesio-go/internal/identity"

// RefState is the three-state discriminant of a ReferenceField (spec.md §3).
type RefState int

const (
	// RefDefault: integer value 0, no reference and no enumerated value.
	RefDefault RefState = iota
	// RefPositive: a small positive integer naming a catalog value (line
	// font, color number, level ID, ...).
	RefPositive
	// RefPointer: a reference to another entity, resolved or not.
	RefPointer
)

// ReferenceField is a DE field that may hold a default, a positive
// enumerated value, or a pointer to another entity — never more than one
// at a time (spec.md §3 "Reference-field wrapper").
//
// Grounded on igesio's entities/de/de_field_wrapper.h (DEFieldWrapper),
// translated from its weak_ptr-based target binding to a non-owning
// Entity handle set by the model container on resolution.
type ReferenceField struct {
	state    RefState
	positive int
	id       identity.ObjectID
	target   Entity // non-owning; nil until resolved
}

// NewDefaultField constructs a field in the Default state.
func NewDefaultField() ReferenceField { return ReferenceField{} }

// NewPositiveField constructs a field holding enumerated value v.
func NewPositiveField(v int) ReferenceField {
	return ReferenceField{state: RefPositive, positive: v}
}

// NewPointerField constructs a field pointing at id, unresolved until a
// matching entity is supplied via SetPointer.
func NewPointerField(id identity.ObjectID) ReferenceField {
	return ReferenceField{state: RefPointer, id: id}
}

// State reports which of the three states the field is in.
func (f ReferenceField) State() RefState { return f.state }

// PositiveValue returns the enumerated value and true if State()==RefPositive.
func (f ReferenceField) PositiveValue() (int, bool) {
	if f.state != RefPositive {
		return 0, false
	}
	return f.positive, true
}

// ID returns the referenced ObjectID and true if State()==RefPointer.
func (f ReferenceField) ID() (identity.ObjectID, bool) {
	if f.state != RefPointer {
		return identity.UnsetID, false
	}
	return f.id, true
}

// Target returns the resolved non-owning entity handle, or nil if the
// pointer is unresolved or the field is not in the Pointer state.
func (f ReferenceField) Target() Entity {
	if f.state != RefPointer {
		return nil
	}
	return f.target
}

// IsResolved reports whether a Pointer-state field has a live target.
func (f ReferenceField) IsResolved() bool {
	return f.state == RefPointer && f.target != nil
}

// SetPointer binds target as the resolved entity for this field. It
// succeeds only if the field is already a Pointer referring to target's
// own ID (spec.md §4.3); use OverwritePointer to replace the ID outright.
func (f *ReferenceField) SetPointer(target Entity) error {
	if target == nil {
		return InvalidArgumentError{Reason: "target must not be nil"}
	}
	if f.state != RefPointer {
		return InvalidArgumentError{Reason: "field is not in Pointer state"}
	}
	if !f.id.Equal(target.ID()) {
		return InvalidArgumentError{Reason: "target ID does not match the field's current ID"}
	}
	f.target = target
	return nil
}

// OverwritePointer replaces both the ID and the (unresolved) target of the
// field, clearing any prior positive value.
func (f *ReferenceField) OverwritePointer(id identity.ObjectID) {
	f.state = RefPointer
	f.id = id
	f.target = nil
	f.positive = 0
}

// SetPositiveValue sets the field to a positive enumerated value, clearing
// any pointer.
func (f *ReferenceField) SetPositiveValue(v int) {
	f.state = RefPositive
	f.positive = v
	f.id = identity.UnsetID
	f.target = nil
}

// Reset returns the field to the Default state.
func (f *ReferenceField) Reset() {
	*f = ReferenceField{}
}

// Unresolve clears a resolved Pointer field's target while preserving its
// target ID, returning the field to the unresolved state (spec.md §5: "if
// an entity is removed, all references pointing at it are marked
// unresolved").
func (f *ReferenceField) Unresolve() {
	f.target = nil
}

// Value renders the field's serialized integer: 0 for Default, the
// positive enum for Positive, or the negated small-integer alias of the
// target for Pointer (spec.md §3). smallIDOf resolves an ObjectID to its
// small-integer alias; ok is false if unresolved (emitted as 0 per the
// "dangling pointer reports as unresolved" rule in spec.md §4.3).
func (f ReferenceField) Value(smallIDOf func(identity.ObjectID) (int32, bool)) int {
	switch f.state {
	case RefPositive:
		return f.positive
	case RefPointer:
		small, ok := smallIDOf(f.id)
		if !ok {
			return 0
		}
		return -int(small)
	default:
		return 0
	}
}
