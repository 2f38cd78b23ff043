package entities

import "github.com/habami/igesio-go/internal/identity"

// Base carries the state and behavior common to every concrete entity: DE
// metadata, the PD parameter vector (main parameters only, with additional
// pointer groups split off), and the two additional-pointer lists
// (spec.md §3 "Entities", §4.4 "Base construction protocol").
//
// Grounded on igesio's entities/entity_base.h (EntityBase); concrete entity
// types embed Base and implement the per-kind hooks (MainPDParameters,
// SetMainPDParameters, Kind, Validate's PD half) the way EntityBase's
// virtual methods are overridden per subclass there.
type Base struct {
	de DirectoryEntry

	// former are the "associativities / general-note / text-template"
	// additional pointers; latter are "property/attribute table" pointers
	// (spec.md §3).
	former []ReferenceField
	latter []ReferenceField

	main ParameterVector
}

// NewBase constructs a Base from a fully-populated DE record and the
// already-split main parameter vector.
func NewBase(de DirectoryEntry, main ParameterVector) Base {
	return Base{de: de, main: main}
}

func (b *Base) ID() identity.ObjectID   { return b.de.ID }
func (b *Base) DE() *DirectoryEntry     { return &b.de }
func (b *Base) MainParameters() ParameterVector { return b.main }

// SetAdditionalPointers installs the former/latter additional-pointer
// groups (spec.md §4.4 step (b)).
func (b *Base) SetAdditionalPointers(former, latter []ReferenceField) {
	b.former = append([]ReferenceField(nil), former...)
	b.latter = append([]ReferenceField(nil), latter...)
}

func (b *Base) FormerPointers() []ReferenceField { return b.former }
func (b *Base) LatterPointers() []ReferenceField { return b.latter }

// Parameters assembles the full PD vector: main parameters, then the
// former group count + entries, then the latter group count + entries
// (spec.md §4.4 "Parameter-data serialization protocol"). smallIDOf
// resolves a pointer field's target ObjectID to its small-integer alias.
func (b *Base) Parameters(smallIDOf func(identity.ObjectID) (int32, bool)) ParameterVector {
	out := b.main
	out = out.Append(Int(int64(len(b.former))))
	for _, f := range b.former {
		out = out.Append(Int(int64(f.Value(smallIDOf))))
	}
	out = out.Append(Int(int64(len(b.latter))))
	for _, f := range b.latter {
		out = out.Append(Int(int64(f.Value(smallIDOf))))
	}
	return out
}

// RawDirectoryEntry flattens the 20 DE fields for the writer collaborator
// (spec.md §6): reference fields become signed small integers (negative
// for pointer, positive for enum, 0 for default).
func (b *Base) RawDirectoryEntry(smallIDOf func(identity.ObjectID) (int32, bool)) [20]int {
	var raw [20]int
	raw[0] = b.de.EntityType
	raw[1], raw[2], raw[3], raw[4] = b.de.Structure.Value(smallIDOf), b.de.LineFontPattern.Value(smallIDOf), b.de.Level.Value(smallIDOf), b.de.View.Value(smallIDOf)
	raw[5] = b.de.TransformationMatrix.Value(smallIDOf)
	raw[6] = b.de.LabelDisplayAssociativity.Value(smallIDOf)
	raw[7] = encodeStatus(b.de.Status)
	raw[8] = 0 // sequence number of DE pointer to itself, assigned by writer
	raw[9] = b.de.LineWeight
	raw[10] = b.de.Color.Value(smallIDOf)
	// raw[11] (Parameter Line Count) is left to the writer: it depends on
	// how the PD record is laid out on disk, which this entity has no say in.
	raw[12] = b.de.FormNumber
	return raw
}

func encodeStatus(s EntityStatus) int {
	return int(s.Blank)*1000 + int(s.Subordinate)*100 + int(s.UseFlag)*10 + int(s.Hierarchy)
}

// deReferenceFields returns the seven DE-level fields that may carry
// references, for reuse by ChildIDs/UnresolvedReferences/resolution.
func (b *Base) deReferenceFields() []*ReferenceField {
	return []*ReferenceField{
		&b.de.Structure, &b.de.LineFontPattern, &b.de.Level, &b.de.View,
		&b.de.TransformationMatrix, &b.de.LabelDisplayAssociativity, &b.de.Color,
	}
}

// BaseChildIDs unions DE-field, additional-pointer reference IDs with any
// per-entity PD reference IDs supplied by the caller (spec.md §4.4
// "Reference resolution").
func (b *Base) BaseChildIDs(pdRefs []identity.ObjectID) []identity.ObjectID {
	var out []identity.ObjectID
	collect := func(f ReferenceField) {
		if id, ok := f.ID(); ok {
			out = append(out, id)
		}
	}
	for _, f := range b.deReferenceFields() {
		collect(*f)
	}
	for _, f := range b.former {
		collect(f)
	}
	for _, f := range b.latter {
		collect(f)
	}
	out = append(out, pdRefs...)
	return out
}

// BaseUnresolvedReferences filters BaseChildIDs down to those without a
// resolved target, by re-walking the same field groups.
func (b *Base) BaseUnresolvedReferences(pdUnresolved []identity.ObjectID) []identity.ObjectID {
	var out []identity.ObjectID
	check := func(f ReferenceField) {
		if _, ok := f.ID(); ok && !f.IsResolved() {
			out = append(out, f.id)
		}
	}
	for _, f := range b.deReferenceFields() {
		check(*f)
	}
	for _, f := range b.former {
		check(f)
	}
	for _, f := range b.latter {
		check(f)
	}
	return append(out, pdUnresolved...)
}

// SetUnresolvedReference offers candidate to every unresolved slot whose ID
// matches candidate.ID(), without overwriting an already-resolved slot
// (spec.md §4.4). Returns whether any slot was filled. extraTargets lets a
// concrete entity offer its own PD-level pointer fields through the same
// mechanism.
func (b *Base) SetUnresolvedReference(candidate Entity, extraTargets ...*ReferenceField) bool {
	filled := false
	try := func(f *ReferenceField) {
		if f.state == RefPointer && !f.IsResolved() && f.id.Equal(candidate.ID()) {
			if err := f.SetPointer(candidate); err == nil {
				filled = true
			}
		}
	}
	for _, f := range b.deReferenceFields() {
		try(f)
	}
	for i := range b.former {
		try(&b.former[i])
	}
	for i := range b.latter {
		try(&b.latter[i])
	}
	for _, f := range extraTargets {
		try(f)
	}
	return filled
}

// UnresolveReference clears every Pointer-state field currently resolved
// to removed, turning it back to the unresolved state and preserving its
// target ID (spec.md §5 "Shared-resource policy"). extraTargets lets a
// concrete entity offer its own PD-level pointer fields through the same
// mechanism. Returns whether any field was cleared.
func (b *Base) UnresolveReference(removed identity.ObjectID, extraTargets ...*ReferenceField) bool {
	cleared := false
	try := func(f *ReferenceField) {
		if f.state == RefPointer && f.target != nil && f.id.Equal(removed) {
			f.Unresolve()
			cleared = true
		}
	}
	for _, f := range b.deReferenceFields() {
		try(f)
	}
	for i := range b.former {
		try(&b.former[i])
	}
	for i := range b.latter {
		try(&b.latter[i])
	}
	for _, f := range extraTargets {
		try(f)
	}
	return cleared
}

// ValidateDE checks the well-formedness of the DE record's shared fields
// (spec.md §4.4 "Validation"): non-negative line weight, label/subscript
// length limits. Per-entity PD invariants are checked by each concrete
// type's own Validate.
func (b *Base) ValidateDE() ValidationResult {
	result := Valid()
	if b.de.LineWeight < 0 {
		result.AddError("line weight must be non-negative, got %d", b.de.LineWeight)
	}
	if len(b.de.EntityLabel) > 8 {
		result.AddError("entity label %q exceeds 8 characters", b.de.EntityLabel)
	}
	if b.de.Subscript < 0 || b.de.Subscript > 99999999 {
		result.AddError("subscript %d exceeds 8 decimal digits", b.de.Subscript)
	}
	return result
}
