package structures

import (
	"github.com/habami/igesio-go/entities"
	"github.com/habami/igesio-go/internal/identity"
)

// UnsupportedEntity is the catch-all produced for any entity type the
// factory does not recognize, or recognizes but has not implemented. It
// preserves the raw parameter-data values verbatim so the entity can still
// be written back out unchanged (spec.md §4.4 "Unknown or unimplemented
// entity types produce an opaque entity that preserves its raw parameters
// for round-trip fidelity"; §9 extensibility note).
type UnsupportedEntity struct {
	entities.Base
	rawType int
	raw     entities.ParameterVector
}

// NewUnsupportedEntity wraps base's already-populated main parameter
// vector; rawType records the original EntityType field so callers can
// distinguish one unsupported type from another without re-parsing.
func NewUnsupportedEntity(base entities.Base, rawType int) *UnsupportedEntity {
	return &UnsupportedEntity{Base: base, rawType: rawType, raw: base.MainParameters()}
}

func (u *UnsupportedEntity) Kind() entities.Kind { return entities.KindUnsupported }

// RawEntityType returns the numeric entity type recorded in the directory
// entry, independent of Kind (which is always KindUnsupported here).
func (u *UnsupportedEntity) RawEntityType() int { return u.rawType }

// RawParameters returns the untouched parameter vector as read, for
// round-trip serialization.
func (u *UnsupportedEntity) RawParameters() entities.ParameterVector { return u.raw }

func (u *UnsupportedEntity) ChildIDs() []identity.ObjectID { return u.BaseChildIDs(nil) }
func (u *UnsupportedEntity) UnresolvedReferences() []identity.ObjectID {
	return u.BaseUnresolvedReferences(nil)
}
func (u *UnsupportedEntity) SetUnresolvedReference(candidate entities.Entity) bool {
	return u.Base.SetUnresolvedReference(candidate)
}

func (u *UnsupportedEntity) UnresolveReference(removed identity.ObjectID) bool {
	return u.Base.UnresolveReference(removed)
}

// Validate never reports per-entity errors beyond DE well-formedness: an
// opaque entity has no known PD invariants to check.
func (u *UnsupportedEntity) Validate() entities.ValidationResult { return u.ValidateDE() }
