// Package identity implements the process-wide identity service: structured
// 128-bit ObjectIDs paired with reusable small-integer aliases, and the
// reservation mechanism that lets cross-referencing entities be constructed
// out of order.
//
// Grounded on igesio's common/id_generator.h: an ObjectID is a (prefix,
// suffix) pair of uint64 words encoding the object kind, and — for entities
// read from an IGES file — the owning model's small-integer ID, the source
// Directory-Entry sequence number, the IGES entity-type number, a creation
// timestamp, and (for in-program objects) a random component.
package identity

import "fmt"

// Kind tags the category of object an ObjectID was minted for.
type Kind uint8

const (
	// KindEntityFromIGES identifies an entity constructed from an IGES file.
	KindEntityFromIGES Kind = iota + 1
	// KindEntityNew identifies an entity created in-program (not read from a file).
	KindEntityNew
	// KindEntityGraphics identifies an auxiliary display/graphics object.
	KindEntityGraphics
	// KindIgesData identifies the model/IgesData object for one loaded file.
	KindIgesData
	// KindAssembly identifies an assembly grouping object.
	KindAssembly
)

func (k Kind) String() string {
	switch k {
	case KindEntityFromIGES:
		return "EntityFromIGES"
	case KindEntityNew:
		return "EntityNew"
	case KindEntityGraphics:
		return "EntityGraphics"
	case KindIgesData:
		return "IgesData"
	case KindAssembly:
		return "Assembly"
	default:
		return "Unknown"
	}
}

// ObjectID is a process-wide unique identifier: two 64-bit words that
// together encode the object's kind, provenance, and creation time. The
// zero value is UnsetID ("no reference").
type ObjectID struct {
	prefix uint64
	suffix uint64
	kind   Kind
	// igesModelID and sequenceNumber are only meaningful for
	// KindEntityFromIGES, entityType for the three entity kinds; set is
	// false only for UnsetID.
	igesModelID    uint32
	entityType     uint16
	sequenceNumber uint32
	set            bool
}

// UnsetID is the sentinel ObjectID representing "no reference" (spec.md §3).
var UnsetID = ObjectID{}

// IsSet reports whether id refers to a real object.
func (id ObjectID) IsSet() bool { return id.set }

// Kind returns the object kind this ID was minted for.
func (id ObjectID) Kind() Kind { return id.kind }

// Equal reports whether id and other are the same object, i.e. both of
// their 64-bit words are equal (spec.md §3).
func (id ObjectID) Equal(other ObjectID) bool {
	if !id.set || !other.set {
		return id.set == other.set
	}
	return id.prefix == other.prefix && id.suffix == other.suffix
}

// IGESModelID returns the owning model's small-integer ID and true, for
// entities sourced from an IGES file; otherwise (0, false).
func (id ObjectID) IGESModelID() (uint32, bool) {
	if id.kind != KindEntityFromIGES {
		return 0, false
	}
	return id.igesModelID, true
}

// SequenceNumber returns the originating DE sequence number and true, for
// entities sourced from an IGES file; otherwise (0, false).
func (id ObjectID) SequenceNumber() (uint32, bool) {
	if id.kind != KindEntityFromIGES {
		return 0, false
	}
	return id.sequenceNumber, true
}

// EntityType returns the IGES entity-type number and true, for entity
// ObjectIDs; otherwise (0, false).
func (id ObjectID) EntityType() (uint16, bool) {
	if id.kind != KindEntityFromIGES && id.kind != KindEntityNew && id.kind != KindEntityGraphics {
		return 0, false
	}
	return id.entityType, true
}

// String renders a compact debug form: "<kind>-<prefix:x>-<suffix:x>", or
// "unset" for UnsetID.
func (id ObjectID) String() string {
	if !id.set {
		return "unset"
	}
	return fmt.Sprintf("%s-%016x-%016x", id.kind, id.prefix, id.suffix)
}

// Readable renders a human-oriented debug form following id_generator.h's
// ToString(id, readable_format=true):
// "<kind>-<iges-model-id>-<sequence-number>-<entity-type>" for IGES-sourced
// entities, "<kind>-<entity-type>" for in-program entities/graphics, and
// "<kind>" for IgesData/Assembly objects.
func (id ObjectID) Readable() string {
	if !id.set {
		return "unset"
	}
	switch id.kind {
	case KindEntityFromIGES:
		return fmt.Sprintf("%s-%d-%d-%d", id.kind, id.igesModelID, id.sequenceNumber, id.entityType)
	case KindEntityNew, KindEntityGraphics:
		return fmt.Sprintf("%s-%d", id.kind, id.entityType)
	default:
		return id.kind.String()
	}
}
