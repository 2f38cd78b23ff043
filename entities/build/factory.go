// Package build wires the concrete entity constructors in entities/curves,
// entities/surfaces, and entities/structures to IGES entity-type codes, and
// holds the raw-record-to-entity translation (the PD parameter layouts) the
// model container's reader hands off to. It cannot live in package entities
// itself: entities/curves, entities/surfaces and entities/structures all
// import entities, so entities cannot import them back without a cycle
// (spec.md §4.4 "Factory").
package build

import (
	"github.com/habami/igesio-go/entities"
	"github.com/habami/igesio-go/entities/structures"
	"github.com/habami/igesio-go/internal/identity"
	"github.com/habami/igesio-go/internal/numerics"
)

// RawRecord is the reader's normalized view of one directory-entry +
// parameter-data pair, already split into the 20 DE-level fields and the
// main-parameter vector (additional pointer groups separated into
// Former/Latter), per spec.md §4.4's "Base construction protocol".
type RawRecord struct {
	EntityType int
	FormNumber int

	Structure                 entities.ReferenceField
	LineFontPattern           entities.ReferenceField
	Level                     entities.ReferenceField
	View                      entities.ReferenceField
	TransformationMatrix      entities.ReferenceField
	LabelDisplayAssociativity entities.ReferenceField
	Color                     entities.ReferenceField

	Status      entities.EntityStatus
	LineWeight  int
	EntityLabel string
	Subscript   int

	Params ParameterVector
	Former []entities.ReferenceField
	Latter []entities.ReferenceField

	// PDPointers holds the entity's PD-level object references (composite
	// curve sub-curves, surface/curve-on-surface cross-references, ruled
	// surface's two curves, ...), in the order the entity type's parameter
	// layout expects them, already built into ReferenceFields (resolved or
	// not) by the reader.
	PDPointers []entities.ReferenceField

	// ReservedID, if HasReserved, is an ObjectID minted ahead of time by a
	// forward reference (identity.Generator.Reserve) and must be adopted
	// rather than generated fresh (spec.md §9 "Deferred construction and
	// reservation").
	ReservedID  identity.ObjectID
	HasReserved bool
}

// ParameterVector is an alias so callers outside entities need not import
// it directly to build a RawRecord.
type ParameterVector = entities.ParameterVector

// Factory constructs concrete entities from RawRecord, keyed by entity-type
// code, falling back to structures.UnsupportedEntity for anything it does
// not recognize (spec.md §4.4).
type Factory struct {
	ids *identity.Generator
}

// NewFactory binds a Factory to the identity generator used to mint (or
// adopt a reservation for) each constructed entity's ObjectID.
func NewFactory(ids *identity.Generator) *Factory {
	return &Factory{ids: ids}
}

func (f *Factory) newBase(rec RawRecord) (entities.Base, error) {
	id, err := f.entityID(rec)
	if err != nil {
		return entities.Base{}, err
	}
	de := entities.DirectoryEntry{
		EntityType:                rec.EntityType,
		FormNumber:                rec.FormNumber,
		Structure:                 rec.Structure,
		LineFontPattern:           rec.LineFontPattern,
		Level:                     rec.Level,
		View:                      rec.View,
		TransformationMatrix:      rec.TransformationMatrix,
		LabelDisplayAssociativity: rec.LabelDisplayAssociativity,
		Color:                     rec.Color,
		Status:                    rec.Status,
		LineWeight:                rec.LineWeight,
		EntityLabel:               rec.EntityLabel,
		Subscript:                 rec.Subscript,
		ID:                        id,
	}
	base := entities.NewBase(de, rec.Params)
	base.SetAdditionalPointers(rec.Former, rec.Latter)
	return base, nil
}

func (f *Factory) entityID(rec RawRecord) (identity.ObjectID, error) {
	if rec.HasReserved {
		return rec.ReservedID, nil
	}
	id, _, err := f.ids.GenerateEntity(identity.KindEntityNew, uint16(rec.EntityType))
	return id, err
}

// Construct dispatches on rec.EntityType/rec.FormNumber to the matching
// concrete constructor. Unknown or unimplemented entity types, and any
// entity whose PD parameters fail validation, still need an entity in the
// model — the caller is expected to fall back to UnsupportedEntity itself
// via BuildUnsupported when Construct returns an error for an unrecognized
// type; Construct itself returns a structures.NullEntity for type 0 and a
// structures.UnsupportedEntity for genuinely-unknown codes.
func (f *Factory) Construct(rec RawRecord) (entities.Entity, error) {
	switch rec.EntityType {
	case 0:
		base, err := f.newBase(rec)
		if err != nil {
			return nil, err
		}
		return structures.NewNullEntity(base), nil
	case 100:
		return f.buildCircularArc(rec)
	case 102:
		return f.buildCompositeCurve(rec)
	case 104:
		return f.buildConicArc(rec)
	case 106:
		return f.buildCopiousData(rec)
	case 110:
		return f.buildLine(rec)
	case 112:
		return f.buildParametricSplineCurve(rec)
	case 118:
		return f.buildRuledSurface(rec)
	case 120:
		return f.buildSurfaceOfRevolution(rec)
	case 122:
		return f.buildTabulatedCylinder(rec)
	case 124:
		return f.buildTransformationMatrix(rec)
	case 126:
		return f.buildRationalBSplineCurve(rec)
	case 128:
		return f.buildRationalBSplineSurface(rec)
	case 142:
		return f.buildCurveOnParametricSurface(rec)
	case 314:
		return f.buildColorDefinition(rec)
	default:
		base, err := f.newBase(rec)
		if err != nil {
			return nil, err
		}
		return structures.NewUnsupportedEntity(base, rec.EntityType), nil
	}
}

// BuildUnsupported wraps rec as an opaque entity regardless of its type,
// for use when Construct's type-specific builder rejects the PD parameters
// (spec.md §4.4: construction failures "fail the constructor or
// validation; [do] not abort the file" — the reader falls back to an
// unsupported entity rather than dropping the record).
func (f *Factory) BuildUnsupported(rec RawRecord) (entities.Entity, error) {
	base, err := f.newBase(rec)
	if err != nil {
		return nil, err
	}
	return structures.NewUnsupportedEntity(base, rec.EntityType), nil
}

func realsFrom(p ParameterVector, entity string, idx, n int) ([]float64, error) {
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		v, err := p.At(idx + i)
		if err != nil {
			return nil, err
		}
		r, err := v.AsReal(entity, idx+i)
		if err != nil {
			return nil, err
		}
		out[i] = r
	}
	return out, nil
}

func intAt(p ParameterVector, entity string, idx int) (int, error) {
	v, err := p.At(idx)
	if err != nil {
		return 0, err
	}
	r, err := v.AsInt(entity, idx)
	if err != nil {
		return 0, err
	}
	return int(r), nil
}

func realAt(p ParameterVector, entity string, idx int) (float64, error) {
	v, err := p.At(idx)
	if err != nil {
		return 0, err
	}
	return v.AsReal(entity, idx)
}

func boolAt(p ParameterVector, entity string, idx int) (bool, error) {
	n, err := intAt(p, entity, idx)
	if err != nil {
		return false, err
	}
	return n != 0, nil
}

func vec2At(p ParameterVector, entity string, idx int) (numerics.Vector2d, error) {
	xy, err := realsFrom(p, entity, idx, 2)
	if err != nil {
		return numerics.Vector2d{}, err
	}
	return numerics.V2(xy[0], xy[1]), nil
}

func vec3At(p ParameterVector, entity string, idx int) (numerics.Vector3d, error) {
	xyz, err := realsFrom(p, entity, idx, 3)
	if err != nil {
		return numerics.Vector3d{}, err
	}
	return numerics.V3(xyz[0], xyz[1], xyz[2]), nil
}

// pdPointer fetches PDPointers[idx], failing with a DataFormatError if the
// reader did not supply enough pointer slots for this entity's layout.
func pdPointer(rec RawRecord, entity string, idx int) (entities.ReferenceField, error) {
	if idx < 0 || idx >= len(rec.PDPointers) {
		return entities.ReferenceField{}, entities.DataFormatError{Entity: entity, Reason: "missing PD-level pointer parameter"}
	}
	return rec.PDPointers[idx], nil
}
