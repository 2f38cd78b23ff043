package build

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/habami/igesio-go/entities"
	"github.com/habami/igesio-go/entities/curves"
	"github.com/habami/igesio-go/entities/structures"
	"github.com/habami/igesio-go/internal/identity"
)

func vals(vs ...float64) entities.ParameterVector {
	values := make([]entities.Value, len(vs))
	for i, v := range vs {
		values[i] = entities.Real(v)
	}
	return entities.NewParameterVector(values...)
}

func TestConstructCircularArcFromRawParameters(t *testing.T) {
	f := NewFactory(identity.New())
	rec := RawRecord{
		EntityType: 100,
		FormNumber: 0,
		Params:     vals(0, 0, 0, 1, 0, 0, 1),
	}
	ent, err := f.Construct(rec)
	require.NoError(t, err)
	arc, ok := ent.(*curves.CircularArc)
	require.True(t, ok)
	assert.Equal(t, entities.KindCircularArc, arc.Kind())
	d, err := arc.Derivatives(0, 0)
	require.NoError(t, err)
	assert.InDelta(t, 1, d[0].X, 1e-9)
}

func TestConstructLineSegmentFromRawParameters(t *testing.T) {
	f := NewFactory(identity.New())
	rec := RawRecord{
		EntityType: 110,
		FormNumber: 0,
		Params:     vals(0, 0, 0, 1, 1, 1),
	}
	ent, err := f.Construct(rec)
	require.NoError(t, err)
	line, ok := ent.(*curves.Line)
	require.True(t, ok)
	lo, hi := line.ParameterRange()
	assert.Equal(t, 0.0, lo)
	assert.Equal(t, 1.0, hi)
}

func TestConstructUnknownEntityTypeFallsBackToUnsupported(t *testing.T) {
	f := NewFactory(identity.New())
	rec := RawRecord{
		EntityType: 9999,
		Params:     vals(1, 2, 3),
	}
	ent, err := f.Construct(rec)
	require.NoError(t, err)
	unsupported, ok := ent.(*structures.UnsupportedEntity)
	require.True(t, ok)
	assert.Equal(t, 9999, unsupported.RawEntityType())
	assert.Equal(t, entities.KindUnsupported, unsupported.Kind())
}

func TestConstructTransformationMatrixChainsToReferencedParent(t *testing.T) {
	ids := identity.New()
	f := NewFactory(ids)

	parentRec := RawRecord{
		EntityType: 124,
		FormNumber: 0,
		Params:     vals(1, 0, 0, 10, 0, 1, 0, 20, 0, 0, 1, 30),
	}
	parentEnt, err := f.Construct(parentRec)
	require.NoError(t, err)
	parent := parentEnt.(*structures.TransformationMatrix)

	childRec := RawRecord{
		EntityType: 124,
		FormNumber: 0,
		Params:     vals(1, 0, 0, 1, 0, 1, 0, 2, 0, 0, 1, 3),
	}
	childEnt, err := f.Construct(childRec)
	require.NoError(t, err)
	child := childEnt.(*structures.TransformationMatrix)

	require.NoError(t, child.SetReference(parent))

	p, err := child.ApplyPoint(entities.Vec3{})
	require.NoError(t, err)
	assert.InDelta(t, 11, p.X, 1e-9)
	assert.InDelta(t, 22, p.Y, 1e-9)
	assert.InDelta(t, 33, p.Z, 1e-9)
}

func TestConstructNullEntity(t *testing.T) {
	f := NewFactory(identity.New())
	rec := RawRecord{EntityType: 0}
	ent, err := f.Construct(rec)
	require.NoError(t, err)
	assert.Equal(t, entities.KindNull, ent.Kind())
}

func TestConstructColorDefinitionRejectsOutOfRangePercent(t *testing.T) {
	f := NewFactory(identity.New())
	rec := RawRecord{
		EntityType: 314,
		Params:     vals(101, 0, 0),
	}
	_, err := f.Construct(rec)
	assert.Error(t, err)
}

func TestConstructSurfaceOfRevolutionRejectsBackwardsAngularRange(t *testing.T) {
	f := NewFactory(identity.New())
	rec := RawRecord{
		EntityType: 120,
		Params:     vals(math.Pi, 0),
		PDPointers: []entities.ReferenceField{entities.NewPointerField(identity.UnsetID), entities.NewPointerField(identity.UnsetID)},
	}
	_, err := f.Construct(rec)
	assert.Error(t, err)
}
