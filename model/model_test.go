package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/habami/igesio-go/entities"
	"github.com/habami/igesio-go/entities/build"
	"github.com/habami/igesio-go/entities/curves"
	"github.com/habami/igesio-go/internal/identity"
)

func vals(vs ...float64) entities.ParameterVector {
	values := make([]entities.Value, len(vs))
	for i, v := range vs {
		values[i] = entities.Real(v)
	}
	return entities.NewParameterVector(values...)
}

func TestInsertWiresCrossReferencesBothDirections(t *testing.T) {
	ids := identity.New()
	f := build.NewFactory(ids)
	m := New(ids)

	lineEnt, err := f.Construct(build.RawRecord{
		EntityType: 110,
		Params:     vals(0, 0, 0, 1, 1, 1),
	})
	require.NoError(t, err)
	line := lineEnt.(*curves.Line)
	require.NoError(t, m.Insert(line))

	colorEnt, err := f.Construct(build.RawRecord{
		EntityType: 314,
		Params:     vals(50, 50, 50),
	})
	require.NoError(t, err)
	line.DE().Color.OverwritePointer(colorEnt.ID())
	assert.NotEmpty(t, line.UnresolvedReferences())

	require.NoError(t, m.Insert(colorEnt))
	assert.Empty(t, line.UnresolvedReferences())
}

func TestRemoveUnresolvesDanglingReferences(t *testing.T) {
	ids := identity.New()
	f := build.NewFactory(ids)
	m := New(ids)

	lineEnt, err := f.Construct(build.RawRecord{
		EntityType: 110,
		Params:     vals(0, 0, 0, 1, 1, 1),
	})
	require.NoError(t, err)
	line := lineEnt.(*curves.Line)

	colorEnt, err := f.Construct(build.RawRecord{
		EntityType: 314,
		Params:     vals(50, 50, 50),
	})
	require.NoError(t, err)
	colorID := colorEnt.ID()

	require.NoError(t, m.Insert(colorEnt))
	line.DE().Color.OverwritePointer(colorID)
	require.NoError(t, m.Insert(line))
	require.True(t, m.AllReferencesResolved())

	m.Remove(colorID)
	assert.False(t, m.AllReferencesResolved())
	assert.Contains(t, m.UnresolvedReferences(), colorID)
}

func TestQueryRegionFindsLineNearOrigin(t *testing.T) {
	ids := identity.New()
	f := build.NewFactory(ids)
	m := New(ids)

	lineEnt, err := f.Construct(build.RawRecord{
		EntityType: 110,
		Params:     vals(0, 0, 0, 1, 1, 1),
	})
	require.NoError(t, err)
	require.NoError(t, m.Insert(lineEnt))

	farEnt, err := f.Construct(build.RawRecord{
		EntityType: 110,
		Params:     vals(1000, 1000, 1000, 1001, 1001, 1001),
	})
	require.NoError(t, err)
	require.NoError(t, m.Insert(farEnt))

	hits := m.EntitiesInBounds([3]float64{-1, -1, -1}, [3]float64{2, 2, 2})
	require.Len(t, hits, 1)
	assert.True(t, hits[0].ID().Equal(lineEnt.ID()))
}

func TestValidateAggregatesEntityErrors(t *testing.T) {
	ids := identity.New()
	f := build.NewFactory(ids)
	m := New(ids)

	lineEnt, err := f.Construct(build.RawRecord{
		EntityType: 110,
		Params:     vals(0, 0, 0, 1, 1, 1),
	})
	require.NoError(t, err)
	require.NoError(t, m.Insert(lineEnt))

	result := m.Validate()
	assert.True(t, result.Valid)
	assert.Equal(t, 1, m.Count())
}
