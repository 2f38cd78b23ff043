package iges

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/habami/igesio-go/entities"
)

func vals(vs ...float64) entities.ParameterVector {
	values := make([]entities.Value, len(vs))
	for i, v := range vs {
		values[i] = entities.Real(v)
	}
	return entities.NewParameterVector(values...)
}

func TestLibraryAddEntityAndLookup(t *testing.T) {
	lib := NewLibrary()
	ent, err := lib.AddEntity(RawRecord{
		EntityType: 100,
		Params:     vals(0, 0, 0, 1, 0, 0, 1),
	})
	require.NoError(t, err)
	assert.Equal(t, 1, lib.Count())
	assert.Same(t, ent, lib.Lookup(ent.ID()))

	p, err := PointAt(ent.(entities.Curve), math.Pi/4)
	require.NoError(t, err)
	assert.InDelta(t, math.Sqrt2/2, p.X, 1e-9)
	assert.InDelta(t, math.Sqrt2/2, p.Y, 1e-9)
}

func TestLibraryRemoveUnresolvesReferences(t *testing.T) {
	lib := NewLibrary()

	// Forward reference: the line's DE names a color entity (DE sequence 7)
	// that hasn't been constructed yet (spec.md §9 "Deferred construction
	// and reservation"). Reserve its ObjectID up front.
	colorID, err := lib.Reserve(1, 314, 7)
	require.NoError(t, err)

	lineEnt, err := lib.AddEntity(RawRecord{
		EntityType: 110,
		Params:     vals(0, 0, 0, 1, 1, 1),
	})
	require.NoError(t, err)
	lineEnt.DE().Color.OverwritePointer(colorID)
	require.False(t, lib.IsReady())

	colorEnt, err := lib.AddEntity(RawRecord{
		EntityType:  314,
		Params:      vals(50, 50, 50),
		ReservedID:  colorID,
		HasReserved: true,
	})
	require.NoError(t, err)
	assert.True(t, colorEnt.ID().Equal(colorID))
	assert.True(t, lib.IsReady())

	lib.Remove(colorEnt.ID())
	assert.Contains(t, lib.UnresolvedReferences(), colorEnt.ID())
}

func TestLibraryEntitiesInBounds(t *testing.T) {
	lib := NewLibrary()
	near, err := lib.AddEntity(RawRecord{EntityType: 110, Params: vals(0, 0, 0, 1, 1, 1)})
	require.NoError(t, err)
	_, err = lib.AddEntity(RawRecord{EntityType: 110, Params: vals(100, 100, 100, 101, 101, 101)})
	require.NoError(t, err)

	hits := lib.EntitiesInBounds([3]float64{-1, -1, -1}, [3]float64{2, 2, 2})
	require.Len(t, hits, 1)
	assert.True(t, hits[0].ID().Equal(near.ID()))
}

func TestValidateParallelCollectsPerEntityResults(t *testing.T) {
	lib := NewLibrary()
	ok, err := lib.AddEntity(RawRecord{EntityType: 110, Params: vals(0, 0, 0, 1, 1, 1)})
	require.NoError(t, err)

	results, errs := ValidateParallel([]entities.Entity{ok}, DefaultEvalOptions())
	assert.Empty(t, errs)
	require.Len(t, results, 1)
	assert.True(t, results[0].Valid)
}

func TestDiscretizeParallelReturnsPolylinePerCurve(t *testing.T) {
	lib := NewLibrary()
	a, err := lib.AddEntity(RawRecord{EntityType: 100, Params: vals(0, 0, 0, 1, 0, 0, 1)})
	require.NoError(t, err)
	b, err := lib.AddEntity(RawRecord{EntityType: 110, Params: vals(0, 0, 0, 1, 1, 1)})
	require.NoError(t, err)

	curves := []entities.Curve{a.(entities.Curve), b.(entities.Curve)}
	polylines, errs := DiscretizeParallel(curves, 1e-3, DefaultEvalOptions())
	assert.Empty(t, errs)
	require.Len(t, polylines, 2)
	for _, pts := range polylines {
		assert.GreaterOrEqual(t, len(pts), 2)
	}
}

func TestLibraryCacheStaysWithinMemoryBudget(t *testing.T) {
	cache := NewLibraryCache(3 * 1024)

	_, err := cache.Get("a", func() (*Library, error) {
		lib := NewLibrary()
		_, err := lib.AddEntity(RawRecord{EntityType: 0})
		return lib, err
	})
	require.NoError(t, err)

	_, err = cache.Get("b", func() (*Library, error) {
		lib := NewLibrary()
		for i := 0; i < 3; i++ {
			if _, err := lib.AddEntity(RawRecord{EntityType: 0}); err != nil {
				return nil, err
			}
		}
		return lib, nil
	})
	require.NoError(t, err)

	assert.LessOrEqual(t, cache.Stats().UsedMemory, int64(3*1024))
}
