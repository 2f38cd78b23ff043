package bbox

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/habami/igesio-go/internal/numerics"
)

func axisAligned(t *testing.T, p0 numerics.Vector3d, sizes [3]float64) Box {
	t.Helper()
	b, err := NewAxisAligned(p0, sizes, [3]bool{})
	require.NoError(t, err)
	return b
}

func TestNewRejectsNonOrthonormalFrame(t *testing.T) {
	d := [3]numerics.Vector3d{numerics.V3(1, 0, 0), numerics.V3(1, 1, 0), numerics.V3(0, 0, 1)}
	_, err := New(numerics.Vector3d{}, d, [3]float64{1, 1, 1}, [3]bool{})
	assert.ErrorAs(t, err, &ErrInvalidBox{})
}

func TestNewRejectsLeftHandedFrame(t *testing.T) {
	d := [3]numerics.Vector3d{numerics.V3(1, 0, 0), numerics.V3(0, 1, 0), numerics.V3(0, 0, -1)}
	_, err := New(numerics.Vector3d{}, d, [3]float64{1, 1, 1}, [3]bool{})
	assert.ErrorAs(t, err, &ErrInvalidBox{})
}

func TestSizesReportsInfinityForRayAndLine(t *testing.T) {
	b, err := NewAxisAligned(numerics.Vector3d{}, [3]float64{1, math.Inf(1), math.Inf(1)}, [3]bool{false, false, true})
	require.NoError(t, err)

	sizes := b.Sizes()
	assert.Equal(t, Segment, b.AxisKind(0))
	assert.Equal(t, Ray, b.AxisKind(1))
	assert.Equal(t, Line, b.AxisKind(2))
	assert.True(t, math.IsInf(sizes[1], 1))
	assert.True(t, math.IsInf(sizes[2], 1))
}

func TestFromCornersSingleEqualAxisMakes2DBox(t *testing.T) {
	b, err := FromCorners(numerics.V3(0, 0, 5), numerics.V3(3, 4, 5))
	require.NoError(t, err)
	assert.True(t, b.Is2D())
	assert.False(t, b.Is1D())
}

func TestFromCornersTwoEqualAxesMakes1DBox(t *testing.T) {
	b, err := FromCorners(numerics.V3(1, 2, 0), numerics.V3(1, 2, 9))
	require.NoError(t, err)
	assert.True(t, b.Is1D())
}

func TestFromCornersIdenticalPointsFails(t *testing.T) {
	_, err := FromCorners(numerics.V3(1, 1, 1), numerics.V3(1, 1, 1))
	assert.ErrorAs(t, err, &ErrInvalidBox{})
}

func TestContainsPointWithinSegmentBox(t *testing.T) {
	b := axisAligned(t, numerics.V3(10, 10, 10), [3]float64{10, 10, 10})
	assert.True(t, b.ContainsPoint(numerics.V3(15, 15, 15)))
	assert.False(t, b.ContainsPoint(numerics.V3(25, 15, 15)))
}

func TestOrientedBoxIntersectsRay(t *testing.T) {
	b := axisAligned(t, numerics.V3(10, 10, 10), [3]float64{10, 10, 10})

	hit, err := b.Intersects(numerics.V3(0, 15, 15), numerics.V3(30, 15, 15), Ray)
	require.NoError(t, err)
	assert.True(t, hit)

	miss, err := b.Intersects(numerics.V3(0, 15, 15), numerics.V3(9.9, 15, 15), Segment)
	require.NoError(t, err)
	assert.False(t, miss)
}

func TestIntersectsRejectsDegenerateSegment(t *testing.T) {
	b := axisAligned(t, numerics.Vector3d{}, [3]float64{1, 1, 1})
	_, err := b.Intersects(numerics.V3(1, 1, 1), numerics.V3(1, 1, 1), Segment)
	assert.ErrorAs(t, err, &ErrDegenerateSegment{})
}

func TestVerticesCountFor3DAnd2DBoxes(t *testing.T) {
	b3 := axisAligned(t, numerics.Vector3d{}, [3]float64{1, 2, 3})
	assert.Len(t, b3.Vertices(), 8)

	b2, err := New2D(numerics.Vector3d{}, [2]numerics.Vector3d{numerics.V3(1, 0, 0), numerics.V3(0, 1, 0)}, [2]float64{1, 2}, [2]bool{})
	require.NoError(t, err)
	assert.Len(t, b2.Vertices(), 4)
}

func TestFiniteVerticesEmptyForRayBox(t *testing.T) {
	b, err := NewAxisAligned(numerics.Vector3d{}, [3]float64{1, 1, math.Inf(1)}, [3]bool{})
	require.NoError(t, err)
	assert.Empty(t, b.FiniteVertices())
}

func TestDistanceToZeroInsideBoxPositiveOutside(t *testing.T) {
	b := axisAligned(t, numerics.V3(0, 0, 0), [3]float64{10, 10, 10})
	assert.InDelta(t, 0.0, b.DistanceTo(numerics.V3(5, 5, 5)), 1e-9)
	assert.InDelta(t, 5.0, b.DistanceTo(numerics.V3(15, 0, 0)), 1e-9)
}

func TestExpandToIncludeGrowsToContainOtherBox(t *testing.T) {
	b := axisAligned(t, numerics.V3(0, 0, 0), [3]float64{5, 5, 5})
	other := axisAligned(t, numerics.V3(3, 3, 3), [3]float64{10, 10, 10})

	require.NoError(t, b.ExpandToInclude(other))
	for _, v := range other.Vertices() {
		assert.True(t, b.ContainsPoint(v), "expanded box should contain %v", v)
	}
}

func TestTranslateShiftsControlPointOnly(t *testing.T) {
	b := axisAligned(t, numerics.V3(1, 2, 3), [3]float64{1, 1, 1})
	moved, err := b.Translate(numerics.V3(10, 0, 0))
	require.NoError(t, err)
	assert.Equal(t, numerics.V3(11, 2, 3), moved.Control())
	assert.Equal(t, b.Directions(), moved.Directions())
}

func TestRotateRejectsNonOrthonormalMatrix(t *testing.T) {
	b := axisAligned(t, numerics.Vector3d{}, [3]float64{1, 1, 1})
	bad := numerics.Matrix3d{}
	_, err := b.Rotate(bad)
	assert.ErrorAs(t, err, &ErrInvalidBox{})
}

func TestRotateByIdentityIsNoOp(t *testing.T) {
	b := axisAligned(t, numerics.V3(1, 1, 1), [3]float64{2, 3, 4})
	rotated, err := b.Rotate(numerics.Identity3())
	require.NoError(t, err)
	assert.Equal(t, b.Directions(), rotated.Directions())
}

func TestContainsBoxTrueWhenFullyInside(t *testing.T) {
	outer := axisAligned(t, numerics.Vector3d{}, [3]float64{100, 100, 100})
	inner := axisAligned(t, numerics.V3(10, 10, 10), [3]float64{5, 5, 5})
	assert.True(t, outer.ContainsBox(inner))
	assert.False(t, inner.ContainsBox(outer))
}
