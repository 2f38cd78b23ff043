package algorithms

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/habami/igesio-go/entities"
	"github.com/habami/igesio-go/entities/surfaces"
	"github.com/habami/igesio-go/internal/numerics"
)

// unitSquarePatch builds a flat bilinear NURBS patch spanning the unit
// square in the z=0 plane, parameterized (u,v) in [0,1]x[0,1].
func unitSquarePatch(t *testing.T) *surfaces.RationalBSplineSurface {
	control := [][]numerics.Vector3d{
		{numerics.V3(0, 0, 0), numerics.V3(0, 1, 0)},
		{numerics.V3(1, 0, 0), numerics.V3(1, 1, 0)},
	}
	weights := [][]float64{{1, 1}, {1, 1}}
	knots := []float64{0, 0, 1, 1}
	s, err := surfaces.NewRationalBSplineSurface(newBase(), 1, 1, control, weights, knots, knots, false, false, false, false, 0, 1, 0, 1)
	require.NoError(t, err)
	return s
}

func TestFlatPatchHasZeroCurvature(t *testing.T) {
	s := unitSquarePatch(t)
	k, err := GaussianCurvature(s, 0.5, 0.5)
	require.NoError(t, err)
	assert.InDelta(t, 0, k, 1e-9)

	h, err := MeanCurvature(s, 0.5, 0.5)
	require.NoError(t, err)
	assert.InDelta(t, 0, h, 1e-9)
}

func TestFlatPatchNormalIsWorldZ(t *testing.T) {
	s := unitSquarePatch(t)
	n, err := NormalAtUV(s, 0.25, 0.75)
	require.NoError(t, err)
	assert.InDelta(t, 0, n.X, 1e-9)
	assert.InDelta(t, 0, n.Y, 1e-9)
	assert.InDelta(t, 1, n.Z, 1e-9)
}

func TestAreaOfUnitSquarePatchIsOne(t *testing.T) {
	s := unitSquarePatch(t)
	area, err := Area(s)
	require.NoError(t, err)
	assert.InDelta(t, 1, area, 1e-6)
}

func TestSubAreaOfHalfThePatchIsOneHalf(t *testing.T) {
	s := unitSquarePatch(t)
	area, err := SubArea(s, 0, 0.5, 0, 1)
	require.NoError(t, err)
	assert.InDelta(t, 0.5, area, 1e-6)
}

func TestPrincipalCurvaturesOfFlatPatchAreBothZero(t *testing.T) {
	s := unitSquarePatch(t)
	k1, k2, err := PrincipalCurvatures(s, 0.5, 0.5)
	require.NoError(t, err)
	assert.InDelta(t, 0, k1, 1e-9)
	assert.InDelta(t, 0, k2, 1e-9)
}

func TestSurfaceBoundingBoxContainsPatchCorners(t *testing.T) {
	s := unitSquarePatch(t)
	box, err := SurfaceBoundingBox(s, 5)
	require.NoError(t, err)
	p, err := PointAtUV(s, 1, 1)
	require.NoError(t, err)
	assert.True(t, box.ContainsPoint(p))
}

var _ entities.Surface = (*surfaces.RationalBSplineSurface)(nil)
