package algorithms

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/habami/igesio-go/entities"
	"github.com/habami/igesio-go/entities/curves"
	"github.com/habami/igesio-go/internal/numerics"
)

func newBase() entities.Base {
	return entities.NewBase(entities.DirectoryEntry{}, entities.NewParameterVector())
}

func unitQuarterArc(t *testing.T) *curves.CircularArc {
	arc, err := curves.NewCircularArc(newBase(), 0, numerics.V2(0, 0), numerics.V2(1, 0), numerics.V2(0, 1))
	require.NoError(t, err)
	return arc
}

func TestCurvatureOfUnitCircleIsOne(t *testing.T) {
	arc := unitQuarterArc(t)
	k, err := Curvature(arc, 0)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, k, 1e-9)
}

func TestTangentAtStartOfQuarterArcIsPerpendicularToRadius(t *testing.T) {
	arc := unitQuarterArc(t)
	tangent, err := TangentAt(arc, 0)
	require.NoError(t, err)
	assert.InDelta(t, 0, tangent.X, 1e-9)
	assert.InDelta(t, 1, tangent.Y, 1e-9)
}

func TestNormalOfPlanarArcPointsTowardCenter(t *testing.T) {
	arc := unitQuarterArc(t)
	n, err := NormalAt(arc, 0)
	require.NoError(t, err)
	assert.InDelta(t, -1, n.X, 1e-9)
	assert.InDelta(t, 0, n.Y, 1e-9)
}

func TestLengthOfQuarterCircleIsHalfPi(t *testing.T) {
	arc := unitQuarterArc(t)
	length, err := Length(arc)
	require.NoError(t, err)
	assert.InDelta(t, math.Pi/2, length, 1e-6)
}

func TestLengthOfLineSegmentIsEuclideanDistance(t *testing.T) {
	line, err := curves.NewLine(newBase(), curves.LineSegment, numerics.V3(0, 0, 0), numerics.V3(3, 4, 0))
	require.NoError(t, err)
	length, err := Length(line)
	require.NoError(t, err)
	assert.InDelta(t, 5, length, 1e-9)
}

func TestAdaptiveDiscretizeIncludesBothEndpoints(t *testing.T) {
	arc := unitQuarterArc(t)
	points, err := AdaptiveDiscretize(arc, 1e-4)
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(points), 2)
	assert.InDelta(t, 1, points[0].X, 1e-9)
	assert.InDelta(t, 0, points[0].Y, 1e-9)
	assert.InDelta(t, 0, points[len(points)-1].X, 1e-9)
	assert.InDelta(t, 1, points[len(points)-1].Y, 1e-9)
}

func TestAdaptiveDiscretizeRespectsChordTolerance(t *testing.T) {
	arc := unitQuarterArc(t)
	// A coarser tolerance should need no more points than a finer one.
	coarse, err := AdaptiveDiscretize(arc, 1e-2)
	require.NoError(t, err)
	fine, err := AdaptiveDiscretize(arc, 1e-6)
	require.NoError(t, err)
	assert.LessOrEqual(t, len(coarse), len(fine))
}

func TestBoundingBoxOfQuarterArcContainsSampledPoints(t *testing.T) {
	arc := unitQuarterArc(t)
	box, err := BoundingBox(arc, 1e-4)
	require.NoError(t, err)
	p, err := PointAt(arc, math.Pi/4)
	require.NoError(t, err)
	assert.True(t, box.ContainsPoint(p))
}

func TestPointLineDistanceOfPerpendicularOffset(t *testing.T) {
	d := PointLineDistance(numerics.V3(0, 5, 0), numerics.V3(0, 0, 0), numerics.V3(1, 0, 0))
	assert.InDelta(t, 5, d, 1e-9)
}

func TestConicArcEllipseMatchesUnequalSemiAxes(t *testing.T) {
	rx, ry := 2.0, 1.0
	a, c := 1/(rx*rx), 1/(ry*ry)
	arc, err := curves.NewConicArc(newBase(), curves.ConicEllipse, a, 0, c, 0, 0, -1, 0, numerics.V2(rx, 0), numerics.V2(0, ry))
	require.NoError(t, err)

	p, err := PointAt(arc, math.Pi/4)
	require.NoError(t, err)
	assert.InDelta(t, rx*math.Cos(math.Pi/4), p.X, 1e-9)
	assert.InDelta(t, ry*math.Sin(math.Pi/4), p.Y, 1e-9)
}

func TestConicArcParabolaPointsLieOnTheParabola(t *testing.T) {
	// A=1, E=-1, rest zero: A*x^2 + E*y = 0 -> y = x^2.
	arc, err := curves.NewConicArc(newBase(), curves.ConicParabola, 1, 0, 0, 0, -1, 0, 0, numerics.V2(-1, 1), numerics.V2(1, 1))
	require.NoError(t, err)

	p, err := PointAt(arc, 0.5)
	require.NoError(t, err)
	assert.InDelta(t, 0.5, p.X, 1e-9)
	assert.InDelta(t, 0.25, p.Y, 1e-9)
}

func TestConicArcHyperbolaPointsLieOnTheHyperbola(t *testing.T) {
	// A=1, C=-1, F=-1, rest zero: x^2 - y^2 = 1.
	arc, err := curves.NewConicArc(newBase(), curves.ConicHyperbola, 1, 0, -1, 0, 0, -1, 0, numerics.V2(1, 0), numerics.V2(math.Sqrt2, 1))
	require.NoError(t, err)

	lo, hi := arc.ParameterRange()
	assert.InDelta(t, 0, lo, 1e-9)
	assert.InDelta(t, math.Pi/4, hi, 1e-9)

	p, err := PointAt(arc, hi)
	require.NoError(t, err)
	assert.InDelta(t, math.Sqrt2, p.X, 1e-9)
	assert.InDelta(t, 1, p.Y, 1e-9)
}
