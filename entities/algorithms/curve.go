package algorithms

import (
	"math"

	"github.com/habami/igesio-go/entities"
	"github.com/habami/igesio-go/internal/bbox"
	"github.com/habami/igesio-go/internal/numerics"
)

// PointAt returns C(t) (spec.md §3 "Curve ... convenience readers").
func PointAt(c entities.Curve, t float64) (numerics.Vector3d, error) {
	d, err := c.Derivatives(t, 0)
	if err != nil {
		return numerics.Vector3d{}, err
	}
	return d[0], nil
}

// TangentAt returns the unit tangent C'(t)/|C'(t)|, or the zero vector if
// the curve's speed at t is (within tolerance) zero.
func TangentAt(c entities.Curve, t float64) (numerics.Vector3d, error) {
	d, err := c.Derivatives(t, 1)
	if err != nil {
		return numerics.Vector3d{}, err
	}
	tangent, ok := d[1].Normalized()
	if !ok {
		return numerics.Vector3d{}, nil
	}
	return tangent, nil
}

// NormalAt returns the unit principal normal at t. For a entities.Curve2D,
// the normal is the in-plane rotation of the tangent by +90°; for a
// general 3D curve it is the component of C''(t) orthogonal to the
// tangent, normalized. Returns the zero vector where undefined (zero
// speed, or zero curvature).
func NormalAt(c entities.Curve, t float64) (numerics.Vector3d, error) {
	d, err := c.Derivatives(t, 2)
	if err != nil {
		return numerics.Vector3d{}, err
	}
	tangent, ok := d[1].Normalized()
	if !ok {
		return numerics.Vector3d{}, nil
	}

	if _, is2D := c.(entities.Curve2D); is2D {
		return numerics.V3(-tangent.Y, tangent.X, 0), nil
	}

	accel := d[2]
	perp := accel.Sub(tangent.Scale(accel.Dot(tangent)))
	normal, ok := perp.Normalized()
	if !ok {
		return numerics.Vector3d{}, nil
	}
	return normal, nil
}

// BinormalAt returns the unit binormal tangent×normal, zero where either
// is undefined (e.g. at zero speed, or where the curvature vanishes as on a
// straight line). For a curved planar curve it is the plane's unit normal.
func BinormalAt(c entities.Curve, t float64) (numerics.Vector3d, error) {
	tangent, err := TangentAt(c, t)
	if err != nil {
		return numerics.Vector3d{}, err
	}
	normal, err := NormalAt(c, t)
	if err != nil {
		return numerics.Vector3d{}, err
	}
	binormal, ok := tangent.Cross(normal).Normalized()
	if !ok {
		return numerics.Vector3d{}, nil
	}
	return binormal, nil
}

// Curvature returns |C'(t)×C''(t)| / |C'(t)|^3, 0 where the speed is
// (within tolerance) zero.
func Curvature(c entities.Curve, t float64) (float64, error) {
	d, err := c.Derivatives(t, 2)
	if err != nil {
		return 0, err
	}
	speed := d[1].Norm()
	if speed < numerics.AbsTolerance {
		return 0, nil
	}
	return d[1].Cross(d[2]).Norm() / (speed * speed * speed), nil
}

// Length returns the arc length of c over its full parameter range
// (spec.md §2 "curve length"). Returns entities.DataFormatError if the
// range is unbounded.
func Length(c entities.Curve) (float64, error) {
	lo, hi := c.ParameterRange()
	return LengthBetween(c, lo, hi)
}

// LengthBetween returns the arc length of c over [a,b] via adaptive
// Simpson quadrature of the speed function |C'(t)|.
func LengthBetween(c entities.Curve, a, b float64) (float64, error) {
	if math.IsInf(a, 0) || math.IsInf(b, 0) {
		return 0, entities.DataFormatError{Entity: "algorithms.LengthBetween", Reason: "cannot integrate over an unbounded parameter range"}
	}
	if a == b {
		return 0, nil
	}
	lo, hi := a, b
	sign := 1.0
	if lo > hi {
		lo, hi = hi, lo
		sign = -1
	}

	var evalErr error
	speed := func(t float64) float64 {
		d, err := c.Derivatives(t, 1)
		if err != nil {
			evalErr = err
			return 0
		}
		return d[1].Norm()
	}
	length := adaptiveSimpson(speed, lo, hi, defaultLengthTolerance, maxSubdivisionDepth)
	if evalErr != nil {
		return 0, evalErr
	}
	return sign * length, nil
}

// initialSubdivisions returns the coarse subdivision count adaptive
// discretization starts from before refining: 10 in general, 3 for a
// closed curve (spec.md §5).
func initialSubdivisions(c entities.Curve) int {
	if c.IsClosed() {
		return 3
	}
	return 10
}

// Discretize samples c at n+1 evenly spaced parameter values across its
// full range, ignoring local curvature (a uniform sampling, as opposed to
// AdaptiveDiscretize's tolerance-driven refinement).
func Discretize(c entities.Curve, n int) ([]numerics.Vector3d, error) {
	lo, hi := c.ParameterRange()
	if math.IsInf(lo, 0) || math.IsInf(hi, 0) {
		return nil, entities.DataFormatError{Entity: "algorithms.Discretize", Reason: "cannot sample an unbounded parameter range"}
	}
	ts := linspace(lo, hi, n)
	points := make([]numerics.Vector3d, len(ts))
	for i, t := range ts {
		p, err := PointAt(c, t)
		if err != nil {
			return nil, err
		}
		points[i] = p
	}
	return points, nil
}

// AdaptiveDiscretize samples c finely enough that the chord between any
// two adjacent returned points deviates from the true curve by no more
// than tol, starting from the initial coarse subdivision of
// initialSubdivisions and refining each segment until its midpoint lies
// within tol of the chord or maxSubdivisionDepth is reached (spec.md §5).
func AdaptiveDiscretize(c entities.Curve, tol float64) ([]numerics.Vector3d, error) {
	lo, hi := c.ParameterRange()
	if math.IsInf(lo, 0) || math.IsInf(hi, 0) {
		return nil, entities.DataFormatError{Entity: "algorithms.AdaptiveDiscretize", Reason: "cannot discretize an unbounded parameter range"}
	}

	n := initialSubdivisions(c)
	ts := linspace(lo, hi, n)

	points := make([]numerics.Vector3d, 0, n+1)
	for i := 0; i < n; i++ {
		seg, err := subdivideSegment(c, ts[i], ts[i+1], tol, maxSubdivisionDepth)
		if err != nil {
			return nil, err
		}
		if i > 0 {
			seg = seg[1:] // drop the duplicate shared endpoint
		}
		points = append(points, seg...)
	}
	return points, nil
}

// subdivideSegment recursively bisects [t0,t1], stopping once the curve's
// midpoint lies within tol of the chord p0-p1 or depth is exhausted, and
// returns the ordered boundary points of the resulting partition.
func subdivideSegment(c entities.Curve, t0, t1, tol float64, depth int) ([]numerics.Vector3d, error) {
	p0, err := PointAt(c, t0)
	if err != nil {
		return nil, err
	}
	p1, err := PointAt(c, t1)
	if err != nil {
		return nil, err
	}
	if depth <= 0 {
		return []numerics.Vector3d{p0, p1}, nil
	}

	tm := (t0 + t1) / 2
	pm, err := PointAt(c, tm)
	if err != nil {
		return nil, err
	}
	if PointLineDistance(pm, p0, p1) <= tol {
		return []numerics.Vector3d{p0, p1}, nil
	}

	left, err := subdivideSegment(c, t0, tm, tol, depth-1)
	if err != nil {
		return nil, err
	}
	right, err := subdivideSegment(c, tm, t1, tol, depth-1)
	if err != nil {
		return nil, err
	}
	return append(left, right[1:]...), nil
}

// BoundingBox returns the axis-aligned box spanning an adaptively
// discretized sample of c (spec.md §2 row: curve algorithms feed the
// bounding-box layer's per-entity boxes).
func BoundingBox(c entities.Curve, tol float64) (bbox.Box, error) {
	points, err := AdaptiveDiscretize(c, tol)
	if err != nil {
		return bbox.Box{}, err
	}
	return pointsBoundingBox(points)
}

func pointsBoundingBox(points []numerics.Vector3d) (bbox.Box, error) {
	if len(points) == 0 {
		return bbox.Box{}, entities.DataFormatError{Entity: "algorithms.BoundingBox", Reason: "no points to bound"}
	}
	lo, hi := points[0], points[0]
	for _, p := range points[1:] {
		lo = numerics.V3(math.Min(lo.X, p.X), math.Min(lo.Y, p.Y), math.Min(lo.Z, p.Z))
		hi = numerics.V3(math.Max(hi.X, p.X), math.Max(hi.Y, p.Y), math.Max(hi.Z, p.Z))
	}
	if lo.EqualAbs(hi, 0) {
		return bbox.Box{}, entities.DataFormatError{Entity: "algorithms.BoundingBox", Reason: "curve sample is a single point"}
	}
	b, err := bbox.FromCorners(lo, hi)
	if err != nil {
		return bbox.Box{}, err
	}
	return b, nil
}
