package algorithms

import "github.com/habami/igesio-go/internal/numerics"

// PointLineDistance returns the shortest distance from p to the infinite
// line through a and b (spec.md §2's "point-line distance" generic
// algorithm). If a and b coincide, the distance to the point a is
// returned instead.
func PointLineDistance(p, a, b numerics.Vector3d) float64 {
	dir := b.Sub(a)
	length := dir.Norm()
	if length < numerics.AbsTolerance {
		return p.Sub(a).Norm()
	}
	unit := dir.Scale(1 / length)
	toPoint := p.Sub(a)
	along := toPoint.Dot(unit)
	perp := toPoint.Sub(unit.Scale(along))
	return perp.Norm()
}

// PointSegmentDistance returns the shortest distance from p to the finite
// segment [a,b], clamping the projection to the segment's extent.
func PointSegmentDistance(p, a, b numerics.Vector3d) float64 {
	dir := b.Sub(a)
	length2 := dir.Dot(dir)
	if length2 < numerics.AbsTolerance*numerics.AbsTolerance {
		return p.Sub(a).Norm()
	}
	t := p.Sub(a).Dot(dir) / length2
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	closest := a.Add(dir.Scale(t))
	return p.Sub(closest).Norm()
}
