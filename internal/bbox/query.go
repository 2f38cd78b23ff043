package bbox

import (
	"math"

	"github.com/habami/igesio-go/internal/numerics"
)

// ContainsPoint reports whether point lies within b, treating a Line axis
// as (−∞, +∞) for that component (spec.md §4.2).
func (b Box) ContainsPoint(point numerics.Vector3d) bool {
	local := b.toLocal(point)
	return b.containsLocal(local)
}

func (b Box) containsLocal(local numerics.Vector3d) bool {
	coords := [3]float64{local.X, local.Y, local.Z}
	for i := 0; i < 3; i++ {
		switch b.AxisKind(i) {
		case Line:
			continue
		case Ray:
			if coords[i] < -1e-9 {
				return false
			}
		case Segment:
			if coords[i] < -1e-9 || coords[i] > b.sizes[i]+1e-9 {
				return false
			}
		}
	}
	return true
}

// ContainsBox reports whether b fully contains other: every vertex of
// other lies within b. A box with any Ray or Line axis has no finite
// vertices and is never reported as contained.
func (b Box) ContainsBox(other Box) bool {
	verts := other.FiniteVertices()
	if len(verts) == 0 {
		// other is unbounded with no finite vertex to check; it is
		// conservatively reported as not contained, whatever b's extent.
		return other.IsFinite()
	}
	for _, v := range verts {
		if !b.ContainsPoint(v) {
			return false
		}
	}
	return true
}

// Vertices returns the box's corner points: 4 for a 2D box, 8 for a 3D box.
// A Line axis contributes ±∞ for that component; NaN arising from ∞·0 is
// normalized to 0 (spec.md §4.2).
func (b Box) Vertices() []numerics.Vector3d {
	return b.vertices(false)
}

// FiniteVertices returns the box's corner points, or nil if any of its axes
// is a Ray or Line.
func (b Box) FiniteVertices() []numerics.Vector3d {
	return b.vertices(true)
}

func (b Box) vertices(finiteOnly bool) []numerics.Vector3d {
	axisCount := 3
	if b.Is2D() {
		axisCount = 2
	}

	type coordSet struct {
		lo, hi float64
		finite bool
	}
	sets := make([]coordSet, axisCount)
	for i := 0; i < axisCount; i++ {
		switch b.AxisKind(i) {
		case Segment:
			sets[i] = coordSet{lo: 0, hi: b.sizes[i], finite: true}
		case Ray:
			sets[i] = coordSet{lo: 0, hi: math.Inf(1), finite: false}
		case Line:
			sets[i] = coordSet{lo: math.Inf(-1), hi: math.Inf(1), finite: false}
		}
	}

	if finiteOnly {
		for _, s := range sets {
			if !s.finite {
				return nil
			}
		}
	}

	n := 1 << axisCount
	out := make([]numerics.Vector3d, 0, n)
	for mask := 0; mask < n; mask++ {
		local := numerics.Vector3d{}
		coords := [3]float64{}
		for i := 0; i < axisCount; i++ {
			v := sets[i].lo
			if mask&(1<<i) != 0 {
				v = sets[i].hi
			}
			coords[i] = v
		}
		local.X, local.Y, local.Z = coords[0], coords[1], coords[2]
		world := b.toWorld(local)
		out = append(out, normalizeNaN(world))
	}
	return out
}

func normalizeNaN(v numerics.Vector3d) numerics.Vector3d {
	fix := func(x float64) float64 {
		if math.IsNaN(x) {
			return 0
		}
		return x
	}
	return numerics.V3(fix(v.X), fix(v.Y), fix(v.Z))
}

// ErrDegenerateSegment is returned by Intersects when start equals end.
type ErrDegenerateSegment struct{}

func (ErrDegenerateSegment) Error() string { return "bbox: start and end must differ" }

// Intersects reports whether the line/ray/segment from start to end (per
// kind) intersects b, using the slab method in local coordinates (spec.md
// §4.2). A fully-contained segment/ray also reports true.
func (b Box) Intersects(start, end numerics.Vector3d, kind AxisKind) (bool, error) {
	if !start.IsFinite() || !end.IsFinite() {
		return false, ErrInvalidBox{Reason: "start/end must be finite"}
	}
	if start.EqualAbs(end, 0) {
		return false, ErrDegenerateSegment{}
	}

	ls := b.toLocal(start)
	le := b.toLocal(end)
	dir := le.Sub(ls)

	tMin, tMax := rangeFor(kind)

	lsC := [3]float64{ls.X, ls.Y, ls.Z}
	dirC := [3]float64{dir.X, dir.Y, dir.Z}

	for i := 0; i < 3; i++ {
		axisKind := b.AxisKind(i)
		if axisKind == Line {
			continue // no constraint on this axis
		}

		lo, hi := 0.0, b.sizes[i]
		if axisKind == Ray {
			hi = math.Inf(1)
		}

		if math.Abs(dirC[i]) < 1e-12 {
			// Parallel to the slab: must already lie within it.
			if lsC[i] < lo-1e-9 || lsC[i] > hi+1e-9 {
				return false, nil
			}
			continue
		}

		t1 := (lo - lsC[i]) / dirC[i]
		t2 := (hi - lsC[i]) / dirC[i]
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		if t1 > tMin {
			tMin = t1
		}
		if t2 < tMax {
			tMax = t2
		}
		if tMin > tMax {
			return false, nil
		}
	}

	return tMin <= tMax, nil
}

func rangeFor(kind AxisKind) (float64, float64) {
	switch kind {
	case Segment:
		return 0, 1
	case Ray:
		return 0, math.Inf(1)
	default: // Line
		return math.Inf(-1), math.Inf(1)
	}
}

// DistanceTo returns the shortest distance from point to the box (0 if
// point lies within it).
func (b Box) DistanceTo(point numerics.Vector3d) float64 {
	local := b.toLocal(point)
	coords := [3]float64{local.X, local.Y, local.Z}
	var sumSq float64
	for i := 0; i < 3; i++ {
		lo, hi := 0.0, b.sizes[i]
		switch b.AxisKind(i) {
		case Line:
			continue
		case Ray:
			hi = math.Inf(1)
		}
		c := coords[i]
		var d float64
		switch {
		case c < lo:
			d = lo - c
		case c > hi:
			d = c - hi
		default:
			d = 0
		}
		sumSq += d * d
	}
	return math.Sqrt(sumSq)
}

// ExpandToInclude grows b to the minimum box, along the same directions,
// that contains both b and other. Fails if doing so without changing a
// direction is impossible (spec.md §4.2).
func (b *Box) ExpandToInclude(other Box) error {
	verts := other.Vertices()
	if len(verts) == 0 {
		return ErrInvalidBox{Reason: "cannot expand to include a boxless value"}
	}

	mins := [3]float64{0, 0, 0}
	maxs := [3]float64{b.sizes[0], b.sizes[1], b.sizes[2]}
	if b.IsEmpty() {
		mins = [3]float64{math.Inf(1), math.Inf(1), math.Inf(1)}
		maxs = [3]float64{math.Inf(-1), math.Inf(-1), math.Inf(-1)}
	}

	for _, v := range verts {
		local := b.toLocal(v)
		coords := [3]float64{local.X, local.Y, local.Z}
		for i := 0; i < 3; i++ {
			if coords[i] < mins[i] {
				mins[i] = coords[i]
			}
			if coords[i] > maxs[i] {
				maxs[i] = coords[i]
			}
		}
	}

	for i := 0; i < 3; i++ {
		if mins[i] < -1e-6 && b.AxisKind(i) == Segment {
			return ErrInvalidBox{Reason: "expansion would require reversing a direction"}
		}
	}

	shift := numerics.Vector3d{}
	shiftCoords := [3]float64{}
	for i := 0; i < 3; i++ {
		if math.IsInf(mins[i], 0) || math.IsInf(mins[i], -1) {
			continue
		}
		shiftCoords[i] = mins[i]
	}
	shift.X, shift.Y, shift.Z = shiftCoords[0], shiftCoords[1], shiftCoords[2]
	b.p0 = b.toWorld(shift)

	for i := 0; i < 3; i++ {
		if b.AxisKind(i) != Segment {
			continue
		}
		newSize := maxs[i] - mins[i]
		if newSize < 0 {
			newSize = 0
		}
		if i < 2 && newSize == 0 {
			newSize = b.sizes[i]
		}
		b.sizes[i] = newSize
	}
	return nil
}
