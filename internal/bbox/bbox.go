// Package bbox implements the oriented bounding-box algebra of spec.md §3/§4.2:
// a box spanned by an orthonormal frame {D0, D1, D2} from a control point P0,
// with each axis independently finite (segment), half-infinite (ray), or
// bi-infinite (line).
//
// Grounded on igesio's numerics/bounding_box.h (BoundingBox), adapted to Go's
// explicit-error-return idiom in place of C++ exceptions, following the
// teacher's ErrXxx struct-per-failure style (internal/parser/errors.go).
package bbox

import (
	"fmt"
	"math"

	"github.com/habami/igesio-go/internal/numerics"
)

// AxisKind is the extent kind of one box axis.
type AxisKind int

const (
	// Segment is a finite interval [P0, P0 + s·D].
	Segment AxisKind = iota
	// Ray is half-infinite along +D from P0.
	Ray
	// Line is bi-infinite along D through P0.
	Line
)

func (k AxisKind) String() string {
	switch k {
	case Segment:
		return "segment"
	case Ray:
		return "ray"
	case Line:
		return "line"
	default:
		return "unknown"
	}
}

// lineSentinel is the internal encoding of a Line axis's signed size
// (spec.md §3: "stored as −∞ internally, reported as +∞ to callers").
var lineSentinel = math.Inf(-1)

// ErrInvalidBox reports a constructor/setter invariant violation
// (spec.md §4.2 "Setters validate invariants and fail").
type ErrInvalidBox struct {
	Reason string
}

func (e ErrInvalidBox) Error() string { return "bbox: invalid box: " + e.Reason }

// Box is an oriented bounding box: control point P0, orthonormal directions
// {D0, D1, D2} with D0×D1=D2, and per-axis signed sizes.
type Box struct {
	p0    numerics.Vector3d
	d     [3]numerics.Vector3d
	sizes [3]float64 // finite>0, +Inf (ray), or lineSentinel (line); s2 may be 0 for a 2D box
}

// Empty returns the zero-value box: a degenerate, zero-sized box at the
// origin with the world axes as its frame.
func Empty() Box {
	return Box{d: [3]numerics.Vector3d{{X: 1}, {Y: 1}, {Z: 1}}}
}

// New builds a 3D box from a control point, an orthonormal right-handed
// frame, per-axis sizes, and a per-axis is-line flag. A size of +Inf with
// is-line false is a Ray; with is-line true it denotes a Line (the signed
// size is then stored as -Inf internally).
func New(p0 numerics.Vector3d, d [3]numerics.Vector3d, sizes [3]float64, isLine [3]bool) (Box, error) {
	if !p0.IsFinite() {
		return Box{}, ErrInvalidBox{Reason: "control point must be finite"}
	}
	m := numerics.MatrixFromColumns(d[0], d[1], d[2])
	if !m.IsOrthonormal(1e-9) {
		return Box{}, ErrInvalidBox{Reason: "D0, D1, D2 must be unit and mutually orthogonal"}
	}
	if cross := d[0].Cross(d[1]); !cross.EqualAbs(d[2], 1e-9) {
		return Box{}, ErrInvalidBox{Reason: "D0×D1 must equal D2 (right-handed frame)"}
	}

	b := Box{p0: p0, d: d}
	for i := 0; i < 3; i++ {
		if err := b.setSize(i, sizes[i], isLine[i]); err != nil {
			return Box{}, err
		}
	}
	return b, nil
}

// NewAxisAligned builds a 3D box whose frame is the world axes, with P0 the
// "lower" corner and sizes extending in the +x/+y/+z directions.
func NewAxisAligned(p0 numerics.Vector3d, sizes [3]float64, isLine [3]bool) (Box, error) {
	d := [3]numerics.Vector3d{{X: 1}, {Y: 1}, {Z: 1}}
	return New(p0, d, sizes, isLine)
}

// New2D builds a 2D box (s2 == 0) from a control point, a 2D orthonormal
// frame {D0, D1}, and per-axis sizes/is-line flags. D2 is set to D0×D1.
func New2D(p0 numerics.Vector3d, d [2]numerics.Vector3d, sizes [2]float64, isLine [2]bool) (Box, error) {
	d2 := d[0].Cross(d[1])
	return New(p0, [3]numerics.Vector3d{d[0], d[1], d2}, [3]float64{sizes[0], sizes[1], 0}, [3]bool{isLine[0], isLine[1], false})
}

// FromCorners builds a box containing both given points, auto-detecting
// 1D/2D/3D degeneracy the way igesio's two-point constructor does: an axis
// on which the corners agree becomes the zero-size D2 axis (2D case) by
// picking D0,D1 as the other two world axes in D0×D1=D2 order.
func FromCorners(p1, p2 numerics.Vector3d) (Box, error) {
	if !p1.IsFinite() || !p2.IsFinite() {
		return Box{}, ErrInvalidBox{Reason: "corners must be finite"}
	}
	if p1.EqualAbs(p2, 0) {
		return Box{}, ErrInvalidBox{Reason: "corners must differ"}
	}

	lo := numerics.V3(math.Min(p1.X, p2.X), math.Min(p1.Y, p2.Y), math.Min(p1.Z, p2.Z))
	equalX := math.Abs(p1.X-p2.X) < 1e-12
	equalY := math.Abs(p1.Y-p2.Y) < 1e-12
	equalZ := math.Abs(p1.Z-p2.Z) < 1e-12

	ex := numerics.V3(1, 0, 0)
	ey := numerics.V3(0, 1, 0)
	ez := numerics.V3(0, 0, 1)

	switch {
	case equalX && equalY:
		// Only Z differs: a 1D box (segment) along the world Z axis.
		return New(lo, [3]numerics.Vector3d{ez, ex, ey}, [3]float64{math.Abs(p1.Z - p2.Z), 0, 0}, [3]bool{})
	case equalY && equalZ:
		// Only X differs: a 1D box along the world X axis.
		return New(lo, [3]numerics.Vector3d{ex, ey, ez}, [3]float64{math.Abs(p1.X - p2.X), 0, 0}, [3]bool{})
	case equalX && equalZ:
		// Only Y differs: a 1D box along the world Y axis.
		return New(lo, [3]numerics.Vector3d{ey, ez, ex}, [3]float64{math.Abs(p1.Y - p2.Y), 0, 0}, [3]bool{})
	case equalX:
		return New(lo, [3]numerics.Vector3d{ey, ez, ex}, [3]float64{math.Abs(p1.Y - p2.Y), math.Abs(p1.Z - p2.Z), 0}, [3]bool{})
	case equalY:
		return New(lo, [3]numerics.Vector3d{ez, ex, ey}, [3]float64{math.Abs(p1.Z - p2.Z), math.Abs(p1.X - p2.X), 0}, [3]bool{})
	case equalZ:
		return New(lo, [3]numerics.Vector3d{ex, ey, ez}, [3]float64{math.Abs(p1.X - p2.X), math.Abs(p1.Y - p2.Y), 0}, [3]bool{})
	default:
		return New(lo, [3]numerics.Vector3d{ex, ey, ez},
			[3]float64{math.Abs(p1.X - p2.X), math.Abs(p1.Y - p2.Y), math.Abs(p1.Z - p2.Z)}, [3]bool{})
	}
}

func (b *Box) setSize(i int, size float64, isLine bool) error {
	if size < 0 {
		return ErrInvalidBox{Reason: fmt.Sprintf("size[%d] must be non-negative", i)}
	}
	// s0 must always be positive: a box can't be degenerate on every axis.
	// s1 and s2 may be zero (a zero s2 makes a 2D box; s1 and s2 both zero
	// makes a 1D box — spec.md §4.2's "2 matching corners → 1D box" case).
	if i == 0 && size == 0 {
		return ErrInvalidBox{Reason: "size[0] must be positive"}
	}
	switch {
	case isLine:
		b.sizes[i] = lineSentinel
	default:
		b.sizes[i] = size
	}
	return nil
}

// Control returns P0.
func (b Box) Control() numerics.Vector3d { return b.p0 }

// Directions returns {D0, D1, D2}.
func (b Box) Directions() [3]numerics.Vector3d { return b.d }

// Sizes returns the per-axis reported size: a finite positive value for
// Segment, +Inf for Ray and Line alike (spec.md §3 table).
func (b Box) Sizes() [3]float64 {
	var s [3]float64
	for i := 0; i < 3; i++ {
		if math.IsInf(b.sizes[i], -1) {
			s[i] = math.Inf(1)
		} else {
			s[i] = b.sizes[i]
		}
	}
	return s
}

// AxisKind returns the extent kind of axis i.
func (b Box) AxisKind(i int) AxisKind {
	switch {
	case math.IsInf(b.sizes[i], -1):
		return Line
	case math.IsInf(b.sizes[i], 1):
		return Ray
	default:
		return Segment
	}
}

// Is2D reports whether the box is flat along D2 (s2 == 0).
func (b Box) Is2D() bool { return b.sizes[2] == 0 }

// Is1D reports whether the box is flat along both D1 and D2, i.e. a single
// segment/ray/line along D0.
func (b Box) Is1D() bool { return b.sizes[1] == 0 && b.sizes[2] == 0 }

// Is3D reports the negation of Is2D.
func (b Box) Is3D() bool { return !b.Is2D() }

// IsEmpty reports whether b is the degenerate zero-size box at the origin.
func (b Box) IsEmpty() bool {
	return b.sizes[0] == 0 && b.sizes[1] == 0 && b.sizes[2] == 0 && b.p0 == (numerics.Vector3d{})
}

// IsFinite reports whether every axis is a Segment.
func (b Box) IsFinite() bool {
	for i := 0; i < 3; i++ {
		if b.AxisKind(i) != Segment {
			return false
		}
	}
	return true
}

// worldToLocal returns the rotation matrix mapping world coordinates into
// the box's local frame: [D0 D1 D2]^-1, which for an orthonormal frame is
// just the transpose.
func (b Box) worldToLocal() numerics.Matrix3d {
	return numerics.MatrixFromColumns(b.d[0], b.d[1], b.d[2]).Transpose()
}

func (b Box) localToWorld() numerics.Matrix3d {
	return numerics.MatrixFromColumns(b.d[0], b.d[1], b.d[2])
}

func (b Box) toLocal(p numerics.Vector3d) numerics.Vector3d {
	return b.worldToLocal().Apply(p.Sub(b.p0))
}

func (b Box) toWorld(local numerics.Vector3d) numerics.Vector3d {
	return b.localToWorld().Apply(local).Add(b.p0)
}

// Translate shifts P0 by v, leaving D and sizes unchanged.
func (b Box) Translate(v numerics.Vector3d) (Box, error) {
	if !v.IsFinite() {
		return Box{}, ErrInvalidBox{Reason: "translation vector must be finite"}
	}
	nb := b
	nb.p0 = b.p0.Add(v)
	return nb, nil
}

// Rotate rotates the box's directions by r, leaving P0 in place (see
// RotateAbout to also move P0 about a center). r must be orthonormal with
// determinant +1.
func (b Box) Rotate(r numerics.Matrix3d) (Box, error) {
	return b.rotateAbout(r, nil)
}

// RotateAbout rotates the box's directions by r, and P0 about center.
func (b Box) RotateAbout(r numerics.Matrix3d, center numerics.Vector3d) (Box, error) {
	return b.rotateAbout(r, &center)
}

func (b Box) rotateAbout(r numerics.Matrix3d, center *numerics.Vector3d) (Box, error) {
	if !r.IsOrthonormal(1e-9) || math.Abs(r.Determinant()-1) > 1e-6 {
		return Box{}, ErrInvalidBox{Reason: "rotation matrix must be orthonormal with det=+1"}
	}
	if center != nil && !center.IsFinite() {
		return Box{}, ErrInvalidBox{Reason: "rotation center must be finite"}
	}

	nb := b
	for i := 0; i < 3; i++ {
		nb.d[i] = r.Apply(b.d[i])
	}
	if center != nil {
		nb.p0 = r.Apply(b.p0.Sub(*center)).Add(*center)
	}
	return nb, nil
}

// Transform rotates D by r, leaving P0 in place, then translates P0 by vec
// (rotating P0 about a center is left to the caller via RotateAbout); this
// mirrors
// BoundingBox::Transform(rot, vec) in igesio, which applies R to the frame
// and vec as a plain translation of P0.
func (b Box) Transform(r numerics.Matrix3d, vec numerics.Vector3d) (Box, error) {
	if !vec.IsFinite() {
		return Box{}, ErrInvalidBox{Reason: "translation vector must be finite"}
	}
	rotated, err := b.Rotate(r)
	if err != nil {
		return Box{}, err
	}
	return rotated.Translate(vec)
}
