// Package curves implements the concrete curve entity kinds of spec.md
// §4.5, each embedding entities.Base and implementing entities.Curve (and,
// where planar, entities.Curve2D).
package curves

import (
	"math"

	"github.com/habami/igesio-go/entities"
	"github.com/habami/igesio-go/internal/identity"
	"github.com/habami/igesio-go/internal/numerics"
)

// LineForm is the type-110 form-number discriminant.
type LineForm int

const (
	LineSegment   LineForm = 0
	LineRay       LineForm = 1
	LineBiInfinite LineForm = 2
)

// Line is the type-110 entity: two anchor points defining a segment, ray,
// or bi-infinite line (spec.md §4.5).
type Line struct {
	entities.Base
	Form LineForm
	P1   entities.Vec3
	P2   entities.Vec3
}

// NewLine validates and constructs a Line from its two anchor points.
func NewLine(base entities.Base, form LineForm, p1, p2 entities.Vec3) (*Line, error) {
	if !p1.IsFinite() || !p2.IsFinite() {
		return nil, entities.DataFormatError{Entity: "Line", Reason: "anchor points must be finite"}
	}
	if p1.EqualAbs(p2, numerics.AbsTolerance) {
		return nil, entities.DataFormatError{Entity: "Line", Reason: "anchor points must differ"}
	}
	return &Line{Base: base, Form: form, P1: p1, P2: p2}, nil
}

func (l *Line) Kind() entities.Kind { return entities.KindLine }

// ParameterRange returns [0,1] for a segment, [0,+Inf) for a ray, and
// (-Inf,+Inf) for a bi-infinite line (spec.md §4.5).
func (l *Line) ParameterRange() (float64, float64) {
	switch l.Form {
	case LineRay:
		return 0, math.Inf(1)
	case LineBiInfinite:
		return math.Inf(-1), math.Inf(1)
	default:
		return 0, 1
	}
}

func (l *Line) IsClosed() bool { return false }

// Derivatives returns C(t)=P1+t(P2-P1) and C'(t)=P2-P1; all higher orders
// vanish (spec.md §4.5).
func (l *Line) Derivatives(t float64, n int) ([]entities.Vec3, error) {
	lo, hi := l.ParameterRange()
	if t < lo || t > hi {
		return nil, entities.OutOfRangeError{Reason: "parameter outside line's range"}
	}
	if n < 0 {
		return nil, entities.InvalidArgumentError{Reason: "derivative order must be non-negative"}
	}
	dir := l.P2.Sub(l.P1)
	out := make([]entities.Vec3, n+1)
	out[0] = l.P1.Add(dir.Scale(t))
	if n >= 1 {
		out[1] = dir
	}
	// second and higher derivatives are zero (already zero-valued).
	return out, nil
}

// AnchorPoints returns the line's two defining points, for entities (such
// as SurfaceOfRevolution) that use a Line as an axis rather than a curve.
func (l *Line) AnchorPoints() (entities.Vec3, entities.Vec3) { return l.P1, l.P2 }

// Tangent returns the (unnormalized) direction P2-P1.
func (l *Line) Tangent() entities.Vec3 { return l.P2.Sub(l.P1) }

// Normal returns the tangent rotated 90 degrees within the defining
// XY-plane (spec.md §4.5).
func (l *Line) Normal() entities.Vec3 {
	t := l.Tangent()
	return numerics.V3(-t.Y, t.X, 0)
}

func (l *Line) TransformationRef() *entities.ReferenceField {
	return &l.DE().TransformationMatrix
}

func (l *Line) ChildIDs() []identity.ObjectID { return l.BaseChildIDs(nil) }

func (l *Line) UnresolvedReferences() []identity.ObjectID { return l.BaseUnresolvedReferences(nil) }

func (l *Line) SetUnresolvedReference(candidate entities.Entity) bool {
	return l.Base.SetUnresolvedReference(candidate)
}

func (l *Line) UnresolveReference(removed identity.ObjectID) bool {
	return l.Base.UnresolveReference(removed)
}

func (l *Line) Validate() entities.ValidationResult {
	return l.ValidateDE()
}
