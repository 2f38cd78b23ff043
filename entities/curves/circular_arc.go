package curves

import (
	"math"

	"github.com/habami/igesio-go/entities"
	"github.com/habami/igesio-go/internal/identity"
	"github.com/habami/igesio-go/internal/numerics"
)

// CircularArc is the type-100 entity: a planar circular arc in the plane
// z=Zt, given by its center and start/terminate points (spec.md §4.5).
type CircularArc struct {
	entities.Base
	Zt           float64
	Center       numerics.Vector2d
	Start        numerics.Vector2d
	Terminate    numerics.Vector2d
	radius       float64
	startAngle   float64
	endAngle     float64 // > startAngle; startAngle+2*pi if closed
}

// NewCircularArc validates start/terminate lie on a common circle about
// center and derives start/end angle such that startAngle in [0,2*pi).
func NewCircularArc(base entities.Base, zt float64, center, start, terminate numerics.Vector2d) (*CircularArc, error) {
	rs := numerics.V2(start.X-center.X, start.Y-center.Y)
	rt := numerics.V2(terminate.X-center.X, terminate.Y-center.Y)
	radius := rs.X*rs.X + rs.Y*rs.Y
	radius = math.Sqrt(radius)
	radiusT := math.Sqrt(rt.X*rt.X + rt.Y*rt.Y)
	if math.Abs(radius-radiusT) > 1e-6*math.Max(1, radius) {
		return nil, entities.DataFormatError{Entity: "CircularArc", Reason: "start and terminate must be equidistant from center"}
	}
	if radius < numerics.AbsTolerance {
		return nil, entities.DataFormatError{Entity: "CircularArc", Reason: "radius must be positive"}
	}

	startAngle := numerics.WrapAngle(math.Atan2(rs.Y, rs.X))
	endAngle := math.Atan2(rt.Y, rt.X)
	// normalize into (startAngle, startAngle+2*pi]
	for endAngle <= startAngle {
		endAngle += 2 * math.Pi
	}
	if start == terminate {
		endAngle = startAngle + 2*math.Pi
	}

	return &CircularArc{
		Base: base, Zt: zt, Center: center, Start: start, Terminate: terminate,
		radius: radius, startAngle: startAngle, endAngle: endAngle,
	}, nil
}

func (a *CircularArc) Kind() entities.Kind { return entities.KindCircularArc }

func (a *CircularArc) PlaneZ() float64 { return a.Zt }

func (a *CircularArc) ParameterRange() (float64, float64) { return a.startAngle, a.endAngle }

func (a *CircularArc) IsClosed() bool {
	return math.Abs(a.endAngle-a.startAngle-2*math.Pi) < 1e-9
}

// Derivatives returns C^(k)(t) = center (k=0) + r*(cos(t+k*pi/2), sin(t+k*pi/2), 0)
// (spec.md §4.5).
func (a *CircularArc) Derivatives(t float64, n int) ([]entities.Vec3, error) {
	lo, hi := a.ParameterRange()
	if t < lo-1e-9 || t > hi+1e-9 {
		return nil, entities.OutOfRangeError{Reason: "parameter outside arc's range"}
	}
	if n < 0 {
		return nil, entities.InvalidArgumentError{Reason: "derivative order must be non-negative"}
	}
	out := make([]entities.Vec3, n+1)
	for k := 0; k <= n; k++ {
		angle := t + float64(k)*math.Pi/2
		x := a.radius * math.Cos(angle)
		y := a.radius * math.Sin(angle)
		v := numerics.V3(x, y, 0)
		if k == 0 {
			v = numerics.V3(a.Center.X+x, a.Center.Y+y, a.Zt)
		}
		out[k] = v
	}
	return out, nil
}

func (a *CircularArc) TransformationRef() *entities.ReferenceField {
	return &a.DE().TransformationMatrix
}

func (a *CircularArc) ChildIDs() []identity.ObjectID { return a.BaseChildIDs(nil) }

func (a *CircularArc) UnresolvedReferences() []identity.ObjectID {
	return a.BaseUnresolvedReferences(nil)
}

func (a *CircularArc) SetUnresolvedReference(candidate entities.Entity) bool {
	return a.Base.SetUnresolvedReference(candidate)
}

func (a *CircularArc) UnresolveReference(removed identity.ObjectID) bool {
	return a.Base.UnresolveReference(removed)
}

func (a *CircularArc) Validate() entities.ValidationResult {
	return a.ValidateDE()
}
