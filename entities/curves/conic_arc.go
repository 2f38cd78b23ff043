package curves

import (
	"math"

	"github.com/habami/igesio-go/entities"
	"github.com/habami/igesio-go/internal/identity"
	"github.com/habami/igesio-go/internal/numerics"
)

// ConicForm is the type-104 form-number discriminant.
type ConicForm int

const (
	ConicEllipse   ConicForm = 1
	ConicHyperbola ConicForm = 2
	ConicParabola  ConicForm = 3
)

// ConicArc is the type-104 entity: an arc of the implicit quadratic
// Ax^2+Bxy+Cy^2+Dx+Ey+F=0 in the plane z=Zt, between Start and End
// (spec.md §4.5).
type ConicArc struct {
	entities.Base
	Form             ConicForm
	A, B, C, D, E, F float64
	Zt               float64
	Start, End       numerics.Vector2d
}

// q2 classifies the conic kind: >0 ellipse, =0 parabola, <0 hyperbola.
func (c *ConicArc) q2() float64 { return c.A*c.C - c.B*c.B/4 }

func residual(c *ConicArc, p numerics.Vector2d) float64 {
	return c.A*p.X*p.X + c.B*p.X*p.Y + c.C*p.Y*p.Y + c.D*p.X + c.E*p.Y + c.F
}

// NewConicArc validates the form number against the implicit coefficients
// and that Start/End lie on the conic (spec.md §4.5).
func NewConicArc(base entities.Base, form ConicForm, a, b, cc, d, e, f, zt float64, start, end numerics.Vector2d) (*ConicArc, error) {
	arc := &ConicArc{Base: base, Form: form, A: a, B: b, C: cc, D: d, E: e, F: f, Zt: zt, Start: start, End: end}

	q2 := arc.q2()
	switch {
	case q2 > numerics.AbsTolerance && form != ConicEllipse:
		return nil, entities.DataFormatError{Entity: "ConicArc", Reason: "coefficients describe an ellipse but form number disagrees"}
	case math.Abs(q2) <= numerics.AbsTolerance && form != ConicParabola:
		return nil, entities.DataFormatError{Entity: "ConicArc", Reason: "coefficients describe a parabola but form number disagrees"}
	case q2 < -numerics.AbsTolerance && form != ConicHyperbola:
		return nil, entities.DataFormatError{Entity: "ConicArc", Reason: "coefficients describe a hyperbola but form number disagrees"}
	}

	// q1 = 0 (fully degenerate conic matrix) is rejected (spec.md §4.5).
	q1 := a*cc*f + b*d*e/4 - a*e*e/4 - cc*d*d/4 - f*b*b/4
	if math.Abs(q1) < numerics.AbsTolerance {
		return nil, entities.DataFormatError{Entity: "ConicArc", Reason: "degenerate conic (q1=0) is rejected"}
	}

	tol := 1e-6
	if math.Abs(residual(arc, start)) > tol || math.Abs(residual(arc, end)) > tol {
		return nil, entities.DataFormatError{Entity: "ConicArc", Reason: "start/end must lie on the conic"}
	}

	return arc, nil
}

func (c *ConicArc) Kind() entities.Kind  { return entities.KindConicArc }
func (c *ConicArc) PlaneZ() float64      { return c.Zt }

// ellipseRadii solves the semi-axes from the implicit form. IGES 5.3 always
// places a conic arc's ellipse at the origin of its own definition space
// (B=D=E=0 for the ellipse case), so this is exact rather than an
// approximation (original_source/src/entities/curves/conic_arc.cpp's
// EllipseRadii).
func (c *ConicArc) ellipseRadii() (rx, ry float64) {
	return math.Sqrt(-c.F / c.A), math.Sqrt(-c.F / c.C)
}

// angleAt returns the angular parameter of p on the ellipse, accounting for
// its (possibly unequal) semi-axes.
func (c *ConicArc) angleAt(p numerics.Vector2d) float64 {
	rx, ry := c.ellipseRadii()
	return math.Atan2(p.Y/ry, p.X/rx)
}

// regularizeAngularRange normalizes an ellipse's start angle into [0, 2π)
// and advances the end angle so the arc runs counterclockwise from start to
// end (conic_arc.cpp's RegularizeParameterRange).
func regularizeAngularRange(s, e float64) (float64, float64) {
	if s < 0 {
		s += 2 * math.Pi
	}
	if e <= s {
		e += 2 * math.Pi
	}
	return s, e
}

func (c *ConicArc) IsClosed() bool {
	if c.Form != ConicEllipse {
		return false
	}
	return c.Start.To3().EqualAbs(c.End.To3(), numerics.AbsTolerance)
}

// ParameterRange reports the angular range for ellipses, the signed
// axis-aligned coordinate range for parabolas, and the atan-based range for
// hyperbolas (conic_arc.cpp's GetParameterRange; spec.md §4.5).
func (c *ConicArc) ParameterRange() (float64, float64) {
	switch c.Form {
	case ConicEllipse:
		s, e := regularizeAngularRange(c.angleAt(c.Start), c.angleAt(c.End))
		if c.IsClosed() {
			e = s + 2*math.Pi
		}
		return s, e
	case ConicParabola:
		xs, ys, xe, ye := c.Start.X, c.Start.Y, c.End.X, c.End.Y
		switch {
		case !numerics.EqualAbs(c.A, 0, numerics.AbsTolerance) && !numerics.EqualAbs(c.E, 0, numerics.AbsTolerance):
			if xs < xe {
				return xs, xe
			}
			return -xs, -xe
		case !numerics.EqualAbs(c.C, 0, numerics.AbsTolerance) && !numerics.EqualAbs(c.D, 0, numerics.AbsTolerance):
			if ys < ye {
				return ys, ye
			}
			return -ys, -ye
		default:
			return 0, 0
		}
	case ConicHyperbola:
		xs, ys, xe, ye := c.Start.X, c.Start.Y, c.End.X, c.End.Y
		switch {
		case c.F*c.A < 0 && c.F*c.C > 0: // X-axis is the transverse axis
			ts := math.Atan(ys * math.Sqrt(c.C/c.F))
			te := math.Atan(ye * math.Sqrt(c.C/c.F))
			if ts < te {
				return ts, te
			}
			return -ts, -te
		case c.F*c.A > 0 && c.F*c.C < 0: // Y-axis is the transverse axis
			ts := math.Atan(xs * math.Sqrt(c.A/c.F))
			te := math.Atan(xe * math.Sqrt(c.A/c.F))
			if ts < te {
				return ts, te
			}
			return -ts, -te
		default:
			return 0, 0
		}
	default:
		return 0, 0
	}
}

// Derivatives evaluates the closed-form parametrization for each conic kind
// (conic_arc.cpp's TryGetEllipseDerivatives/TryGetParabolaDerivatives/
// TryGetHyperbolaDerivatives; spec.md §4.5). Parabola derivatives beyond
// order 2 are identically zero (the parametrization is quadratic); hyperbola
// derivatives beyond order 2 are not implemented, matching the original.
func (c *ConicArc) Derivatives(t float64, n int) ([]entities.Vec3, error) {
	if c.Form == ConicHyperbola && n > 2 {
		return nil, entities.NotImplementedError{Operation: "derivatives of hyperbola conic arcs higher than order 2"}
	}
	out := make([]entities.Vec3, n+1)
	switch c.Form {
	case ConicEllipse:
		rx, ry := c.ellipseRadii()
		for k := 0; k <= n; k++ {
			phase := t + float64(k)*math.Pi/2
			x := rx * math.Cos(phase)
			y := ry * math.Sin(phase)
			if k == 0 {
				out[k] = numerics.V3(x, y, c.Zt)
			} else {
				out[k] = numerics.V3(x, y, 0)
			}
		}

	case ConicParabola:
		xs, ys, xe, ye := c.Start.X, c.Start.Y, c.End.X, c.End.Y
		switch {
		case !numerics.EqualAbs(c.A, 0, numerics.AbsTolerance) && !numerics.EqualAbs(c.E, 0, numerics.AbsTolerance):
			// Y = k*X^2
			xCoef := 1.0
			if xs >= xe {
				xCoef = -1.0
			}
			k := -c.A / c.E
			if n >= 0 {
				out[0] = numerics.V3(xCoef*t, k*t*t, c.Zt)
			}
			if n >= 1 {
				out[1] = numerics.V3(xCoef, 2*k*t, 0)
			}
			if n >= 2 {
				out[2] = numerics.V3(0, 2*k, 0)
			}
		case !numerics.EqualAbs(c.C, 0, numerics.AbsTolerance) && !numerics.EqualAbs(c.D, 0, numerics.AbsTolerance):
			// X = k*Y^2
			yCoef := 1.0
			if ys >= ye {
				yCoef = -1.0
			}
			k := -c.C / c.D
			if n >= 0 {
				out[0] = numerics.V3(k*t*t, yCoef*t, c.Zt)
			}
			if n >= 1 {
				out[1] = numerics.V3(2*k*t, yCoef, 0)
			}
			if n >= 2 {
				out[2] = numerics.V3(2*k, 0, 0)
			}
		default:
			return nil, entities.DataFormatError{Entity: "ConicArc", Reason: "parabola coefficients do not match either axis-aligned form"}
		}
		// Orders beyond 2 stay the zero vector: a quadratic parametrization's
		// higher derivatives are identically zero.

	case ConicHyperbola:
		ys, xe, ye := c.Start.Y, c.End.X, c.End.Y
		secT := 1 / math.Cos(t)
		tanT := math.Tan(t)
		secT2 := secT * secT
		sec3Plus := secT * (secT2 + tanT*tanT)

		switch {
		case c.F*c.A < 0: // X-axis is the transverse axis
			a := math.Sqrt(-c.F / c.A)
			b := math.Sqrt(c.F / c.C)
			sgn := 1.0
			if ys >= ye {
				sgn = -1.0
			}
			if n >= 0 {
				out[0] = numerics.V3(a*secT, sgn*b*tanT, c.Zt)
			}
			if n >= 1 {
				out[1] = numerics.V3(a*secT*tanT, sgn*b*secT2, 0)
			}
			if n >= 2 {
				out[2] = numerics.V3(a*sec3Plus, sgn*2*b*secT2*tanT, 0)
			}
		default: // Y-axis is the transverse axis
			a := math.Sqrt(c.F / c.A)
			b := math.Sqrt(-c.F / c.C)
			sgn := 1.0
			if xs := c.Start.X; xs >= xe {
				sgn = -1.0
			}
			if n >= 0 {
				out[0] = numerics.V3(sgn*a*tanT, b*secT, c.Zt)
			}
			if n >= 1 {
				out[1] = numerics.V3(sgn*a*secT2, b*secT*tanT, 0)
			}
			if n >= 2 {
				out[2] = numerics.V3(sgn*2*a*secT2*tanT, b*sec3Plus, 0)
			}
		}
	}
	return out, nil
}

func (c *ConicArc) TransformationRef() *entities.ReferenceField { return &c.DE().TransformationMatrix }
func (c *ConicArc) ChildIDs() []identity.ObjectID                { return c.BaseChildIDs(nil) }
func (c *ConicArc) UnresolvedReferences() []identity.ObjectID    { return c.BaseUnresolvedReferences(nil) }
func (c *ConicArc) SetUnresolvedReference(candidate entities.Entity) bool {
	return c.Base.SetUnresolvedReference(candidate)
}

func (c *ConicArc) UnresolveReference(removed identity.ObjectID) bool {
	return c.Base.UnresolveReference(removed)
}
func (c *ConicArc) Validate() entities.ValidationResult { return c.ValidateDE() }
