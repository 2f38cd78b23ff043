package curves

import (
	"github.com/habami/igesio-go/entities"
	"github.com/habami/igesio-go/internal/identity"
	"github.com/habami/igesio-go/internal/numerics"
)

// SplineSegment holds one segment's per-coordinate cubic coefficients:
// x(s) = Ax + Bx*s + Cx*s^2 + Dx*s^3, s measured from the segment's
// breakpoint, likewise for y and z (spec.md §4.5).
type SplineSegment struct {
	Ax, Bx, Cx, Dx float64
	Ay, By, Cy, Dy float64
	Az, Bz, Cz, Dz float64
}

func (s SplineSegment) eval(ds float64, order int) numerics.Vector3d {
	switch order {
	case 0:
		return numerics.V3(
			s.Ax+ds*(s.Bx+ds*(s.Cx+ds*s.Dx)),
			s.Ay+ds*(s.By+ds*(s.Cy+ds*s.Dy)),
			s.Az+ds*(s.Bz+ds*(s.Cz+ds*s.Dz)),
		)
	case 1:
		return numerics.V3(
			s.Bx+ds*(2*s.Cx+ds*3*s.Dx),
			s.By+ds*(2*s.Cy+ds*3*s.Dy),
			s.Bz+ds*(2*s.Cz+ds*3*s.Dz),
		)
	case 2:
		return numerics.V3(2*s.Cx+6*ds*s.Dx, 2*s.Cy+6*ds*s.Dy, 2*s.Cz+6*ds*s.Dz)
	case 3:
		return numerics.V3(6*s.Dx, 6*s.Dy, 6*s.Dz)
	default:
		return numerics.Vector3d{}
	}
}

// SplineDegree is the H-flag spline degree (1=linear, 2=quadratic, 3=cubic).
type SplineDegree int

// ParametricSplineCurve is the type-112 entity: N segments of per-coordinate
// polynomials with strictly-increasing breakpoints (spec.md §4.5).
type ParametricSplineCurve struct {
	entities.Base
	Degree      SplineDegree
	NDim        int // 2 or 3
	Breakpoints []float64 // len = len(Segments)+1, strictly increasing
	Segments    []SplineSegment
}

// NewParametricSplineCurve validates breakpoints are strictly increasing and
// degree-appropriate coefficients vanish.
func NewParametricSplineCurve(base entities.Base, degree SplineDegree, ndim int, breakpoints []float64, segs []SplineSegment) (*ParametricSplineCurve, error) {
	if len(breakpoints) != len(segs)+1 {
		return nil, entities.DataFormatError{Entity: "ParametricSplineCurve", Reason: "breakpoint count must be segment count + 1"}
	}
	for i := 1; i < len(breakpoints); i++ {
		if breakpoints[i] <= breakpoints[i-1] {
			return nil, entities.DataFormatError{Entity: "ParametricSplineCurve", Reason: "breakpoints must be strictly increasing"}
		}
	}
	if ndim != 2 && ndim != 3 {
		return nil, entities.DataFormatError{Entity: "ParametricSplineCurve", Reason: "NDIM must be 2 or 3"}
	}
	if ndim == 2 {
		for _, s := range segs {
			if s.Az != 0 || s.Bz != 0 || s.Cz != 0 || s.Dz != 0 {
				return nil, entities.DataFormatError{Entity: "ParametricSplineCurve", Reason: "NDIM=2 requires all Z coefficients zero"}
			}
		}
	}
	if degree == 1 {
		for _, s := range segs {
			if s.Cx != 0 || s.Dx != 0 || s.Cy != 0 || s.Dy != 0 || s.Cz != 0 || s.Dz != 0 {
				return nil, entities.DataFormatError{Entity: "ParametricSplineCurve", Reason: "H=1 requires quadratic and cubic coefficients zero"}
			}
		}
	}
	if degree == 2 {
		for _, s := range segs {
			if s.Dx != 0 || s.Dy != 0 || s.Dz != 0 {
				return nil, entities.DataFormatError{Entity: "ParametricSplineCurve", Reason: "H=2 requires cubic coefficients zero"}
			}
		}
	}
	p := &ParametricSplineCurve{Base: base, Degree: degree, NDim: ndim, Breakpoints: breakpoints, Segments: segs}
	if err := p.checkContinuity(); err != nil {
		return nil, err
	}
	return p, nil
}

// checkContinuity enforces C0/C1/C2 continuity across breakpoints up to
// the declared degree (spec.md §4.5).
func (p *ParametricSplineCurve) checkContinuity() error {
	order := int(p.Degree)
	if order > 2 {
		order = 2
	}
	for i := 0; i < len(p.Segments)-1; i++ {
		segDur := p.Breakpoints[i+1] - p.Breakpoints[i]
		for k := 0; k <= order; k++ {
			left := p.Segments[i].eval(segDur, k)
			right := p.Segments[i+1].eval(0, k)
			if !left.EqualAbs(right, 1e-6) {
				return entities.DataFormatError{Entity: "ParametricSplineCurve", Reason: "breakpoint continuity violated"}
			}
		}
	}
	return nil
}

func (p *ParametricSplineCurve) Kind() entities.Kind { return entities.KindParametricSplineCurve }

func (p *ParametricSplineCurve) ParameterRange() (float64, float64) {
	return p.Breakpoints[0], p.Breakpoints[len(p.Breakpoints)-1]
}

func (p *ParametricSplineCurve) IsClosed() bool {
	lo, hi := p.ParameterRange()
	d0, e0 := p.Derivatives(lo, 0)
	d1, e1 := p.Derivatives(hi, 0)
	if e0 != nil || e1 != nil {
		return false
	}
	return d0[0].EqualAbs(d1[0], numerics.AbsTolerance)
}

func (p *ParametricSplineCurve) segmentFor(t float64) (int, float64, error) {
	lo, hi := p.ParameterRange()
	if t < lo-1e-9 || t > hi+1e-9 {
		return 0, 0, entities.OutOfRangeError{Reason: "parameter outside spline's range"}
	}
	for i := 0; i < len(p.Segments); i++ {
		if t <= p.Breakpoints[i+1] || i == len(p.Segments)-1 {
			return i, t - p.Breakpoints[i], nil
		}
	}
	return 0, 0, entities.ImplementationError{Reason: "segment lookup fell through"}
}

func (p *ParametricSplineCurve) Derivatives(t float64, n int) ([]entities.Vec3, error) {
	idx, ds, err := p.segmentFor(t)
	if err != nil {
		return nil, err
	}
	seg := p.Segments[idx]
	out := make([]entities.Vec3, n+1)
	for k := 0; k <= n; k++ {
		out[k] = seg.eval(ds, k)
	}
	return out, nil
}

func (p *ParametricSplineCurve) TransformationRef() *entities.ReferenceField {
	return &p.DE().TransformationMatrix
}
func (p *ParametricSplineCurve) ChildIDs() []identity.ObjectID { return p.BaseChildIDs(nil) }
func (p *ParametricSplineCurve) UnresolvedReferences() []identity.ObjectID {
	return p.BaseUnresolvedReferences(nil)
}
func (p *ParametricSplineCurve) SetUnresolvedReference(candidate entities.Entity) bool {
	return p.Base.SetUnresolvedReference(candidate)
}

func (p *ParametricSplineCurve) UnresolveReference(removed identity.ObjectID) bool {
	return p.Base.UnresolveReference(removed)
}
func (p *ParametricSplineCurve) Validate() entities.ValidationResult { return p.ValidateDE() }
