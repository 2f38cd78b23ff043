package surfaces

import (
	"math"

	"github.com/habami/igesio-go/entities"
	"github.com/habami/igesio-go/internal/identity"
	"github.com/habami/igesio-go/internal/numerics"
)

// SurfaceOfRevolution is the type-120 entity: a generatrix curve revolved
// about an axis line through an angular range (spec.md §4.6).
type SurfaceOfRevolution struct {
	entities.Base
	Axis       entities.ReferenceField // Line entity
	Generatrix entities.ReferenceField // Curve
	ThetaStart, ThetaEnd float64       // subset of [0, 2*pi], start < end
}

// NewSurfaceOfRevolution constructs the entity, validating the angular
// range.
func NewSurfaceOfRevolution(base entities.Base, axis, generatrix entities.ReferenceField, thetaStart, thetaEnd float64) (*SurfaceOfRevolution, error) {
	if thetaEnd <= thetaStart {
		return nil, entities.DataFormatError{Entity: "SurfaceOfRevolution", Reason: "theta_end must exceed theta_start"}
	}
	if thetaStart < -1e-9 || thetaEnd > 2*math.Pi+1e-9 {
		return nil, entities.DataFormatError{Entity: "SurfaceOfRevolution", Reason: "angular range must lie within [0, 2*pi]"}
	}
	return &SurfaceOfRevolution{Base: base, Axis: axis, Generatrix: generatrix, ThetaStart: thetaStart, ThetaEnd: thetaEnd}, nil
}

func (s *SurfaceOfRevolution) Kind() entities.Kind { return entities.KindSurfaceOfRevolution }

func (s *SurfaceOfRevolution) generatrix() (entities.Curve, error) {
	g, ok := s.Generatrix.Target().(entities.Curve)
	if !ok || g == nil {
		return nil, entities.OutOfRangeError{Reason: "generatrix is unresolved"}
	}
	return g, nil
}

// axisFrame returns the axis start point P0 and unit direction D, derived
// from the referenced Line entity's two anchor points.
func (s *SurfaceOfRevolution) axisFrame() (numerics.Vector3d, numerics.Vector3d, error) {
	axis := s.Axis.Target()
	type linelike interface {
		AnchorPoints() (numerics.Vector3d, numerics.Vector3d)
	}
	l, ok := axis.(linelike)
	if !ok || l == nil {
		return numerics.Vector3d{}, numerics.Vector3d{}, entities.OutOfRangeError{Reason: "axis is unresolved or not line-like"}
	}
	p0, p1 := l.AnchorPoints()
	dir, ok := p1.Sub(p0).Normalized()
	if !ok {
		return numerics.Vector3d{}, numerics.Vector3d{}, entities.DataFormatError{Entity: "SurfaceOfRevolution", Reason: "axis anchor points must differ"}
	}
	return p0, dir, nil
}

func (s *SurfaceOfRevolution) ParameterRange() (float64, float64, float64, float64) {
	g, err := s.generatrix()
	if err != nil {
		return 0, 0, s.ThetaStart, s.ThetaEnd
	}
	u0, u1 := g.ParameterRange()
	return u0, u1, s.ThetaStart, s.ThetaEnd
}

func (s *SurfaceOfRevolution) IsUClosed() bool {
	g, err := s.generatrix()
	return err == nil && g.IsClosed()
}

func (s *SurfaceOfRevolution) IsVClosed() bool {
	return math.Abs(s.ThetaEnd-s.ThetaStart-2*math.Pi) < 1e-9
}

// Derivatives applies Rodrigues' rotation formula
// S(u,v) = P0 + (C(u)-P0)*cos(v) + (D x (C(u)-P0))*sin(v) + D*(D.(C(u)-P0))*(1-cos(v))
// and differentiates it with respect to u and v (spec.md §4.6).
func (s *SurfaceOfRevolution) Derivatives(u, v float64, order int) ([][]entities.Vec3, error) {
	g, err := s.generatrix()
	if err != nil {
		return nil, err
	}
	p0, d, err := s.axisFrame()
	if err != nil {
		return nil, err
	}
	cDerivs, err := g.Derivatives(u, order)
	if err != nil {
		return nil, err
	}

	cosV, sinV := math.Cos(v), math.Sin(v)

	rodrigues := func(w numerics.Vector3d) numerics.Vector3d {
		return w.Scale(cosV).
			Add(d.Cross(w).Scale(sinV)).
			Add(d.Scale(d.Dot(w) * (1 - cosV)))
	}

	out := make([][]entities.Vec3, order+1)
	for i := range out {
		out[i] = make([]entities.Vec3, order+1)
	}

	// S^(k,0): k-th u-derivative, v fixed. For k=0, add P0; for k>=1, pure
	// rotation of C^(k)(u) since P0 is constant.
	for k := 0; k <= order; k++ {
		if k == 0 {
			out[k][0] = p0.Add(rodrigues(cDerivs[0].Sub(p0)))
		} else {
			out[k][0] = rodrigues(cDerivs[k])
		}
	}

	// S^(k,j) for j>=1: differentiate the Rodrigues form w.r.t. v. The
	// first v-derivative of rodrigues(w) is -w*sin(v) + (D x w)*cos(v) +
	// D*(D.w)*sin(v); higher orders cycle through sin/cos with period 4,
	// matching the derivative of a rotation about a fixed axis.
	rodriguesDv := func(w numerics.Vector3d, order int) numerics.Vector3d {
		// d^order/dv^order of w*cos(v) + (Dxw)*sin(v) + D*(D.w)*(1-cos(v))
		phase := order % 4
		var cosCoef, sinCoef float64
		switch phase {
		case 0:
			cosCoef, sinCoef = cosV, sinV
		case 1:
			cosCoef, sinCoef = -sinV, cosV
		case 2:
			cosCoef, sinCoef = -cosV, -sinV
		case 3:
			cosCoef, sinCoef = sinV, -cosV
		}
		term := w.Scale(cosCoef).Add(d.Cross(w).Scale(sinCoef))
		if order == 0 {
			term = term.Add(d.Scale(d.Dot(w) * (1 - cosV)))
		} else {
			// d^order/dv^order of (1-cos v) matches -cos/sin cycle of cos v
			var dc float64
			switch phase {
			case 0:
				dc = -cosV
			case 1:
				dc = sinV
			case 2:
				dc = cosV
			case 3:
				dc = -sinV
			}
			term = term.Add(d.Scale(d.Dot(w) * dc))
		}
		return term
	}

	for k := 0; k <= order; k++ {
		base := cDerivs[k]
		if k == 0 {
			base = cDerivs[0].Sub(p0)
		}
		for j := 1; j <= order-k; j++ {
			out[k][j] = rodriguesDv(base, j)
		}
	}

	return out, nil
}

func (s *SurfaceOfRevolution) TransformationRef() *entities.ReferenceField {
	return &s.DE().TransformationMatrix
}

func (s *SurfaceOfRevolution) ChildIDs() []identity.ObjectID {
	var pd []identity.ObjectID
	for _, f := range []entities.ReferenceField{s.Axis, s.Generatrix} {
		if id, ok := f.ID(); ok {
			pd = append(pd, id)
		}
	}
	return s.BaseChildIDs(pd)
}

func (s *SurfaceOfRevolution) UnresolvedReferences() []identity.ObjectID {
	var pd []identity.ObjectID
	for _, f := range []entities.ReferenceField{s.Axis, s.Generatrix} {
		if id, ok := f.ID(); ok && !f.IsResolved() {
			pd = append(pd, id)
		}
	}
	return s.BaseUnresolvedReferences(pd)
}

func (s *SurfaceOfRevolution) SetUnresolvedReference(candidate entities.Entity) bool {
	filled := s.Base.SetUnresolvedReference(candidate)
	for _, f := range []*entities.ReferenceField{&s.Axis, &s.Generatrix} {
		if id, ok := f.ID(); ok && !f.IsResolved() && id.Equal(candidate.ID()) {
			if err := f.SetPointer(candidate); err == nil {
				filled = true
			}
		}
	}
	return filled
}

func (s *SurfaceOfRevolution) UnresolveReference(removed identity.ObjectID) bool {
	return s.Base.UnresolveReference(removed, &s.Axis, &s.Generatrix)
}

func (s *SurfaceOfRevolution) Validate() entities.ValidationResult { return s.ValidateDE() }
