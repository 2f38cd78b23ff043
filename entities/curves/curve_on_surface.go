package curves

import (
	"github.com/habami/igesio-go/entities"
	"github.com/habami/igesio-go/internal/identity"
	"github.com/habami/igesio-go/internal/numerics"
)

// CreationType is the type-142 "how was this curve derived" tag.
type CreationType int

const (
	CreationUnspecified CreationType = iota
	CreationProjection
	CreationIntersection
	CreationIsoparametric
)

// CurveOnParametricSurface is the type-142 entity: a curve living on a
// surface S, defined either by a (u,v)-domain base curve B, a world-space
// curve C, or both (spec.md §4.5).
type CurveOnParametricSurface struct {
	entities.Base
	Surface        entities.ReferenceField // Surface
	BaseCurve      entities.ReferenceField // Curve2D, in S's (u,v) domain
	WorldCurve     entities.ReferenceField // Curve, in world space; may be unset
	Creation       CreationType
	PreferredWorld bool // which of B/C is authoritative for queries
}

// NewCurveOnParametricSurface constructs the entity from its three
// reference fields; resolution of targets happens later via the model
// container.
func NewCurveOnParametricSurface(base entities.Base, surface, baseCurve, worldCurve entities.ReferenceField, creation CreationType, preferredWorld bool) *CurveOnParametricSurface {
	return &CurveOnParametricSurface{
		Base: base, Surface: surface, BaseCurve: baseCurve, WorldCurve: worldCurve,
		Creation: creation, PreferredWorld: preferredWorld,
	}
}

func (c *CurveOnParametricSurface) Kind() entities.Kind { return entities.KindCurveOnParametricSurface }

func (c *CurveOnParametricSurface) baseCurve() (entities.Curve, error) {
	b, ok := c.BaseCurve.Target().(entities.Curve)
	if !ok || b == nil {
		return nil, entities.OutOfRangeError{Reason: "base curve B is unresolved"}
	}
	return b, nil
}

func (c *CurveOnParametricSurface) surface() (entities.Surface, error) {
	s, ok := c.Surface.Target().(entities.Surface)
	if !ok || s == nil {
		return nil, entities.OutOfRangeError{Reason: "surface S is unresolved"}
	}
	return s, nil
}

// ParameterRange is inherited from B (spec.md §4.5).
func (c *CurveOnParametricSurface) ParameterRange() (float64, float64) {
	b, err := c.baseCurve()
	if err != nil {
		return 0, 0
	}
	return b.ParameterRange()
}

func (c *CurveOnParametricSurface) IsClosed() bool {
	b, err := c.baseCurve()
	if err != nil {
		return false
	}
	return b.IsClosed()
}

// Derivatives composes S(B(t)) via the chain rule: C(t)=S(u(t),v(t));
// C'(t)=S_u*u' + S_v*v'; C''(t)=S_uu*u'^2 + 2*S_uv*u'*v' + S_vv*v'^2 +
// S_u*u'' + S_v*v'' (spec.md §4.5). When a world curve C is supplied and
// preferred, its own derivatives are used directly instead.
func (c *CurveOnParametricSurface) Derivatives(t float64, n int) ([]entities.Vec3, error) {
	if c.PreferredWorld {
		if w, ok := c.WorldCurve.Target().(entities.Curve); ok && w != nil {
			return w.Derivatives(t, n)
		}
	}

	b, err := c.baseCurve()
	if err != nil {
		return nil, err
	}
	s, err := c.surface()
	if err != nil {
		return nil, err
	}

	uv, err := b.Derivatives(t, n)
	if err != nil {
		return nil, err
	}
	// uv[k] holds (u,v,*)'s k-th derivative components in X,Y.
	su, err := s.Derivatives(uv[0].X, uv[0].Y, n)
	if err != nil {
		return nil, err
	}

	out := make([]entities.Vec3, n+1)
	out[0] = su[0][0]
	if n >= 1 {
		uPrime, vPrime := uv[1].X, uv[1].Y
		out[1] = su[1][0].Scale(uPrime).Add(su[0][1].Scale(vPrime))
	}
	if n >= 2 {
		uPrime, vPrime := uv[1].X, uv[1].Y
		uDbl, vDbl := uv[2].X, uv[2].Y
		out[2] = su[2][0].Scale(uPrime * uPrime).
			Add(su[1][1].Scale(2 * uPrime * vPrime)).
			Add(su[0][2].Scale(vPrime * vPrime)).
			Add(su[1][0].Scale(uDbl)).
			Add(su[0][1].Scale(vDbl))
	}
	if n >= 3 {
		return nil, entities.NotImplementedError{Operation: "third-and-higher-order derivatives of curve-on-surface"}
	}
	return out, nil
}

// SynthesizeWorldCurve approximates the world-space curve when C was not
// supplied: it evaluates B at samples evenly spaced parameter values (at
// least 2) across B's range and projects each (u,v) point through S. It
// returns the projected points as a plain slice of world-space vertices; it
// does not refine the sampling adaptively and does not build a CopiousData
// entity. Nothing is cached: S(u,v) is recomputed for every sample on each
// call.
func (c *CurveOnParametricSurface) SynthesizeWorldCurve(samples int) ([]numerics.Vector3d, error) {
	b, err := c.baseCurve()
	if err != nil {
		return nil, err
	}
	s, err := c.surface()
	if err != nil {
		return nil, err
	}
	if samples < 2 {
		samples = 2
	}
	lo, hi := b.ParameterRange()
	pts := make([]numerics.Vector3d, samples)
	for i := 0; i < samples; i++ {
		t := lo + (hi-lo)*float64(i)/float64(samples-1)
		uv, err := b.Derivatives(t, 0)
		if err != nil {
			return nil, err
		}
		world, err := s.Derivatives(uv[0].X, uv[0].Y, 0)
		if err != nil {
			return nil, err
		}
		pts[i] = world[0][0]
	}
	return pts, nil
}

func (c *CurveOnParametricSurface) TransformationRef() *entities.ReferenceField {
	return &c.DE().TransformationMatrix
}

func (c *CurveOnParametricSurface) ChildIDs() []identity.ObjectID {
	var pd []identity.ObjectID
	for _, f := range []entities.ReferenceField{c.Surface, c.BaseCurve, c.WorldCurve} {
		if id, ok := f.ID(); ok {
			pd = append(pd, id)
		}
	}
	return c.BaseChildIDs(pd)
}

func (c *CurveOnParametricSurface) UnresolvedReferences() []identity.ObjectID {
	var pd []identity.ObjectID
	for _, f := range []entities.ReferenceField{c.Surface, c.BaseCurve, c.WorldCurve} {
		if id, ok := f.ID(); ok && !f.IsResolved() {
			pd = append(pd, id)
		}
	}
	return c.BaseUnresolvedReferences(pd)
}

func (c *CurveOnParametricSurface) SetUnresolvedReference(candidate entities.Entity) bool {
	filled := c.Base.SetUnresolvedReference(candidate)
	for _, f := range []*entities.ReferenceField{&c.Surface, &c.BaseCurve, &c.WorldCurve} {
		if id, ok := f.ID(); ok && !f.IsResolved() && id.Equal(candidate.ID()) {
			if err := f.SetPointer(candidate); err == nil {
				filled = true
			}
		}
	}
	return filled
}

func (c *CurveOnParametricSurface) UnresolveReference(removed identity.ObjectID) bool {
	return c.Base.UnresolveReference(removed, &c.Surface, &c.BaseCurve, &c.WorldCurve)
}

// Validate evaluates B at 50 evenly spaced parameter values across its range
// and reports an error for each one whose (u,v) point lies outside S's
// parameter domain. No bounding-box test of B is made.
func (c *CurveOnParametricSurface) Validate() entities.ValidationResult {
	result := c.ValidateDE()
	b, errB := c.baseCurve()
	s, errS := c.surface()
	if errB != nil || errS != nil {
		return result // cannot validate PD invariants while unresolved
	}
	u0, u1, v0, v1 := s.ParameterRange()
	lo, hi := b.ParameterRange()
	const samples = 50
	for i := 0; i < samples; i++ {
		t := lo + (hi-lo)*float64(i)/float64(samples-1)
		uv, err := b.Derivatives(t, 0)
		if err != nil {
			result.AddError("base curve B failed to evaluate at sample %d: %v", i, err)
			continue
		}
		if uv[0].X < u0-1e-8 || uv[0].X > u1+1e-8 || uv[0].Y < v0-1e-8 || uv[0].Y > v1+1e-8 {
			result.AddError("base curve B leaves surface S's parameter domain at t=%g", t)
		}
	}
	return result
}
