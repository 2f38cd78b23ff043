package surfaces

import (
	"github.com/habami/igesio-go/entities"
	"github.com/habami/igesio-go/internal/identity"
)

// RuledSurface is the type-118 entity: a linear interpolation between two
// curves C1(t), C2(s) over u,v in [0,1] (spec.md §4.6).
type RuledSurface struct {
	entities.Base
	C1, C2      entities.ReferenceField // Curve
	Reversed    bool
	Developable bool
}

// NewRuledSurface constructs the entity from its two curve references.
func NewRuledSurface(base entities.Base, c1, c2 entities.ReferenceField, reversed, developable bool) *RuledSurface {
	return &RuledSurface{Base: base, C1: c1, C2: c2, Reversed: reversed, Developable: developable}
}

func (r *RuledSurface) Kind() entities.Kind { return entities.KindRuledSurface }

func (r *RuledSurface) curve1() (entities.Curve, error) {
	c, ok := r.C1.Target().(entities.Curve)
	if !ok || c == nil {
		return nil, entities.OutOfRangeError{Reason: "C1 is unresolved"}
	}
	return c, nil
}

func (r *RuledSurface) curve2() (entities.Curve, error) {
	c, ok := r.C2.Target().(entities.Curve)
	if !ok || c == nil {
		return nil, entities.OutOfRangeError{Reason: "C2 is unresolved"}
	}
	return c, nil
}

func (r *RuledSurface) ParameterRange() (float64, float64, float64, float64) {
	return 0, 1, 0, 1
}

func (r *RuledSurface) IsUClosed() bool {
	c1, err1 := r.curve1()
	return err1 == nil && c1.IsClosed()
}

func (r *RuledSurface) IsVClosed() bool { return false }

// paramAt maps the surface's u in [0,1] onto a curve's own [tmin,tmax]
// range, honoring the reversed flag for C2 (spec.md §4.6).
func paramAt(c entities.Curve, u float64, reversed bool) float64 {
	lo, hi := c.ParameterRange()
	if reversed {
		u = 1 - u
	}
	return lo + u*(hi-lo)
}

// Derivatives computes S(u,v) = (1-v)*C1(t) + v*C2(s); mixed and pure
// partials follow directly since the blend is affine in v (spec.md §4.6).
func (r *RuledSurface) Derivatives(u, v float64, order int) ([][]entities.Vec3, error) {
	c1, err := r.curve1()
	if err != nil {
		return nil, err
	}
	c2, err := r.curve2()
	if err != nil {
		return nil, err
	}
	t := paramAt(c1, u, false)
	s := paramAt(c2, u, r.Reversed)

	d1, err := c1.Derivatives(t, order)
	if err != nil {
		return nil, err
	}
	d2, err := c2.Derivatives(s, order)
	if err != nil {
		return nil, err
	}

	out := make([][]entities.Vec3, order+1)
	for i := range out {
		out[i] = make([]entities.Vec3, order+1)
	}

	// j=0 (v-order 0): S^(k,0) = (1-v)*C1^(k)(t) + v*C2^(k)(s), each scaled
	// by (dt/du)^k or (ds/du)^k, folded into d1/d2 via chain rule on the
	// affine reparametrization (du maps linearly to dt, ds).
	t0, t1 := c1.ParameterRange()
	s0, s1 := c2.ParameterRange()
	dtdu := t1 - t0
	dsdu := s1 - s0
	if r.Reversed {
		dsdu = -dsdu
	}

	for k := 0; k <= order; k++ {
		scaleT := pow(dtdu, k)
		scaleS := pow(dsdu, k)
		out[k][0] = d1[k].Scale((1 - v) * scaleT).Add(d2[k].Scale(v * scaleS))
	}
	// j=1 (first v-derivative): S^(k,1) = -C1^(k)(t)*scaleT + C2^(k)(s)*scaleS
	if order >= 1 {
		for k := 0; k <= order-1; k++ {
			scaleT := pow(dtdu, k)
			scaleS := pow(dsdu, k)
			out[k][1] = d2[k].Scale(scaleS).Sub(d1[k].Scale(scaleT))
		}
	}
	// higher v-orders vanish: the blend is affine in v.
	return out, nil
}

func pow(base float64, n int) float64 {
	res := 1.0
	for i := 0; i < n; i++ {
		res *= base
	}
	return res
}

func (r *RuledSurface) TransformationRef() *entities.ReferenceField {
	return &r.DE().TransformationMatrix
}

func (r *RuledSurface) ChildIDs() []identity.ObjectID {
	var pd []identity.ObjectID
	for _, f := range []entities.ReferenceField{r.C1, r.C2} {
		if id, ok := f.ID(); ok {
			pd = append(pd, id)
		}
	}
	return r.BaseChildIDs(pd)
}

func (r *RuledSurface) UnresolvedReferences() []identity.ObjectID {
	var pd []identity.ObjectID
	for _, f := range []entities.ReferenceField{r.C1, r.C2} {
		if id, ok := f.ID(); ok && !f.IsResolved() {
			pd = append(pd, id)
		}
	}
	return r.BaseUnresolvedReferences(pd)
}

func (r *RuledSurface) SetUnresolvedReference(candidate entities.Entity) bool {
	filled := r.Base.SetUnresolvedReference(candidate)
	for _, f := range []*entities.ReferenceField{&r.C1, &r.C2} {
		if id, ok := f.ID(); ok && !f.IsResolved() && id.Equal(candidate.ID()) {
			if err := f.SetPointer(candidate); err == nil {
				filled = true
			}
		}
	}
	return filled
}

func (r *RuledSurface) UnresolveReference(removed identity.ObjectID) bool {
	return r.Base.UnresolveReference(removed, &r.C1, &r.C2)
}

func (r *RuledSurface) Validate() entities.ValidationResult { return r.ValidateDE() }
