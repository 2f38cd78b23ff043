package curves

import (
	"github.com/habami/igesio-go/entities"
	"github.com/habami/igesio-go/internal/identity"
	"github.com/habami/igesio-go/internal/numerics"
)

// CompositeCurve is the type-102 entity: an ordered list of sub-curve
// references, reparametrized cumulatively (spec.md §4.5).
type CompositeCurve struct {
	entities.Base
	subs   []entities.ReferenceField
	ranges []float64 // cumulative breakpoints, len(subs)+1
}

// NewCompositeCurve builds an (initially unresolved) composite curve from
// sub-curve pointer fields. Ranges are computed lazily once sub-curves
// resolve, via RecomputeRanges.
func NewCompositeCurve(base entities.Base, subs []entities.ReferenceField) *CompositeCurve {
	return &CompositeCurve{Base: base, subs: subs}
}

func (c *CompositeCurve) Kind() entities.Kind { return entities.KindCompositeCurve }

// RecomputeRanges rebuilds the cumulative-parameter breakpoints from the
// resolved sub-curves' own ranges (spec.md §4.5 "cumulative-parameter
// reparametrization"). Fails if any sub-curve is unresolved.
func (c *CompositeCurve) RecomputeRanges() error {
	ranges := make([]float64, len(c.subs)+1)
	for i, f := range c.subs {
		sub, ok := f.Target().(entities.Curve)
		if !ok || sub == nil {
			return entities.OutOfRangeError{Reason: "composite curve has an unresolved sub-curve"}
		}
		lo, hi := sub.ParameterRange()
		ranges[i+1] = ranges[i] + (hi - lo)
	}
	c.ranges = ranges
	return nil
}

func (c *CompositeCurve) ParameterRange() (float64, float64) {
	if len(c.ranges) == 0 {
		return 0, 0
	}
	return 0, c.ranges[len(c.ranges)-1]
}

func (c *CompositeCurve) IsClosed() bool {
	first, errF := c.subAndLocalParam(0)
	_, hi := c.ParameterRange()
	last, errL := c.subAndLocalParam(hi)
	if errF != nil || errL != nil {
		return false
	}
	p0, e0 := first.sub.Derivatives(first.local, 0)
	p1, e1 := last.sub.Derivatives(last.local, 0)
	if e0 != nil || e1 != nil {
		return false
	}
	return p0[0].EqualAbs(p1[0], numerics.AbsTolerance)
}

type subLookup struct {
	sub   entities.Curve
	local float64
}

// subAndLocalParam finds the sub-curve containing global parameter t and
// translates t into that sub-curve's own parameter range.
func (c *CompositeCurve) subAndLocalParam(t float64) (subLookup, error) {
	if len(c.ranges) == 0 {
		if err := c.RecomputeRanges(); err != nil {
			return subLookup{}, err
		}
	}
	for i := 0; i < len(c.subs); i++ {
		if t >= c.ranges[i] && (t <= c.ranges[i+1] || i == len(c.subs)-1) {
			sub, ok := c.subs[i].Target().(entities.Curve)
			if !ok || sub == nil {
				return subLookup{}, entities.OutOfRangeError{Reason: "sub-curve unresolved"}
			}
			lo, _ := sub.ParameterRange()
			return subLookup{sub: sub, local: lo + (t - c.ranges[i])}, nil
		}
	}
	return subLookup{}, entities.OutOfRangeError{Reason: "parameter outside composite curve's range"}
}

func (c *CompositeCurve) Derivatives(t float64, n int) ([]entities.Vec3, error) {
	look, err := c.subAndLocalParam(t)
	if err != nil {
		return nil, err
	}
	return look.sub.Derivatives(look.local, n)
}

// AddSubCurve appends sub after validating continuity with the prior
// sub-curve's end point, and marks sub's subordinate-switch as physically
// dependent (spec.md §4.5).
func (c *CompositeCurve) AddSubCurve(sub entities.Curve) error {
	if len(c.subs) > 0 {
		prevField := c.subs[len(c.subs)-1]
		prev, ok := prevField.Target().(entities.Curve)
		if !ok || prev == nil {
			return entities.OutOfRangeError{Reason: "previous sub-curve is unresolved"}
		}
		_, hi := prev.ParameterRange()
		prevEnd, err := prev.Derivatives(hi, 0)
		if err != nil {
			return err
		}
		lo, _ := sub.ParameterRange()
		subStart, err := sub.Derivatives(lo, 0)
		if err != nil {
			return err
		}
		if !prevEnd[0].EqualAbs(subStart[0], numerics.AbsTolerance) {
			return entities.DataFormatError{Entity: "CompositeCurve", Reason: "sub-curve end/start points must coincide"}
		}
	}
	field := entities.NewPointerField(sub.ID())
	_ = field.SetPointer(sub)
	sub.DE().Status.Subordinate = entities.PhysicallyDependent
	c.subs = append(c.subs, field)
	c.ranges = nil
	return nil
}

func (c *CompositeCurve) TransformationRef() *entities.ReferenceField {
	return &c.DE().TransformationMatrix
}

func (c *CompositeCurve) ChildIDs() []identity.ObjectID {
	var pd []identity.ObjectID
	for _, f := range c.subs {
		if id, ok := f.ID(); ok {
			pd = append(pd, id)
		}
	}
	return c.BaseChildIDs(pd)
}

func (c *CompositeCurve) UnresolvedReferences() []identity.ObjectID {
	var pd []identity.ObjectID
	for _, f := range c.subs {
		if id, ok := f.ID(); ok && !f.IsResolved() {
			pd = append(pd, id)
		}
	}
	return c.BaseUnresolvedReferences(pd)
}

func (c *CompositeCurve) SetUnresolvedReference(candidate entities.Entity) bool {
	filled := c.Base.SetUnresolvedReference(candidate)
	for i := range c.subs {
		if id, ok := c.subs[i].ID(); ok && !c.subs[i].IsResolved() && id.Equal(candidate.ID()) {
			if err := c.subs[i].SetPointer(candidate); err == nil {
				filled = true
				c.ranges = nil
			}
		}
	}
	return filled
}

// UnresolveReference also clears any sub-curve slot resolved to removed,
// invalidating the cumulative-range cache so it is rebuilt from the
// remaining resolved sub-curves on next use.
func (c *CompositeCurve) UnresolveReference(removed identity.ObjectID) bool {
	extra := make([]*entities.ReferenceField, len(c.subs))
	for i := range c.subs {
		extra[i] = &c.subs[i]
	}
	cleared := c.Base.UnresolveReference(removed, extra...)
	if cleared {
		c.ranges = nil
	}
	return cleared
}

func (c *CompositeCurve) Validate() entities.ValidationResult {
	result := c.ValidateDE()
	if len(c.subs) == 0 {
		result.AddError("composite curve must have at least one sub-curve")
	}
	return result
}
