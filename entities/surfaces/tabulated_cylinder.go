package surfaces

import (
	"github.com/habami/igesio-go/entities"
	"github.com/habami/igesio-go/internal/identity"
	"github.com/habami/igesio-go/internal/numerics"
)

// TabulatedCylinder is the type-122 entity: a directrix curve swept along
// a fixed direction derived from a location vector (spec.md §4.6).
type TabulatedCylinder struct {
	entities.Base
	Directrix entities.ReferenceField // Curve
	Location  numerics.Vector3d       // L
}

// NewTabulatedCylinder constructs the entity; the location-vs-directrix(0)
// coincidence check happens once Directrix resolves, in Validate, since the
// direction vector cannot be computed before resolution.
func NewTabulatedCylinder(base entities.Base, directrix entities.ReferenceField, location numerics.Vector3d) *TabulatedCylinder {
	return &TabulatedCylinder{Base: base, Directrix: directrix, Location: location}
}

func (t *TabulatedCylinder) Kind() entities.Kind { return entities.KindTabulatedCylinder }

func (t *TabulatedCylinder) directrix() (entities.Curve, error) {
	c, ok := t.Directrix.Target().(entities.Curve)
	if !ok || c == nil {
		return nil, entities.OutOfRangeError{Reason: "directrix is unresolved"}
	}
	return c, nil
}

// direction returns L - C(0), failing if they coincide (spec.md §4.6).
func (t *TabulatedCylinder) direction() (numerics.Vector3d, error) {
	c, err := t.directrix()
	if err != nil {
		return numerics.Vector3d{}, err
	}
	lo, _ := c.ParameterRange()
	c0, err := c.Derivatives(lo, 0)
	if err != nil {
		return numerics.Vector3d{}, err
	}
	dir := t.Location.Sub(c0[0])
	if dir.EqualAbs(numerics.Vector3d{}, numerics.AbsTolerance) {
		return numerics.Vector3d{}, entities.DataFormatError{Entity: "TabulatedCylinder", Reason: "location vector must not coincide with the directrix's start point"}
	}
	return dir, nil
}

func (t *TabulatedCylinder) ParameterRange() (float64, float64, float64, float64) {
	c, err := t.directrix()
	if err != nil {
		return 0, 0, 0, 1
	}
	u0, u1 := c.ParameterRange()
	return u0, u1, 0, 1
}

func (t *TabulatedCylinder) IsUClosed() bool {
	c, err := t.directrix()
	return err == nil && c.IsClosed()
}

func (t *TabulatedCylinder) IsVClosed() bool { return false }

// Derivatives computes S(u,v) = C(t(u)) + v*(L - C(0)) (spec.md §4.6).
func (t *TabulatedCylinder) Derivatives(u, v float64, order int) ([][]entities.Vec3, error) {
	c, err := t.directrix()
	if err != nil {
		return nil, err
	}
	dir, err := t.direction()
	if err != nil {
		return nil, err
	}
	cDerivs, err := c.Derivatives(u, order)
	if err != nil {
		return nil, err
	}

	out := make([][]entities.Vec3, order+1)
	for i := range out {
		out[i] = make([]entities.Vec3, order+1)
	}
	for k := 0; k <= order; k++ {
		if k == 0 {
			out[k][0] = cDerivs[0].Add(dir.Scale(v))
		} else {
			out[k][0] = cDerivs[k]
		}
	}
	if order >= 1 {
		out[0][1] = dir
	}
	// higher v-derivatives and mixed u/v derivatives vanish: the sweep is
	// affine in v and independent of v in u.
	return out, nil
}

func (t *TabulatedCylinder) TransformationRef() *entities.ReferenceField {
	return &t.DE().TransformationMatrix
}

func (t *TabulatedCylinder) ChildIDs() []identity.ObjectID {
	var pd []identity.ObjectID
	if id, ok := t.Directrix.ID(); ok {
		pd = append(pd, id)
	}
	return t.BaseChildIDs(pd)
}

func (t *TabulatedCylinder) UnresolvedReferences() []identity.ObjectID {
	var pd []identity.ObjectID
	if id, ok := t.Directrix.ID(); ok && !t.Directrix.IsResolved() {
		pd = append(pd, id)
	}
	return t.BaseUnresolvedReferences(pd)
}

func (t *TabulatedCylinder) SetUnresolvedReference(candidate entities.Entity) bool {
	filled := t.Base.SetUnresolvedReference(candidate)
	if id, ok := t.Directrix.ID(); ok && !t.Directrix.IsResolved() && id.Equal(candidate.ID()) {
		if err := t.Directrix.SetPointer(candidate); err == nil {
			filled = true
		}
	}
	return filled
}

func (t *TabulatedCylinder) UnresolveReference(removed identity.ObjectID) bool {
	return t.Base.UnresolveReference(removed, &t.Directrix)
}

func (t *TabulatedCylinder) Validate() entities.ValidationResult {
	result := t.ValidateDE()
	if _, err := t.direction(); err != nil {
		if _, unresolved := err.(entities.OutOfRangeError); !unresolved {
			result.AddError("%v", err)
		}
	}
	return result
}
