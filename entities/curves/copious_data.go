package curves

import (
	"github.com/habami/igesio-go/entities"
	"github.com/habami/igesio-go/internal/identity"
	"github.com/habami/igesio-go/internal/numerics"
)

// CopiousDataForm is the type-106 form-number discriminant.
type CopiousDataForm int

const (
	CopiousPoints1  CopiousDataForm = 1
	CopiousPoints2  CopiousDataForm = 2
	CopiousPoints3  CopiousDataForm = 3
	CopiousPolyline11 CopiousDataForm = 11
	CopiousPolyline12 CopiousDataForm = 12
	CopiousPolyline13 CopiousDataForm = 13
	CopiousPlanarLoop CopiousDataForm = 63
)

func (f CopiousDataForm) isPoints() bool   { return f >= 1 && f <= 3 }
func (f CopiousDataForm) isPolyline() bool { return f >= 11 && f <= 13 }

// CopiousData is the type-106 entity: a 3xN coordinate matrix (points or
// polyline) with an optional associated-vector matrix for form 13
// (spec.md §4.5).
type CopiousData struct {
	entities.Base
	Form    CopiousDataForm
	Points  []numerics.Vector3d
	Vectors []numerics.Vector3d // only for form 13
}

// NewCopiousData validates the point count and form-specific shape.
func NewCopiousData(base entities.Base, form CopiousDataForm, points, vectors []numerics.Vector3d) (*CopiousData, error) {
	if len(points) == 0 {
		return nil, entities.DataFormatError{Entity: "CopiousData", Reason: "at least one point is required"}
	}
	if form == CopiousPolyline13 && len(vectors) != len(points) {
		return nil, entities.DataFormatError{Entity: "CopiousData", Reason: "form 13 requires one associated vector per point"}
	}
	if form != CopiousPolyline13 && len(vectors) != 0 {
		return nil, entities.DataFormatError{Entity: "CopiousData", Reason: "only form 13 carries associated vectors"}
	}
	return &CopiousData{Base: base, Form: form, Points: points, Vectors: vectors}, nil
}

func (c *CopiousData) Kind() entities.Kind { return entities.KindCopiousData }

// ParameterRange for polyline forms is [0, N-1] (segment index + fraction);
// points forms report a degenerate [0,0] range since they are not
// discretizable (spec.md §4.5).
func (c *CopiousData) ParameterRange() (float64, float64) {
	if c.Form.isPoints() {
		return 0, 0
	}
	return 0, float64(len(c.Points) - 1)
}

func (c *CopiousData) IsClosed() bool {
	if c.Form.isPoints() || len(c.Points) < 2 {
		return false
	}
	return c.Points[0].EqualAbs(c.Points[len(c.Points)-1], numerics.AbsTolerance)
}

// Derivatives: points forms have no defined tangent/normal and fail with
// NotImplementedError; polyline forms are piecewise-linear (spec.md §4.5).
func (c *CopiousData) Derivatives(t float64, n int) ([]entities.Vec3, error) {
	if c.Form.isPoints() {
		return nil, entities.NotImplementedError{Operation: "derivatives on a copious-data points entity"}
	}
	lo, hi := c.ParameterRange()
	if t < lo || t > hi {
		return nil, entities.OutOfRangeError{Reason: "parameter outside polyline's range"}
	}
	seg := int(t)
	if seg >= len(c.Points)-1 {
		seg = len(c.Points) - 2
	}
	frac := t - float64(seg)
	p0, p1 := c.Points[seg], c.Points[seg+1]
	dir := p1.Sub(p0)

	out := make([]entities.Vec3, n+1)
	out[0] = p0.Add(dir.Scale(frac))
	if n >= 1 {
		out[1] = dir
	}
	return out, nil
}

func (c *CopiousData) TransformationRef() *entities.ReferenceField {
	return &c.DE().TransformationMatrix
}
func (c *CopiousData) ChildIDs() []identity.ObjectID { return c.BaseChildIDs(nil) }
func (c *CopiousData) UnresolvedReferences() []identity.ObjectID {
	return c.BaseUnresolvedReferences(nil)
}
func (c *CopiousData) SetUnresolvedReference(candidate entities.Entity) bool {
	return c.Base.SetUnresolvedReference(candidate)
}

func (c *CopiousData) UnresolveReference(removed identity.ObjectID) bool {
	return c.Base.UnresolveReference(removed)
}
func (c *CopiousData) Validate() entities.ValidationResult { return c.ValidateDE() }
