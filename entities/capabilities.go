package entities

import "github.com/habami/igesio-go/internal/identity"

// Kind tags the concrete entity variant for factory dispatch and for the
// parameter-vector's external discriminant (spec.md §9 "deep polymorphism"
// design note: Go has no multiple inheritance, so capabilities are
// interfaces and dispatch is a tagged enum rather than a class hierarchy).
type Kind int

const (
	KindNull Kind = iota
	KindCircularArc
	KindCompositeCurve
	KindConicArc
	KindCopiousData
	KindLine
	KindParametricSplineCurve
	KindRationalBSplineCurve
	KindCurveOnParametricSurface
	KindRuledSurface
	KindSurfaceOfRevolution
	KindTabulatedCylinder
	KindRationalBSplineSurface
	KindTransformationMatrix
	KindColorDefinition
	KindUnsupported
)

// Entity is the polymorphic root every concrete entity implements: DE
// metadata, parameter-vector round-tripping, reference resolution, and
// validation (spec.md §4.4).
type Entity interface {
	ID() identity.ObjectID
	Kind() Kind
	DE() *DirectoryEntry

	// Parameters returns the full PD parameter vector: main parameters
	// followed by the two additional-pointer groups, each prefixed by its
	// count (spec.md §4.4 "Parameter-data serialization protocol").
	// smallIDOf resolves a pointer field's target to its small-integer
	// alias for serialization (spec.md §6 writer collaborator).
	Parameters(smallIDOf func(identity.ObjectID) (int32, bool)) ParameterVector

	// ChildIDs returns every ObjectID this entity refers to, across DE
	// fields, PD parameters, and additional pointers.
	ChildIDs() []identity.ObjectID

	// UnresolvedReferences returns the subset of ChildIDs that have no
	// live target yet.
	UnresolvedReferences() []identity.ObjectID

	// SetUnresolvedReference offers candidate as the target for any
	// unresolved slot whose ID matches candidate.ID(); returns whether any
	// slot was filled (spec.md §4.4).
	SetUnresolvedReference(candidate Entity) bool

	// UnresolveReference clears any slot currently resolved to removed,
	// returning it to the unresolved state; returns whether any slot was
	// cleared (spec.md §5: entity removal unresolves dangling references).
	UnresolveReference(removed identity.ObjectID) bool

	// Validate checks DE well-formedness and per-entity PD invariants.
	Validate() ValidationResult
}

// Curve is the capability interface every curve entity implements
// (spec.md §3 "Curve and Surface interfaces").
type Curve interface {
	Entity

	// ParameterRange returns [t_start, t_end]; endpoints may be ±Inf.
	ParameterRange() (float64, float64)
	IsClosed() bool

	// Derivatives returns n+1 vectors: C(t), C'(t), ..., C^(n)(t), in the
	// entity's defining space.
	Derivatives(t float64, n int) ([]Vec3, error)

	// TransformationRef returns the chained transformation, if any.
	TransformationRef() *ReferenceField
}

// Curve2D is implemented by curves constrained to a plane z=const in their
// defining space.
type Curve2D interface {
	Curve
	PlaneZ() float64
}

// Surface is the capability interface every surface entity implements.
type Surface interface {
	Entity

	ParameterRange() (u0, u1, v0, v1 float64)
	IsUClosed() bool
	IsVClosed() bool

	// Derivatives returns the triangular array S^(i,j) for 0<=i+j<=order,
	// indexed result[i][j].
	Derivatives(u, v float64, order int) ([][]Vec3, error)

	TransformationRef() *ReferenceField
}

// Transformation is the capability interface for entities that can map
// points and direction vectors into a parent space (spec.md §4.7).
type Transformation interface {
	Entity
	ApplyPoint(p Vec3) (Vec3, error)
	ApplyDirection(v Vec3) (Vec3, error)
}

// ColorDefinition is the capability for type-314 color-definition entities.
type ColorDefinition interface {
	Entity
	RGBPercent() (r, g, b float64)
}

// Structure, LineFontDefinition, LevelProperty, View,
// ViewsVisibleAssociativity and LabelDisplayAssociativity are marker
// capabilities: entities referenced from the corresponding DE field slots
// need no behavior beyond Entity itself at this layer (spec.md §3), but are
// named so a down-casting reference-field accessor can assert on them.
type Structure interface{ Entity }
type LineFontDefinition interface{ Entity }
type LevelProperty interface{ Entity }
type View interface{ Entity }
type ViewsVisibleAssociativity interface{ Entity }
type LabelDisplayAssociativity interface{ Entity }
