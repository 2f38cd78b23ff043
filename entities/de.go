package entities

import "github.com/habami/igesio-go/internal/identity"

// EntityStatus is the DE status field's 4-tuple: blank status, subordinate
// entity switch, entity use flag, hierarchy (spec.md §3).
type EntityStatus struct {
	Blank        BlankStatus
	Subordinate  SubordinateSwitch
	UseFlag      EntityUseFlag
	Hierarchy    HierarchyType
}

type BlankStatus int

const (
	Visible BlankStatus = iota
	Blanked
)

type SubordinateSwitch int

const (
	Independent SubordinateSwitch = iota
	PhysicallyDependent
	LogicallyDependent
	PhysicallyAndLogicallyDependent
)

type EntityUseFlag int

const (
	UseGeometry EntityUseFlag = iota
	UseAnnotation
	UseDefinition
	UseOther
	UseLogical
	Use2DParametric
	UseConstructionGeometry
)

type HierarchyType int

const (
	AllSubordinate HierarchyType = iota
	GlobalTopDown
	UseHierarchyProperty
)

// DirectoryEntry is the fixed 20-field metadata record carried by every
// entity (IGES §2.2.4.4, spec.md §3).
type DirectoryEntry struct {
	EntityType int
	FormNumber int

	Structure                 ReferenceField
	LineFontPattern           ReferenceField
	Level                     ReferenceField
	View                      ReferenceField
	TransformationMatrix      ReferenceField
	LabelDisplayAssociativity ReferenceField
	Color                     ReferenceField

	Status      EntityStatus
	LineWeight  int // non-negative
	EntityLabel string // <=8 chars
	Subscript   int    // <=8 decimal digits

	ID identity.ObjectID
}
