package structures

import (
	"github.com/habami/igesio-go/entities"
	"github.com/habami/igesio-go/internal/identity"
)

// ColorDefinition is the type-314 entity: an RGB color given as three
// percentages (spec.md §6 catalog).
type ColorDefinition struct {
	entities.Base
	R, G, B float64 // each in [0,100]
}

// NewColorDefinition validates the percentages are in range.
func NewColorDefinition(base entities.Base, r, g, b float64) (*ColorDefinition, error) {
	for _, v := range []float64{r, g, b} {
		if v < 0 || v > 100 {
			return nil, entities.DataFormatError{Entity: "ColorDefinition", Reason: "RGB percentages must lie in [0,100]"}
		}
	}
	return &ColorDefinition{Base: base, R: r, G: g, B: b}, nil
}

func (c *ColorDefinition) Kind() entities.Kind { return entities.KindColorDefinition }

func (c *ColorDefinition) RGBPercent() (float64, float64, float64) { return c.R, c.G, c.B }

func (c *ColorDefinition) ChildIDs() []identity.ObjectID             { return c.BaseChildIDs(nil) }
func (c *ColorDefinition) UnresolvedReferences() []identity.ObjectID { return c.BaseUnresolvedReferences(nil) }
func (c *ColorDefinition) SetUnresolvedReference(candidate entities.Entity) bool {
	return c.Base.SetUnresolvedReference(candidate)
}
func (c *ColorDefinition) UnresolveReference(removed identity.ObjectID) bool {
	return c.Base.UnresolveReference(removed)
}
func (c *ColorDefinition) Validate() entities.ValidationResult { return c.ValidateDE() }

// NullEntity is the type-0 no-op passthrough entity: it carries no
// geometry and always validates (spec.md §6 catalog).
type NullEntity struct {
	entities.Base
}

// NewNullEntity constructs a null entity from its DE metadata.
func NewNullEntity(base entities.Base) *NullEntity { return &NullEntity{Base: base} }

func (n *NullEntity) Kind() entities.Kind { return entities.KindNull }

func (n *NullEntity) ChildIDs() []identity.ObjectID             { return n.BaseChildIDs(nil) }
func (n *NullEntity) UnresolvedReferences() []identity.ObjectID { return n.BaseUnresolvedReferences(nil) }
func (n *NullEntity) SetUnresolvedReference(candidate entities.Entity) bool {
	return n.Base.SetUnresolvedReference(candidate)
}
func (n *NullEntity) UnresolveReference(removed identity.ObjectID) bool {
	return n.Base.UnresolveReference(removed)
}
func (n *NullEntity) Validate() entities.ValidationResult { return n.ValidateDE() }
