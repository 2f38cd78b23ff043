package iges

import (
	"fmt"

	"github.com/habami/igesio-go/entities"
	"github.com/habami/igesio-go/entities/algorithms"
	"github.com/habami/igesio-go/entities/build"
	"github.com/habami/igesio-go/internal/bbox"
	"github.com/habami/igesio-go/internal/identity"
	"github.com/habami/igesio-go/model"
)

// RawRecord is a re-export of build.RawRecord, so application code that
// only imports pkg/iges need not reach into entities/build directly.
type RawRecord = build.RawRecord

// Library is the facade application code drives: one identity generator,
// one Factory bound to it, and one Model holding every entity constructed
// so far. It corresponds to one loaded (or in-progress, in-program) IGES
// assembly.
//
// Grounded on the teacher's pkg/s57.Parser/Chart split (pkg/s57/s57.go):
// Library plays the role Chart does there — the object application code
// queries after construction — while AddEntity plays Parser's role of
// turning a raw record into a registered object, without any file I/O.
type Library struct {
	ids     *identity.Generator
	factory *build.Factory
	model   *model.Model
}

// NewLibrary constructs an empty Library with a fresh identity generator.
func NewLibrary() *Library {
	ids := identity.New()
	return &Library{
		ids:     ids,
		factory: build.NewFactory(ids),
		model:   model.New(ids),
	}
}

// Reserve binds an ObjectID to (igesModelID, sequenceNumber) ahead of the
// referencing entity's construction (spec.md §4.1, §9 "Deferred
// construction and reservation"). Pass the returned ID back via
// RawRecord.ReservedID/HasReserved when the target's own record is later
// constructed.
func (l *Library) Reserve(igesModelID uint32, entityType uint16, sequenceNumber uint32) (identity.ObjectID, error) {
	id, _, err := l.ids.Reserve(igesModelID, entityType, sequenceNumber)
	return id, err
}

// AddEntity constructs the concrete entity described by rec, registers it
// with the underlying Model (wiring cross-references to/from every entity
// already present), and returns it.
func (l *Library) AddEntity(rec RawRecord) (entities.Entity, error) {
	ent, err := l.factory.Construct(rec)
	if err != nil {
		return nil, fmt.Errorf("iges: construct entity: %w", err)
	}
	if err := l.model.Insert(ent); err != nil {
		return nil, fmt.Errorf("iges: register entity: %w", err)
	}
	return ent, nil
}

// Lookup returns the entity registered under id, or nil if none is.
func (l *Library) Lookup(id identity.ObjectID) entities.Entity { return l.model.Get(id) }

// Remove deregisters id, unresolving every remaining entity's reference to
// it (spec.md §5).
func (l *Library) Remove(id identity.ObjectID) { l.model.Remove(id) }

// All returns every entity in insertion order.
func (l *Library) All() []entities.Entity { return l.model.All() }

// Count returns the number of entities currently registered.
func (l *Library) Count() int { return l.model.Count() }

// IsReady reports whether every reference is resolved and every entity is
// individually valid (spec.md §3 "Model container").
func (l *Library) IsReady() bool { return l.model.IsReady() }

// UnresolvedReferences returns the sorted set of ObjectIDs still
// unresolved across every registered entity.
func (l *Library) UnresolvedReferences() []identity.ObjectID { return l.model.UnresolvedReferences() }

// Validate runs whole-library validation: reference resolution plus every
// entity's own Validate().
func (l *Library) Validate() entities.ValidationResult { return l.model.Validate() }

// Globals exposes the file-level default record (unit flag, minimum
// resolution, maximum line weight, ...).
func (l *Library) Globals() *model.GlobalParameters { return &l.model.Globals }

// EntitiesInBounds returns every curve/surface entity whose bounding box
// intersects the axis-aligned region [lo, hi], via the Model's R-tree
// spatial index.
func (l *Library) EntitiesInBounds(lo, hi [3]float64) []entities.Entity {
	return l.model.EntitiesInBounds(lo, hi)
}

// PointAt evaluates a curve at parameter t, a thin convenience wrapper
// around algorithms.PointAt for callers that only import pkg/iges.
func PointAt(c entities.Curve, t float64) (entities.Vec3, error) {
	return algorithms.PointAt(c, t)
}

// BoundingBox returns the axis-aligned box spanning an adaptively
// discretized sample of c, at the default curve-discretization tolerance
// of spec.md §6 (1e-6).
func BoundingBox(c entities.Curve) (bbox.Box, error) {
	return algorithms.BoundingBox(c, 1e-6)
}
