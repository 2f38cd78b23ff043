// Package iges provides a clean public API over the entity graph and
// evaluation kernel of internal/..., entities/... and model/....
//
// It does not read or write IGES files — that collaborator lives outside
// this module's scope (spec.md §1, §6) — but it gives application code a
// single entry point for constructing a Library of entities from raw
// directory-entry/parameter-data records, querying it, and evaluating its
// curves and surfaces, the way the teacher's pkg/s57 wraps internal/parser
// behind a documented facade rather than exposing the raw record types.
//
// # Basic usage
//
//	lib := iges.NewLibrary()
//	arc, err := lib.AddEntity(iges.RawRecord{
//	    EntityType: 100,
//	    Params: entities.NewParameterVector(entities.Real(0), entities.Real(0), entities.Real(0),
//	        entities.Real(1), entities.Real(0), entities.Real(0), entities.Real(1)),
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	p, err := iges.PointAt(arc.(entities.Curve), math.Pi/4)
//
// # Spatial queries
//
// Once every entity referenced by a file is registered, Library exposes
// the same kind of region query the teacher's ChartIndex gives over chart
// bounds, here over entity bounding boxes:
//
//	hits := lib.EntitiesInBounds([3]float64{-10, -10, -10}, [3]float64{10, 10, 10})
package iges
