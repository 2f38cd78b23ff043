package model

// GlobalParameters carries the file-level defaults an IGES Global section
// records (spec.md §3 "Owns a global-parameter record with file-level
// defaults (unit flag, minimum resolution, maximum line weight, etc.)").
// Fields beyond the three spec.md names are drawn from the same IGES
// Global-record layout the reader collaborator would populate.
type GlobalParameters struct {
	// UnitFlag is the IGES units code (1=inches, 2=millimeters, ...).
	UnitFlag int
	// UnitName is the free-text unit name paired with UnitFlag (e.g. "MM").
	UnitName string

	// MinResolution is the smallest distance two distinct points in the
	// model are allowed to represent (IGES Global field 13).
	MinResolution float64
	// MaxCoordinateValue bounds the model's largest coordinate magnitude,
	// 0 meaning unspecified (IGES Global field 14).
	MaxCoordinateValue float64

	// MaxLineWeight is the largest line-weight value any entity's DE
	// record may carry (IGES Global field 17).
	MaxLineWeight int
	// LineWeightUnit is the real-world size, in model units, one unit of
	// line weight represents (IGES Global field 16).
	LineWeightUnit float64

	ProductIdentification string
	Author                string
	Organization          string
}

// DefaultGlobalParameters returns the conservative defaults a freshly
// created model starts with, before a reader or application code
// overwrites them from the source file's Global section.
func DefaultGlobalParameters() GlobalParameters {
	return GlobalParameters{
		UnitFlag:       2,
		UnitName:       "MM",
		MinResolution:  1e-6,
		MaxLineWeight:  1,
		LineWeightUnit: 1,
	}
}
