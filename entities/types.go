package entities

import "github.com/habami/igesio-go/internal/numerics"

// Vec3 is the vector type used throughout the curve/surface interfaces.
type Vec3 = numerics.Vector3d
