package algorithms

import (
	"math"

	"github.com/habami/igesio-go/entities"
	"github.com/habami/igesio-go/internal/bbox"
	"github.com/habami/igesio-go/internal/numerics"
)

// PointAtUV returns S(u,v) (spec.md §3 "Surface ... convenience readers").
func PointAtUV(s entities.Surface, u, v float64) (numerics.Vector3d, error) {
	d, err := s.Derivatives(u, v, 0)
	if err != nil {
		return numerics.Vector3d{}, err
	}
	return d[0][0], nil
}

// NormalAtUV returns the unit surface normal Su×Sv at (u,v), the zero
// vector where the partials are degenerate (a singular point).
func NormalAtUV(s entities.Surface, u, v float64) (numerics.Vector3d, error) {
	d, err := s.Derivatives(u, v, 1)
	if err != nil {
		return numerics.Vector3d{}, err
	}
	n, ok := d[1][0].Cross(d[0][1]).Normalized()
	if !ok {
		return numerics.Vector3d{}, nil
	}
	return n, nil
}

// FundamentalForms holds the first (E,F,G) and second (L,M,N) fundamental
// form coefficients at a surface point (spec.md §2/§3).
type FundamentalForms struct {
	E, F, G float64
	L, M, N float64
}

// Fundamental returns the first and second fundamental form coefficients
// at (u,v), derived entirely from Surface.Derivatives(u,v,2).
func Fundamental(s entities.Surface, u, v float64) (FundamentalForms, error) {
	d, err := s.Derivatives(u, v, 2)
	if err != nil {
		return FundamentalForms{}, err
	}
	su, sv := d[1][0], d[0][1]
	suu, suv, svv := d[2][0], d[1][1], d[0][2]

	normal, ok := su.Cross(sv).Normalized()
	if !ok {
		return FundamentalForms{}, entities.ImplementationError{Reason: "singular surface point: Su and Sv are parallel"}
	}

	return FundamentalForms{
		E: su.Dot(su), F: su.Dot(sv), G: sv.Dot(sv),
		L: suu.Dot(normal), M: suv.Dot(normal), N: svv.Dot(normal),
	}, nil
}

// GaussianCurvature returns K = (LN - M²)/(EG - F²) at (u,v).
func GaussianCurvature(s entities.Surface, u, v float64) (float64, error) {
	ff, err := Fundamental(s, u, v)
	if err != nil {
		return 0, err
	}
	denom := ff.E*ff.G - ff.F*ff.F
	if math.Abs(denom) < numerics.AbsTolerance {
		return 0, entities.ImplementationError{Reason: "degenerate first fundamental form"}
	}
	return (ff.L*ff.N - ff.M*ff.M) / denom, nil
}

// MeanCurvature returns H = (EN - 2FM + GL)/(2(EG - F²)) at (u,v).
func MeanCurvature(s entities.Surface, u, v float64) (float64, error) {
	ff, err := Fundamental(s, u, v)
	if err != nil {
		return 0, err
	}
	denom := ff.E*ff.G - ff.F*ff.F
	if math.Abs(denom) < numerics.AbsTolerance {
		return 0, entities.ImplementationError{Reason: "degenerate first fundamental form"}
	}
	return (ff.E*ff.N - 2*ff.F*ff.M + ff.G*ff.L) / (2 * denom), nil
}

// PrincipalCurvatures returns the two principal curvatures k1 >= k2,
// derived from the mean and Gaussian curvatures via k = H ± sqrt(H²-K).
func PrincipalCurvatures(s entities.Surface, u, v float64) (k1, k2 float64, err error) {
	h, err := MeanCurvature(s, u, v)
	if err != nil {
		return 0, 0, err
	}
	k, err := GaussianCurvature(s, u, v)
	if err != nil {
		return 0, 0, err
	}
	disc := h*h - k
	if disc < 0 {
		disc = 0 // numerical noise at an umbilic point
	}
	root := math.Sqrt(disc)
	return h + root, h - root, nil
}

// Area returns the surface area over s's full parameter domain (spec.md
// §2 "surface area"): the double integral of sqrt(EG-F²) du dv, via nested
// adaptive Simpson quadrature.
func Area(s entities.Surface) (float64, error) {
	u0, u1, v0, v1 := s.ParameterRange()
	return SubArea(s, u0, u1, v0, v1)
}

// SubArea returns the surface area over the sub-rectangle
// [u0,u1]x[v0,v1].
func SubArea(s entities.Surface, u0, u1, v0, v1 float64) (float64, error) {
	if math.IsInf(u0, 0) || math.IsInf(u1, 0) || math.IsInf(v0, 0) || math.IsInf(v1, 0) {
		return 0, entities.DataFormatError{Entity: "algorithms.SubArea", Reason: "cannot integrate over an unbounded parameter domain"}
	}
	var evalErr error
	integrand := func(u, v float64) float64 {
		ff, err := Fundamental(s, u, v)
		if err != nil {
			evalErr = err
			return 0
		}
		disc := ff.E*ff.G - ff.F*ff.F
		if disc < 0 {
			disc = 0
		}
		return math.Sqrt(disc)
	}
	area := adaptiveSimpson2D(integrand, u0, u1, v0, v1, defaultLengthTolerance, maxSubdivisionDepth)
	if evalErr != nil {
		return 0, evalErr
	}
	return area, nil
}

// SurfaceBoundingBox returns the axis-aligned box spanning a regular grid
// sample of s over its full parameter domain, with n points sampled per
// parametric direction.
func SurfaceBoundingBox(s entities.Surface, n int) (bbox.Box, error) {
	u0, u1, v0, v1 := s.ParameterRange()
	if math.IsInf(u0, 0) || math.IsInf(u1, 0) || math.IsInf(v0, 0) || math.IsInf(v1, 0) {
		return bbox.Box{}, entities.DataFormatError{Entity: "algorithms.SurfaceBoundingBox", Reason: "cannot bound an unbounded parameter domain"}
	}
	if n < 1 {
		n = 1
	}
	us := linspace(u0, u1, n)
	vs := linspace(v0, v1, n)
	points := make([]numerics.Vector3d, 0, len(us)*len(vs))
	for _, u := range us {
		for _, v := range vs {
			p, err := PointAtUV(s, u, v)
			if err != nil {
				return bbox.Box{}, err
			}
			points = append(points, p)
		}
	}
	return pointsBoundingBox(points)
}
