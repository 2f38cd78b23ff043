// Package surfaces implements the concrete surface entity kinds of
// spec.md §4.6, each embedding entities.Base and implementing
// entities.Surface.
package surfaces

import (
	"github.com/habami/igesio-go/entities"
	"github.com/habami/igesio-go/internal/identity"
	"github.com/habami/igesio-go/internal/numerics"
)

// RationalBSplineSurface is the type-128 entity: a tensor-product NURBS
// surface with bi-degree (M1,M2), a (K1+1)x(K2+1) control net, two knot
// vectors, and a weight matrix (spec.md §4.6).
type RationalBSplineSurface struct {
	entities.Base
	DegreeU, DegreeV int
	Control          [][]numerics.Vector3d // [i][j], i over U, j over V
	Weights          [][]float64
	KnotsU, KnotsV   []float64
	ClosedU, ClosedV bool
	PeriodicU, PeriodicV bool
	U0, U1, V0, V1   float64
}

// NewRationalBSplineSurface validates the control/weight/knot shapes.
func NewRationalBSplineSurface(base entities.Base, du, dv int, control [][]numerics.Vector3d, weights [][]float64, knotsU, knotsV []float64, closedU, closedV, periodicU, periodicV bool, u0, u1, v0, v1 float64) (*RationalBSplineSurface, error) {
	if du < 1 || dv < 1 {
		return nil, entities.DataFormatError{Entity: "RationalBSplineSurface", Reason: "degrees must be >= 1"}
	}
	nu := len(control)
	if nu == 0 {
		return nil, entities.DataFormatError{Entity: "RationalBSplineSurface", Reason: "control net must be non-empty"}
	}
	nv := len(control[0])
	if len(weights) != nu || len(weights[0]) != nv {
		return nil, entities.DataFormatError{Entity: "RationalBSplineSurface", Reason: "weight matrix shape must match control net"}
	}
	if len(knotsU) != nu+du+1 || len(knotsV) != nv+dv+1 {
		return nil, entities.DataFormatError{Entity: "RationalBSplineSurface", Reason: "knot vector length must equal control count + degree + 1"}
	}
	if u1 <= u0 || v1 <= v0 {
		return nil, entities.DataFormatError{Entity: "RationalBSplineSurface", Reason: "parameter ranges must be non-empty"}
	}
	return &RationalBSplineSurface{
		Base: base, DegreeU: du, DegreeV: dv, Control: control, Weights: weights,
		KnotsU: knotsU, KnotsV: knotsV, ClosedU: closedU, ClosedV: closedV,
		PeriodicU: periodicU, PeriodicV: periodicV, U0: u0, U1: u1, V0: v0, V1: v1,
	}, nil
}

func (s *RationalBSplineSurface) Kind() entities.Kind { return entities.KindRationalBSplineSurface }

func (s *RationalBSplineSurface) ParameterRange() (float64, float64, float64, float64) {
	return s.U0, s.U1, s.V0, s.V1
}

func (s *RationalBSplineSurface) IsUClosed() bool { return s.ClosedU || s.PeriodicU }
func (s *RationalBSplineSurface) IsVClosed() bool { return s.ClosedV || s.PeriodicV }

func findSpan(knots []float64, degree, numCtrl int, t float64) int {
	if t >= knots[numCtrl] {
		return numCtrl - 1
	}
	lo, hi := degree, numCtrl
	for lo+1 < hi {
		mid := (lo + hi) / 2
		if t < knots[mid] {
			hi = mid
		} else {
			lo = mid
		}
	}
	return lo
}

// basisDerivs is the single-axis version shared with curves.RationalBSplineCurve's
// algorithm (Piegl & Tiller Algorithm A2.3), duplicated here since Go has no
// cross-package generics-free sharing for this un-exported helper without a
// third shared package; both copies are grounded on the same NURBS book
// recurrence used throughout igesio's rational spline evaluators.
func basisDerivs(knots []float64, degree, span, n int, t float64) [][]float64 {
	p := degree
	ndu := make([][]float64, p+1)
	for i := range ndu {
		ndu[i] = make([]float64, p+1)
	}
	ndu[0][0] = 1
	left := make([]float64, p+1)
	right := make([]float64, p+1)
	for j := 1; j <= p; j++ {
		left[j] = t - knots[span+1-j]
		right[j] = knots[span+j] - t
		saved := 0.0
		for r := 0; r < j; r++ {
			ndu[j][r] = right[r+1] + left[j-r]
			temp := ndu[r][j-1] / ndu[j][r]
			ndu[r][j] = saved + right[r+1]*temp
			saved = left[j-r] * temp
		}
		ndu[j][j] = saved
	}
	ders := make([][]float64, n+1)
	for i := range ders {
		ders[i] = make([]float64, p+1)
	}
	for j := 0; j <= p; j++ {
		ders[0][j] = ndu[j][p]
	}
	a := [2][]float64{make([]float64, p+1), make([]float64, p+1)}
	for r := 0; r <= p; r++ {
		s1, s2 := 0, 1
		a[0][0] = 1
		for k := 1; k <= n; k++ {
			d := 0.0
			rk, pk := r-k, p-k
			j1, j2 := 1, k-1
			if rk < -1 {
				j1 = -rk
			}
			if r-1 > pk {
				j2 = p - r
			}
			if r >= k {
				a[s2][0] = a[s1][0] / ndu[pk+1][rk]
				d = a[s2][0] * ndu[rk][pk]
			}
			for j := j1; j <= j2; j++ {
				a[s2][j] = (a[s1][j] - a[s1][j-1]) / ndu[pk+1][rk+j]
				d += a[s2][j] * ndu[rk+j][pk]
			}
			if r <= pk {
				a[s2][k] = -a[s1][k-1] / ndu[pk+1][r]
				d += a[s2][k] * ndu[r][pk]
			}
			ders[k][r] = d
			s1, s2 = s2, s1
		}
	}
	fact := float64(p)
	for k := 1; k <= n; k++ {
		for j := 0; j <= p; j++ {
			ders[k][j] *= fact
		}
		fact *= float64(p - k)
	}
	return ders
}

// Derivatives evaluates the tensor-product rational surface and its
// partials up to total order `order`, via the quotient rule applied to the
// homogeneous-coordinate tensor-product derivatives (spec.md §4.6).
func (s *RationalBSplineSurface) Derivatives(u, v float64, order int) ([][]entities.Vec3, error) {
	if u < s.U0-1e-9 || u > s.U1+1e-9 || v < s.V0-1e-9 || v > s.V1+1e-9 {
		return nil, entities.OutOfRangeError{Reason: "(u,v) outside surface's parameter domain"}
	}
	nu, nv := len(s.Control), len(s.Control[0])
	spanU := findSpan(s.KnotsU, s.DegreeU, nu, u)
	spanV := findSpan(s.KnotsV, s.DegreeV, nv, v)
	dersU := basisDerivs(s.KnotsU, s.DegreeU, spanU, order, u)
	dersV := basisDerivs(s.KnotsV, s.DegreeV, spanV, order, v)

	type homog struct {
		xyz numerics.Vector3d
		w   float64
	}
	Aw := make([][]homog, order+1)
	for i := range Aw {
		Aw[i] = make([]homog, order+1)
	}
	for ku := 0; ku <= order; ku++ {
		for kv := 0; kv+ku <= order; kv++ {
			var sum homog
			for a := 0; a <= s.DegreeU; a++ {
				iu := spanU - s.DegreeU + a
				if iu < 0 || iu >= nu {
					continue
				}
				for b := 0; b <= s.DegreeV; b++ {
					iv := spanV - s.DegreeV + b
					if iv < 0 || iv >= nv {
						continue
					}
					w := s.Weights[iu][iv]
					p := s.Control[iu][iv]
					basis := dersU[ku][a] * dersV[kv][b]
					sum.xyz = sum.xyz.Add(p.Scale(w * basis))
					sum.w += w * basis
				}
			}
			Aw[ku][kv] = sum
		}
	}

	binom := func(n, k int) float64 {
		res := 1.0
		for i := 0; i < k; i++ {
			res = res * float64(n-i) / float64(i+1)
		}
		return res
	}

	out := make([][]entities.Vec3, order+1)
	for i := range out {
		out[i] = make([]entities.Vec3, order+1)
	}
	w0 := Aw[0][0].w
	if w0 == 0 {
		return nil, entities.ImplementationError{Reason: "zero weight sum at surface evaluation point"}
	}
	for total := 0; total <= order; total++ {
		for ku := 0; ku <= total; ku++ {
			kv := total - ku
			num := Aw[ku][kv].xyz
			for iu := 0; iu <= ku; iu++ {
				for iv := 0; iv <= kv; iv++ {
					if iu == 0 && iv == 0 {
						continue
					}
					coeff := binom(ku, iu) * binom(kv, iv) * Aw[iu][iv].w
					num = num.Sub(out[ku-iu][kv-iv].Scale(coeff))
				}
			}
			out[ku][kv] = num.Scale(1.0 / w0)
		}
	}
	return out, nil
}

func (s *RationalBSplineSurface) TransformationRef() *entities.ReferenceField {
	return &s.DE().TransformationMatrix
}
func (s *RationalBSplineSurface) ChildIDs() []identity.ObjectID { return s.BaseChildIDs(nil) }
func (s *RationalBSplineSurface) UnresolvedReferences() []identity.ObjectID {
	return s.BaseUnresolvedReferences(nil)
}
func (s *RationalBSplineSurface) SetUnresolvedReference(candidate entities.Entity) bool {
	return s.Base.SetUnresolvedReference(candidate)
}

func (s *RationalBSplineSurface) UnresolveReference(removed identity.ObjectID) bool {
	return s.Base.UnresolveReference(removed)
}
func (s *RationalBSplineSurface) Validate() entities.ValidationResult { return s.ValidateDE() }
