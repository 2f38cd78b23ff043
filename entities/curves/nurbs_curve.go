package curves

import (
	"github.com/habami/igesio-go/entities"
	"github.com/habami/igesio-go/internal/identity"
	"github.com/habami/igesio-go/internal/numerics"
)

// RationalBSplineCurve is the type-126 NURBS entity: degree M, K+1 control
// points, an open or periodic knot vector, and per-point weights
// (spec.md §4.5).
type RationalBSplineCurve struct {
	entities.Base
	Degree   int
	Control  []numerics.Vector3d
	Weights  []float64
	Knots    []float64 // length = len(Control)+Degree+1
	Planar   bool
	Periodic bool
	V0, V1   float64
}

// NewRationalBSplineCurve validates knot/control/weight shapes.
func NewRationalBSplineCurve(base entities.Base, degree int, control []numerics.Vector3d, weights, knots []float64, planar, periodic bool, v0, v1 float64) (*RationalBSplineCurve, error) {
	if degree < 1 {
		return nil, entities.DataFormatError{Entity: "RationalBSplineCurve", Reason: "degree must be >= 1"}
	}
	if len(weights) != len(control) {
		return nil, entities.DataFormatError{Entity: "RationalBSplineCurve", Reason: "weight count must equal control-point count"}
	}
	if len(knots) != len(control)+degree+1 {
		return nil, entities.DataFormatError{Entity: "RationalBSplineCurve", Reason: "knot count must equal control-point count + degree + 1"}
	}
	for _, w := range weights {
		if w <= 0 {
			return nil, entities.DataFormatError{Entity: "RationalBSplineCurve", Reason: "weights must be positive"}
		}
	}
	for i := 1; i < len(knots); i++ {
		if knots[i] < knots[i-1] {
			return nil, entities.DataFormatError{Entity: "RationalBSplineCurve", Reason: "knot vector must be non-decreasing"}
		}
	}
	if v1 <= v0 {
		return nil, entities.DataFormatError{Entity: "RationalBSplineCurve", Reason: "parameter range must be non-empty"}
	}
	return &RationalBSplineCurve{
		Base: base, Degree: degree, Control: control, Weights: weights, Knots: knots,
		Planar: planar, Periodic: periodic, V0: v0, V1: v1,
	}, nil
}

func (r *RationalBSplineCurve) Kind() entities.Kind { return entities.KindRationalBSplineCurve }

func (r *RationalBSplineCurve) ParameterRange() (float64, float64) { return r.V0, r.V1 }

func (r *RationalBSplineCurve) IsClosed() bool {
	if r.Periodic {
		return true
	}
	d0, _ := r.Derivatives(r.V0, 0)
	d1, _ := r.Derivatives(r.V1, 0)
	return d0[0].EqualAbs(d1[0], numerics.AbsTolerance)
}

// findSpan locates the knot span index i such that Knots[i] <= t < Knots[i+1].
func (r *RationalBSplineCurve) findSpan(t float64) int {
	n := len(r.Control) - 1
	if t >= r.Knots[n+1] {
		return n
	}
	lo, hi := r.Degree, n+1
	for lo+1 < hi {
		mid := (lo + hi) / 2
		if t < r.Knots[mid] {
			hi = mid
		} else {
			lo = mid
		}
	}
	return lo
}

// basisFunsDerivs computes the non-vanishing B-spline basis functions and
// their derivatives up to order n at t, using the standard de Boor-derived
// algorithm (Piegl & Tiller, "The NURBS Book", Algorithm A2.3) — the
// recurrence used by igesio's rational-spline evaluator.
func (r *RationalBSplineCurve) basisFunsDerivs(span, n int, t float64) [][]float64 {
	p := r.Degree
	ndu := make([][]float64, p+1)
	for i := range ndu {
		ndu[i] = make([]float64, p+1)
	}
	ndu[0][0] = 1
	left := make([]float64, p+1)
	right := make([]float64, p+1)
	for j := 1; j <= p; j++ {
		left[j] = t - r.Knots[span+1-j]
		right[j] = r.Knots[span+j] - t
		saved := 0.0
		for rIdx := 0; rIdx < j; rIdx++ {
			ndu[j][rIdx] = right[rIdx+1] + left[j-rIdx]
			temp := ndu[rIdx][j-1] / ndu[j][rIdx]
			ndu[rIdx][j] = saved + right[rIdx+1]*temp
			saved = left[j-rIdx] * temp
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
	for rIdx := 0; rIdx <= p; rIdx++ {
		s1, s2 := 0, 1
		a[0][0] = 1
		for k := 1; k <= n; k++ {
			d := 0.0
			rk, pk := rIdx-k, p-k
			if rIdx >= k {
				a[s2][0] = a[s1][0] / ndu[pk+1][rk]
				d = a[s2][0] * ndu[rk][pk]
			}
			j1 := 1
			if rk >= -1 {
				j1 = 1
			} else {
				j1 = -rk
			}
			j2 := k - 1
			if rIdx-1 <= pk {
				j2 = k - 1
			} else {
				j2 = p - rIdx
			}
			for j := j1; j <= j2; j++ {
				a[s2][j] = (a[s1][j] - a[s1][j-1]) / ndu[pk+1][rk+j]
				d += a[s2][j] * ndu[rk+j][pk]
			}
			if rIdx <= pk {
				a[s2][k] = -a[s1][k-1] / ndu[pk+1][rIdx]
				d += a[s2][k] * ndu[rIdx][pk]
			}
			ders[k][rIdx] = d
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

// Derivatives evaluates C(t) and derivatives to order n via the rational
// (homogeneous-weight) B-spline derivative recurrence: evaluate the
// weighted curve A(t)=sum(w_i P_i N_i) and w(t)=sum(w_i N_i) and their
// ordinary-spline derivatives, then apply the quotient rule (spec.md §4.5).
func (r *RationalBSplineCurve) Derivatives(t float64, n int) ([]entities.Vec3, error) {
	lo, hi := r.ParameterRange()
	if t < lo-1e-9 || t > hi+1e-9 {
		return nil, entities.OutOfRangeError{Reason: "parameter outside NURBS curve's range"}
	}
	span := r.findSpan(t)
	ders := r.basisFunsDerivs(span, n, t)

	// Homogeneous-coordinate derivatives Aw^(k) = sum_i N_i^(k) * (w_i*P_i, w_i).
	type homog struct {
		xyz numerics.Vector3d
		w   float64
	}
	Aw := make([]homog, n+1)
	for k := 0; k <= n; k++ {
		var sum homog
		for j := 0; j <= r.Degree; j++ {
			ctrlIdx := span - r.Degree + j
			if ctrlIdx < 0 || ctrlIdx >= len(r.Control) {
				continue
			}
			w := r.Weights[ctrlIdx]
			p := r.Control[ctrlIdx]
			n := ders[k][j]
			sum.xyz = sum.xyz.Add(p.Scale(w * n))
			sum.w += w * n
		}
		Aw[k] = sum
	}

	// Quotient rule: C^(k) = (Aw^(k) - sum_{i=1}^{k} C(k,i) * w^(i) * C^(k-i)) / w
	out := make([]entities.Vec3, n+1)
	binom := func(n, k int) float64 {
		res := 1.0
		for i := 0; i < k; i++ {
			res = res * float64(n-i) / float64(i+1)
		}
		return res
	}
	for k := 0; k <= n; k++ {
		num := Aw[k].xyz
		for i := 1; i <= k; i++ {
			num = num.Sub(out[k-i].Scale(binom(k, i) * Aw[i].w))
		}
		if Aw[0].w == 0 {
			return nil, entities.ImplementationError{Reason: "zero weight sum at NURBS evaluation point"}
		}
		out[k] = num.Scale(1.0 / Aw[0].w)
	}
	return out, nil
}

func (r *RationalBSplineCurve) TransformationRef() *entities.ReferenceField {
	return &r.DE().TransformationMatrix
}
func (r *RationalBSplineCurve) ChildIDs() []identity.ObjectID { return r.BaseChildIDs(nil) }
func (r *RationalBSplineCurve) UnresolvedReferences() []identity.ObjectID {
	return r.BaseUnresolvedReferences(nil)
}
func (r *RationalBSplineCurve) SetUnresolvedReference(candidate entities.Entity) bool {
	return r.Base.SetUnresolvedReference(candidate)
}

func (r *RationalBSplineCurve) UnresolveReference(removed identity.ObjectID) bool {
	return r.Base.UnresolveReference(removed)
}
func (r *RationalBSplineCurve) Validate() entities.ValidationResult { return r.ValidateDE() }
