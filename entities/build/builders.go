package build

import (
	"github.com/habami/igesio-go/entities"
	"github.com/habami/igesio-go/entities/curves"
	"github.com/habami/igesio-go/entities/structures"
	"github.com/habami/igesio-go/entities/surfaces"
	"github.com/habami/igesio-go/internal/numerics"
)

// numerics3 aliases the 3-vector type used throughout the PD parameter
// layouts below.
type numerics3 = numerics.Vector3d

// matrix3FromRows builds a row-major 3x3 matrix from a type-124 parameter
// list ordered R11,R12,R13,T1,R21,R22,R23,T2,R31,R32,R33,T3.
func matrix3FromRows(vals []float64) numerics.Matrix3d {
	return numerics.Matrix3d{M: [3][3]float64{
		{vals[0], vals[1], vals[2]},
		{vals[4], vals[5], vals[6]},
		{vals[8], vals[9], vals[10]},
	}}
}

func numerics3XYZ(x, y, z float64) numerics3 { return numerics.V3(x, y, z) }

// buildCircularArc reads type-100 parameters: ZT, X1,Y1 (center), X2,Y2
// (start), X3,Y3 (terminate) (IGES PD layout; spec.md §4.5).
func (f *Factory) buildCircularArc(rec RawRecord) (entities.Entity, error) {
	p := rec.Params
	zt, err := realAt(p, "CircularArc", 0)
	if err != nil {
		return nil, err
	}
	center, err := vec2At(p, "CircularArc", 1)
	if err != nil {
		return nil, err
	}
	start, err := vec2At(p, "CircularArc", 3)
	if err != nil {
		return nil, err
	}
	terminate, err := vec2At(p, "CircularArc", 5)
	if err != nil {
		return nil, err
	}
	base, err := f.newBase(rec)
	if err != nil {
		return nil, err
	}
	return curves.NewCircularArc(base, zt, center, start, terminate)
}

// buildCompositeCurve reads type-102 parameters: N, then N sub-curve
// pointers, already resolved into rec.PDPointers (spec.md §4.5).
func (f *Factory) buildCompositeCurve(rec RawRecord) (entities.Entity, error) {
	base, err := f.newBase(rec)
	if err != nil {
		return nil, err
	}
	return curves.NewCompositeCurve(base, rec.PDPointers), nil
}

// buildConicArc reads type-104 parameters: A,B,C,D,E,F, ZT, X1,Y1 (start),
// X2,Y2 (terminate); form number selects ConicForm (spec.md §4.5).
func (f *Factory) buildConicArc(rec RawRecord) (entities.Entity, error) {
	p := rec.Params
	coef, err := realsFrom(p, "ConicArc", 0, 6)
	if err != nil {
		return nil, err
	}
	zt, err := realAt(p, "ConicArc", 6)
	if err != nil {
		return nil, err
	}
	start, err := vec2At(p, "ConicArc", 7)
	if err != nil {
		return nil, err
	}
	end, err := vec2At(p, "ConicArc", 9)
	if err != nil {
		return nil, err
	}
	base, err := f.newBase(rec)
	if err != nil {
		return nil, err
	}
	return curves.NewConicArc(base, curves.ConicForm(rec.FormNumber), coef[0], coef[1], coef[2], coef[3], coef[4], coef[5], zt, start, end)
}

// buildCopiousData reads type-106 parameters: N (point count), then N*3
// reals for the coordinate matrix, and — for form 13 only — a further N*3
// reals for the associated-vector matrix (spec.md §4.5).
func (f *Factory) buildCopiousData(rec RawRecord) (entities.Entity, error) {
	p := rec.Params
	n, err := intAt(p, "CopiousData", 0)
	if err != nil {
		return nil, err
	}
	if n <= 0 {
		return nil, entities.DataFormatError{Entity: "CopiousData", Reason: "point count must be positive"}
	}
	points := make([]numerics3, n)
	idx := 1
	for i := 0; i < n; i++ {
		v, err := vec3At(p, "CopiousData", idx)
		if err != nil {
			return nil, err
		}
		points[i] = v
		idx += 3
	}
	form := curves.CopiousDataForm(rec.FormNumber)
	var vectors []numerics3
	if form == curves.CopiousPolyline13 {
		vectors = make([]numerics3, n)
		for i := 0; i < n; i++ {
			v, err := vec3At(p, "CopiousData", idx)
			if err != nil {
				return nil, err
			}
			vectors[i] = v
			idx += 3
		}
	}
	base, err := f.newBase(rec)
	if err != nil {
		return nil, err
	}
	return curves.NewCopiousData(base, form, points, vectors)
}

// buildLine reads type-110 parameters: X1,Y1,Z1,X2,Y2,Z2 (spec.md §4.5).
func (f *Factory) buildLine(rec RawRecord) (entities.Entity, error) {
	p := rec.Params
	p1, err := vec3At(p, "Line", 0)
	if err != nil {
		return nil, err
	}
	p2, err := vec3At(p, "Line", 3)
	if err != nil {
		return nil, err
	}
	base, err := f.newBase(rec)
	if err != nil {
		return nil, err
	}
	return curves.NewLine(base, curves.LineForm(rec.FormNumber), p1, p2)
}

// buildParametricSplineCurve reads type-112 parameters: H (degree), NDIM, N
// (segment count), N+1 breakpoints, then N segments of 12 coefficients each
// (spec.md §4.5). The standard's leading CTYPE classification parameter is
// not modeled since nothing downstream distinguishes curve families by it.
func (f *Factory) buildParametricSplineCurve(rec RawRecord) (entities.Entity, error) {
	p := rec.Params
	h, err := intAt(p, "ParametricSplineCurve", 0)
	if err != nil {
		return nil, err
	}
	ndim, err := intAt(p, "ParametricSplineCurve", 1)
	if err != nil {
		return nil, err
	}
	n, err := intAt(p, "ParametricSplineCurve", 2)
	if err != nil {
		return nil, err
	}
	idx := 3
	breakpoints, err := realsFrom(p, "ParametricSplineCurve", idx, n+1)
	if err != nil {
		return nil, err
	}
	idx += n + 1
	segs := make([]curves.SplineSegment, n)
	for i := 0; i < n; i++ {
		c, err := realsFrom(p, "ParametricSplineCurve", idx, 12)
		if err != nil {
			return nil, err
		}
		segs[i] = curves.SplineSegment{
			Ax: c[0], Bx: c[1], Cx: c[2], Dx: c[3],
			Ay: c[4], By: c[5], Cy: c[6], Dy: c[7],
			Az: c[8], Bz: c[9], Cz: c[10], Dz: c[11],
		}
		idx += 12
	}
	base, err := f.newBase(rec)
	if err != nil {
		return nil, err
	}
	return curves.NewParametricSplineCurve(base, curves.SplineDegree(h), ndim, breakpoints, segs)
}

// buildRationalBSplineCurve reads type-126 parameters: K, M, PROP1..PROP4,
// K+M+2 knots, K+1 weights, (K+1) control points, V0, V1 (spec.md §4.5).
func (f *Factory) buildRationalBSplineCurve(rec RawRecord) (entities.Entity, error) {
	p := rec.Params
	k, err := intAt(p, "RationalBSplineCurve", 0)
	if err != nil {
		return nil, err
	}
	m, err := intAt(p, "RationalBSplineCurve", 1)
	if err != nil {
		return nil, err
	}
	planar, err := boolAt(p, "RationalBSplineCurve", 2)
	if err != nil {
		return nil, err
	}
	_, err = boolAt(p, "RationalBSplineCurve", 3) // PROP2: closed-curve flag, not separately modeled
	if err != nil {
		return nil, err
	}
	periodic, err := boolAt(p, "RationalBSplineCurve", 5)
	if err != nil {
		return nil, err
	}
	idx := 6
	numCtrl := k + 1
	numKnots := numCtrl + m + 1
	knots, err := realsFrom(p, "RationalBSplineCurve", idx, numKnots)
	if err != nil {
		return nil, err
	}
	idx += numKnots
	weights, err := realsFrom(p, "RationalBSplineCurve", idx, numCtrl)
	if err != nil {
		return nil, err
	}
	idx += numCtrl
	control := make([]numerics3, numCtrl)
	for i := 0; i < numCtrl; i++ {
		v, err := vec3At(p, "RationalBSplineCurve", idx)
		if err != nil {
			return nil, err
		}
		control[i] = v
		idx += 3
	}
	v0, err := realAt(p, "RationalBSplineCurve", idx)
	if err != nil {
		return nil, err
	}
	v1, err := realAt(p, "RationalBSplineCurve", idx+1)
	if err != nil {
		return nil, err
	}
	base, err := f.newBase(rec)
	if err != nil {
		return nil, err
	}
	return curves.NewRationalBSplineCurve(base, m, control, weights, knots, planar, periodic, v0, v1)
}

// buildCurveOnParametricSurface reads type-142 parameters: CRTN (creation
// type), then the surface, base-curve (B) and world-curve (C) pointers via
// rec.PDPointers, then PREF (preferred-representation flag) (spec.md §4.5).
func (f *Factory) buildCurveOnParametricSurface(rec RawRecord) (entities.Entity, error) {
	p := rec.Params
	crtn, err := intAt(p, "CurveOnParametricSurface", 0)
	if err != nil {
		return nil, err
	}
	pref, err := intAt(p, "CurveOnParametricSurface", 1)
	if err != nil {
		return nil, err
	}
	surfaceRef, err := pdPointer(rec, "CurveOnParametricSurface", 0)
	if err != nil {
		return nil, err
	}
	baseCurveRef, err := pdPointer(rec, "CurveOnParametricSurface", 1)
	if err != nil {
		return nil, err
	}
	worldCurveRef, err := pdPointer(rec, "CurveOnParametricSurface", 2)
	if err != nil {
		return nil, err
	}
	base, err := f.newBase(rec)
	if err != nil {
		return nil, err
	}
	return curves.NewCurveOnParametricSurface(base, surfaceRef, baseCurveRef, worldCurveRef, curves.CreationType(crtn), pref != 0), nil
}

// buildRuledSurface reads type-118 parameters: C1, C2 (pointers via
// rec.PDPointers), DIRFLAG (reversed), DEVFLAG (developable) (spec.md §4.6).
func (f *Factory) buildRuledSurface(rec RawRecord) (entities.Entity, error) {
	p := rec.Params
	reversed, err := boolAt(p, "RuledSurface", 0)
	if err != nil {
		return nil, err
	}
	developable, err := boolAt(p, "RuledSurface", 1)
	if err != nil {
		return nil, err
	}
	c1, err := pdPointer(rec, "RuledSurface", 0)
	if err != nil {
		return nil, err
	}
	c2, err := pdPointer(rec, "RuledSurface", 1)
	if err != nil {
		return nil, err
	}
	base, err := f.newBase(rec)
	if err != nil {
		return nil, err
	}
	return surfaces.NewRuledSurface(base, c1, c2, reversed, developable), nil
}

// buildSurfaceOfRevolution reads type-120 parameters: axis and generatrix
// pointers via rec.PDPointers, then SA, TA (start/terminate angle)
// (spec.md §4.6).
func (f *Factory) buildSurfaceOfRevolution(rec RawRecord) (entities.Entity, error) {
	p := rec.Params
	sa, err := realAt(p, "SurfaceOfRevolution", 0)
	if err != nil {
		return nil, err
	}
	ta, err := realAt(p, "SurfaceOfRevolution", 1)
	if err != nil {
		return nil, err
	}
	axis, err := pdPointer(rec, "SurfaceOfRevolution", 0)
	if err != nil {
		return nil, err
	}
	generatrix, err := pdPointer(rec, "SurfaceOfRevolution", 1)
	if err != nil {
		return nil, err
	}
	base, err := f.newBase(rec)
	if err != nil {
		return nil, err
	}
	return surfaces.NewSurfaceOfRevolution(base, axis, generatrix, sa, ta)
}

// buildTabulatedCylinder reads type-122 parameters: directrix pointer via
// rec.PDPointers, then LX,LY,LZ (location) (spec.md §4.6).
func (f *Factory) buildTabulatedCylinder(rec RawRecord) (entities.Entity, error) {
	p := rec.Params
	loc, err := vec3At(p, "TabulatedCylinder", 0)
	if err != nil {
		return nil, err
	}
	directrix, err := pdPointer(rec, "TabulatedCylinder", 0)
	if err != nil {
		return nil, err
	}
	base, err := f.newBase(rec)
	if err != nil {
		return nil, err
	}
	return surfaces.NewTabulatedCylinder(base, directrix, loc), nil
}

// buildRationalBSplineSurface reads type-128 parameters: K1,K2,M1,M2,
// PROP1..PROP5, U-knots, V-knots, weight matrix, control net, U0,U1,V0,V1
// (spec.md §4.6).
func (f *Factory) buildRationalBSplineSurface(rec RawRecord) (entities.Entity, error) {
	p := rec.Params
	k1, err := intAt(p, "RationalBSplineSurface", 0)
	if err != nil {
		return nil, err
	}
	k2, err := intAt(p, "RationalBSplineSurface", 1)
	if err != nil {
		return nil, err
	}
	m1, err := intAt(p, "RationalBSplineSurface", 2)
	if err != nil {
		return nil, err
	}
	m2, err := intAt(p, "RationalBSplineSurface", 3)
	if err != nil {
		return nil, err
	}
	closedU, err := boolAt(p, "RationalBSplineSurface", 4)
	if err != nil {
		return nil, err
	}
	closedV, err := boolAt(p, "RationalBSplineSurface", 5)
	if err != nil {
		return nil, err
	}
	_, err = boolAt(p, "RationalBSplineSurface", 6) // PROP3: rational/polynomial flag, not separately modeled
	if err != nil {
		return nil, err
	}
	periodicU, err := boolAt(p, "RationalBSplineSurface", 7)
	if err != nil {
		return nil, err
	}
	periodicV, err := boolAt(p, "RationalBSplineSurface", 8)
	if err != nil {
		return nil, err
	}
	idx := 9
	nu, nv := k1+1, k2+1
	knotsU, err := realsFrom(p, "RationalBSplineSurface", idx, nu+m1+1)
	if err != nil {
		return nil, err
	}
	idx += nu + m1 + 1
	knotsV, err := realsFrom(p, "RationalBSplineSurface", idx, nv+m2+1)
	if err != nil {
		return nil, err
	}
	idx += nv + m2 + 1

	weights := make([][]float64, nu)
	for i := 0; i < nu; i++ {
		row, err := realsFrom(p, "RationalBSplineSurface", idx, nv)
		if err != nil {
			return nil, err
		}
		weights[i] = row
		idx += nv
	}

	control := make([][]numerics3, nu)
	for i := 0; i < nu; i++ {
		row := make([]numerics3, nv)
		for j := 0; j < nv; j++ {
			v, err := vec3At(p, "RationalBSplineSurface", idx)
			if err != nil {
				return nil, err
			}
			row[j] = v
			idx += 3
		}
		control[i] = row
	}

	u0, err := realAt(p, "RationalBSplineSurface", idx)
	if err != nil {
		return nil, err
	}
	u1, err := realAt(p, "RationalBSplineSurface", idx+1)
	if err != nil {
		return nil, err
	}
	v0, err := realAt(p, "RationalBSplineSurface", idx+2)
	if err != nil {
		return nil, err
	}
	v1, err := realAt(p, "RationalBSplineSurface", idx+3)
	if err != nil {
		return nil, err
	}

	base, err := f.newBase(rec)
	if err != nil {
		return nil, err
	}
	return surfaces.NewRationalBSplineSurface(base, m1, m2, control, weights, knotsU, knotsV, closedU, closedV, periodicU, periodicV, u0, u1, v0, v1)
}

// buildTransformationMatrix reads type-124 parameters: the 3x3 rotation and
// translation, row-major interleaved as R11,R12,R13,T1,R21,R22,R23,T2,
// R31,R32,R33,T3 (spec.md §4.7). The chained reference comes from the
// entity's own DE transformation-matrix field (rec.TransformationMatrix),
// not from the PD parameters.
func (f *Factory) buildTransformationMatrix(rec RawRecord) (entities.Entity, error) {
	p := rec.Params
	vals, err := realsFrom(p, "TransformationMatrix", 0, 12)
	if err != nil {
		return nil, err
	}
	r := matrix3FromRows(vals)
	t := numerics3XYZ(vals[3], vals[7], vals[11])
	base, err := f.newBase(rec)
	if err != nil {
		return nil, err
	}
	m, err := structures.NewTransformationMatrix(base, structures.TransformForm(rec.FormNumber), r, t)
	if err != nil {
		return nil, err
	}
	if target, ok := rec.TransformationMatrix.Target().(*structures.TransformationMatrix); ok {
		if err := m.SetReference(target); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// buildColorDefinition reads type-314 parameters: CC1, CC2, CC3 (RGB
// percentages); the optional color-name string is not modeled (spec.md §6
// catalog).
func (f *Factory) buildColorDefinition(rec RawRecord) (entities.Entity, error) {
	p := rec.Params
	rgb, err := realsFrom(p, "ColorDefinition", 0, 3)
	if err != nil {
		return nil, err
	}
	base, err := f.newBase(rec)
	if err != nil {
		return nil, err
	}
	return structures.NewColorDefinition(base, rgb[0], rgb[1], rgb[2])
}
