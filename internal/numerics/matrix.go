package numerics

import "math"

// Matrix3d is a 3x3 matrix stored row-major, used for rotations and for
// the transformation-matrix entity's linear part.
type Matrix3d struct {
	M [3][3]float64
}

// Identity3 returns the 3x3 identity matrix.
func Identity3() Matrix3d {
	return Matrix3d{M: [3][3]float64{
		{1, 0, 0},
		{0, 1, 0},
		{0, 0, 1},
	}}
}

// Col returns column i (0..2) as a Vector3d.
func (m Matrix3d) Col(i int) Vector3d {
	return Vector3d{X: m.M[0][i], Y: m.M[1][i], Z: m.M[2][i]}
}

// MatrixFromColumns builds a matrix whose columns are the given vectors.
func MatrixFromColumns(c0, c1, c2 Vector3d) Matrix3d {
	return Matrix3d{M: [3][3]float64{
		{c0.X, c1.X, c2.X},
		{c0.Y, c1.Y, c2.Y},
		{c0.Z, c1.Z, c2.Z},
	}}
}

// Apply computes m*v.
func (m Matrix3d) Apply(v Vector3d) Vector3d {
	return Vector3d{
		X: m.M[0][0]*v.X + m.M[0][1]*v.Y + m.M[0][2]*v.Z,
		Y: m.M[1][0]*v.X + m.M[1][1]*v.Y + m.M[1][2]*v.Z,
		Z: m.M[2][0]*v.X + m.M[2][1]*v.Y + m.M[2][2]*v.Z,
	}
}

// Mul computes the matrix product m*other.
func (m Matrix3d) Mul(other Matrix3d) Matrix3d {
	var r Matrix3d
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			var sum float64
			for k := 0; k < 3; k++ {
				sum += m.M[i][k] * other.M[k][j]
			}
			r.M[i][j] = sum
		}
	}
	return r
}

// Transpose returns the transpose of m. For an orthonormal matrix this is
// also its inverse.
func (m Matrix3d) Transpose() Matrix3d {
	var r Matrix3d
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			r.M[i][j] = m.M[j][i]
		}
	}
	return r
}

// Determinant returns det(m).
func (m Matrix3d) Determinant() float64 {
	return m.M[0][0]*(m.M[1][1]*m.M[2][2]-m.M[1][2]*m.M[2][1]) -
		m.M[0][1]*(m.M[1][0]*m.M[2][2]-m.M[1][2]*m.M[2][0]) +
		m.M[0][2]*(m.M[1][0]*m.M[2][1]-m.M[1][1]*m.M[2][0])
}

// IsOrthonormal reports whether m's columns are unit vectors, mutually
// orthogonal, within tol.
func (m Matrix3d) IsOrthonormal(tol float64) bool {
	for i := 0; i < 3; i++ {
		if math.Abs(m.Col(i).Norm()-1) > tol {
			return false
		}
	}
	for i := 0; i < 3; i++ {
		for j := i + 1; j < 3; j++ {
			if math.Abs(m.Col(i).Dot(m.Col(j))) > tol {
				return false
			}
		}
	}
	return true
}

// Equal reports whether m and other agree element-wise within tol.
func (m Matrix3d) Equal(other Matrix3d, tol float64) bool {
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			if math.Abs(m.M[i][j]-other.M[i][j]) > tol {
				return false
			}
		}
	}
	return true
}

// RotationAboutAxis builds the right-handed rotation matrix that rotates by
// angle radians about the unit axis (Rodrigues' formula).
func RotationAboutAxis(axis Vector3d, angle float64) Matrix3d {
	c, s := math.Cos(angle), math.Sin(angle)
	t := 1 - c
	x, y, z := axis.X, axis.Y, axis.Z
	return Matrix3d{M: [3][3]float64{
		{t*x*x + c, t*x*y - s*z, t*x*z + s*y},
		{t*x*y + s*z, t*y*y + c, t*y*z - s*x},
		{t*x*z - s*y, t*y*z + s*x, t*z*z + c},
	}}
}

// NxN3 is a dynamic N-row, 3-column matrix (spec.md §2: "dynamic Nx3"),
// used for copious-data coordinate and associated-vector arrays.
type NxN3 struct {
	Rows []Vector3d
}

func NewNxN3(n int) NxN3 { return NxN3{Rows: make([]Vector3d, n)} }

func (m NxN3) Len() int { return len(m.Rows) }

func (m NxN3) At(i int) Vector3d { return m.Rows[i] }
