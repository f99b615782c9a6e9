package spatialmath

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/num/quat"
)

// RotationMatrix is a 3x3 matrix in row major order.
// m[3*r + c] is the element in the r'th row and c'th column.
type RotationMatrix struct {
	mat [9]float64
}

// NewRotationMatrix creates the rotation matrix from a slice of floats in row major order.
func NewRotationMatrix(m []float64) (*RotationMatrix, error) {
	if len(m) != 9 {
		return nil, errors.Errorf("input slice has %d elements, need exactly 9", len(m))
	}
	mat := [9]float64{m[0], m[1], m[2], m[3], m[4], m[5], m[6], m[7], m[8]}
	return &RotationMatrix{mat}, nil
}

// NewRotationMatrixFromEulerXYZ builds the matrix Rx(x)*Ry(y)*Rz(z), rotations
// applied around the x, y and z axes in that order.
func NewRotationMatrixFromEulerXYZ(x, y, z float64) *RotationMatrix {
	cx, sx := math.Cos(x), math.Sin(x)
	cy, sy := math.Cos(y), math.Sin(y)
	cz, sz := math.Cos(z), math.Sin(z)
	mat := [9]float64{
		cy * cz, -cy * sz, sy,
		cx*sz + cz*sx*sy, cx*cz - sx*sy*sz, -cy * sx,
		sx*sz - cx*cz*sy, cz*sx + cx*sy*sz, cx * cy,
	}
	return &RotationMatrix{mat}
}

// RotationMatrix returns the orientation in rotation matrix representation.
func (rm *RotationMatrix) RotationMatrix() *RotationMatrix {
	return rm
}

// AxisAngles returns the orientation in axis angle representation.
func (rm *RotationMatrix) AxisAngles() *R4AA {
	return QuatToR4AA(rm.Quaternion())
}

// Quaternion returns orientation in quaternion representation.
func (rm *RotationMatrix) Quaternion() quat.Number {
	m := mgl64.Ident4()
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			m.Set(r, c, rm.At(r, c))
		}
	}
	qRot := mgl64.Mat4ToQuat(m)
	return Normalize(quat.Number{Real: qRot.W, Imag: qRot.X(), Jmag: qRot.Y(), Kmag: qRot.Z()})
}

// EulerAngles returns orientation in Euler angle representation: the z-y-x
// Tait-Bryan angles extracted directly from the matrix elements.
func (rm *RotationMatrix) EulerAngles() *EulerAngles {
	sy := math.Hypot(rm.At(0, 0), rm.At(1, 0))
	if sy < 1e-10 {
		// gimbal lock, roll and yaw share an axis; report all rotation as yaw
		return &EulerAngles{
			Roll:  0,
			Pitch: math.Atan2(-rm.At(2, 0), sy),
			Yaw:   math.Atan2(-rm.At(0, 1), rm.At(1, 1)),
		}
	}
	return &EulerAngles{
		Roll:  math.Atan2(rm.At(2, 1), rm.At(2, 2)),
		Pitch: math.Atan2(-rm.At(2, 0), sy),
		Yaw:   math.Atan2(rm.At(1, 0), rm.At(0, 0)),
	}
}

// EulerXYZ extracts the angles (a, b, c) such that the matrix equals Rx(a)*Ry(b)*Rz(c).
// The triple is returned as an r3.Vector for convenience.
func (rm *RotationMatrix) EulerXYZ() r3.Vector {
	cb := math.Hypot(rm.At(0, 0), rm.At(0, 1))
	if cb < 1e-10 {
		// cos(b) == 0, only the sum (or difference) of a and c is determined;
		// conventionally c = 0
		a := math.Atan2(rm.At(1, 0), rm.At(1, 1))
		if rm.At(0, 2) < 0 {
			a = math.Atan2(-rm.At(1, 0), rm.At(1, 1))
		}
		return r3.Vector{
			X: a,
			Y: math.Atan2(rm.At(0, 2), cb),
			Z: 0,
		}
	}
	return r3.Vector{
		X: math.Atan2(-rm.At(1, 2), rm.At(2, 2)),
		Y: math.Atan2(rm.At(0, 2), cb),
		Z: math.Atan2(-rm.At(0, 1), rm.At(0, 0)),
	}
}

// At returns the float corresponding to the element at the specified row and column.
func (rm *RotationMatrix) At(row, col int) float64 {
	return rm.mat[3*row+col]
}

// Row returns the a r3.Vector corresponding to the row of the specified index.
func (rm *RotationMatrix) Row(row int) r3.Vector {
	return r3.Vector{X: rm.At(row, 0), Y: rm.At(row, 1), Z: rm.At(row, 2)}
}

// Col returns the a r3.Vector corresponding to the column of the specified index.
func (rm *RotationMatrix) Col(col int) r3.Vector {
	return r3.Vector{X: rm.At(0, col), Y: rm.At(1, col), Z: rm.At(2, col)}
}

// Transpose returns the transpose of the matrix, which for a rotation matrix is its inverse.
func (rm *RotationMatrix) Transpose() *RotationMatrix {
	mat := [9]float64{
		rm.mat[0], rm.mat[3], rm.mat[6],
		rm.mat[1], rm.mat[4], rm.mat[7],
		rm.mat[2], rm.mat[5], rm.mat[8],
	}
	return &RotationMatrix{mat}
}

// MatMul returns the product rm * other.
func (rm *RotationMatrix) MatMul(other *RotationMatrix) *RotationMatrix {
	mat := [9]float64{}
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			mat[3*r+c] = rm.Row(r).Dot(other.Col(c))
		}
	}
	return &RotationMatrix{mat}
}

// MulVec returns the product of the matrix with an r3.Vector.
func (rm *RotationMatrix) MulVec(v r3.Vector) r3.Vector {
	return r3.Vector{X: rm.Row(0).Dot(v), Y: rm.Row(1).Dot(v), Z: rm.Row(2).Dot(v)}
}

// IsOrthonormal checks that the rows form an orthonormal basis to within the given tolerance.
func (rm *RotationMatrix) IsOrthonormal(tol float64) bool {
	prod := rm.MatMul(rm.Transpose())
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			want := 0.
			if r == c {
				want = 1.
			}
			if math.Abs(prod.At(r, c)-want) > tol {
				return false
			}
		}
	}
	return true
}
