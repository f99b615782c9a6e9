package spatialmath

import (
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// Pose is a rigid transform: a rotation combined with a translation. It can
// express the position and orientation of a camera in a fixed world frame, or
// the motion carrying one camera frame to another.
type Pose struct {
	rotation    *RotationMatrix
	translation r3.Vector
}

// NewZeroPose returns a pose with no rotation or translation.
func NewZeroPose() *Pose {
	return NewPose(NewZeroOrientation().RotationMatrix(), r3.Vector{})
}

// NewPose creates a pose from a rotation and a translation.
func NewPose(rotation *RotationMatrix, translation r3.Vector) *Pose {
	return &Pose{rotation: rotation, translation: translation}
}

// NewPoseFromFlat creates a pose from 12 floats in row major order, the top
// three rows of a homogeneous transform matrix: rotation in the left 3x3
// block, translation in the rightmost column.
func NewPoseFromFlat(flat []float64) (*Pose, error) {
	if len(flat) != 12 {
		return nil, errors.Errorf("input slice has %d elements, need exactly 12", len(flat))
	}
	rotation, err := NewRotationMatrix([]float64{
		flat[0], flat[1], flat[2],
		flat[4], flat[5], flat[6],
		flat[8], flat[9], flat[10],
	})
	if err != nil {
		return nil, err
	}
	return NewPose(rotation, r3.Vector{X: flat[3], Y: flat[7], Z: flat[11]}), nil
}

// Rotation returns the rotation component of the pose.
func (p *Pose) Rotation() *RotationMatrix {
	return p.rotation
}

// Point returns the translation component of the pose.
func (p *Pose) Point() r3.Vector {
	return p.translation
}

// Invert returns the inverse transform, using the closed form for rigid
// transforms: [R^T, -R^T*t] rather than a general matrix inversion.
func (p *Pose) Invert() *Pose {
	rt := p.rotation.Transpose()
	return NewPose(rt, rt.MulVec(p.translation).Mul(-1))
}

// IsRigid checks that the rotation component is orthonormal to within the given tolerance.
func (p *Pose) IsRigid(tol float64) bool {
	return p.rotation.IsOrthonormal(tol)
}

// Mat returns the pose as a 4x4 homogeneous gonum matrix.
func (p *Pose) Mat() *mat.Dense {
	return mat.NewDense(4, 4, []float64{
		p.rotation.At(0, 0), p.rotation.At(0, 1), p.rotation.At(0, 2), p.translation.X,
		p.rotation.At(1, 0), p.rotation.At(1, 1), p.rotation.At(1, 2), p.translation.Y,
		p.rotation.At(2, 0), p.rotation.At(2, 1), p.rotation.At(2, 2), p.translation.Z,
		0, 0, 0, 1,
	})
}

// Compose returns the pose equivalent to applying b in the frame of a: a * b.
func Compose(a, b *Pose) *Pose {
	return NewPose(
		a.rotation.MatMul(b.rotation),
		a.rotation.MulVec(b.translation).Add(a.translation),
	)
}

// PoseBetween returns the transform carrying the frame of a to the frame of b:
// inverse(a) * b.
func PoseBetween(a, b *Pose) *Pose {
	return Compose(a.Invert(), b)
}

// PoseAlmostEqual checks that two poses agree to within reasonable floating point tolerance.
func PoseAlmostEqual(a, b *Pose) bool {
	if !R3VectorAlmostEqual(a.translation, b.translation, 1e-8) {
		return false
	}
	return OrientationAlmostEqual(a.rotation, b.rotation)
}

// R3VectorAlmostEqual compares two r3.Vector objects and returns if the all elementwise differences are less than epsilon.
func R3VectorAlmostEqual(a, b r3.Vector, epsilon float64) bool {
	return a.Sub(b).Norm() < epsilon
}
