package spatialmath

import (
	"testing"

	"github.com/golang/geo/r3"
	"go.viam.com/test"
	"gonum.org/v1/gonum/mat"
)

func TestNewPoseFromFlat(t *testing.T) {
	_, err := NewPoseFromFlat([]float64{1, 2, 3})
	test.That(t, err, test.ShouldNotBeNil)

	// identity rotation, translation (5, 6, 7)
	p, err := NewPoseFromFlat([]float64{
		1, 0, 0, 5,
		0, 1, 0, 6,
		0, 0, 1, 7,
	})
	test.That(t, err, test.ShouldBeNil)
	test.That(t, p.Point(), test.ShouldResemble, r3.Vector{X: 5, Y: 6, Z: 7})
	test.That(t, OrientationAlmostEqual(p.Rotation(), NewZeroOrientation()), test.ShouldBeTrue)
}

func TestPoseBetweenSelf(t *testing.T) {
	ea := &EulerAngles{Roll: 0.2, Pitch: -0.7, Yaw: 1.9}
	p := NewPose(ea.RotationMatrix(), r3.Vector{X: 10, Y: -4, Z: 2.5})
	test.That(t, PoseAlmostEqual(PoseBetween(p, p), NewZeroPose()), test.ShouldBeTrue)
}

func TestPoseBetween(t *testing.T) {
	ea1 := &EulerAngles{Roll: 0.1, Pitch: 0.2, Yaw: 0.3}
	ea2 := &EulerAngles{Roll: -0.5, Pitch: 1.2, Yaw: -2.1}
	p1 := NewPose(ea1.RotationMatrix(), r3.Vector{X: 1, Y: 2, Z: 3})
	p2 := NewPose(ea2.RotationMatrix(), r3.Vector{X: -4, Y: 0, Z: 9})

	delta := PoseBetween(p1, p2)
	test.That(t, delta.IsRigid(1e-9), test.ShouldBeTrue)
	// composing the delta back onto p1 recovers p2
	test.That(t, PoseAlmostEqual(Compose(p1, delta), p2), test.ShouldBeTrue)
}

// the closed-form rigid inverse must agree with a general 4x4 matrix inversion
func TestInvertMatchesGeneralInverse(t *testing.T) {
	ea := &EulerAngles{Roll: 1.1, Pitch: -0.3, Yaw: 0.8}
	p := NewPose(ea.RotationMatrix(), r3.Vector{X: 3, Y: -7, Z: 12})

	var inv mat.Dense
	err := inv.Inverse(p.Mat())
	test.That(t, err, test.ShouldBeNil)

	closedForm := p.Invert().Mat()
	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			test.That(t, closedForm.At(r, c), test.ShouldAlmostEqual, inv.At(r, c), 1e-10)
		}
	}
}

func TestComposeAgainstMatrixProduct(t *testing.T) {
	ea1 := &EulerAngles{Roll: 0.4, Pitch: 0.9, Yaw: -1.3}
	ea2 := &EulerAngles{Roll: -0.2, Pitch: 0.5, Yaw: 2.8}
	p1 := NewPose(ea1.RotationMatrix(), r3.Vector{X: 1, Y: 1, Z: 1})
	p2 := NewPose(ea2.RotationMatrix(), r3.Vector{X: 0, Y: -2, Z: 4})

	var prod mat.Dense
	prod.Mul(p1.Mat(), p2.Mat())

	composed := Compose(p1, p2).Mat()
	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			test.That(t, composed.At(r, c), test.ShouldAlmostEqual, prod.At(r, c), 1e-10)
		}
	}
}
