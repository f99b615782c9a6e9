package spatialmath

import (
	"math"

	"gonum.org/v1/gonum/num/quat"
)

// EulerAngles are three angles (in radians) used to represent the rotation of an object in 3D Euclidean space
// The Tait–Bryan angle formalism is used, with rotations around the z, y, and x axes, in that order (yaw, pitch, roll).
type EulerAngles struct {
	Roll  float64 `json:"roll"`  // rotation around the x axis
	Pitch float64 `json:"pitch"` // rotation around the y axis
	Yaw   float64 `json:"yaw"`   // rotation around the z axis
}

// NewEulerAngles creates an empty EulerAngles struct.
func NewEulerAngles() *EulerAngles {
	return &EulerAngles{Roll: 0, Pitch: 0, Yaw: 0}
}

// EulerAngles returns orientation in Euler angle representation.
func (ea *EulerAngles) EulerAngles() *EulerAngles {
	return ea
}

// Quaternion returns orientation in quaternion representation. The
// half-angle product form for a z-y-x rotation sequence is used.
func (ea *EulerAngles) Quaternion() quat.Number {
	sRoll := math.Sin(ea.Roll / 2)
	cRoll := math.Cos(ea.Roll / 2)
	sPitch := math.Sin(ea.Pitch / 2)
	cPitch := math.Cos(ea.Pitch / 2)
	sYaw := math.Sin(ea.Yaw / 2)
	cYaw := math.Cos(ea.Yaw / 2)

	q := quat.Number{}
	q.Real = cRoll*cPitch*cYaw + sRoll*sPitch*sYaw
	q.Imag = sRoll*cPitch*cYaw - cRoll*sPitch*sYaw
	q.Jmag = cRoll*sPitch*cYaw + sRoll*cPitch*sYaw
	q.Kmag = cRoll*cPitch*sYaw - sRoll*sPitch*cYaw

	return q
}

// AxisAngles returns the orientation in axis angle representation.
func (ea *EulerAngles) AxisAngles() *R4AA {
	return QuatToR4AA(ea.Quaternion())
}

// RotationMatrix returns the orientation in rotation matrix representation.
func (ea *EulerAngles) RotationMatrix() *RotationMatrix {
	return QuatToRotationMatrix(ea.Quaternion())
}
