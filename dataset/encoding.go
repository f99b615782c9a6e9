package dataset

import (
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/num/quat"

	"github.com/odomkit/kitti/spatialmath"
)

// eulerScale amplifies the euler parameterization's angles before they are returned.
const eulerScale = 10.

// Encoding is the numeric form of a sample's motion: the rotation under the
// configured parameterization and a translation vector.
type Encoding struct {
	Rotation    []float64
	Translation r3.Vector
}

// An encoderFunc derives an Encoding from the relative pose between the two
// frames of a pair and the absolute pose of the second frame.
type encoderFunc func(relative, absolute2 *spatialmath.Pose) Encoding

// encoders dispatches on the parameterization tag. An unknown tag is caught
// once, at construction; sample access itself never compares strings.
var encoders = map[Parameterization]encoderFunc{
	ParamDefault:    encodeRollPitchYaw,
	ParamQuaternion: encodeQuaternion,
	ParamEuler:      encodeEulerXYZ,
	ParamSE3:        encodeSE3,
}

// newEncoder resolves a parameterization tag to its encoder.
func newEncoder(p Parameterization) (encoderFunc, error) {
	enc, ok := encoders[p]
	if !ok {
		return nil, errors.Errorf("unknown parameterization %d", p)
	}
	return enc, nil
}

func encodeRollPitchYaw(relative, _ *spatialmath.Pose) Encoding {
	ea := relative.Rotation().EulerAngles()
	return Encoding{
		Rotation:    []float64{ea.Roll, ea.Pitch, ea.Yaw},
		Translation: relative.Point(),
	}
}

func encodeQuaternion(relative, _ *spatialmath.Pose) Encoding {
	return Encoding{
		Rotation:    quatSlice(relative.Rotation().Quaternion()),
		Translation: relative.Point(),
	}
}

func encodeEulerXYZ(relative, _ *spatialmath.Pose) Encoding {
	xyz := relative.Rotation().EulerXYZ()
	return Encoding{
		Rotation:    []float64{eulerScale * xyz.X, eulerScale * xyz.Y, eulerScale * xyz.Z},
		Translation: relative.Point(),
	}
}

// encodeSE3 reports frame2's absolute pose rather than the frame1-to-frame2
// delta. The asymmetry with the other parameterizations is deliberate:
// downstream consumers regress the full pose in this mode.
func encodeSE3(_, absolute2 *spatialmath.Pose) Encoding {
	return Encoding{
		Rotation:    quatSlice(absolute2.Rotation().Quaternion()),
		Translation: absolute2.Point(),
	}
}

// quatSlice flattens a quaternion scalar-first: [w x y z].
func quatSlice(q quat.Number) []float64 {
	return []float64{q.Real, q.Imag, q.Jmag, q.Kmag}
}
