package dataset

import (
	"strings"
	"testing"

	"go.viam.com/test"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	test.That(t, cfg.Validate(), test.ShouldBeNil)
	test.That(t, cfg.Sequences, test.ShouldResemble, []int{1})
	test.That(t, cfg.EndFrames, test.ShouldResemble, []int{1100})
	test.That(t, cfg.Parameterization, test.ShouldEqual, ParamDefault)
}

func TestConfigFromReader(t *testing.T) {
	cfg, err := FromReader(strings.NewReader(`{
		"base_dir": "/data/kitti",
		"sequences": [0, 2],
		"start_frames": [0, 100],
		"end_frames": [50, 200],
		"parameterization": "quaternion",
		"width": 640,
		"height": 192
	}`))
	test.That(t, err, test.ShouldBeNil)
	test.That(t, cfg.Sequences, test.ShouldResemble, []int{0, 2})
	test.That(t, cfg.Parameterization, test.ShouldEqual, ParamQuaternion)
	test.That(t, cfg.Width, test.ShouldEqual, 640)
	// defaults fill what the file leaves out
	test.That(t, cfg.ChannelStdDev, test.ShouldResemble, [3]float64{1, 1, 1})

	windows, err := cfg.windows()
	test.That(t, err, test.ShouldBeNil)
	test.That(t, windows, test.ShouldResemble, []SequenceWindow{
		{Sequence: 0, Start: 0, End: 50},
		{Sequence: 2, Start: 100, End: 200},
	})
}

func TestConfigFromReaderErrors(t *testing.T) {
	_, err := FromReader(strings.NewReader(`{`))
	test.That(t, err, test.ShouldNotBeNil)

	_, err = FromReader(strings.NewReader(`{"parameterization": "axis_angle"}`))
	test.That(t, err, test.ShouldNotBeNil)

	// mismatched list lengths are a configuration error
	_, err = FromReader(strings.NewReader(`{
		"sequences": [0, 1],
		"start_frames": [0],
		"end_frames": [50, 100]
	}`))
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "start frames")
}

func TestConfigValidate(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Sequences = nil
	test.That(t, cfg.Validate(), test.ShouldNotBeNil)

	cfg = DefaultConfig()
	cfg.Width = 0
	test.That(t, cfg.Validate(), test.ShouldNotBeNil)

	cfg = DefaultConfig()
	cfg.ChannelStdDev[1] = 0
	test.That(t, cfg.Validate(), test.ShouldNotBeNil)

	cfg = DefaultConfig()
	cfg.Parameterization = Parameterization(9)
	test.That(t, cfg.Validate(), test.ShouldNotBeNil)

	cfg = DefaultConfig()
	cfg.EndFrames = []int{100, 200}
	test.That(t, cfg.Validate(), test.ShouldNotBeNil)
}
