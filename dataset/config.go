// Package dataset provides deterministic sample access to the KITTI visual
// odometry benchmark: a flat sample index is mapped to a consecutive pair of
// frames from one of the driving sequences, together with the relative camera
// motion between the two frames in a configurable rotation parameterization.
package dataset

import (
	"encoding/json"
	"io"
	"os"

	"github.com/pkg/errors"
	goutils "go.viam.com/utils"
)

// Parameterization selects the numeric encoding of the rotation returned with
// each sample.
type Parameterization int

// The supported rotation parameterizations.
const (
	// ParamDefault encodes the relative rotation as roll-pitch-yaw angles.
	ParamDefault Parameterization = iota
	// ParamQuaternion encodes the relative rotation as a unit quaternion.
	ParamQuaternion
	// ParamEuler encodes the relative rotation as x-y-z Euler angles scaled by 10.
	ParamEuler
	// ParamSE3 encodes frame2's absolute pose as a quaternion plus translation.
	ParamSE3
)

var paramNames = map[Parameterization]string{
	ParamDefault:    "default",
	ParamQuaternion: "quaternion",
	ParamEuler:      "euler",
	ParamSE3:        "se3",
}

// String returns the configuration-file name of the parameterization.
func (p Parameterization) String() string {
	if name, ok := paramNames[p]; ok {
		return name
	}
	return "unknown"
}

// ParseParameterization maps a configuration-file name to a Parameterization.
func ParseParameterization(name string) (Parameterization, error) {
	for p, n := range paramNames {
		if n == name {
			return p, nil
		}
	}
	return 0, errors.Errorf("unknown parameterization %q", name)
}

// MarshalJSON encodes the parameterization under its configuration-file name.
func (p Parameterization) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.String())
}

// UnmarshalJSON decodes a parameterization from its configuration-file name.
func (p *Parameterization) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	parsed, err := ParseParameterization(name)
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// Config describes which slices of which sequences make up a dataset and how
// samples drawn from it should be presented.
type Config struct {
	// BaseDir is the root of the KITTI odometry layout; it contains the
	// "poses" and "sequences" directories.
	BaseDir string `json:"base_dir"`
	// Sequences lists the sequence ids that are part of the dataset.
	Sequences []int `json:"sequences"`
	// StartFrames and EndFrames bound the span of frames used from each
	// sequence; both lists run parallel to Sequences.
	StartFrames []int `json:"start_frames"`
	EndFrames   []int `json:"end_frames"`

	Parameterization Parameterization `json:"parameterization"`

	// Width and Height are the dimensions frame images are resized to.
	Width  int `json:"width"`
	Height int `json:"height"`

	// ChannelMean and ChannelStdDev normalize the R, G, B channels before
	// scaling. The zero values of the struct fields are not usable; use
	// DefaultConfig or fill them in explicitly.
	ChannelMean   [3]float64 `json:"channel_mean"`
	ChannelStdDev [3]float64 `json:"channel_stddev"`
}

// DefaultConfig returns a config covering all of sequence 1 with the default
// parameterization and identity channel normalization.
func DefaultConfig() *Config {
	return &Config{
		Sequences:        []int{1},
		StartFrames:      []int{0},
		EndFrames:        []int{1100},
		Parameterization: ParamDefault,
		Width:            1280,
		Height:           384,
		ChannelMean:      [3]float64{0, 0, 0},
		ChannelStdDev:    [3]float64{1, 1, 1},
	}
}

// Read reads a config from the given file.
func Read(filePath string) (*Config, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return nil, err
	}
	defer goutils.UncheckedErrorFunc(f.Close)
	return FromReader(f)
}

// FromReader reads a config from the given reader. The returned config has
// been validated.
func FromReader(r io.Reader) (*Config, error) {
	cfg := DefaultConfig()
	if err := json.NewDecoder(r).Decode(cfg); err != nil {
		return nil, errors.Wrap(err, "failed to decode config from json")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate ensures all parts of the config are valid. All checks happen
// before the dataset hands out any sample.
func (c *Config) Validate() error {
	if len(c.Sequences) == 0 {
		return errors.New("at least one sequence is required")
	}
	if _, ok := paramNames[c.Parameterization]; !ok {
		return errors.Errorf("unknown parameterization %d", c.Parameterization)
	}
	if c.Width <= 0 || c.Height <= 0 {
		return errors.Errorf("image dimensions %dx%d must be positive", c.Width, c.Height)
	}
	for i, dev := range c.ChannelStdDev {
		if dev == 0 {
			return errors.Errorf("channel %d standard deviation cannot be zero", i)
		}
	}
	_, err := c.windows()
	return err
}

// windows folds the parallel sequence/start/end lists into SequenceWindows,
// reporting the mismatched-length configuration errors.
func (c *Config) windows() ([]SequenceWindow, error) {
	if len(c.StartFrames) != len(c.Sequences) {
		return nil, errors.Errorf(
			"have %d sequences but %d start frames", len(c.Sequences), len(c.StartFrames))
	}
	if len(c.EndFrames) != len(c.Sequences) {
		return nil, errors.Errorf(
			"have %d sequences but %d end frames", len(c.Sequences), len(c.EndFrames))
	}
	windows := make([]SequenceWindow, 0, len(c.Sequences))
	for i, seq := range c.Sequences {
		windows = append(windows, SequenceWindow{
			Sequence: seq,
			Start:    c.StartFrames[i],
			End:      c.EndFrames[i],
		})
	}
	return windows, nil
}
