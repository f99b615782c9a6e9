package dataset

import (
	"context"
	"path/filepath"

	"github.com/edaniels/golog"
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"

	"github.com/odomkit/kitti/rimage"
	"github.com/odomkit/kitti/spatialmath"
)

// orthonormalityTol bounds how far the rotation of a derived relative pose may
// drift from orthonormal before we refuse to hand it out.
const orthonormalityTol = 1e-5

// posesSubdir and sequencesSubdir are the two directories of the KITTI
// odometry layout under the base directory.
const (
	posesSubdir     = "poses"
	sequencesSubdir = "sequences"
)

// A FrameLoader produces the preprocessed image pair for two consecutive
// frames of a sequence.
type FrameLoader interface {
	LoadPair(ctx context.Context, sequence, frame1, frame2 int) (*rimage.PairTensor, error)
}

// Sample is one dataset element: the stacked image pair of two consecutive
// frames, the encoded rotation and translation between them, and the frame
// bookkeeping. Each Get returns a fresh record owned by the caller.
type Sample struct {
	Images        *rimage.PairTensor
	Rotation      []float64
	Translation   r3.Vector
	Sequence      int
	Frame1        int
	Frame2        int
	EndOfSequence bool
}

// Dataset is the sample provider: it composes index routing, pose retrieval,
// relative-pose computation, rotation encoding and image loading. Safe for
// concurrent use; every Get is independent of every other.
type Dataset struct {
	index  *SequenceIndex
	poses  *PoseStore
	encode encoderFunc
	frames FrameLoader
	logger golog.Logger
}

// NewDataset builds a dataset from a validated config, loading frame images
// with the default rimage loader.
func NewDataset(cfg *Config, logger golog.Logger) (*Dataset, error) {
	pre, err := rimage.NewPreprocessor(cfg.Width, cfg.Height, cfg.ChannelMean, cfg.ChannelStdDev)
	if err != nil {
		return nil, err
	}
	loader := rimage.NewLoader(filepath.Join(cfg.BaseDir, sequencesSubdir), pre)
	return NewDatasetWithLoader(cfg, loader, logger)
}

// NewDatasetWithLoader is NewDataset with the image-loading collaborator
// swapped out, for callers with their own decode or caching strategy.
func NewDatasetWithLoader(cfg *Config, loader FrameLoader, logger golog.Logger) (*Dataset, error) {
	if loader == nil {
		return nil, errors.New("a frame loader is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	windows, err := cfg.windows()
	if err != nil {
		return nil, err
	}
	index, err := NewSequenceIndex(windows)
	if err != nil {
		return nil, err
	}
	encode, err := newEncoder(cfg.Parameterization)
	if err != nil {
		return nil, err
	}
	logger.Debugw("dataset ready",
		"windows", len(windows),
		"length", index.Len(),
		"parameterization", cfg.Parameterization.String(),
	)
	return &Dataset{
		index:  index,
		poses:  NewPoseStore(filepath.Join(cfg.BaseDir, posesSubdir)),
		encode: encode,
		frames: loader,
		logger: logger,
	}, nil
}

// Len returns the total number of samples.
func (d *Dataset) Len() int {
	return d.index.Len()
}

// Index returns the dataset's sequence index.
func (d *Dataset) Index() *SequenceIndex {
	return d.index
}

// Poses returns the dataset's pose store.
func (d *Dataset) Poses() *PoseStore {
	return d.poses
}

// Get assembles the sample for a flat index. Any failure aborts the whole
// sample; no partial record is ever returned.
func (d *Dataset) Get(ctx context.Context, idx int) (*Sample, error) {
	lookup, err := d.index.Lookup(idx)
	if err != nil {
		return nil, err
	}
	images, err := d.frames.LoadPair(ctx, lookup.Sequence, lookup.Frame1, lookup.Frame2)
	if err != nil {
		return nil, err
	}
	relative, absolute2, err := d.poseDelta(lookup)
	if err != nil {
		return nil, err
	}
	enc := d.encode(relative, absolute2)
	return &Sample{
		Images:        images,
		Rotation:      enc.Rotation,
		Translation:   enc.Translation,
		Sequence:      lookup.Sequence,
		Frame1:        lookup.Frame1,
		Frame2:        lookup.Frame2,
		EndOfSequence: lookup.EndOfSequence,
	}, nil
}

// poseDelta fetches the two absolute poses of a pair and derives the rigid
// transform carrying frame1's camera frame to frame2's.
func (d *Dataset) poseDelta(lookup FrameLookup) (relative, absolute2 *spatialmath.Pose, err error) {
	pose1, err := d.poses.Pose(lookup.Sequence, lookup.Frame1)
	if err != nil {
		return nil, nil, err
	}
	pose2, err := d.poses.Pose(lookup.Sequence, lookup.Frame2)
	if err != nil {
		return nil, nil, err
	}
	relative = spatialmath.PoseBetween(pose1, pose2)
	if !relative.IsRigid(orthonormalityTol) {
		return nil, nil, errors.Errorf(
			"relative pose between frames %d and %d of sequence %02d is not rigid",
			lookup.Frame1, lookup.Frame2, lookup.Sequence)
	}
	return relative, pose2, nil
}
