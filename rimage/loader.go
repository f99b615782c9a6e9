package rimage

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/pkg/errors"
)

// imageSubdir is the left color camera of the KITTI stereo rig, the one the
// ground-truth poses refer to.
const imageSubdir = "image_2"

// Loader reads consecutive frame pairs from the on-disk sequence layout:
// <sequencesDir>/<seq, zero-padded to 2>/image_2/<frame, zero-padded to 6>.png.
type Loader struct {
	sequencesDir string
	pre          *Preprocessor
}

// NewLoader creates a Loader rooted at the given sequences directory.
func NewLoader(sequencesDir string, pre *Preprocessor) *Loader {
	return &Loader{sequencesDir: sequencesDir, pre: pre}
}

// FramePath returns the path of a single frame image.
func (l *Loader) FramePath(sequence, frame int) string {
	return filepath.Join(
		l.sequencesDir,
		fmt.Sprintf("%02d", sequence),
		imageSubdir,
		fmt.Sprintf("%06d.png", frame),
	)
}

// LoadPair reads, preprocesses and channel-stacks two consecutive frames of a
// sequence. The context is checked between the two reads.
func (l *Loader) LoadPair(ctx context.Context, sequence, frame1, frame2 int) (*PairTensor, error) {
	first, err := l.loadFrame(sequence, frame1)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	second, err := l.loadFrame(sequence, frame2)
	if err != nil {
		return nil, err
	}
	return l.pre.Stack(first, second), nil
}

func (l *Loader) loadFrame(sequence, frame int) ([]float32, error) {
	img, err := ReadImageFromFile(l.FramePath(sequence, frame))
	if err != nil {
		return nil, errors.Wrapf(err, "sequence %02d frame %06d", sequence, frame)
	}
	return l.pre.Process(img), nil
}
