package dataset

import (
	"sort"

	"github.com/pkg/errors"
)

// maxFrames holds the number of the last frame of each KITTI odometry
// sequence. Ground-truth poses exist only for sequences 00-10.
var maxFrames = [...]int{4540, 1100, 4660, 800, 270, 2760, 1100, 1100, 4070, 1590, 1200}

// NumSequences is the number of sequences with ground-truth poses.
const NumSequences = len(maxFrames)

// MaxFrame returns the last frame number of the given sequence.
func MaxFrame(sequence int) (int, error) {
	if sequence < 0 || sequence >= NumSequences {
		return 0, errors.Errorf("sequence %02d outside the range [00-%02d]", sequence, NumSequences-1)
	}
	return maxFrames[sequence], nil
}

// SequenceWindow is a contiguous span of frames from one sequence. Frames
// Start through End-1 each begin a sample pair; End is the last frame that
// appears in any pair.
type SequenceWindow struct {
	Sequence int `json:"sequence"`
	Start    int `json:"start"`
	End      int `json:"end"`
}

// Len returns the number of sample pairs the window contributes.
func (w SequenceWindow) Len() int {
	return w.End - w.Start
}

// FrameLookup is the result of routing a flat sample index: the owning
// sequence, the two consecutive frames of the pair, and whether the pair is
// the last one within its window.
type FrameLookup struct {
	Sequence      int
	Frame1        int
	Frame2        int
	EndOfSequence bool
}

// ErrIndexOutOfRange is returned when a sample index falls outside [0, Len()).
var ErrIndexOutOfRange = errors.New("sample index out of range")

// SequenceIndex routes a flat sample index to the window and frame pair it
// belongs to. It is immutable after construction.
type SequenceIndex struct {
	windows    []SequenceWindow
	cumulative []int
}

// NewSequenceIndex builds an index over the given windows, validating every
// window eagerly so that no Lookup can be attempted on a bad configuration.
func NewSequenceIndex(windows []SequenceWindow) (*SequenceIndex, error) {
	if len(windows) == 0 {
		return nil, errors.New("at least one sequence window is required")
	}
	cumulative := make([]int, len(windows))
	total := 0
	for i, w := range windows {
		max, err := MaxFrame(w.Sequence)
		if err != nil {
			return nil, err
		}
		if w.Start < 0 || w.Start > max {
			return nil, errors.Errorf("invalid start frame %d for sequence %02d", w.Start, w.Sequence)
		}
		if w.End < 0 || w.End <= w.Start || w.End > max {
			return nil, errors.Errorf("invalid end frame %d for sequence %02d", w.End, w.Sequence)
		}
		total += w.Len()
		cumulative[i] = total
	}
	if total < 0 {
		return nil, errors.New("dataset length cannot be negative")
	}
	return &SequenceIndex{windows: windows, cumulative: cumulative}, nil
}

// Len returns the total number of sample pairs across all windows.
func (si *SequenceIndex) Len() int {
	return si.cumulative[len(si.cumulative)-1]
}

// Windows returns the windows making up the index.
func (si *SequenceIndex) Windows() []SequenceWindow {
	return si.windows
}

// Lookup routes a flat sample index to its frame pair. The cumulative length
// table is strictly increasing, so the owning window is the first whose
// cumulative length exceeds idx.
func (si *SequenceIndex) Lookup(idx int) (FrameLookup, error) {
	if idx < 0 || idx >= si.Len() {
		return FrameLookup{}, errors.Wrapf(ErrIndexOutOfRange, "index %d with length %d", idx, si.Len())
	}
	k := sort.SearchInts(si.cumulative, idx+1)
	offset := idx
	if k > 0 {
		offset = idx - si.cumulative[k-1]
	}
	w := si.windows[k]
	frame1 := w.Start + offset
	return FrameLookup{
		Sequence:      w.Sequence,
		Frame1:        frame1,
		Frame2:        frame1 + 1,
		EndOfSequence: frame1+1 == w.End,
	}, nil
}
