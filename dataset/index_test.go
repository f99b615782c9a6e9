package dataset

import (
	"testing"

	"github.com/pkg/errors"
	"go.viam.com/test"
)

func TestSequenceIndexSingleWindow(t *testing.T) {
	si, err := NewSequenceIndex([]SequenceWindow{{Sequence: 0, Start: 0, End: 5}})
	test.That(t, err, test.ShouldBeNil)
	test.That(t, si.Len(), test.ShouldEqual, 5)

	first, err := si.Lookup(0)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, first, test.ShouldResemble, FrameLookup{Sequence: 0, Frame1: 0, Frame2: 1, EndOfSequence: false})

	last, err := si.Lookup(4)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, last, test.ShouldResemble, FrameLookup{Sequence: 0, Frame1: 4, Frame2: 5, EndOfSequence: true})
}

func TestSequenceIndexTwoWindows(t *testing.T) {
	si, err := NewSequenceIndex([]SequenceWindow{
		{Sequence: 0, Start: 0, End: 3},
		{Sequence: 1, Start: 0, End: 2},
	})
	test.That(t, err, test.ShouldBeNil)
	test.That(t, si.Len(), test.ShouldEqual, 5)

	boundary, err := si.Lookup(3)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, boundary, test.ShouldResemble, FrameLookup{Sequence: 1, Frame1: 0, Frame2: 1, EndOfSequence: false})

	endOfFirst, err := si.Lookup(2)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, endOfFirst, test.ShouldResemble, FrameLookup{Sequence: 0, Frame1: 2, Frame2: 3, EndOfSequence: true})
}

func TestSequenceIndexExhaustive(t *testing.T) {
	windows := []SequenceWindow{
		{Sequence: 4, Start: 100, End: 150},
		{Sequence: 3, Start: 0, End: 7},
		{Sequence: 4, Start: 20, End: 21},
		{Sequence: 10, Start: 1190, End: 1200},
	}
	si, err := NewSequenceIndex(windows)
	test.That(t, err, test.ShouldBeNil)

	wantLen := 0
	for _, w := range windows {
		wantLen += w.End - w.Start
	}
	test.That(t, si.Len(), test.ShouldEqual, wantLen)

	// every index maps to exactly one pair, consistent with a linear
	// first-greater scan over the cumulative lengths
	seen := map[[2]int]int{}
	for idx := 0; idx < si.Len(); idx++ {
		lookup, err := si.Lookup(idx)
		test.That(t, err, test.ShouldBeNil)
		test.That(t, lookup.Frame2, test.ShouldEqual, lookup.Frame1+1)

		k := linearRoute(si.cumulative, idx)
		test.That(t, lookup.Sequence, test.ShouldEqual, windows[k].Sequence)
		test.That(t, lookup.Frame1, test.ShouldBeGreaterThanOrEqualTo, windows[k].Start)
		test.That(t, lookup.Frame2, test.ShouldBeLessThanOrEqualTo, windows[k].End)
		test.That(t, lookup.EndOfSequence, test.ShouldEqual, lookup.Frame2 == windows[k].End)

		seen[[2]int{k, lookup.Frame1}]++
	}
	test.That(t, len(seen), test.ShouldEqual, wantLen)
}

// linearRoute is the reference routing: the first position whose cumulative
// length exceeds idx.
func linearRoute(cumulative []int, idx int) int {
	for k, c := range cumulative {
		if c > idx {
			return k
		}
	}
	return -1
}

func TestSequenceIndexOutOfRange(t *testing.T) {
	si, err := NewSequenceIndex([]SequenceWindow{{Sequence: 2, Start: 10, End: 20}})
	test.That(t, err, test.ShouldBeNil)

	for _, idx := range []int{-1, 10, 11, 1 << 20} {
		_, err := si.Lookup(idx)
		test.That(t, errors.Is(err, ErrIndexOutOfRange), test.ShouldBeTrue)
	}
}

func TestSequenceIndexValidation(t *testing.T) {
	for _, tc := range []struct {
		name    string
		windows []SequenceWindow
	}{
		{"no windows", nil},
		{"sequence too large", []SequenceWindow{{Sequence: 11, Start: 0, End: 5}}},
		{"sequence negative", []SequenceWindow{{Sequence: -1, Start: 0, End: 5}}},
		{"start negative", []SequenceWindow{{Sequence: 0, Start: -1, End: 5}}},
		{"start past max", []SequenceWindow{{Sequence: 4, Start: 271, End: 272}}},
		{"end before start", []SequenceWindow{{Sequence: 0, Start: 5, End: 5}}},
		{"end past max", []SequenceWindow{{Sequence: 4, Start: 0, End: 271}}},
		{"later window invalid", []SequenceWindow{
			{Sequence: 0, Start: 0, End: 5},
			{Sequence: 1, Start: 100, End: 50},
		}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewSequenceIndex(tc.windows)
			test.That(t, err, test.ShouldNotBeNil)
		})
	}
}

func TestMaxFrame(t *testing.T) {
	last, err := MaxFrame(4)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, last, test.ShouldEqual, 270)

	_, err = MaxFrame(NumSequences)
	test.That(t, err, test.ShouldNotBeNil)
}
