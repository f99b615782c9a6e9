package dataset

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/pkg/errors"
	goutils "go.viam.com/utils"

	"github.com/odomkit/kitti/spatialmath"
)

// poseFields is the number of values per pose-file line: a row major 3x4
// matrix, rotation in the left block and translation in the right column.
const poseFields = 12

// ErrPoseNotFound is returned when a sequence has no ground-truth pose file.
var ErrPoseNotFound = errors.New("no ground-truth poses for sequence")

// PoseStore exposes the ground-truth absolute pose of every frame of a
// sequence. Each sequence's pose file is parsed once, on first access, and the
// result is cached for the life of the store; the cached slices are never
// mutated afterwards, so they may be shared freely across goroutines.
type PoseStore struct {
	dir string

	mu    sync.Mutex
	cache map[int][]*spatialmath.Pose
}

// NewPoseStore creates a store reading pose files from the given directory.
func NewPoseStore(dir string) *PoseStore {
	return &PoseStore{dir: dir, cache: map[int][]*spatialmath.Pose{}}
}

// Poses returns the absolute poses of the given sequence, one per frame.
// The returned slice is shared; callers must not modify it.
func (ps *PoseStore) Poses(sequence int) ([]*spatialmath.Pose, error) {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	if poses, ok := ps.cache[sequence]; ok {
		return poses, nil
	}
	path := filepath.Join(ps.dir, fmt.Sprintf("%02d.txt", sequence))
	poses, err := readPoseFile(path)
	if err != nil {
		if os.IsNotExist(errors.Cause(err)) {
			return nil, errors.Wrapf(ErrPoseNotFound, "%02d", sequence)
		}
		return nil, errors.Wrapf(err, "sequence %02d", sequence)
	}
	ps.cache[sequence] = poses
	return poses, nil
}

// Pose returns the absolute pose of a single frame of the given sequence.
func (ps *PoseStore) Pose(sequence, frame int) (*spatialmath.Pose, error) {
	poses, err := ps.Poses(sequence)
	if err != nil {
		return nil, err
	}
	if frame < 0 || frame >= len(poses) {
		return nil, errors.Errorf("frame %d out of range, sequence %02d has %d poses", frame, sequence, len(poses))
	}
	return poses[frame], nil
}

// readPoseFile parses one pose per line, each line holding 12 whitespace
// separated floats.
func readPoseFile(path string) (_ []*spatialmath.Pose, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer goutils.UncheckedErrorFunc(f.Close)

	var poses []*spatialmath.Pose
	scanner := bufio.NewScanner(f)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) != poseFields {
			return nil, errors.Errorf("line %d has %d fields, need %d", lineNum, len(fields), poseFields)
		}
		flat := make([]float64, poseFields)
		for i, field := range fields {
			flat[i], err = strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, errors.Wrapf(err, "line %d field %d", lineNum, i)
			}
		}
		pose, err := spatialmath.NewPoseFromFlat(flat)
		if err != nil {
			return nil, errors.Wrapf(err, "line %d", lineNum)
		}
		poses = append(poses, pose)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(poses) == 0 {
		return nil, errors.New("pose file is empty")
	}
	return poses, nil
}
