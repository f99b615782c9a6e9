// Command datasetinfo loads a dataset config and reports what the dataset
// contains: per-window spans, total length, and optionally the pose delta of
// individual samples (without touching any image files).
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/edaniels/golog"

	"github.com/odomkit/kitti/dataset"
	"github.com/odomkit/kitti/spatialmath"
	"github.com/odomkit/kitti/utils"
)

var logger = golog.NewDevelopmentLogger("datasetinfo")

func main() {
	if err := realMain(os.Args[1:]); err != nil {
		logger.Fatal(err)
	}
}

func realMain(args []string) error {
	flags := flag.NewFlagSet("datasetinfo", flag.ContinueOnError)
	configPath := flags.String("config", "", "path to a dataset config (json)")
	samples := flags.Int("samples", 0, "number of samples to walk, starting at index 0")
	posesOnly := flags.Bool("poses-only", true, "report pose deltas without loading images")
	if err := flags.Parse(args); err != nil {
		return err
	}
	if *configPath == "" {
		return fmt.Errorf("-config is required")
	}

	cfg, err := dataset.Read(*configPath)
	if err != nil {
		return err
	}

	d, err := dataset.NewDataset(cfg, logger)
	if err != nil {
		return err
	}

	for _, w := range d.Index().Windows() {
		logger.Infow("window", "sequence", fmt.Sprintf("%02d", w.Sequence),
			"start", w.Start, "end", w.End, "samples", w.Len())
	}
	logger.Infow("dataset", "length", d.Len(), "parameterization", cfg.Parameterization.String())

	if *samples <= 0 {
		return nil
	}
	n := *samples
	if n > d.Len() {
		n = d.Len()
	}
	if *posesOnly {
		return walkPoses(d, n)
	}
	return walkSamples(d, n, cfg.BaseDir)
}

// walkPoses routes the first n indices and prints the frame-to-frame motion,
// reading only the pose files.
func walkPoses(d *dataset.Dataset, n int) error {
	for idx := 0; idx < n; idx++ {
		lookup, err := d.Index().Lookup(idx)
		if err != nil {
			return err
		}
		pose1, err := d.Poses().Pose(lookup.Sequence, lookup.Frame1)
		if err != nil {
			return err
		}
		pose2, err := d.Poses().Pose(lookup.Sequence, lookup.Frame2)
		if err != nil {
			return err
		}
		relative := spatialmath.PoseBetween(pose1, pose2)
		ea := relative.Rotation().EulerAngles()
		t := relative.Point()
		logger.Infow("sample",
			"idx", idx,
			"sequence", fmt.Sprintf("%02d", lookup.Sequence),
			"frames", fmt.Sprintf("%06d-%06d", lookup.Frame1, lookup.Frame2),
			"end", lookup.EndOfSequence,
			"rollDeg", utils.RadToDeg(ea.Roll),
			"pitchDeg", utils.RadToDeg(ea.Pitch),
			"yawDeg", utils.RadToDeg(ea.Yaw),
			"translation", fmt.Sprintf("[%.3f %.3f %.3f]", t.X, t.Y, t.Z),
		)
	}
	return nil
}

// walkSamples fetches full samples, images included.
func walkSamples(d *dataset.Dataset, n int, baseDir string) error {
	logger.Infow("loading images", "dir", filepath.Join(baseDir, "sequences"))
	ctx := context.Background()
	for idx := 0; idx < n; idx++ {
		sample, err := d.Get(ctx, idx)
		if err != nil {
			return err
		}
		c, h, w := sample.Images.Shape()
		logger.Infow("sample",
			"idx", idx,
			"sequence", fmt.Sprintf("%02d", sample.Sequence),
			"frames", fmt.Sprintf("%06d-%06d", sample.Frame1, sample.Frame2),
			"end", sample.EndOfSequence,
			"rotation", sample.Rotation,
			"shape", fmt.Sprintf("%dx%dx%d", c, h, w),
		)
	}
	return nil
}
