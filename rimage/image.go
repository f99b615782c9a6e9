// Package rimage loads and preprocesses sequence frame images, turning a pair
// of consecutive frames into the channel-stacked float tensor consumed by
// downstream models.
package rimage

import (
	"image"
	// registered for image.Decode; KITTI ships frames as PNG
	_ "image/png"
	"os"

	"github.com/pkg/errors"
	goutils "go.viam.com/utils"
)

// ReadImageFromFile extracts the RGB from an image file.
func ReadImageFromFile(path string) (_ image.Image, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer goutils.UncheckedErrorFunc(f.Close)

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot decode %q", path)
	}
	return img, nil
}
