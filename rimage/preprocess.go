package rimage

import (
	"image"

	"github.com/disintegration/imaging"
	"github.com/pkg/errors"
)

// Channels is the number of color channels per frame.
const Channels = 3

// PairTensor is a preprocessed pair of consecutive frames stacked along the
// channel dimension: 2*Channels planes of Height x Width floats, frame1's
// channels first.
type PairTensor struct {
	data          []float32
	height, width int
}

// Data returns the flat CHW-ordered buffer backing the tensor.
func (pt *PairTensor) Data() []float32 {
	return pt.data
}

// Shape returns the channel, height and width dimensions.
func (pt *PairTensor) Shape() (c, h, w int) {
	return 2 * Channels, pt.height, pt.width
}

// At returns the value of channel c at row y, column x.
func (pt *PairTensor) At(c, y, x int) float32 {
	return pt.data[(c*pt.height+y)*pt.width+x]
}

// Preprocessor normalizes and resizes frames. The zero value is not usable;
// construct with NewPreprocessor.
type Preprocessor struct {
	width, height int
	mean, stdDev  [3]float64
}

// NewPreprocessor validates the target dimensions and channelwise
// normalization constants.
func NewPreprocessor(width, height int, mean, stdDev [3]float64) (*Preprocessor, error) {
	if width <= 0 || height <= 0 {
		return nil, errors.Errorf("image dimensions %dx%d must be positive", width, height)
	}
	for i, dev := range stdDev {
		if dev == 0 {
			return nil, errors.Errorf("channel %d standard deviation cannot be zero", i)
		}
	}
	return &Preprocessor{width: width, height: height, mean: mean, stdDev: stdDev}, nil
}

// Process resizes a frame to the target dimensions and returns its pixels as
// CHW-ordered floats: each channel value is mean-subtracted, divided by the
// channel's standard deviation, then scaled into [0, 1] range by 1/255.
func (p *Preprocessor) Process(img image.Image) []float32 {
	resized := imaging.Resize(img, p.width, p.height, imaging.Linear)

	out := make([]float32, Channels*p.height*p.width)
	plane := p.height * p.width
	for y := 0; y < p.height; y++ {
		for x := 0; x < p.width; x++ {
			r, g, b, _ := resized.At(x, y).RGBA()
			// RGBA returns 16-bit values
			out[y*p.width+x] = p.normalize(0, float64(r>>8))
			out[plane+y*p.width+x] = p.normalize(1, float64(g>>8))
			out[2*plane+y*p.width+x] = p.normalize(2, float64(b>>8))
		}
	}
	return out
}

func (p *Preprocessor) normalize(channel int, v float64) float32 {
	return float32((v - p.mean[channel]) / p.stdDev[channel] / 255.)
}

// Stack concatenates two preprocessed frames along the channel dimension.
func (p *Preprocessor) Stack(frame1, frame2 []float32) *PairTensor {
	data := make([]float32, 0, len(frame1)+len(frame2))
	data = append(data, frame1...)
	data = append(data, frame2...)
	return &PairTensor{data: data, height: p.height, width: p.width}
}
