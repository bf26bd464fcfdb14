// Package pipeline turns one video frame into annotated skin tone readings.
package pipeline

import (
	"errors"
	"image"

	"github.com/andresmejia3/tonematch/internal/detector"
	"github.com/andresmejia3/tonematch/internal/palette"
	"github.com/andresmejia3/tonematch/internal/region"
	"github.com/andresmejia3/tonematch/internal/tone"
	"github.com/andresmejia3/tonematch/internal/types"
	"gocv.io/x/gocv"
)

// How many entries of each list fit on the overlay.
const (
	ShownBest  = 3
	ShownAvoid = 2
)

// Pipeline runs detection, sampling, classification and overlay rendering.
// It holds the detector and table by reference and never mutates them.
type Pipeline struct {
	detector detector.Detector
	table    *palette.Table
}

func New(det detector.Detector, table *palette.Table) *Pipeline {
	return &Pipeline{detector: det, table: table}
}

// Process analyses every face in frame and draws the overlay onto it.
// frame must be the display copy: it is annotated in place. The readings are
// complete even when drawing fails; the error reports what could not be drawn.
func (p *Pipeline) Process(frame *gocv.Mat) ([]types.Reading, error) {
	if frame.Empty() {
		return nil, nil
	}

	faces := p.detector.Detect(*frame)
	readings := p.Sample(*frame, faces)

	var errs []error
	for _, face := range faces {
		if err := drawFaceBox(frame, face); err != nil {
			errs = append(errs, err)
		}
	}
	for _, r := range readings {
		if err := drawReading(frame, r); err != nil {
			errs = append(errs, err)
		}
	}
	return readings, errors.Join(errs...)
}

// Sample classifies each face without drawing anything. Faces whose skin
// sample is empty are skipped.
func (p *Pipeline) Sample(frame gocv.Mat, faces []image.Rectangle) []types.Reading {
	bounds := image.Rect(0, 0, frame.Cols(), frame.Rows())

	readings := make([]types.Reading, 0, len(faces))
	for _, face := range faces {
		roi := region.SkinROI(face, bounds)
		if roi.Empty() {
			continue
		}

		avg := AverageColor(frame, roi)
		brightness := tone.Brightness(avg)
		tier := tone.Classify(brightness)
		rec := p.table.Lookup(string(tier))

		readings = append(readings, types.Reading{
			Face:       face,
			ROI:        roi,
			Color:      avg,
			Brightness: brightness,
			Tier:       tier,
			Best:       palette.Top(rec.Best, ShownBest),
			Avoid:      palette.Top(rec.Avoid, ShownAvoid),
		})
	}
	return readings
}

// AverageColor returns the per-channel mean of a BGR frame inside roi,
// truncated to whole values.
func AverageColor(frame gocv.Mat, roi image.Rectangle) tone.RGB {
	sub := frame.Region(roi)
	defer sub.Close()

	mean := sub.Mean()
	return tone.RGB{
		R: int(mean.Val3),
		G: int(mean.Val2),
		B: int(mean.Val1),
	}
}
