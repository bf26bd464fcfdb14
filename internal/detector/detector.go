// Package detector wraps face localization behind a small interface so the
// frame pipeline can run against any detector, including test stubs.
package detector

import (
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"

	"gocv.io/x/gocv"
)

// DefaultCascade is the Haar cascade shipped next to the executable.
const DefaultCascade = "haarcascade_frontalface_default.xml"

// ErrCascadeLoad is returned when no candidate path yields a usable cascade.
var ErrCascadeLoad = errors.New("failed to load face cascade")

// Detector finds face bounding boxes in a BGR frame.
type Detector interface {
	// Detect returns zero or more face rectangles in frame coordinates.
	Detect(frame gocv.Mat) []image.Rectangle

	// Close releases any native resources held by the detector.
	Close() error
}

// Params tunes DetectMultiScale.
type Params struct {
	ScaleFactor  float64
	MinNeighbors int
	MinSize      image.Point
}

// DefaultParams matches the classic frontal-face settings: 10% scale steps,
// five neighbours, and faces at least 100px square.
func DefaultParams() Params {
	return Params{
		ScaleFactor:  1.1,
		MinNeighbors: 5,
		MinSize:      image.Pt(100, 100),
	}
}

// Cascade is a Detector backed by an OpenCV Haar cascade.
type Cascade struct {
	classifier gocv.CascadeClassifier
	params     Params
	gray       gocv.Mat
	Path       string
}

// NewCascade loads the cascade at path. Relative paths are tried as given
// and then next to the running executable.
func NewCascade(path string, params Params) (*Cascade, error) {
	classifier := gocv.NewCascadeClassifier()

	for _, candidate := range candidatePaths(path) {
		if _, err := os.Stat(candidate); err != nil {
			continue
		}
		if classifier.Load(candidate) {
			return &Cascade{
				classifier: classifier,
				params:     params,
				gray:       gocv.NewMat(),
				Path:       candidate,
			}, nil
		}
	}

	classifier.Close()
	return nil, fmt.Errorf("%w from %s", ErrCascadeLoad, path)
}

func candidatePaths(path string) []string {
	paths := []string{path}
	if filepath.IsAbs(path) {
		return paths
	}
	if exe, err := os.Executable(); err == nil {
		paths = append(paths, filepath.Join(filepath.Dir(exe), path))
	}
	return paths
}

// Detect runs the cascade on a grayscale copy of frame. A frame that cannot
// be converted to grayscale yields no faces.
func (c *Cascade) Detect(frame gocv.Mat) []image.Rectangle {
	if frame.Empty() {
		return nil
	}
	if err := gocv.CvtColor(frame, &c.gray, gocv.ColorBGRToGray); err != nil {
		return nil
	}
	return c.classifier.DetectMultiScaleWithParams(
		c.gray,
		c.params.ScaleFactor,
		c.params.MinNeighbors,
		0,
		c.params.MinSize,
		image.Pt(0, 0),
	)
}

func (c *Cascade) Close() error {
	c.gray.Close()
	return c.classifier.Close()
}

// Static is a Detector that reports the same rectangles for every frame.
// It is used for offline runs where face boxes are already known.
type Static []image.Rectangle

func (s Static) Detect(frame gocv.Mat) []image.Rectangle {
	out := make([]image.Rectangle, len(s))
	copy(out, s)
	return out
}

func (s Static) Close() error { return nil }
