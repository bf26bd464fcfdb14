// Package snapshot writes annotated frames to disk as JPEG.
package snapshot

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gocv.io/x/gocv"
)

// DefaultPath is where the live view saves its snapshot.
const DefaultPath = "assets/sampleoutput.jpg"

// Quality is the JPEG quality used for every snapshot (maximum).
const Quality = 100

var (
	ErrEmptyFrame = errors.New("cannot save an empty frame")
	ErrEncode     = errors.New("failed to encode image")
)

// Save writes img to path, creating the parent directory when missing.
func Save(path string, img gocv.Mat) error {
	if img.Empty() {
		return ErrEmptyFrame
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create snapshot directory: %w", err)
		}
	}

	if !gocv.IMWriteWithParams(path, img, []int{int(gocv.IMWriteJpegQuality), Quality}) {
		return fmt.Errorf("%w: %s", ErrEncode, path)
	}
	return nil
}
