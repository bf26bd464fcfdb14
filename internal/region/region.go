// Package region computes the skin sampling rectangle inside a detected face.
package region

import "image"

// The sample spans the central 30%-70% of the face box so the eyes and
// hairline stay out of the average.
const (
	SampleStart = 0.3
	SampleEnd   = 0.7
)

// SkinROI returns the central sampling rectangle of face, clipped to bounds.
// The result is empty when the face is too small (or lies outside bounds);
// callers skip such faces.
func SkinROI(face, bounds image.Rectangle) image.Rectangle {
	face = face.Canon()
	w, h := float64(face.Dx()), float64(face.Dy())
	x, y := float64(face.Min.X), float64(face.Min.Y)

	roi := image.Rect(
		int(x+w*SampleStart), int(y+h*SampleStart),
		int(x+w*SampleEnd), int(y+h*SampleEnd),
	)
	// image.Rect canonicalises, so a zero-width span stays zero-width.
	roi = roi.Intersect(face).Intersect(bounds)
	if roi.Empty() {
		return image.Rectangle{}
	}
	return roi
}
