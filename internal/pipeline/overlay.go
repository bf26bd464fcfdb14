package pipeline

import (
	"errors"
	"fmt"
	"image"
	"image/color"

	"github.com/andresmejia3/tonematch/internal/tone"
	"github.com/andresmejia3/tonematch/internal/types"
	"gocv.io/x/gocv"
)

var (
	boxColor    = color.RGBA{R: 255, G: 192, B: 203, A: 255} // light pink
	textColor   = color.RGBA{R: 219, G: 112, B: 147, A: 255}
	bestColor   = color.RGBA{G: 255, A: 255}
	avoidColor  = color.RGBA{R: 255, A: 255}
	roiColor    = color.RGBA{R: 255, G: 255, A: 255}
	borderColor = color.RGBA{R: 255, G: 255, B: 255, A: 255}
)

const (
	font        = gocv.FontHersheySimplex
	headerScale = 0.6
	entryScale  = 0.5
	lineHeight  = 20
	swatchSize  = 50
	margin      = 10
)

func drawFaceBox(frame *gocv.Mat, face image.Rectangle) error {
	if err := gocv.Rectangle(frame, face, boxColor, 2); err != nil {
		return fmt.Errorf("draw face box %v: %w", face, err)
	}
	return nil
}

// Layout places every overlay element relative to the face's right edge and top.
type Layout struct {
	Swatch      image.Rectangle
	TierLabel   image.Point
	RGBLabel    image.Point
	BestHeader  image.Point
	AvoidHeader image.Point
}

// EntryAt returns the origin of the i-th list entry below header.
func (l Layout) EntryAt(header image.Point, i int) image.Point {
	return image.Pt(header.X, header.Y+lineHeight*(i+1))
}

// LayoutFor computes overlay positions for a face box. Nothing is clamped
// to the frame; OpenCV clips drawing at the edges.
func LayoutFor(face image.Rectangle) Layout {
	right, top := face.Max.X, face.Min.Y
	left := right + margin
	return Layout{
		Swatch:      image.Rect(left, top, left+swatchSize, top+swatchSize),
		TierLabel:   image.Pt(left+swatchSize+margin, top+20),
		RGBLabel:    image.Pt(left+swatchSize+margin, top+40),
		BestHeader:  image.Pt(left, top+60),
		AvoidHeader: image.Pt(left, top+140),
	}
}

func drawReading(frame *gocv.Mat, r types.Reading) error {
	l := LayoutFor(r.Face)

	errs := []error{
		gocv.Rectangle(frame, l.Swatch, swatch(r.Color), -1),
		gocv.Rectangle(frame, l.Swatch, borderColor, 1),
		gocv.PutText(frame, TierText(r.Tier), l.TierLabel, font, headerScale, textColor, 1),
		gocv.PutText(frame, RGBText(r.Color), l.RGBLabel, font, entryScale, textColor, 1),
		gocv.PutText(frame, "Best Colors:", l.BestHeader, font, headerScale, bestColor, 1),
	}
	for i, name := range r.Best {
		errs = append(errs, gocv.PutText(frame, EntryText(name), l.EntryAt(l.BestHeader, i), font, entryScale, textColor, 1))
	}

	errs = append(errs, gocv.PutText(frame, "Colors to Avoid:", l.AvoidHeader, font, headerScale, avoidColor, 1))
	for i, name := range r.Avoid {
		errs = append(errs, gocv.PutText(frame, EntryText(name), l.EntryAt(l.AvoidHeader, i), font, entryScale, textColor, 1))
	}

	errs = append(errs, gocv.Rectangle(frame, r.ROI, roiColor, 1))

	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("draw overlay for face %v: %w", r.Face, err)
	}
	return nil
}

func swatch(c tone.RGB) color.RGBA {
	return color.RGBA{R: uint8(c.R), G: uint8(c.G), B: uint8(c.B), A: 255}
}

func TierText(t tone.Tier) string { return "Tone: " + string(t) }

func RGBText(c tone.RGB) string { return "RGB: " + c.String() }

func EntryText(name string) string { return fmt.Sprintf("- %s", name) }
