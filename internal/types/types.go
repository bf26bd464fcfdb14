package types

import (
	"image"

	"github.com/andresmejia3/tonematch/internal/tone"
)

// Reading is the result of analysing one face in one frame
type Reading struct {
	Face       image.Rectangle // Detector bounding box
	ROI        image.Rectangle // Central skin sample, never empty
	Color      tone.RGB        // Mean color over ROI
	Brightness float64
	Tier       tone.Tier
	Best       []string // Entries rendered on the overlay (top 3)
	Avoid      []string // Entries rendered on the overlay (top 2)
}
