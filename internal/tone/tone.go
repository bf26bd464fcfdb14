// Package tone maps a sampled skin color to one of five brightness tiers.
package tone

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"
)

// Tier is a discrete skin-brightness classification.
type Tier string

const (
	Fair   Tier = "Fair"
	Light  Tier = "Light"
	Medium Tier = "Medium"
	Tan    Tier = "Tan"
	Dark   Tier = "Dark"
)

// Upper-exclusive lower bounds of each tier. A brightness exactly on a
// threshold belongs to the darker tier.
const (
	fairAbove   = 200.0
	lightAbove  = 150.0
	mediumAbove = 100.0
	tanAbove    = 50.0
)

var tiers = []Tier{Fair, Light, Medium, Tan, Dark}

// Tiers returns every tier ordered from brightest to darkest.
func Tiers() []Tier {
	out := make([]Tier, len(tiers))
	copy(out, tiers)
	return out
}

// Valid reports whether t is one of the five known tiers.
func (t Tier) Valid() bool {
	for _, known := range tiers {
		if t == known {
			return true
		}
	}
	return false
}

// RGB holds per-channel means in the 0-255 range.
type RGB struct {
	R, G, B int
}

func (c RGB) String() string {
	return fmt.Sprintf("(%d, %d, %d)", c.R, c.G, c.B)
}

// Hex formats the color as #rrggbb.
func (c RGB) Hex() string {
	return colorful.Color{
		R: float64(c.R) / 255,
		G: float64(c.G) / 255,
		B: float64(c.B) / 255,
	}.Clamped().Hex()
}

// Brightness is the arithmetic mean of the three channels.
func Brightness(c RGB) float64 {
	return float64(c.R+c.G+c.B) / 3
}

// Classify maps a brightness scalar to a tier. It is total: values outside
// 0-255 (and NaN, which fails every comparison) still land in a tier.
func Classify(b float64) Tier {
	switch {
	case b > fairAbove:
		return Fair
	case b > lightAbove:
		return Light
	case b > mediumAbove:
		return Medium
	case b > tanAbove:
		return Tan
	default:
		return Dark
	}
}

// ClassifyColor is Classify(Brightness(c)).
func ClassifyColor(c RGB) Tier {
	return Classify(Brightness(c))
}
