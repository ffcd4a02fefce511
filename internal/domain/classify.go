package domain

import (
	"fmt"
	"math"
)

// Category is a depth band. The zero value is the shallowest band.
type Category int

const (
	Shallow Category = iota
	Moderate
	Intermediate
	Deep
	VeryDeep
	Deepest
)

var categoryNames = [...]string{"shallow", "moderate", "intermediate", "deep", "very_deep", "deepest"}

var categoryColors = [...]string{"red", "orange", "yellow", "pink", "blue", "green"}

// String returns the snake_case band name.
func (c Category) String() string {
	if c < Shallow || c > Deepest {
		return "unknown"
	}
	return categoryNames[c]
}

// Color returns the CSS color name used for markers in this band.
func (c Category) Color() string {
	if c < Shallow || c > Deepest {
		return ""
	}
	return categoryColors[c]
}

// MarshalText encodes the category by name so JSON payloads stay readable.
func (c Category) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText accepts the names produced by MarshalText.
func (c *Category) UnmarshalText(text []byte) error {
	for i, name := range categoryNames {
		if name == string(text) {
			*c = Category(i)
			return nil
		}
	}
	return fmt.Errorf("unknown depth category %q", text)
}

// DepthBand pairs a category with the inclusive upper bound of its depth
// interval. The lower bound is the previous band's upper bound (exclusive).
type DepthBand struct {
	Category Category
	Upper    float64
}

// depthBands must stay sorted by Upper and end with +Inf.
var depthBands = []DepthBand{
	{Category: Shallow, Upper: 10},
	{Category: Moderate, Upper: 25},
	{Category: Intermediate, Upper: 40},
	{Category: Deep, Upper: 55},
	{Category: VeryDeep, Upper: 70},
	{Category: Deepest, Upper: math.Inf(1)},
}

// RadiusPerMagnitude is the marker radius, in pixels, per unit of magnitude.
const RadiusPerMagnitude = 5

// DepthBands returns a copy of the classification table in ascending order.
func DepthBands() []DepthBand {
	out := make([]DepthBand, len(depthBands))
	copy(out, depthBands)
	return out
}

// ClassifyDepth maps a depth in km to its band. The first band whose upper
// bound is >= depth wins, so boundary values fall into the lower band.
func ClassifyDepth(depth float64) Category {
	for _, b := range depthBands {
		if depth <= b.Upper {
			return b.Category
		}
	}
	// Only NaN gets here.
	return Deepest
}

// ScaleRadius converts a magnitude into a marker radius. No clamping is
// applied; see StyleResolver for the optional floor.
func ScaleRadius(magnitude float64) float64 {
	return magnitude * RadiusPerMagnitude
}
