package domain

import "github.com/twpayne/go-geom/encoding/geojson"

// StyleSpec is the visual encoding of one earthquake marker.
type StyleSpec struct {
	Color     Category `json:"color"`
	FillColor Category `json:"fill_color"`
	Radius    float64  `json:"radius"`
}

// StyleResolver derives marker styles. MinRadius is a floor applied only when
// positive; the zero value leaves radii exactly as ScaleRadius produces them,
// including zero and negative radii for non-positive magnitudes.
type StyleResolver struct {
	MinRadius float64
}

// StyleFor returns the marker style for a validated feature.
func (r StyleResolver) StyleFor(eq EarthquakeFeature) StyleSpec {
	cat := ClassifyDepth(eq.Position.Depth)
	radius := ScaleRadius(eq.Magnitude)
	if r.MinRadius > 0 && radius < r.MinRadius {
		radius = r.MinRadius
	}
	return StyleSpec{Color: cat, FillColor: cat, Radius: radius}
}

// StyleForFeature validates a raw GeoJSON feature and styles it. Errors are
// *MalformedFeatureError; nothing is defaulted.
func (r StyleResolver) StyleForFeature(f *geojson.Feature) (StyleSpec, error) {
	eq, err := ParseEarthquake(0, f)
	if err != nil {
		return StyleSpec{}, err
	}
	return r.StyleFor(eq), nil
}
