package overlay

import (
	"github.com/couchcryptid/quake-map-service/internal/domain"
)

// Marker is one earthquake drawn as a circle marker.
type Marker struct {
	ID        string           `json:"id"`
	Lat       float64          `json:"lat"`
	Lon       float64          `json:"lon"`
	Depth     float64          `json:"depth"`
	Magnitude float64          `json:"magnitude"`
	Place     string           `json:"place,omitempty"`
	Style     domain.StyleSpec `json:"style"`
	Popup     string           `json:"popup"`
}

// LineStyle is the fixed stroke used for every plate boundary.
type LineStyle struct {
	Color  string  `json:"color"`
	Weight float64 `json:"weight"`
}

// DefaultLineStyle matches the classic plate-boundary rendering.
var DefaultLineStyle = LineStyle{Color: "yellow", Weight: 3}

// LineGroup is all segments of one boundary collection under a single style.
type LineGroup struct {
	Style    LineStyle
	Segments []domain.BoundarySegment
}

// Builder turns validated features into overlay content.
type Builder struct {
	Resolver domain.StyleResolver
	Boundary LineStyle
}

// NewBuilder creates a Builder. A zero boundary style falls back to DefaultLineStyle.
func NewBuilder(resolver domain.StyleResolver, boundary LineStyle) Builder {
	if boundary == (LineStyle{}) {
		boundary = DefaultLineStyle
	}
	return Builder{Resolver: resolver, Boundary: boundary}
}

// Markers returns one marker per feature, in input order. Duplicate IDs
// produce duplicate markers.
func (b Builder) Markers(features []domain.EarthquakeFeature) []Marker {
	markers := make([]Marker, 0, len(features))
	for _, f := range features {
		markers = append(markers, Marker{
			ID:        f.ID,
			Lat:       f.Position.Lat,
			Lon:       f.Position.Lon,
			Depth:     f.Position.Depth,
			Magnitude: f.Magnitude,
			Place:     f.Place,
			Style:     b.Resolver.StyleFor(f),
			Popup:     f.ID,
		})
	}
	return markers
}

// Lines wraps a whole boundary collection in one group with the fixed style.
func (b Builder) Lines(segments []domain.BoundarySegment) LineGroup {
	return LineGroup{Style: b.Boundary, Segments: segments}
}

// AttachEarthquakes adds the markers for features to the earthquake overlay
// and returns them.
func (b Builder) AttachEarthquakes(m *Map, features []domain.EarthquakeFeature) ([]Marker, error) {
	markers := b.Markers(features)
	if err := m.attachMarkers(LayerEarthquakes, markers); err != nil {
		return nil, err
	}
	return markers, nil
}

// AttachBoundaries adds one line group for segments to the plates overlay.
func (b Builder) AttachBoundaries(m *Map, segments []domain.BoundarySegment) error {
	return m.attachLines(LayerPlates, b.Lines(segments))
}
