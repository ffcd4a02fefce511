// Package overlay composes styled earthquake markers and plate-boundary lines
// into the named, independently toggle-able layers of one base map.
package overlay

import (
	"errors"
	"fmt"
	"time"
)

// Overlay names as shown in the layer control, in registration order.
const (
	LayerEarthquakes = "Earthquakes"
	LayerPlates      = "Tectonic Plates"
)

// ErrUnknownLayer is returned when a layer name is not registered on the map.
var ErrUnknownLayer = errors.New("unknown layer")

// OSMAttribution is the credit line required by OpenStreetMap tiles.
const OSMAttribution = `&copy; <a href="https://www.openstreetmap.org/copyright">OpenStreetMap</a> contributors`

// BaseMap describes the tile layer and initial viewport.
type BaseMap struct {
	CenterLat   float64 `json:"center_lat"`
	CenterLon   float64 `json:"center_lon"`
	Zoom        int     `json:"zoom"`
	TileURL     string  `json:"tile_url"`
	Attribution string  `json:"attribution"`
}

// Map is the render context for one pass: a base map plus its overlays.
// It is owned by whoever runs the pass and is never shared between passes.
type Map struct {
	Base       BaseMap
	RenderedAt time.Time
	// Skipped counts features left off any overlay as malformed.
	Skipped int
	layers  []*Layer
}

// NewMap returns a map with both overlays registered, empty, and visible.
func NewMap(base BaseMap) *Map {
	return &Map{
		Base: base,
		layers: []*Layer{
			{Name: LayerEarthquakes, Visible: true},
			{Name: LayerPlates, Visible: true},
		},
	}
}

// Layers returns the overlays in registration order.
func (m *Map) Layers() []*Layer {
	return m.layers
}

// Layer returns the overlay with the given name.
func (m *Map) Layer(name string) (*Layer, error) {
	for _, l := range m.layers {
		if l.Name == name {
			return l, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownLayer, name)
}

// SetVisible toggles one overlay. Other overlays are untouched.
func (m *Map) SetVisible(name string, visible bool) error {
	l, err := m.Layer(name)
	if err != nil {
		return err
	}
	l.Visible = visible
	return nil
}

func (m *Map) attachMarkers(name string, markers []Marker) error {
	l, err := m.Layer(name)
	if err != nil {
		return err
	}
	l.Markers = append(l.Markers, markers...)
	return nil
}

func (m *Map) attachLines(name string, group LineGroup) error {
	l, err := m.Layer(name)
	if err != nil {
		return err
	}
	l.Lines = append(l.Lines, group)
	return nil
}
