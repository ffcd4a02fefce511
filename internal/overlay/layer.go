package overlay

import (
	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/geojson"
)

// Layer is one toggle-able overlay. It owns its markers and lines; nothing
// is shared between layers except the map they are registered on.
type Layer struct {
	Name    string
	Visible bool
	Markers []Marker
	Lines   []LineGroup
}

// Len reports the number of drawable features in the layer.
func (l *Layer) Len() int {
	n := len(l.Markers)
	for _, g := range l.Lines {
		n += len(g.Segments)
	}
	return n
}

// FeatureCollection encodes the layer as GeoJSON. Style values are written
// into each feature's properties using the option names Leaflet expects
// (color, fillColor, radius, weight).
func (l *Layer) FeatureCollection() *geojson.FeatureCollection {
	fc := &geojson.FeatureCollection{Features: make([]*geojson.Feature, 0, l.Len())}

	for _, mk := range l.Markers {
		props := map[string]any{
			"popup":     mk.Popup,
			"category":  mk.Style.Color.String(),
			"color":     mk.Style.Color.Color(),
			"fillColor": mk.Style.FillColor.Color(),
			"radius":    mk.Style.Radius,
			"mag":       mk.Magnitude,
			"depth":     mk.Depth,
		}
		if mk.Place != "" {
			props["place"] = mk.Place
		}
		fc.Features = append(fc.Features, &geojson.Feature{
			ID:         mk.ID,
			Geometry:   geom.NewPointFlat(geom.XY, []float64{mk.Lon, mk.Lat}),
			Properties: props,
		})
	}

	for _, g := range l.Lines {
		for _, seg := range g.Segments {
			props := map[string]any{
				"color":  g.Style.Color,
				"weight": g.Style.Weight,
			}
			if seg.Name != "" {
				props["name"] = seg.Name
			}
			fc.Features = append(fc.Features, &geojson.Feature{
				Geometry:   seg.Geometry,
				Properties: props,
			})
		}
	}

	return fc
}
