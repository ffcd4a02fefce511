package domain

import (
	"encoding/json"
	"time"

	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/geojson"
)

// ParseEarthquake validates one USGS feature. The geometry must be a Point
// with at least three coordinates and properties.mag must be numeric.
func ParseEarthquake(index int, f *geojson.Feature) (EarthquakeFeature, error) {
	if f == nil {
		return EarthquakeFeature{}, malformed(index, "", "missing feature")
	}

	pt, ok := f.Geometry.(*geom.Point)
	if !ok || pt == nil {
		return EarthquakeFeature{}, malformed(index, f.ID, "geometry is %T, want *geom.Point", f.Geometry)
	}
	coords := pt.FlatCoords()
	if len(coords) < 3 {
		return EarthquakeFeature{}, malformed(index, f.ID, "position has %d components, want 3", len(coords))
	}

	mag, ok := numberProp(f.Properties, "mag")
	if !ok {
		return EarthquakeFeature{}, malformed(index, f.ID, "magnitude missing or not numeric")
	}

	eq := EarthquakeFeature{
		ID:        f.ID,
		Position:  Position{Lon: coords[0], Lat: coords[1], Depth: coords[2]},
		Magnitude: mag,
	}
	if place, ok := f.Properties["place"].(string); ok {
		eq.Place = place
	}
	if ms, ok := numberProp(f.Properties, "time"); ok {
		eq.Time = time.UnixMilli(int64(ms)).UTC()
	}
	return eq, nil
}

// ParseEarthquakes validates every decoded feature in order. Nil entries
// (already rejected by DecodeCollection) are skipped without a new error.
func ParseEarthquakes(features []*geojson.Feature) ([]EarthquakeFeature, []error) {
	out := make([]EarthquakeFeature, 0, len(features))
	var errs []error
	for i, f := range features {
		if f == nil {
			continue
		}
		eq, err := ParseEarthquake(i, f)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		out = append(out, eq)
	}
	return out, errs
}

// ParseBoundary validates one plate boundary feature. Any linear or areal
// geometry is accepted.
func ParseBoundary(index int, f *geojson.Feature) (BoundarySegment, error) {
	if f == nil {
		return BoundarySegment{}, malformed(index, "", "missing feature")
	}
	switch f.Geometry.(type) {
	case *geom.LineString, *geom.MultiLineString, *geom.Polygon, *geom.MultiPolygon:
	default:
		return BoundarySegment{}, malformed(index, f.ID, "unsupported boundary geometry %T", f.Geometry)
	}

	seg := BoundarySegment{Geometry: f.Geometry}
	if name, ok := f.Properties["Name"].(string); ok {
		seg.Name = name
	}
	return seg, nil
}

// ParseBoundaries validates every decoded boundary feature in order.
func ParseBoundaries(features []*geojson.Feature) ([]BoundarySegment, []error) {
	out := make([]BoundarySegment, 0, len(features))
	var errs []error
	for i, f := range features {
		if f == nil {
			continue
		}
		seg, err := ParseBoundary(i, f)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		out = append(out, seg)
	}
	return out, errs
}

func numberProp(props map[string]any, key string) (float64, bool) {
	switch v := props[key].(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case json.Number:
		f, err := v.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}
