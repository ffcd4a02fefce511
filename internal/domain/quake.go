package domain

import (
	"time"

	"github.com/twpayne/go-geom"
)

// Position is a hypocenter location: WGS-84 longitude/latitude plus depth in km.
type Position struct {
	Lon   float64 `json:"lon"`
	Lat   float64 `json:"lat"`
	Depth float64 `json:"depth"`
}

// EarthquakeFeature is a validated earthquake event from the USGS feed.
type EarthquakeFeature struct {
	ID        string    `json:"id"`
	Position  Position  `json:"position"`
	Magnitude float64   `json:"magnitude"`
	Place     string    `json:"place,omitempty"`
	Time      time.Time `json:"time,omitzero"`
}

// BoundarySegment is one tectonic plate edge. Name is the PB2002 boundary
// name (e.g. "AF-AN") when the source provides one.
type BoundarySegment struct {
	Name     string
	Geometry geom.T
}
