// Package domain models earthquake events and tectonic plate boundaries and
// the visual encoding applied to them.
//
// # Data Sources
//
// Earthquake events come from the USGS real-time GeoJSON summary feeds, e.g.
// https://earthquake.usgs.gov/earthquakes/feed/v1.0/summary/all_week.geojson.
// Plate boundaries come from the PB2002 dataset (Bird, 2003) as republished
// in GeoJSON form at https://github.com/fraxen/tectonicplates.
//
// # USGS Feed Conventions
//
// Each feature is a Point with three coordinates:
//
//	[longitude, latitude, depth]
//
// Depth is in kilometers below the surface. Shallow events near the surface
// occasionally carry small negative depths; they classify as the shallowest
// band like any other value at or below 10 km.
//
// The feature id (e.g. "nc73872510") is the network code followed by the
// network-assigned event code. It is unique within a feed snapshot, but the
// collection is rendered as delivered and duplicates are not removed.
//
// Magnitude is properties.mag. It is typically between 0 and 10, may be
// slightly negative for micro-events, and is null for events that have not
// yet been reviewed. A null or missing magnitude makes the feature malformed.
//
// properties.time is epoch milliseconds (UTC); properties.place is a
// free-form description such as "10 km NW of The Geysers, CA".
//
// # Depth Classification
//
// Depth maps onto six ordered bands, each closed on its upper bound:
//
//	Depth <= 10        shallow       red
//	10 < Depth <= 25   moderate      orange
//	25 < Depth <= 40   intermediate  yellow
//	40 < Depth <= 55   deep          pink
//	55 < Depth <= 70   very deep     blue
//	Depth > 70         deepest       green
//
// The same band table drives both [ClassifyDepth] and [Legend], so the legend
// text cannot drift from the classifier.
//
// # Marker Radius
//
// Marker radius is 5 pixels per unit of magnitude. See [ScaleRadius].
package domain
