package domain

import (
	"fmt"
	"math"
	"strconv"
)

// LegendEntry is one row of the depth color key.
type LegendEntry struct {
	Category    Category `json:"category"`
	Color       string   `json:"color"`
	Description string   `json:"description"`
}

// Legend builds the depth key from the classification table, shallowest first.
func Legend() []LegendEntry {
	entries := make([]LegendEntry, 0, len(depthBands))
	lower := math.Inf(-1)
	for _, b := range depthBands {
		entries = append(entries, LegendEntry{
			Category:    b.Category,
			Color:       b.Category.Color(),
			Description: describeInterval(lower, b.Upper),
		})
		lower = b.Upper
	}
	return entries
}

func describeInterval(lower, upper float64) string {
	switch {
	case math.IsInf(lower, -1):
		return "Depth <= " + formatKm(upper)
	case math.IsInf(upper, 1):
		return "Depth > " + formatKm(lower)
	default:
		return fmt.Sprintf("%s < Depth <= %s", formatKm(lower), formatKm(upper))
	}
}

func formatKm(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
