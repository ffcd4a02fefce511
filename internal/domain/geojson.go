package domain

import (
	"encoding/json"
	"fmt"

	"github.com/twpayne/go-geom/encoding/geojson"
)

// RawCollection is a FeatureCollection decoded one feature at a time.
// Features keeps the source order and length; entries that failed to decode
// are nil and have a matching *MalformedFeatureError in Rejected.
type RawCollection struct {
	Features []*geojson.Feature
	Rejected []error
}

// DecodeCollection decodes a GeoJSON FeatureCollection. Only a broken
// envelope is an error; a bad feature is rejected individually so one
// corrupt record does not drop the whole overlay.
func DecodeCollection(data []byte) (RawCollection, error) {
	var envelope struct {
		Type     string            `json:"type"`
		Features []json.RawMessage `json:"features"`
	}
	if err := json.Unmarshal(data, &envelope); err != nil {
		return RawCollection{}, fmt.Errorf("decode feature collection: %w", err)
	}
	if envelope.Type != "FeatureCollection" {
		return RawCollection{}, fmt.Errorf("decode feature collection: unexpected type %q", envelope.Type)
	}

	rc := RawCollection{Features: make([]*geojson.Feature, len(envelope.Features))}
	for i, raw := range envelope.Features {
		f := &geojson.Feature{}
		if err := f.UnmarshalJSON(raw); err != nil {
			rc.Rejected = append(rc.Rejected, malformed(i, featureID(raw), "decode: %v", err))
			continue
		}
		rc.Features[i] = f
	}
	return rc, nil
}

// featureID recovers a string id from a feature that failed to decode.
func featureID(raw json.RawMessage) string {
	var head struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(raw, &head); err != nil {
		return ""
	}
	return head.ID
}
