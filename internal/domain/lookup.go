package domain

import (
	"errors"
	"fmt"
)

// FindByID returns the first feature whose ID matches. A miss is reported as
// an error wrapping ErrNotFound.
func FindByID(features []EarthquakeFeature, id string) (EarthquakeFeature, error) {
	for _, f := range features {
		if f.ID == id {
			return f, nil
		}
	}
	return EarthquakeFeature{}, fmt.Errorf("%w: %s", ErrNotFound, id)
}

// FindInBatch looks up id among the valid features of a batch. When none
// match but a rejected feature carries the id, its *MalformedFeatureError is
// returned instead of ErrNotFound.
func FindInBatch(features []EarthquakeFeature, rejected []error, id string) (EarthquakeFeature, error) {
	eq, err := FindByID(features, id)
	if err == nil {
		return eq, nil
	}
	for _, r := range rejected {
		var mf *MalformedFeatureError
		if errors.As(r, &mf) && mf.ID == id {
			return EarthquakeFeature{}, mf
		}
	}
	return EarthquakeFeature{}, err
}
