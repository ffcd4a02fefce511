package domain

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when a lookup finds no feature with the requested ID.
var ErrNotFound = errors.New("earthquake not found")

// MalformedFeatureError reports a feature that cannot be rendered. Index is
// the feature's position in the source collection.
type MalformedFeatureError struct {
	Index  int
	ID     string
	Reason string
}

func (e *MalformedFeatureError) Error() string {
	if e.ID == "" {
		return fmt.Sprintf("malformed feature #%d: %s", e.Index, e.Reason)
	}
	return fmt.Sprintf("malformed feature #%d (%s): %s", e.Index, e.ID, e.Reason)
}

func malformed(index int, id, format string, args ...any) *MalformedFeatureError {
	return &MalformedFeatureError{Index: index, ID: id, Reason: fmt.Sprintf(format, args...)}
}
