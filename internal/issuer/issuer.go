package issuer

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrNotFound     = errors.New("issuer table not found")
	ErrInvalidTable = errors.New("invalid issuer table")
	ErrReadOnly     = errors.New("issuer tables are read-only")
)

// ParseUpdated parses the optional "updated" stamp of a table.
// Both plain dates and RFC 3339 timestamps are accepted.
func ParseUpdated(s string) (time.Time, error) {
	if t, err := time.Parse(time.DateOnly, s); err == nil {
		return t, nil
	}

	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing updated %q: %w", s, err)
	}

	return t, nil
}
