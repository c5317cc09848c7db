package booking

import "errors"

// ErrInvalidGranularity is returned when a period type outside of
// day/month/year reaches period arithmetic. It signals a programming
// error and is never retried.
var ErrInvalidGranularity = errors.New("granularity is not supported")

// Granularity determines how reservation periods are computed.
type Granularity string

const (
	GranularityDay   Granularity = "day"
	GranularityMonth Granularity = "month"
	GranularityYear  Granularity = "year"
)

// Granularities lists all supported period types in stepping order.
var Granularities = []Granularity{GranularityDay, GranularityMonth, GranularityYear}

// Valid reports whether g is one of the supported period types.
func (g Granularity) Valid() bool {
	switch g {
	case GranularityDay, GranularityMonth, GranularityYear:
		return true
	}
	return false
}

func (g Granularity) String() string {
	return string(g)
}

// ParseGranularity converts a raw string into a Granularity,
// returning ErrInvalidGranularity for anything unknown.
func ParseGranularity(s string) (Granularity, error) {
	g := Granularity(s)
	if !g.Valid() {
		return "", ErrInvalidGranularity
	}
	return g, nil
}
