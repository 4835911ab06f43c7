// Package codec holds the bidirectional wire codecs used for formatted
// scalars: RFC 3339 timestamps, calendar dates and decimals.
package codec

import "errors"

// Codec converts between a wire representation A and a domain value B.
// Encode(Decode(a)) yields the canonical wire form of a.
type Codec[A any, B any] interface {
	Decode(a A) (B, error)
	Encode(b B) (A, error)
}

// ErrNotNumeric is returned when a value has no numeric reading.
var ErrNotNumeric = errors.New("codec: value is not numeric")
