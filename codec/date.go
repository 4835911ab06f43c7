package codec

import (
	"errors"
	"time"
)

const dateLayout = "2006-01-02"

var errZeroTime = errors.New("codec: zero time has no wire form")

// Date returns a Codec for YYYY-MM-DD calendar dates. Decoded values are
// midnight UTC; Encode drops the clock part after converting to UTC.
func Date() Codec[string, time.Time] { return dateCodec{} }

type dateCodec struct{}

func (dateCodec) Decode(a string) (time.Time, error) {
	return time.ParseInLocation(dateLayout, a, time.UTC)
}

func (dateCodec) Encode(b time.Time) (string, error) {
	if b.IsZero() {
		return "", errZeroTime
	}
	return b.UTC().Format(dateLayout), nil
}
