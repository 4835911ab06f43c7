// Package json is the encoding/json backed wire codec used by default.
package json

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
)

// ErrTrailingData reports bytes after the first JSON value.
var ErrTrailingData = errors.New("json: trailing data after top-level value")

// Decode parses one JSON document. Numbers are kept as json.Number so that
// integers and decimals keep their exact text.
func Decode(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, ErrTrailingData
	}
	return v, nil
}

// Marshal renders v; map keys are emitted in sorted order.
func Marshal(v any) ([]byte, error) { return json.Marshal(v) }

// MarshalIndent is Marshal with two-space indentation.
func MarshalIndent(v any) ([]byte, error) { return json.MarshalIndent(v, "", "  ") }
