// Package gojson provides a JSONDriver backed by goccy/go-json.
package gojson

import (
	"bytes"
	"errors"
	"io"

	j "github.com/goccy/go-json"

	"github.com/reoring/sdkmodel"
)

// Driver returns a sdkmodel.JSONDriver backed by goccy/go-json.
func Driver() sdkmodel.JSONDriver { return driverGoJSON{} }

type driverGoJSON struct{}

func (driverGoJSON) Name() string { return "go-json" }

func (driverGoJSON) Decode(data []byte) (any, error) {
	dec := j.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	var rest any
	if err := dec.Decode(&rest); err != io.EOF {
		return nil, errTrailing
	}
	return v, nil
}

func (driverGoJSON) Marshal(v any) ([]byte, error) { return j.Marshal(v) }

var errTrailing = errors.New("go-json: trailing data after top-level value")
