package sdkmodel

import (
	"sync"

	jsonsrc "github.com/reoring/sdkmodel/source/json"
)

// JSONDriver decodes wire bytes into generic JSON values (maps, slices,
// json.Number, string, bool, nil) and renders them back. The default
// implementation is based on encoding/json and may be swapped with
// SetJSONDriver.
type JSONDriver interface {
	Decode(data []byte) (any, error)
	Marshal(v any) ([]byte, error)
	Name() string
}

var (
	jsonDriverMu      sync.RWMutex
	currentJSONDriver JSONDriver = defaultJSONDriver{}
)

// SetJSONDriver replaces the global JSON driver; nil values are ignored.
func SetJSONDriver(d JSONDriver) {
	if d == nil {
		return
	}
	jsonDriverMu.Lock()
	currentJSONDriver = d
	jsonDriverMu.Unlock()
}

// UseDefaultJSONDriver restores the default encoding/json-backed driver.
func UseDefaultJSONDriver() {
	jsonDriverMu.Lock()
	currentJSONDriver = defaultJSONDriver{}
	jsonDriverMu.Unlock()
}

// CurrentJSONDriver returns the driver in effect.
func CurrentJSONDriver() JSONDriver { return getJSONDriver() }

func getJSONDriver() JSONDriver {
	jsonDriverMu.RLock()
	d := currentJSONDriver
	jsonDriverMu.RUnlock()
	return d
}

// defaultJSONDriver wraps the encoding/json implementation.
type defaultJSONDriver struct{}

func (defaultJSONDriver) Decode(data []byte) (any, error) { return jsonsrc.Decode(data) }
func (defaultJSONDriver) Marshal(v any) ([]byte, error)   { return jsonsrc.Marshal(v) }
func (defaultJSONDriver) Name() string                    { return "encoding/json" }
