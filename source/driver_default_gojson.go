// Package source switches the process-wide JSON driver to go-json when
// imported for side effects:
//
//	import _ "github.com/reoring/sdkmodel/source"
package source

import (
	"github.com/reoring/sdkmodel"
	drvgojson "github.com/reoring/sdkmodel/source/gojson"
)

// init in a separate package to avoid import cycle in root. This sets go-json as default driver.
func init() { sdkmodel.SetJSONDriver(drvgojson.Driver()) }
