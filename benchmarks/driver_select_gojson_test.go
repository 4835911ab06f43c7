//go:build gojson

package benchmarks_test

import (
	"github.com/reoring/sdkmodel"
	drv "github.com/reoring/sdkmodel/source/gojson"
)

func init() {
	sdkmodel.SetJSONDriver(drv.Driver())
}
