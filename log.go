package sdkmodel

import (
	"sync/atomic"

	"github.com/rs/zerolog"
)

var logger atomic.Pointer[zerolog.Logger]

func init() {
	nop := zerolog.Nop()
	logger.Store(&nop)
}

// SetLogger routes the package's debug records (shape builds, hydration
// failures, duplicate-key warnings) to l. The default logger discards them.
func SetLogger(l zerolog.Logger) { logger.Store(&l) }

func log() *zerolog.Logger { return logger.Load() }
