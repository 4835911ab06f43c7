// Command sdkmodel inspects model declarations and checks wire payloads
// against them.
//
//	sdkmodel models
//	sdkmodel fields --model card
//	sdkmodel jsonschema --model ach_transfer --strict
//	sdkmodel decode --model ach_transfer --select data payload.json
package main

import (
	"os"

	"github.com/rs/zerolog/log"
)

func main() {
	app := newApp(os.Stdin, os.Stdout, os.Stderr)
	if err := app.Run(os.Args); err != nil {
		log.Fatal().Err(err).Msg("exiting")
	}
}
