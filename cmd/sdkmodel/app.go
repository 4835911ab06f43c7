package main

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/tidwall/gjson"
	"github.com/urfave/cli/v2"

	"github.com/reoring/sdkmodel"
	_ "github.com/reoring/sdkmodel/examples/banking"
	"github.com/reoring/sdkmodel/i18n"
	"github.com/reoring/sdkmodel/openapi"
	"github.com/reoring/sdkmodel/schemafile"
	_ "github.com/reoring/sdkmodel/source"
)

const version = "0.1.0"

func newApp(in io.Reader, out, errOut io.Writer) *cli.App {
	return &cli.App{
		Name:      "sdkmodel",
		Usage:     "inspect model declarations and check payloads against them",
		Version:   version,
		Reader:    in,
		Writer:    out,
		ErrWriter: errOut,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "schema",
				Usage:   "YAML schema table or OpenAPI document (default: built-in banking models)",
				EnvVars: []string{"SDKMODEL_SCHEMA"},
			},
			&cli.BoolFlag{
				Name:    "debug",
				Aliases: []string{"d"},
				Usage:   "enable debug logging",
				EnvVars: []string{"SDKMODEL_DEBUG"},
			},
			&cli.StringFlag{
				Name:  "lang",
				Usage: "language of issue messages (en, ja)",
				Value: "en",
			},
		},
		Before: func(c *cli.Context) error {
			setupLogging(errOut, c.Bool("debug"))
			i18n.SetLanguage(c.String("lang"))
			return nil
		},
		Commands: []*cli.Command{
			&modelsCommand,
			&fieldsCommand,
			&jsonschemaCommand,
			&decodeCommand,
		},
	}
}

func setupLogging(w io.Writer, debug bool) {
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}
	l := zerolog.New(zerolog.ConsoleWriter{Out: w}).Level(level).With().Timestamp().Logger()
	log.Logger = l
	sdkmodel.SetLogger(l)
}

// loadRegistry returns the registry the --schema flag points at.
func loadRegistry(c *cli.Context) (*sdkmodel.Registry, error) {
	path := c.String("schema")
	if path == "" {
		return sdkmodel.Default, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read schema")
	}
	if isOpenAPI(path, data) {
		res, err := openapi.Import(context.Background(), data, openapi.Options{})
		if err != nil {
			return nil, errors.Wrapf(err, "failed to import openapi document %s", path)
		}
		log.Debug().Str("schema", path).Int("models", len(res.Models)).Msg("imported openapi document")
		return res.Registry, nil
	}
	sch, err := schemafile.Load(data, sdkmodel.NewRegistry())
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load schema table %s", path)
	}
	log.Debug().Str("schema", path).Int("models", len(sch.Models)).Msg("loaded schema table")
	return sch.Registry, nil
}

func isOpenAPI(path string, data []byte) bool {
	if filepath.Ext(path) == ".json" {
		return gjson.GetBytes(data, "openapi").Exists()
	}
	for _, line := range bytes.Split(data, []byte("\n")) {
		if bytes.HasPrefix(line, []byte("openapi:")) {
			return true
		}
	}
	return false
}

func modelFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:     "model",
		Aliases:  []string{"m"},
		Usage:    "model name",
		Required: true,
	}
}

func lookupModel(c *cli.Context) (*sdkmodel.ModelType, error) {
	reg, err := loadRegistry(c)
	if err != nil {
		return nil, err
	}
	name := c.String("model")
	t, ok := reg.Lookup(name)
	if !ok {
		return nil, errors.Errorf("unknown model %q", name)
	}
	return t, nil
}
