package main

import (
	"context"
	"fmt"
	"io"
	"os"

	json "github.com/goccy/go-json"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/tidwall/gjson"
	"github.com/urfave/cli/v2"

	"github.com/reoring/sdkmodel"
)

var decodeCommand = cli.Command{
	Name:      "decode",
	Usage:     "hydrate a payload, read every field and print the re-encoded object",
	ArgsUsage: "[FILE]",
	Flags: []cli.Flag{
		modelFlag(),
		&cli.StringFlag{
			Name:  "select",
			Usage: "gjson path of the object (or array of objects) inside the payload, e.g. data or data.0",
		},
		&cli.StringFlag{
			Name:  "unknown",
			Usage: "handling of undeclared keys: strip, strict or passthrough",
			Value: "strip",
		},
		&cli.StringFlag{
			Name:  "duplicate-keys",
			Usage: "handling of duplicate object keys: ignore, warn or error",
			Value: "error",
		},
		&cli.Int64Flag{
			Name:  "max-bytes",
			Usage: "reject payloads larger than this (0: no limit)",
		},
		&cli.BoolFlag{
			Name:  "fail-fast",
			Usage: "stop at the first issue",
		},
	},
	Action: func(c *cli.Context) error {
		t, err := lookupModel(c)
		if err != nil {
			return err
		}
		opt, err := decodeOptions(c)
		if err != nil {
			return err
		}
		data, err := readInput(c)
		if err != nil {
			return err
		}
		docs, err := selectDocuments(data, c.String("select"))
		if err != nil {
			return err
		}
		ctx := sdkmodel.WithFailFast(context.Background(), c.Bool("fail-fast"))

		out := make([]any, 0, len(docs))
		issues := 0
		for _, d := range docs {
			obj, err := decodeOne(ctx, t, d.raw, opt)
			if err != nil {
				issues += reportIssues(c.App.ErrWriter, d.prefix, err)
				continue
			}
			out = append(out, obj)
		}
		if issues > 0 {
			return errors.Errorf("%d issue(s) decoding %s", issues, t.Name())
		}
		log.Debug().Str("model", t.Name()).Int("documents", len(docs)).Msg("decoded")

		var v any = out
		if len(docs) == 1 && !docs[0].inArray {
			v = out[0]
		}
		b, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return errors.Wrap(err, "failed to render output")
		}
		_, err = fmt.Fprintln(c.App.Writer, string(b))
		return err
	},
}

// decodeOne runs the whole pipeline on one object: hydrate, coerce every
// field (nested models and lists included), encode.
func decodeOne(ctx context.Context, t *sdkmodel.ModelType, raw []byte, opt sdkmodel.DecodeOpt) (map[string]any, error) {
	m, err := sdkmodel.Unmarshal(ctx, t, raw, opt)
	if err != nil {
		return nil, err
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return sdkmodel.Encode(ctx, m)
}

func decodeOptions(c *cli.Context) (sdkmodel.DecodeOpt, error) {
	opt := sdkmodel.DecodeOpt{MaxBytes: c.Int64("max-bytes")}
	switch p := c.String("unknown"); p {
	case "strip":
		opt.Unknown = sdkmodel.UnknownStrip
	case "strict":
		opt.Unknown = sdkmodel.UnknownStrict
	case "passthrough":
		opt.Unknown = sdkmodel.UnknownPassthrough
	default:
		return opt, errors.Errorf("invalid --unknown value %q", p)
	}
	switch d := c.String("duplicate-keys"); d {
	case "ignore":
		opt.Strictness.OnDuplicateKey = sdkmodel.Ignore
	case "warn":
		opt.Strictness.OnDuplicateKey = sdkmodel.Warn
	case "error":
		opt.Strictness.OnDuplicateKey = sdkmodel.Error
	default:
		return opt, errors.Errorf("invalid --duplicate-keys value %q", d)
	}
	return opt, nil
}

func readInput(c *cli.Context) ([]byte, error) {
	name := c.Args().First()
	if name == "" || name == "-" {
		data, err := io.ReadAll(c.App.Reader)
		return data, errors.Wrap(err, "failed to read stdin")
	}
	data, err := os.ReadFile(name)
	return data, errors.Wrap(err, "failed to read payload")
}

type document struct {
	raw     []byte
	prefix  string // pointer of the document inside the selection, "" when not an array
	inArray bool
}

// selectDocuments applies a gjson path to the payload. An array selects
// every element.
func selectDocuments(data []byte, path string) ([]document, error) {
	if path == "" {
		if !gjson.ValidBytes(data) {
			// leave the error to the decoder so it is reported as an issue
			return []document{{raw: data}}, nil
		}
		r := gjson.ParseBytes(data)
		if r.IsArray() {
			return arrayDocuments(r), nil
		}
		return []document{{raw: data}}, nil
	}
	r := gjson.GetBytes(data, path)
	if !r.Exists() {
		return nil, errors.Errorf("--select %q matched nothing", path)
	}
	if r.IsArray() {
		return arrayDocuments(r), nil
	}
	return []document{{raw: []byte(r.Raw)}}, nil
}

func arrayDocuments(r gjson.Result) []document {
	var docs []document
	r.ForEach(func(key, value gjson.Result) bool {
		docs = append(docs, document{
			raw:     []byte(value.Raw),
			prefix:  "/" + key.String(),
			inArray: true,
		})
		return true
	})
	if docs == nil {
		docs = []document{}
	}
	return docs
}

// reportIssues prints one line per issue and returns how many it printed.
func reportIssues(w io.Writer, prefix string, err error) int {
	iss, ok := sdkmodel.AsIssues(err)
	if !ok {
		fmt.Fprintf(w, "%s\t%v\n", displayPrefix(prefix), err)
		return 1
	}
	for _, is := range iss {
		path := is.Path
		if prefix != "" {
			if path == "/" {
				path = prefix
			} else {
				path = prefix + path
			}
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", path, is.Code, is.Message)
	}
	return len(iss)
}

func displayPrefix(p string) string {
	if p == "" {
		return "/"
	}
	return p
}
