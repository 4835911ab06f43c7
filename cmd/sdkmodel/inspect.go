package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	"github.com/reoring/sdkmodel"
	jsonsrc "github.com/reoring/sdkmodel/source/json"
)

var modelsCommand = cli.Command{
	Name:  "models",
	Usage: "list the declared model types",
	Action: func(c *cli.Context) error {
		reg, err := loadRegistry(c)
		if err != nil {
			return err
		}
		for _, name := range reg.Names() {
			fmt.Fprintln(c.App.Writer, name)
		}
		return nil
	},
}

var fieldsCommand = cli.Command{
	Name:  "fields",
	Usage: "print the resolved field table of a model",
	Flags: []cli.Flag{modelFlag()},
	Action: func(c *cli.Context) error {
		t, err := lookupModel(c)
		if err != nil {
			return err
		}
		var shape *sdkmodel.Shape
		if err := recoverShape(func() { shape = t.Shape() }); err != nil {
			return err
		}
		w := tabwriter.NewWriter(c.App.Writer, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "NAME\tKEY\tTYPE\tREQUIRED\tNULLABLE")
		for _, f := range shape.Fields() {
			fmt.Fprintf(w, "%s\t%s\t%s\t%t\t%t\n", f.Name, f.WireKey, f.Type, f.Required, f.Nullable)
		}
		return w.Flush()
	},
}

var jsonschemaCommand = cli.Command{
	Name:  "jsonschema",
	Usage: "export a model as a JSON Schema document",
	Flags: []cli.Flag{
		modelFlag(),
		&cli.BoolFlag{
			Name:  "strict",
			Usage: "forbid properties the model does not declare",
		},
	},
	Action: func(c *cli.Context) error {
		t, err := lookupModel(c)
		if err != nil {
			return err
		}
		unknown := sdkmodel.UnknownStrip
		if c.Bool("strict") {
			unknown = sdkmodel.UnknownStrict
		}
		var shape *sdkmodel.Shape
		if err := recoverShape(func() { shape = t.Shape() }); err != nil {
			return err
		}
		// go-json's indenting encoder faults on the recursive *Schema tree.
		b, err := jsonsrc.MarshalIndent(shape.JSONSchema(unknown))
		if err != nil {
			return errors.Wrap(err, "failed to render schema")
		}
		_, err = fmt.Fprintln(c.App.Writer, string(b))
		return err
	},
}

// recoverShape turns a declaration panic (duplicate names, dangling
// references) into an error.
func recoverShape(fn func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Errorf("invalid model declaration: %v", r)
		}
	}()
	fn()
	return nil
}
