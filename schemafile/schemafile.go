// Package schemafile loads model declarations from YAML schema tables.
//
//	enums:
//	  card_status: [active, frozen, closed]
//	models:
//	  card:
//	    fields:
//	      - {name: ID, type: string, required: true}
//	      - {name: Status, type: "enum:card_status", required: true}
//	      - {name: Limit, type: decimal, key: spending_limit, nullable: true}
package schemafile

import (
	"bytes"
	"os"
	"sort"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/reoring/sdkmodel"
)

// File is the YAML document layout.
type File struct {
	Enums  map[string][]string  `yaml:"enums"`
	Models map[string]ModelDecl `yaml:"models"`
}

// ModelDecl declares one model; fields keep their listed order.
type ModelDecl struct {
	Doc    string      `yaml:"doc"`
	Fields []FieldDecl `yaml:"fields"`
}

// FieldDecl declares one field.
type FieldDecl struct {
	Name     string `yaml:"name"`
	Type     string `yaml:"type"`
	Key      string `yaml:"key"`
	Required bool   `yaml:"required"`
	Nullable bool   `yaml:"nullable"`
	Doc      string `yaml:"doc"`
}

// Schema is the result of a load: the registry plus what the file added.
type Schema struct {
	Registry *sdkmodel.Registry
	Models   map[string]*sdkmodel.ModelType
	Enums    map[string]sdkmodel.EnumType
}

// Model returns a loaded model type by name.
func (s *Schema) Model(name string) (*sdkmodel.ModelType, bool) {
	t, ok := s.Models[name]
	return t, ok
}

// LoadFile reads and loads a YAML schema table.
func LoadFile(path string, reg *sdkmodel.Registry) (*Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read schema file %s", path)
	}
	s, err := Load(data, reg)
	if err != nil {
		return nil, errors.Wrapf(err, "schema file %s", path)
	}
	return s, nil
}

// Load decodes a YAML schema table and defines every model in reg (a new
// registry when reg is nil). Unknown YAML keys, undeclared enums and
// references to models that neither the file nor reg define are errors;
// Shapes are then built eagerly so declaration mistakes surface here
// instead of on first use. On a late failure reg may keep the models
// defined so far.
func Load(data []byte, reg *sdkmodel.Registry) (*Schema, error) {
	var f File
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return nil, errors.Wrap(err, "failed to decode schema YAML")
	}
	if reg == nil {
		reg = sdkmodel.NewRegistry()
	}
	out := &Schema{Registry: reg, Models: map[string]*sdkmodel.ModelType{}, Enums: map[string]sdkmodel.EnumType{}}
	for name, values := range f.Enums {
		if len(values) == 0 {
			return nil, errors.Errorf("enum %q has no values", name)
		}
		if err := catchPanic(func() { out.Enums[name] = sdkmodel.NewEnum(name, values...) }); err != nil {
			return nil, err
		}
	}

	names := make([]string, 0, len(f.Models))
	for n := range f.Models {
		names = append(names, n)
	}
	sort.Strings(names)

	decls := map[string][]sdkmodel.Field{}
	for _, n := range names {
		if _, exists := reg.Lookup(n); exists {
			return nil, errors.Errorf("model %q is already defined", n)
		}
		fields, err := buildFields(n, f.Models[n], out.Enums)
		if err != nil {
			return nil, err
		}
		decls[n] = fields
	}
	for _, n := range names {
		for _, fd := range decls[n] {
			for _, ref := range modelRefs(fd.Type) {
				if _, inFile := decls[ref]; inFile {
					continue
				}
				if _, inReg := reg.Lookup(ref); !inReg {
					return nil, errors.Errorf("model %q field %s references unknown model %q", n, fd.Name, ref)
				}
			}
		}
	}
	for _, n := range names {
		fields := decls[n]
		out.Models[n] = reg.Define(n, func() []sdkmodel.Field { return fields })
	}
	for _, n := range names {
		t := out.Models[n]
		if err := catchPanic(func() { t.Shape() }); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func buildFields(model string, d ModelDecl, enums map[string]sdkmodel.EnumType) ([]sdkmodel.Field, error) {
	if len(d.Fields) == 0 {
		return nil, errors.Errorf("model %q declares no fields", model)
	}
	out := make([]sdkmodel.Field, 0, len(d.Fields))
	for i, fd := range d.Fields {
		if fd.Name == "" {
			return nil, errors.Errorf("model %q field #%d has no name", model, i)
		}
		t, err := ParseType(fd.Type, enums)
		if err != nil {
			return nil, errors.Wrapf(err, "model %q field %s", model, fd.Name)
		}
		f := sdkmodel.Optional(fd.Name, t)
		f.Required = fd.Required
		f.Nullable = fd.Nullable
		f.WireKey = fd.Key
		f.Doc = fd.Doc
		out = append(out, f)
	}
	return out, nil
}

// catchPanic turns declaration panics from sdkmodel into errors.
func catchPanic(fn func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Errorf("%v", r)
		}
	}()
	fn()
	return nil
}
