// Package openapi imports object schemas from an OpenAPI 3 document's
// components section as sdkmodel model types.
package openapi

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/iancoleman/strcase"
	"github.com/pkg/errors"

	"github.com/reoring/sdkmodel"
)

// Options tunes the import.
type Options struct {
	// Registry receives the models; a new registry when nil.
	Registry *sdkmodel.Registry
	// Validate runs the document validator before importing.
	Validate bool
}

// Result lists what the import defined, keyed by component name.
type Result struct {
	Registry *sdkmodel.Registry
	Models   map[string]*sdkmodel.ModelType
	Enums    map[string]sdkmodel.EnumType
}

const componentPrefix = "#/components/schemas/"

// Import loads an OpenAPI document (JSON or YAML) and defines one model per
// object schema under components/schemas. Model names are the snake_case
// component names; local field names are the CamelCase property names and
// wire keys are the property names verbatim. Inline objects become models
// named <parent>_<property>.
func Import(ctx context.Context, data []byte, opts Options) (*Result, error) {
	loader := openapi3.NewLoader()
	loader.Context = ctx
	doc, err := loader.LoadFromData(data)
	if err != nil {
		return nil, errors.Wrap(err, "openapi: load document")
	}
	if opts.Validate {
		if err := doc.Validate(ctx, openapi3.DisableExamplesValidation()); err != nil {
			return nil, errors.Wrap(err, "openapi: validate")
		}
	}
	if doc.Components == nil || len(doc.Components.Schemas) == 0 {
		return nil, errors.New("openapi: document has no component schemas")
	}
	reg := opts.Registry
	if reg == nil {
		reg = sdkmodel.NewRegistry()
	}
	im := &importer{
		reg:        reg,
		components: doc.Components.Schemas,
		res:        &Result{Registry: reg, Models: map[string]*sdkmodel.ModelType{}, Enums: map[string]sdkmodel.EnumType{}},
		decls:      map[string][]sdkmodel.Field{},
	}
	names := make([]string, 0, len(doc.Components.Schemas))
	for n := range doc.Components.Schemas {
		names = append(names, n)
	}
	sort.Strings(names)
	for _, n := range names {
		ref := doc.Components.Schemas[n]
		if ref == nil || ref.Value == nil {
			continue
		}
		switch {
		case isObject(ref.Value):
			if err := im.object(modelName(n), ref.Value); err != nil {
				return nil, errors.Wrapf(err, "openapi: component %s", n)
			}
		case len(ref.Value.Enum) > 0:
			if _, err := im.enum(modelName(n), ref.Value); err != nil {
				return nil, errors.Wrapf(err, "openapi: component %s", n)
			}
		}
	}
	order := make([]string, 0, len(im.decls))
	for n := range im.decls {
		order = append(order, n)
	}
	sort.Strings(order)
	for _, n := range order {
		if _, exists := reg.Lookup(n); exists {
			return nil, errors.Errorf("openapi: model %q is already defined", n)
		}
	}
	for _, n := range order {
		fields := im.decls[n]
		im.res.Models[n] = reg.Define(n, func() []sdkmodel.Field { return fields })
	}
	for _, n := range order {
		if err := buildShape(im.res.Models[n]); err != nil {
			return nil, errors.Wrapf(err, "openapi: model %s", n)
		}
	}
	return im.res, nil
}

type importer struct {
	reg        *sdkmodel.Registry
	components openapi3.Schemas
	res        *Result
	decls      map[string][]sdkmodel.Field
}

func (im *importer) object(name string, s *openapi3.Schema) error {
	if _, seen := im.decls[name]; seen {
		return nil
	}
	im.decls[name] = nil // reserve for self references
	required := make(map[string]bool, len(s.Required))
	for _, r := range s.Required {
		required[r] = true
	}
	props := make([]string, 0, len(s.Properties))
	for p := range s.Properties {
		props = append(props, p)
	}
	sort.Strings(props)
	fields := make([]sdkmodel.Field, 0, len(props))
	for _, p := range props {
		ref := s.Properties[p]
		t, nullable, err := im.typeOf(name+"_"+strcase.ToSnake(p), ref)
		if err != nil {
			return errors.Wrapf(err, "property %s", p)
		}
		f := sdkmodel.Optional(strcase.ToCamel(p), t).Key(p)
		f.Required = required[p]
		f.Nullable = nullable
		if ref != nil && ref.Value != nil {
			f.Doc = ref.Value.Description
		}
		fields = append(fields, f)
	}
	if len(fields) == 0 {
		return errors.Errorf("object %s has no properties", name)
	}
	im.decls[name] = fields
	return nil
}

func (im *importer) enum(name string, s *openapi3.Schema) (sdkmodel.EnumType, error) {
	if e, ok := im.res.Enums[name]; ok {
		return e, nil
	}
	vals := make([]string, 0, len(s.Enum))
	for _, v := range s.Enum {
		if v == nil {
			continue // null member of a nullable enum
		}
		str, ok := v.(string)
		if !ok {
			return nil, errors.Errorf("enum %s has non-string member %v", name, v)
		}
		vals = append(vals, str)
	}
	var e sdkmodel.EnumType
	if err := catchPanic(func() { e = sdkmodel.NewEnum(name, vals...) }); err != nil {
		return nil, err
	}
	im.res.Enums[name] = e
	return e, nil
}

// typeOf maps a property schema to a type tag. inlineName names models and
// enums declared inline.
func (im *importer) typeOf(inlineName string, ref *openapi3.SchemaRef) (sdkmodel.Type, bool, error) {
	if ref == nil || ref.Value == nil {
		return sdkmodel.Any(), false, nil
	}
	s := ref.Value
	nullable := s.Nullable || hasType(s, openapi3.TypeNull)
	if strings.HasPrefix(ref.Ref, componentPrefix) {
		target := modelName(strings.TrimPrefix(ref.Ref, componentPrefix))
		switch {
		case isObject(s):
			return sdkmodel.Ref(target), nullable, im.object(target, s)
		case len(s.Enum) > 0:
			e, err := im.enum(target, s)
			return sdkmodel.EnumOf(e), nullable, err
		}
	}
	if variants := unionVariants(s); len(variants) > 0 {
		var target string
		for _, v := range variants {
			if v.Ref == "" {
				if v.Value != nil && hasType(v.Value, openapi3.TypeNull) {
					nullable = true
					continue
				}
				return sdkmodel.Any(), nullable, nil
			}
			if target != "" {
				return sdkmodel.Any(), nullable, nil
			}
			target = strings.TrimPrefix(v.Ref, componentPrefix)
		}
		if target != "" {
			comp := im.components[target]
			if comp == nil || comp.Value == nil || !isObject(comp.Value) {
				return sdkmodel.Any(), nullable, nil
			}
			return sdkmodel.UnionRef(modelName(target)), nullable, im.object(modelName(target), comp.Value)
		}
	}
	switch {
	case hasType(s, openapi3.TypeString):
		if len(s.Enum) > 0 {
			e, err := im.enum(inlineName, s)
			return sdkmodel.EnumOf(e), nullable, err
		}
		switch s.Format {
		case "date-time":
			return sdkmodel.DateTime(), nullable, nil
		case "date":
			return sdkmodel.Date(), nullable, nil
		case "decimal":
			return sdkmodel.Decimal(), nullable, nil
		}
		return sdkmodel.String(), nullable, nil
	case hasType(s, openapi3.TypeInteger):
		return sdkmodel.Int(), nullable, nil
	case hasType(s, openapi3.TypeNumber):
		if s.Format == "decimal" {
			return sdkmodel.Decimal(), nullable, nil
		}
		return sdkmodel.Float(), nullable, nil
	case hasType(s, openapi3.TypeBoolean):
		return sdkmodel.Bool(), nullable, nil
	case hasType(s, openapi3.TypeArray):
		elem, _, err := im.typeOf(inlineName+"_item", s.Items)
		if err != nil {
			return sdkmodel.Type{}, false, err
		}
		return sdkmodel.ListOf(elem), nullable, nil
	case isObject(s):
		return sdkmodel.Ref(inlineName), nullable, im.object(inlineName, s)
	}
	return sdkmodel.Any(), nullable, nil
}

func unionVariants(s *openapi3.Schema) openapi3.SchemaRefs {
	if len(s.OneOf) > 0 {
		return s.OneOf
	}
	return s.AnyOf
}

func isObject(s *openapi3.Schema) bool {
	return len(s.Properties) > 0 && (s.Type == nil || hasType(s, openapi3.TypeObject))
}

func hasType(s *openapi3.Schema, typ string) bool {
	if s.Type == nil {
		return false
	}
	for _, t := range s.Type.Slice() {
		if t == typ {
			return true
		}
	}
	return false
}

func modelName(component string) string { return strcase.ToSnake(component) }

func buildShape(t *sdkmodel.ModelType) error {
	return catchPanic(func() { t.Shape() })
}

func catchPanic(fn func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%v", r)
		}
	}()
	fn()
	return nil
}
