package sdkmodel

import (
	js "github.com/reoring/sdkmodel/jsonschema"
)

// JSONSchema projects the shape into a JSON Schema document. Nested models
// are emitted once under $defs and referenced by name; references back to
// the root model use "#".
func (s *Shape) JSONSchema(unknown UnknownPolicy) *js.Schema {
	p := &schemaProjector{root: s.model, defs: map[string]*js.Schema{}, unknown: unknown}
	root := p.object(s)
	root.Schema = js.Draft
	root.Title = s.model.name
	if len(p.defs) > 0 {
		root.Defs = p.defs
	}
	return root
}

type schemaProjector struct {
	root    *ModelType
	defs    map[string]*js.Schema
	unknown UnknownPolicy
}

func (p *schemaProjector) object(s *Shape) *js.Schema {
	out := &js.Schema{Type: "object", Properties: make(map[string]*js.Schema, len(s.fields))}
	for _, f := range s.fields {
		fs := p.typ(f.Type)
		if f.Nullable {
			fs = &js.Schema{AnyOf: []*js.Schema{fs, js.Null()}}
		}
		if f.Doc != "" {
			fs.Description = f.Doc
		}
		out.Properties[f.WireKey] = fs
		if f.Required {
			out.Required = append(out.Required, f.WireKey)
		}
	}
	if p.unknown == UnknownStrict {
		out.AdditionalProperties = false
	}
	return out
}

func (p *schemaProjector) typ(t Type) *js.Schema {
	switch t.kind {
	case KindScalar:
		switch t.scalar {
		case ScalarString:
			return &js.Schema{Type: "string"}
		case ScalarInt:
			return &js.Schema{Type: "integer"}
		case ScalarFloat:
			return &js.Schema{Type: "number"}
		case ScalarBool:
			return &js.Schema{Type: "boolean"}
		case ScalarDecimal:
			return &js.Schema{Type: "number", Format: "decimal"}
		}
		return &js.Schema{}
	case KindDateTime:
		return &js.Schema{Type: "string", Format: "date-time"}
	case KindDate:
		return &js.Schema{Type: "string", Format: "date"}
	case KindEnum:
		vals := sortedValues(t.enum)
		enum := make([]any, len(vals))
		for i, v := range vals {
			enum[i] = v
		}
		return &js.Schema{Type: "string", Enum: enum}
	case KindModel, KindUnion:
		return p.ref(t.model)
	case KindList:
		return &js.Schema{Type: "array", Items: p.typ(t.Elem())}
	}
	return &js.Schema{}
}

func (p *schemaProjector) ref(t *ModelType) *js.Schema {
	if t == p.root {
		return &js.Schema{Ref: "#"}
	}
	if _, seen := p.defs[t.name]; !seen {
		p.defs[t.name] = nil // placeholder for recursive references
		p.defs[t.name] = p.object(t.Shape())
	}
	return &js.Schema{Ref: "#/$defs/" + t.name}
}
