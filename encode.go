package sdkmodel

import (
	"context"
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"

	"github.com/reoring/sdkmodel/codec"
)

// Encode converts m back into a wire object keyed by wire keys. Unset
// optional fields are omitted; explicit nulls are emitted only for nullable
// fields. Values that arrived in wire form are written back as received once
// they pass coercion, so Encode(Hydrate(raw)) reproduces raw.
func Encode(ctx context.Context, m Model) (map[string]any, error) {
	failFast := IsFailFast(ctx)
	out, iss := encodeModel(m, failFast)
	if len(iss) > 0 {
		return nil, iss
	}
	return out, nil
}

func encodeModel(m Model, failFast bool) (map[string]any, Issues) {
	if m.shape == nil {
		return nil, Issues{uninitialized("/", "")}
	}
	if m.opt != nil && m.opt.FailFast {
		failFast = true
	}
	out := make(map[string]any, len(m.shape.fields)+len(m.extra))
	var iss Issues
	for i, f := range m.shape.fields {
		c := m.cells[i]
		if c == nil {
			if f.Required {
				iss = AppendIssues(iss, uninitialized(fieldPointer(m.path, f.WireKey), f.Name))
				if failFast {
					return nil, iss
				}
			}
			continue
		}
		typed, _, err := m.value(f.Name)
		if err == nil {
			var v any
			if v, err = encodeValue(f.Type, c.raw, typed, fieldPointer(m.path, f.WireKey), failFast); err == nil {
				out[f.WireKey] = v
				continue
			}
		}
		iss = appendErr(iss, fieldPointer(m.path, f.WireKey), err)
		if failFast {
			return nil, iss
		}
	}
	for k, v := range m.extra {
		out[k] = v
	}
	return out, iss
}

// encodeValue renders one coerced value. raw is the cell content, typed its
// coerced form; both describe the same value.
func encodeValue(t Type, raw, typed any, path string, failFast bool) (any, error) {
	if raw == nil {
		return nil, nil
	}
	switch t.kind {
	case KindScalar:
		if d, ok := raw.(decimal.Decimal); ok {
			return json.Number(d.String()), nil
		}
		return raw, nil
	case KindDateTime, KindDate:
		if s, ok := raw.(string); ok {
			return s, nil
		}
		c := codec.TimeRFC3339()
		if t.kind == KindDate {
			c = codec.Date()
		}
		s, err := c.Encode(typed.(time.Time))
		if err != nil {
			return nil, Issues{malformed(path, "", t.String(), "", err)}
		}
		return s, nil
	case KindEnum:
		s, ok := t.enum.wire(typed)
		if !ok {
			return nil, Issues{unknownEnum(path, t.enum, raw)}
		}
		return s, nil
	case KindModel, KindUnion:
		out, iss := encodeModel(typed.(Model), failFast)
		if len(iss) > 0 {
			return nil, iss
		}
		return out, nil
	case KindList:
		items, _ := listItems(raw)
		vals := typed.([]any)
		out := make([]any, len(vals))
		var iss Issues
		for i := range vals {
			v, err := encodeValue(t.Elem(), items[i], vals[i], indexPointer(path, i), failFast)
			if err != nil {
				iss = appendErr(iss, indexPointer(path, i), err)
				if failFast {
					return nil, iss
				}
				continue
			}
			out[i] = v
		}
		if len(iss) > 0 {
			return nil, iss
		}
		return out, nil
	}
	return raw, nil
}
