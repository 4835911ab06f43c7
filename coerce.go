package sdkmodel

import (
	"encoding/json"
	"math"
	"reflect"
	"time"

	"github.com/shopspring/decimal"

	"github.com/reoring/sdkmodel/codec"
)

// coerceField converts the raw content of a cell into its typed value.
// Explicit null is accepted only for nullable fields.
func coerceField(f Field, raw any, path string, opt *DecodeOpt) (any, error) {
	if raw == nil {
		if f.Nullable {
			return nil, nil
		}
		return nil, Issues{typeMismatch(path, f.Name, f.Type.String(), nil)}
	}
	return coerce(f.Type, raw, path, f.Name, opt)
}

// coerce converts raw into the typed representation of t:
//
//	string -> string, int -> int64, float -> float64, bool -> bool,
//	decimal -> decimal.Decimal, date-time/date -> time.Time,
//	enum -> the enum's member type, model/union -> Model, list -> []any.
//
// Values already in typed form pass through after a membership or type check.
func coerce(t Type, raw any, path, name string, opt *DecodeOpt) (any, error) {
	switch t.kind {
	case KindScalar:
		return coerceScalar(t, raw, path, name)
	case KindDateTime:
		return coerceTime(codec.TimeRFC3339(), "date-time", raw, path, name)
	case KindDate:
		return coerceTime(codec.Date(), "date", raw, path, name)
	case KindEnum:
		if v, ok := t.enum.parse(raw); ok {
			return v, nil
		}
		if _, isString := raw.(string); !isString && !isEnumMember(raw) {
			return nil, Issues{typeMismatch(path, name, t.String(), raw)}
		}
		return nil, Issues{unknownEnum(path, t.enum, raw)}
	case KindModel:
		switch v := raw.(type) {
		case Model:
			if v.Type() != t.model {
				return nil, Issues{typeMismatch(path, name, t.String(), raw)}
			}
			return v, nil
		case map[string]any:
			return hydrate(t.model, v, path, opt)
		}
		return nil, Issues{typeMismatch(path, name, t.String(), raw)}
	case KindUnion:
		return resolveUnion(t.model, raw, path, name, opt)
	case KindList:
		items, ok := listItems(raw)
		if !ok {
			return nil, Issues{typeMismatch(path, name, t.String(), raw)}
		}
		out := make([]any, len(items))
		var iss Issues
		elem := t.Elem()
		for i, it := range items {
			ip := indexPointer(path, i)
			if it == nil {
				iss = AppendIssues(iss, typeMismatch(ip, name, elem.String(), nil))
				continue
			}
			v, err := coerce(elem, it, ip, name, opt)
			if err != nil {
				iss = appendErr(iss, ip, err)
				if opt != nil && opt.FailFast {
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
	return nil, Issues{typeMismatch(path, name, t.String(), raw)}
}

func coerceScalar(t Type, raw any, path, name string) (any, error) {
	switch t.scalar {
	case ScalarString:
		if s, ok := raw.(string); ok {
			return s, nil
		}
	case ScalarBool:
		if b, ok := raw.(bool); ok {
			return b, nil
		}
	case ScalarInt:
		if n, ok := toInt64(raw); ok {
			return n, nil
		}
	case ScalarFloat:
		if f, ok := toFloat64(raw); ok {
			return f, nil
		}
	case ScalarDecimal:
		d, err := toDecimal(raw)
		if err == nil {
			return d, nil
		}
		if s, isText := raw.(string); isText {
			return nil, Issues{malformed(path, name, "decimal", s, err)}
		}
	case ScalarAny:
		return raw, nil
	}
	return nil, Issues{typeMismatch(path, name, t.String(), raw)}
}

func coerceTime(c codec.Codec[string, time.Time], format string, raw any, path, name string) (any, error) {
	switch v := raw.(type) {
	case time.Time:
		return v, nil
	case string:
		tm, err := c.Decode(v)
		if err != nil {
			return nil, Issues{malformed(path, name, format, v, err)}
		}
		return tm, nil
	}
	return nil, Issues{typeMismatch(path, name, format, raw)}
}

func toInt64(raw any) (int64, bool) {
	switch v := raw.(type) {
	case int64:
		return v, true
	case int:
		return int64(v), true
	case int32:
		return int64(v), true
	case int16:
		return int64(v), true
	case int8:
		return int64(v), true
	case uint8:
		return int64(v), true
	case uint16:
		return int64(v), true
	case uint32:
		return int64(v), true
	case uint:
		if uint64(v) > math.MaxInt64 {
			return 0, false
		}
		return int64(v), true
	case uint64:
		if v > math.MaxInt64 {
			return 0, false
		}
		return int64(v), true
	case json.Number:
		if n, err := v.Int64(); err == nil {
			return n, true
		}
		f, err := v.Float64()
		if err != nil {
			return 0, false
		}
		return toInt64(f)
	case float64:
		if v != math.Trunc(v) || v >= math.MaxInt64 || v < math.MinInt64 {
			return 0, false
		}
		return int64(v), true
	}
	return 0, false
}

func toFloat64(raw any) (float64, bool) {
	switch v := raw.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case json.Number:
		f, err := v.Float64()
		return f, err == nil
	}
	if n, ok := toInt64(raw); ok {
		return float64(n), true
	}
	return 0, false
}

func toDecimal(raw any) (decimal.Decimal, error) {
	switch v := raw.(type) {
	case decimal.Decimal:
		return v, nil
	case json.Number:
		return codec.Decimal().Decode(string(v))
	case string:
		return codec.Decimal().Decode(v)
	case float64:
		return decimal.NewFromFloat(v), nil
	}
	if n, ok := toInt64(raw); ok {
		return decimal.NewFromInt(n), nil
	}
	return decimal.Decimal{}, errNotNumeric
}

var errNotNumeric = codec.ErrNotNumeric

// isEnumMember reports whether raw is a typed string that is not a plain
// string, i.e. a value of some enum type.
func isEnumMember(raw any) bool {
	return raw != nil && reflect.TypeOf(raw).Kind() == reflect.String
}

func listItems(raw any) ([]any, bool) {
	switch v := raw.(type) {
	case []any:
		return v, true
	case []string:
		out := make([]any, len(v))
		for i := range v {
			out[i] = v[i]
		}
		return out, true
	case []int64:
		out := make([]any, len(v))
		for i := range v {
			out[i] = v[i]
		}
		return out, true
	case []Model:
		out := make([]any, len(v))
		for i := range v {
			out[i] = v[i]
		}
		return out, true
	case []map[string]any:
		out := make([]any, len(v))
		for i := range v {
			out[i] = v[i]
		}
		return out, true
	}
	return nil, false
}

// AnySlice converts a typed slice for storage in a list field.
func AnySlice[T any](in []T) []any {
	if in == nil {
		return nil
	}
	out := make([]any, len(in))
	for i := range in {
		out[i] = in[i]
	}
	return out
}

// appendErr rebases a child error under path when it is not already Issues.
func appendErr(dst Issues, path string, err error) Issues {
	if ii, ok := AsIssues(err); ok {
		return AppendIssues(dst, ii...)
	}
	return AppendIssues(dst, Issue{Path: path, Code: CodeParseError, Message: err.Error(), Cause: err})
}
