package sdkmodel

import (
	"context"
	"strconv"
)

// Unmarshal decodes a JSON document with the current JSONDriver and hydrates
// it as t. Duplicate keys are checked on the raw bytes when the options ask
// for it; MaxBytes rejects oversized payloads before decoding.
func Unmarshal(ctx context.Context, t *ModelType, data []byte, opts ...DecodeOpt) (Model, error) {
	opt := pickOpt(opts)
	if opt.MaxBytes > 0 && int64(len(data)) > opt.MaxBytes {
		return Model{}, Issues{{
			Path:    "/",
			Code:    CodeTruncated,
			Message: "payload exceeds " + strconv.FormatInt(opt.MaxBytes, 10) + " bytes",
			Params:  map[string]any{"max_bytes": opt.MaxBytes, "size": len(data)},
		}}
	}
	if sev := opt.Strictness.OnDuplicateKey; sev != Ignore {
		dups, err := DetectJSONDuplicateKeysBytes(data, opt.Strictness, -1)
		if err != nil {
			return Model{}, err
		}
		if len(dups) > 0 {
			if sev == Error {
				return Model{}, dups
			}
			for _, d := range dups {
				log().Warn().Str("model", t.Name()).Str("path", d.Path).Str("code", d.Code).Msg(d.Message)
			}
		}
	}
	v, err := getJSONDriver().Decode(data)
	if err != nil {
		return Model{}, Issues{{Path: "/", Code: CodeParseError, Message: err.Error(), Cause: err}}
	}
	obj, ok := v.(map[string]any)
	if !ok {
		return Model{}, Issues{typeMismatch("/", t.Name(), "object", v)}
	}
	return Hydrate(ctx, t, obj, *opt)
}

// UnmarshalInto hydrates data into *dst using the model type dst already
// carries (for example one obtained from New). It backs UnmarshalJSON on
// typed wrappers.
func UnmarshalInto(ctx context.Context, dst *Model, data []byte, opts ...DecodeOpt) error {
	t := dst.Type()
	if t == nil {
		return singleIssue(CodeUninitialized, "UnmarshalInto requires a typed destination (see New)")
	}
	m, err := Unmarshal(ctx, t, data, opts...)
	if err != nil {
		return err
	}
	*dst = m
	return nil
}

// Marshal encodes m and renders it with the current JSONDriver.
func Marshal(ctx context.Context, m Model) ([]byte, error) {
	obj, err := Encode(ctx, m)
	if err != nil {
		return nil, err
	}
	return getJSONDriver().Marshal(obj)
}

// MarshalJSON implements json.Marshaler so Models nest inside ordinary Go
// structs and maps.
func (m Model) MarshalJSON() ([]byte, error) { return Marshal(context.Background(), m) }

// ---- context options ----

type contextKey int

const (
	_ctxKeyFailFast contextKey = iota
)

// WithFailFast returns a child context that makes Hydrate, Unmarshal and
// Encode stop at the first issue instead of collecting all of them.
func WithFailFast(ctx context.Context, enabled bool) context.Context {
	return context.WithValue(ctx, _ctxKeyFailFast, enabled)
}

// IsFailFast reports whether the current call should stop on the first issue.
func IsFailFast(ctx context.Context) bool {
	v := ctx.Value(_ctxKeyFailFast)
	b, _ := v.(bool)
	return b
}
