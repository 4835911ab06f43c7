package sdkmodel

import (
	"context"
	"sort"
)

// Hydrate builds a Model of type t from a decoded wire object. Every required
// wire key must be present; values are stored as received and coerced on
// first read, so a mistyped value surfaces from the accessor (or from
// Validate), not from Hydrate.
func Hydrate(ctx context.Context, t *ModelType, raw map[string]any, opts ...DecodeOpt) (Model, error) {
	opt := pickOpt(opts)
	if IsFailFast(ctx) {
		opt.FailFast = true
	}
	m, err := hydrate(t, raw, "", opt)
	if err != nil {
		log().Debug().Str("model", t.Name()).Err(err).Msg("hydrate failed")
		return Model{}, err
	}
	return m, nil
}

func hydrate(t *ModelType, raw map[string]any, path string, opt *DecodeOpt) (Model, error) {
	if raw == nil {
		return Model{}, Issues{typeMismatch(displayPath(path), t.Name(), "model("+t.Name()+")", nil)}
	}
	if opt == nil {
		opt = &DecodeOpt{}
	}
	s := t.Shape()
	m := Model{shape: s, cells: make([]*cell, len(s.fields)), path: path, opt: opt}
	var iss Issues
	for i, f := range s.fields {
		v, ok := raw[f.WireKey]
		if !ok {
			if f.Required {
				iss = AppendIssues(iss, missingRequired(fieldPointer(path, f.WireKey), f))
				if opt.FailFast {
					return Model{}, iss
				}
			}
			continue
		}
		m.cells[i] = &cell{raw: v, origin: PresenceSeen}
	}
	if len(raw) > countSet(m.cells) {
		unknown := make([]string, 0)
		for k := range raw {
			if _, _, known := s.Lookup(k); !known || s.fields[s.index[k]].WireKey != k {
				unknown = append(unknown, k)
			}
		}
		sort.Strings(unknown)
		switch opt.Unknown {
		case UnknownStrict:
			for _, k := range unknown {
				iss = AppendIssues(iss, unknownKey(fieldPointer(path, k), k))
				if opt.FailFast {
					return Model{}, iss
				}
			}
		case UnknownPassthrough:
			if len(unknown) > 0 {
				m.extra = make(map[string]any, len(unknown))
				for _, k := range unknown {
					m.extra[k] = raw[k]
				}
			}
		}
	}
	if len(iss) > 0 {
		return Model{}, iss
	}
	return m, nil
}

func countSet(cells []*cell) int {
	n := 0
	for _, c := range cells {
		if c != nil {
			n++
		}
	}
	return n
}
