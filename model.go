package sdkmodel

import (
	"sort"
	"sync"
)

// cell holds one field of one Model. raw is the value as received (a decoded
// wire value, or whatever was passed to With); the typed value is computed
// on first read and memoized. Clones share cells, so a coercion done through
// one instance is visible through its clones.
type cell struct {
	raw    any
	origin Presence
	once   sync.Once
	val    any
	err    error
}

// Model is an instance of a model type. Values are immutable: With returns a
// new Model and never changes the receiver, so instances can be shared
// across goroutines without synchronization.
//
// The zero Model is incomplete; reading any field from it reports
// uninitialized.
type Model struct {
	shape *Shape
	cells []*cell // nil entry: unset
	extra map[string]any
	path  string // JSON Pointer of this instance inside its root document ("" for root)
	opt   *DecodeOpt
}

// Type returns the model type, or nil for the zero Model.
func (m Model) Type() *ModelType {
	if m.shape == nil {
		return nil
	}
	return m.shape.model
}

// Shape returns the Shape backing m, or nil for the zero Model.
func (m Model) Shape() *Shape { return m.shape }

// IsZero reports whether m is the zero Model.
func (m Model) IsZero() bool { return m.shape == nil }

// Path returns the JSON Pointer of m inside the document it was hydrated
// from ("/" for roots and built instances).
func (m Model) Path() string { return displayPath(m.path) }

// Complete reports whether every required field is populated.
func (m Model) Complete() bool {
	if m.shape == nil {
		return false
	}
	for i, f := range m.shape.fields {
		if f.Required && m.cells[i] == nil {
			return false
		}
	}
	return true
}

// Has reports whether the field (by local name or wire key) is populated,
// including explicit nulls.
func (m Model) Has(name string) bool {
	i, _, ok := m.lookup(name)
	return ok && m.cells[i] != nil
}

// IsNull reports whether the field holds an explicit null.
func (m Model) IsNull(name string) bool {
	i, _, ok := m.lookup(name)
	return ok && m.cells[i] != nil && m.cells[i].raw == nil
}

// Raw returns the uncoerced cell content addressed by local name or wire
// key. ok is false for unset fields.
func (m Model) Raw(name string) (any, bool) {
	i, _, found := m.lookup(name)
	if !found || m.cells[i] == nil {
		return nil, false
	}
	return m.cells[i].raw, true
}

// Extra returns a wire key kept by UnknownPassthrough.
func (m Model) Extra(key string) (any, bool) {
	v, ok := m.extra[key]
	return v, ok
}

// ExtraKeys lists the passthrough keys in ascending order.
func (m Model) ExtraKeys() []string {
	out := make([]string, 0, len(m.extra))
	for k := range m.extra {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Value returns the typed value of a field addressed by local name or wire
// key. Unset optional fields and explicit nulls yield (nil, nil).
func (m Model) Value(name string) (any, error) {
	v, _, err := m.value(name)
	return v, err
}

func (m Model) lookup(name string) (int, Field, bool) {
	if m.shape == nil {
		return -1, Field{}, false
	}
	f, i, ok := m.shape.Lookup(name)
	return i, f, ok
}

// value coerces the named cell once and returns (typed, present, err).
func (m Model) value(name string) (any, bool, error) {
	if m.shape == nil {
		return nil, false, Issues{uninitialized(fieldPointer(m.path, name), name)}
	}
	i, f, ok := m.lookup(name)
	if !ok {
		return nil, false, Issues{unknownKey(fieldPointer(m.path, name), name)}
	}
	c := m.cells[i]
	path := fieldPointer(m.path, f.WireKey)
	if c == nil {
		if f.Required {
			return nil, false, Issues{uninitialized(path, f.Name)}
		}
		return nil, false, nil
	}
	c.once.Do(func() {
		if coerceObserver != nil {
			coerceObserver(f)
		}
		c.val, c.err = coerceField(f, c.raw, path, m.opt)
	})
	return c.val, true, c.err
}

// coerceObserver is a test hook counting coercions.
var coerceObserver func(Field)

// clone copies the cell table so that one slot can be replaced.
func (m Model) clone() Model {
	out := m
	out.cells = append([]*cell(nil), m.cells...)
	return out
}

// Validate coerces every populated field, descending into nested models and
// lists, and reports all failures. Memoized values are reused.
func (m Model) Validate() error {
	if m.shape == nil {
		return Issues{uninitialized("/", "")}
	}
	failFast := m.opt != nil && m.opt.FailFast
	var iss Issues
	for _, f := range m.shape.fields {
		v, present, err := m.value(f.Name)
		if err != nil {
			iss = appendErr(iss, fieldPointer(m.path, f.WireKey), err)
		} else if present {
			iss = validateNested(iss, v, failFast)
		}
		if failFast && len(iss) > 0 {
			return iss
		}
	}
	if len(iss) > 0 {
		return iss
	}
	return nil
}

func validateNested(dst Issues, v any, failFast bool) Issues {
	switch t := v.(type) {
	case Model:
		if err := t.Validate(); err != nil {
			ii, _ := AsIssues(err)
			dst = AppendIssues(dst, ii...)
		}
	case []any:
		for _, e := range t {
			dst = validateNested(dst, e, failFast)
			if failFast && len(dst) > 0 {
				return dst
			}
		}
	}
	return dst
}
