package sdkmodel

import "fmt"

// Values supplies field values to With, keyed by local name or wire key.
// Values may be typed (int64, time.Time, enum members, Model, ModelOrRaw)
// or in wire form (strings, json.Number, map[string]any).
type Values map[string]any

var builtOpt = &DecodeOpt{}

// With constructs a complete Model of type t. Every required field must be
// supplied; every supplied value is coerced immediately, so With reports
// type, format and enum failures instead of deferring them to the first read.
func With(t *ModelType, vals Values) (Model, error) {
	m := New(t)
	s := m.shape
	var iss Issues
	for k, v := range vals {
		_, i, ok := s.Lookup(k)
		if !ok {
			iss = AppendIssues(iss, unknownKey(fieldPointer("", k), k))
			continue
		}
		if m.cells[i] != nil {
			iss = AppendIssues(iss, Issue{Path: fieldPointer("", s.fields[i].WireKey), Code: CodeDuplicateKey, Message: "field " + s.fields[i].Name + " supplied twice", Params: map[string]any{"field": s.fields[i].Name}})
			continue
		}
		m.cells[i] = &cell{raw: v, origin: PresenceSet}
	}
	for i, f := range s.fields {
		if f.Required && m.cells[i] == nil {
			iss = AppendIssues(iss, missingRequired(fieldPointer("", f.WireKey), f))
		}
	}
	if len(iss) > 0 {
		sortIssues(iss)
		return Model{}, iss
	}
	if err := m.Validate(); err != nil {
		return Model{}, err
	}
	return m, nil
}

// MustWith is With for statically known inputs; it panics on error.
func MustWith(t *ModelType, vals Values) Model {
	m, err := With(t, vals)
	if err != nil {
		panic(fmt.Sprintf("sdkmodel: With(%s): %v", t.Name(), err))
	}
	return m
}

// New returns an incomplete instance with every field unset. Reading a
// required field of it reports uninitialized until With populates it.
func New(t *ModelType) Model {
	s := t.Shape()
	return Model{shape: s, cells: make([]*cell, len(s.fields)), opt: builtOpt}
}

// With returns a copy of m with one field replaced; m itself is unchanged.
// The new value is coerced on first read. Unknown field names and the zero
// Model panic.
func (m Model) With(name string, v any) Model {
	i := m.mustIndex("With", name)
	out := m.clone()
	out.cells[i] = &cell{raw: v, origin: PresenceSet}
	return out
}

// Unset returns a copy of m with an optional field cleared, so Encode omits
// it. Unsetting a required field panics.
func (m Model) Unset(name string) Model {
	i := m.mustIndex("Unset", name)
	if f := m.shape.fields[i]; f.Required {
		panic("sdkmodel: Unset of required field " + m.shape.model.name + "." + f.Name)
	}
	out := m.clone()
	out.cells[i] = nil
	return out
}

func (m Model) mustIndex(op, name string) int {
	if m.shape == nil {
		panic("sdkmodel: " + op + " on zero Model")
	}
	i, _, ok := m.lookup(name)
	if !ok {
		panic(fmt.Sprintf("sdkmodel: %s: %s has no field %q", op, m.shape.model.name, name))
	}
	return i
}
