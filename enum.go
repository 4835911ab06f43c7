package sdkmodel

import "sort"

// EnumType is the closed set of wire strings behind an EnumOf tag.
// Implementations come from NewEnum.
type EnumType interface {
	Name() string
	// Values lists the wire strings in declaration order.
	Values() []string
	// parse maps a wire string or an already typed member to the typed member.
	parse(raw any) (any, bool)
	// wire maps a typed member or a wire string back to the wire string.
	wire(v any) (string, bool)
}

// Enum is a closed set of wire values represented in Go by T.
type Enum[T ~string] struct {
	name   string
	values []T
	index  map[string]T
}

// NewEnum declares an enum. Duplicate values panic.
func NewEnum[T ~string](name string, values ...T) *Enum[T] {
	e := &Enum[T]{name: name, values: append([]T(nil), values...), index: make(map[string]T, len(values))}
	for _, v := range values {
		if _, dup := e.index[string(v)]; dup {
			panic("sdkmodel: enum " + name + " declares " + string(v) + " twice")
		}
		e.index[string(v)] = v
	}
	return e
}

func (e *Enum[T]) Name() string { return e.name }

func (e *Enum[T]) Values() []string {
	out := make([]string, len(e.values))
	for i, v := range e.values {
		out[i] = string(v)
	}
	return out
}

// Members returns the typed members in declaration order.
func (e *Enum[T]) Members() []T { return append([]T(nil), e.values...) }

// Contains reports whether v is a member.
func (e *Enum[T]) Contains(v T) bool {
	_, ok := e.index[string(v)]
	return ok
}

// Parse maps a wire string to its member. Unknown values are an
// invalid_enum issue, never a default member.
func (e *Enum[T]) Parse(s string) (T, error) {
	if v, ok := e.index[s]; ok {
		return v, nil
	}
	var zero T
	return zero, Issues{unknownEnum("/", e, s)}
}

func (e *Enum[T]) parse(raw any) (any, bool) {
	switch v := raw.(type) {
	case T:
		m, ok := e.index[string(v)]
		return m, ok
	case string:
		m, ok := e.index[v]
		return m, ok
	}
	return nil, false
}

func (e *Enum[T]) wire(v any) (string, bool) {
	m, ok := e.parse(v)
	if !ok {
		return "", false
	}
	return string(m.(T)), true
}

// sortedValues is used by schema projections for deterministic output.
func sortedValues(e EnumType) []string {
	vs := e.Values()
	sort.Strings(vs)
	return vs
}
