package sdkmodel

// ModelOrRaw is the value of a UnionOf field: either a typed Model or a raw
// object that will be hydrated against the union's model type when read.
type ModelOrRaw struct {
	model Model
	raw   map[string]any
	isRaw bool
}

// Typed wraps an already constructed model.
func Typed(m Model) ModelOrRaw { return ModelOrRaw{model: m} }

// Raw wraps a raw object in wire form (wire keys, wire values).
func Raw(obj map[string]any) ModelOrRaw { return ModelOrRaw{raw: obj, isRaw: true} }

// IsRaw reports whether the variant holds a raw object.
func (u ModelOrRaw) IsRaw() bool { return u.isRaw }

// Typed returns the typed variant; ok is false for raw variants.
func (u ModelOrRaw) Typed() (Model, bool) { return u.model, !u.isRaw }

// RawObject returns the raw variant; ok is false for typed variants.
func (u ModelOrRaw) RawObject() (map[string]any, bool) { return u.raw, u.isRaw }

// resolveUnion turns any accepted union input into a Model of type t.
func resolveUnion(t *ModelType, v any, path, name string, opt *DecodeOpt) (Model, error) {
	switch u := v.(type) {
	case Model:
		if u.Type() != t {
			return Model{}, Issues{invalidUnion(displayPath(path), name, nil)}
		}
		return u, nil
	case ModelOrRaw:
		if !u.isRaw {
			return resolveUnion(t, u.model, path, name, opt)
		}
		return resolveUnion(t, u.raw, path, name, opt)
	case map[string]any:
		m, err := hydrate(t, u, path, opt)
		if err != nil {
			return Model{}, Issues{invalidUnion(displayPath(path), name, err)}
		}
		return m, nil
	}
	return Model{}, Issues{invalidUnion(displayPath(path), name, nil)}
}
