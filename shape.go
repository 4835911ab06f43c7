package sdkmodel

import (
	"fmt"
	"sort"
	"sync"
)

// ModelType identifies one model class. It is created by Define and holds
// the declaration; the Shape is built from it on first use.
type ModelType struct {
	name string
	reg  *Registry
	decl func() []Field
}

// Name returns the registered model name.
func (t *ModelType) Name() string { return t.name }

// Registry returns the registry the type was defined in.
func (t *ModelType) Registry() *Registry { return t.reg }

// Shape returns the cached Shape, building it on first call.
func (t *ModelType) Shape() *Shape { return t.reg.ShapeOf(t) }

func (t *ModelType) String() string { return t.name }

// Shape is the ordered, immutable field schema of one model type.
type Shape struct {
	model  *ModelType
	fields []Field
	index  map[string]int // local names and wire keys
}

// Model returns the type the shape belongs to.
func (s *Shape) Model() *ModelType { return s.model }

// Len returns the number of fields.
func (s *Shape) Len() int { return len(s.fields) }

// Field returns the i-th field in declaration order.
func (s *Shape) Field(i int) Field { return s.fields[i] }

// Fields returns a copy of the fields in declaration order.
func (s *Shape) Fields() []Field { return append([]Field(nil), s.fields...) }

// Lookup finds a field by local name or wire key.
func (s *Shape) Lookup(nameOrKey string) (Field, int, bool) {
	i, ok := s.index[nameOrKey]
	if !ok {
		return Field{}, -1, false
	}
	return s.fields[i], i, true
}

// Registry maps model names to types and caches their shapes. Shapes are
// built once and never torn down; concurrent first access may build the same
// Shape twice, in which case one copy is discarded.
type Registry struct {
	mu     sync.RWMutex
	types  map[string]*ModelType
	shapes sync.Map // *ModelType -> *Shape
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry { return &Registry{types: map[string]*ModelType{}} }

// Default is the process-wide registry used by Define and ShapeOf.
var Default = NewRegistry()

// Define registers a model type in the Default registry.
func Define(name string, decl func() []Field) *ModelType { return Default.Define(name, decl) }

// ShapeOf returns the Shape of t (build or fetch).
func ShapeOf(t *ModelType) *Shape { return t.Shape() }

// Define registers a model type. The declaration runs lazily on first use,
// so it may reference model types declared later in the same package.
// Registering the same name twice panics.
func (r *Registry) Define(name string, decl func() []Field) *ModelType {
	if name == "" || decl == nil {
		panic("sdkmodel: Define requires a name and a declaration")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, dup := r.types[name]; dup {
		panic("sdkmodel: model " + name + " defined twice")
	}
	t := &ModelType{name: name, reg: r, decl: decl}
	r.types[name] = t
	return t
}

// Lookup returns the model type registered under name.
func (r *Registry) Lookup(name string) (*ModelType, bool) {
	r.mu.RLock()
	t, ok := r.types[name]
	r.mu.RUnlock()
	return t, ok
}

// Names lists registered model names in ascending order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	out := make([]string, 0, len(r.types))
	for n := range r.types {
		out = append(out, n)
	}
	r.mu.RUnlock()
	sort.Strings(out)
	return out
}

// ShapeOf builds or fetches the Shape of t. Malformed declarations panic.
func (r *Registry) ShapeOf(t *ModelType) *Shape {
	if v, ok := r.shapes.Load(t); ok {
		return v.(*Shape)
	}
	s := buildShape(t)
	actual, loaded := r.shapes.LoadOrStore(t, s)
	if !loaded {
		log().Debug().Str("model", t.name).Int("fields", len(s.fields)).Msg("shape built")
	}
	return actual.(*Shape)
}

func buildShape(t *ModelType) *Shape {
	decl := t.decl()
	s := &Shape{model: t, fields: make([]Field, 0, len(decl)), index: make(map[string]int, 2*len(decl))}
	names := map[string]struct{}{}
	keys := map[string]struct{}{}
	for i, f := range decl {
		if f.Name == "" {
			panic(fmt.Sprintf("sdkmodel: %s: field #%d has no name", t.name, i))
		}
		if !f.Type.IsValid() {
			panic(fmt.Sprintf("sdkmodel: %s.%s has no type tag", t.name, f.Name))
		}
		if f.WireKey == "" {
			f.WireKey = defaultWireKey(f.Name)
		}
		if _, dup := names[f.Name]; dup {
			panic(fmt.Sprintf("sdkmodel: %s declares field %s twice", t.name, f.Name))
		}
		if _, dup := keys[f.WireKey]; dup {
			panic(fmt.Sprintf("sdkmodel: %s declares wire key %q twice", t.name, f.WireKey))
		}
		names[f.Name] = struct{}{}
		keys[f.WireKey] = struct{}{}
		rt, ok := f.Type.resolve(t.reg)
		if !ok {
			panic(fmt.Sprintf("sdkmodel: %s.%s references unknown model %q", t.name, f.Name, f.Type.leafModelName()))
		}
		f.Type = rt
		s.fields = append(s.fields, f)
	}
	for i, f := range s.fields {
		s.index[f.Name] = i
	}
	for i, f := range s.fields {
		if j, clash := s.index[f.WireKey]; clash && j != i {
			panic(fmt.Sprintf("sdkmodel: %s: wire key %q collides with field %s", t.name, f.WireKey, s.fields[j].Name))
		}
		s.index[f.WireKey] = i
	}
	return s
}
