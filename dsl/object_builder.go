package dsl

import (
	"github.com/reoring/sdkmodel"
)

type objectBuilder struct {
	name   string
	reg    *sdkmodel.Registry
	fields []sdkmodel.Field
}

type fieldStep struct {
	b *objectBuilder
	i int
}

// Object starts a model declaration. Fields are optional until marked
// Required; the wire key defaults to the snake_case form of the name.
func Object(name string) *objectBuilder {
	return &objectBuilder{name: name, reg: sdkmodel.Default}
}

// In selects the registry the model is defined in (Default otherwise).
func (b *objectBuilder) In(reg *sdkmodel.Registry) *objectBuilder {
	b.reg = reg
	return b
}

// Field appends a field in declaration order.
func (b *objectBuilder) Field(name string, t sdkmodel.Type) *fieldStep {
	b.fields = append(b.fields, sdkmodel.Optional(name, t))
	return &fieldStep{b: b, i: len(b.fields) - 1}
}

// Require marks one or more fields as required.
func (b *objectBuilder) Require(names ...string) *objectBuilder {
	for _, n := range names {
		for i := range b.fields {
			if b.fields[i].Name == n {
				b.fields[i].Required = true
			}
		}
	}
	return b
}

// Define registers the model. Malformed declarations panic on first use of
// the returned type, like any other Define.
func (b *objectBuilder) Define() *sdkmodel.ModelType {
	decl := append([]sdkmodel.Field(nil), b.fields...)
	return b.reg.Define(b.name, func() []sdkmodel.Field { return decl })
}

// Required marks the field as required and returns the builder.
func (f *fieldStep) Required() *objectBuilder {
	f.b.fields[f.i].Required = true
	return f.b
}

// Optional marks the field as optional (default) and returns the builder.
func (f *fieldStep) Optional() *objectBuilder {
	f.b.fields[f.i].Required = false
	return f.b
}

// Key overrides the wire key of the current field.
func (f *fieldStep) Key(wire string) *fieldStep {
	f.b.fields[f.i].WireKey = wire
	return f
}

// Nullable lets the current field hold an explicit null.
func (f *fieldStep) Nullable() *fieldStep {
	f.b.fields[f.i].Nullable = true
	return f
}

// Doc attaches a description exported to JSON Schema.
func (f *fieldStep) Doc(s string) *fieldStep {
	f.b.fields[f.i].Doc = s
	return f
}

func (f *fieldStep) Field(name string, t sdkmodel.Type) *fieldStep { return f.b.Field(name, t) }
func (f *fieldStep) Require(names ...string) *objectBuilder        { return f.b.Require(names...) }
func (f *fieldStep) Define() *sdkmodel.ModelType                   { return f.b.Define() }
