package sdkmodel

import "github.com/iancoleman/strcase"

// Field describes one property of one model.
type Field struct {
	// Name is the local property name used by application code (AccountID).
	Name string
	// WireKey is the JSON key on the wire. Empty means the snake_case form
	// of Name (account_id).
	WireKey string
	// Required fields must be present at hydration and in With.
	Required bool
	// Nullable fields accept an explicit JSON null as a present value.
	Nullable bool
	Type     Type
	Doc      string
}

// Required declares a required field.
func Required(name string, t Type) Field { return Field{Name: name, Required: true, Type: t} }

// Optional declares an optional field; absent means unset, not null.
func Optional(name string, t Type) Field { return Field{Name: name, Type: t} }

// Key overrides the wire key.
func (f Field) Key(wire string) Field {
	f.WireKey = wire
	return f
}

// AllowNull marks the field nullable.
func (f Field) AllowNull() Field {
	f.Nullable = true
	return f
}

// Describe attaches documentation exported to JSON Schema.
func (f Field) Describe(doc string) Field {
	f.Doc = doc
	return f
}

func defaultWireKey(name string) string { return strcase.ToSnake(name) }
