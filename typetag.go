package sdkmodel

// Kind enumerates the type tags a Field can carry.
type Kind int

const (
	KindScalar Kind = iota
	KindDateTime
	KindDate
	KindEnum
	KindModel
	KindList
	KindUnion
)

// ScalarKind refines KindScalar.
type ScalarKind int

const (
	ScalarString ScalarKind = iota
	ScalarInt
	ScalarFloat
	ScalarBool
	ScalarDecimal
	ScalarAny
)

// Type is the type tag of a Field. Values are built with the constructors
// below (String, Int, EnumOf, ModelOf, ListOf, UnionOf, ...); the zero Type
// is invalid and rejected when a Shape is built.
type Type struct {
	kind   Kind
	scalar ScalarKind
	enum   EnumType
	model  *ModelType
	ref    string // model name resolved against the declaring Registry
	elem   *Type
	valid  bool
}

func scalar(k ScalarKind) Type { return Type{kind: KindScalar, scalar: k, valid: true} }

// String is a JSON string scalar read as string.
func String() Type { return scalar(ScalarString) }

// Int is a JSON integer read as int64.
func Int() Type { return scalar(ScalarInt) }

// Float is a JSON number read as float64.
func Float() Type { return scalar(ScalarFloat) }

// Bool is a JSON boolean.
func Bool() Type { return scalar(ScalarBool) }

// Decimal is a JSON number (or numeric string) read as decimal.Decimal.
func Decimal() Type { return scalar(ScalarDecimal) }

// Any passes arbitrary JSON through untouched.
func Any() Type { return scalar(ScalarAny) }

// DateTime is an ISO-8601 / RFC 3339 timestamp read as time.Time.
func DateTime() Type { return Type{kind: KindDateTime, valid: true} }

// Date is a YYYY-MM-DD calendar date read as time.Time (UTC midnight).
func Date() Type { return Type{kind: KindDate, valid: true} }

// EnumOf tags a closed set of wire strings.
func EnumOf(e EnumType) Type { return Type{kind: KindEnum, enum: e, valid: e != nil} }

// ModelOf tags a nested object of the given model type.
func ModelOf(t *ModelType) Type { return Type{kind: KindModel, model: t, valid: t != nil} }

// Ref tags a nested object by model name; the name is resolved against the
// registry of the declaring model when its Shape is built. Use it for
// self-referencing or mutually-referencing models.
func Ref(name string) Type { return Type{kind: KindModel, ref: name, valid: name != ""} }

// ListOf tags a JSON array whose elements are coerced per elem.
func ListOf(elem Type) Type { return Type{kind: KindList, elem: &elem, valid: elem.valid} }

// UnionOf tags a field that holds either a typed instance of t or a raw
// object matching t's Shape (see ModelOrRaw).
func UnionOf(t *ModelType) Type { return Type{kind: KindUnion, model: t, valid: t != nil} }

// UnionRef is UnionOf by model name.
func UnionRef(name string) Type { return Type{kind: KindUnion, ref: name, valid: name != ""} }

func (t Type) Kind() Kind              { return t.kind }
func (t Type) Scalar() ScalarKind      { return t.scalar }
func (t Type) Enum() EnumType          { return t.enum }
func (t Type) Model() *ModelType       { return t.model }
func (t Type) IsValid() bool           { return t.valid }
func (t Type) refName() (string, bool) { return t.ref, t.ref != "" && t.model == nil }

// Elem returns the element type of a list tag.
func (t Type) Elem() Type {
	if t.elem == nil {
		return Type{}
	}
	return *t.elem
}

// String renders the tag for messages: "int", "enum(card_status)",
// "list<model(account)>".
func (t Type) String() string {
	switch t.kind {
	case KindScalar:
		switch t.scalar {
		case ScalarString:
			return "string"
		case ScalarInt:
			return "int"
		case ScalarFloat:
			return "float"
		case ScalarBool:
			return "bool"
		case ScalarDecimal:
			return "decimal"
		default:
			return "any"
		}
	case KindDateTime:
		return "date-time"
	case KindDate:
		return "date"
	case KindEnum:
		if t.enum == nil {
			return "enum"
		}
		return "enum(" + t.enum.Name() + ")"
	case KindModel:
		return "model(" + t.modelName() + ")"
	case KindUnion:
		return "union(" + t.modelName() + ")"
	case KindList:
		return "list<" + t.Elem().String() + ">"
	}
	return "invalid"
}

// ModelName returns the name of the model a model, union or by-name tag
// refers to, resolved or not.
func (t Type) ModelName() string { return t.modelName() }

// leafModelName is modelName looking through list element types.
func (t Type) leafModelName() string {
	if t.kind == KindList {
		return t.Elem().leafModelName()
	}
	return t.modelName()
}

func (t Type) modelName() string {
	if t.model != nil {
		return t.model.name
	}
	return t.ref
}

// resolve binds by-name model references against reg, recursing into list
// element types.
func (t Type) resolve(reg *Registry) (Type, bool) {
	if name, ok := t.refName(); ok {
		mt, found := reg.Lookup(name)
		if !found {
			return t, false
		}
		t.model = mt
		return t, true
	}
	if t.kind == KindList && t.elem != nil {
		e, ok := t.elem.resolve(reg)
		if !ok {
			return t, false
		}
		t.elem = &e
	}
	return t, true
}
