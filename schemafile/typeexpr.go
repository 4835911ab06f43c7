package schemafile

import (
	"strings"

	"github.com/pkg/errors"

	"github.com/reoring/sdkmodel"
)

// ParseType reads a type expression:
//
//	string | int | float | bool | decimal | any | date-time | date
//	enum:NAME | model:NAME | union:NAME | list<EXPR>
//
// Enum names resolve against enums; model names stay by-name references
// resolved when the declaring Shape is built.
func ParseType(expr string, enums map[string]sdkmodel.EnumType) (sdkmodel.Type, error) {
	e := strings.TrimSpace(expr)
	switch e {
	case "string":
		return sdkmodel.String(), nil
	case "int", "integer":
		return sdkmodel.Int(), nil
	case "float", "number":
		return sdkmodel.Float(), nil
	case "bool", "boolean":
		return sdkmodel.Bool(), nil
	case "decimal":
		return sdkmodel.Decimal(), nil
	case "any":
		return sdkmodel.Any(), nil
	case "date-time", "datetime":
		return sdkmodel.DateTime(), nil
	case "date":
		return sdkmodel.Date(), nil
	}
	if strings.HasPrefix(e, "list<") && strings.HasSuffix(e, ">") {
		elem, err := ParseType(e[len("list<"):len(e)-1], enums)
		if err != nil {
			return sdkmodel.Type{}, errors.Wrapf(err, "list element of %q", e)
		}
		return sdkmodel.ListOf(elem), nil
	}
	kind, name, ok := strings.Cut(e, ":")
	if !ok || name == "" {
		return sdkmodel.Type{}, errors.Errorf("unknown type expression %q", expr)
	}
	switch kind {
	case "enum":
		en, found := enums[name]
		if !found {
			return sdkmodel.Type{}, errors.Errorf("enum %q is not declared", name)
		}
		return sdkmodel.EnumOf(en), nil
	case "model":
		return sdkmodel.Ref(name), nil
	case "union":
		return sdkmodel.UnionRef(name), nil
	}
	return sdkmodel.Type{}, errors.Errorf("unknown type expression %q", expr)
}

// modelRefs lists the model names referenced by t, including list elements.
func modelRefs(t sdkmodel.Type) []string {
	switch t.Kind() {
	case sdkmodel.KindModel, sdkmodel.KindUnion:
		return []string{t.ModelName()}
	case sdkmodel.KindList:
		return modelRefs(t.Elem())
	}
	return nil
}
