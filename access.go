package sdkmodel

import "fmt"

// Get reads a field as T. Required fields that are unset report
// uninitialized; unset optional fields and explicit nulls yield the zero T
// with a nil error, use Lookup to tell them apart.
//
// T must match the coerced representation of the field's type: string,
// int64, float64, bool, decimal.Decimal, time.Time, the enum's member type,
// Model, or []any for lists (see List).
func Get[T any](m Model, name string) (T, error) {
	v, _, err := Lookup[T](m, name)
	return v, err
}

// Lookup is Get with an extra result reporting whether the field holds a
// non-null value.
func Lookup[T any](m Model, name string) (T, bool, error) {
	var zero T
	v, present, err := m.value(name)
	if err != nil {
		return zero, false, err
	}
	if !present || v == nil {
		return zero, false, nil
	}
	tv, ok := v.(T)
	if !ok {
		panic(fmt.Sprintf("sdkmodel: field %q holds %T, not %T", name, v, zero))
	}
	return tv, true, nil
}

// List reads a list field converting each element to T.
func List[T any](m Model, name string) ([]T, error) {
	items, present, err := Lookup[[]any](m, name)
	if err != nil || !present {
		return nil, err
	}
	out := make([]T, len(items))
	for i, it := range items {
		tv, ok := it.(T)
		if !ok {
			panic(fmt.Sprintf("sdkmodel: element %d of %q holds %T", i, name, it))
		}
		out[i] = tv
	}
	return out, nil
}
