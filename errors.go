package sdkmodel

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/reoring/sdkmodel/i18n"
)

// Issue codes (exported consts for IDE completion and type safety by convention)
const (
	// CodeRequired reports a required wire key missing from a payload or
	// from the Values handed to With.
	CodeRequired = "required"
	// CodeUninitialized reports a read of a required field on an instance
	// that never went through With.
	CodeUninitialized = "uninitialized"
	CodeInvalidType   = "invalid_type"
	CodeInvalidFormat = "invalid_format"
	CodeInvalidEnum   = "invalid_enum"
	CodeInvalidUnion  = "invalid_union"
	CodeUnknownKey    = "unknown_key"
	CodeDuplicateKey  = "duplicate_key"
	CodeParseError    = "parse_error"
	CodeTruncated     = "truncated"
)

// Issue represents a single coercion, hydration or encoding failure.
type Issue struct {
	Path    string // JSON Pointer built from wire keys (for example: /source/items/2/amount).
	Code    string // One of the codes listed above.
	Message string
	Hint    string // Optional: remediation hints, format names, etc.
	Cause   error  // Optional: underlying error.
	// Params carries structured parameters such as {"field":"Amount",
	// "expected":"int","actual":"string"} for i18n and observability.
	Params map[string]any
}

// Issues is a collection of failures that implements error.
type Issues []Issue

// Error summarizes the first few issues.
func (iss Issues) Error() string {
	if len(iss) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	n := len(iss)
	lim := n
	if lim > maxShown {
		lim = maxShown
	}
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		it := iss[i]
		// e.g. invalid_type at /amount
		fmt.Fprintf(b, "%s at %s", it.Code, it.Path)
	}
	if n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}

// Unwrap exposes the causes so errors.Is/As reach codec and driver errors.
func (iss Issues) Unwrap() []error {
	var out []error
	for _, it := range iss {
		if it.Cause != nil {
			out = append(out, it.Cause)
		}
	}
	return out
}

// AppendIssues appends issues to the destination, initializing the slice when
// needed.
func AppendIssues(dst Issues, more ...Issue) Issues {
	if dst == nil {
		dst = Issues{}
	}
	dst = append(dst, more...)
	return dst
}

// AsIssues extracts Issues from an error using errors.As internally.
func AsIssues(err error) (Issues, bool) {
	if err == nil {
		return nil, false
	}
	var iss Issues
	if errors.As(err, &iss) {
		return iss, true
	}
	return nil, false
}

// HasCode reports whether err carries at least one Issue with the given code.
func HasCode(err error, code string) bool {
	iss, ok := AsIssues(err)
	if !ok {
		return false
	}
	for _, it := range iss {
		if it.Code == code {
			return true
		}
	}
	return false
}

// sortIssues orders issues by path, then code, for deterministic reports.
func sortIssues(iss Issues) {
	sort.SliceStable(iss, func(i, j int) bool {
		if iss[i].Path != iss[j].Path {
			return iss[i].Path < iss[j].Path
		}
		return iss[i].Code < iss[j].Code
	})
}

// ---- constructors for the error taxonomy ----

func missingRequired(path string, f Field) Issue {
	return Issue{
		Path:    path,
		Code:    CodeRequired,
		Message: i18n.T(CodeRequired, map[string]string{"key": f.WireKey}),
		Hint:    "required property missing",
		Params:  map[string]any{"key": f.WireKey, "field": f.Name},
	}
}

func uninitialized(path, name string) Issue {
	return Issue{
		Path:    path,
		Code:    CodeUninitialized,
		Message: i18n.T(CodeUninitialized, map[string]string{"field": name}),
		Hint:    "construct the model with With before reading required fields",
		Params:  map[string]any{"field": name},
	}
}

func typeMismatch(path, name, expected string, actual any) Issue {
	got := describe(actual)
	return Issue{
		Path:    path,
		Code:    CodeInvalidType,
		Message: i18n.T(CodeInvalidType, map[string]string{"expected": expected, "actual": got}),
		Hint:    "expected " + expected,
		Params:  map[string]any{"field": name, "expected": expected, "actual": got},
	}
}

func malformed(path, name, format string, raw string, cause error) Issue {
	return Issue{
		Path:    path,
		Code:    CodeInvalidFormat,
		Message: i18n.T(CodeInvalidFormat, map[string]string{"format": format}),
		Hint:    format,
		Cause:   cause,
		Params:  map[string]any{"field": name, "format": format, "raw": raw},
	}
}

func unknownEnum(path string, e EnumType, raw any) Issue {
	return Issue{
		Path:    path,
		Code:    CodeInvalidEnum,
		Message: i18n.T(CodeInvalidEnum, map[string]string{"enum": e.Name()}),
		Hint:    "one of " + strings.Join(e.Values(), ", "),
		Params:  map[string]any{"enum": e.Name(), "raw": fmt.Sprint(raw)},
	}
}

func invalidUnion(path, name string, cause error) Issue {
	return Issue{
		Path:    path,
		Code:    CodeInvalidUnion,
		Message: i18n.T(CodeInvalidUnion, nil),
		Hint:    "expected a model instance or an object matching its shape",
		Cause:   cause,
		Params:  map[string]any{"field": name},
	}
}

func unknownKey(path, key string) Issue {
	return Issue{Path: path, Code: CodeUnknownKey, Message: i18n.T(CodeUnknownKey, nil), Params: map[string]any{"key": key}}
}

func singleIssue(code, msg string) Issues {
	return AppendIssues(nil, Issue{Path: "/", Code: code, Message: msg})
}

// describe renders a raw value's JSON-ish type for TypeMismatch messages.
func describe(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case bool:
		return "bool"
	case json.Number, float64, float32, int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return "number"
	case map[string]any:
		return "object"
	case []any:
		return "array"
	case Model:
		return "model"
	default:
		return fmt.Sprintf("%T", v)
	}
}
