// Package engine holds token-level helpers that work on raw JSON bytes
// before they are decoded into maps.
package engine

import (
	"bytes"
	"encoding/json"
	"io"
	"strconv"
	"strings"
)

// DuplicateStrictness controls duplicate key handling in detection helpers.
type DuplicateStrictness int

const (
	DupIgnore DuplicateStrictness = iota
	DupWarn
	DupError
)

// SimpleIssue is a minimal issue representation used by internal helpers.
type SimpleIssue struct {
	Code    string
	Path    string
	Message string
}

type containerKind int

const (
	kindObject containerKind = iota
	kindArray
)

// dupFrame tracks one open container. For objects, key holds the most
// recent key and keys the set seen so far; for arrays, index counts the
// elements started so far.
type dupFrame struct {
	kind         containerKind
	keys         map[string]struct{}
	key          string
	index        int
	expectingKey bool
}

// DetectJSONDuplicateKeysBytes detects duplicate object keys from a JSON byte slice.
// If onDup is DupIgnore, no issues are produced. maxIssues < 0 means unlimited; 0 means disabled; >0 sets limit.
func DetectJSONDuplicateKeysBytes(data []byte, onDup DuplicateStrictness, maxIssues int) ([]SimpleIssue, error) {
	if onDup == DupIgnore {
		return nil, nil
	}
	return detectJSONDuplicateKeys(bytes.NewReader(data), onDup, maxIssues)
}

// DetectJSONDuplicateKeysReader detects duplicate object keys from an io.Reader.
// Note: this will consume the reader fully.
func DetectJSONDuplicateKeysReader(r io.Reader, onDup DuplicateStrictness, maxIssues int) ([]SimpleIssue, error) {
	if onDup == DupIgnore {
		return nil, nil
	}
	return detectJSONDuplicateKeys(r, onDup, maxIssues)
}

func detectJSONDuplicateKeys(r io.Reader, onDup DuplicateStrictness, maxIssues int) ([]SimpleIssue, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	var issues []SimpleIssue
	var stack []dupFrame
	stop := false

	appendIssue := func(i SimpleIssue) {
		if maxIssues == 0 || stop {
			return
		}
		issues = append(issues, i)
		if maxIssues > 0 && len(issues) >= maxIssues {
			issues = append(issues, SimpleIssue{Code: "truncated", Path: "/", Message: "max issues reached"})
			stop = true
		}
	}

	// pointer renders the path of the value about to be read.
	pointer := func() string {
		if len(stack) == 0 {
			return "/"
		}
		b := &strings.Builder{}
		for _, f := range stack {
			b.WriteByte('/')
			if f.kind == kindObject {
				b.WriteString(escape(f.key))
			} else {
				b.WriteString(strconv.Itoa(f.index - 1))
			}
		}
		return b.String()
	}

	// valueStarted advances the parent container when a value begins.
	valueStarted := func() {
		if len(stack) == 0 {
			return
		}
		top := &stack[len(stack)-1]
		switch top.kind {
		case kindObject:
			top.expectingKey = true
		case kindArray:
			top.index++
		}
	}

	for !stop {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			appendIssue(SimpleIssue{Code: "parse_error", Path: "/", Message: err.Error()})
			break
		}

		switch v := tok.(type) {
		case json.Delim:
			switch v {
			case '{', '[':
				valueStarted()
				if v == '{' {
					stack = append(stack, dupFrame{kind: kindObject, keys: make(map[string]struct{}), expectingKey: true})
				} else {
					stack = append(stack, dupFrame{kind: kindArray})
				}
			case '}', ']':
				if len(stack) > 0 {
					stack = stack[:len(stack)-1]
				}
			}
		case string:
			if len(stack) > 0 {
				top := &stack[len(stack)-1]
				if top.kind == kindObject && top.expectingKey {
					top.key = v
					top.expectingKey = false
					if _, ok := top.keys[v]; ok {
						appendIssue(SimpleIssue{Code: "duplicate_key", Path: pointer(), Message: "key '" + v + "' duplicated"})
						if onDup == DupError {
							return issues, nil
						}
					}
					top.keys[v] = struct{}{}
					continue
				}
			}
			valueStarted()
		default:
			valueStarted()
		}
	}

	return issues, nil
}

// escape '~' -> '~0', '/' -> '~1' per RFC6901
func escape(key string) string {
	return strings.ReplaceAll(strings.ReplaceAll(key, "~", "~0"), "/", "~1")
}
