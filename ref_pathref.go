package sdkmodel

import (
	"strconv"
	"strings"
)

// PathRef builds JSON Pointer paths in a chain-safe way.
type PathRef interface {
	Field(key string) PathRef
	Index(i int) PathRef
	Pointer() string
}

type pathRef struct {
	parts []string
}

// Root returns the PathRef of a document root ("/").
func Root() PathRef { return &pathRef{} }

// At parses a JSON Pointer into a PathRef.
func At(pointer string) PathRef {
	if pointer == "" || pointer == "/" {
		return Root()
	}
	parts := []string{}
	for _, p := range strings.Split(pointer, "/") {
		if p == "" {
			continue
		}
		parts = append(parts, p)
	}
	return &pathRef{parts: parts}
}

func (p *pathRef) Field(key string) PathRef {
	if key == "" {
		return p
	}
	return &pathRef{parts: append(append([]string{}, p.parts...), escapeToken(key))}
}

func (p *pathRef) Index(i int) PathRef {
	return &pathRef{parts: append(append([]string{}, p.parts...), strconv.Itoa(i))}
}

func (p *pathRef) Pointer() string {
	if len(p.parts) == 0 {
		return "/"
	}
	return "/" + strings.Join(p.parts, "/")
}

// escape '~' -> '~0', '/' -> '~1' per RFC6901
func escapeToken(key string) string {
	return strings.ReplaceAll(strings.ReplaceAll(key, "~", "~0"), "/", "~1")
}

// fieldPointer appends a wire key to a base pointer. The base is "" for the
// document root so that nested paths never start with "//".
func fieldPointer(base, key string) string {
	return base + "/" + escapeToken(key)
}

func indexPointer(base string, i int) string {
	return base + "/" + strconv.Itoa(i)
}

// displayPath renders the internal base form ("" for root) as a pointer.
func displayPath(base string) string {
	if base == "" {
		return "/"
	}
	return base
}
