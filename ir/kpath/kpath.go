package kpath

import (
	"slices"
	"strings"
)

// Path is an ordered sequence of non-empty key segments. The empty Path is
// the root.
type Path []string

const separators = "/."

func isSep(r rune) bool {
	return strings.ContainsRune(separators, r)
}

// Normalize converts a slash- or dot-delimited address into a Path.
func Normalize(raw string) Path {
	raw = strings.TrimSpace(raw)
	raw = strings.TrimLeft(raw, separators)
	return append(Path{}, strings.FieldsFunc(raw, isSep)...)
}

// String renders p with "/" between segments. The root renders as "".
func (p Path) String() string {
	return strings.Join(p, "/")
}

func (p Path) IsRoot() bool {
	return len(p) == 0
}

// Parent returns the path without its last segment. The parent of the root
// is the root.
func (p Path) Parent() Path {
	if len(p) == 0 {
		return p
	}
	return p[:len(p)-1:len(p)-1]
}

// Base returns the last segment, or "" for the root.
func (p Path) Base() string {
	if len(p) == 0 {
		return ""
	}
	return p[len(p)-1]
}

// Append returns a new path with segs added. p is not modified.
func (p Path) Append(segs ...string) Path {
	res := make(Path, 0, len(p)+len(segs))
	res = append(res, p...)
	return append(res, segs...)
}

func (p Path) Equal(o Path) bool {
	return slices.Equal(p, o)
}

// HasPrefix reports whether prefix is p or an ancestor of p.
func (p Path) HasPrefix(prefix Path) bool {
	if len(prefix) > len(p) {
		return false
	}
	return slices.Equal(p[:len(prefix)], prefix)
}

// Overlaps reports whether one of a and b is a prefix of the other, that is
// whether a change at one can affect the value at the other.
func Overlaps(a, b Path) bool {
	return a.HasPrefix(b) || b.HasPrefix(a)
}

func (p Path) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

func (p *Path) UnmarshalText(d []byte) error {
	*p = Normalize(string(d))
	return nil
}
