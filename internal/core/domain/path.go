package domain

import (
	"path/filepath"
	"sort"
	"strings"
)

// File extensions the tool understands, lower-cased with the leading dot.
const (
	ExtYAML     = ".yaml"
	ExtYML      = ".yml"
	ExtMarkdown = ".md"
	ExtTypst    = ".typ"
	ExtText     = ".txt"
	ExtHTML     = ".html"
	ExtHTM      = ".htm"
)

// Path is a cleaned file path as declared in a manifest.
// Paths are plain strings underneath, so they compare and hash structurally
// and can be used as map keys.
type Path string

// NewPath cleans s into a Path. The empty string stays empty.
func NewPath(s string) Path {
	if s == "" {
		return ""
	}
	return Path(filepath.Clean(s))
}

func (p Path) String() string {
	return string(p)
}

// Ext returns the lower-cased extension including the dot, or "".
func (p Path) Ext() string {
	return strings.ToLower(filepath.Ext(string(p)))
}

// Base returns the last element of the path.
func (p Path) Base() string {
	return filepath.Base(string(p))
}

// Dir returns the containing directory.
func (p Path) Dir() Path {
	return Path(filepath.Dir(string(p)))
}

// IsAbs reports whether the path is absolute.
func (p Path) IsAbs() bool {
	return filepath.IsAbs(string(p))
}

// IsTypst reports whether the path names a Typst document.
func (p Path) IsTypst() bool {
	return p.Ext() == ExtTypst
}

// Resolve interprets p relative to root. Absolute paths are returned unchanged.
func (p Path) Resolve(root Path) Path {
	if p.IsAbs() || root == "" {
		return p
	}
	return Path(filepath.Join(string(root), string(p)))
}

// PathSet is an unordered set of paths.
type PathSet map[Path]struct{}

// NewPathSet creates a set holding the given paths.
func NewPathSet(paths ...Path) PathSet {
	s := make(PathSet, len(paths))
	s.Add(paths...)
	return s
}

// Add inserts paths into the set.
func (s PathSet) Add(paths ...Path) {
	for _, p := range paths {
		s[p] = struct{}{}
	}
}

// Union adds every member of other to s.
func (s PathSet) Union(other PathSet) {
	for p := range other {
		s[p] = struct{}{}
	}
}

// Contains reports whether p is in the set.
func (s PathSet) Contains(p Path) bool {
	_, ok := s[p]
	return ok
}

// Len returns the number of paths in the set.
func (s PathSet) Len() int {
	return len(s)
}

// Sorted returns the members in lexical order.
func (s PathSet) Sorted() []Path {
	paths := make([]Path, 0, len(s))
	for p := range s {
		paths = append(paths, p)
	}
	sort.Slice(paths, func(i, j int) bool { return paths[i] < paths[j] })
	return paths
}
