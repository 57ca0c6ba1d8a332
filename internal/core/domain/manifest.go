package domain

import (
	"fmt"
	"strings"
)

// ResolvedEntry is one module or section produced by resolving a manifest tree.
type ResolvedEntry struct {
	// Location identifies where the entry was declared: a file path, or a
	// synthetic path such as "unit.yaml:children[1]" for inline children.
	Location string

	// File is the manifest file the entry was read from. Inline children
	// carry their parent's file.
	File Path

	// Root is the directory relative paths of the entry are resolved against.
	Root Path

	// Target is the parsed module or section.
	Target Target
}

// ChildLocation names the i-th inline child of parent. The first level of
// nesting uses ":children[i]", deeper levels append ".children[i]".
func ChildLocation(parent string, i int) string {
	sep := ":"
	if IsInlineLocation(parent) {
		sep = "."
	}
	return fmt.Sprintf("%s%schildren[%d]", parent, sep, i)
}

// IsInlineLocation reports whether location names an inline child.
func IsInlineLocation(location string) bool {
	return strings.HasSuffix(location, "]") && strings.Contains(location, ":children[")
}
