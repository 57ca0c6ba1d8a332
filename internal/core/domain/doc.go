// Package domain defines the core entities for mdl.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Path / PathSet: manifest-relative file references
//   - EditorContent: a source document plus its attachments
//   - ModuleMeta: assign, folder, label, page and resource manifests
//   - SectionMeta: the $section manifest
//   - RawManifest: the untyped mapping a manifest reader produces
//   - ResolvedEntry: one resolved node of a manifest tree
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
