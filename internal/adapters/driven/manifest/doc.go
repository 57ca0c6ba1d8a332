// Package manifest reads manifest files into untyped mappings.
//
// Supported formats, chosen by extension:
//   - .yaml, .yml: the whole file is one YAML mapping
//   - .md: the YAML front-matter block at the top of the file
//   - .typ: the value of the document's <frontmatter> metadata
package manifest
