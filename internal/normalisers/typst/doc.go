// Package typst provides a Normaliser for Typst sources. Sources are
// compiled to HTML through a DocumentCompiler and the body markup is kept.
// Files listed in the document's <attachments> metadata are reported for
// upload alongside the editor.
package typst
