// Package markdown provides a Normaliser for Markdown sources.
// Moodle renders Markdown itself, so the text is sent as-is after any
// front-matter prelude is removed.
package markdown
