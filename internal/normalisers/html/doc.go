// Package html provides the fallback Normaliser. Sources it handles are
// stored verbatim as HTML. It also extracts the body of complete HTML
// documents, which compiled Typst output needs.
package html
