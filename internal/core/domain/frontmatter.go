package domain

import "regexp"

// frontMatterDelimiter matches a line consisting of "---", optionally followed
// by a YAML block scalar indicator such as "--- |" or "--- >-2".
var frontMatterDelimiter = regexp.MustCompile(`(?m)^---( [|>][+-]?\d*)?(\r?\n|\z)`)

// SplitFrontMatter splits text that opens with a front-matter delimiter into
// the front matter and the body following the closing delimiter.
// ok is false when text does not start with a delimiter or has no closing one.
func SplitFrontMatter(text string) (front, body string, ok bool) {
	delims := frontMatterDelimiter.FindAllStringIndex(text, 2)
	if len(delims) < 2 || delims[0][0] != 0 {
		return "", text, false
	}
	return text[delims[0][1]:delims[1][0]], text[delims[1][1]:], true
}

// StripFrontMatter returns the body of a document with a front-matter prelude.
// Text without a complete prelude is returned unchanged.
func StripFrontMatter(text string) string {
	_, body, _ := SplitFrontMatter(text)
	return body
}
