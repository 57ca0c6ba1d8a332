package html

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/custodia-labs/mdl/internal/core/domain"
	"github.com/custodia-labs/mdl/internal/core/ports/driven"
)

// Ensure Normaliser implements the interface.
var _ driven.Normaliser = (*Normaliser)(nil)

// Normaliser handles HTML and any source no other normaliser claims.
type Normaliser struct{}

// New creates a new HTML normaliser.
func New() *Normaliser {
	return &Normaliser{}
}

// SupportedExtensions returns nil: this is the fallback normaliser.
func (n *Normaliser) SupportedExtensions() []string {
	return nil
}

// Priority returns the selection priority.
func (n *Normaliser) Priority() int {
	return 5 // Fallback
}

// Normalise reads source and sends it unchanged as HTML.
func (n *Normaliser) Normalise(_ context.Context, source domain.Path) (*driven.NormaliseResult, error) {
	if source == "" {
		return nil, domain.ErrInvalidInput
	}

	content, err := os.ReadFile(source.String())
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", source, err)
	}

	return &driven.NormaliseResult{
		Text:   string(content),
		Format: domain.FormatHTML,
	}, nil
}

// ExtractBody returns the inner markup of the document's <body> element.
// The parser synthesises a body for fragments, so any input has one.
func ExtractBody(document string) (string, error) {
	root, err := html.Parse(strings.NewReader(document))
	if err != nil {
		return "", fmt.Errorf("parse html: %w", err)
	}

	body := findElement(root, atom.Body)
	if body == nil {
		return "", fmt.Errorf("%w: html document has no body", domain.ErrInvalidInput)
	}

	var buf bytes.Buffer
	for c := body.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&buf, c); err != nil {
			return "", fmt.Errorf("render html: %w", err)
		}
	}
	return buf.String(), nil
}

// findElement returns the first element with the given tag in document order.
func findElement(n *html.Node, tag atom.Atom) *html.Node {
	if n.Type == html.ElementNode && n.DataAtom == tag {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findElement(c, tag); found != nil {
			return found
		}
	}
	return nil
}
