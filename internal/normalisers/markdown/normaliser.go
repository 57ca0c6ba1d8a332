package markdown

import (
	"context"
	"fmt"
	"os"

	"github.com/custodia-labs/mdl/internal/core/domain"
	"github.com/custodia-labs/mdl/internal/core/ports/driven"
)

// Ensure Normaliser implements the interface.
var _ driven.Normaliser = (*Normaliser)(nil)

// Normaliser handles Markdown sources.
type Normaliser struct{}

// New creates a new Markdown normaliser.
func New() *Normaliser {
	return &Normaliser{}
}

// SupportedExtensions returns the extensions this normaliser handles.
func (n *Normaliser) SupportedExtensions() []string {
	return []string{domain.ExtMarkdown}
}

// Priority returns the selection priority.
func (n *Normaliser) Priority() int {
	return 50
}

// Normalise reads source and strips a leading front-matter block.
// A leading "---" without a closing delimiter is kept as content.
func (n *Normaliser) Normalise(_ context.Context, source domain.Path) (*driven.NormaliseResult, error) {
	if source == "" {
		return nil, domain.ErrInvalidInput
	}

	content, err := os.ReadFile(source.String())
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", source, err)
	}

	return &driven.NormaliseResult{
		Text:   domain.StripFrontMatter(string(content)),
		Format: domain.FormatMarkdown,
	}, nil
}
