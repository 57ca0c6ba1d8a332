package typst

import (
	"context"
	"fmt"

	"github.com/custodia-labs/mdl/internal/core/domain"
	"github.com/custodia-labs/mdl/internal/core/ports/driven"
	"github.com/custodia-labs/mdl/internal/normalisers/html"
)

// Ensure Normaliser implements the interface.
var _ driven.Normaliser = (*Normaliser)(nil)

// Normaliser handles Typst sources.
type Normaliser struct {
	compiler driven.DocumentCompiler
}

// New creates a Typst normaliser backed by compiler.
func New(compiler driven.DocumentCompiler) *Normaliser {
	return &Normaliser{compiler: compiler}
}

// SupportedExtensions returns the extensions this normaliser handles.
func (n *Normaliser) SupportedExtensions() []string {
	return []string{domain.ExtTypst}
}

// Priority returns the selection priority.
func (n *Normaliser) Priority() int {
	return 90 // Compiler-backed
}

// Normalise compiles source and returns the body of the resulting HTML.
func (n *Normaliser) Normalise(ctx context.Context, source domain.Path) (*driven.NormaliseResult, error) {
	if source == "" {
		return nil, domain.ErrInvalidInput
	}
	if n.compiler == nil {
		return nil, fmt.Errorf("%w: no Typst compiler for %s", domain.ErrNotConfigured, source)
	}

	document, err := n.compiler.Compile(ctx, source)
	if err != nil {
		return nil, fmt.Errorf("compile %s: %w", source, err)
	}
	body, err := html.ExtractBody(document)
	if err != nil {
		return nil, fmt.Errorf("compile %s: %w", source, err)
	}

	values, err := n.compiler.QueryMetadata(ctx, source, domain.LabelAttachments)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", source, err)
	}
	attachments, err := domain.PathsFromMetadata(domain.LabelAttachments, values)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", source, err)
	}

	return &driven.NormaliseResult{
		Text:        body,
		Format:      domain.FormatHTML,
		Attachments: attachments,
	}, nil
}
