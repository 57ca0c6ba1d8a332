package driven

import (
	"context"

	"github.com/custodia-labs/mdl/internal/core/domain"
)

// Normaliser renders an editor source file into text Moodle can store.
// Each normaliser handles specific file extensions (e.g., .md, .typ).
type Normaliser interface {
	// SupportedExtensions returns the lower-cased extensions this normaliser
	// handles. Nil means any extension (fallback).
	SupportedExtensions() []string

	// Priority returns the selection priority (higher = preferred).
	// Compiler-backed normalisers should return 90-100.
	// Plain file normalisers should return 50-89.
	// Fallback normalisers should return 1-9.
	Priority() int

	// Normalise reads and renders source, which is already resolved.
	Normalise(ctx context.Context, source domain.Path) (*NormaliseResult, error)
}

// NormaliseResult contains the output of normalisation.
type NormaliseResult struct {
	// Text is the body stored in the editor field.
	Text string

	// Format is the Moodle text format of Text.
	Format domain.TextFormat

	// Attachments are extra files the source declares, relative to the
	// manifest root.
	Attachments []domain.Path
}
