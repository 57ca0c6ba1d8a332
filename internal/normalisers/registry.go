package normalisers

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/custodia-labs/mdl/internal/core/domain"
	"github.com/custodia-labs/mdl/internal/core/ports/driven"
)

// Ensure Registry implements the interface.
var _ driven.NormaliserRegistry = (*Registry)(nil)

// Registry dispatches sources to the highest priority normaliser that
// supports their extension. Normalisers without extensions are fallbacks.
type Registry struct {
	mu          sync.RWMutex
	normalisers []driven.Normaliser
}

// NewRegistry creates a registry holding the given normalisers.
func NewRegistry(normalisers ...driven.Normaliser) *Registry {
	r := &Registry{}
	for _, n := range normalisers {
		r.Register(n)
	}
	return r
}

// Register adds a normaliser, keeping the list ordered by priority.
func (r *Registry) Register(normaliser driven.Normaliser) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.normalisers = append(r.normalisers, normaliser)
	sort.SliceStable(r.normalisers, func(i, j int) bool {
		return r.normalisers[i].Priority() > r.normalisers[j].Priority()
	})
}

// Normalise renders source with the best matching normaliser.
func (r *Registry) Normalise(ctx context.Context, source domain.Path) (*driven.NormaliseResult, error) {
	n := r.selectFor(source.Ext())
	if n == nil {
		return nil, fmt.Errorf("%w: no normaliser for %q", domain.ErrUnsupportedFormat, source.Ext())
	}
	return n.Normalise(ctx, source)
}

// SupportedExtensions returns the sorted extensions with a specific normaliser.
func (r *Registry) SupportedExtensions() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := make(map[string]bool)
	var exts []string
	for _, n := range r.normalisers {
		for _, ext := range n.SupportedExtensions() {
			if !seen[ext] {
				seen[ext] = true
				exts = append(exts, ext)
			}
		}
	}
	sort.Strings(exts)
	return exts
}

func (r *Registry) selectFor(ext string) driven.Normaliser {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var fallback driven.Normaliser
	for _, n := range r.normalisers {
		exts := n.SupportedExtensions()
		if exts == nil {
			if fallback == nil {
				fallback = n
			}
			continue
		}
		for _, e := range exts {
			if e == ext {
				return n
			}
		}
	}
	return fallback
}

