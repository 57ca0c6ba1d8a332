package services

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/custodia-labs/mdl/internal/core/domain"
	"github.com/custodia-labs/mdl/internal/core/ports/driven"
	"github.com/custodia-labs/mdl/internal/core/ports/driving"
	"github.com/custodia-labs/mdl/internal/logger"
)

// Ensure ManifestResolver implements the interface.
var _ driving.ManifestResolver = (*ManifestResolver)(nil)

// ManifestResolver walks manifest trees into resolved entries.
type ManifestResolver struct {
	reader   driven.ManifestReader
	compiler driven.DocumentCompiler
}

// NewManifestResolver creates a resolver. compiler is optional; without it
// the declared files of Typst sources are not collected by Dependencies.
func NewManifestResolver(reader driven.ManifestReader, compiler driven.DocumentCompiler) *ManifestResolver {
	return &ManifestResolver{reader: reader, compiler: compiler}
}

// node is one manifest mapping waiting to be resolved.
type node struct {
	location string
	file     domain.Path
	root     domain.Path
	raw      domain.RawManifest
	// chain holds the manifest files being resolved, outermost first.
	chain    []domain.Path
}

// CollectMetas resolves inputs depth first, left to right.
func (r *ManifestResolver) CollectMetas(
	ctx context.Context,
	inputs []domain.Path,
	verifyWith driven.RemoteService,
) ([]domain.ResolvedEntry, error) {
	var entries []domain.ResolvedEntry
	for _, input := range inputs {
		resolved, err := r.collectFile(ctx, input, nil, verifyWith)
		if err != nil {
			return nil, err
		}
		entries = append(entries, resolved...)
	}
	logger.Debug("Resolved %d entries from %d manifests", len(entries), len(inputs))
	return entries, nil
}

func (r *ManifestResolver) collectFile(
	ctx context.Context,
	path domain.Path,
	chain []domain.Path,
	verifyWith driven.RemoteService,
) ([]domain.ResolvedEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	raw, err := r.reader.Read(ctx, path)
	if err != nil {
		return nil, locate(path.String(), err)
	}
	logger.Debug("Read manifest %s", path)

	return r.collectNode(ctx, node{
		location: path.String(),
		file:     path,
		root:     path.Dir(),
		raw:      raw,
		chain:    append(slices.Clone(chain), domain.NewPath(path.String())),
	}, verifyWith)
}

//nolint:gocyclo // One branch per manifest shape
func (r *ManifestResolver) collectNode(
	ctx context.Context,
	n node,
	verifyWith driven.RemoteService,
) ([]domain.ResolvedEntry, error) {
	body := n.raw.Clone()
	children, hasChildren := body.Pop("children")
	if children == nil {
		// "children:" with no value counts as absent
		hasChildren = false
	}

	var entries []domain.ResolvedEntry

	// 1. Module or section body
	switch {
	case body["mod"] != nil:
		target, err := domain.ParseTarget(body)
		if err != nil {
			return nil, locate(n.location, err)
		}
		if verifyWith != nil {
			if err := verify(ctx, verifyWith, target); err != nil {
				return nil, locate(n.location, err)
			}
		}
		entries = append(entries, domain.ResolvedEntry{
			Location: n.location,
			File:     n.file,
			Root:     n.root,
			Target:   target,
		})
	case len(body) > 0:
		return nil, locate(n.location, fmt.Errorf("%w: manifest has no \"mod\" but contains %s",
			domain.ErrUnexpectedContent, strings.Join(body.Keys(), ", ")))
	case !hasChildren:
		return nil, locate(n.location, fmt.Errorf("%w: manifest has neither \"mod\" nor \"children\"",
			domain.ErrEmptyManifest))
	}

	if !hasChildren {
		return entries, nil
	}

	// 2. Children, in declaration order
	list, ok := children.([]any)
	if !ok {
		return nil, locate(n.location, fmt.Errorf("%w: \"children\" must be a list, got %T",
			domain.ErrParse, children))
	}
	for i, child := range list {
		resolved, err := r.collectChild(ctx, n, i, child, verifyWith)
		if err != nil {
			return nil, err
		}
		entries = append(entries, resolved...)
	}
	return entries, nil
}

func (r *ManifestResolver) collectChild(
	ctx context.Context,
	parent node,
	i int,
	child any,
	verifyWith driven.RemoteService,
) ([]domain.ResolvedEntry, error) {
	location := domain.ChildLocation(parent.location, i)

	if ref, ok := child.(string); ok {
		if ref == "" {
			return nil, locate(location, fmt.Errorf("%w: empty child reference", domain.ErrParse))
		}
		path := domain.NewPath(ref).Resolve(parent.root)
		if slices.Contains(parent.chain, path) {
			return nil, locate(location, fmt.Errorf("%w: manifest cycle via %s", domain.ErrParse, ref))
		}
		return r.collectFile(ctx, path, parent.chain, verifyWith)
	}

	raw, ok := domain.AsMapping(child)
	if !ok {
		return nil, locate(location, fmt.Errorf("%w: child must be a path or a mapping, got %T",
			domain.ErrParse, child))
	}
	return r.collectNode(ctx, node{
		location: location,
		file:     parent.file,
		root:     parent.root,
		raw:      raw,
		chain:    parent.chain,
	}, verifyWith)
}

// verify checks a target against the remote course.
func verify(ctx context.Context, remote driven.RemoteService, target domain.Target) error {
	switch t := target.(type) {
	case *domain.SectionMeta:
		return verifySection(ctx, remote, t)
	case domain.ModuleMeta:
		return verifyModule(ctx, remote, t)
	default:
		return fmt.Errorf("%w: cannot verify %T", domain.ErrInvalidInput, target)
	}
}

func verifyModule(ctx context.Context, remote driven.RemoteService, meta domain.ModuleMeta) error {
	base := meta.Base()
	cm, err := remote.GetCourseModule(ctx, base.CMID)
	if err != nil {
		return fmt.Errorf("get module %d: %w", base.CMID, err)
	}

	if cm.ModName != string(base.Mod) {
		return fmt.Errorf("%w: module %d is supposed to be of type mod_%s, but is mod_%s",
			domain.ErrVerification, base.CMID, base.Mod, cm.ModName)
	}
	if course, ok := meta.DeclaredCourse(); ok && cm.Course != course {
		return fmt.Errorf("%w: module %d is supposed to be in course %d, but is in %d",
			domain.ErrVerification, base.CMID, course, cm.Course)
	}

	logger.Debug("Verified module %d (mod_%s, course %d)", cm.ID, cm.ModName, cm.Course)
	return nil
}

func verifySection(ctx context.Context, remote driven.RemoteService, meta *domain.SectionMeta) error {
	course, ok := meta.DeclaredCourse()
	if !ok {
		return fmt.Errorf("%w: section %d needs a \"course\" to be verified",
			domain.ErrVerification, meta.Section)
	}

	sections, err := remote.GetCourseContents(ctx, course, true)
	if err != nil {
		return fmt.Errorf("get contents of course %d: %w", course, err)
	}
	for _, s := range sections {
		if s.ID == meta.Section {
			logger.Debug("Verified section %d in course %d", s.ID, course)
			return nil
		}
	}
	return fmt.Errorf("%w: section %d is not in course %d",
		domain.ErrVerification, meta.Section, course)
}

// locate tags err with location unless it already carries one.
func locate(location string, err error) error {
	var me *domain.ManifestError
	if errors.As(err, &me) {
		return err
	}
	return &domain.ManifestError{Location: location, Err: err}
}
