package cli

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/custodia-labs/mdl/internal/core/domain"
)

// expandManifestArgs turns command arguments into manifest paths. Arguments
// containing glob characters are expanded with ** support; the matches of
// one pattern are sorted, directories are skipped. Plain arguments are kept
// as given so that missing files are reported by the reader.
func expandManifestArgs(args []string) ([]domain.Path, error) {
	var paths []domain.Path
	for _, arg := range args {
		if !strings.ContainsAny(arg, "*?[{") {
			paths = append(paths, domain.NewPath(arg))
			continue
		}

		matches, err := doublestar.FilepathGlob(arg)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid pattern %q: %v", domain.ErrInvalidInput, arg, err)
		}
		sort.Strings(matches)

		n := 0
		for _, m := range matches {
			info, err := os.Stat(m)
			if err != nil || info.IsDir() {
				continue
			}
			paths = append(paths, domain.NewPath(m))
			n++
		}
		if n == 0 {
			return nil, fmt.Errorf("%w: no manifests match %q", domain.ErrNotFound, arg)
		}
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("%w: no manifests given", domain.ErrInvalidInput)
	}
	return paths, nil
}
