package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/mdl/internal/core/domain"
	"github.com/custodia-labs/mdl/internal/core/ports/driven"
	"github.com/custodia-labs/mdl/internal/core/ports/driving"
	"github.com/custodia-labs/mdl/internal/logger"
)

var (
	uploadVerify bool
	uploadDryRun bool
	uploadWatch  bool
)

var uploadCmd = &cobra.Command{
	Use:   "upload <manifest>...",
	Short: "Upload modules and sections described by manifests",
	Long: `Resolves the given manifests and their children, checks every module
and section against the course, and replaces its remote content.

Manifests may be YAML (.yaml, .yml), Markdown with front matter (.md) or
Typst (.typ). Quoted glob patterns such as 'course/**/*.yaml' are expanded.
Uploading stops at the first failure.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runUpload,
}

func init() {
	flags := uploadCmd.Flags()
	flags.BoolVar(&uploadVerify, "verify", true, "check module types and courses before uploading")
	flags.BoolVar(&uploadDryRun, "dry-run", false, "resolve and verify, but upload nothing")
	flags.BoolVarP(&uploadWatch, "watch", "w", false, "upload again whenever a dependency changes")
	rootCmd.AddCommand(uploadCmd)
}

func runUpload(cmd *cobra.Command, args []string) error {
	inputs, err := expandManifestArgs(args)
	if err != nil {
		return err
	}
	s, err := loadServices(cmd)
	if err != nil {
		return err
	}
	if uploadVerify || !uploadDryRun {
		if err := s.requireRemote(); err != nil {
			return err
		}
	}

	if !uploadWatch {
		_, err := uploadOnce(cmd.Context(), cmd, s, inputs)
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return watchAndUpload(ctx, cmd, s, inputs)
}

// uploadOnce resolves, verifies and uploads once. The resolved entries are
// returned even when the upload fails.
func uploadOnce(ctx context.Context, cmd *cobra.Command, s *Services, inputs []domain.Path) ([]domain.ResolvedEntry, error) {
	defer logger.Timed("upload run")()

	var verifyWith driven.RemoteService
	if uploadVerify {
		verifyWith = s.Remote
	}

	entries, err := s.Resolver.CollectMetas(ctx, inputs, verifyWith)
	if err != nil {
		return nil, err
	}

	p := newPainter(cmd.OutOrStdout())
	if uploadDryRun {
		cmd.Printf("%s\n", p.title(fmt.Sprintf("Would upload %d targets:", len(entries))))
		for _, e := range entries {
			cmd.Printf("- %s %s\n", e.Location, p.muted("("+describeTarget(e.Target)+")"))
		}
		return entries, nil
	}

	report, err := s.Uploader.UploadAll(ctx, entries)
	printReport(cmd, p, report)
	if err != nil {
		return entries, err
	}
	cmd.Println(p.success(fmt.Sprintf("Uploaded %d targets.", len(report.Results))))
	return entries, nil
}

// watchAndUpload uploads, then waits for any dependency to change and
// uploads again, until ctx is cancelled. Failed runs are reported and the
// manifests stay watched.
func watchAndUpload(ctx context.Context, cmd *cobra.Command, s *Services, inputs []domain.Path) error {
	if s.Watcher == nil {
		return fmt.Errorf("%w: file watcher", domain.ErrNotConfigured)
	}
	p := newPainter(cmd.OutOrStdout())

	for {
		entries, err := uploadOnce(ctx, cmd, s, inputs)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			cmd.PrintErrln(p.failure("Error: " + err.Error()))
		}

		watched := watchList(ctx, s.Resolver, inputs, entries)
		cmd.Println(p.muted(fmt.Sprintf("Watching %d files, press Ctrl+C to stop.", len(watched))))

		changed, err := s.Watcher.WaitForChange(ctx, watched)
		if err != nil {
			if errors.Is(err, context.Canceled) || ctx.Err() != nil {
				return nil
			}
			return err
		}
		cmd.Printf("\n%s changed\n", changed)
	}
}

// watchList returns the files a run depends on. When resolution failed the
// input manifests are watched so that fixing them triggers a new run.
func watchList(ctx context.Context, resolver driving.ManifestResolver, inputs []domain.Path, entries []domain.ResolvedEntry) []domain.Path {
	set := domain.NewPathSet(inputs...)
	if entries != nil {
		deps, err := resolver.Dependencies(ctx, entries)
		if err != nil {
			logger.Warn("cannot list dependencies: %v", err)
		} else {
			set.Union(deps)
		}
	}
	return set.Sorted()
}

func printReport(cmd *cobra.Command, p painter, report *driving.UploadReport) {
	if report == nil {
		return
	}
	logger.Debug("Run %s finished with %d results", report.RunID, len(report.Results))
	for _, r := range report.Results {
		cmd.Printf("%s %s %s\n", p.success("uploaded"), r.Location, p.muted("("+string(r.Tag)+")"))
	}
}

// describeTarget names a target by its type and remote id.
func describeTarget(t domain.Target) string {
	switch t := t.(type) {
	case *domain.SectionMeta:
		return fmt.Sprintf("section %d", t.Section)
	case domain.ModuleMeta:
		return fmt.Sprintf("mod_%s %d", t.Tag(), t.Base().CMID)
	default:
		return string(t.Tag())
	}
}
