package cli

import (
	"bytes"
	"context"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/custodia-labs/mdl/internal/core/domain"
	"github.com/custodia-labs/mdl/internal/core/ports/driven"
	"github.com/custodia-labs/mdl/internal/core/ports/driving"
)

// --- Fakes for the driving ports ---

type fakeResolver struct {
	entries    []domain.ResolvedEntry
	deps       domain.PathSet
	err        error
	inputs     []domain.Path
	verifyWith driven.RemoteService
	calls      int
}

func (r *fakeResolver) CollectMetas(_ context.Context, inputs []domain.Path, verifyWith driven.RemoteService) ([]domain.ResolvedEntry, error) {
	r.calls++
	r.inputs = inputs
	r.verifyWith = verifyWith
	if r.err != nil {
		return nil, r.err
	}
	return r.entries, nil
}

func (r *fakeResolver) Dependencies(_ context.Context, _ []domain.ResolvedEntry) (domain.PathSet, error) {
	return r.deps, nil
}

type fakeUploader struct {
	report  *driving.UploadReport
	err     error
	entries []domain.ResolvedEntry
}

func (u *fakeUploader) UploadModule(_ context.Context, _ domain.Path, _ domain.Target) (any, error) {
	return "ok", nil
}

func (u *fakeUploader) UploadAll(_ context.Context, entries []domain.ResolvedEntry) (*driving.UploadReport, error) {
	u.entries = entries
	return u.report, u.err
}

type fakeCourses struct {
	courses  []domain.Course
	sections []domain.Section
	module   *domain.CourseModule
	err      error

	filter     domain.CourseFilter
	courseID   int
	cmid       int
	withCourse *int
}

func (c *fakeCourses) Courses(_ context.Context, filter domain.CourseFilter) ([]domain.Course, error) {
	c.filter = filter
	return c.courses, c.err
}

func (c *fakeCourses) Contents(_ context.Context, courseID int) ([]domain.Section, error) {
	c.courseID = courseID
	return c.sections, c.err
}

func (c *fakeCourses) Module(_ context.Context, cmid int, course *int) (*domain.CourseModule, error) {
	c.cmid = cmid
	c.withCourse = course
	return c.module, c.err
}

type fakeWatcher struct {
	watched [][]domain.Path
	changes []domain.Path
	cancel  context.CancelFunc
}

func (w *fakeWatcher) WaitForChange(ctx context.Context, paths []domain.Path) (domain.Path, error) {
	w.watched = append(w.watched, paths)
	if len(w.changes) == 0 {
		w.cancel()
		<-ctx.Done()
		return "", ctx.Err()
	}
	next := w.changes[0]
	w.changes = w.changes[1:]
	return next, nil
}

// remoteStub marks the remote as configured; the commands never call it
// directly.
type remoteStub struct {
	driven.RemoteService
}

// --- Helpers ---

// withServices installs s for the duration of the test and resets flags.
func withServices(t *testing.T, s *Services) {
	t.Helper()
	old := services
	services = s
	resetFlags(rootCmd)
	t.Cleanup(func() {
		services = old
		resetFlags(rootCmd)
	})
}

// resetFlags restores every flag of cmd and its subcommands to its default,
// since cobra keeps flag state between Execute calls.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

// execute runs the root command with args and returns its combined output.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	return executeContext(t, context.Background(), args...)
}

// executeContext runs the root command under ctx with fresh flags.
// Subcommands keep the context of their first run, so it is cleared too.
func executeContext(t *testing.T, ctx context.Context, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)
	clearContexts(rootCmd)

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	defer func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetIn(nil)
	}()

	err := rootCmd.ExecuteContext(ctx)
	return buf.String(), err
}

func clearContexts(cmd *cobra.Command) {
	cmd.SetContext(nil) //nolint:staticcheck // nil lets cobra hand down the parent context
	for _, c := range cmd.Commands() {
		clearContexts(c)
	}
}

func intPtr(i int) *int { return &i }
