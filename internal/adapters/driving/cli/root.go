// Package cli implements the mdl command line.
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/mdl/internal/core/domain"
	"github.com/custodia-labs/mdl/internal/core/ports/driven"
	"github.com/custodia-labs/mdl/internal/core/ports/driving"
	"github.com/custodia-labs/mdl/internal/logger"
)

// Environment variables read when the matching flag is not given.
const (
	EnvBaseURL     = "MOODLE_BASE_URL"
	EnvToken       = "MOODLE_TOKEN"
	EnvTypstRoot   = "TYPST_ROOT"
	EnvTypstBinary = "TYPST_BIN"
)

// Config file keys.
const (
	KeyBaseURL           = "moodle.base_url"
	KeyToken             = "moodle.token"
	KeyRequestsPerSecond = "moodle.requests_per_second"
	KeyTimeoutSeconds    = "moodle.timeout_seconds"
	KeyTypstRoot         = "typst.root"
	KeyTypstBinary       = "typst.binary"
)

// Settings are the resolved connection settings for one invocation.
type Settings struct {
	BaseURL           string
	Token             string
	TypstRoot         string
	TypstBinary       string
	RequestsPerSecond float64
	Timeout           time.Duration
}

// Services holds the application services the commands drive.
// Remote, Uploader and Courses are nil when no Moodle site is configured;
// RemoteErr then says why.
type Services struct {
	Resolver  driving.ManifestResolver
	Uploader  driving.ModuleUploader
	Courses   driving.CourseBrowser
	Remote    driven.RemoteService
	Watcher   driven.FileWatcher
	RemoteErr error
}

// ServiceFactory builds the services from resolved settings.
type ServiceFactory func(Settings) (*Services, error)

var (
	version = "dev"

	verbose     bool
	flagBaseURL string
	flagToken   string
	flagRoot    string

	configStore driven.ConfigStore
	newServices ServiceFactory
	services    *Services
)

var rootCmd = &cobra.Command{
	Use:   "mdl",
	Short: "Upload course content to Moodle",
	Long: `mdl keeps Moodle activities and sections in sync with local files.

Manifests (YAML, Markdown front matter or Typst) describe which module a
file belongs to. Upload resolves them, checks them against the course and
replaces the remote content.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.BoolVarP(&verbose, "verbose", "v", false, "print debug output to stderr")
	flags.StringVar(&flagBaseURL, "base-url", "", "Moodle site URL (env "+EnvBaseURL+")")
	flags.StringVar(&flagToken, "token", "", "web service token (env "+EnvToken+")")
	flags.StringVar(&flagRoot, "typst-root", "", "Typst project root (env "+EnvTypstRoot+")")
}

// SetVersion sets the version printed by "mdl version".
func SetVersion(v string) {
	version = v
}

// Execute runs the root command. store supplies config file values and
// build creates the services on first use.
func Execute(ctx context.Context, store driven.ConfigStore, build ServiceFactory) error {
	configStore = store
	newServices = build
	rootCmd.SetOut(os.Stdout)
	return rootCmd.ExecuteContext(ctx)
}

// loadServices returns the services, building them on first use.
func loadServices(cmd *cobra.Command) (*Services, error) {
	if services != nil {
		return services, nil
	}
	if newServices == nil {
		return nil, errors.New("services not configured")
	}
	s, err := newServices(resolveSettings(cmd))
	if err != nil {
		return nil, err
	}
	services = s
	return services, nil
}

// requireRemote fails when no Moodle site is configured.
func (s *Services) requireRemote() error {
	if s.Remote != nil {
		return nil
	}
	if s.RemoteErr != nil {
		return s.RemoteErr
	}
	return fmt.Errorf("%w: Moodle connection", domain.ErrNotConfigured)
}

// resolveSettings applies flag > environment > config file precedence.
// The .env file has already been merged into the environment.
func resolveSettings(cmd *cobra.Command) Settings {
	s := Settings{
		BaseURL:     setting(cmd, "base-url", EnvBaseURL, KeyBaseURL),
		Token:       setting(cmd, "token", EnvToken, KeyToken),
		TypstRoot:   setting(cmd, "typst-root", EnvTypstRoot, KeyTypstRoot),
		TypstBinary: setting(cmd, "", EnvTypstBinary, KeyTypstBinary),
	}
	if configStore != nil {
		s.RequestsPerSecond = float64(configStore.GetInt(KeyRequestsPerSecond))
		if secs := configStore.GetInt(KeyTimeoutSeconds); secs > 0 {
			s.Timeout = time.Duration(secs) * time.Second
		}
	}
	return s
}

func setting(cmd *cobra.Command, flagName, env, key string) string {
	if flagName != "" {
		if f := cmd.Root().PersistentFlags().Lookup(flagName); f != nil && f.Changed {
			return f.Value.String()
		}
	}
	if v := os.Getenv(env); v != "" {
		return v
	}
	if configStore != nil {
		return configStore.GetString(key)
	}
	return ""
}

// parseID parses a positive numeric id argument.
func parseID(name, arg string) (int, error) {
	id, err := strconv.Atoi(arg)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %s must be a positive number, got %q", domain.ErrInvalidInput, name, arg)
	}
	return id, nil
}
