package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/mdl/internal/core/domain"
)

// configKeys lists the settable keys and whether they hold integers.
var configKeys = map[string]bool{
	KeyBaseURL:           false,
	KeyToken:             false,
	KeyRequestsPerSecond: true,
	KeyTimeoutSeconds:    true,
	KeyTypstRoot:         false,
	KeyTypstBinary:       false,
}

// passwordReader reads the token for set-token. Tests replace it.
var passwordReader = readPassword

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the configuration file",
	Long: `View and change the values stored in the configuration file
(~/.mdl/config.toml by default; MDL_CONFIG_DIR overrides the directory).

Flags and environment variables take precedence over the file.`,
	RunE: runConfigShow,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	Args:  cobra.NoArgs,
	RunE:  runConfigShow,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Long: `Set a configuration value. Known keys:
  moodle.base_url             Moodle site URL
  moodle.token                web service token (prefer set-token)
  moodle.requests_per_second  request rate limit
  moodle.timeout_seconds      HTTP timeout
  typst.root                  Typst project root
  typst.binary                Typst executable`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

var configSetTokenCmd = &cobra.Command{
	Use:   "set-token",
	Short: "Store the web service token without echoing it",
	Args:  cobra.NoArgs,
	RunE:  runConfigSetToken,
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configSetTokenCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	if configStore == nil {
		return errors.New("config store not configured")
	}

	p := newPainter(cmd.OutOrStdout())
	cmd.Println(p.title("Configuration") + " " + p.muted(configStore.Path()))

	keys := make([]string, 0, len(configKeys))
	for k := range configKeys {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		value, ok := configStore.Get(k)
		switch {
		case !ok:
			cmd.Printf("  %s = %s\n", k, p.muted("(not set)"))
		case k == KeyToken:
			cmd.Printf("  %s = %s\n", k, maskToken(fmt.Sprint(value)))
		default:
			cmd.Printf("  %s = %v\n", k, value)
		}
	}
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	if configStore == nil {
		return errors.New("config store not configured")
	}

	key, raw := args[0], args[1]
	isInt, known := configKeys[key]
	if !known {
		return fmt.Errorf("%w: unknown key %q", domain.ErrInvalidInput, key)
	}

	var value any = raw
	if isInt {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return fmt.Errorf("%w: %s must be a non-negative number, got %q", domain.ErrInvalidInput, key, raw)
		}
		value = n
	}

	if err := configStore.Set(key, value); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}
	if key == KeyToken {
		raw = maskToken(raw)
	}
	cmd.Printf("%s = %s\n", key, raw)
	return nil
}

func runConfigSetToken(cmd *cobra.Command, _ []string) error {
	if configStore == nil {
		return errors.New("config store not configured")
	}

	cmd.Print("Token: ")
	token := strings.TrimSpace(passwordReader(cmd.InOrStdin()))
	cmd.Println()
	if token == "" {
		return fmt.Errorf("%w: empty token", domain.ErrInvalidInput)
	}

	if err := configStore.Set(KeyToken, token); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}
	cmd.Printf("Token %s saved to %s\n", maskToken(token), configStore.Path())
	return nil
}

// readPassword reads a line without echo when in is a terminal.
func readPassword(in io.Reader) string {
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		password, err := term.ReadPassword(int(f.Fd()))
		if err == nil {
			return string(password)
		}
	}
	// Fallback to regular input
	reader := bufio.NewReader(in)
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

func maskToken(token string) string {
	if len(token) <= 8 {
		return "****"
	}
	return token[:4] + "..." + token[len(token)-4:]
}
