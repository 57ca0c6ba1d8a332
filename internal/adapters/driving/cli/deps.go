package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var depsCmd = &cobra.Command{
	Use:   "deps <manifest>...",
	Short: "List the local files the manifests depend on",
	Long: `Resolves the manifests without contacting Moodle and prints every file
an upload would read: the manifests themselves, editor sources, their
attachments and module files. Useful as input for make or a file watcher.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runDeps,
}

func init() {
	rootCmd.AddCommand(depsCmd)
}

func runDeps(cmd *cobra.Command, args []string) error {
	inputs, err := expandManifestArgs(args)
	if err != nil {
		return err
	}
	s, err := loadServices(cmd)
	if err != nil {
		return err
	}

	entries, err := s.Resolver.CollectMetas(cmd.Context(), inputs, nil)
	if err != nil {
		return err
	}
	deps, err := s.Resolver.Dependencies(cmd.Context(), entries)
	if err != nil {
		return fmt.Errorf("failed to list dependencies: %w", err)
	}

	for _, p := range deps.Sorted() {
		cmd.Println(p)
	}
	return nil
}
