// Command mdl uploads course content described by local manifests to Moodle.
package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"

	"github.com/custodia-labs/mdl/internal/adapters/driven/config/file"
	"github.com/custodia-labs/mdl/internal/adapters/driven/manifest"
	"github.com/custodia-labs/mdl/internal/adapters/driven/moodle"
	"github.com/custodia-labs/mdl/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/mdl/internal/adapters/driven/typst"
	"github.com/custodia-labs/mdl/internal/adapters/driven/watch"
	"github.com/custodia-labs/mdl/internal/adapters/driving/cli"
	"github.com/custodia-labs/mdl/internal/core/domain"
	"github.com/custodia-labs/mdl/internal/core/ports/driven"
	"github.com/custodia-labs/mdl/internal/core/services"
	"github.com/custodia-labs/mdl/internal/logger"
	"github.com/custodia-labs/mdl/internal/normalisers"
	"github.com/custodia-labs/mdl/internal/normalisers/html"
	"github.com/custodia-labs/mdl/internal/normalisers/markdown"
	"github.com/custodia-labs/mdl/internal/normalisers/plaintext"
	typstnorm "github.com/custodia-labs/mdl/internal/normalisers/typst"
)

// Set with -ldflags "-X main.version=...".
var version = "dev"

// EnvConfigDir overrides the configuration directory.
const EnvConfigDir = "MDL_CONFIG_DIR"

func main() {
	// .env never overrides variables that are already set
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "Warning: cannot load .env: %v\n", err)
	}

	cli.SetVersion(version)
	if err := cli.Execute(context.Background(), openConfigStore(), buildServices); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func openConfigStore() driven.ConfigStore {
	store, err := file.NewConfigStore(os.Getenv(EnvConfigDir))
	if err != nil {
		logger.Warn("config file unavailable, using defaults: %v", err)
		return memory.NewConfigStore()
	}
	return store
}

// buildServices wires adapters into services. A missing Moodle URL or
// token is not an error here; commands that need the site report it.
func buildServices(s cli.Settings) (*cli.Services, error) {
	compiler := typst.NewCompiler(typst.WithBinary(s.TypstBinary), typst.WithRoot(s.TypstRoot))
	svc := &cli.Services{
		Resolver: services.NewManifestResolver(manifest.NewReader(compiler), compiler),
		Watcher:  watch.New(0),
	}

	client, err := moodle.NewClient(moodle.Config{
		BaseURL:   s.BaseURL,
		Token:     s.Token,
		Timeout:   s.Timeout,
		RateLimit: moodle.RateLimitConfig{RequestsPerSecond: s.RequestsPerSecond},
	})
	if errors.Is(err, domain.ErrNotConfigured) {
		svc.RemoteErr = err
		return svc, nil
	}
	if err != nil {
		return nil, err
	}

	registry := normalisers.NewRegistry(
		html.New(),
		markdown.New(),
		plaintext.New(),
		typstnorm.New(compiler),
	)
	svc.Remote = client
	svc.Uploader = services.NewUploader(client, moodle.NewContentService(client), registry)
	svc.Courses = services.NewCourseBrowser(client)
	return svc, nil
}
