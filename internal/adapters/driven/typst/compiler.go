package typst

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/custodia-labs/mdl/internal/core/domain"
	"github.com/custodia-labs/mdl/internal/core/ports/driven"
	"github.com/custodia-labs/mdl/internal/logger"
)

// DefaultBinary is the typst executable looked up on PATH.
const DefaultBinary = "typst"

// ErrCompile indicates the typst process failed.
var ErrCompile = errors.New("typst failed")

// Ensure Compiler implements the interface.
var _ driven.DocumentCompiler = (*Compiler)(nil)

// Runner runs a command and returns its standard output and error.
type Runner func(ctx context.Context, name string, args ...string) (stdout, stderr []byte, err error)

// Compiler runs the typst CLI.
type Compiler struct {
	binary string
	root   string
	run    Runner
}

// Option configures a Compiler.
type Option func(*Compiler)

// WithBinary sets the typst executable.
func WithBinary(binary string) Option {
	return func(c *Compiler) {
		if binary != "" {
			c.binary = binary
		}
	}
}

// WithRoot sets the project root passed as --root, which bounds the files a
// document may read.
func WithRoot(root string) Option {
	return func(c *Compiler) { c.root = root }
}

// WithRunner replaces process execution, for tests.
func WithRunner(run Runner) Option {
	return func(c *Compiler) { c.run = run }
}

// NewCompiler creates a Compiler.
func NewCompiler(opts ...Option) *Compiler {
	c := &Compiler{binary: DefaultBinary, run: execRunner}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Compile renders source to an HTML document.
func (c *Compiler) Compile(ctx context.Context, source domain.Path) (string, error) {
	args := []string{"compile", "--features", "html", "--format", "html"}
	args = append(args, c.rootArgs()...)
	args = append(args, source.String(), "-")

	out, err := c.exec(ctx, args)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// QueryMetadata returns the values of every metadata element labelled label.
func (c *Compiler) QueryMetadata(ctx context.Context, source domain.Path, label string) ([]any, error) {
	args := []string{"query"}
	args = append(args, c.rootArgs()...)
	args = append(args, source.String(), "<"+label+">", "--field", "value")

	out, err := c.exec(ctx, args)
	if err != nil {
		return nil, err
	}

	dec := json.NewDecoder(bytes.NewReader(out))
	dec.UseNumber()
	var values []any
	if err := dec.Decode(&values); err != nil {
		return nil, fmt.Errorf("decode query output for <%s>: %w", label, err)
	}
	return values, nil
}

func (c *Compiler) rootArgs() []string {
	if c.root == "" {
		return nil
	}
	return []string{"--root", c.root}
}

func (c *Compiler) exec(ctx context.Context, args []string) ([]byte, error) {
	logger.Debug("Running %s %s", c.binary, strings.Join(args, " "))

	stdout, stderr, err := c.run(ctx, c.binary, args...)
	if err != nil {
		msg := strings.TrimSpace(string(stderr))
		if msg == "" {
			msg = err.Error()
		}
		return nil, fmt.Errorf("%w: %s %s: %s", ErrCompile, c.binary, args[0], msg)
	}
	return stdout, nil
}

func execRunner(ctx context.Context, name string, args ...string) ([]byte, []byte, error) {
	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	return stdout.Bytes(), stderr.Bytes(), err
}
