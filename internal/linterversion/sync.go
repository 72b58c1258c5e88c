package linterversion

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/templatekit/versionsync/internal/runner"
	"github.com/templatekit/versionsync/internal/versionfile"
)

// DefaultPackage is the linter kept in sync when none is configured.
const DefaultPackage = "ruff"

// DefaultLockCommand regenerates uv.lock without upgrading other packages.
var DefaultLockCommand = []string{"uv", "lock", "--no-upgrade"}

// Options configures a Sync run.
type Options struct {
	// ListingPath is the generated requirements file holding the resolved version.
	ListingPath string
	// ManifestPath is the pyproject.toml declaring the pin.
	ManifestPath string
	// Package is the dependency name; defaults to DefaultPackage.
	Package string
	// ProjectRoot is the working directory for the lock command.
	ProjectRoot string
	// LockCommand is run after the manifest changes; defaults to DefaultLockCommand.
	// Set SkipLock to disable it.
	LockCommand []string
	SkipLock    bool
	// Runner executes the lock command; defaults to an ExecRunner.
	Runner runner.Runner
	// DryRun reports drift without rewriting the manifest or locking.
	DryRun bool
	// Logger receives progress messages. Nil discards them.
	Logger *log.Logger
}

// ReplacePin swaps every literal `<pkg>==<old>` in text for `<pkg>==<new>`.
func ReplacePin(text, pkg, oldVersion, newVersion string) (string, error) {
	oldPin := pkg + pinSeparator + oldVersion
	if !strings.Contains(text, oldPin) {
		return "", fmt.Errorf("%w: %s", versionfile.ErrNotFound, oldPin)
	}
	return strings.ReplaceAll(text, oldPin, pkg+pinSeparator+newVersion), nil
}

// Sync brings the manifest pin in line with the requirements listing. After
// rewriting the manifest it runs the lock command once; the lock step is
// best-effort and its failure never fails the run.
func Sync(ctx context.Context, opts Options) (*versionfile.Result, error) {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	pkg := opts.Package
	if pkg == "" {
		pkg = DefaultPackage
	}

	source, err := ReadLockedVersion(opts.ListingPath, pkg)
	if err != nil {
		return nil, fmt.Errorf("reading %s requirements version: %w", pkg, err)
	}

	raw, err := versionfile.Read(opts.ManifestPath)
	if err != nil {
		return nil, fmt.Errorf("reading %s manifest: %w", pkg, err)
	}
	declared, err := parsePinnedVersion(raw, opts.ManifestPath, pkg)
	if err != nil {
		return nil, err
	}

	result := &versionfile.Result{Source: source, Declared: declared}
	logger.Debug("Compared linter versions", "package", pkg, "requirements", source, "manifest", declared)

	if result.InSync() {
		logger.Info("Linter version already in sync", "package", pkg, "version", source)
		return result, nil
	}

	updated, err := ReplacePin(string(raw), pkg, declared, source)
	if err != nil {
		return nil, fmt.Errorf("updating %s: %w", opts.ManifestPath, err)
	}

	if opts.DryRun {
		logger.Warn("Linter version out of sync", "package", pkg, "manifest", opts.ManifestPath, "from", declared, "to", source)
		return result, nil
	}

	if err := versionfile.Write(opts.ManifestPath, []byte(updated)); err != nil {
		return nil, err
	}
	result.Written = true
	logger.Info("Updated linter version", "package", pkg, "manifest", opts.ManifestPath, "from", declared, "to", source, "change", result.Direction())

	if !opts.SkipLock {
		regenerateLock(ctx, opts, logger)
	}

	return result, nil
}

// regenerateLock runs the lock command and only logs its outcome.
func regenerateLock(ctx context.Context, opts Options, logger *log.Logger) {
	argv := opts.LockCommand
	if len(argv) == 0 {
		argv = DefaultLockCommand
	}
	r := opts.Runner
	if r == nil {
		r = &runner.ExecRunner{}
	}

	logger.Debug("Regenerating lock file", "command", strings.Join(argv, " "), "dir", opts.ProjectRoot)
	out, err := r.Run(ctx, opts.ProjectRoot, argv)
	switch {
	case err != nil:
		logger.Warn("Lock regeneration skipped", "command", strings.Join(argv, " "), "err", err)
	case out.ExitCode != 0:
		logger.Warn("Lock regeneration failed", "command", strings.Join(argv, " "), "exit", out.ExitCode)
	}
}
