// SPDX-License-Identifier: MPL-2.0

package workspace

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

type (
	// LookPathFunc is the signature of exec.LookPath, injectable for tests.
	LookPathFunc func(file string) (string, error)

	// ExecCommandFunc is the function signature for creating exec.Cmd,
	// injectable for tests.
	ExecCommandFunc func(ctx context.Context, name string, arg ...string) *exec.Cmd

	// InitializerOption configures an Initializer.
	InitializerOption func(*Initializer)

	// Initializer creates and git-initializes workspace directories.
	Initializer struct {
		lookPath    LookPathFunc
		execCommand ExecCommandFunc
	}
)

// WithLookPath sets a custom binary resolver for testing.
func WithLookPath(fn LookPathFunc) InitializerOption {
	return func(i *Initializer) {
		i.lookPath = fn
	}
}

// WithExecCommand sets a custom exec command function for testing.
func WithExecCommand(fn ExecCommandFunc) InitializerOption {
	return func(i *Initializer) {
		i.execCommand = fn
	}
}

// New creates an Initializer wired to the real system.
func New(opts ...InitializerOption) *Initializer {
	i := &Initializer{
		lookPath:    exec.LookPath,
		execCommand: exec.CommandContext,
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// GitAvailable reports whether a git client can be resolved.
func (i *Initializer) GitAvailable() bool {
	path, err := i.lookPath("git")
	return err == nil && path != ""
}

// EnsureDir creates the workspace directory tree if missing. Existing
// directories are left untouched.
func (i *Initializer) EnsureDir(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create workspace directory %s: %w", dir, err)
	}
	return nil
}

// Initialized reports whether dir already carries git metadata.
func (i *Initializer) Initialized(dir string) bool {
	info, err := os.Stat(filepath.Join(dir, ".git"))
	return err == nil && info.IsDir()
}

// Init initializes git metadata in dir unless it is already initialized.
// Returns true when a new repository was created, false for the no-op case.
// Safe to call on every installer run: an initialized workspace is never
// reinitialized or reset.
func (i *Initializer) Init(ctx context.Context, dir string) (bool, error) {
	if i.Initialized(dir) {
		return false, nil
	}

	gitPath, err := i.lookPath("git")
	if err != nil {
		return false, fmt.Errorf("git not found: %w", err)
	}

	cmd := i.execCommand(ctx, gitPath, "init", dir)
	out, err := cmd.CombinedOutput()
	if err != nil {
		return false, fmt.Errorf("git init %s failed: %w: %s", dir, err, strings.TrimSpace(string(out)))
	}

	return true, nil
}
