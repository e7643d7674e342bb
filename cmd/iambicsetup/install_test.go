// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"iambic-setup/internal/config"
	"iambic-setup/internal/container"
	"iambic-setup/internal/install"
	"iambic-setup/internal/probe"
	"iambic-setup/internal/workspace"
)

// fakeEngine implements container.Engine for CLI-level tests.
type fakeEngine struct {
	name    string
	pingErr error
	pullErr error
}

func (f *fakeEngine) Name() string                            { return f.name }
func (f *fakeEngine) BinaryPath() string                      { return "/usr/bin/" + f.name }
func (f *fakeEngine) Available() bool                         { return true }
func (f *fakeEngine) Ping(context.Context) error              { return f.pingErr }
func (f *fakeEngine) Version(context.Context) (string, error) { return "28.5.1", nil }
func (f *fakeEngine) Pull(context.Context, string, io.Writer, io.Writer) error {
	return f.pullErr
}

func fakeProber(engine container.Engine, detectErr error, gitPath string) *probe.Prober {
	return &probe.Prober{
		DetectEngine: func() (container.Engine, error) { return engine, detectErr },
		LookPath: func(string) (string, error) {
			if gitPath == "" {
				return "", exec.ErrNotFound
			}
			return gitPath, nil
		},
		Run: func(context.Context, string, ...string) error { return nil },
	}
}

func gitlessWorkspace() *workspace.Initializer {
	return workspace.New(
		workspace.WithLookPath(func(string) (string, error) { return "", exec.ErrNotFound }),
	)
}

// newTestParams wires installParams against a temp HOME and fully faked
// installer dependencies.
func newTestParams(t *testing.T, opts ...install.InstallerOption) (installParams, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()

	home := t.TempDir()
	t.Setenv("HOME", home)

	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	p := installParams{
		stdout: stdout,
		stderr: stderr,
		newInstaller: func(cfg config.Config) *install.Installer {
			return install.NewInstaller(cfg, opts...)
		},
	}
	return p, stdout, stderr
}

func TestRunInstall_Success(t *testing.T) {
	p, stdout, _ := newTestParams(t,
		install.WithProber(fakeProber(&fakeEngine{name: "docker"}, nil, "")),
		install.WithWorkspaceInitializer(gitlessWorkspace()),
		install.WithPathEnv(""),
	)

	if err := runInstall(context.Background(), p); err != nil {
		t.Fatalf("runInstall() error: %v", err)
	}

	out := stdout.String()
	if !strings.Contains(out, "iambic is ready.") {
		t.Errorf("summary missing success line:\n%s", out)
	}

	launcher := filepath.Join(os.Getenv("HOME"), "bin", config.LauncherName)
	if _, err := os.Stat(launcher); err != nil {
		t.Errorf("launcher missing at default location: %v", err)
	}
}

func TestRunInstall_SummaryListsWarnings(t *testing.T) {
	// No git and bin dir off PATH: the run succeeds with advisory output.
	p, stdout, _ := newTestParams(t,
		install.WithProber(fakeProber(&fakeEngine{name: "docker"}, nil, "")),
		install.WithWorkspaceInitializer(gitlessWorkspace()),
		install.WithPathEnv("/usr/bin"),
	)

	if err := runInstall(context.Background(), p); err != nil {
		t.Fatalf("runInstall() error: %v", err)
	}

	out := stdout.String()
	if !strings.Contains(out, "warning(s):") {
		t.Errorf("summary should list accumulated warnings:\n%s", out)
	}
	if !strings.Contains(out, "PATH") {
		t.Errorf("summary should surface the PATH warning:\n%s", out)
	}
}

func TestRunInstall_EngineAbsentExitsNonZero(t *testing.T) {
	detectErr := &container.ErrEngineNotAvailable{Engine: "any", Reason: "nothing installed"}
	p, _, stderr := newTestParams(t,
		install.WithProber(fakeProber(nil, detectErr, "")),
	)

	err := runInstall(context.Background(), p)
	if err == nil {
		t.Fatal("runInstall() should fail without a container engine")
	}

	var exitErr *ExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("error type = %T, want *ExitError", err)
	}
	if exitErr.Code != 1 {
		t.Errorf("exit code = %d, want 1", exitErr.Code)
	}

	var fatalErr *install.FatalError
	if !errors.As(err, &fatalErr) {
		t.Error("ExitError should wrap the pipeline's FatalError")
	}

	if !strings.Contains(stderr.String(), "Install failed") {
		t.Errorf("stderr missing failure banner:\n%s", stderr.String())
	}
}

func TestRunInstall_FlagOverrides(t *testing.T) {
	p, _, _ := newTestParams(t,
		install.WithProber(fakeProber(&fakeEngine{name: "docker"}, nil, "")),
		install.WithWorkspaceInitializer(gitlessWorkspace()),
		install.WithPathEnv(""),
	)

	root := t.TempDir()
	p.binDir = filepath.Join(root, "custom-bin")
	p.workspaceDir = filepath.Join(root, "custom-ws")
	p.tag = "v0.11.0"

	if err := runInstall(context.Background(), p); err != nil {
		t.Fatalf("runInstall() error: %v", err)
	}

	launcher := filepath.Join(p.binDir, config.LauncherName)
	content, err := os.ReadFile(launcher)
	if err != nil {
		t.Fatalf("launcher missing in custom bin dir: %v", err)
	}
	if !strings.Contains(string(content), config.RegistryPath+":v0.11.0") {
		t.Errorf("launcher should pin the flag-selected tag:\n%s", content)
	}
	if _, err := os.Stat(p.workspaceDir); err != nil {
		t.Errorf("custom workspace missing: %v", err)
	}
}

func TestRunInstall_WorkspaceEnvOverride(t *testing.T) {
	p, _, _ := newTestParams(t,
		install.WithProber(fakeProber(&fakeEngine{name: "docker"}, nil, "")),
		install.WithWorkspaceInitializer(gitlessWorkspace()),
		install.WithPathEnv(""),
	)

	ws := filepath.Join(t.TempDir(), "ws")
	t.Setenv(config.EnvRepoDir, ws)

	if err := runInstall(context.Background(), p); err != nil {
		t.Fatalf("runInstall() error: %v", err)
	}

	if info, err := os.Stat(ws); err != nil || !info.IsDir() {
		t.Errorf("workspace missing at %s location: %v", config.EnvRepoDir, err)
	}
	defaultWs := filepath.Join(os.Getenv("HOME"), "iambic-templates")
	if _, err := os.Stat(defaultWs); !os.IsNotExist(err) {
		t.Error("default workspace must not be created when the env override is set")
	}
}

func TestRunInstall_InvalidTagExitsWithConfigError(t *testing.T) {
	p, _, stderr := newTestParams(t)
	p.tag = "has space"

	err := runInstall(context.Background(), p)
	if err == nil {
		t.Fatal("runInstall() should reject an invalid tag")
	}

	var exitErr *ExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("error type = %T, want *ExitError", err)
	}
	if exitErr.Code != 2 {
		t.Errorf("exit code = %d, want 2 for configuration errors", exitErr.Code)
	}
	if stderr.Len() == 0 {
		t.Error("configuration errors should be reported on stderr")
	}
}
