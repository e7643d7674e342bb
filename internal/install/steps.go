// SPDX-License-Identifier: MPL-2.0

package install

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"iambic-setup/internal/config"
	"iambic-setup/internal/container"
	"iambic-setup/internal/issue"
	"iambic-setup/internal/launcher"
	"iambic-setup/internal/probe"
	"iambic-setup/internal/workspace"
)

type (
	// InstallerOption configures an Installer.
	InstallerOption func(*Installer)

	// Installer owns the bootstrap pipeline's shared state: the resolved
	// configuration and the engine detected by the first step, which the
	// launcher and prefetch steps reuse.
	Installer struct {
		cfg     config.Config
		prober  *probe.Prober
		ws      *workspace.Initializer
		pathEnv string
		pullOut io.Writer

		// engine is set by the engine step; later steps require it.
		engine container.Engine
	}
)

// WithProber overrides the capability prober (tests).
func WithProber(p *probe.Prober) InstallerOption {
	return func(i *Installer) {
		i.prober = p
	}
}

// WithWorkspaceInitializer overrides the workspace initializer (tests).
func WithWorkspaceInitializer(ws *workspace.Initializer) InstallerOption {
	return func(i *Installer) {
		i.ws = ws
	}
}

// WithPathEnv overrides the search path consulted by the bin dir step.
func WithPathEnv(pathEnv string) InstallerOption {
	return func(i *Installer) {
		i.pathEnv = pathEnv
	}
}

// WithPullOutput sets the writer for engine pull progress output.
func WithPullOutput(w io.Writer) InstallerOption {
	return func(i *Installer) {
		i.pullOut = w
	}
}

// NewInstaller creates an Installer for the given configuration.
func NewInstaller(cfg config.Config, opts ...InstallerOption) *Installer {
	i := &Installer{
		cfg:     cfg,
		prober:  probe.New(),
		ws:      workspace.New(),
		pathEnv: os.Getenv("PATH"),
		pullOut: io.Discard,
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// Steps returns the pipeline steps in execution order. The engine step
// comes first so a missing engine halts the run before any filesystem
// artifact is created.
func (i *Installer) Steps() []Step {
	return []Step{
		&engineStep{i},
		&gitStep{i},
		&binDirStep{i},
		&workspaceStep{i},
		&launcherStep{i},
		&prefetchStep{i},
	}
}

// --- Capability Prober ---

type engineStep struct{ i *Installer }

func (s *engineStep) Name() string { return "container engine" }

func (s *engineStep) Run(ctx context.Context) Result {
	engine, res := s.i.prober.Engine(ctx)

	switch res.Status {
	case probe.StatusWorking:
		s.i.engine = engine
		return ok("found %s", res.Detail)

	case probe.StatusNotWorking:
		engineName := string(container.EngineTypeDocker)
		if engine != nil {
			engineName = engine.Name()
		}
		return fatal(issue.EngineNotRunningId, issue.NewErrorContext().
			WithOperation("probe container engine").
			WithResource(engineName).
			WithSuggestion(startEngineCommand(engineName)).
			Wrap(fmt.Errorf("%s", res.Detail)).
			BuildError())

	default:
		return fatal(issue.EngineNotFoundId, issue.NewErrorContext().
			WithOperation("probe container engine").
			WithSuggestion("Install Docker: https://docs.docker.com/get-docker/").
			WithSuggestion("Or install Podman: https://podman.io/docs/installation").
			Wrap(fmt.Errorf("%s", res.Detail)).
			BuildError())
	}
}

// startEngineCommand names the exact command that brings the engine up.
func startEngineCommand(engineName string) string {
	if engineName == string(container.EngineTypePodman) {
		return "Start the Podman service: podman machine start"
	}
	return "Start the Docker daemon: sudo systemctl start docker (or launch Docker Desktop)"
}

type gitStep struct{ i *Installer }

func (s *gitStep) Name() string { return "git" }

func (s *gitStep) Run(ctx context.Context) Result {
	res := s.i.prober.Git(ctx)
	if res.Status == probe.StatusWorking {
		return ok("found git at %s", res.Detail)
	}
	return warn(issue.GitNotFoundId, "git is %s (%s); the templates workspace will be left unversioned", res.Status, res.Detail)
}

// --- Filesystem Provisioner ---

type binDirStep struct{ i *Installer }

func (s *binDirStep) Name() string { return "launcher directory" }

func (s *binDirStep) Run(context.Context) Result {
	binDir := s.i.cfg.BinDir

	if err := os.MkdirAll(binDir, 0o755); err != nil {
		return fatal(0, issue.NewErrorContext().
			WithOperation("create launcher directory").
			WithResource(binDir).
			WithSuggestion("Check ownership and permissions of the parent directory").
			Wrap(err).
			BuildError())
	}

	if !onSearchPath(binDir, s.i.pathEnv) {
		return warn(issue.BinDirNotOnPathId,
			`%s is not on your PATH; add this line to your shell profile: export PATH="%s:$PATH"`,
			binDir, binDir)
	}

	return ok("launcher directory %s ready", binDir)
}

// onSearchPath reports whether dir appears in the given PATH value.
func onSearchPath(dir, pathEnv string) bool {
	cleaned := filepath.Clean(dir)
	for _, entry := range filepath.SplitList(pathEnv) {
		if entry != "" && filepath.Clean(entry) == cleaned {
			return true
		}
	}
	return false
}

// --- Workspace Initializer ---

type workspaceStep struct{ i *Installer }

func (s *workspaceStep) Name() string { return "workspace" }

func (s *workspaceStep) Run(ctx context.Context) Result {
	dir := s.i.cfg.WorkspaceDir

	if err := s.i.ws.EnsureDir(dir); err != nil {
		return fatal(0, issue.NewErrorContext().
			WithOperation("create workspace").
			WithResource(dir).
			WithSuggestion("Check ownership and permissions of the parent directory").
			WithSuggestion("Or point "+config.EnvRepoDir+" at a writable location").
			Wrap(err).
			BuildError())
	}

	// Degrade gracefully without git: the directory exists and is usable,
	// it just is not versioned until git is installed and install is rerun.
	if !s.i.ws.GitAvailable() {
		return warn(issue.GitNotFoundId, "workspace %s created but not git-initialized (git unavailable)", dir)
	}

	created, err := s.i.ws.Init(ctx, dir)
	if err != nil {
		return warn(issue.GitNotFoundId, "workspace %s created but git init failed: %v", dir, err)
	}
	if created {
		return ok("initialized workspace %s", dir)
	}
	return ok("workspace %s already initialized", dir)
}

// --- Launcher Materializer ---

type launcherStep struct{ i *Installer }

func (s *launcherStep) Name() string { return "launcher" }

func (s *launcherStep) Run(context.Context) Result {
	script, err := launcher.Render(s.i.engine.Name(), s.i.cfg.Image())
	if err != nil {
		return fatal(0, issue.NewErrorContext().
			WithOperation("render launcher").
			Wrap(err).
			BuildError())
	}

	path := s.i.cfg.LauncherPath()
	if err := launcher.Install(path, script); err != nil {
		return fatal(0, issue.NewErrorContext().
			WithOperation("write launcher").
			WithResource(path).
			WithSuggestion("Check ownership and permissions of " + s.i.cfg.BinDir).
			Wrap(err).
			BuildError())
	}

	return ok("installed launcher %s", path)
}

type prefetchStep struct{ i *Installer }

func (s *prefetchStep) Name() string { return "image prefetch" }

func (s *prefetchStep) Run(ctx context.Context) Result {
	image := s.i.cfg.Image()
	if err := launcher.Prefetch(ctx, s.i.engine, image, s.i.pullOut); err != nil {
		return warn(issue.ImagePullFailedId,
			"prefetch of %s failed (%v); the engine will pull it on first use", image, err)
	}
	return ok("prefetched %s", image)
}
