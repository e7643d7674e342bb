// SPDX-License-Identifier: MPL-2.0

package probe

import (
	"context"
	"errors"
	"fmt"
	"os/exec"

	"iambic-setup/internal/container"
)

// Status classifies the outcome of a capability probe.
type Status int

const (
	// StatusAbsent means the tool was not found on the system.
	StatusAbsent Status = iota
	// StatusNotWorking means the tool is installed but not operable
	// (e.g., engine binary present, daemon not running).
	StatusNotWorking
	// StatusWorking means the tool is present and operable.
	StatusWorking
)

// String returns the human-readable classification.
func (s Status) String() string {
	switch s {
	case StatusWorking:
		return "present and working"
	case StatusNotWorking:
		return "present but not working"
	default:
		return "absent"
	}
}

type (
	// LookPathFunc is the signature of exec.LookPath, injectable for tests.
	LookPathFunc func(file string) (string, error)

	// RunFunc spawns a command and reports only success or failure.
	// Injectable so probes never execute real tools in tests.
	RunFunc func(ctx context.Context, name string, arg ...string) error

	// Result is the outcome of probing one capability.
	Result struct {
		// Name identifies the capability ("container engine", "git").
		Name string
		// Required marks capabilities whose absence is fatal to the run.
		Required bool
		// Status is the tri-state classification.
		Status Status
		// Detail is a short human-readable elaboration (version, reason).
		Detail string
	}

	// Prober evaluates host capabilities. The zero value is not usable;
	// construct with New and override fields in tests as needed.
	Prober struct {
		// DetectEngine finds an available container engine.
		DetectEngine func() (container.Engine, error)
		// LookPath resolves a binary on the search path.
		LookPath LookPathFunc
		// Run spawns a probe command.
		Run RunFunc
	}
)

// New creates a Prober wired to the real system.
func New() *Prober {
	return &Prober{
		DetectEngine: func() (container.Engine, error) { return container.DetectEngine() },
		LookPath:     exec.LookPath,
		Run: func(ctx context.Context, name string, arg ...string) error {
			return exec.CommandContext(ctx, name, arg...).Run()
		},
	}
}

// Engine probes for an operable container engine. On success the detected
// engine is returned alongside the result so callers reuse it for the
// launcher and the image prefetch.
func (p *Prober) Engine(ctx context.Context) (container.Engine, Result) {
	res := Result{Name: "container engine", Required: true}

	engine, err := p.DetectEngine()
	if err != nil {
		var notAvail *container.ErrEngineNotAvailable
		if errors.As(err, &notAvail) {
			res.Status = StatusAbsent
			res.Detail = notAvail.Reason
		} else {
			res.Status = StatusNotWorking
			res.Detail = err.Error()
		}
		return nil, res
	}

	if err := engine.Ping(ctx); err != nil {
		res.Status = StatusNotWorking
		res.Detail = err.Error()
		return engine, res
	}

	res.Status = StatusWorking
	res.Detail = engine.Name()
	if version, err := engine.Version(ctx); err == nil {
		res.Detail = fmt.Sprintf("%s %s", engine.Name(), version)
	}
	return engine, res
}

// Git probes for a usable git client. Advisory: the caller decides what a
// non-working git means for the rest of the run.
func (p *Prober) Git(ctx context.Context) Result {
	res := Result{Name: "git", Required: false}

	path, err := p.LookPath("git")
	if err != nil {
		res.Status = StatusAbsent
		res.Detail = "git not found on PATH"
		return res
	}

	if err := p.Run(ctx, path, "version"); err != nil {
		res.Status = StatusNotWorking
		res.Detail = fmt.Sprintf("%s is present but 'git version' failed: %v", path, err)
		return res
	}

	res.Status = StatusWorking
	res.Detail = path
	return res
}

// All evaluates every capability and returns the results in probe order.
func (p *Prober) All(ctx context.Context) []Result {
	_, engineRes := p.Engine(ctx)
	return []Result{engineRes, p.Git(ctx)}
}
