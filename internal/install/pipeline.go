// SPDX-License-Identifier: MPL-2.0

package install

import (
	"context"
	"io"

	"github.com/charmbracelet/log"

	"iambic-setup/internal/issue"
)

type (
	// Warning is an advisory condition accumulated during the run.
	Warning struct {
		// Step names the step that emitted the warning.
		Step string
		// Message is the advisory text.
		Message string
		// IssueID optionally points at a remediation page.
		IssueID issue.Id
	}

	// Summary collects what a completed (or halted) run produced.
	Summary struct {
		// Completed lists the steps that finished with ok or warn.
		Completed []string
		// Warnings holds every advisory condition, in emission order.
		Warnings []Warning
	}

	// FatalError halts the pipeline. It wraps the step's error and carries
	// the remediation page for the CLI layer to render.
	FatalError struct {
		// Step names the step that failed.
		Step string
		// Err is the underlying error (an issue.ActionableError in practice).
		Err error
		// IssueID points at the remediation page, if any.
		IssueID issue.Id
	}

	// Pipeline runs an ordered list of steps with halt-on-fatal semantics.
	Pipeline struct {
		steps  []Step
		logger *log.Logger
	}
)

// Error implements the error interface.
func (e *FatalError) Error() string { return e.Err.Error() }

// Unwrap returns the step's error for errors.Is/As chains.
func (e *FatalError) Unwrap() error { return e.Err }

// NewPipeline creates a Pipeline. A nil logger discards step output.
func NewPipeline(logger *log.Logger, steps ...Step) *Pipeline {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Pipeline{steps: steps, logger: logger}
}

// Run executes the steps in order. The first fatal result halts the run
// and is returned as a *FatalError; warnings accumulate in the Summary.
// The Summary is returned in both cases so callers can report what had
// already happened before a halt.
func (p *Pipeline) Run(ctx context.Context) (*Summary, error) {
	summary := &Summary{}

	for _, step := range p.steps {
		res := step.Run(ctx)

		switch res.Status {
		case StatusFatal:
			p.logger.Error("install halted", "step", step.Name(), "error", res.Err)
			return summary, &FatalError{Step: step.Name(), Err: res.Err, IssueID: res.IssueID}

		case StatusWarn:
			p.logger.Warn(res.Message, "step", step.Name())
			summary.Warnings = append(summary.Warnings, Warning{
				Step:    step.Name(),
				Message: res.Message,
				IssueID: res.IssueID,
			})
			summary.Completed = append(summary.Completed, step.Name())

		default:
			if res.Message != "" {
				p.logger.Info(res.Message, "step", step.Name())
			}
			summary.Completed = append(summary.Completed, step.Name())
		}
	}

	return summary, nil
}
