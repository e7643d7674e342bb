// SPDX-License-Identifier: MPL-2.0

package install

import (
	"context"
	"fmt"

	"iambic-setup/internal/issue"
)

// Status classifies a step outcome.
type Status int

const (
	// StatusOK means the step completed with nothing to report.
	StatusOK Status = iota
	// StatusWarn means the step completed but the user should act on
	// something; the pipeline continues.
	StatusWarn
	// StatusFatal halts the pipeline immediately.
	StatusFatal
)

// Result is the outcome of one pipeline step.
type Result struct {
	// Status is the tri-state classification.
	Status Status
	// Message is the human-readable detail (ok info or warning text).
	Message string
	// Err carries the fatal error; nil unless Status is StatusFatal.
	Err error
	// IssueID optionally points at a remediation page for warn/fatal.
	IssueID issue.Id
}

// Step is a single unit of the bootstrap pipeline.
type Step interface {
	// Name identifies the step in logs and the summary.
	Name() string
	// Run executes the step's side effects and classifies the outcome.
	Run(ctx context.Context) Result
}

// ok builds a StatusOK result with an informational message.
func ok(format string, args ...any) Result {
	return Result{Status: StatusOK, Message: fmt.Sprintf(format, args...)}
}

// warn builds a StatusWarn result with an optional remediation page.
func warn(id issue.Id, format string, args ...any) Result {
	return Result{Status: StatusWarn, Message: fmt.Sprintf(format, args...), IssueID: id}
}

// fatal builds a StatusFatal result carrying the error and remediation page.
func fatal(id issue.Id, err error) Result {
	return Result{Status: StatusFatal, Err: err, IssueID: id}
}
