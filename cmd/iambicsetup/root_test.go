// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"testing"

	"iambic-setup/internal/issue"
)

func TestGetVersionString(t *testing.T) {
	// Not parallel: subtests mutate package-level Version/Commit/BuildDate vars.

	t.Run("ldflags version takes priority", func(t *testing.T) {
		origVersion, origCommit, origBuildDate := Version, Commit, BuildDate
		t.Cleanup(func() {
			Version, Commit, BuildDate = origVersion, origCommit, origBuildDate
		})

		Version = "v1.2.3"
		Commit = "abc1234"
		BuildDate = "2026-06-15T10:00:00Z"

		got := getVersionString()
		want := "v1.2.3 (commit: abc1234, built: 2026-06-15T10:00:00Z)"
		if got != want {
			t.Errorf("getVersionString() = %q, want %q", got, want)
		}
	})

	t.Run("fallback to dev when no build info", func(t *testing.T) {
		origVersion, origCommit, origBuildDate := Version, Commit, BuildDate
		t.Cleanup(func() {
			Version, Commit, BuildDate = origVersion, origCommit, origBuildDate
		})

		Version = "dev"
		Commit = "unknown"
		BuildDate = "unknown"

		got := getVersionString()
		want := "dev (built from source)"
		if got != want {
			t.Errorf("getVersionString() = %q, want %q", got, want)
		}
	})
}

func TestFormatErrorForDisplay(t *testing.T) {
	t.Run("actionable error uses Format", func(t *testing.T) {
		err := issue.NewErrorContext().
			WithOperation("probe container engine").
			WithSuggestion("Install Docker").
			BuildError()

		got := formatErrorForDisplay(err, false)
		if got == err.Error() {
			t.Error("ActionableError display should include suggestions, not just the message")
		}
	})

	t.Run("plain error falls back to Error()", func(t *testing.T) {
		err := errors.New("plain failure")
		if got := formatErrorForDisplay(err, true); got != "plain failure" {
			t.Errorf("formatErrorForDisplay() = %q", got)
		}
	})
}

func TestExitError(t *testing.T) {
	wrapped := errors.New("halted")
	err := &ExitError{Code: 1, Err: wrapped}
	if err.Error() != "halted" {
		t.Errorf("Error() = %q", err.Error())
	}
	if !errors.Is(err, wrapped) {
		t.Error("ExitError should unwrap to the underlying error")
	}

	bare := &ExitError{Code: 3}
	if bare.Error() != "exit status 3" {
		t.Errorf("Error() = %q", bare.Error())
	}
}
