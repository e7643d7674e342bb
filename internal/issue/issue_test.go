// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"strings"
	"testing"
)

func TestId_Constants(t *testing.T) {
	// Verify all IDs are unique and sequential
	ids := []Id{
		EngineNotFoundId,
		EngineNotRunningId,
		GitNotFoundId,
		BinDirNotOnPathId,
		ImagePullFailedId,
	}

	seen := make(map[Id]bool)
	for _, id := range ids {
		if seen[id] {
			t.Errorf("duplicate ID: %d", id)
		}
		seen[id] = true
	}

	// Verify IDs start at 1 (iota + 1)
	if EngineNotFoundId != 1 {
		t.Errorf("EngineNotFoundId = %d, want 1", EngineNotFoundId)
	}
}

func TestGet_AllIdsRegistered(t *testing.T) {
	for _, id := range []Id{EngineNotFoundId, EngineNotRunningId, GitNotFoundId, BinDirNotOnPathId, ImagePullFailedId} {
		iss := Get(id)
		if iss == nil {
			t.Fatalf("Get(%d) returned nil", id)
		}
		if iss.Id() != id {
			t.Errorf("issue.Id() = %d, want %d", iss.Id(), id)
		}
		if strings.TrimSpace(string(iss.MarkdownMsg())) == "" {
			t.Errorf("issue %d has empty markdown message", id)
		}
	}
}

func TestGet_UnknownId(t *testing.T) {
	if iss := Get(Id(9999)); iss != nil {
		t.Errorf("Get(9999) = %v, want nil", iss)
	}
}

func TestValues_ReturnsAllIssues(t *testing.T) {
	vals := Values()
	if len(vals) != len(issues) {
		t.Errorf("Values() returned %d issues, want %d", len(vals), len(issues))
	}
}

func TestIssue_RemediationNamesExactCommand(t *testing.T) {
	notRunning := Get(EngineNotRunningId)
	if !strings.Contains(string(notRunning.MarkdownMsg()), "systemctl start docker") {
		t.Error("EngineNotRunning remediation should name the exact command to run")
	}

	notOnPath := Get(BinDirNotOnPathId)
	if !strings.Contains(string(notOnPath.MarkdownMsg()), `export PATH="$HOME/bin:$PATH"`) {
		t.Error("BinDirNotOnPath remediation should contain the exact profile line")
	}
}

func TestIssue_Render(t *testing.T) {
	// Swap the renderer to avoid terminal detection in CI
	origRender := render
	render = func(in, _ string) (string, error) { return in, nil }
	defer func() { render = origRender }()

	out, err := Get(EngineNotFoundId).Render("dark")
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}
	if !strings.Contains(out, "No container engine found") {
		t.Errorf("rendered output missing headline: %q", out)
	}
	if !strings.Contains(out, "See also") {
		t.Errorf("rendered output missing external links section: %q", out)
	}
}
