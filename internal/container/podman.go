// SPDX-License-Identifier: MPL-2.0

package container

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// podman machine on macOS can reject the first connection right after
// start while the API socket comes up; one short retry absorbs that.
const (
	podmanPingAttempts = 2
	podmanPingBackoff  = 200 * time.Millisecond
)

// PodmanEngine implements the Engine interface using the Podman CLI.
// It embeds BaseCLIEngine for common CLI operations.
type PodmanEngine struct {
	*BaseCLIEngine
}

// NewPodmanEngine creates a new Podman engine.
func NewPodmanEngine(opts ...BaseCLIEngineOption) *PodmanEngine {
	path, _ := exec.LookPath("podman")
	return &PodmanEngine{
		BaseCLIEngine: NewBaseCLIEngine(string(EngineTypePodman), path, opts...),
	}
}

// Ping checks that the Podman service is operable.
func (e *PodmanEngine) Ping(ctx context.Context) error {
	if !e.Available() {
		return &ErrEngineNotAvailable{Engine: "podman", Reason: "podman binary not found"}
	}

	err := retryWithBackoff(ctx, podmanPingAttempts, podmanPingBackoff, func(int) (bool, error) {
		if err := e.RunCommandStatus(ctx, "info", "--format", "{{.Version.Version}}"); err != nil {
			return true, err
		}
		return false, nil
	})
	if err != nil {
		return fmt.Errorf("podman service is not reachable: %w", err)
	}
	return nil
}

// Version returns the Podman version.
func (e *PodmanEngine) Version(ctx context.Context) (string, error) {
	out, err := e.RunCommandWithOutput(ctx, "version", "--format", "{{.Version}}")
	if err != nil {
		return "", fmt.Errorf("failed to get podman version: %w", err)
	}
	return strings.TrimSpace(out), nil
}
