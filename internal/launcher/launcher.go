// SPDX-License-Identifier: MPL-2.0

package launcher

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"mvdan.cc/sh/v3/syntax"

	"iambic-setup/internal/config"
	"iambic-setup/internal/container"
)

// In-container paths of the launcher contract. The containerized iambic
// expects its AWS credentials under /app/.aws and operates on the caller's
// working directory mounted at /templates.
const (
	credentialMountPath = "/app/.aws"
	templatesMountPath  = "/templates"
)

// Render produces the launcher script for the given engine and image.
// The output is deterministic: equal inputs yield byte-identical scripts.
func Render(engineName string, image config.ImageRef) (string, error) {
	var sb strings.Builder

	sb.WriteString("#!/bin/sh\n")
	sb.WriteString("# iambic launcher. Generated by iambic-setup; rerun 'iambic-setup install'\n")
	sb.WriteString("# to regenerate. All arguments are forwarded to the containerized iambic.\n")
	fmt.Fprintf(&sb, "exec %s run -it --rm \\\n", engineName)
	sb.WriteString("    -u \"$(id -u):$(id -g)\" \\\n")
	fmt.Fprintf(&sb, "    -v \"${HOME}/.aws:%s\" \\\n", credentialMountPath)
	fmt.Fprintf(&sb, "    -e AWS_CONFIG_FILE=%s/config \\\n", credentialMountPath)
	fmt.Fprintf(&sb, "    -e AWS_SHARED_CREDENTIALS_FILE=%s/credentials \\\n", credentialMountPath)
	sb.WriteString("    -e AWS_PROFILE \\\n")
	fmt.Fprintf(&sb, "    -v \"$(pwd):%s\" \\\n", templatesMountPath)
	fmt.Fprintf(&sb, "    %s \"$@\"\n", image)

	script := sb.String()
	if err := validate(script); err != nil {
		return "", fmt.Errorf("generated launcher is not valid shell: %w", err)
	}

	return script, nil
}

// validate parses the script as POSIX shell so a render bug fails loudly
// at install time instead of at the user's first launch.
func validate(script string) error {
	parser := syntax.NewParser(syntax.Variant(syntax.LangPOSIX))
	_, err := parser.Parse(strings.NewReader(script), config.LauncherName)
	return err
}

// Install writes the launcher to path with overwrite semantics and marks
// it executable. An existing launcher is replaced, never merged.
func Install(path, script string) error {
	if err := os.WriteFile(path, []byte(script), 0o755); err != nil {
		return fmt.Errorf("failed to write launcher %s: %w", path, err)
	}
	// WriteFile applies the mode only on creation; chmod covers the
	// overwrite path where a previous launcher had different permissions.
	if err := os.Chmod(path, 0o755); err != nil {
		return fmt.Errorf("failed to mark launcher executable %s: %w", path, err)
	}
	return nil
}

// Prefetch pulls the image so the launcher's first real invocation has no
// added latency. Best-effort: the caller downgrades failures to a warning.
func Prefetch(ctx context.Context, engine container.Engine, image config.ImageRef, out io.Writer) error {
	return engine.Pull(ctx, string(image), out, out)
}
