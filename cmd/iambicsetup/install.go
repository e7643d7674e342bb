// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"iambic-setup/internal/config"
	"iambic-setup/internal/install"
	"iambic-setup/internal/issue"
)

// installParams bundles the dependencies and flags for the install command,
// enabling the core logic in runInstall to be tested without a real Cobra
// command or a live container engine.
type installParams struct {
	stdout io.Writer
	stderr io.Writer
	// newInstaller builds the pipeline's installer from the resolved
	// configuration. Tests swap in fully faked probers and workspaces.
	newInstaller func(cfg config.Config) *install.Installer

	binDir       string // --bin-dir override (empty = $HOME/bin)
	workspaceDir string // --workspace override (empty = IAMBIC_REPO_DIR or $HOME/iambic-templates)
	tag          string // --version-tag override (empty = IAMBIC_VERSION or latest)
	verbose      bool
}

// newInstallCommand creates the `iambic-setup install` command, which runs
// the full bootstrap pipeline: capability probes, launcher directory,
// templates workspace, launcher script, and image prefetch.
func newInstallCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "install",
		Short: "Probe the host and install the iambic launcher",
		Long: `Probe the host and install the iambic launcher.

The install command checks for a container engine (Docker or Podman)
and git, creates the launcher directory and the templates workspace,
writes the 'iambic' launcher script, and pre-pulls the container image.

A missing container engine halts the install before anything is written.
Missing git and a failed image pull are advisory: the install completes
and the conditions are reported in the final summary. Re-running install
is safe at any time; it never resets an existing workspace.`,
		Example: `  # Full bootstrap with defaults
  iambic-setup install

  # Pin the container image tag
  IAMBIC_VERSION=v0.11.0 iambic-setup install

  # Use a custom templates workspace
  iambic-setup install --workspace ~/src/iam-templates`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceErrors = true
			cmd.SilenceUsage = true

			binDir, _ := cmd.Flags().GetString("bin-dir")
			workspaceDir, _ := cmd.Flags().GetString("workspace")
			tag, _ := cmd.Flags().GetString("version-tag")

			p := installParams{
				stdout: cmd.OutOrStdout(),
				stderr: cmd.ErrOrStderr(),
				newInstaller: func(cfg config.Config) *install.Installer {
					return install.NewInstaller(cfg, install.WithPullOutput(cmd.ErrOrStderr()))
				},
				binDir:       binDir,
				workspaceDir: workspaceDir,
				tag:          tag,
				verbose:      verbose,
			}

			return runInstall(cmd.Context(), p)
		},
	}

	cmd.Flags().String("bin-dir", "", "launcher directory (default $HOME/bin)")
	cmd.Flags().String("workspace", "", "templates workspace directory (default $HOME/iambic-templates, or IAMBIC_REPO_DIR)")
	cmd.Flags().String("version-tag", "", "container image tag (default latest, or IAMBIC_VERSION)")

	return cmd
}

// runInstall is the core install logic, separated from Cobra for testability.
// All user-facing output goes through p.stdout and p.stderr.
func runInstall(ctx context.Context, p installParams) error {
	cfg, err := config.Load(config.LoadOptions{
		WorkspaceDir: p.workspaceDir,
		BinDir:       p.binDir,
		Tag:          config.ImageTag(p.tag),
	})
	if err != nil {
		fmt.Fprintln(p.stderr, ErrorStyle.Render("Error: ")+formatErrorForDisplay(err, p.verbose))
		return &ExitError{Code: 2, Err: err}
	}

	logger := log.NewWithOptions(p.stderr, log.Options{ReportTimestamp: false})
	if p.verbose {
		logger.SetLevel(log.DebugLevel)
	}

	installer := p.newInstaller(*cfg)
	summary, err := install.NewPipeline(logger, installer.Steps()...).Run(ctx)
	if err != nil {
		var fatalErr *install.FatalError
		if errors.As(err, &fatalErr) {
			renderFatal(p.stderr, fatalErr, p.verbose)
		}
		return &ExitError{Code: 1, Err: err}
	}

	printInstallSummary(p.stdout, cfg, summary)
	return nil
}

// renderFatal prints the formatted error followed by the remediation page
// from the issue catalog, when one is associated with the failing step.
func renderFatal(stderr io.Writer, fatalErr *install.FatalError, verboseMode bool) {
	fmt.Fprintln(stderr, ErrorStyle.Render("Install failed: ")+formatErrorForDisplay(fatalErr.Err, verboseMode))
	renderIssuePage(stderr, fatalErr.IssueID)
}

// renderIssuePage renders an issue catalog entry to w. A zero id or a
// rendering failure degrades to no page; the error text already printed
// carries the essentials.
func renderIssuePage(w io.Writer, id issue.Id) {
	if id == 0 {
		return
	}
	entry := issue.Get(id)
	if entry == nil {
		return
	}
	rendered, err := entry.Render("dark")
	if err != nil {
		slog.Warn("failed to render issue catalog entry", "issueID", id, "error", err)
		return
	}
	fmt.Fprint(w, rendered)
}

// printInstallSummary reports what the run produced: the launcher location,
// the workspace, the image, and every warning the pipeline accumulated.
func printInstallSummary(stdout io.Writer, cfg *config.Config, summary *install.Summary) {
	fmt.Fprintln(stdout)
	fmt.Fprintln(stdout, SuccessStyle.Render("iambic is ready."))
	fmt.Fprintf(stdout, "%s %s\n", SubtitleStyle.Render("Launcher: "), CmdStyle.Render(cfg.LauncherPath()))
	fmt.Fprintf(stdout, "%s %s\n", SubtitleStyle.Render("Workspace:"), CmdStyle.Render(cfg.WorkspaceDir))
	fmt.Fprintf(stdout, "%s %s\n", SubtitleStyle.Render("Image:    "), CmdStyle.Render(string(cfg.Image())))

	if len(summary.Warnings) > 0 {
		fmt.Fprintln(stdout)
		fmt.Fprintln(stdout, WarningStyle.Render(fmt.Sprintf("%d warning(s):", len(summary.Warnings))))
		for _, w := range summary.Warnings {
			fmt.Fprintf(stdout, "  %s %s\n", WarningStyle.Render("!"), w.Message)
		}
	}

	fmt.Fprintln(stdout)
	fmt.Fprintf(stdout, "Run %s to get started.\n", CmdStyle.Render(config.LauncherName+" --help"))
}
