// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"iambic-setup/internal/probe"
)

// doctorParams bundles the dependencies for the doctor command so runDoctor
// can be tested with a faked prober.
type doctorParams struct {
	stdout io.Writer
	prober *probe.Prober
}

// newDoctorCommand creates the `iambic-setup doctor` command, which reports
// host capabilities without writing anything to disk.
func newDoctorCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Report host capabilities without installing anything",
		Long: `Report host capabilities without installing anything.

The doctor command runs the same probes as install (container engine,
git) and prints each capability's status. It exits non-zero when a
required capability is missing, so it can gate scripted installs.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceErrors = true
			cmd.SilenceUsage = true

			p := doctorParams{
				stdout: cmd.OutOrStdout(),
				prober: probe.New(),
			}

			return runDoctor(cmd.Context(), p)
		},
	}
}

// runDoctor is the core doctor logic, separated from Cobra for testability.
func runDoctor(ctx context.Context, p doctorParams) error {
	fmt.Fprintln(p.stdout, TitleStyle.Render("iambic-setup doctor"))
	fmt.Fprintln(p.stdout)

	requiredMissing := false
	for _, res := range p.prober.All(ctx) {
		if res.Required && res.Status != probe.StatusWorking {
			requiredMissing = true
		}
		fmt.Fprintf(p.stdout, "  %s %-16s %s\n",
			statusIcon(res), res.Name, SubtitleStyle.Render(res.Detail))
	}

	fmt.Fprintln(p.stdout)
	if requiredMissing {
		fmt.Fprintln(p.stdout, ErrorStyle.Render("A required capability is unavailable; install cannot proceed."))
		return &ExitError{Code: 1, Err: errors.New("required capability unavailable")}
	}

	fmt.Fprintln(p.stdout, SuccessStyle.Render("Ready to install."))
	return nil
}

// statusIcon maps a probe result to a colored status marker. A broken
// optional capability gets a warning marker, a broken required one an error.
func statusIcon(res probe.Result) string {
	switch {
	case res.Status == probe.StatusWorking:
		return SuccessStyle.Render("✓")
	case res.Required:
		return ErrorStyle.Render("✗")
	default:
		return WarningStyle.Render("!")
	}
}
