// SPDX-License-Identifier: MPL-2.0

// Package cmd contains all CLI commands for iambic-setup.
//
// This package implements the Cobra command hierarchy: the root command,
// the install command that runs the bootstrap pipeline, and the doctor
// command that reports host capabilities without side effects.
package cmd
