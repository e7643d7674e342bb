// SPDX-License-Identifier: MPL-2.0

// Package install drives the bootstrap pipeline: probe capabilities,
// provision the launcher directory, initialize the templates workspace,
// materialize the launcher, and prefetch the container image.
//
// Steps run strictly in order and return a tri-state result: ok, warn, or
// fatal. The driver halts on the first fatal, accumulates warnings for the
// final summary, and performs no retries. Re-running the pipeline is
// idempotent: existing directories are kept, an initialized workspace is
// never reset, and the launcher is regenerated byte-identically.
package install
