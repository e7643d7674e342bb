// SPDX-License-Identifier: MPL-2.0

// Package workspace manages the iambic templates workspace: a directory
// that must exist and carry git metadata so template changes are versioned.
//
// Initialization is idempotent. Repeated runs never reinitialize or reset
// an existing repository; a workspace that already contains .git is left
// exactly as found.
package workspace
