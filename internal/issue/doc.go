// SPDX-License-Identifier: MPL-2.0

// Package issue provides user-facing error context for the installer.
//
// Fatal conditions (a missing or stopped container engine) surface as
// ActionableError values carrying the failed operation, the resource
// involved, and concrete remediation suggestions. A small catalog of
// markdown remediation pages, rendered with glamour, backs the fatal
// conditions and the advisory ones.
package issue
