// SPDX-License-Identifier: MPL-2.0

// Package launcher materializes the iambic launcher: a small POSIX shell
// script installed into the user's bin directory that forwards every
// invocation into the iambic container with the correct mounts and
// credential forwarding.
//
// Script content is a pure function of the engine name and image
// reference. Everything host-specific (uid/gid, cwd, HOME, AWS_PROFILE) is
// resolved by the shell when the launcher runs, which keeps regeneration
// byte-identical and makes overwriting on re-install safe.
package launcher
