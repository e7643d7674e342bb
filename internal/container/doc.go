// SPDX-License-Identifier: MPL-2.0

// Package container provides an abstraction layer for container engines
// (Docker/Podman) driven through their CLIs.
//
// The installer needs three things from an engine: presence (binary on
// PATH), operability (daemon/service reachable), and image pulls. Engines
// are constructed with an injectable ExecCommandFunc so tests never spawn
// real processes.
package container
