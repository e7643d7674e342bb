// SPDX-License-Identifier: MPL-2.0

// Package probe implements best-effort capability checks for the external
// tools the installer depends on: a container engine (required) and a git
// client (advisory).
//
// Each capability is classified into one of three states: present and
// working, present but not working, or absent. Probes are evaluated once
// per run and never write any state; process spawns are the only side
// effect. All spawning goes through injectable functions so tests run
// without real tools installed.
package probe
