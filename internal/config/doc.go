// SPDX-License-Identifier: MPL-2.0

// Package config resolves the installer configuration.
//
// Configuration is environment-driven with fixed defaults: there is no
// config file. Load builds an immutable Config once at startup; components
// receive it by value and never read the environment themselves.
package config
