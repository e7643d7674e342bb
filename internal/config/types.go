// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidImageTag is the sentinel error wrapped by InvalidImageTagError.
	ErrInvalidImageTag = errors.New("invalid image tag")

	// ErrInvalidPath is the sentinel error wrapped by InvalidPathError.
	ErrInvalidPath = errors.New("invalid path")
)

type (
	// ImageTag is a container image tag (e.g., "latest", "v1.2.3").
	ImageTag string

	// InvalidImageTagError is returned when an ImageTag is empty or malformed.
	InvalidImageTagError struct {
		Value ImageTag
	}

	// ImageRef is a fully qualified container image reference
	// ("registry/repository:tag"). Built via Config.Image; never parsed
	// back apart.
	ImageRef string

	// InvalidPathError is returned when a configured path is empty or
	// whitespace-only.
	InvalidPathError struct {
		Field string
		Value string
	}

	// Config holds the resolved installer configuration. Immutable for the
	// run: resolved once by Load, then passed by value.
	Config struct {
		// WorkspaceDir is where the iambic templates workspace lives.
		WorkspaceDir string `mapstructure:"workspace_dir"`

		// BinDir is the directory the launcher is installed into.
		BinDir string `mapstructure:"bin_dir"`

		// Tag selects the container image tag.
		Tag ImageTag `mapstructure:"tag"`
	}
)

// String returns the string representation of the ImageTag.
func (t ImageTag) String() string { return string(t) }

// Validate returns an error if the ImageTag is empty or contains characters
// that would corrupt the image reference.
func (t ImageTag) Validate() error {
	s := string(t)
	if strings.TrimSpace(s) == "" || strings.ContainsAny(s, ": /\t\n") {
		return &InvalidImageTagError{Value: t}
	}
	return nil
}

// Error implements the error interface.
func (e *InvalidImageTagError) Error() string {
	return fmt.Sprintf("invalid image tag %q: must be non-empty without ':', '/' or whitespace", e.Value)
}

// Unwrap returns ErrInvalidImageTag for errors.Is compatibility.
func (e *InvalidImageTagError) Unwrap() error { return ErrInvalidImageTag }

// String returns the string representation of the ImageRef.
func (r ImageRef) String() string { return string(r) }

// Error implements the error interface.
func (e *InvalidPathError) Error() string {
	return fmt.Sprintf("invalid %s %q: must be non-empty", e.Field, e.Value)
}

// Unwrap returns ErrInvalidPath for errors.Is compatibility.
func (e *InvalidPathError) Unwrap() error { return ErrInvalidPath }

// Validate returns an error if any field of the Config is invalid.
func (c Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.WorkspaceDir) == "" {
		errs = append(errs, &InvalidPathError{Field: "workspace directory", Value: c.WorkspaceDir})
	}
	if strings.TrimSpace(c.BinDir) == "" {
		errs = append(errs, &InvalidPathError{Field: "bin directory", Value: c.BinDir})
	}
	if err := c.Tag.Validate(); err != nil {
		errs = append(errs, err)
	}
	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// Image returns the fully qualified image reference for the configured tag.
// The registry coordinate is a fixed constant; only the tag varies.
func (c Config) Image() ImageRef {
	return ImageRef(RegistryPath + ":" + string(c.Tag))
}
