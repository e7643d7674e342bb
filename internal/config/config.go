// SPDX-License-Identifier: MPL-2.0

package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

const (
	// AppName is the application name.
	AppName = "iambic-setup"

	// RegistryPath is the fixed registry coordinate of the iambic image.
	// Not externally overridable; only the tag is selectable.
	RegistryPath = "public.ecr.aws/iambic/iambic"

	// DefaultTag is the image tag used when IAMBIC_VERSION is unset.
	DefaultTag ImageTag = "latest"

	// LauncherName is the file name of the generated launcher script.
	LauncherName = "iambic"

	// EnvVersion selects the container image tag.
	EnvVersion = "IAMBIC_VERSION"

	// EnvRepoDir overrides the templates workspace location.
	EnvRepoDir = "IAMBIC_REPO_DIR"

	// binDirName is the home-relative launcher directory.
	binDirName = "bin"

	// defaultWorkspaceName is the home-relative default workspace directory.
	defaultWorkspaceName = "iambic-templates"
)

// LoadOptions carries explicit overrides that take precedence over
// environment variables. Used by the CLI layer for flag binding and by
// tests for hermetic configuration.
type LoadOptions struct {
	// WorkspaceDir overrides IAMBIC_REPO_DIR when non-empty.
	WorkspaceDir string
	// BinDir overrides the fixed $HOME/bin location when non-empty.
	BinDir string
	// Tag overrides IAMBIC_VERSION when non-empty.
	Tag ImageTag
}

// Load resolves the installer configuration: flag overrides beat
// environment variables, which beat fixed defaults.
func Load(opts LoadOptions) (*Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get home directory: %w", err)
	}

	v := viper.New()

	v.SetDefault("tag", string(DefaultTag))
	v.SetDefault("workspace_dir", filepath.Join(home, defaultWorkspaceName))
	v.SetDefault("bin_dir", filepath.Join(home, binDirName))

	// BindEnv never errors with a non-empty input list.
	_ = v.BindEnv("tag", EnvVersion)
	_ = v.BindEnv("workspace_dir", EnvRepoDir)

	if opts.Tag != "" {
		v.Set("tag", string(opts.Tag))
	}
	if opts.WorkspaceDir != "" {
		v.Set("workspace_dir", opts.WorkspaceDir)
	}
	if opts.BinDir != "" {
		v.Set("bin_dir", opts.BinDir)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to resolve configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// LauncherPath returns the full path of the launcher inside BinDir.
func (c Config) LauncherPath() string {
	return filepath.Join(c.BinDir, LauncherName)
}
