// Package config loads generator settings from the operator's
// forgeapi configuration directory.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

const (
	configFileName = "config"
	configFileType = "yaml"
	configFileExt  = "config.yaml"

	// EnvConfigDir overrides the configuration directory location.
	EnvConfigDir = "FORGEAPI_CONFIG_DIR"

	// Config keys.
	KeyPackageManager = "package_manager"
	KeyDefaultProfile = "default_profile"
	KeySkipUpdate     = "skip_update"

	// Defaults.
	DefaultPackageManager = "npm"
	DefaultProfile        = "full"
)

// defaultConfigYAML is written to config.yaml on first run.
const defaultConfigYAML = `# forgeapi configuration

# Package manager used for generated projects: npm, pnpm, or yarn
package_manager: npm

# Template profile used when none is given on the command line
default_profile: full

# Skip the best-effort dependency-update step after installation
skip_update: false
`

// Settings holds resolved generator configuration.
type Settings struct {
	PackageManager string
	DefaultProfile string
	SkipUpdate     bool
}

// Dir returns the configuration directory, honoring the
// FORGEAPI_CONFIG_DIR override and defaulting to ~/.forgeapi.
func Dir() (string, error) {
	if dir := os.Getenv(EnvConfigDir); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, ".forgeapi"), nil
}

// Load reads config.yaml from configDir using Viper, creating the
// directory and a default file on first run. A missing config.yaml is
// not an error.
func Load(configDir string) (*Settings, error) {
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return nil, fmt.Errorf("ensure config dir: %w", err)
	}
	if err := ensureDefaultConfigFile(configDir); err != nil {
		return nil, fmt.Errorf("ensure default config: %w", err)
	}

	v := viper.New()
	v.SetDefault(KeyPackageManager, DefaultPackageManager)
	v.SetDefault(KeyDefaultProfile, DefaultProfile)
	v.SetDefault(KeySkipUpdate, false)
	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	return &Settings{
		PackageManager: v.GetString(KeyPackageManager),
		DefaultProfile: v.GetString(KeyDefaultProfile),
		SkipUpdate:     v.GetBool(KeySkipUpdate),
	}, nil
}

// ensureDefaultConfigFile creates a default config.yaml if absent.
func ensureDefaultConfigFile(configDir string) error {
	path := filepath.Join(configDir, configFileExt)

	_, err := os.Stat(path)
	if err == nil {
		return nil
	}
	if !os.IsNotExist(err) {
		return fmt.Errorf("stat config file: %w", err)
	}

	return os.WriteFile(path, []byte(defaultConfigYAML), 0o644)
}
