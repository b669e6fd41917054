package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LocalConfigPath is checked after the user directory.
const LocalConfigPath = "configs/candy.yaml"

// LoadCandy loads the candy configuration.
// Search order: customPath -> ~/.candy/configs/candy.yaml -> ./configs/candy.yaml -> embedded default.
// Fields missing from a file keep their default values.
func LoadCandy(customPath string) (CandyConfig, error) {
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return DefaultCandyConfig(), fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := ParseCandy(data)
		if err != nil {
			return DefaultCandyConfig(), fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	for _, path := range []string{userConfigPath("candy.yaml"), LocalConfigPath} {
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		if cfg, err := ParseCandy(data); err == nil {
			return cfg, nil
		}
	}

	cfg, err := ParseCandy(defaultCandyYAML)
	if err != nil {
		return DefaultCandyConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// ParseCandy decodes YAML on top of the defaults and validates the result.
func ParseCandy(data []byte) (CandyConfig, error) {
	cfg := DefaultCandyConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// userConfigPath returns the path under ~/.candy/configs, or "" when the
// home directory is unknown.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".candy", "configs", filename)
}

// WriteDefault writes the embedded default config to path, creating parent
// directories. An existing file is left untouched unless force is set.
func WriteDefault(path string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config %s already exists", path)
		}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("cannot create config directory: %w", err)
	}
	return os.WriteFile(path, defaultCandyYAML, 0o644)
}

// UserConfigPath returns the per-user config file location.
func UserConfigPath() string {
	return userConfigPath("candy.yaml")
}
