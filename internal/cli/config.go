package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"loanlink/internal/platform/config"
)

// fileConfig is the optional ~/.loanlink/config.yaml overlay on top of the
// environment configuration.
type fileConfig struct {
	APIURL          string `yaml:"apiUrl"`
	DefaultRole     string `yaml:"defaultRole"`
	CredentialsFile string `yaml:"credentialsFile"`
	Identity        struct {
		DisplayName string `yaml:"displayName"`
		Email       string `yaml:"email"`
		PhotoURL    string `yaml:"photoURL"`
	} `yaml:"identity"`
}

func defaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".loanlink", "config.yaml")
}

// loadConfig merges the yaml file (when present) over the env defaults.
// A missing file is fine; a malformed one is an error worth surfacing.
func loadConfig(path string) (config.Client, fileConfig, error) {
	cfg := config.FromEnv()
	var fc fileConfig
	if path == "" {
		path = defaultConfigPath()
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, fc, nil
		}
		return cfg, fc, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(raw, &fc); err != nil {
		return cfg, fc, fmt.Errorf("parse config %s: %w", path, err)
	}
	if fc.APIURL != "" {
		cfg.APIBaseURL = fc.APIURL
	}
	if fc.DefaultRole != "" {
		cfg.DefaultRole = fc.DefaultRole
	}
	if fc.CredentialsFile != "" {
		cfg.CredentialsFile = fc.CredentialsFile
	}
	return cfg, fc, nil
}
