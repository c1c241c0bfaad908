// Package config locates the optional YAML file that backs command-line
// flag defaults.
package config

import (
	"os"
	"path/filepath"
)

// EnvPath names the environment variable that overrides the config file path.
const EnvPath = "DECORATE_CONFIG"

// Path returns the config file path: $DECORATE_CONFIG if set, otherwise
// <user config dir>/decorate/config.yaml. It returns "" when neither can be
// determined. The file does not need to exist.
func Path() string {
	if p := os.Getenv(EnvPath); p != "" {
		return p
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "decorate", "config.yaml")
}
