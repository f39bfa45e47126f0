package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// GetCreocleanHome returns the creoclean home directory.
// Priority order:
//  1. CREOCLEAN_HOME environment variable (if set)
//  2. ~/.creoclean
//
// The directory is not created here.
func GetCreocleanHome() (string, error) {
	if home := os.Getenv("CREOCLEAN_HOME"); home != "" {
		return home, nil
	}

	userHome, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get user home directory: %w", err)
	}

	return filepath.Join(userHome, ".creoclean"), nil
}

// GetHistoryDBPath returns the history database path: the configured path if
// set, otherwise $CREOCLEAN_HOME/history.db.
func (c *Config) GetHistoryDBPath() (string, error) {
	if c.History.DBPath != "" {
		return c.History.DBPath, nil
	}

	home, err := GetCreocleanHome()
	if err != nil {
		return "", err
	}

	return filepath.Join(home, "history.db"), nil
}
