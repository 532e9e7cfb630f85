package env

import (
	"os"
	"path/filepath"
)

const (
	// WorkingDirEnv overrides the default working directory.
	WorkingDirEnv = "SMC_WORKING_DIR"

	DefaultWorkingDir = "/var/smc"
	DefaultShell      = "sh"
)

// Variables exported to every lifecycle script.
const (
	ServiceNameEnv = "SMC_SERVICE_NAME"
	ServiceDirEnv  = "SMC_SERVICE_DIR"
	DataDirEnv     = "SMC_DATA_DIR"
)

/**
 * Get default working directory
 * @returns {string} $SMC_WORKING_DIR if set, otherwise /var/smc
 */
func GetWorkingDir() string {
	if dir := os.Getenv(WorkingDirEnv); dir != "" {
		return dir
	}
	return DefaultWorkingDir
}

/**
 * Get user config directory
 * @returns {string} Returns $HOME/.smc, empty when home is unknown
 */
func GetUserConfigDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(homeDir, ".smc")
}
