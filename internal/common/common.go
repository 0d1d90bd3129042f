package common

import (
	"os"
	"path/filepath"
)

const (
	DefaultLayoutName = "dubeolsik"
	DefaultLogLevel   = "info"
	DefaultMode       = "compose"
	socketEnv         = "HANCOMPOSE_SOCKET"
	configEnv         = "HANCOMPOSE_CONFIG"
)

// DefaultSocketPath returns the unix domain socket the compose server listens
// on when no path is configured.
func DefaultSocketPath() string {
	if env := os.Getenv(socketEnv); env != "" {
		return env
	}
	if runtimeDir := os.Getenv("XDG_RUNTIME_DIR"); runtimeDir != "" {
		return filepath.Join(runtimeDir, "hancompose.sock")
	}
	if stateDir := os.Getenv("XDG_STATE_HOME"); stateDir != "" {
		return filepath.Join(stateDir, "hancompose", "hancompose.sock")
	}
	if configDir, err := os.UserConfigDir(); err == nil && configDir != "" {
		return filepath.Join(configDir, "hancompose", "hancompose.sock")
	}
	return filepath.Join(os.TempDir(), "hancompose.sock")
}

// DefaultConfigPath returns $HANCOMPOSE_CONFIG, or hancompose.ini under the
// user config directory. The file does not need to exist.
func DefaultConfigPath() string {
	if env := os.Getenv(configEnv); env != "" {
		return env
	}
	if configDir, err := os.UserConfigDir(); err == nil && configDir != "" {
		return filepath.Join(configDir, "hancompose", "hancompose.ini")
	}
	return ""
}

// EnsureSocketDir ensures that the directory containing the unix socket exists.
func EnsureSocketDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" || dir == string(filepath.Separator) {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}
