package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	ini "github.com/go-ini/ini"

	"hancompose/internal/common"
)

type Config struct {
	Layout      string
	KeypairPath string
	// Mode names the line transform: compose, decompose or annotate.
	Mode        string
	LogLevel    string
	SocketPath  string
}

var logLevels = []string{"debug", "info", "warn", "error"}

func Default() Config {
	return Config{
		Layout:     common.DefaultLayoutName,
		Mode:       common.DefaultMode,
		LogLevel:   common.DefaultLogLevel,
		SocketPath: common.DefaultSocketPath(),
	}
}

// Load reads an ini file over the defaults. A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		return cfg, nil
	}

	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("config: %w", err)
	}
	if info.IsDir() {
		return cfg, fmt.Errorf("config: %s is a directory", path)
	}

	file, err := ini.Load(filepath.Clean(path))
	if err != nil {
		return cfg, fmt.Errorf("config: %w", err)
	}

	layoutSection := file.Section("layout")
	cfg.Layout = layoutSection.Key("name").MustString(cfg.Layout)
	cfg.KeypairPath = layoutSection.Key("keypairs").MustString(cfg.KeypairPath)

	output := file.Section("output")
	if output.HasKey("mode") {
		cfg.Mode = strings.ToLower(strings.TrimSpace(output.Key("mode").String()))
	} else if output.Key("decompose").MustBool(false) {
		cfg.Mode = "annotate"
	}
	cfg.SocketPath = file.Section("server").Key("socket").MustString(cfg.SocketPath)

	level := strings.ToLower(file.Section("log").Key("level").MustString(cfg.LogLevel))
	if !validLevel(level) {
		return cfg, fmt.Errorf("config: invalid log level %q (want one of %s)", level, strings.Join(logLevels, ", "))
	}
	cfg.LogLevel = level

	if cfg.KeypairPath != "" && !filepath.IsAbs(cfg.KeypairPath) {
		cfg.KeypairPath = filepath.Join(filepath.Dir(path), cfg.KeypairPath)
	}
	return cfg, nil
}

func validLevel(level string) bool {
	for _, candidate := range logLevels {
		if level == candidate {
			return true
		}
	}
	return false
}
