package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

// Config captures folio's runtime settings.
type Config struct {
	Backend       string
	DataDir       string
	LogFile       string
	LogLevel      string
	UploadWorkers int
	MaxImageBytes int64
}

const (
	defaultConfigPath    = "~/.config/folio/config.toml"
	defaultDataDir       = "~/.local/share/folio"
	defaultBackend       = "file"
	defaultLogLevel      = "info"
	defaultUploadWorkers = 4
	defaultMaxImageBytes = 20 << 20
	logFileName          = "folio.log"
)

// DefaultPath returns the default config file path.
func DefaultPath() string {
	return defaultConfigPath
}

// Default returns the configuration used when no file exists.
func Default() Config {
	dataDir := mustExpand(defaultDataDir)
	return Config{
		Backend:       defaultBackend,
		DataDir:       dataDir,
		LogFile:       filepath.Join(dataDir, logFileName),
		LogLevel:      defaultLogLevel,
		UploadWorkers: defaultUploadWorkers,
		MaxImageBytes: defaultMaxImageBytes,
	}
}

// Load locates and parses the folio config, falling back to defaults when missing.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		Backend       string `toml:"backend"`
		DataDir       string `toml:"data_dir"`
		LogFile       string `toml:"log_file"`
		LogLevel      string `toml:"log_level"`
		UploadWorkers int    `toml:"upload_workers"`
		MaxImageBytes int64  `toml:"max_image_bytes"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if backend := strings.ToLower(strings.TrimSpace(raw.Backend)); backend != "" {
		cfg.Backend = backend
	}
	if dir := strings.TrimSpace(raw.DataDir); dir != "" {
		cfg.DataDir = mustExpand(dir)
		cfg.LogFile = filepath.Join(cfg.DataDir, logFileName)
	}
	if logFile := strings.TrimSpace(raw.LogFile); logFile != "" {
		cfg.LogFile = mustExpand(logFile)
	}
	if level := strings.TrimSpace(raw.LogLevel); level != "" {
		cfg.LogLevel = level
	}
	if raw.UploadWorkers > 0 {
		cfg.UploadWorkers = raw.UploadWorkers
	}
	if raw.MaxImageBytes > 0 {
		cfg.MaxImageBytes = raw.MaxImageBytes
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports settings that cannot work.
func (c Config) Validate() error {
	switch c.Backend {
	case "file", "sqlite", "memory":
	default:
		return fmt.Errorf("invalid backend %q (want file, sqlite or memory)", c.Backend)
	}
	if strings.TrimSpace(c.DataDir) == "" {
		return fmt.Errorf("data_dir is empty")
	}
	return nil
}

// WithDataDir returns a copy rooted at dir. The log file follows the data dir
// unless it was set explicitly elsewhere.
func (c Config) WithDataDir(dir string) Config {
	expanded := mustExpand(dir)
	if c.LogFile == filepath.Join(c.DataDir, logFileName) {
		c.LogFile = filepath.Join(expanded, logFileName)
	}
	c.DataDir = expanded
	return c
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
