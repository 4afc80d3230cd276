// Package config loads photo-import settings from a YAML file, .env and the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Environment variables that override the config file.
const (
	EnvPhotos          = "PHOTO_IMPORT_PHOTOS"
	EnvWebsite         = "PHOTO_IMPORT_WEBSITE"
	EnvUploadCommand   = "PHOTO_IMPORT_UPLOAD_COMMAND"
	EnvMetadataBackend = "PHOTO_IMPORT_METADATA_BACKEND"
	EnvLogFile         = "PHOTO_IMPORT_LOG_FILE"
	EnvLogLevel        = "PHOTO_IMPORT_LOG_LEVEL"
)

// Config holds all configuration values.
type Config struct {
	// Library roots
	Photos  string `yaml:"photos"`
	Website string `yaml:"website"`

	// Pipeline collaborators
	UploadCommand   string `yaml:"upload_command"`
	MetadataBackend string `yaml:"metadata_backend"`

	// Logging
	LogFile  string `yaml:"log_file"`
	LogLevel string `yaml:"log_level"`
}

// Defaults returns the configuration used when nothing is set.
func Defaults() Config {
	return Config{
		UploadCommand:   "s3-photo",
		MetadataBackend: "exif",
		LogFile:         filepath.Join(os.TempDir(), "photo-import.log"),
		LogLevel:        "WARN",
	}
}

// DefaultPath is <UserConfigDir>/photo-import/config.yaml.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "config.yaml"
	}
	return filepath.Join(dir, "photo-import", "config.yaml")
}

// Load builds the configuration: defaults, then the YAML file, then
// environment variables (including those from ./.env).
// An empty path means DefaultPath, which may be absent.
func Load(path string) (Config, error) {
	if err := loadDotEnv(".env"); err != nil {
		return Config{}, err
	}

	cfg := Defaults()

	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}
	if err := cfg.readFile(path); err != nil {
		if explicit || !errors.Is(err, fs.ErrNotExist) {
			return Config{}, err
		}
	}

	cfg.applyEnv()
	cfg.Photos = expandHome(cfg.Photos)
	cfg.Website = expandHome(cfg.Website)
	cfg.LogFile = expandHome(cfg.LogFile)

	return cfg, nil
}

// Validate checks the settings the import pipeline cannot run without.
func (c Config) Validate() error {
	var errs []error
	if c.Photos == "" {
		errs = append(errs, fmt.Errorf("photos directory not set (config key photos or %s)", EnvPhotos))
	}
	if c.Website == "" {
		errs = append(errs, fmt.Errorf("website directory not set (config key website or %s)", EnvWebsite))
	}
	return errors.Join(errs...)
}

// Level returns the parsed log level.
func (c Config) Level() slog.Level {
	return parseLogLevel(c.LogLevel)
}

func (c *Config) readFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() {
	c.Photos = getEnv(EnvPhotos, c.Photos)
	c.Website = getEnv(EnvWebsite, c.Website)
	c.UploadCommand = getEnv(EnvUploadCommand, c.UploadCommand)
	c.MetadataBackend = getEnv(EnvMetadataBackend, c.MetadataBackend)
	c.LogFile = getEnv(EnvLogFile, c.LogFile)
	c.LogLevel = getEnv(EnvLogLevel, c.LogLevel)
}

// loadDotEnv copies variables from a .env file into the environment
// without overriding ones already set. A missing file is fine.
func loadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}

func parseLogLevel(s string) slog.Level {
	switch strings.ToUpper(s) {
	case "DEBUG":
		return slog.LevelDebug
	case "INFO":
		return slog.LevelInfo
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
