package config

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{EnvPhotos, EnvWebsite, EnvUploadCommand, EnvMetadataBackend, EnvLogFile, EnvLogLevel} {
		t.Setenv(key, "")
	}
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad_File(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `
photos: /data/photos
website: /data/site/content
upload_command: rclone-photo
metadata_backend: exiftool
log_level: debug
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/data/photos", cfg.Photos)
	assert.Equal(t, "/data/site/content", cfg.Website)
	assert.Equal(t, "rclone-photo", cfg.UploadCommand)
	assert.Equal(t, "exiftool", cfg.MetadataBackend)
	assert.Equal(t, slog.LevelDebug, cfg.Level())
	assert.Equal(t, Defaults().LogFile, cfg.LogFile, "unset keys keep defaults")
	assert.NoError(t, cfg.Validate())
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, "photos: /from/file\nwebsite: /from/file/site\n")
	t.Setenv(EnvPhotos, "/from/env")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/from/env", cfg.Photos)
	assert.Equal(t, "/from/file/site", cfg.Website)
}

func TestLoad_ExplicitPathMustExist(t *testing.T) {
	clearEnv(t)
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLoad_InvalidYAML(t *testing.T) {
	clearEnv(t)
	_, err := Load(writeConfig(t, "photos: [unclosed\n"))
	assert.Error(t, err)
}

func TestLoad_ExpandsHome(t *testing.T) {
	clearEnv(t)
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	cfg, err := Load(writeConfig(t, "photos: ~/Pictures/library\nwebsite: /srv/site\n"))
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, "Pictures", "library"), cfg.Photos)
	assert.Equal(t, "/srv/site", cfg.Website)
}

func TestValidate(t *testing.T) {
	err := Defaults().Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "photos")
	assert.Contains(t, err.Error(), "website")

	assert.NoError(t, Config{Photos: "/p", Website: "/w"}.Validate())
}

func TestLoadDotEnv(t *testing.T) {
	const key = "PHOTO_IMPORT_TEST_DOTENV"
	t.Cleanup(func() { os.Unsetenv(key) })

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte(key+"=/from/dotenv\n"), 0644))

	require.NoError(t, loadDotEnv(path))
	assert.Equal(t, "/from/dotenv", os.Getenv(key))

	assert.NoError(t, loadDotEnv(filepath.Join(t.TempDir(), "absent.env")))
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"DEBUG", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"Warning", slog.LevelWarn},
		{"ERROR", slog.LevelError},
		{"bogus", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, parseLogLevel(tt.in))
		})
	}
}

func TestSetupLoggerWithWriters(t *testing.T) {
	var stderr, file bytes.Buffer
	logger := SetupLoggerWithWriters(&stderr, &file, slog.LevelWarn)

	logger.Info("item imported", "file", "a.jpg")
	logger.Warn("upload slow", "file", "b.jpg")

	assert.NotContains(t, stderr.String(), "item imported")
	assert.Contains(t, stderr.String(), "upload slow")
	assert.Contains(t, file.String(), `"msg":"item imported"`)
	assert.Contains(t, file.String(), `"msg":"upload slow"`)
}
