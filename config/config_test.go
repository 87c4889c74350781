package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prasetyowira/qrgen/constant"
)

func clearEnv(t *testing.T) {
	for _, key := range []string{
		"CONFIG_FILE", "PORT", "SECRET_KEY", "APP_ENV", "FLASK_ENV", "OUTPUT_DIR",
		"DATABASE_URL", "CACHE_SIZE", "GALLERY_LIMIT", "RATE_LIMIT_PER_MINUTE",
		"LOG_FILE", "LOG_MAX_SIZE_MB", "LOG_MAX_BACKUPS", "LOG_MAX_AGE_DAYS",
	} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestLoadConfig_DevelopmentDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("FLASK_ENV", constant.EnvDevelopment)

	cfg, err := LoadConfig()

	require.NoError(t, err)
	assert.Equal(t, 5000, cfg.Port)
	assert.Equal(t, "static/qr_codes", cfg.OutputDir)
	assert.Equal(t, constant.GalleryLimit, cfg.GalleryLimit)
	assert.Equal(t, InsecureSecret, cfg.SecretKey)
	assert.True(t, cfg.IsDevelopment())
}

func TestLoadConfig_ProductionRequiresSecret(t *testing.T) {
	clearEnv(t)

	_, err := LoadConfig()

	assert.Error(t, err)
}

func TestLoadConfig_ProductionRejectsPlaceholder(t *testing.T) {
	clearEnv(t)
	t.Setenv("SECRET_KEY", InsecureSecret)

	_, err := LoadConfig()

	assert.Error(t, err)
}

func TestLoadConfig_EnvOverridesFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "qrgen.yaml")
	content := "port: 9000\nsecret_key: from-file\noutput_dir: /srv/qr\ngallery_limit: 5\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	t.Setenv("CONFIG_FILE", path)
	t.Setenv("PORT", "7000")

	cfg, err := LoadConfig()

	require.NoError(t, err)
	assert.Equal(t, 7000, cfg.Port)
	assert.Equal(t, "from-file", cfg.SecretKey)
	assert.Equal(t, "/srv/qr", cfg.OutputDir)
	assert.Equal(t, 5, cfg.GalleryLimit)
	assert.False(t, cfg.IsDevelopment())
}

func TestLoadConfig_InvalidFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "broken.yaml")
	require.NoError(t, os.WriteFile(path, []byte("port: [not"), 0o644))
	t.Setenv("CONFIG_FILE", path)

	_, err := LoadConfig()

	assert.Error(t, err)
}

func TestLoadConfig_BadIntegerFallsBack(t *testing.T) {
	clearEnv(t)
	t.Setenv("APP_ENV", constant.EnvDevelopment)
	t.Setenv("PORT", "not-a-port")

	cfg, err := LoadConfig()

	require.NoError(t, err)
	assert.Equal(t, 5000, cfg.Port)
}

func TestValidate(t *testing.T) {
	base := Default()
	base.SecretKey = "s3cret"
	require.NoError(t, base.Validate())

	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"zero port", func(c *Config) { c.Port = 0 }},
		{"empty output dir", func(c *Config) { c.OutputDir = "" }},
		{"zero gallery limit", func(c *Config) { c.GalleryLimit = 0 }},
		{"missing secret", func(c *Config) { c.SecretKey = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base
			tt.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
