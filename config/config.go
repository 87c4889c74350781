package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/prasetyowira/qrgen/constant"
)

// InsecureSecret is the placeholder signing key used when none is configured.
const InsecureSecret = "your-secret-key-change-this"

type Config struct {
	Port               int    `yaml:"port"`
	SecretKey          string `yaml:"secret_key"`
	Environment        string `yaml:"environment"`
	OutputDir          string `yaml:"output_dir"`
	DatabaseURL        string `yaml:"database_url"`
	CacheSize          int    `yaml:"cache_size"`
	GalleryLimit       int    `yaml:"gallery_limit"`
	RateLimitPerMinute int    `yaml:"rate_limit_per_minute"`
	LogFile            string `yaml:"log_file"`
	LogMaxSizeMB       int    `yaml:"log_max_size_mb"`
	LogMaxBackups      int    `yaml:"log_max_backups"`
	LogMaxAgeDays      int    `yaml:"log_max_age_days"`
}

// Default returns the configuration used when nothing else is set.
func Default() Config {
	return Config{
		Port:               5000,
		Environment:        constant.EnvProduction,
		OutputDir:          "static/qr_codes",
		DatabaseURL:        "qrgen.db",
		CacheSize:          256,
		GalleryLimit:       constant.GalleryLimit,
		RateLimitPerMinute: 60,
		LogMaxSizeMB:       100,
		LogMaxBackups:      3,
		LogMaxAgeDays:      7,
	}
}

// LoadConfig builds the configuration from defaults, the optional YAML file
// named by CONFIG_FILE, and finally environment variables.
func LoadConfig() (Config, error) {
	cfg := Default()

	if path := getEnv("CONFIG_FILE", ""); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return cfg, err
		}
	}

	cfg.Port = getEnvInt("PORT", cfg.Port)
	cfg.SecretKey = getEnv("SECRET_KEY", cfg.SecretKey)
	cfg.Environment = getEnv("APP_ENV", getEnv("FLASK_ENV", cfg.Environment))
	cfg.OutputDir = getEnv("OUTPUT_DIR", cfg.OutputDir)
	cfg.DatabaseURL = getEnv("DATABASE_URL", cfg.DatabaseURL)
	cfg.CacheSize = getEnvInt("CACHE_SIZE", cfg.CacheSize)
	cfg.GalleryLimit = getEnvInt("GALLERY_LIMIT", cfg.GalleryLimit)
	cfg.RateLimitPerMinute = getEnvInt("RATE_LIMIT_PER_MINUTE", cfg.RateLimitPerMinute)
	cfg.LogFile = getEnv("LOG_FILE", cfg.LogFile)
	cfg.LogMaxSizeMB = getEnvInt("LOG_MAX_SIZE_MB", cfg.LogMaxSizeMB)
	cfg.LogMaxBackups = getEnvInt("LOG_MAX_BACKUPS", cfg.LogMaxBackups)
	cfg.LogMaxAgeDays = getEnvInt("LOG_MAX_AGE_DAYS", cfg.LogMaxAgeDays)

	if cfg.SecretKey == "" && cfg.IsDevelopment() {
		cfg.SecretKey = InsecureSecret
	}

	return cfg, cfg.Validate()
}

// IsDevelopment reports whether debug behaviour is enabled.
func (c Config) IsDevelopment() bool {
	return c.Environment == constant.EnvDevelopment
}

// Validate rejects configurations the server cannot run safely with.
func (c Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Port)
	}
	if c.OutputDir == "" {
		return errors.New("output dir cannot be empty")
	}
	if c.GalleryLimit <= 0 {
		return fmt.Errorf("invalid gallery limit %d", c.GalleryLimit)
	}
	if c.SecretKey == "" {
		return errors.New("SECRET_KEY must be set outside development")
	}
	if c.SecretKey == InsecureSecret && !c.IsDevelopment() {
		return errors.New("placeholder SECRET_KEY is only allowed in development")
	}
	return nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return n
}
