package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kamaltrader/luxecraft/internal/util"
	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// DefaultConfigPath is used when neither a flag nor CONFIG_PATH names a file.
const DefaultConfigPath = "config.yaml"

// developmentJWTSecret is the insecure signing key used when none is configured.
const developmentJWTSecret = "your-secret-key-change-in-production"

// AdminConfig holds the single administrator principal.
type AdminConfig struct {
	Username     string `yaml:"username"`
	Password     string `yaml:"password"`
	PasswordHash string `yaml:"password-hash"`
}

// JWTConfig holds JWT signing settings.
type JWTConfig struct {
	Secret string        `yaml:"secret"`
	Expiry time.Duration `yaml:"expiry"`
}

// SMTPConfig holds the environment SMTP relay settings.
type SMTPConfig struct {
	Host      string `yaml:"host"`
	Port      int    `yaml:"port"`
	User      string `yaml:"user"`
	Password  string `yaml:"password"`
	Recipient string `yaml:"recipient"`
}

// RedisConfig holds the optional product cache connection.
type RedisConfig struct {
	Addr     string        `yaml:"addr"`
	Password string        `yaml:"password"`
	DB       int           `yaml:"db"`
	TTL      time.Duration `yaml:"ttl"`
}

// LogConfig controls log level and the optional rotating log file.
type LogConfig struct {
	Level      string `yaml:"level"`
	File       string `yaml:"file"`
	MaxSizeMB  int    `yaml:"max-size-mb"`
	MaxBackups int    `yaml:"max-backups"`
	MaxAgeDays int    `yaml:"max-age-days"`
}

// AppConfig is the complete process configuration.
type AppConfig struct {
	ConfigPath       string      `yaml:"-"`
	Port             int         `yaml:"port"`
	DatabaseDSN      string      `yaml:"database-dsn"`
	UploadsDir       string      `yaml:"uploads-dir"`
	PublicPathPrefix string      `yaml:"public-path-prefix"`
	CORSOrigin       string      `yaml:"cors-origin"`
	Admin            AdminConfig `yaml:"admin"`
	JWT              JWTConfig   `yaml:"jwt"`
	SMTP             SMTPConfig  `yaml:"smtp"`
	Redis            RedisConfig `yaml:"redis"`
	Log              LogConfig   `yaml:"log"`
}

// Defaults returns the built-in configuration.
func Defaults() AppConfig {
	return AppConfig{
		Port:             3001,
		DatabaseDSN:      "luxe-craft.db",
		UploadsDir:       "uploads",
		PublicPathPrefix: "/uploads",
		CORSOrigin:       "http://localhost:5173",
		Admin:            AdminConfig{Username: "admin", Password: "admin123"},
		JWT:              JWTConfig{Expiry: 24 * time.Hour},
		SMTP:             SMTPConfig{Host: "smtp.gmail.com", Port: 587},
		Redis:            RedisConfig{TTL: 5 * time.Minute},
		Log:              LogConfig{Level: "info", MaxSizeMB: 10, MaxBackups: 5, MaxAgeDays: 30},
	}
}

// ResolveConfigPath returns the config file path from the flag value or CONFIG_PATH.
func ResolveConfigPath(flagValue string) string {
	if v := strings.TrimSpace(flagValue); v != "" {
		return v
	}
	if v := strings.TrimSpace(os.Getenv("CONFIG_PATH")); v != "" {
		return v
	}
	return DefaultConfigPath
}

// LoadDotEnv loads a .env file into the process environment when one exists.
func LoadDotEnv(paths ...string) {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if _, errStat := os.Stat(p); errStat != nil {
			continue
		}
		if errLoad := godotenv.Load(p); errLoad != nil {
			log.WithError(errLoad).Warnf("config: load %s", p)
		}
	}
}

// Load builds the configuration from defaults, the optional YAML file and the environment.
func Load(configPath string) (AppConfig, error) {
	cfg := Defaults()
	cfg.ConfigPath = configPath

	if configPath != "" {
		data, errRead := os.ReadFile(configPath)
		switch {
		case errRead == nil:
			if errYAML := yaml.Unmarshal(data, &cfg); errYAML != nil {
				return AppConfig{}, fmt.Errorf("config: parse %s: %w", configPath, errYAML)
			}
		case errors.Is(errRead, os.ErrNotExist):
		default:
			return AppConfig{}, fmt.Errorf("config: read %s: %w", configPath, errRead)
		}
	}

	if errEnv := applyEnv(&cfg); errEnv != nil {
		return AppConfig{}, errEnv
	}
	cfg.applyWritablePath(util.WritablePath())
	return cfg, cfg.normalize()
}

func applyEnv(cfg *AppConfig) error {
	var errs []error
	setString := func(key string, dst *string) {
		if v, ok := os.LookupEnv(key); ok && strings.TrimSpace(v) != "" {
			*dst = strings.TrimSpace(v)
		}
	}
	setInt := func(key string, dst *int) {
		v, ok := os.LookupEnv(key)
		if !ok || strings.TrimSpace(v) == "" {
			return
		}
		n, errParse := strconv.Atoi(strings.TrimSpace(v))
		if errParse != nil {
			errs = append(errs, fmt.Errorf("config: %s: %w", key, errParse))
			return
		}
		*dst = n
	}
	setDuration := func(key string, dst *time.Duration) {
		v, ok := os.LookupEnv(key)
		if !ok || strings.TrimSpace(v) == "" {
			return
		}
		d, errParse := time.ParseDuration(strings.TrimSpace(v))
		if errParse != nil {
			errs = append(errs, fmt.Errorf("config: %s: %w", key, errParse))
			return
		}
		*dst = d
	}

	setInt("PORT", &cfg.Port)
	setString("DATABASE_DSN", &cfg.DatabaseDSN)
	setString("UPLOADS_DIR", &cfg.UploadsDir)
	setString("PUBLIC_PATH_PREFIX", &cfg.PublicPathPrefix)
	setString("CORS_ORIGIN", &cfg.CORSOrigin)

	setString("ADMIN_USERNAME", &cfg.Admin.Username)
	// Passwords are not trimmed.
	if v, ok := os.LookupEnv("ADMIN_PASSWORD"); ok && v != "" {
		cfg.Admin.Password = v
	}
	setString("ADMIN_PASSWORD_HASH", &cfg.Admin.PasswordHash)
	setString("JWT_SECRET", &cfg.JWT.Secret)
	setDuration("JWT_EXPIRY", &cfg.JWT.Expiry)

	setString("EMAIL_HOST", &cfg.SMTP.Host)
	setInt("EMAIL_PORT", &cfg.SMTP.Port)
	setString("EMAIL_USER", &cfg.SMTP.User)
	if v, ok := os.LookupEnv("EMAIL_PASSWORD"); ok && v != "" {
		cfg.SMTP.Password = v
	}
	setString("RECIPIENT_EMAIL", &cfg.SMTP.Recipient)

	setString("REDIS_ADDR", &cfg.Redis.Addr)
	setString("REDIS_PASSWORD", &cfg.Redis.Password)
	setInt("REDIS_DB", &cfg.Redis.DB)
	setDuration("REDIS_TTL", &cfg.Redis.TTL)

	setString("LOG_LEVEL", &cfg.Log.Level)
	setString("LOG_FILE", &cfg.Log.File)

	return errors.Join(errs...)
}

// applyWritablePath roots relative on-disk paths under base.
func (c *AppConfig) applyWritablePath(base string) {
	if base == "" {
		return
	}
	rel := func(p string) string {
		if p == "" || filepath.IsAbs(p) {
			return p
		}
		return filepath.Join(base, p)
	}
	c.UploadsDir = rel(c.UploadsDir)
	c.Log.File = rel(c.Log.File)
	if isPlainSQLitePath(c.DatabaseDSN) {
		c.DatabaseDSN = rel(c.DatabaseDSN)
	}
}

func isPlainSQLitePath(dsn string) bool {
	lower := strings.ToLower(dsn)
	if dsn == "" || strings.Contains(lower, "://") || strings.HasPrefix(lower, "file:") || strings.Contains(lower, "=") {
		return false
	}
	return dsn != ":memory:"
}

func (c *AppConfig) normalize() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("config: invalid port %d", c.Port)
	}
	if c.SMTP.Port < 0 || c.SMTP.Port > 65535 {
		return fmt.Errorf("config: invalid email port %d", c.SMTP.Port)
	}
	if strings.TrimSpace(c.Admin.Username) == "" {
		return errors.New("config: admin username is required")
	}
	if c.Admin.Password == "" && c.Admin.PasswordHash == "" {
		return errors.New("config: admin password or password hash is required")
	}
	if strings.TrimSpace(c.JWT.Secret) == "" {
		log.Warn("config: JWT_SECRET not set, using the development signing key")
		c.JWT.Secret = developmentJWTSecret
	}
	if c.JWT.Expiry <= 0 {
		c.JWT.Expiry = 24 * time.Hour
	}
	if c.Redis.TTL <= 0 {
		c.Redis.TTL = 5 * time.Minute
	}
	if strings.TrimSpace(c.UploadsDir) == "" {
		c.UploadsDir = "uploads"
	}
	prefix := "/" + strings.Trim(strings.TrimSpace(c.PublicPathPrefix), "/")
	if prefix == "/" || strings.HasPrefix(prefix, "/api") {
		prefix = "/uploads"
	}
	c.PublicPathPrefix = prefix
	return nil
}

// ListenAddr returns the HTTP listen address.
func (c AppConfig) ListenAddr() string {
	return ":" + strconv.Itoa(c.Port)
}
