package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/Zachkp/showcase/internal/backend"
	"github.com/Zachkp/showcase/internal/gallery"
)

// Config holds all application configuration
type Config struct {
	Port  string
	Debug bool

	APIBaseURL   string
	ProjectsPath string
	SkillsPath   string
	APICookie    string
	APITimeout   time.Duration

	CacheTTL        time.Duration
	RefreshInterval time.Duration
	RedisURL        string
	DBPath          string

	SkillCategoriesFile string
	Rotation            gallery.Rotation

	AdminUsername string
	AdminPassword string
}

// Load reads configuration from the environment, applying defaults for
// anything unset.
func Load() (*Config, error) {
	return load(os.Getenv)
}

func load(getenv func(string) string) (*Config, error) {
	cfg := &Config{
		Port:                getOr(getenv, "PORT", "8080"),
		APIBaseURL:          getOr(getenv, "API_BASE_URL", backend.DefaultBaseURL),
		ProjectsPath:        getOr(getenv, "PROJECTS_PATH", backend.DefaultProjectsPath),
		SkillsPath:          getOr(getenv, "SKILLS_PATH", backend.DefaultSkillsPath),
		APICookie:           getenv("API_COOKIE"),
		RedisURL:            getenv("REDIS_URL"),
		DBPath:              getOr(getenv, "DB_PATH", "portfolio.db"),
		SkillCategoriesFile: getenv("SKILL_CATEGORIES_FILE"),
		AdminUsername:       getenv("ADMIN_USERNAME"),
		AdminPassword:       getenv("ADMIN_PASSWORD"),
	}

	var err error
	if cfg.Debug, err = parseBool(getenv, "DEBUG", false); err != nil {
		return nil, err
	}
	if cfg.APITimeout, err = parseDuration(getenv, "API_TIMEOUT", 10*time.Second, false); err != nil {
		return nil, err
	}
	if cfg.CacheTTL, err = parseDuration(getenv, "CACHE_TTL", 5*time.Minute, true); err != nil {
		return nil, err
	}
	if cfg.RefreshInterval, err = parseDuration(getenv, "REFRESH_INTERVAL", 5*time.Minute, true); err != nil {
		return nil, err
	}
	if cfg.Rotation.Narrow, err = parseDuration(getenv, "SKILL_ROTATE_NARROW", gallery.DefaultNarrowRotation, false); err != nil {
		return nil, err
	}
	if cfg.Rotation.Wide, err = parseDuration(getenv, "SKILL_ROTATE_WIDE", gallery.DefaultWideRotation, false); err != nil {
		return nil, err
	}
	if err := cfg.Rotation.Validate(); err != nil {
		return nil, err
	}
	if _, err := strconv.Atoi(cfg.Port); err != nil {
		return nil, fmt.Errorf("invalid PORT %q", cfg.Port)
	}
	return cfg, nil
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return ":" + c.Port
}

func getOr(getenv func(string) string, key, def string) string {
	if v := getenv(key); v != "" {
		return v
	}
	return def
}

func parseBool(getenv func(string) string, key string, def bool) (bool, error) {
	v := getenv(key)
	if v == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("invalid %s: %w", key, err)
	}
	return b, nil
}

// parseDuration reads a Go duration; allowZero permits "0" to disable a
// feature.
func parseDuration(getenv func(string) string, key string, def time.Duration, allowZero bool) (time.Duration, error) {
	v := getenv(key)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	if d < 0 || (d == 0 && !allowZero) {
		return 0, fmt.Errorf("invalid %s: must be greater than zero", key)
	}
	return d, nil
}
