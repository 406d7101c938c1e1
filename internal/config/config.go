package config

import (
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Config is the top-level application configuration. The API key is
// deliberately absent: operators supply it per session, it is never
// stored in files.
type Config struct {
	// Listen is the HTTP listen address of the JSON API.
	Listen string `yaml:"listen"`

	// Domain is the tenant subdomain of the workforce-management cloud,
	// e.g. "cloud" for https://cloud.targcontrol.com.
	Domain string `yaml:"domain"`

	// BaseURL overrides the derived tenant URL when set (on-prem
	// installs, tests).
	BaseURL string `yaml:"base_url"`

	// DefaultTimezone is the IANA zone preselected in the UI.
	DefaultTimezone string `yaml:"default_timezone"`

	// SessionTTLMinutes is how long an idle operator session survives.
	SessionTTLMinutes int `yaml:"session_ttl_minutes"`

	// SweepCron schedules the idle-session sweep.
	SweepCron string `yaml:"sweep_cron"`

	// LogLevel is a logrus level name.
	LogLevel string `yaml:"log_level"`
}

func DefaultConfig() *Config {
	return &Config{
		Listen:            "127.0.0.1:8080",
		Domain:            "cloud",
		DefaultTimezone:   "Europe/Moscow",
		SessionTTLMinutes: 60,
		SweepCron:         "@every 10m",
		LogLevel:          "info",
	}
}

// Normalize fills missing/zero values so partially-filled configs still
// behave.
func (c *Config) Normalize() {
	def := DefaultConfig()
	if c.Listen == "" {
		c.Listen = def.Listen
	}
	if c.Domain == "" {
		c.Domain = def.Domain
	}
	if c.DefaultTimezone == "" {
		c.DefaultTimezone = def.DefaultTimezone
	}
	if c.SessionTTLMinutes <= 0 {
		c.SessionTTLMinutes = def.SessionTTLMinutes
	}
	if c.SweepCron == "" {
		c.SweepCron = def.SweepCron
	}
	if c.LogLevel == "" {
		c.LogLevel = def.LogLevel
	}
}

// Load reads YAML configuration from path. A missing file yields the
// defaults. Environment variables override file values either way.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, errors.Wrapf(err, "parse config %s", path)
			}
		case errors.Is(err, fs.ErrNotExist):
			// first run, defaults apply
		default:
			return nil, errors.Wrapf(err, "read config %s", path)
		}
	}
	cfg.applyEnv()
	cfg.Normalize()
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("TARGBULK_LISTEN"); v != "" {
		c.Listen = v
	}
	if v := os.Getenv("TARGBULK_DOMAIN"); v != "" {
		c.Domain = v
	}
	if v := os.Getenv("TARGBULK_BASE_URL"); v != "" {
		c.BaseURL = v
	}
	if v := os.Getenv("TARGBULK_TIMEZONE"); v != "" {
		c.DefaultTimezone = v
	}
	if v := os.Getenv("TARGBULK_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv("TARGBULK_SESSION_TTL_MINUTES"); v != "" {
		if minutes, err := strconv.Atoi(v); err == nil {
			c.SessionTTLMinutes = minutes
		}
	}
}

// APIBaseURL returns the remote API root for this tenant.
func (c *Config) APIBaseURL() string {
	if c.BaseURL != "" {
		return strings.TrimRight(c.BaseURL, "/")
	}
	return fmt.Sprintf("https://%s.targcontrol.com", c.Domain)
}

// SessionTTL returns the idle expiry as a duration.
func (c *Config) SessionTTL() time.Duration {
	return time.Duration(c.SessionTTLMinutes) * time.Minute
}
