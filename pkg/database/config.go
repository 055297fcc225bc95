package database

import (
	"errors"
	"net"
	"net/url"
	"strconv"
	"time"

	"github.com/JaimeStill/assessor/pkg/settings"
)

// Config locates the PostgreSQL database holding evaluation records. URL,
// when set, wins over the discrete connection fields.
type Config struct {
	URL             string `toml:"url"`
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	Name            string `toml:"name"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	SSLMode         string `toml:"ssl_mode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime string `toml:"conn_max_lifetime"`
	ConnTimeout     string `toml:"conn_timeout"`
}

// Env names the environment variables that override Config fields.
type Env struct {
	URL             string
	Host            string
	Port            string
	Name            string
	User            string
	Password        string
	SSLMode         string
	MaxOpenConns    string
	MaxIdleConns    string
	ConnMaxLifetime string
	ConnTimeout     string
}

// ConnString returns URL if set, otherwise a postgres:// URL assembled from
// the discrete fields. Both pgx and golang-migrate accept the result.
func (c *Config) ConnString() string {
	if c.URL != "" {
		return c.URL
	}

	u := url.URL{
		Scheme:   "postgres",
		Host:     net.JoinHostPort(c.Host, strconv.Itoa(c.Port)),
		Path:     "/" + c.Name,
		RawQuery: url.Values{"sslmode": {c.SSLMode}}.Encode(),
	}
	if c.Password != "" {
		u.User = url.UserPassword(c.User, c.Password)
	} else {
		u.User = url.User(c.User)
	}
	return u.String()
}

func (c *Config) ConnMaxLifetimeDuration() time.Duration {
	return settings.MustDuration(c.ConnMaxLifetime)
}

func (c *Config) ConnTimeoutDuration() time.Duration {
	return settings.MustDuration(c.ConnTimeout)
}

// Finalize applies defaults, environment overrides, and validation.
func (c *Config) Finalize(env *Env) error {
	c.loadDefaults()
	if env != nil {
		c.loadEnv(env)
	}
	return c.validate()
}

// Merge overlays the non-zero fields of overlay.
func (c *Config) Merge(overlay *Config) {
	settings.Overlay(&c.URL, overlay.URL)
	settings.Overlay(&c.Host, overlay.Host)
	settings.Overlay(&c.Port, overlay.Port)
	settings.Overlay(&c.Name, overlay.Name)
	settings.Overlay(&c.User, overlay.User)
	settings.Overlay(&c.Password, overlay.Password)
	settings.Overlay(&c.SSLMode, overlay.SSLMode)
	settings.Overlay(&c.MaxOpenConns, overlay.MaxOpenConns)
	settings.Overlay(&c.MaxIdleConns, overlay.MaxIdleConns)
	settings.Overlay(&c.ConnMaxLifetime, overlay.ConnMaxLifetime)
	settings.Overlay(&c.ConnTimeout, overlay.ConnTimeout)
}

func (c *Config) loadDefaults() {
	settings.Default(&c.Host, "localhost")
	settings.Default(&c.Port, 5432)
	settings.Default(&c.Name, "assessor")
	settings.Default(&c.User, "assessor")
	settings.Default(&c.SSLMode, "disable")
	settings.Default(&c.MaxOpenConns, 10)
	settings.Default(&c.MaxIdleConns, 2)
	settings.Default(&c.ConnMaxLifetime, "30m")
	settings.Default(&c.ConnTimeout, "5s")
}

func (c *Config) loadEnv(env *Env) {
	settings.String(env.URL, &c.URL)
	settings.String(env.Host, &c.Host)
	settings.Int(env.Port, &c.Port)
	settings.String(env.Name, &c.Name)
	settings.String(env.User, &c.User)
	settings.String(env.Password, &c.Password)
	settings.String(env.SSLMode, &c.SSLMode)
	settings.Int(env.MaxOpenConns, &c.MaxOpenConns)
	settings.Int(env.MaxIdleConns, &c.MaxIdleConns)
	settings.String(env.ConnMaxLifetime, &c.ConnMaxLifetime)
	settings.String(env.ConnTimeout, &c.ConnTimeout)
}

func (c *Config) validate() error {
	if c.URL == "" && (c.Name == "" || c.User == "") {
		return errors.New("url or name and user required")
	}
	if c.MaxOpenConns < 1 {
		return errors.New("max_open_conns must be positive")
	}
	if c.MaxIdleConns > c.MaxOpenConns {
		return errors.New("max_idle_conns cannot exceed max_open_conns")
	}
	if _, err := settings.Duration("conn_max_lifetime", c.ConnMaxLifetime); err != nil {
		return err
	}
	if _, err := settings.Duration("conn_timeout", c.ConnTimeout); err != nil {
		return err
	}
	return nil
}
