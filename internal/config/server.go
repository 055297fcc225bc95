package config

import (
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/JaimeStill/assessor/pkg/settings"
)

var serverEnv = struct {
	Host, Port, ReadTimeout, WriteTimeout, ShutdownTimeout string
}{
	Host:            "ASSESSOR_SERVER_HOST",
	Port:            "ASSESSOR_SERVER_PORT",
	ReadTimeout:     "ASSESSOR_SERVER_READ_TIMEOUT",
	WriteTimeout:    "ASSESSOR_SERVER_WRITE_TIMEOUT",
	ShutdownTimeout: "ASSESSOR_SERVER_SHUTDOWN_TIMEOUT",
}

// ServerConfig is the HTTP listener. WriteTimeout must outlast a full
// evaluation because POST /evaluations answers synchronously.
type ServerConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	ReadTimeout     string `toml:"read_timeout"`
	WriteTimeout    string `toml:"write_timeout"`
	ShutdownTimeout string `toml:"shutdown_timeout"`
}

func (c *ServerConfig) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

func (c *ServerConfig) ReadTimeoutDuration() time.Duration {
	return settings.MustDuration(c.ReadTimeout)
}

func (c *ServerConfig) WriteTimeoutDuration() time.Duration {
	return settings.MustDuration(c.WriteTimeout)
}

func (c *ServerConfig) ShutdownTimeoutDuration() time.Duration {
	return settings.MustDuration(c.ShutdownTimeout)
}

// Finalize applies defaults, environment overrides, and validation.
func (c *ServerConfig) Finalize() error {
	settings.Default(&c.Host, "0.0.0.0")
	settings.Default(&c.Port, 8080)
	settings.Default(&c.ReadTimeout, "1m")
	settings.Default(&c.WriteTimeout, "15m")
	settings.Default(&c.ShutdownTimeout, "30s")

	settings.String(serverEnv.Host, &c.Host)
	settings.Int(serverEnv.Port, &c.Port)
	settings.String(serverEnv.ReadTimeout, &c.ReadTimeout)
	settings.String(serverEnv.WriteTimeout, &c.WriteTimeout)
	settings.String(serverEnv.ShutdownTimeout, &c.ShutdownTimeout)

	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Port)
	}
	for field, value := range map[string]string{
		"read_timeout":     c.ReadTimeout,
		"write_timeout":    c.WriteTimeout,
		"shutdown_timeout": c.ShutdownTimeout,
	} {
		if _, err := settings.Duration(field, value); err != nil {
			return err
		}
	}
	return nil
}

// Merge overlays the non-zero fields of overlay.
func (c *ServerConfig) Merge(overlay *ServerConfig) {
	settings.Overlay(&c.Host, overlay.Host)
	settings.Overlay(&c.Port, overlay.Port)
	settings.Overlay(&c.ReadTimeout, overlay.ReadTimeout)
	settings.Overlay(&c.WriteTimeout, overlay.WriteTimeout)
	settings.Overlay(&c.ShutdownTimeout, overlay.ShutdownTimeout)
}
