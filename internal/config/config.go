// Package config holds the server settings.
//
// Without any file or environment the defaults are the fixed values the
// server has always used: 127.0.0.1:8080 serving ./webserver/.
package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	// DefaultAddress is the loopback address the server binds by default.
	DefaultAddress = "127.0.0.1"
	// DefaultPort is the TCP port the server binds by default.
	DefaultPort = 8080
	// DefaultRoot is the directory files are served from by default.
	DefaultRoot = "./webserver/"
)

// Environment variable names read by LoadEnv.
const (
	EnvAddress        = "WEBSERVER_ADDRESS"
	EnvPort           = "WEBSERVER_PORT"
	EnvRoot           = "WEBSERVER_ROOT"
	EnvMaxConnections = "WEBSERVER_MAX_CONNECTIONS"
	EnvLogRequests    = "WEBSERVER_LOG_REQUESTS"
	EnvReusePort      = "WEBSERVER_REUSE_PORT"
)

// Config is the complete server configuration.
type Config struct {
	// Address is the IP or host name to bind.
	Address string `toml:"address" yaml:"address"`
	// Port is the TCP port to bind.
	Port int `toml:"port" yaml:"port"`
	// Root is the directory requested paths are resolved under.
	Root string `toml:"root" yaml:"root"`
	// MaxConnections caps concurrently served connections. 0 means unbounded.
	MaxConnections int `toml:"max_connections" yaml:"max_connections"`
	// LogRequests enables the per-request diagnostic lines.
	LogRequests bool `toml:"log_requests" yaml:"log_requests"`
	// ReusePort sets SO_REUSEPORT so several processes can bind the same port.
	ReusePort bool `toml:"reuse_port" yaml:"reuse_port"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Address:     DefaultAddress,
		Port:        DefaultPort,
		Root:        DefaultRoot,
		LogRequests: true,
	}
}

// ListenAddr returns the host:port string to bind.
func (c Config) ListenAddr() string {
	return net.JoinHostPort(c.Address, strconv.Itoa(c.Port))
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	if c.Address == "" {
		return errors.New("address must not be empty")
	}
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("port %d out of range 1-65535", c.Port)
	}
	if c.Root == "" {
		return errors.New("root must not be empty")
	}
	if c.MaxConnections < 0 {
		return fmt.Errorf("max_connections must not be negative, got %d", c.MaxConnections)
	}
	return nil
}

// Load reads a TOML or YAML file, chosen by extension, on top of c.
// Settings missing from the file keep their current values.
func (c *Config) Load(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config: %w", err)
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		if _, err := toml.Decode(string(data), c); err != nil {
			return fmt.Errorf("failed to parse %s: %w", path, err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, c); err != nil {
			return fmt.Errorf("failed to parse %s: %w", path, err)
		}
	default:
		return fmt.Errorf("unsupported config format %q", ext)
	}
	return nil
}

// LoadEnv loads the given dotenv files into the process environment, skipping
// files that do not exist, and then applies the WEBSERVER_* variables on top of c.
// Variables already set in the environment win over dotenv values.
func (c *Config) LoadEnv(files ...string) error {
	for _, f := range files {
		if _, err := os.Stat(f); errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			return fmt.Errorf("failed to load %s: %w", f, err)
		}
	}

	if v, ok := os.LookupEnv(EnvAddress); ok {
		c.Address = v
	}
	if v, ok := os.LookupEnv(EnvRoot); ok {
		c.Root = v
	}
	if v, ok := os.LookupEnv(EnvPort); ok {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", EnvPort, err)
		}
		c.Port = port
	}
	if v, ok := os.LookupEnv(EnvMaxConnections); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", EnvMaxConnections, err)
		}
		c.MaxConnections = n
	}
	if v, ok := os.LookupEnv(EnvLogRequests); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", EnvLogRequests, err)
		}
		c.LogRequests = b
	}
	if v, ok := os.LookupEnv(EnvReusePort); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", EnvReusePort, err)
		}
		c.ReusePort = b
	}
	return nil
}
