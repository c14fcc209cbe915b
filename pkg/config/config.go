// Package config loads diskwatchd's runtime configuration from an
// optional YAML file layered under CLI flags, flags always winning.
package config

import (
	"fmt"
	"net"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DefaultIP           = "::1"
	DefaultPort         = 50051
	DefaultConfigPath   = "/etc/diskwatchd/config.yaml"
	DefaultHealthAddr   = "127.0.0.1:9090"
	DefaultScanInterval = 10 * time.Second
)

// Config is diskwatchd's full runtime configuration.
type Config struct {
	IP           string        `yaml:"ip"`
	Port         int           `yaml:"port"`
	HealthAddr   string        `yaml:"health_addr"`
	ScanInterval time.Duration `yaml:"scan_interval"`
	LogLevel     string        `yaml:"log_level"`
	LogJSON      bool          `yaml:"log_json"`
}

// Default returns the built-in defaults, used when no config file exists
// and no flag overrides them.
func Default() Config {
	return Config{
		IP:           DefaultIP,
		Port:         DefaultPort,
		HealthAddr:   DefaultHealthAddr,
		ScanInterval: DefaultScanInterval,
		LogLevel:     "info",
		LogJSON:      false,
	}
}

// Load reads path as a YAML config file and merges it over Default().
// A missing file at path is not an error — Default() is returned as-is,
// since path is commonly left at its default and operators may not have
// created the file. Any other read or parse error is returned.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Addr formats the gRPC listen address from IP and Port, bracketing IP
// only when net.JoinHostPort determines it needs it (IPv6 literals).
func (c Config) Addr() string {
	return net.JoinHostPort(c.IP, strconv.Itoa(c.Port))
}
