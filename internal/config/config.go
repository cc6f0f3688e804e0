// Package config loads the gateway daemon's YAML configuration.
package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v2"
)

type Config struct {
	// Address the authenticated listener binds.
	ListenAddr string `yaml:"listenAddr"`
	// Address of the unauthenticated metrics/health listener; empty disables it.
	MetricsAddr string `yaml:"metricsAddr"`
	// URL of the application authenticated requests are forwarded to.
	Upstream string `yaml:"upstream"`
	// Optional TLS material for the authenticated listener.
	CertFile string `yaml:"certFile"`
	KeyFile  string `yaml:"keyFile"`

	ReadTimeout     time.Duration `yaml:"readTimeout"`
	WriteTimeout    time.Duration `yaml:"writeTimeout"`
	ShutdownTimeout time.Duration `yaml:"shutdownTimeout"`

	// Credential store backing the gate.
	Store StoreConfig `yaml:"store"`
	// Users written into the store at startup.
	Users []User `yaml:"users"`
}

type StoreConfig struct {
	// Path of the SQLite user database.
	SQLitePath string `yaml:"sqlitePath"`
	// Redis instance holding user secrets; setting an address selects it
	// instead of SQLite.
	Redis RedisConfig `yaml:"redis"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type User struct {
	Username string `yaml:"username"`
	Secret   string `yaml:"secret"`
}

// Read parses the yaml file at the provided path into a Config. Environment
// variable references in the file are expanded before parsing, so secrets
// can stay out of it.
func Read(path string) (*Config, error) {
	bs, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	withenv := []byte(os.ExpandEnv(string(bs)))

	cfg := Default()
	if err := yaml.Unmarshal(withenv, cfg); err != nil {
		return nil, err
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Default provides reasonable default parameters that may be overridden by a
// config file.
func Default() *Config {
	return &Config{
		ListenAddr:      "localhost:8080",
		Upstream:        "http://localhost:9000",
		ReadTimeout:     30 * time.Second,
		WriteTimeout:    30 * time.Second,
		ShutdownTimeout: 5 * time.Second,
		Store: StoreConfig{
			SQLitePath: "gatehouse.db",
		},
	}
}

func (c *Config) validate() error {
	var errs []string

	if c.ListenAddr == "" {
		errs = append(errs, "listenAddr must not be empty")
	}
	if c.Upstream == "" {
		errs = append(errs, "upstream must not be empty")
	} else if u, err := url.Parse(c.Upstream); err != nil || u.Scheme == "" || u.Host == "" {
		errs = append(errs, fmt.Sprintf("upstream %q is not an absolute URL", c.Upstream))
	}
	if (c.CertFile == "") != (c.KeyFile == "") {
		errs = append(errs, "certFile and keyFile must be set together")
	}
	if c.Store.SQLitePath == "" && c.Store.Redis.Addr == "" {
		errs = append(errs, "store needs a sqlitePath or a redis address")
	}
	for _, u := range c.Users {
		if u.Username == "" {
			errs = append(errs, "users entries need a username")
		}
	}

	if len(errs) != 0 {
		return fmt.Errorf("invalid config: %v", strings.Join(errs, ","))
	}
	return nil
}
