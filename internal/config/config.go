// Package config handles vragent configuration.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ashutoshrp06/vragent/internal/ollama"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes environment overrides, e.g. VRAGENT_OLLAMA_URL.
const EnvPrefix = "VRAGENT"

// Config holds all vragent configuration.
type Config struct {
	Ollama OllamaConfig `mapstructure:"ollama" yaml:"ollama"`
	Server ServerConfig `mapstructure:"server" yaml:"server"`
	Agent  AgentConfig  `mapstructure:"agent" yaml:"agent"`
	Log    LogConfig    `mapstructure:"log" yaml:"log"`
}

type OllamaConfig struct {
	URL                  string  `mapstructure:"url" yaml:"url"`
	Model                string  `mapstructure:"model" yaml:"model"`
	TimeoutSeconds       int     `mapstructure:"timeout_seconds" yaml:"timeout_seconds"`
	HealthTimeoutSeconds int     `mapstructure:"health_timeout_seconds" yaml:"health_timeout_seconds"`
	Temperature          float64 `mapstructure:"temperature" yaml:"temperature"`
}

type ServerConfig struct {
	Host string `mapstructure:"host" yaml:"host"`
	Port int    `mapstructure:"port" yaml:"port"`
}

type AgentConfig struct {
	// ActionsPath overrides the embedded action registry when set.
	ActionsPath string `mapstructure:"actions_path" yaml:"actions_path"`
}

type LogConfig struct {
	Level string `mapstructure:"level" yaml:"level"` // debug, info, warn, error
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Ollama: OllamaConfig{
			URL:                  "http://localhost:11434",
			Model:                "qwen3:8b",
			TimeoutSeconds:       120,
			HealthTimeoutSeconds: 5,
		},
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8000,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load reads the YAML file at path over the defaults. Environment variables
// override both.
func Load(path string) (*Config, error) {
	v := newViper()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	return decode(v)
}

// LoadFromPaths loads the first path that exists. If none exist the defaults
// (with environment overrides) are returned.
func LoadFromPaths(paths ...string) (*Config, error) {
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			return Load(p)
		}
	}
	return decode(newViper())
}

// DefaultPaths lists config file locations in order of precedence.
func DefaultPaths() []string {
	paths := []string{"config.local.yaml", "config.yaml"}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".vragent", "config.yaml"))
	}
	return paths
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")

	d := DefaultConfig()
	v.SetDefault("ollama.url", d.Ollama.URL)
	v.SetDefault("ollama.model", d.Ollama.Model)
	v.SetDefault("ollama.timeout_seconds", d.Ollama.TimeoutSeconds)
	v.SetDefault("ollama.health_timeout_seconds", d.Ollama.HealthTimeoutSeconds)
	v.SetDefault("ollama.temperature", d.Ollama.Temperature)
	v.SetDefault("server.host", d.Server.Host)
	v.SetDefault("server.port", d.Server.Port)
	v.SetDefault("agent.actions_path", d.Agent.ActionsPath)
	v.SetDefault("log.level", d.Log.Level)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

func decode(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks values that would otherwise fail at the first turn.
func (c *Config) Validate() error {
	var errs []error

	if u, err := url.Parse(c.Ollama.URL); err != nil || u.Scheme == "" || u.Host == "" {
		errs = append(errs, fmt.Errorf("ollama.url %q is not an absolute URL", c.Ollama.URL))
	}
	if strings.TrimSpace(c.Ollama.Model) == "" {
		errs = append(errs, errors.New("ollama.model is empty"))
	}
	if c.Ollama.TimeoutSeconds <= 0 {
		errs = append(errs, fmt.Errorf("ollama.timeout_seconds must be positive, got %d", c.Ollama.TimeoutSeconds))
	}
	if c.Ollama.HealthTimeoutSeconds <= 0 {
		errs = append(errs, fmt.Errorf("ollama.health_timeout_seconds must be positive, got %d", c.Ollama.HealthTimeoutSeconds))
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port %d out of range", c.Server.Port))
	}

	return errors.Join(errs...)
}

// Save writes the configuration as YAML.
func (c *Config) Save(path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create config dir: %w", err)
		}
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// ServerAddress returns the listen address in "host:port" format.
func (c *Config) ServerAddress() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// ChatTimeout is the bounded wait for one backend call.
func (c *Config) ChatTimeout() time.Duration {
	return time.Duration(c.Ollama.TimeoutSeconds) * time.Second
}

// HealthTimeout is the bounded wait for a model availability check.
func (c *Config) HealthTimeout() time.Duration {
	return time.Duration(c.Ollama.HealthTimeoutSeconds) * time.Second
}

// OllamaClientConfig converts to the client's configuration.
func (c *Config) OllamaClientConfig() ollama.Config {
	return ollama.Config{
		BaseURL:     c.Ollama.URL,
		Model:       c.Ollama.Model,
		Timeout:     c.ChatTimeout(),
		Temperature: c.Ollama.Temperature,
	}
}
