package config

import (
	"encoding/json"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vango-dev/htmlkit/internal/errors"
)

const (
	// ConfigFileName is the name of the YAML configuration file.
	ConfigFileName = "htmlkit.yaml"

	// JSONConfigFileName is the name of the JSON configuration file. It is
	// read when no YAML file exists.
	JSONConfigFileName = "htmlkit.json"

	// DefaultPort is the default server port.
	DefaultPort = 8080

	// DefaultHost is the default server host.
	DefaultHost = "localhost"

	// DefaultLogLevel is the default log level.
	DefaultLogLevel = "info"

	// DefaultFormsDir is the default directory of form definitions.
	DefaultFormsDir = "forms"
)

// Config represents the complete htmlkit configuration.
type Config struct {
	// Render contains rendering options.
	Render RenderConfig `yaml:"render" json:"render"`

	// Server contains the form server configuration.
	Server ServerConfig `yaml:"server" json:"server"`

	// Log contains logging configuration.
	Log LogConfig `yaml:"log" json:"log"`

	// Forms are the form definition files or directories.
	Forms []string `yaml:"forms" json:"forms,omitempty"`

	// configPath stores the path where the config was loaded from.
	configPath string
}

// RenderConfig contains rendering options.
type RenderConfig struct {
	// Pretty separates the children of block elements with newlines.
	Pretty bool `yaml:"pretty" json:"pretty,omitempty"`

	// ShowStackTrace adds stack traces to error fragments.
	ShowStackTrace bool `yaml:"showStackTrace" json:"showStackTrace,omitempty"`
}

// ServerConfig contains the form server configuration.
type ServerConfig struct {
	// Host is the host to bind to.
	Host string `yaml:"host" json:"host,omitempty"`

	// Port is the port to listen on.
	Port int `yaml:"port" json:"port,omitempty"`

	// Metrics exposes Prometheus metrics on /metrics.
	Metrics bool `yaml:"metrics" json:"metrics,omitempty"`

	// Tracing wraps requests and renders in OpenTelemetry spans.
	Tracing bool `yaml:"tracing" json:"tracing,omitempty"`
}

// LogConfig contains logging configuration.
type LogConfig struct {
	// Level is one of debug, info, warn or error.
	Level string `yaml:"level" json:"level,omitempty"`

	// Format is text or json.
	Format string `yaml:"format" json:"format,omitempty"`
}

// New creates a configuration with default values.
func New() *Config {
	return &Config{
		Server: ServerConfig{
			Host: DefaultHost,
			Port: DefaultPort,
		},
		Log: LogConfig{
			Level:  DefaultLogLevel,
			Format: "text",
		},
		Forms: []string{DefaultFormsDir},
	}
}

// Load loads the configuration from dir, preferring htmlkit.yaml over
// htmlkit.json.
func Load(dir string) (*Config, error) {
	path := filepath.Join(dir, ConfigFileName)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if _, err := os.Stat(filepath.Join(dir, JSONConfigFileName)); err == nil {
			path = filepath.Join(dir, JSONConfigFileName)
		}
	}
	return LoadFile(path)
}

// LoadFile loads the configuration from a specific file. Files ending in
// .json are parsed as JSON, everything else as YAML.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New("C001").
				WithDetail("No " + ConfigFileName + " found in " + filepath.Dir(path)).
				WithSuggestion("Create " + ConfigFileName + " or pass --config")
		}
		return nil, errors.New("C002").Wrap(err)
	}

	cfg := New()
	if strings.EqualFold(filepath.Ext(path), ".json") {
		err = json.Unmarshal(data, cfg)
	} else {
		err = yaml.Unmarshal(data, cfg)
	}
	if err != nil {
		return nil, errors.New("C002").
			WithDetail("Failed to parse " + filepath.Base(path) + ": " + err.Error()).
			WithSuggestion("Check the syntax of " + filepath.Base(path)).
			Wrap(err)
	}

	cfg.configPath = path
	cfg.applyDefaults()
	return cfg, nil
}

// SaveTo writes the configuration as YAML, or JSON for .json paths.
func (c *Config) SaveTo(path string) error {
	var (
		data []byte
		err  error
	)
	if strings.EqualFold(filepath.Ext(path), ".json") {
		data, err = json.MarshalIndent(c, "", "  ")
		data = append(data, '\n')
	} else {
		data, err = yaml.Marshal(c)
	}
	if err != nil {
		return errors.New("C002").Wrap(err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.New("C002").Wrap(err)
	}
	c.configPath = path
	return nil
}

// Path returns the path the config was loaded from.
func (c *Config) Path() string {
	return c.configPath
}

// Dir returns the directory containing the config file.
func (c *Config) Dir() string {
	if c.configPath == "" {
		return ""
	}
	return filepath.Dir(c.configPath)
}

func (c *Config) applyDefaults() {
	if c.Server.Host == "" {
		c.Server.Host = DefaultHost
	}
	if c.Server.Port == 0 {
		c.Server.Port = DefaultPort
	}
	if c.Log.Level == "" {
		c.Log.Level = DefaultLogLevel
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
	if len(c.Forms) == 0 {
		c.Forms = []string{DefaultFormsDir}
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return errors.New("C003").
			WithDetailf("server.port must be between 0 and 65535, got %d", c.Server.Port)
	}
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return errors.New("C003").
			WithDetailf("log.level %q is not one of debug, info, warn, error", c.Log.Level)
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return errors.New("C003").
			WithDetailf("log.format %q is not one of text, json", c.Log.Format)
	}
	for _, f := range c.Forms {
		if strings.TrimSpace(f) == "" {
			return errors.New("C003").WithDetail("forms must not contain empty paths")
		}
	}
	return nil
}

// Address returns the server listen address.
func (c *Config) Address() string {
	return net.JoinHostPort(c.Server.Host, strconv.Itoa(c.Server.Port))
}

// URL returns the server base URL.
func (c *Config) URL() string {
	return fmt.Sprintf("http://%s", c.Address())
}

// FormPaths returns the form definition paths resolved against the config
// directory.
func (c *Config) FormPaths() []string {
	paths := make([]string, len(c.Forms))
	for i, p := range c.Forms {
		if filepath.IsAbs(p) {
			paths[i] = p
		} else {
			paths[i] = filepath.Join(c.Dir(), p)
		}
	}
	return paths
}
