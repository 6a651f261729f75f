package config

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"

	"github.com/reflow/scalar"
)

// EnvPrefix prefixes the environment overrides, e.g. TODO_SERVER_PORT.
const EnvPrefix = "todo"

type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Logging   LoggingConfig   `yaml:"logging"`
	CORS      CORSConfig      `yaml:"cors"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
	Docs      DocsConfig      `yaml:"docs"`
}

type ServerConfig struct {
	Port int    `yaml:"port"`
	Host string `yaml:"host"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowed_origins" split_words:"true"`
	AllowedHeaders []string `yaml:"allowed_headers" split_words:"true"`
	ExposeHeaders  []string `yaml:"expose_headers" split_words:"true"`
}

type TelemetryConfig struct {
	Enabled     bool   `yaml:"enabled"`
	Endpoint    string `yaml:"endpoint"`
	ServiceName string `yaml:"service_name" split_words:"true"`
	Insecure    bool   `yaml:"insecure"`
}

// DocsConfig configures the Scalar API reference of the server. Metadata
// is only sent to the viewer when at least one meta field is set.
type DocsConfig struct {
	Path               string   `yaml:"path"`
	Title              string   `yaml:"title"`
	Theme              string   `yaml:"theme"`
	Editable           *bool    `yaml:"editable"`
	HideModels         *bool    `yaml:"hide_models" split_words:"true"`
	HideClientButton   *bool    `yaml:"hide_client_button" split_words:"true"`
	HideClients        *bool    `yaml:"hide_clients" split_words:"true"`
	DefaultOpenAllTags *bool    `yaml:"default_open_all_tags" split_words:"true"`
	ShowSidebar        *bool    `yaml:"show_sidebar" split_words:"true"`
	Meta               DocsMeta `yaml:"meta"`
}

type DocsMeta struct {
	Title         string `yaml:"title"`
	Description   string `yaml:"description"`
	OGDescription string `yaml:"og_description" split_words:"true"`
	OGTitle       string `yaml:"og_title" split_words:"true"`
	OGImage       string `yaml:"og_image" split_words:"true"`
	TwitterCard   string `yaml:"twitter_card" split_words:"true"`
}

// Load reads the config file, expands ${VAR} references, applies TODO_*
// environment overrides and fills in defaults. An empty path skips the
// file.
func Load(path string) (*Config, error) {
	var cfg Config

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}

		expanded := expandEnvVars(string(data))
		if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	}

	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("apply environment: %w", err)
	}

	setDefaults(&cfg)

	return &cfg, nil
}

var envVarPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

// expandEnvVars replaces ${VAR_NAME} with the value of the environment
// variable. Unset variables are left as they are.
func expandEnvVars(s string) string {
	return envVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		varName := strings.TrimSuffix(strings.TrimPrefix(match, "${"), "}")
		if val := os.Getenv(varName); val != "" {
			return val
		}
		return match
	})
}

func setDefaults(cfg *Config) {
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.Host == "" {
		cfg.Server.Host = "0.0.0.0"
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "json"
	}
	if len(cfg.CORS.AllowedOrigins) == 0 {
		cfg.CORS.AllowedOrigins = []string{"*"}
	}
	if len(cfg.CORS.AllowedHeaders) == 0 {
		cfg.CORS.AllowedHeaders = []string{"Accept", "Content-Type", "todo_apikey"}
	}
	if cfg.Telemetry.ServiceName == "" {
		cfg.Telemetry.ServiceName = "todo-server"
	}
	if cfg.Telemetry.Endpoint == "" {
		cfg.Telemetry.Endpoint = "localhost:4317"
	}
	if cfg.Docs.Path == "" {
		cfg.Docs.Path = "/scalar"
	}
	if cfg.Docs.Title == "" {
		cfg.Docs.Title = "TodoOpenApi"
	}
}

// Addr is the listen address of the server.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// Scalar converts the docs section into a viewer configuration. Unset
// options keep the scalar defaults.
func (d DocsConfig) Scalar() scalar.Config {
	c := scalar.DefaultConfig()
	if d.Theme != "" {
		c = c.WithTheme(d.Theme)
	}
	if d.Editable != nil {
		c = c.WithEditable(*d.Editable)
	}
	if d.HideModels != nil {
		c = c.WithHideModels(*d.HideModels)
	}
	if d.HideClientButton != nil {
		c = c.WithHideClientButton(*d.HideClientButton)
	}
	if d.HideClients != nil {
		c = c.WithHideClients(*d.HideClients)
	}
	if d.DefaultOpenAllTags != nil {
		c = c.WithDefaultOpenAllTags(*d.DefaultOpenAllTags)
	}
	if d.ShowSidebar != nil {
		c = c.WithShowSidebar(*d.ShowSidebar)
	}
	if d.Meta != (DocsMeta{}) {
		c = c.WithMetaData(scalar.MetaInfo{
			Title:         d.Meta.Title,
			Description:   d.Meta.Description,
			OGDescription: d.Meta.OGDescription,
			OGTitle:       d.Meta.OGTitle,
			OGImage:       d.Meta.OGImage,
			TwitterCard:   d.Meta.TwitterCard,
		})
	}
	return c
}
