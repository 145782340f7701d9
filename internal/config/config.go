// Package config loads gouhc settings from a config file, the environment
// and built-in defaults.
package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. GOUHC_SINKS_KEYWORD
const EnvPrefix = "GOUHC"

// Config represents the complete gouhc configuration
type Config struct {
	Tables  TablesConfig  `mapstructure:"tables" yaml:"tables"`
	Sinks   SinksConfig   `mapstructure:"sinks" yaml:"sinks"`
	Report  ReportConfig  `mapstructure:"report" yaml:"report"`
	Logging LoggingConfig `mapstructure:"logging" yaml:"logging"`
	Export  ExportConfig  `mapstructure:"export" yaml:"export"`
	Events  EventsConfig  `mapstructure:"events" yaml:"events"`
}

// TablesConfig points at replacement CSV tables; empty paths use the embedded ones
type TablesConfig struct {
	Appliances string `mapstructure:"appliances" yaml:"appliances"`
	Sizing     string `mapstructure:"sizing" yaml:"sizing"`
}

// SinksConfig controls sink discovery
type SinksConfig struct {
	Keyword string `mapstructure:"keyword" yaml:"keyword"` // case-sensitive name substring
}

// ReportConfig contains report output settings
type ReportConfig struct {
	Format string `mapstructure:"format" yaml:"format" validate:"oneof=text json csv"`
	Lang   string `mapstructure:"lang" yaml:"lang" validate:"oneof=en pt_BR"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level" yaml:"level" validate:"oneof=debug info warn warning error"`
	Format string `mapstructure:"format" yaml:"format" validate:"oneof=text json"`
}

// ExportConfig contains the optional persistence targets
type ExportConfig struct {
	SQLite string      `mapstructure:"sqlite" yaml:"sqlite"` // database file; empty disables
	Neo4j  Neo4jConfig `mapstructure:"neo4j" yaml:"neo4j"`
}

// Neo4jConfig contains the graph database connection
type Neo4jConfig struct {
	URI      string `mapstructure:"uri" yaml:"uri" validate:"omitempty,url"`
	User     string `mapstructure:"user" yaml:"user"`
	Password string `mapstructure:"password" yaml:"password"`
	Database string `mapstructure:"database" yaml:"database"`
}

// EventsConfig contains the capability event publisher settings
type EventsConfig struct {
	URL           string `mapstructure:"url" yaml:"url" validate:"omitempty,url"` // NATS server; empty disables
	SubjectPrefix string `mapstructure:"subject_prefix" yaml:"subject_prefix" validate:"required"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Sinks: SinksConfig{
			Keyword: "SANEPAR",
		},
		Report: ReportConfig{
			Format: "text",
			Lang:   "en",
		},
		Logging: LoggingConfig{
			Level:  "warn",
			Format: "text",
		},
		Export: ExportConfig{
			Neo4j: Neo4jConfig{
				User:     "neo4j",
				Database: "neo4j",
			},
		},
		Events: EventsConfig{
			SubjectPrefix: "gouhc",
		},
	}
}

// Load reads the configuration. An explicit path must exist; otherwise
// ./gouhc.{yaml,toml,json} is used when present. Environment variables
// override both.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v, DefaultConfig())

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("gouhc")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper, cfg *Config) {
	v.SetDefault("tables.appliances", cfg.Tables.Appliances)
	v.SetDefault("tables.sizing", cfg.Tables.Sizing)
	v.SetDefault("sinks.keyword", cfg.Sinks.Keyword)
	v.SetDefault("report.format", cfg.Report.Format)
	v.SetDefault("report.lang", cfg.Report.Lang)
	v.SetDefault("logging.level", cfg.Logging.Level)
	v.SetDefault("logging.format", cfg.Logging.Format)
	v.SetDefault("export.sqlite", cfg.Export.SQLite)
	v.SetDefault("export.neo4j.uri", cfg.Export.Neo4j.URI)
	v.SetDefault("export.neo4j.user", cfg.Export.Neo4j.User)
	v.SetDefault("export.neo4j.password", cfg.Export.Neo4j.Password)
	v.SetDefault("export.neo4j.database", cfg.Export.Neo4j.Database)
	v.SetDefault("events.url", cfg.Events.URL)
	v.SetDefault("events.subject_prefix", cfg.Events.SubjectPrefix)
}

// validate is a singleton validator instance
var validate *validator.Validate

func init() {
	validate = validator.New()
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("mapstructure"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			field := strings.TrimPrefix(fe.Namespace(), "Config.")
			return &ConfigError{Field: field, Message: fmt.Sprintf("failed %q check (value %v)", fe.Tag(), fe.Value())}
		}
		return err
	}
	return nil
}

// ConfigError represents a configuration error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return "config error in field '" + e.Field + "': " + e.Message
}
