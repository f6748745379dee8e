// Package config provides Viper-based configuration loading for the quest
// compiler and loader.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// QuestConfig holds quest loading and generation settings.
type QuestConfig struct {
	// Enabled toggles the whole system; when false nothing loads.
	Enabled bool `mapstructure:"enabled"`
	// Debug lowers the log level to debug regardless of logging.level.
	Debug bool `mapstructure:"debug"`
	// Directory is the root of the quest JSON tree.
	Directory string `mapstructure:"quest_directory"`
	// Locales are the locale names quest text is generated for. They are
	// registered into the locale store before the load pass.
	Locales []string `mapstructure:"locales"`
	// DefaultNamePrefix is prepended to repeated-quest clone names.
	DefaultNamePrefix string `mapstructure:"default_quest_name_prefix"`
	// LimitRepeatedQuest is the clone count generated per repeatable quest.
	LimitRepeatedQuest int `mapstructure:"limit_repeated_quest"`
}

// AtStartConfig holds session-start behaviors.
type AtStartConfig struct {
	// DisableAllBuiltinQuests removes every template registered before the
	// load pass.
	DisableAllBuiltinQuests bool `mapstructure:"disable_all_builtin_quests"`
	// WipeEnabledCustomQuestsStateFromAllProfiles erases per-quest progress
	// for every loaded quest from every profile.
	WipeEnabledCustomQuestsStateFromAllProfiles bool `mapstructure:"wipe_enabled_custom_quests_state_from_all_profiles"`
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	Name            string        `mapstructure:"name"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxConns        int32         `mapstructure:"max_conns"`
	MinConns        int32         `mapstructure:"min_conns"`
	MaxConnLifetime time.Duration `mapstructure:"max_conn_lifetime"`
}

// DSN returns the PostgreSQL connection string.
//
// Precondition: Host, Port, User, and Name must be non-empty.
// Postcondition: Returns a valid PostgreSQL DSN string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: "debug", "info", "warn", "error".
	Level string `mapstructure:"level"`
	// Format is the log output format: "json" or "console".
	Format string `mapstructure:"format"`
}

// Config is the top-level application configuration.
type Config struct {
	Quest    QuestConfig    `mapstructure:",squash"`
	AtStart  AtStartConfig  `mapstructure:"at_start"`
	Database DatabaseConfig `mapstructure:"database"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

// Validate checks all configuration invariants.
//
// Postcondition: Returns nil if configuration is valid, or an error describing all violations.
func (c Config) Validate() error {
	var errs []string

	if err := validateQuest(c.Quest); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateDatabase(c.Database); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateLogging(c.Logging); err != nil {
		errs = append(errs, err.Error())
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

func validateQuest(q QuestConfig) error {
	var errs []string
	if q.Directory == "" {
		errs = append(errs, "quest_directory must not be empty")
	}
	if q.LimitRepeatedQuest < 0 {
		errs = append(errs, fmt.Sprintf("limit_repeated_quest must be >= 0, got %d", q.LimitRepeatedQuest))
	}
	for _, name := range q.Locales {
		if name == "" {
			errs = append(errs, "locales must not contain empty names")
			break
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

func validateDatabase(d DatabaseConfig) error {
	var errs []string
	if d.Host == "" {
		errs = append(errs, "database.host must not be empty")
	}
	if d.Port < 1 || d.Port > 65535 {
		errs = append(errs, fmt.Sprintf("database.port must be 1-65535, got %d", d.Port))
	}
	if d.User == "" {
		errs = append(errs, "database.user must not be empty")
	}
	if d.Name == "" {
		errs = append(errs, "database.name must not be empty")
	}
	validSSL := map[string]bool{"disable": true, "require": true, "verify-ca": true, "verify-full": true}
	if !validSSL[d.SSLMode] {
		errs = append(errs, fmt.Sprintf("database.sslmode must be one of [disable, require, verify-ca, verify-full], got %q", d.SSLMode))
	}
	if d.MaxConns < 1 {
		errs = append(errs, fmt.Sprintf("database.max_conns must be >= 1, got %d", d.MaxConns))
	}
	if d.MinConns < 0 {
		errs = append(errs, fmt.Sprintf("database.min_conns must be >= 0, got %d", d.MinConns))
	}
	if d.MinConns > d.MaxConns {
		errs = append(errs, "database.min_conns must not exceed database.max_conns")
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

func validateLogging(l LoggingConfig) error {
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[l.Level] {
		return fmt.Errorf("logging.level must be one of [debug, info, warn, error], got %q", l.Level)
	}
	validFormats := map[string]bool{"json": true, "console": true}
	if !validFormats[l.Format] {
		return fmt.Errorf("logging.format must be one of [json, console], got %q", l.Format)
	}
	return nil
}

// Load reads configuration from the given file path, applies environment variable
// overrides, and validates the result.
//
// Precondition: path must be a valid file path to a YAML configuration file.
// Postcondition: Returns a valid Config or a non-nil error.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetConfigFile(path)

	// Environment variable overrides with QUESTFORGE_ prefix
	v.SetEnvPrefix("QUESTFORGE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return Config{}, fmt.Errorf("reading config file: %w", err)
	}

	return LoadFromViper(v)
}

// LoadFromViper builds a Config from an already-configured Viper instance.
//
// Precondition: v must be non-nil and have configuration values set.
// Postcondition: Returns a valid Config or a non-nil error.
func LoadFromViper(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshalling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("enabled", true)
	v.SetDefault("debug", false)
	v.SetDefault("quest_directory", "quests")
	v.SetDefault("locales", []string{"en"})
	v.SetDefault("default_quest_name_prefix", "")
	v.SetDefault("limit_repeated_quest", 10)

	v.SetDefault("at_start.disable_all_builtin_quests", false)
	v.SetDefault("at_start.wipe_enabled_custom_quests_state_from_all_profiles", false)

	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "questforge")
	v.SetDefault("database.password", "questforge")
	v.SetDefault("database.name", "questforge")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_conns", 10)
	v.SetDefault("database.min_conns", 2)
	v.SetDefault("database.max_conn_lifetime", "1h")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
}
