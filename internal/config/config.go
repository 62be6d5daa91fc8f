// Package config loads editor settings through viper: defaults, an optional
// config file, MEDSCRIBE_* environment variables and bound CLI flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jwulff/medscribe/internal/daemon"
	"github.com/spf13/viper"
)

// Recognizer backends.
const (
	RecognizerDaemon = "daemon"
	RecognizerNone   = "none"
)

// EnvPrefix prefixes environment overrides, e.g. MEDSCRIBE_LOCALE.
const EnvPrefix = "MEDSCRIBE"

// ErrInvalid wraps configuration validation failures.
var ErrInvalid = errors.New("invalid configuration")

// Config holds every editor setting.
type Config struct {
	Locale        string   `mapstructure:"locale"`
	Recognizer    string   `mapstructure:"recognizer"`
	SocketPath    string   `mapstructure:"socket_path"`
	TemplatesFile string   `mapstructure:"templates_file"`
	ExportDir     string   `mapstructure:"export_dir"`
	DatedFilename bool     `mapstructure:"dated_filename"`
	ArchivePath   string   `mapstructure:"archive_path"`
	PrintCommand  []string `mapstructure:"print_command"`
	LogDir        string   `mapstructure:"log_dir"`
	LogLevel      string   `mapstructure:"log_level"`
}

// Dir is the per-user configuration directory.
func Dir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "."
	}
	return filepath.Join(dir, "medscribe")
}

// SetDefaults registers default values on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("locale", "en-US")
	v.SetDefault("recognizer", RecognizerDaemon)
	v.SetDefault("socket_path", daemon.DefaultSocketPath())
	v.SetDefault("templates_file", "")
	v.SetDefault("export_dir", ".")
	v.SetDefault("dated_filename", false)
	v.SetDefault("archive_path", "")
	v.SetDefault("print_command", []string{})
	v.SetDefault("log_dir", Dir())
	v.SetDefault("log_level", "info")
}

// Prepare sets defaults, environment handling and the config file search
// path on v. An explicit file overrides the search.
func Prepare(v *viper.Viper, file string) {
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if file != "" {
		v.SetConfigFile(file)
		return
	}
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(Dir())
}

// ReadFile reads the config file if there is one. A missing file in the
// search path is not an error.
func ReadFile(v *viper.Viper) error {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("read config: %w", err)
	}
	return nil
}

// Load decodes and validates the settings held by v.
func Load(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks values that cannot be defaulted.
func (c Config) Validate() error {
	switch c.Recognizer {
	case RecognizerDaemon, RecognizerNone:
	default:
		return fmt.Errorf("%w: recognizer %q (want %s or %s)", ErrInvalid, c.Recognizer, RecognizerDaemon, RecognizerNone)
	}
	if strings.TrimSpace(c.Locale) == "" {
		return fmt.Errorf("%w: locale is empty", ErrInvalid)
	}
	if c.Recognizer == RecognizerDaemon && c.SocketPath == "" {
		return fmt.Errorf("%w: socket_path is empty", ErrInvalid)
	}
	return nil
}
