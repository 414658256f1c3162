// Package config loads the reader configuration from defaults, an optional
// config file, CLOUDREADER_* environment variables and command line flags.
package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"github.com/spf13/viper"

	"github.com/justyntemme/cloudreader/internal/logger"
)

const (
	// AppName names the config and data directories
	AppName = "cloudreader"

	// EnvPrefix prefixes every environment override
	EnvPrefix = "CLOUDREADER"

	configFileName = "config"
)

// Storage selects where bookmarks, history and settings are kept
type Storage struct {
	Driver string `mapstructure:"driver" toml:"driver" validate:"oneof=file sqlite memory"`
	Path   string `mapstructure:"path" toml:"path" validate:"required_unless=Driver memory"`
}

// Content selects the novel catalog
type Content struct {
	Source  string        `mapstructure:"source" toml:"source" validate:"oneof=mock epub"`
	Dir     string        `mapstructure:"dir" toml:"dir" validate:"required_if=Source epub"`
	Latency time.Duration `mapstructure:"latency" toml:"latency" validate:"gte=0"`
}

// Assistant configures the Gemini client
type Assistant struct {
	APIKey  string        `mapstructure:"apiKey" toml:"apiKey"`
	Model   string        `mapstructure:"model" toml:"model" validate:"required"`
	BaseURL string        `mapstructure:"baseURL" toml:"baseURL" validate:"required,url"`
	Timeout time.Duration `mapstructure:"timeout" toml:"timeout" validate:"gt=0"`
}

// Metrics configures the optional prometheus endpoint
type Metrics struct {
	Listen string `mapstructure:"listen" toml:"listen" validate:"omitempty,hostname_port"`
}

// Config is the complete configuration
type Config struct {
	Storage   Storage       `mapstructure:"storage" toml:"storage"`
	Content   Content       `mapstructure:"content" toml:"content"`
	Assistant Assistant     `mapstructure:"assistant" toml:"assistant"`
	Log       logger.Config `mapstructure:"log" toml:"log"`
	Metrics   Metrics       `mapstructure:"metrics" toml:"metrics"`

	// File is the config file that was read, empty if none
	File string `mapstructure:"-" toml:"-"`
}

// New returns a viper instance with every default and environment binding
// set. Callers bind flags onto it before calling Load.
func New() *viper.Viper {
	v := viper.New()

	v.SetDefault("storage.driver", "file")
	v.SetDefault("storage.path", StateDir())
	v.SetDefault("content.source", "mock")
	v.SetDefault("content.dir", "")
	v.SetDefault("content.latency", 200*time.Millisecond) //nolint:mnd
	v.SetDefault("assistant.apiKey", "")
	v.SetDefault("assistant.model", "gemini-2.5-flash")
	v.SetDefault("assistant.baseURL", "https://generativelanguage.googleapis.com")
	v.SetDefault("assistant.timeout", 30*time.Second) //nolint:mnd
	v.SetDefault("log.level", "info")
	v.SetDefault("log.reportCaller", false)
	v.SetDefault("log.console.enabled", false)
	v.SetDefault("log.console.pretty", true)
	v.SetDefault("log.file.enabled", true)
	v.SetDefault("log.file.path", filepath.Join(StateDir(), "logs"))
	v.SetDefault("log.file.info", "cloudreader.log")
	v.SetDefault("log.file.error", "cloudreader.error.log")
	v.SetDefault("log.file.maxSize", 10)   //nolint:mnd
	v.SetDefault("log.file.maxBackups", 3) //nolint:mnd
	v.SetDefault("log.file.maxAge", 28)    //nolint:mnd
	v.SetDefault("metrics.listen", "")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// the key is also picked up under the names other Gemini tools use
	_ = v.BindEnv("assistant.apiKey", EnvPrefix+"_ASSISTANT_APIKEY", "GEMINI_API_KEY", "API_KEY")

	return v
}

// Load reads the config file, if any, and decodes and validates the result.
// file overrides the default search path ($XDG_CONFIG_HOME/cloudreader).
func Load(v *viper.Viper, file string) (Config, error) {
	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName(configFileName)
		v.AddConfigPath(Dir())
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return Config{}, errors.Wrap(err, "failed to read config file")
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, errors.Wrap(err, "failed to decode config")
	}
	c.File = v.ConfigFileUsed()
	c.Log.AppName = AppName

	return c, Validate(c)
}

// Validate checks the struct constraints of c
func Validate(c Config) error {
	if err := validator.New().Struct(c); err != nil {
		return errors.Wrap(ErrInvalid, err.Error())
	}
	return nil
}

// Dump renders c as TOML, the format of the default config file
func Dump(c Config) (string, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return "", errors.Wrap(err, "encode config")
	}
	return buf.String(), nil
}

// Dir returns the directory the config file is looked up in
func Dir() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		home, err := os.UserHomeDir()
		if err != nil {
			return "."
		}
		configDir = filepath.Join(home, ".config")
	}
	return filepath.Join(configDir, AppName)
}

// StateDir returns the default data directory, $XDG_STATE_HOME/cloudreader
func StateDir() string {
	if dir := os.Getenv("XDG_STATE_HOME"); dir != "" {
		return filepath.Join(dir, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".local", "state", AppName)
}
