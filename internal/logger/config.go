package logger

// Console configures logging to stderr
type Console struct {
	Enabled bool `mapstructure:"enabled" toml:"enabled"`
	// Pretty uses zerolog's human readable console writer instead of JSON
	Pretty bool `mapstructure:"pretty" toml:"pretty"`
}

// File configures the rolling log files
type File struct {
	Enabled bool   `mapstructure:"enabled" toml:"enabled"`
	Path    string `mapstructure:"path" toml:"path"`

	InfoLog  string `mapstructure:"info" toml:"info"`
	ErrorLog string `mapstructure:"error" toml:"error"`

	MaxSize    int `mapstructure:"maxSize" toml:"maxSize" validate:"gte=0"`
	MaxBackups int `mapstructure:"maxBackups" toml:"maxBackups" validate:"gte=0"`
	MaxAge     int `mapstructure:"maxAge" toml:"maxAge" validate:"gte=0"`
}

// Config is the logger configuration
type Config struct {
	Level        string  `mapstructure:"level" toml:"level" validate:"omitempty,oneof=trace debug info warn error fatal panic disabled"`
	ReportCaller bool    `mapstructure:"reportCaller" toml:"reportCaller"`
	AppName      string  `mapstructure:"-" toml:"-"`
	Console      Console `mapstructure:"console" toml:"console"`
	File         File    `mapstructure:"file" toml:"file"`
}
