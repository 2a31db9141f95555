package types

// RenderConfig holds defaults for the conversion stage. CLI flags override
// these values.
type RenderConfig struct {
	// DPI is the default rasterization resolution (default 200).
	DPI int `json:"dpi" yaml:"dpi"`

	// Format is the default output image format (default "png").
	Format string `json:"format" yaml:"format"`

	// PopplerPath is the directory holding the poppler executables when
	// they are not on PATH.
	PopplerPath string `json:"poppler_path,omitempty" yaml:"poppler_path,omitempty"`
}

// HistoryConfig holds settings for the conversion history ledger.
type HistoryConfig struct {
	// Enabled controls whether completed conversions are recorded
	// (default true).
	Enabled bool `json:"enabled" yaml:"enabled"`

	// Dir is the directory holding history.db
	// (default ~/.config/pdfraster).
	Dir string `json:"dir,omitempty" yaml:"dir,omitempty"`
}

// LoggingConfig holds settings for the process-wide logger.
type LoggingConfig struct {
	// Level is the minimum level to emit: debug, info, warn, or error
	// (default info).
	Level string `json:"level,omitempty" yaml:"level,omitempty"`

	// Format selects console or json output (default console).
	Format string `json:"format,omitempty" yaml:"format,omitempty"`

	// File, when set, sends log output to a rotating file instead of
	// stderr.
	File string `json:"file,omitempty" yaml:"file,omitempty"`

	// MaxSizeMB is the size at which the log file rotates (default 10).
	MaxSizeMB int `json:"max_size_mb,omitempty" yaml:"max_size_mb,omitempty"`

	// MaxBackups is the number of rotated files to retain (default 3).
	MaxBackups int `json:"max_backups,omitempty" yaml:"max_backups,omitempty"`
}

// Config groups all tool configuration.
type Config struct {
	Render  RenderConfig  `json:"render" yaml:"render"`
	History HistoryConfig `json:"history" yaml:"history"`
	Logging LoggingConfig `json:"logging" yaml:"logging"`
}
