package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config represents the main configuration structure
type Config struct {
	SourceDirectory string   `mapstructure:"source_directory"`
	PhotoExtensions []string `mapstructure:"photo_extensions"`
	VideoExtensions []string `mapstructure:"video_extensions"`

	IgnoredDirectories []string `mapstructure:"ignored_directories"`
	IgnoredFiles       []string `mapstructure:"ignored_files"`
	CleanupPaths       []string `mapstructure:"cleanup_paths"`

	Dates    DatesConfig    `mapstructure:"dates"`
	Renaming RenamingConfig `mapstructure:"renaming"`
	Security SecurityConfig `mapstructure:"security"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

// DatesConfig contains the priority-ordered metadata tag tables used by the
// capture date resolver. Local tags carry no timezone and are taken verbatim;
// zoned tags may carry an offset and are converted from UTC when they do not.
type DatesConfig struct {
	LocalTags []string `mapstructure:"local_tags"`
	ZonedTags []string `mapstructure:"zoned_tags"`
}

// RenamingConfig contains target-name generation settings
type RenamingConfig struct {
	PhotoPrefix string `mapstructure:"photo_prefix"`
	VideoPrefix string `mapstructure:"video_prefix"`
	MaxSuffix   int    `mapstructure:"max_suffix"`
}

// SecurityConfig contains safety settings
type SecurityConfig struct {
	DryRun         bool `mapstructure:"dry_run"`
	MaxFilesPerRun int  `mapstructure:"max_files_per_run"`
}

// LoggingConfig contains logging settings
type LoggingConfig struct {
	Level      string `mapstructure:"level"`
	FileName   string `mapstructure:"file_name"`
	MaxSize    int    `mapstructure:"max_size"` // MB
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAge     int    `mapstructure:"max_age"` // days
	Compress   bool   `mapstructure:"compress"`
}

// DefaultConfig returns a configuration with default values. These defaults
// are the fixed data tables of the tool; a config file or environment
// variables may override them but none is required.
func DefaultConfig() *Config {
	return &Config{
		PhotoExtensions: []string{
			".jpg", ".jpeg", ".png", ".heic", ".heif", ".tiff", ".tif",
			".webp", ".bmp", ".gif", ".dng", ".cr2", ".cr3", ".nef", ".arw",
		},
		VideoExtensions: []string{
			".mp4", ".mov", ".avi", ".mkv", ".m4v", ".mpg", ".mts", ".3gp", ".webm",
		},
		IgnoredDirectories: []string{
			"exiftool_files", "node_modules", "$recycle.bin", "system volume information",
		},
		IgnoredFiles: []string{
			"timeline-renamer.log", "desktop.ini", "thumbs.db",
		},
		CleanupPaths: []string{
			"exiftool_files", "exiftool.exe", ".timeline-renamer.tmp",
		},
		Dates: DatesConfig{
			LocalTags: []string{
				"DateTimeOriginal", "DateTimeDigitized", "CreateDate", "DateTime",
			},
			ZonedTags: []string{
				"CreationDate", "MediaCreateDate", "TrackCreateDate", "GPSDateTime",
			},
		},
		Renaming: RenamingConfig{
			PhotoPrefix: "IMG_",
			VideoPrefix: "VID_",
			MaxSuffix:   10000,
		},
		Security: SecurityConfig{
			DryRun:         false,
			MaxFilesPerRun: 0, // 0 means no limit
		},
		Logging: LoggingConfig{
			Level:      "info",
			FileName:   "timeline-renamer.log",
			MaxSize:    10,
			MaxBackups: 3,
			MaxAge:     30,
			Compress:   true,
		},
	}
}

// LoadConfig loads configuration from file and environment variables
func LoadConfig(configPath string) (*Config, error) {
	config := DefaultConfig()

	viper.SetConfigType("yaml")

	if configPath != "" {
		viper.SetConfigFile(configPath)
	} else {
		viper.SetConfigName("config")
		viper.AddConfigPath(".")
		viper.AddConfigPath("$HOME/.timeline-renamer")
		viper.AddConfigPath("/etc/timeline-renamer")
	}

	viper.SetEnvPrefix("TIMELINE_RENAMER")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, we'll use defaults
	}

	if err := viper.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return config, nil
}

// Validate validates and normalizes the configuration
func (c *Config) Validate() error {
	c.PhotoExtensions = normalizeExtensions(c.PhotoExtensions)
	c.VideoExtensions = normalizeExtensions(c.VideoExtensions)
	c.IgnoredDirectories = lowercaseAll(c.IgnoredDirectories)
	c.IgnoredFiles = lowercaseAll(c.IgnoredFiles)

	if len(c.Dates.LocalTags) == 0 && len(c.Dates.ZonedTags) == 0 {
		return fmt.Errorf("no metadata date tags configured")
	}

	if c.Renaming.PhotoPrefix == "" {
		c.Renaming.PhotoPrefix = "IMG_"
	}
	if c.Renaming.VideoPrefix == "" {
		c.Renaming.VideoPrefix = "VID_"
	}
	if c.Renaming.MaxSuffix <= 0 {
		c.Renaming.MaxSuffix = 10000
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[strings.ToLower(c.Logging.Level)] {
		return fmt.Errorf("invalid log level: %s (valid: debug, info, warn, error)", c.Logging.Level)
	}

	return nil
}

// IsPhotoExtension checks if the extension is for a photo file
func (c *Config) IsPhotoExtension(ext string) bool {
	return containsString(c.PhotoExtensions, strings.ToLower(ext))
}

// IsVideoExtension checks if the extension is for a video file
func (c *Config) IsVideoExtension(ext string) bool {
	return containsString(c.VideoExtensions, strings.ToLower(ext))
}

// IsIgnoredDirectory checks if a directory name should be skipped during the
// walk. Hidden directories (leading dot) are always skipped.
func (c *Config) IsIgnoredDirectory(name string) bool {
	if strings.HasPrefix(name, ".") {
		return true
	}
	return containsString(c.IgnoredDirectories, strings.ToLower(name))
}

// IsIgnoredFile checks if a file name should be skipped during the walk
func (c *Config) IsIgnoredFile(name string) bool {
	return containsString(c.IgnoredFiles, strings.ToLower(name))
}

// LogFilePath returns the absolute path of the run log inside the scanned
// root, or an empty string if file logging is disabled.
func (c *Config) LogFilePath() string {
	if c.Logging.FileName == "" || c.SourceDirectory == "" {
		return ""
	}
	return filepath.Join(c.SourceDirectory, c.Logging.FileName)
}

// Helper functions

func containsString(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}

func lowercaseAll(list []string) []string {
	out := make([]string, len(list))
	for i, s := range list {
		out[i] = strings.ToLower(s)
	}
	return out
}

func normalizeExtensions(extensions []string) []string {
	normalized := make([]string, len(extensions))
	for i, ext := range extensions {
		ext = strings.ToLower(ext)
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		normalized[i] = ext
	}
	return normalized
}

// DirExists returns true if the given path exists and is a directory.
func DirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
