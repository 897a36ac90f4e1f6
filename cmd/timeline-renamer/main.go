package main

import (
	"fmt"
	"os"
	"sort"
	"time"

	"timeline-renamer-go/internal/config"
	"timeline-renamer-go/internal/logger"
	"timeline-renamer-go/internal/metadata"
	"timeline-renamer-go/internal/namer"
	"timeline-renamer-go/internal/renamer"
	"timeline-renamer-go/internal/resolver"
	"timeline-renamer-go/internal/statistics"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	dryRun  bool
	verbose bool
	quiet   bool
)

// rootCmd is the base command for the CLI.
var rootCmd = &cobra.Command{
	Use:   "timeline-renamer [directory]",
	Short: "Rename photos and videos to their capture timestamp",
	Long: `Timeline Renamer walks a directory tree and renames every photo and
video to a normalized TYPE_yyyy-MM-dd_HH-mm-ss form, deriving the timestamp
from embedded metadata with a prioritized fallback chain.

Features:
- Capture dates from EXIF and container metadata via a single exiftool session
- Local-time tags preferred over zoned tags; UTC values converted to local time
- Collision-safe suffixing with already-renamed detection
- Dry-run mode for safe testing
- Console transcript mirrored to a log file in the scanned root`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runRename(args, dryRun)
	},
}

// scanCmd previews a run without touching any file.
var scanCmd = &cobra.Command{
	Use:   "scan [directory]",
	Short: "Preview what a run would rename without changing anything",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runRename(args, true)
	},
}

// testExifCmd dumps the metadata mapping and resolved capture moment for one file.
var testExifCmd = &cobra.Command{
	Use:   "test-exif <file>",
	Short: "Show metadata date fields and the resolved capture moment for a file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTestExif(args[0])
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "enable verbose logging")
	rootCmd.PersistentFlags().BoolVar(&quiet, "quiet", false, "suppress non-error output")

	rootCmd.Flags().BoolVar(&dryRun, "dry-run", false, "simulate the run without renaming anything")

	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(testExifCmd)
}

// initConfig loads configuration file and environment variables.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		viper.AddConfigPath("$HOME/.timeline-renamer")
		viper.AddConfigPath("/etc/timeline-renamer")
	}

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintf(os.Stderr, "Using config file: %s\n", viper.ConfigFileUsed())
	}
}

// runRename executes the rename pipeline over the given directory.
func runRename(args []string, dry bool) error {
	cfg, err := loadConfig(args)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if dry {
		cfg.Security.DryRun = true
	}

	log := setupLogger(cfg)
	stats := statistics.NewStatistics()
	reader := metadata.NewDefaultReader(log)
	res := resolver.New(log, cfg.Dates.LocalTags, cfg.Dates.ZonedTags, time.Local)

	run := renamer.New(cfg, log, stats, reader, res)
	if err := run.Run(); err != nil {
		return fmt.Errorf("rename run failed: %w", err)
	}

	if !quiet {
		fmt.Println("\n" + stats.GetSummary())
	}

	return nil
}

// runTestExif prints the date fields found in a single file and how they resolve.
func runTestExif(filePath string) error {
	if !fileExists(filePath) {
		return fmt.Errorf("file does not exist: %s", filePath)
	}

	fmt.Printf("Reading metadata for: %s\n", filePath)

	log := logrus.New()
	log.SetLevel(logrus.WarnLevel)

	reader := metadata.NewDefaultReader(log)
	defer reader.Close()

	tags, err := reader.Read(filePath)
	if err != nil {
		fmt.Printf("No metadata available: %v\n", err)
		return nil
	}

	names := make([]string, 0, len(tags))
	for name := range tags {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Printf("  %-24s %s\n", name, tags[name].Raw)
	}

	cfg := config.DefaultConfig()
	res := resolver.New(log, cfg.Dates.LocalTags, cfg.Dates.ZonedTags, time.Local)
	if moment := res.Resolve(tags); moment != nil {
		fmt.Printf("Resolved capture moment: %s\n", namer.FormatStamp(*moment))
	} else {
		fmt.Println("No usable capture date found")
	}

	return nil
}

// loadConfig loads configuration and applies CLI arguments.
func loadConfig(args []string) (*config.Config, error) {
	cfg, err := config.LoadConfig(cfgFile)
	if err != nil {
		return nil, err
	}

	if len(args) > 0 {
		cfg.SourceDirectory = args[0]
	}
	if cfg.SourceDirectory == "" {
		cfg.SourceDirectory = "."
	}

	if !config.DirExists(cfg.SourceDirectory) {
		return nil, fmt.Errorf("source directory does not exist: %s", cfg.SourceDirectory)
	}

	return cfg, nil
}

// setupLogger configures and returns a logger.
func setupLogger(cfg *config.Config) *logrus.Logger {
	loggerCfg := logger.LoggerConfig{
		Level:      cfg.Logging.Level,
		FilePath:   cfg.LogFilePath(),
		MaxSize:    cfg.Logging.MaxSize,
		MaxBackups: cfg.Logging.MaxBackups,
		MaxAge:     cfg.Logging.MaxAge,
		Compress:   cfg.Logging.Compress,
		Console:    !quiet,
	}

	if verbose {
		loggerCfg.Level = "debug"
	}
	if quiet {
		loggerCfg.Level = "error"
	}

	log, err := logger.NewLogger(loggerCfg)
	if err != nil {
		log = logrus.New()
		log.SetLevel(logrus.InfoLevel)
	}

	return log
}

// fileExists returns true if the given path exists and is a file.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
