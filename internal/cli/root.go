// Package cli provides the command-line interface for photo-import.
package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/google/uuid"
	"github.com/raphaelgruber/photo-import/internal/config"
	"github.com/spf13/cobra"
)

var (
	// Version is set at build time.
	Version = "0.1.0"

	// Global flags
	verbose    bool
	configPath string

	// Global config and logger
	cfg        config.Config
	logger     *slog.Logger
	logCleanup func() error
)

// rootCmd imports the photos given as arguments.
var rootCmd = &cobra.Command{
	Use:   "photo-import <file>...",
	Short: "Import photos into the photo library and website",
	Long: `Photo-import walks through the given photos one at a time.

For each photo it reads the capture date (and GPS position, if any) from the
EXIF data, asks for a new filename, a title and a caption, moves the photo to
<photos>/<date>/<name><ext>, writes <website>/<date>/<name>.html and uploads
the photo with the configured upload command.

Examples:
  photo-import DSC_0001.jpg
  photo-import ~/Downloads/*.jpg
  photo-import --config ./photo-import.yaml -v IMG_2044.HEIC`,
	Version:       Version,
	Args:          cobra.MinimumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip setup for help
		if cmd.Name() == "help" {
			return nil
		}

		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}

		level := cfg.Level()
		if verbose {
			level = slog.LevelDebug
		}

		logger, logCleanup = config.SetupLogger(cfg.LogFile, level)
		logger = logger.With("run_id", uuid.NewString())
		logger.Debug("photo-import starting",
			"version", Version,
			"command", cmd.Name(),
			"photos", cfg.Photos,
			"website", cfg.Website,
		)

		return nil
	},
	RunE: runImport,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	err := rootCmd.Execute()
	closeLog()
	return err
}

// closeLog runs after every command, including failed ones.
func closeLog() {
	if logCleanup == nil {
		return
	}
	if err := logCleanup(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to close log file: %v\n", err)
	}
	logCleanup = nil
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default "+config.DefaultPath()+")")

	// Add subcommands
	rootCmd.AddCommand(pagesCmd)
	rootCmd.AddCommand(configCmd)
}
