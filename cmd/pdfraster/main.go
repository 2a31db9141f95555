// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the pdfraster CLI. The root command
// performs the conversion; doctor, history, and version are subcommands.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/pdfraster/internal/logging"
	"github.com/pdiddy/pdfraster/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

const (
	defaultDPI    = 200
	defaultFormat = "png"
)

var rootCmd = &cobra.Command{
	Use:   "pdfraster <pdf_file> <output_dir>",
	Short: "Convert a PDF into one raster image per page",
	Long: `pdfraster converts a PDF document into a sequence of raster images,
one per page, delegating rasterization to poppler's pdftoppm.

Before any conversion it verifies that poppler is installed, that the
input PDF exists and is readable, that the output directory exists (or
can be created) and is writable, and that the requested image format
supports an alpha channel. Pages are written as page_1.<ext> through
page_N.<ext>.`,
	Args:          cobra.ExactArgs(2),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runConvert,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./pdfraster.yaml or ~/.config/pdfraster/config.yaml)")

	rootCmd.Flags().Int("dpi", 0, "dots per inch for the output images (default 200)")
	rootCmd.Flags().String("fmt", "", `output image format: png, tiff, or ppm (default "png")`)
	rootCmd.Flags().String("poppler_path", "", "directory containing the poppler executables if not on PATH")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("pdfraster")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "pdfraster"))
		}
	}

	viper.SetDefault("render.dpi", defaultDPI)
	viper.SetDefault("render.format", defaultFormat)
	viper.SetDefault("history.enabled", true)

	viper.SetEnvPrefix("PDFRASTER")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// appConfig assembles the tool configuration from viper.
func appConfig() types.Config {
	return types.Config{
		Render: types.RenderConfig{
			DPI:         viper.GetInt("render.dpi"),
			Format:      viper.GetString("render.format"),
			PopplerPath: viper.GetString("render.poppler_path"),
		},
		History: types.HistoryConfig{
			Enabled: viper.GetBool("history.enabled"),
			Dir:     viper.GetString("history.dir"),
		},
		Logging: types.LoggingConfig{
			Level:      viper.GetString("logging.level"),
			Format:     viper.GetString("logging.format"),
			File:       viper.GetString("logging.file"),
			MaxSizeMB:  viper.GetInt("logging.max_size_mb"),
			MaxBackups: viper.GetInt("logging.max_backups"),
		},
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		logging.Error("pdfraster failed", "error", err)
		os.Exit(1)
	}
}
