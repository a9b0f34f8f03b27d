// Package main provides the ivy CLI: inspect the capability gate and run
// creation operations against a configured engine.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/umer200/ivy/internal/config"
	"github.com/umer200/ivy/internal/dispatch"
)

const version = "v0.1.0"

var (
	// configFile is set by the --config flag.
	configFile string

	// ctx is the execution context, initialized on startup.
	ctx *dispatch.Context
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "ivy",
	Short: "ivy normalizes array creation across numeric engines",
	Long: `ivy runs array operations through a normalization layer that gives the
same dtype, device and shape behavior on every configured engine.

Configuration comes from --config (YAML, TOML or JSON) and IVY_* variables:
  backend, backend_version, devices, default_device, default_float, log_level`,
	PersistentPreRunE: initContext,
	SilenceUsage:      true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(capsCmd)
	rootCmd.AddCommand(createCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "ivy %s\n", version)
	},
}

// initContext loads config and binds the engine.
func initContext(cmd *cobra.Command, args []string) error {
	if cmd.Name() == "version" {
		return nil
	}

	cfg, err := config.Load(configFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	c, err := cfg.Open(cfg.Logger(cmd.ErrOrStderr()))
	if err != nil {
		return fmt.Errorf("open backend: %w", err)
	}
	ctx = c
	return nil
}
