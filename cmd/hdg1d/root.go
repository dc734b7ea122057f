// Package cmd implements the hdg1d command-line tool: a root command
// carrying the shared --config flag (the run subcommand adds
// --cpuprofile and --nout), grounded on
// gocfd/cmd/1D.go's cobra subcommand style (that file's own rootCmd
// wiring wasn't present in the retrieved source, so the flag-parsing
// and config-loading boilerplate below follows the conventional
// cobra-cli root command shape instead).
package cmd

import (
	"fmt"
	"os"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "hdg1d",
	Short: "HDG solver core for a 1D multi-variable nonlinear parabolic system",
	Long: `hdg1d assembles the hybridizable discontinuous Galerkin blocks for
a 1D nonlinear parabolic system, evaluates the DAE residual and Jacobian
linear-solve a time integrator needs, and drives a minimal backward-Euler
integrator end to end, writing ".plot" trajectory files.`,
}

// Execute runs the root command; main calls this and exits non-zero on
// error.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (TOML, required)")
}

// initConfig expands a leading ~ in --config before any subcommand
// reads it; config.Load takes the expanded path directly, so no global
// viper instance is involved.
func initConfig() {
	if cfgFile == "" {
		return
	}
	path, err := homedir.Expand(cfgFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, "hdg1d: expanding --config path:", err)
		os.Exit(1)
	}
	cfgFile = path
}
