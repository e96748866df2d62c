// Package cmd implements the locmerge command line interface.
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/carvoy/locmerge/internal/config"
	"github.com/carvoy/locmerge/pkg/logging"
)

var (
	// Version information set by main.
	Version = "dev"
	// Commit is the git commit hash.
	Commit = "unknown"
	// Date is the build date.
	Date = "unknown"
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "locmerge",
	Short: "Unified car rental location catalog",
	Long: `Locmerge reconciles pickup and dropoff locations from every supplier
feed into one unified catalog. Records are normalized, classified by
location type, grouped by city and published as a single JSON document
that downstream search and booking services consume.`,
}

// Execute runs the root command with signal-aware cancellation.
func Execute(version, commit, date string) {
	Version = version
	Commit = commit
	Date = date
	rootCmd.Version = fmt.Sprintf("%s (commit %s, built %s)", version, commit, date)

	ctx, cancel := signal.NotifyContext(context.Background(),
		syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "only log warnings and errors")
	rootCmd.PersistentFlags().String("log-level", "", "explicit log level (trace, debug, info, warn, error)")
	cobra.CheckErr(viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose")))
	cobra.CheckErr(viper.BindPFlag("quiet", rootCmd.PersistentFlags().Lookup("quiet")))
	cobra.CheckErr(viper.BindPFlag("log-level", rootCmd.PersistentFlags().Lookup("log-level")))
}

// initConfig loads .env files, binds the environment and configures logging.
func initConfig() {
	config.Init()
	configureLogging()
}

// configureLogging sets the log level. Precedence: --log-level, then the
// LOG_LEVEL environment variable, then --verbose/--quiet.
func configureLogging() {
	level := zerolog.InfoLevel
	if viper.GetBool("verbose") {
		level = zerolog.DebugLevel
	}
	if viper.GetBool("quiet") {
		level = zerolog.WarnLevel
	}
	if envLevel := os.Getenv("LOG_LEVEL"); envLevel != "" {
		if parsed, err := zerolog.ParseLevel(envLevel); err == nil {
			level = parsed
		}
	}
	if flagLevel := viper.GetString("log-level"); flagLevel != "" {
		if parsed, err := zerolog.ParseLevel(flagLevel); err == nil {
			level = parsed
		}
	}
	logging.SetLevel(level)
}
