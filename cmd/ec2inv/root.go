package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/Awhiteweb/ec2-resource-monitoring/internal/config"
)

var (
	version = "0.1.0"

	flagConfig   string
	flagOutput   string
	flagPageSize int32
	flagDebug    bool

	rootCmd = &cobra.Command{
		Use:   "ec2inv",
		Short: "EC2 instance inventory across AWS regions",
		Long: `ec2inv collects EC2 instance details from one AWS region or from
every region in the catalog, normalizes each instance and its Name, Project
and Environment tags into a flat record, and writes the result as a JSON
array to instance_results.json.`,
		Version: version,
	}
)

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagConfig, "config", "c", "", "Path to YAML config file")
	rootCmd.PersistentFlags().StringVarP(&flagOutput, "output", "o", "", "Report path (default instance_results.json)")
	rootCmd.PersistentFlags().Int32Var(&flagPageSize, "page-size", 0, "Instances per describe-instances page (default 25)")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Enable debug logging")
}

// loadConfig resolves the effective configuration: file if given, defaults
// otherwise, with flags overriding either.
func loadConfig() (*config.Config, error) {
	cfg := config.Default()
	if flagConfig != "" {
		loaded, err := config.Load(flagConfig)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if flagOutput != "" {
		cfg.Output = flagOutput
	}
	if flagPageSize != 0 {
		cfg.PageSize = flagPageSize
	}
	if flagDebug {
		cfg.Log.Level = "debug"
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setupLogging(cfg *config.Config) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	level, err := zerolog.ParseLevel(cfg.Log.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
}
