package main

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/Awhiteweb/ec2-resource-monitoring/internal/awscloud"
	"github.com/Awhiteweb/ec2-resource-monitoring/internal/collector"
	"github.com/Awhiteweb/ec2-resource-monitoring/internal/report"
)

var collectCmd = &cobra.Command{
	Use:   "collect <region|all>",
	Short: "Collect instance details once and write the JSON report",
	Long: `Collect enumerates EC2 instances in the given region, or in every
catalog region when "all" is passed, and writes the normalized records to
the report file.

Collection is best-effort per region: a failed page fetch keeps the pages
already received for that region and moves on.`,
	Example: `  ec2inv collect eu-west-1
  ec2inv collect all
  ec2inv collect us-east-1 --output /tmp/inventory.json`,
	Args: cobra.ExactArgs(1),
	RunE: runCollect,
}

func init() {
	rootCmd.AddCommand(collectCmd)
}

func runCollect(cmd *cobra.Command, args []string) error {
	selector := args[0]
	if err := collector.ValidateSelector(selector); err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	setupLogging(cfg)

	coll := collector.New(awscloud.NewClient, collector.WithPageSize(cfg.PageSize))
	records, err := coll.Collect(cmd.Context(), selector)
	if err != nil {
		return err
	}

	if err := report.Write(cfg.Output, records); err != nil {
		return err
	}

	log.Info().Int("instances", len(records)).Str("selector", selector).Msg("collection complete")
	fmt.Printf("successfully wrote to %s\n", cfg.Output)
	return nil
}
