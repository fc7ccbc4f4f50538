package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"syscall"
	"time"

	"github.com/oklog/run"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/Awhiteweb/ec2-resource-monitoring/internal/awscloud"
	"github.com/Awhiteweb/ec2-resource-monitoring/internal/collector"
	"github.com/Awhiteweb/ec2-resource-monitoring/internal/config"
	"github.com/Awhiteweb/ec2-resource-monitoring/internal/emitter"
	"github.com/Awhiteweb/ec2-resource-monitoring/internal/report"
	"github.com/Awhiteweb/ec2-resource-monitoring/internal/store"
	"github.com/Awhiteweb/ec2-resource-monitoring/pkg/details"
)

var watchCmd = &cobra.Command{
	Use:   "watch <region|all>",
	Short: "Collect on an interval, serving metrics and tracking changes",
	Long: `Watch repeats the collection on a fixed interval. Each cycle rewrites
the report file, updates Prometheus metrics on the metrics endpoint, and
compares the inventory against the previous cycle's snapshot to log added
and removed instances per region.`,
	Example: `  ec2inv watch all
  ec2inv watch eu-west-1 --config ec2inv.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	selector := args[0]
	if err := collector.ValidateSelector(selector); err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	setupLogging(cfg)

	registry := prometheus.NewRegistry()
	metrics := emitter.NewMetrics(registry)

	snapshots, err := store.Open(cfg.Watch.StorePath)
	if err != nil {
		return err
	}
	defer func() { _ = snapshots.Close() }()

	coll := collector.New(awscloud.NewClient,
		collector.WithPageSize(cfg.PageSize),
		collector.WithObserver(metrics))

	log.Info().
		Str("selector", selector).
		Dur("interval", cfg.Watch.Interval).
		Str("metrics", cfg.Watch.MetricsAddr).
		Msg("watch starting")

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	var group run.Group

	group.Add(run.SignalHandler(ctx, os.Interrupt, syscall.SIGTERM))

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	server := &http.Server{Addr: cfg.Watch.MetricsAddr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	group.Add(func() error {
		return server.ListenAndServe()
	}, func(error) {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		_ = server.Shutdown(shutdownCtx)
	})

	group.Add(func() error {
		cycle(ctx, coll, cfg, snapshots, metrics, selector)

		ticker := time.NewTicker(cfg.Watch.Interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				cycle(ctx, coll, cfg, snapshots, metrics, selector)
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}, func(error) {
		cancel()
	})

	err = group.Run()
	var signalErr run.SignalError
	if errors.As(err, &signalErr) || errors.Is(err, context.Canceled) {
		log.Info().Msg("shutting down")
		return nil
	}
	return err
}

// cycle runs one collection, rewrites the report, and records diffs against
// the previous snapshot. Cycle-level problems are logged, never fatal.
func cycle(ctx context.Context, coll *collector.Collector, cfg *config.Config, snapshots *store.Store, metrics *emitter.Metrics, selector string) {
	start := time.Now()

	records, err := coll.Collect(ctx, selector)
	if err != nil {
		log.Error().Err(err).Msg("collection failed")
		return
	}

	if err := report.Write(cfg.Output, records); err != nil {
		log.Error().Err(err).Msg("report write failed")
	}

	for region, current := range groupByRegion(records, selector) {
		recordRegionDiff(snapshots, region, current)
	}

	metrics.RunCompleted(time.Since(start).Seconds())
	log.Info().Int("instances", len(records)).Dur("duration", time.Since(start)).Msg("cycle complete")
}

// groupByRegion splits records by their stamped region. Regions in scope with
// no records still get an entry so disappearances are detected.
func groupByRegion(records []details.Details, selector string) map[string][]details.Details {
	grouped := make(map[string][]details.Details)
	if selector == collector.AllRegions {
		for _, region := range collector.Regions {
			grouped[region] = []details.Details{}
		}
	} else {
		grouped[selector] = []details.Details{}
	}
	for _, record := range records {
		grouped[record.Region] = append(grouped[record.Region], record)
	}
	return grouped
}

func recordRegionDiff(snapshots *store.Store, region string, current []details.Details) {
	previous, err := snapshots.Snapshot(region)
	if err != nil {
		log.Warn().Err(err).Str("region", region).Msg("snapshot load failed")
		return
	}

	if previous != nil {
		added, removed := store.Diff(previous, current)
		if len(added) > 0 || len(removed) > 0 {
			log.Info().
				Str("region", region).
				Strs("added", added).
				Strs("removed", removed).
				Msg("inventory changed")
		}
	}

	if err := snapshots.SaveSnapshot(region, current); err != nil {
		log.Warn().Err(err).Str("region", region).Msg("snapshot save failed")
	}
}
