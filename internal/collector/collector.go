// Package collector aggregates EC2 instance details across one or all AWS
// regions. Regions are processed sequentially in catalog order and each
// region's pages are drained to completion before the next region starts.
package collector

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Awhiteweb/ec2-resource-monitoring/internal/awscloud"
	"github.com/Awhiteweb/ec2-resource-monitoring/pkg/details"
)

// ClientFactory returns a describe-instances client bound to a region.
type ClientFactory func(ctx context.Context, region string) (awscloud.DescribeInstancesAPI, error)

// Observer receives collection events. Implementations must not block.
type Observer interface {
	RegionCollected(region string, count int)
	PageFailure(region string)
}

// Collector runs the per-region aggregation.
type Collector struct {
	newClient ClientFactory
	pageSize  int32
	observer  Observer
	logger    zerolog.Logger
}

// Option configures a Collector.
type Option func(*Collector)

// WithPageSize overrides the describe-instances page bound.
func WithPageSize(size int32) Option {
	return func(c *Collector) { c.pageSize = size }
}

// WithObserver attaches an Observer for collection events.
func WithObserver(o Observer) Option {
	return func(c *Collector) { c.observer = o }
}

// New creates a Collector using newClient to reach each region.
func New(newClient ClientFactory, opts ...Option) *Collector {
	c := &Collector{
		newClient: newClient,
		pageSize:  awscloud.DefaultPageSize,
		logger:    log.Logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Collect gathers instance details for the selector: a single catalog region,
// or every catalog region in order when selector is "all". An invalid
// selector fails before any client is built or any request issued.
func (c *Collector) Collect(ctx context.Context, selector string) ([]details.Details, error) {
	if err := ValidateSelector(selector); err != nil {
		return nil, err
	}

	if selector != AllRegions {
		return c.CollectRegion(ctx, selector), nil
	}

	collected := make([]details.Details, 0)
	for _, region := range Regions {
		collected = append(collected, c.CollectRegion(ctx, region)...)
	}
	return collected, nil
}

// CollectRegion drains one region's pages into a flat list. Collection is
// best-effort: a failure while paginating keeps whatever pages already
// arrived and drops the rest, without surfacing an error to the caller.
func (c *Collector) CollectRegion(ctx context.Context, region string) []details.Details {
	collected := make([]details.Details, 0)

	client, err := c.newClient(ctx, region)
	if err != nil {
		c.logger.Warn().Err(err).Str("region", region).Msg("client setup failed, skipping region")
		c.pageFailure(region)
		return collected
	}

	pager := awscloud.NewPager(client, region, c.pageSize)
	for pager.HasMorePages() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			c.logger.Warn().Err(err).Str("region", region).Msg("pagination stopped early")
			c.pageFailure(region)
			break
		}
		if page == nil {
			continue
		}
		collected = append(collected, page...)
	}

	c.logger.Debug().Str("region", region).Int("instances", len(collected)).Msg("region collected")
	if c.observer != nil {
		c.observer.RegionCollected(region, len(collected))
	}
	return collected
}

func (c *Collector) pageFailure(region string) {
	if c.observer != nil {
		c.observer.PageFailure(region)
	}
}
