// Package awscloud wraps the AWS SDK surface used to inventory EC2 instances:
// client construction, the describe-instances page walker and the conversion
// of raw reservations into normalized Details records.
package awscloud

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
)

// NewClient builds an EC2 client bound to the given region using the default
// credential chain.
func NewClient(ctx context.Context, region string) (DescribeInstancesAPI, error) {
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("load aws config for %s: %w", region, err)
	}
	return ec2.NewFromConfig(cfg), nil
}
