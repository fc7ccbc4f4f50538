package awscloud

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/ec2"
)

// DescribeInstancesAPI is the single EC2 operation the collector consumes.
// The real *ec2.Client satisfies it; tests substitute scripted fakes.
type DescribeInstancesAPI interface {
	DescribeInstances(ctx context.Context, params *ec2.DescribeInstancesInput, optFns ...func(*ec2.Options)) (*ec2.DescribeInstancesOutput, error)
}
