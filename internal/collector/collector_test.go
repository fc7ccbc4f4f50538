package collector

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	ec2types "github.com/aws/aws-sdk-go-v2/service/ec2/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Awhiteweb/ec2-resource-monitoring/internal/awscloud"
)

// mockEC2Client implements awscloud.DescribeInstancesAPI with a scripted
// response per call.
type mockEC2Client struct {
	calls     int
	responses []func(params *ec2.DescribeInstancesInput) (*ec2.DescribeInstancesOutput, error)
}

func (m *mockEC2Client) DescribeInstances(_ context.Context, params *ec2.DescribeInstancesInput, _ ...func(*ec2.Options)) (*ec2.DescribeInstancesOutput, error) {
	if m.calls >= len(m.responses) {
		return &ec2.DescribeInstancesOutput{}, nil
	}
	scripted := m.responses[m.calls]
	m.calls++
	return scripted(params)
}

func respond(output *ec2.DescribeInstancesOutput, err error) func(*ec2.DescribeInstancesInput) (*ec2.DescribeInstancesOutput, error) {
	return func(*ec2.DescribeInstancesInput) (*ec2.DescribeInstancesOutput, error) {
		return output, err
	}
}

func instancePage(token *string, ids ...string) *ec2.DescribeInstancesOutput {
	instances := make([]ec2types.Instance, 0, len(ids))
	for _, id := range ids {
		instances = append(instances, ec2types.Instance{InstanceId: aws.String(id)})
	}
	return &ec2.DescribeInstancesOutput{
		Reservations: []ec2types.Reservation{{Instances: instances}},
		NextToken:    token,
	}
}

func factoryFor(clients map[string]*mockEC2Client) ClientFactory {
	return func(_ context.Context, region string) (awscloud.DescribeInstancesAPI, error) {
		client, ok := clients[region]
		if !ok {
			return nil, errors.New("no client for " + region)
		}
		return client, nil
	}
}

func TestCollectRegion_StampsRequestedRegion(t *testing.T) {
	client := &mockEC2Client{responses: []func(*ec2.DescribeInstancesInput) (*ec2.DescribeInstancesOutput, error){
		respond(instancePage(nil, "i-1", "i-2"), nil),
	}}
	coll := New(factoryFor(map[string]*mockEC2Client{"eu-west-1": client}))

	records := coll.CollectRegion(context.Background(), "eu-west-1")

	require.Len(t, records, 2)
	for _, record := range records {
		assert.Equal(t, "eu-west-1", record.Region)
	}
}

func TestCollectRegion_TruncatesOnMidPaginationFailure(t *testing.T) {
	client := &mockEC2Client{responses: []func(*ec2.DescribeInstancesInput) (*ec2.DescribeInstancesOutput, error){
		respond(instancePage(aws.String("token-1"), "i-1"), nil),
		respond(nil, errors.New("throttled")),
	}}
	coll := New(factoryFor(map[string]*mockEC2Client{"us-east-1": client}))

	records := coll.CollectRegion(context.Background(), "us-east-1")

	// Page 1 is kept, the failing page and everything after it is dropped,
	// and no error escapes.
	require.Len(t, records, 1)
	assert.Equal(t, "i-1", *records[0].InstanceID)
	assert.Equal(t, 2, client.calls)
}

func TestCollectRegion_ClientSetupFailureYieldsEmpty(t *testing.T) {
	coll := New(factoryFor(map[string]*mockEC2Client{}))

	records := coll.CollectRegion(context.Background(), "eu-west-1")

	require.NotNil(t, records)
	assert.Empty(t, records)
}

func TestCollect_SingleRegionEndToEnd(t *testing.T) {
	client := &mockEC2Client{responses: []func(*ec2.DescribeInstancesInput) (*ec2.DescribeInstancesOutput, error){
		respond(&ec2.DescribeInstancesOutput{
			Reservations: []ec2types.Reservation{{
				Instances: []ec2types.Instance{{
					InstanceId: aws.String("i-1"),
					Tags: []ec2types.Tag{
						{Key: aws.String("Name"), Value: aws.String("svc")},
					},
				}},
			}},
		}, nil),
	}}
	coll := New(factoryFor(map[string]*mockEC2Client{"eu-west-1": client}))

	records, err := coll.Collect(context.Background(), "eu-west-1")

	require.NoError(t, err)
	require.Len(t, records, 1)
	record := records[0]
	assert.Equal(t, "i-1", *record.InstanceID)
	assert.Equal(t, "svc", *record.Name)
	assert.Equal(t, "eu-west-1", record.Region)
	assert.Nil(t, record.Project)
	assert.Nil(t, record.Environment)
	assert.Nil(t, record.InstanceType)
	assert.Nil(t, record.KeyName)
	assert.Nil(t, record.LaunchTime)
	assert.Nil(t, record.SourceDestCheck)
	assert.Nil(t, record.State)
}

func TestCollect_AllRegionsInCatalogOrder(t *testing.T) {
	clients := make(map[string]*mockEC2Client, len(Regions))
	for _, region := range Regions {
		clients[region] = &mockEC2Client{responses: []func(*ec2.DescribeInstancesInput) (*ec2.DescribeInstancesOutput, error){
			respond(instancePage(nil, "i-"+region), nil),
		}}
	}
	coll := New(factoryFor(clients))

	records, err := coll.Collect(context.Background(), AllRegions)

	require.NoError(t, err)
	require.Len(t, records, len(Regions))
	for i, region := range Regions {
		assert.Equal(t, region, records[i].Region)
		assert.Equal(t, "i-"+region, *records[i].InstanceID)
	}
}

func TestCollect_FailureInOneRegionDoesNotCrossBoundaries(t *testing.T) {
	clients := make(map[string]*mockEC2Client, len(Regions))
	for _, region := range Regions {
		if region == "eu-west-1" {
			clients[region] = &mockEC2Client{responses: []func(*ec2.DescribeInstancesInput) (*ec2.DescribeInstancesOutput, error){
				respond(nil, errors.New("access denied")),
			}}
			continue
		}
		clients[region] = &mockEC2Client{responses: []func(*ec2.DescribeInstancesInput) (*ec2.DescribeInstancesOutput, error){
			respond(instancePage(nil, "i-"+region), nil),
		}}
	}
	coll := New(factoryFor(clients))

	records, err := coll.Collect(context.Background(), AllRegions)

	require.NoError(t, err)
	assert.Len(t, records, len(Regions)-1)
	for _, record := range records {
		assert.NotEqual(t, "eu-west-1", record.Region)
	}
}

func TestCollect_InvalidSelectorIssuesNoCalls(t *testing.T) {
	factoryCalled := false
	factory := func(_ context.Context, _ string) (awscloud.DescribeInstancesAPI, error) {
		factoryCalled = true
		return nil, errors.New("unreachable")
	}
	coll := New(factory)

	_, err := coll.Collect(context.Background(), "mars-1")

	require.Error(t, err)
	assert.False(t, factoryCalled)
}

// recordingObserver captures collection events.
type recordingObserver struct {
	collected map[string]int
	failures  []string
}

func (o *recordingObserver) RegionCollected(region string, count int) {
	if o.collected == nil {
		o.collected = make(map[string]int)
	}
	o.collected[region] = count
}

func (o *recordingObserver) PageFailure(region string) {
	o.failures = append(o.failures, region)
}

func TestCollect_ObserverSeesCountsAndFailures(t *testing.T) {
	client := &mockEC2Client{responses: []func(*ec2.DescribeInstancesInput) (*ec2.DescribeInstancesOutput, error){
		respond(instancePage(aws.String("token-1"), "i-1"), nil),
		respond(nil, errors.New("throttled")),
	}}
	observer := &recordingObserver{}
	coll := New(factoryFor(map[string]*mockEC2Client{"us-west-2": client}), WithObserver(observer))

	records, err := coll.Collect(context.Background(), "us-west-2")

	require.NoError(t, err)
	assert.Len(t, records, 1)
	assert.Equal(t, map[string]int{"us-west-2": 1}, observer.collected)
	assert.Equal(t, []string{"us-west-2"}, observer.failures)
}
