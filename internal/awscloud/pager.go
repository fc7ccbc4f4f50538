package awscloud

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"

	"github.com/Awhiteweb/ec2-resource-monitoring/pkg/details"
)

// DefaultPageSize bounds each describe-instances request.
const DefaultPageSize int32 = 25

// Pager walks one region's describe-instances pages in order. Each fetch
// carries the continuation token returned by the previous page, so pages are
// never requested concurrently or out of order. A fetch failure ends the walk:
// the failing page is dropped and no further pages are fetched.
type Pager struct {
	client   DescribeInstancesAPI
	region   string
	pageSize int32
	next     *ec2.DescribeInstancesInput
	done     bool
}

// NewPager starts a walk at the first page for region.
func NewPager(client DescribeInstancesAPI, region string, pageSize int32) *Pager {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &Pager{
		client:   client,
		region:   region,
		pageSize: pageSize,
		next:     newPageRequest(pageSize, nil),
	}
}

// HasMorePages reports whether another page can be fetched.
func (p *Pager) HasMorePages() bool {
	return !p.done
}

// NextPage fetches the pending page and flattens it. The returned slice is
// nil when the page carried no reservation list, and non-nil (possibly empty)
// otherwise. After a fetch error or the final page, HasMorePages reports
// false and further calls fail.
func (p *Pager) NextPage(ctx context.Context) ([]details.Details, error) {
	if p.done {
		return nil, fmt.Errorf("no more pages for %s", p.region)
	}

	output, err := p.client.DescribeInstances(ctx, p.next)
	if err != nil {
		p.done = true
		return nil, fmt.Errorf("describe instances in %s: %w", p.region, err)
	}

	if output.NextToken == nil {
		p.done = true
	} else {
		p.next = newPageRequest(p.pageSize, output.NextToken)
	}

	return FlattenReservations(output.Reservations, p.region), nil
}

// newPageRequest builds a request with the fixed page bound. The token is nil
// only for a region's first request; afterwards it is always the token the
// prior page returned, echoed verbatim.
func newPageRequest(pageSize int32, token *string) *ec2.DescribeInstancesInput {
	return &ec2.DescribeInstancesInput{
		MaxResults: aws.Int32(pageSize),
		NextToken:  token,
	}
}
