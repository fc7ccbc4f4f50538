package collector

import (
	"fmt"
	"strings"
)

// AllRegions selects every catalog region.
const AllRegions = "all"

// Regions is the fixed region catalog. Order matters: all-regions output is
// concatenated in exactly this order.
var Regions = []string{
	"ap-east-1",
	"ap-northeast-1",
	"ap-northeast-2",
	"ap-northeast-3",
	"ap-south-1",
	"ap-southeast-1",
	"ap-southeast-2",
	"ca-central-1",
	"eu-central-1",
	"eu-west-1",
	"eu-west-2",
	"eu-west-3",
	"eu-north-1",
	"eu-south-1",
	"me-south-1",
	"sa-east-1",
	"us-east-1",
	"us-east-2",
	"us-west-1",
	"us-west-2",
	"cn-north-1",
	"cn-northwest-1",
	"af-south-1",
}

// ValidateSelector checks that selector is a catalog region or the "all"
// sentinel. The error names the valid options.
func ValidateSelector(selector string) error {
	if selector == AllRegions {
		return nil
	}
	for _, region := range Regions {
		if region == selector {
			return nil
		}
	}
	return fmt.Errorf("unknown region %q: valid options are %s, or %q",
		selector, strings.Join(Regions, ", "), AllRegions)
}
