package awscloud

import (
	"github.com/aws/aws-sdk-go-v2/aws"
	ec2types "github.com/aws/aws-sdk-go-v2/service/ec2/types"

	"github.com/Awhiteweb/ec2-resource-monitoring/pkg/details"
)

// Tag keys projected into Details. Any other key is dropped.
const (
	tagName        = "Name"
	tagProject     = "Project"
	tagEnvironment = "Environment"
)

// FlattenReservations converts one page's reservations into a flat Details
// list. A nil reservation list means the page carried no data and yields nil;
// a present list always yields a non-nil slice, even when no reservation
// contains instances. Input order is preserved.
func FlattenReservations(reservations []ec2types.Reservation, region string) []details.Details {
	if reservations == nil {
		return nil
	}
	flat := make([]details.Details, 0)
	for _, reservation := range reservations {
		for _, instance := range reservation.Instances {
			flat = append(flat, normalizeInstance(instance, region))
		}
	}
	return flat
}

// normalizeInstance maps a raw instance into a Details record. Every instance
// yields exactly one record; fields the instance does not carry stay nil.
func normalizeInstance(instance ec2types.Instance, region string) details.Details {
	tags := projectTags(instance.Tags)

	var instanceType *string
	if instance.InstanceType != "" {
		instanceType = aws.String(string(instance.InstanceType))
	}

	var state *string
	if instance.State != nil && instance.State.Name != "" {
		state = aws.String(string(instance.State.Name))
	}

	return details.Details{
		Environment:     tags.Environment,
		InstanceID:      instance.InstanceId,
		InstanceType:    instanceType,
		KeyName:         instance.KeyName,
		LaunchTime:      instance.LaunchTime,
		Name:            tags.Name,
		Project:         tags.Project,
		Region:          region,
		SourceDestCheck: instance.SourceDestCheck,
		State:           state,
	}
}

// projectTags walks the tag list once and keeps the recognized keys.
// Duplicate keys overwrite, so the last occurrence wins.
func projectTags(tags []ec2types.Tag) details.TagSet {
	var projected details.TagSet
	for _, tag := range tags {
		if tag.Key == nil {
			continue
		}
		switch *tag.Key {
		case tagName:
			projected.Name = tag.Value
		case tagProject:
			projected.Project = tag.Value
		case tagEnvironment:
			projected.Environment = tag.Value
		}
	}
	return projected
}
