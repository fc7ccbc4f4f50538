// Package details defines the normalized instance record this tool reports.
package details

import "time"

// Details is the flattened view of one EC2 instance. Every field except
// Region comes straight from the instance or its tags and may be absent;
// absent fields serialize as JSON null. Region is stamped by the collector,
// never read from the instance payload.
type Details struct {
	Environment     *string    `json:"environment"`
	InstanceID      *string    `json:"instance_id"`
	InstanceType    *string    `json:"instance_type"`
	KeyName         *string    `json:"key_name"`
	LaunchTime      *time.Time `json:"launch_time"`
	Name            *string    `json:"name"`
	Project         *string    `json:"project"`
	Region          string     `json:"region"`
	SourceDestCheck *bool      `json:"source_dest_check"`
	State           *string    `json:"state"`
}

// TagSet holds the values projected out of an instance's tag list.
// Only the Name, Project and Environment keys are recognized.
type TagSet struct {
	Name        *string
	Project     *string
	Environment *string
}
