// Package report serializes collected instance details to the JSON artifact.
package report

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"

	"github.com/Awhiteweb/ec2-resource-monitoring/pkg/details"
)

// DefaultPath is the artifact written in the working directory.
const DefaultPath = "instance_results.json"

// Marshal serializes records as a JSON array. A nil input still yields an
// array. A serialization failure degrades to an empty payload instead of
// aborting the run; see the note on Write.
func Marshal(records []details.Details) []byte {
	if records == nil {
		records = []details.Details{}
	}
	data, err := json.Marshal(records)
	if err != nil {
		// TODO: surface this instead of writing an empty file; today the
		// failure is only visible in the log.
		log.Warn().Err(err).Msg("report serialization failed, writing empty payload")
		return []byte{}
	}
	return data
}

// Write creates path, truncating any existing file, and writes the serialized
// records. Create and write failures are returned with the path attached and
// are fatal to the run.
func Write(path string, records []details.Details) error {
	file, err := os.Create(path) // #nosec G304 -- path is intentional user input
	if err != nil {
		return fmt.Errorf("couldn't create %s: %w", path, err)
	}
	defer func() { _ = file.Close() }()

	if _, err := file.Write(Marshal(records)); err != nil {
		return fmt.Errorf("couldn't write to %s: %w", path, err)
	}
	return nil
}
