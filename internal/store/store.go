// Package store keeps the most recent inventory per region in bbolt so watch
// mode can report what changed between runs.
package store

import (
	"encoding/json"
	"fmt"

	"go.etcd.io/bbolt"

	"github.com/Awhiteweb/ec2-resource-monitoring/pkg/details"
)

var bucketSnapshots = []byte("snapshots")

// Store is a bbolt-backed snapshot store keyed by region.
type Store struct {
	db *bbolt.DB
}

// Open opens or creates the store at path.
func Open(path string) (*Store, error) {
	db, err := bbolt.Open(path, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("open store %s: %w", path, err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketSnapshots)
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init store %s: %w", path, err)
	}

	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveSnapshot replaces the stored inventory for region.
func (s *Store) SaveSnapshot(region string, records []details.Details) error {
	data, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("encode snapshot for %s: %w", region, err)
	}
	return s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketSnapshots).Put([]byte(region), data)
	})
}

// Snapshot returns the stored inventory for region, or nil when the region
// has never been saved.
func (s *Store) Snapshot(region string) ([]details.Details, error) {
	var records []details.Details
	err := s.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket(bucketSnapshots).Get([]byte(region))
		if data == nil {
			return nil
		}
		return json.Unmarshal(data, &records)
	})
	if err != nil {
		return nil, fmt.Errorf("load snapshot for %s: %w", region, err)
	}
	return records, nil
}

// Diff compares two inventories by instance id and returns the ids present
// only in current (added) and only in previous (removed). Records without an
// instance id are ignored.
func Diff(previous, current []details.Details) (added, removed []string) {
	seen := make(map[string]bool, len(previous))
	for _, record := range previous {
		if record.InstanceID != nil {
			seen[*record.InstanceID] = true
		}
	}

	still := make(map[string]bool, len(current))
	for _, record := range current {
		if record.InstanceID == nil {
			continue
		}
		still[*record.InstanceID] = true
		if !seen[*record.InstanceID] {
			added = append(added, *record.InstanceID)
		}
	}

	for _, record := range previous {
		if record.InstanceID != nil && !still[*record.InstanceID] {
			removed = append(removed, *record.InstanceID)
		}
	}
	return added, removed
}
