package scene

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

const (
	recordsObject   = "records"
	recordsProperty = "cubefall"
)

// RecordStore persists small named blobs. *gdata.Manager satisfies it.
type RecordStore interface {
	ObjectPropExists(objectKey, propKey string) bool
	LoadObjectProp(objectKey, propKey string) ([]byte, error)
	SaveObjectProp(objectKey, propKey string, data []byte) error
}

// Records are the all-time statistics kept between runs.
type Records struct {
	Sessions     int64   `yaml:"sessions"`
	TotalSpawned int64   `yaml:"total_spawned"`
	PeakLive     int     `yaml:"peak_live"`
	LongestRun   float64 `yaml:"longest_run"`
}

// Merge folds one finished session into r.
func (r *Records) Merge(stats CubeStats, elapsed float64) {
	r.Sessions++
	r.TotalSpawned += stats.Spawned
	r.PeakLive = max(r.PeakLive, stats.Peak)
	r.LongestRun = max(r.LongestRun, elapsed)
}

// LoadRecords reads the stored records. A nil store or a missing entry
// yields zero records.
func LoadRecords(store RecordStore) (Records, error) {
	var records Records
	if store == nil || !store.ObjectPropExists(recordsObject, recordsProperty) {
		return records, nil
	}

	data, err := store.LoadObjectProp(recordsObject, recordsProperty)
	if err != nil {
		return records, fmt.Errorf("load records: %w", err)
	}
	if err := yaml.Unmarshal(data, &records); err != nil {
		return Records{}, fmt.Errorf("decode records: %w", err)
	}
	return records, nil
}

// SaveRecords writes r to store. A nil store is a no-op.
func SaveRecords(store RecordStore, r Records) error {
	if store == nil {
		return nil
	}
	data, err := yaml.Marshal(r)
	if err != nil {
		return fmt.Errorf("encode records: %w", err)
	}
	if err := store.SaveObjectProp(recordsObject, recordsProperty, data); err != nil {
		return fmt.Errorf("save records: %w", err)
	}
	return nil
}
