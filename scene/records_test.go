package scene_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plus3/cubefall/scene"
)

type memoryStore struct {
	props   map[string][]byte
	saveErr error
}

func newMemoryStore() *memoryStore {
	return &memoryStore{props: make(map[string][]byte)}
}

func (m *memoryStore) ObjectPropExists(objectKey, propKey string) bool {
	_, ok := m.props[objectKey+"/"+propKey]
	return ok
}

func (m *memoryStore) LoadObjectProp(objectKey, propKey string) ([]byte, error) {
	data, ok := m.props[objectKey+"/"+propKey]
	if !ok {
		return nil, errors.New("not found")
	}
	return data, nil
}

func (m *memoryStore) SaveObjectProp(objectKey, propKey string, data []byte) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.props[objectKey+"/"+propKey] = data
	return nil
}

func TestLoadRecordsWithoutStore(t *testing.T) {
	records, err := scene.LoadRecords(nil)
	require.NoError(t, err)
	assert.Zero(t, records)

	assert.NoError(t, scene.SaveRecords(nil, scene.Records{Sessions: 1}))
}

func TestRecordsRoundTrip(t *testing.T) {
	store := newMemoryStore()

	records, err := scene.LoadRecords(store)
	require.NoError(t, err)
	assert.Zero(t, records)

	records.Merge(scene.CubeStats{Spawned: 120, Despawned: 3, Live: 100, Peak: 110}, 12.5)
	require.NoError(t, scene.SaveRecords(store, records))

	loaded, err := scene.LoadRecords(store)
	require.NoError(t, err)
	assert.Equal(t, records, loaded)
}

func TestRecordsMerge(t *testing.T) {
	var records scene.Records
	records.Merge(scene.CubeStats{Spawned: 10, Peak: 8}, 30)
	records.Merge(scene.CubeStats{Spawned: 5, Peak: 4}, 45)

	assert.Equal(t, int64(2), records.Sessions)
	assert.Equal(t, int64(15), records.TotalSpawned)
	assert.Equal(t, 8, records.PeakLive)
	assert.Equal(t, 45.0, records.LongestRun)
}

func TestRecordsErrors(t *testing.T) {
	store := newMemoryStore()
	store.props["records/cubefall"] = []byte("sessions: [")

	_, err := scene.LoadRecords(store)
	assert.ErrorContains(t, err, "decode records")

	boom := errors.New("disk full")
	store.saveErr = boom
	assert.ErrorIs(t, scene.SaveRecords(store, scene.Records{}), boom)
}
