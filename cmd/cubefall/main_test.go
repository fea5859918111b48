package main

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plus3/cubefall/scene"
)

type propStore map[string][]byte

func (p propStore) ObjectPropExists(objectKey, propKey string) bool {
	_, ok := p[objectKey+"/"+propKey]
	return ok
}

func (p propStore) LoadObjectProp(objectKey, propKey string) ([]byte, error) {
	data, ok := p[objectKey+"/"+propKey]
	if !ok {
		return nil, errors.New("not found")
	}
	return data, nil
}

func (p propStore) SaveObjectProp(objectKey, propKey string, data []byte) error {
	p[objectKey+"/"+propKey] = data
	return nil
}

func TestSaveSessionPersistsRecords(t *testing.T) {
	cfg := scene.DefaultConfig()
	cfg.Seed = 3
	app := scene.Build(cfg, scene.WithRecords(scene.Records{Sessions: 2, TotalSpawned: 10}))
	for range 60 {
		app.Step(1.0 / 60)
	}

	store := propStore{}
	final := saveSession(app, store)
	assert.Equal(t, int64(3), final.Sessions)

	loaded, err := scene.LoadRecords(store)
	require.NoError(t, err)
	assert.Equal(t, final, loaded)
	assert.Equal(t, 10+app.Stats.Get().Spawned, loaded.TotalSpawned)
}

func TestSaveSessionWithoutStore(t *testing.T) {
	app := scene.Build(scene.DefaultConfig())
	app.Step(1.0 / 60)

	assert.NotPanics(t, func() {
		saveSession(app, nil)
	})
}
