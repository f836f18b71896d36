package triekv

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewEngineRejectsInvalidConfig(t *testing.T) {
	_, err := NewEngine(Config{}, false)
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrConfigurationInvalid))
}

func TestNewEngineForMapRejectsShortLeaf(t *testing.T) {
	cfg := Config{PointerSize: 5, Aridity: 4, RootAridity: 4, KeySize: 2, ValueSize: 1}
	_, err := NewEngine(cfg, true)
	require.Error(t, err)

	_, err = NewEngine(cfg, false)
	require.NoError(t, err)
}

func TestEngineLazyInit(t *testing.T) {
	cfg := validConfig()
	e := newTestEngine(t, cfg)
	require.False(t, e.initialized)
	require.Equal(t, 0, e.MemoryStats().NodesBytes)

	_, _, found, err := e.Lookup([]byte{0, 0})
	require.NoError(t, err)
	require.False(t, found)
	require.False(t, e.initialized, "a miss on an empty engine must not force init")
}

func TestEngineIDIsStable(t *testing.T) {
	e := newTestEngine(t, validConfig())
	id1 := e.ID()
	id2 := e.ID()
	require.Equal(t, id1, id2)
}
