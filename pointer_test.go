package triekv

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPointerTagging(t *testing.T) {
	require.True(t, nullPointer.IsNull())

	l := leafPointer(5)
	require.False(t, l.IsNull())
	require.True(t, l.IsLeaf())
	require.Equal(t, uint64(5), l.Index())

	n := nodePointer(3)
	require.False(t, n.IsNull())
	require.False(t, n.IsLeaf())
	require.Equal(t, uint64(3), n.Index())
}

func newTestEngine(t *testing.T, cfg Config) *Engine {
	t.Helper()
	e, err := NewEngine(cfg, false)
	require.NoError(t, err)
	return e
}

func TestEncodeDecodePointerRoundTripsAllWidths(t *testing.T) {
	for _, ps := range []uint8{2, 4, 5, 6, 8} {
		cfg := Config{PointerSize: ps, Aridity: 2, RootAridity: 2, KeySize: 2, ValueSize: 1}
		e := newTestEngine(t, cfg)
		require.NoError(t, e.nodes.Grow(1))

		p := leafPointer(7)
		e.encodePointer(e.nodes, 0, p)
		got := e.decodePointer(e.nodes, 0)
		require.Equal(t, p, got, "pointer_size=%d", ps)
	}
}

func TestEncodePointerNullRoundTrips(t *testing.T) {
	cfg := Config{PointerSize: 5, Aridity: 2, RootAridity: 2, KeySize: 2, ValueSize: 1}
	e := newTestEngine(t, cfg)
	require.NoError(t, e.nodes.Grow(1))

	e.encodePointer(e.nodes, 0, nullPointer)
	require.True(t, e.decodePointer(e.nodes, 0).IsNull())
}
