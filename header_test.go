package triekv

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestShareUnshareRoundTrip(t *testing.T) {
	cfg := Config{PointerSize: 2, Aridity: 2, RootAridity: 2, KeySize: 2, ValueSize: 1}
	e := mapTestEngine(t, cfg)

	_, err := e.PutStructural([]byte{1, 2})
	require.NoError(t, err)

	h := e.Share()
	require.Equal(t, uint64(1), h.LeafCount)

	e2, err := NewEngine(cfg, true)
	require.NoError(t, err)
	require.NoError(t, e2.Unshare(h))
	require.Equal(t, h, e2.Share())
}

func TestUnshareFailsAfterInit(t *testing.T) {
	cfg := Config{PointerSize: 2, Aridity: 2, RootAridity: 2, KeySize: 2, ValueSize: 1}
	e := mapTestEngine(t, cfg)
	require.NoError(t, e.ensureInit())

	err := e.Unshare(Header{})
	require.Error(t, err)
}

func TestHeaderEncodeDecodeCBOR(t *testing.T) {
	h := Header{NodeCount: 3, LeafCount: 4, LiveLeaves: 4, LastEmptyNode: 10, LastEmptyLeaf: 20}
	b, err := EncodeHeader(h)
	require.NoError(t, err)

	got, err := DecodeHeader(b)
	require.NoError(t, err)
	require.Equal(t, h, got)
}
