package triekv

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func insertKV(t *testing.T, e *Engine, key, value []byte) {
	t.Helper()
	res, err := e.PutStructural(key)
	require.NoError(t, err)
	e.setLeafValue(leafPointer(res.LeafIndex), value)
}

func TestEntriesAscendingOrder(t *testing.T) {
	e := newTestEngine(t, validConfig())
	insertKV(t, e, []byte{0x00, 0x00}, []byte{'A'})
	insertKV(t, e, []byte{0x00, 0x01}, []byte{'B'})

	entries := e.Entries().ToSlice()
	require.Len(t, entries, 2)
	require.Equal(t, []byte{0x00, 0x00}, entries[0].Key)
	require.Equal(t, []byte{'A'}, entries[0].Value)
	require.Equal(t, []byte{0x00, 0x01}, entries[1].Key)
	require.Equal(t, []byte{'B'}, entries[1].Value)
}

func TestEntriesRevIsReverseOfEntries(t *testing.T) {
	e := newTestEngine(t, validConfig())
	insertKV(t, e, []byte{0x00, 0x00}, []byte{'A'})
	insertKV(t, e, []byte{0x00, 0x01}, []byte{'B'})

	fwd := e.Entries().ToSlice()
	rev := e.EntriesRev().ToSlice()
	require.Len(t, rev, len(fwd))
	for i := range fwd {
		require.Equal(t, fwd[i], rev[len(rev)-1-i])
	}
}

func TestEntriesOnEmptyEngineIsEmpty(t *testing.T) {
	e := newTestEngine(t, validConfig())
	require.Empty(t, e.Entries().ToSlice())
}

func TestKeysAndValsIterators(t *testing.T) {
	e := newTestEngine(t, validConfig())
	insertKV(t, e, []byte{0x00, 0x00}, []byte{'A'})
	insertKV(t, e, []byte{0x00, 0x01}, []byte{'B'})

	ki := e.Keys()
	k1, ok := ki.Next()
	require.True(t, ok)
	require.Equal(t, []byte{0x00, 0x00}, k1)

	vi := e.Vals()
	v1, ok := vi.Next()
	require.True(t, ok)
	require.Equal(t, []byte{'A'}, v1)
}
