package triekv

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPutStructuralFirstInsertFillsEmptySlot(t *testing.T) {
	e := newTestEngine(t, validConfig())
	res, err := e.PutStructural([]byte{0xAB, 0xCD})
	require.NoError(t, err)
	require.True(t, res.Added)
	require.Equal(t, uint64(0), res.LeafIndex)
}

func TestPutStructuralDuplicateReturnsSameIndex(t *testing.T) {
	e := newTestEngine(t, validConfig())
	r1, err := e.PutStructural([]byte{1, 2})
	require.NoError(t, err)

	r2, err := e.PutStructural([]byte{1, 2})
	require.NoError(t, err)
	require.False(t, r2.Added)
	require.Equal(t, r1.LeafIndex, r2.LeafIndex)
}

func TestPutStructuralDivergenceAllocatesInteriorChain(t *testing.T) {
	// aridity 2, root_aridity 2, key_size 2 (r=1, b=1). [0x00,0x00] and
	// [0x00,0x01] share bits 0..14 (15 bits) and diverge at bit 15. The
	// root consumes bit 0; the divergence loop then allocates one
	// interior node per bit position 1..15 inclusive (it must allocate
	// before it can compare that iteration's indices), so 15 interior
	// nodes, not 14 — the final allocation is the one that discovers
	// the divergence.
	e := newTestEngine(t, validConfig())

	_, err := e.PutStructural([]byte{0x00, 0x00})
	require.NoError(t, err)
	_, err = e.PutStructural([]byte{0x00, 0x01})
	require.NoError(t, err)

	require.Equal(t, uint64(2), e.LeafCount())
	require.Equal(t, uint64(15), e.NodeCount())
}

func TestPutStructuralRejectsWrongKeyLength(t *testing.T) {
	e := newTestEngine(t, validConfig())
	_, err := e.PutStructural([]byte{1})
	require.Error(t, err)
}
