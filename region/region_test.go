package region

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGrowIsPageGranular(t *testing.T) {
	r := New()
	require.Equal(t, 0, r.Len())
	require.NoError(t, r.Grow(1))
	require.Equal(t, PageSize, r.Len())
	require.Equal(t, uint64(PageSize), r.FreeSpace())

	require.NoError(t, r.Grow(2))
	require.Equal(t, 3*PageSize, r.Len())
}

func TestReserveGrowsOnDemandAndKeepsTailSlack(t *testing.T) {
	r := New()
	require.NoError(t, r.Reserve(10))
	require.Equal(t, PageSize, r.Len())
	require.GreaterOrEqual(t, r.FreeSpace(), uint64(tailSlack))

	// Drain free space down near the page boundary; Reserve must keep
	// growing rather than ever leaving less than tailSlack bytes spare.
	for r.FreeSpace() > 20 {
		require.NoError(t, r.Reserve(10))
	}
	require.GreaterOrEqual(t, r.FreeSpace(), uint64(tailSlack))
}

func TestLoadStoreRoundTrip(t *testing.T) {
	r := New()
	require.NoError(t, r.Grow(1))

	r.StoreUint16(0, 0xABCD)
	require.Equal(t, uint16(0xABCD), r.LoadUint16(0))

	r.StoreUint32(10, 0xDEADBEEF)
	require.Equal(t, uint32(0xDEADBEEF), r.LoadUint32(10))

	r.StoreUint64(20, 0x0102030405060708)
	require.Equal(t, uint64(0x0102030405060708), r.LoadUint64(20))

	r.StoreBlob(40, []byte("hello"))
	require.Equal(t, []byte("hello"), r.LoadBlob(40, 5))
	require.Equal(t, []byte("hello"), r.Slice(40, 5))

	r.Zero(40, 5)
	require.Equal(t, []byte{0, 0, 0, 0, 0}, r.LoadBlob(40, 5))
}
