package enumeration

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/forestrie/go-triekv"
)

func testConfig() triekv.Config {
	return triekv.Config{
		PointerSize: 2,
		Aridity:     2,
		RootAridity: 2,
		KeySize:     2,
		ValueSize:   1,
	}
}

func TestBasicEnumerationScenario(t *testing.T) {
	en, err := New(testConfig())
	require.NoError(t, err)

	idx, err := en.Add([]byte("ab"), []byte("X"))
	require.NoError(t, err)
	require.Equal(t, uint64(0), idx)

	idx, err = en.Add([]byte("cd"), []byte("Y"))
	require.NoError(t, err)
	require.Equal(t, uint64(1), idx)

	idx, err = en.Add([]byte("ab"), []byte("Z"))
	require.NoError(t, err)
	require.Equal(t, uint64(0), idx)

	value, index, found, err := en.Lookup([]byte("ab"))
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, []byte("Z"), value)
	require.Equal(t, uint64(0), index)

	value, _, found, err = en.Lookup([]byte("cd"))
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, []byte("Y"), value)

	_, _, found, err = en.Lookup([]byte("ef"))
	require.NoError(t, err)
	require.False(t, found)

	entries := en.Entries().ToSlice()
	require.Len(t, entries, 2)
	require.Equal(t, []byte("ab"), entries[0].Key)
	require.Equal(t, []byte("Z"), entries[0].Value)
	require.Equal(t, []byte("cd"), entries[1].Key)
	require.Equal(t, []byte("Y"), entries[1].Value)
}

func TestGetReadsByIndex(t *testing.T) {
	en, err := New(testConfig())
	require.NoError(t, err)

	_, err = en.Add([]byte("ab"), []byte("X"))
	require.NoError(t, err)
	_, err = en.Add([]byte("cd"), []byte("Y"))
	require.NoError(t, err)

	key, value, err := en.Get(1)
	require.NoError(t, err)
	require.Equal(t, []byte("cd"), key)
	require.Equal(t, []byte("Y"), value)
}

func TestSliceReadsRange(t *testing.T) {
	en, err := New(testConfig())
	require.NoError(t, err)

	_, _ = en.Add([]byte("ab"), []byte("X"))
	_, _ = en.Add([]byte("cd"), []byte("Y"))

	out, err := en.Slice(0, 2)
	require.NoError(t, err)
	require.Len(t, out, 2)

	_, err = en.Slice(0, 3)
	require.Error(t, err)
}

func TestMustAddPanicsOnBadKeyLength(t *testing.T) {
	en, err := New(testConfig())
	require.NoError(t, err)
	require.Panics(t, func() {
		en.MustAdd([]byte("x"), []byte("X"))
	})
}
