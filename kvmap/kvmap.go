// Package kvmap is the delete-capable facade over triekv.Engine: Put,
// Replace, and GetOrPut each apply a different value-overwrite policy atop
// the engine's shared PutStructural, and Remove/Delete free the leaf (and
// any interior nodes collapse releases) back onto the engine's free
// lists. Checked operations return triekv.ErrLimitExceeded; the unchecked
// forms panic, mirroring massifs/massifcommitter.go's checked-vs-fatal
// dual entry point convention (AddLeaf vs. the panic-on-error test
// helpers built on top of it).
package kvmap

import (
	"github.com/datatrails/go-datatrails-common/logger"

	"github.com/forestrie/go-triekv"
)

// Map is a triekv.Engine specialized for mutation with delete.
type Map struct {
	e *triekv.Engine
}

// New validates cfg with the Map rule set (including key_size+value_size
// >= pointer_size) and returns an empty Map.
func New(cfg triekv.Config, opts ...triekv.Option) (*Map, error) {
	e, err := triekv.NewEngine(cfg, true, opts...)
	if err != nil {
		return nil, err
	}
	return &Map{e: e}, nil
}

// PutChecked inserts key with value if absent, or overwrites value if
// present, returning ErrLimitExceeded if a pool is exhausted.
func (m *Map) PutChecked(key, value []byte) error {
	res, err := m.e.PutStructural(key)
	if err != nil {
		return err
	}
	return m.e.SetLeafValue(res.LeafIndex, value)
}

// Put is PutChecked's unchecked form: it panics on error.
func (m *Map) Put(key, value []byte) {
	if err := m.PutChecked(key, value); err != nil {
		panic(err)
	}
}

// ReplaceChecked overwrites key's value if present, returning the
// previous value; if key was absent it inserts it and returns (nil,
// false). Returns ErrLimitExceeded if a pool is exhausted.
func (m *Map) ReplaceChecked(key, value []byte) (old []byte, hadPrevious bool, err error) {
	previous, _, found, err := m.e.Lookup(key)
	if err != nil {
		return nil, false, err
	}
	res, err := m.e.PutStructural(key)
	if err != nil {
		return nil, false, err
	}
	if err := m.e.SetLeafValue(res.LeafIndex, value); err != nil {
		return nil, false, err
	}
	if !found {
		return nil, false, nil
	}
	return previous, true, nil
}

// Replace is ReplaceChecked's unchecked form: it panics on error.
func (m *Map) Replace(key, value []byte) (old []byte, hadPrevious bool) {
	old, hadPrevious, err := m.ReplaceChecked(key, value)
	if err != nil {
		panic(err)
	}
	return old, hadPrevious
}

// GetOrPutChecked returns the existing value for key, or inserts value
// and returns it if key was absent. Unlike PutChecked, an existing value
// is never overwritten (spec.md section 8, property P4).
func (m *Map) GetOrPutChecked(key, value []byte) ([]byte, error) {
	res, err := m.e.PutStructural(key)
	if err != nil {
		return nil, err
	}
	if !res.Added {
		existing, _, _, err := m.e.Lookup(key)
		if err != nil {
			return nil, err
		}
		return existing, nil
	}
	if err := m.e.SetLeafValue(res.LeafIndex, value); err != nil {
		return nil, err
	}
	return value, nil
}

// GetOrPut is GetOrPutChecked's unchecked form: it panics on error.
func (m *Map) GetOrPut(key, value []byte) []byte {
	v, err := m.GetOrPutChecked(key, value)
	if err != nil {
		panic(err)
	}
	return v
}

// Lookup returns the value and leaf index stored for key, if present.
func (m *Map) Lookup(key []byte) (value []byte, index uint64, found bool, err error) {
	return m.e.Lookup(key)
}

// Remove deletes key if present and returns its value.
func (m *Map) Remove(key []byte) ([]byte, bool, error) {
	return m.e.Remove(key)
}

// Delete deletes key if present, discarding its value.
func (m *Map) Delete(key []byte) error {
	_, _, err := m.e.Remove(key)
	return err
}

// Entries returns an ascending in-order iterator.
func (m *Map) Entries() *triekv.Iterator { return m.e.Entries() }

// EntriesRev returns a descending in-order iterator.
func (m *Map) EntriesRev() *triekv.Iterator { return m.e.EntriesRev() }

// Size returns the number of live entries.
func (m *Map) Size() uint64 { return m.e.Size() }

// LeafCount returns the number of leaves ever allocated, including freed
// ones still counted as allocated.
func (m *Map) LeafCount() uint64 { return m.e.LeafCount() }

// NodeCount returns the number of non-root internal nodes ever allocated.
func (m *Map) NodeCount() uint64 { return m.e.NodeCount() }

// MemoryStats reports the physical footprint of both regions.
func (m *Map) MemoryStats() triekv.MemoryStats { return m.e.MemoryStats() }

// Share snapshots the engine's O(1) header, including free-list heads,
// for external persistence.
func (m *Map) Share() triekv.Header { return m.e.Share() }

// Unshare restores a previously shared header. It must be the first call
// made on a freshly constructed Map.
func (m *Map) Unshare(h triekv.Header) error { return m.e.Unshare(h) }

// WithLogger is re-exported so callers don't need to import triekv
// directly just to configure logging.
func WithLogger(l logger.Logger) triekv.Option { return triekv.WithLogger(l) }
