// Package enumeration is the insertion-ordered facade over triekv.Engine:
// every key ever added keeps a stable, monotonically increasing leaf
// index, get/slice read leaves directly by that index, and there is no
// delete. It mirrors the thin-wrapper-over-shared-primitives style of
// massifs' read-only wrappers over mmr (e.g. localmassifreader.go exposes
// leaf/peak queries over the shared mmr package without reimplementing its
// arithmetic) — here the shared primitive is triekv.Engine instead of mmr.
package enumeration

import (
	"fmt"

	"github.com/datatrails/go-datatrails-common/logger"

	"github.com/forestrie/go-triekv"
)

// Enumeration is a triekv.Engine specialized to never delete. Index
// returned by Add is stable and equals the leaf's allocation order.
type Enumeration struct {
	e *triekv.Engine
}

// New validates cfg (with the non-Map rule set: no key_size+value_size >=
// pointer_size requirement) and returns an empty Enumeration.
func New(cfg triekv.Config, opts ...triekv.Option) (*Enumeration, error) {
	e, err := triekv.NewEngine(cfg, false, opts...)
	if err != nil {
		return nil, err
	}
	return &Enumeration{e: e}, nil
}

// Add inserts key with value, or overwrites the value of an already
// present key, and returns the stable leaf index (spec.md section 4.10).
// Add is the checked form: it returns ErrLimitExceeded when a pool is
// exhausted; MustAdd is the unchecked form.
func (en *Enumeration) Add(key, value []byte) (uint64, error) {
	res, err := en.e.PutStructural(key)
	if err != nil {
		return 0, err
	}
	if err := en.e.SetLeafValue(res.LeafIndex, value); err != nil {
		return 0, err
	}
	return res.LeafIndex, nil
}

// MustAdd is the unchecked form of Add: it panics instead of returning an
// error, matching massifs/massifcommitter.go's checked/fatal dual entry
// point convention.
func (en *Enumeration) MustAdd(key, value []byte) uint64 {
	idx, err := en.Add(key, value)
	if err != nil {
		panic(err)
	}
	return idx
}

// Lookup returns the value and leaf index stored for key, if present.
func (en *Enumeration) Lookup(key []byte) (value []byte, index uint64, found bool, err error) {
	return en.e.Lookup(key)
}

// Get reads the key/value pair at leaf index idx directly (O(1)).
func (en *Enumeration) Get(idx uint64) (key, value []byte, err error) {
	return en.e.GetLeaf(idx)
}

// Slice reads leaf indices [left, right) in insertion order. It fails if
// right exceeds LeafCount.
func (en *Enumeration) Slice(left, right uint64) ([]triekv.Entry, error) {
	if right > en.e.LeafCount() {
		return nil, fmt.Errorf("%w: slice right bound %d exceeds leaf count %d", triekv.ErrPreconditionViolated, right, en.e.LeafCount())
	}
	if left > right {
		return nil, fmt.Errorf("%w: slice left bound %d exceeds right bound %d", triekv.ErrPreconditionViolated, left, right)
	}
	out := make([]triekv.Entry, 0, right-left)
	for i := left; i < right; i++ {
		k, v, err := en.e.GetLeaf(i)
		if err != nil {
			return nil, err
		}
		out = append(out, triekv.Entry{Key: k, Value: v})
	}
	return out, nil
}

// Entries returns an ascending in-order iterator.
func (en *Enumeration) Entries() *triekv.Iterator { return en.e.Entries() }

// EntriesRev returns a descending in-order iterator.
func (en *Enumeration) EntriesRev() *triekv.Iterator { return en.e.EntriesRev() }

// Size returns the number of entries, equal to LeafCount since Enumeration
// never deletes.
func (en *Enumeration) Size() uint64 { return en.e.Size() }

// LeafCount returns the number of leaves ever allocated.
func (en *Enumeration) LeafCount() uint64 { return en.e.LeafCount() }

// NodeCount returns the number of non-root internal nodes ever allocated.
func (en *Enumeration) NodeCount() uint64 { return en.e.NodeCount() }

// MemoryStats reports the physical footprint of both regions.
func (en *Enumeration) MemoryStats() triekv.MemoryStats { return en.e.MemoryStats() }

// Share snapshots the engine's O(1) header for external persistence.
func (en *Enumeration) Share() triekv.Header { return en.e.Share() }

// Unshare restores a previously shared header. It must be the first call
// made on a freshly constructed Enumeration.
func (en *Enumeration) Unshare(h triekv.Header) error { return en.e.Unshare(h) }

// WithLogger is re-exported so callers don't need to import triekv
// directly just to configure logging.
func WithLogger(l logger.Logger) triekv.Option { return triekv.WithLogger(l) }
