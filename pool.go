package triekv

import "fmt"

// slotOffset returns the byte offset of child slot index within node, a
// node pointer previously returned by newInternalNode (the implicit root
// is addressed through rootSlotOffset instead). node.Index() is the node's 1-based position in the
// node pool; the root node occupies [0, RootSize) ahead of it, so a node's
// own record starts at RootSize + (index-1)*NodeSize (spec.md section 4.3).
func (e *Engine) slotOffset(node Pointer, index uint64) uint64 {
	nodeIdx := node.Index()
	base := uint64(e.d.RootSize) - uint64(e.d.NodeSize) + nodeIdx*uint64(e.d.NodeSize)
	return base + index*uint64(e.cfg.PointerSize)
}

// rootSlotOffset returns the byte offset of child slot index within the
// root node, which always starts at offset 0 of the nodes region.
func (e *Engine) rootSlotOffset(index uint64) uint64 {
	return index * uint64(e.cfg.PointerSize)
}

// leafOffset returns the byte offset of leaf pool index idx.
func (e *Engine) leafOffset(idx uint64) uint64 {
	return idx * uint64(e.d.LeafSize)
}

// newInternalNode allocates a fresh non-root internal node, reusing a
// freed slot if the free list is non-empty, and returns its tagged
// pointer. The node's A slots are zeroed (all-null children) whether the
// storage is fresh or reused, satisfying the spec's "freshly popped nodes
// are zeroed before reuse" resolution (spec.md section 9).
func (e *Engine) newInternalNode() (Pointer, error) {
	if idx, ok := e.popFreeNode(); ok {
		off := e.slotOffset(nodePointer(idx), 0)
		e.nodes.Zero(off, uint64(e.d.NodeSize))
		return nodePointer(idx), nil
	}

	// node index 0 is reserved for the root. LoadMask only doubles as the
	// "free list empty" sentinel for facades that actually free nodes
	// (the Map, via collapse/freelist.go): for those, node_count+1 must
	// stay strictly below LoadMask, or a freed node could later be
	// mistaken for an empty free list. Enumeration never frees a node, so
	// the sentinel is never consulted and the full index range up to
	// LoadMask itself is usable.
	limit := e.d.LoadMask
	if e.forMap {
		limit--
	}
	if e.hdr.NodeCount+1 > limit {
		return 0, fmt.Errorf("%w: node pool exhausted (%d indices)", ErrLimitExceeded, limit)
	}

	idx := e.hdr.NodeCount + 1
	off := uint64(e.d.RootSize) - uint64(e.d.NodeSize) + idx*uint64(e.d.NodeSize)
	// The extra 8 bytes keep decodePointer's full 8-byte load of the
	// node's last slot inside the region.
	for e.nodes.Len() < int(off+uint64(e.d.NodeSize)+8) {
		if err := e.nodes.Reserve(uint64(e.d.NodeSize)); err != nil {
			return 0, err
		}
	}
	e.nodes.Zero(off, uint64(e.d.NodeSize))
	e.hdr.NodeCount++
	return nodePointer(idx), nil
}

// newLeaf allocates a fresh leaf, reusing a freed slot if available, and
// writes key into it. value is left zeroed; the caller (insert.go, via the
// facade) writes it separately, since add/put/getOrPut each apply a
// different overwrite policy for the value.
func (e *Engine) newLeaf(key []byte) (Pointer, error) {
	var idx uint64
	var off uint64
	if popped, ok := e.popFreeLeaf(); ok {
		idx = popped
		off = e.leafOffset(idx)
		e.leaves.Zero(off, uint64(e.d.LeafSize))
	} else {
		// LoadMask is the largest representable leaf index (the index
		// bits are one narrower than pointer_size*8, to leave room for
		// the leaf/node tag bit). It only needs to be held back as an
		// unusable index for the Map, which threads its free list
		// sentinel through LastEmptyLeaf and would otherwise confuse a
		// real leaf at that index with "free list empty". Enumeration
		// never frees a leaf, so LoadMask itself is a valid leaf index
		// for it (spec.md section 8 scenario 4 requires indices 0..LoadMask,
		// i.e. the full 2^(pointer_size*8-1) leaves, to succeed for add).
		limit := e.d.LoadMask
		if e.forMap {
			limit--
		}
		if e.hdr.LeafCount > limit {
			return 0, fmt.Errorf("%w: leaf pool exhausted (%d indices)", ErrLimitExceeded, limit)
		}
		idx = e.hdr.LeafCount
		off = e.leafOffset(idx)
		// The extra 8 bytes keep decodePointer's full 8-byte load of a
		// freed leaf's free-list link inside the region.
		for e.leaves.Len() < int(off+uint64(e.d.LeafSize)+8) {
			if err := e.leaves.Reserve(uint64(e.d.LeafSize)); err != nil {
				return 0, err
			}
		}
		e.hdr.LeafCount++
	}
	e.leaves.StoreBlob(off, key)
	return leafPointer(idx), nil
}

// leafKey returns a copy of the key stored in the leaf addressed by p.
func (e *Engine) leafKey(p Pointer) []byte {
	off := e.leafOffset(p.Index())
	return e.leaves.LoadBlob(off, int(e.cfg.KeySize))
}

// leafValue returns a copy of the value stored in the leaf addressed by p.
func (e *Engine) leafValue(p Pointer) []byte {
	off := e.leafOffset(p.Index()) + uint64(e.cfg.KeySize)
	return e.leaves.LoadBlob(off, int(e.cfg.ValueSize))
}

// setLeafValue overwrites the value stored in the leaf addressed by p.
func (e *Engine) setLeafValue(p Pointer, value []byte) {
	off := e.leafOffset(p.Index()) + uint64(e.cfg.KeySize)
	e.leaves.StoreBlob(off, value)
}

// SetLeafValue overwrites the value stored at leaf index idx. It is used
// by the facades after PutStructural has placed (or found) a leaf, since
// the facades, not the engine, decide each operation's overwrite policy.
func (e *Engine) SetLeafValue(idx uint64, value []byte) error {
	if err := checkValueLen(e.cfg, value); err != nil {
		return err
	}
	e.setLeafValue(leafPointer(idx), value)
	return nil
}

// GetLeaf reads the key/value pair at leaf index idx directly, the
// Enumeration facade's O(1) random-access get (spec.md section 4.10). It
// fails if idx has never been allocated.
func (e *Engine) GetLeaf(idx uint64) (key, value []byte, err error) {
	if idx >= e.hdr.LeafCount {
		return nil, nil, fmt.Errorf("%w: leaf index %d out of range (leaf_count=%d)", ErrPreconditionViolated, idx, e.hdr.LeafCount)
	}
	p := leafPointer(idx)
	return e.leafKey(p), e.leafValue(p), nil
}
