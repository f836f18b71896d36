package triekv

// Two LIFO free lists are threaded through the freed objects' own storage
// (spec.md section 4.9): a freed node's first pointer slot stores the
// index of the next-most-recently-freed node, and a freed leaf's first
// pointer_size bytes store the index of the next-most-recently-freed leaf.
// Both lists use Derived.LoadMask as the "list empty" sentinel, since a
// real node or leaf index can never reach it: a pointer's index occupies
// pointer_size*8-1 bits, and LoadMask is the all-ones value in exactly
// that many bits.
//
// The link values are written with encodePointer/decodePointer even
// though they are plain indices, not tagged pointers: both the sentinel
// and every real index fit within pointer_size bytes (LoadMask < M), so
// reusing the width-specialized pointer codec is exact and avoids a
// second, redundant encoding for a value of the same shape.

// pushFreeNode prepends node pool index idx onto the free-node list.
func (e *Engine) pushFreeNode(idx uint64) {
	off := e.slotOffset(nodePointer(idx), 0)
	e.encodePointer(e.nodes, off, Pointer(e.hdr.LastEmptyNode))
	e.hdr.LastEmptyNode = idx
}

// popFreeNode removes and returns the head of the free-node list, or
// (0, false) if it is empty.
func (e *Engine) popFreeNode() (uint64, bool) {
	if e.hdr.LastEmptyNode == e.d.LoadMask {
		return 0, false
	}
	idx := e.hdr.LastEmptyNode
	off := e.slotOffset(nodePointer(idx), 0)
	next := e.decodePointer(e.nodes, off)
	e.hdr.LastEmptyNode = uint64(next)
	return idx, true
}

// pushFreeLeaf prepends leaf pool index idx onto the free-leaf list.
func (e *Engine) pushFreeLeaf(idx uint64) {
	off := e.leafOffset(idx)
	e.encodePointer(e.leaves, off, Pointer(e.hdr.LastEmptyLeaf))
	e.hdr.LastEmptyLeaf = idx
}

// popFreeLeaf removes and returns the head of the free-leaf list, or
// (0, false) if it is empty.
func (e *Engine) popFreeLeaf() (uint64, bool) {
	if e.hdr.LastEmptyLeaf == e.d.LoadMask {
		return 0, false
	}
	idx := e.hdr.LastEmptyLeaf
	off := e.leafOffset(idx)
	next := e.decodePointer(e.leaves, off)
	e.hdr.LastEmptyLeaf = uint64(next)
	return idx, true
}
