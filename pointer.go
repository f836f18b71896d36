package triekv

import "github.com/forestrie/go-triekv/region"

// Pointer is a decoded tagged reference: either null, a 1-based index into
// the node pool, or a 0-based index into the leaf pool (spec.md section
// 4.1). The encoded, on-disk form is a little-endian pointer_size-byte
// integer; Pointer is always the decoded, full-width form used in memory.
type Pointer uint64

const nullPointer Pointer = 0

// IsNull reports whether p is the null pointer.
func (p Pointer) IsNull() bool { return p == nullPointer }

// IsLeaf reports whether p addresses the leaf pool. The zero value (null)
// is neither a leaf nor a node pointer; callers must check IsNull first.
func (p Pointer) IsLeaf() bool { return p&1 == 1 }

// Index returns the pool index p addresses: 0-based for a leaf pointer,
// 1-based for a node pointer. The caller must not call Index on a null
// pointer.
func (p Pointer) Index() uint64 { return uint64(p) >> 1 }

// leafPointer builds the tagged pointer for leaf pool index idx.
func leafPointer(idx uint64) Pointer { return Pointer(idx<<1 | 1) }

// nodePointer builds the tagged pointer for node pool index idx (1-based).
func nodePointer(idx uint64) Pointer { return Pointer(idx << 1) }

// decodePointer reads a pointer_size-byte tagged pointer from the region at
// off. It always performs a full 8-byte little-endian load and masks down
// to pointer_size bytes, relying on pool.go growing each region at least 8
// bytes past the end of every allocated record (spec.md section 4.1's
// tail-padding requirement), rather than branching per width.
func (e *Engine) decodePointer(rg *region.Region, off uint64) Pointer {
	raw := rg.LoadUint64(off) & e.d.M
	return Pointer(raw)
}

// encodePointer writes p into pointer_size bytes at off, store-width
// specialized since region.Region exposes fixed-width stores (16/32/64) and
// pointer_size may be 5 or 6.
func (e *Engine) encodePointer(rg *region.Region, off uint64, p Pointer) {
	switch e.cfg.PointerSize {
	case 2:
		rg.StoreUint16(off, uint16(p))
	case 4:
		rg.StoreUint32(off, uint32(p))
	case 5:
		storeUintN(rg, off, uint64(p), 5)
	case 6:
		storeUintN(rg, off, uint64(p), 6)
	case 8:
		rg.StoreUint64(off, uint64(p))
	default:
		panic("triekv: unreachable pointer_size")
	}
}

// storeUintN writes the low n bytes of v at off, little-endian, via
// StoreBlob so it respects region.Region's read-only contract on Slice.
func storeUintN(rg *region.Region, off uint64, v uint64, n int) {
	b := make([]byte, n)
	for i := 0; i < n; i++ {
		b[i] = byte(v >> (8 * i))
	}
	rg.StoreBlob(off, b)
}
