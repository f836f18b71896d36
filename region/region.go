// Package region implements the linearly-growable byte-region primitive
// that spec.md treats as an external collaborator (section 1, "host's
// linearly-growable byte region primitive"). Because go-triekv ships as a
// standalone library with no host, this package supplies a concrete,
// minimal implementation so the engine is runnable end to end.
//
// A Region grows in fixed 65536-byte pages (spec.md section 4.2) and keeps
// a free_space counter of unused bytes at the tail. Offsets into a Region
// are computed by the caller (see the pool and pointer-codec components in
// the root triekv package) from node_count/leaf_count, not returned by
// Reserve; Reserve's only job is to guarantee the backing buffer is large
// enough for the next fixed-size object plus a small safety margin.
package region

import "encoding/binary"

// PageSize is the page granularity regions grow by (spec.md section 4.2).
const PageSize = 65536

// tailSlack is the number of bytes of physical slack this implementation
// always keeps past the bump cursor. spec.md section 4.1 calls for
// reserving "8 - pointer_size" bytes of tail padding so a full 64-bit load
// of the final pointer slot never reads past the end of the region; we
// keep a flat 8 bytes (the width of the largest pointer) so the same
// invariant holds regardless of pointer_size.
const tailSlack = 8

// Region is a byte-addressable buffer, growable in whole pages, with a
// caller-driven bump allocation discipline: Reserve ensures capacity for
// the next n bytes, but the actual offset assigned to an object is always
// computed independently (by the pool/pointer code) from allocation
// counts, never returned here.
type Region struct {
	buf       []byte
	freeSpace uint64
}

// New returns an empty Region with no backing storage yet.
func New() *Region {
	return &Region{}
}

// Len returns the current physical size of the region in bytes.
func (r *Region) Len() int { return len(r.buf) }

// FreeSpace returns the number of unused bytes currently at the tail.
func (r *Region) FreeSpace() uint64 { return r.freeSpace }

// Grow appends pages of zero-filled bytes to the region. Allocation
// failure in Go surfaces as an out-of-memory panic rather than an error
// return, matching spec.md's "growth must fail-hard" requirement; Grow
// still returns an error for interface symmetry with hosts that can fail
// gracefully.
func (r *Region) Grow(pages int) error {
	if pages <= 0 {
		return nil
	}
	r.buf = append(r.buf, make([]byte, pages*PageSize)...)
	r.freeSpace += uint64(pages) * PageSize
	return nil
}

// Reserve ensures at least n bytes (n <= PageSize) are available past the
// current bump cursor, growing by a page if necessary, then consumes n
// bytes of free space. It also maintains tailSlack bytes of additional
// physical slack beyond the cursor so a full 8-byte pointer load never
// reads out of bounds, whatever pointer_size is configured.
func (r *Region) Reserve(n uint64) error {
	if n > PageSize {
		panic("region: single allocation cannot exceed page size")
	}
	if r.freeSpace < n {
		if err := r.Grow(1); err != nil {
			return err
		}
	}
	r.freeSpace -= n
	if r.freeSpace < tailSlack {
		if err := r.Grow(1); err != nil {
			return err
		}
	}
	return nil
}

func (r *Region) LoadUint16(off uint64) uint16 {
	return binary.LittleEndian.Uint16(r.buf[off : off+2])
}

func (r *Region) LoadUint32(off uint64) uint32 {
	return binary.LittleEndian.Uint32(r.buf[off : off+4])
}

// LoadUint64 performs the full 8-byte little-endian load that the pointer
// codec masks down to pointer_size bytes (spec.md section 4.1). Callers
// rely on Reserve's tail-slack invariant to guarantee off+8 stays in
// bounds for any offset that was itself returned by a prior allocation.
func (r *Region) LoadUint64(off uint64) uint64 {
	return binary.LittleEndian.Uint64(r.buf[off : off+8])
}

func (r *Region) StoreUint16(off uint64, v uint16) {
	binary.LittleEndian.PutUint16(r.buf[off:off+2], v)
}

func (r *Region) StoreUint32(off uint64, v uint32) {
	binary.LittleEndian.PutUint32(r.buf[off:off+4], v)
}

func (r *Region) StoreUint64(off uint64, v uint64) {
	binary.LittleEndian.PutUint64(r.buf[off:off+8], v)
}

// LoadBlob returns a freshly-copied n-byte slice starting at off.
func (r *Region) LoadBlob(off uint64, n int) []byte {
	out := make([]byte, n)
	copy(out, r.buf[off:off+uint64(n)])
	return out
}

// StoreBlob copies b into the region starting at off.
func (r *Region) StoreBlob(off uint64, b []byte) {
	copy(r.buf[off:off+uint64(len(b))], b)
}

// Slice returns a zero-copy read-only view of n bytes starting at off. The
// caller must not mutate the result and must not retain it across a
// mutating region call.
func (r *Region) Slice(off, n uint64) []byte {
	return r.buf[off : off+n]
}

// Zero clears n bytes starting at off.
func (r *Region) Zero(off, n uint64) {
	clear(r.buf[off : off+n])
}
