package triekv

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"
)

// Header is the O(1) metadata block a host persists alongside the two
// regions so a trie can be reopened without rescanning either pool
// (spec.md section 4.10). It is deliberately small and fixed-shape,
// mirroring urkle/frontier.go's FrontierStateV1 resumable-state record.
type Header struct {
	// NodeCount is the number of non-root internal node records ever
	// allocated, including ones currently on the free list.
	NodeCount uint64

	// LeafCount is the number of leaf records ever allocated, including
	// ones currently on the free list.
	LeafCount uint64

	// LiveLeaves is the number of leaf records currently holding a live
	// entry. spec.md's operations table lists size as distinct from
	// leafCount (the latter never shrinks on delete); LiveLeaves is the
	// field that makes Engine.Size an O(1) read instead of a free-list
	// walk, an addition beyond the literal header shape spec.md section
	// 4.10 lists.
	LiveLeaves uint64

	// LastEmptyNode is the head of the internal-node free list: the
	// all-ones LoadMask sentinel when empty, otherwise a 1-based node
	// pool index (spec.md section 4.9).
	LastEmptyNode uint64

	// LastEmptyLeaf is the head of the leaf free list: the all-ones
	// LoadMask sentinel when empty, otherwise a 0-based leaf pool index.
	LastEmptyLeaf uint64
}

// Share returns a copy of the engine's current header, suitable for a host
// to persist (e.g. via EncodeHeader) alongside the two regions' bytes.
func (e *Engine) Share() Header { return e.hdr }

// Unshare restores a previously shared header into an Engine that has not
// been initialized yet, and marks it initialized. It restores only the
// header: the Engine keeps the empty regions NewEngine created, and no
// method loads region bytes into them. It fails if the engine has already
// been initialized.
//
// The copy of LastEmptyLeaf below reads from h.LastEmptyLeaf, not
// h.LastEmptyNode twice: an earlier draft of this trie's design carried a
// copy-paste bug that sourced both fields from LastEmptyNode, silently
// discarding the leaf free list on every resume. spec.md section 9 calls
// this out explicitly as a fixed ambiguity.
func (e *Engine) Unshare(h Header) error {
	if e.initialized {
		return fmt.Errorf("%w: engine already initialized", ErrPreconditionViolated)
	}
	e.hdr = Header{
		NodeCount:     h.NodeCount,
		LeafCount:     h.LeafCount,
		LiveLeaves:    h.LiveLeaves,
		LastEmptyNode: h.LastEmptyNode,
		LastEmptyLeaf: h.LastEmptyLeaf,
	}
	e.initialized = true
	return nil
}

// EncodeHeader serializes h to CBOR, the same wire format massifs/cborcodec.go
// uses for its own small structured index records.
func EncodeHeader(h Header) ([]byte, error) {
	b, err := cbor.Marshal(h)
	if err != nil {
		return nil, fmt.Errorf("triekv: encoding header: %w", err)
	}
	return b, nil
}

// DecodeHeader deserializes a Header previously produced by EncodeHeader.
func DecodeHeader(b []byte) (Header, error) {
	var h Header
	if err := cbor.Unmarshal(b, &h); err != nil {
		return Header{}, fmt.Errorf("triekv: decoding header: %w", err)
	}
	return h, nil
}
