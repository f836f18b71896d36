package triekv

import (
	"fmt"

	"github.com/datatrails/go-datatrails-common/logger"
	"github.com/google/uuid"

	"github.com/forestrie/go-triekv/region"
)

// Engine is the shared trie implementation behind both facades
// (enumeration.Enumeration and kvmap.Map). It owns the two regions, the
// resident Header, and the derived constants for a single Config; it never
// decides facade-level policy (whether add overwrites, whether delete is
// permitted) itself, leaving that to the facades' thin wrapper methods.
//
// Engine is not safe for concurrent use. Every exported method, including
// stepping an Iterator returned by Entries/EntriesRev, must be serialized
// by the caller if shared across goroutines.
type Engine struct {
	cfg Config
	d   Derived

	id  uuid.UUID
	log logger.Logger

	nodes  *region.Region
	leaves *region.Region

	hdr Header

	forMap      bool
	initialized bool
}

// Option configures an Engine at construction time.
type Option func(*Engine)

// WithLogger overrides the engine's logger. By default NewEngine names its
// own logger off the package-level logger.Sugar, the same way
// massifs/testcommitter.go's NewTestMinimalCommitter builds a named logger
// when the caller doesn't supply one, rather than requiring every caller
// to thread a *logger.Logger through.
func WithLogger(l logger.Logger) Option {
	return func(e *Engine) { e.log = l }
}

// NewEngine validates cfg and returns a fresh, empty Engine. forMap selects
// whether the stricter Map validation (Config.ValidateForMap) applies;
// enumeration.New and kvmap.New each pass the right value so callers of
// this package directly get the same checks either facade would apply.
func NewEngine(cfg Config, forMap bool, opts ...Option) (*Engine, error) {
	if forMap {
		if err := cfg.ValidateForMap(); err != nil {
			return nil, err
		}
	} else {
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}

	e := &Engine{
		cfg:    cfg,
		d:      cfg.Derive(),
		id:     uuid.New(),
		log:    logger.Sugar.WithServiceName("triekv"),
		nodes:  region.New(),
		leaves: region.New(),
		forMap: forMap,
	}
	e.hdr.LastEmptyNode = e.d.LoadMask
	e.hdr.LastEmptyLeaf = e.d.LoadMask

	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// ID returns the engine's correlation identifier, included in its log
// lines so multiple engines in one process can be told apart.
func (e *Engine) ID() uuid.UUID { return e.id }

// ensureInit lazily allocates the root node's backing storage on first
// use, so an Engine constructed but never written to costs nothing.
func (e *Engine) ensureInit() error {
	if e.initialized {
		return nil
	}
	for e.nodes.Len() < int(e.d.RootSize) {
		if err := e.nodes.Reserve(region.PageSize); err != nil {
			return fmt.Errorf("%w: allocating root: %v", ErrLimitExceeded, err)
		}
	}
	e.initialized = true
	e.log.Debugf("%s: root allocated, root_size=%d", e.id, e.d.RootSize)
	return nil
}

// Size returns the number of live key/value entries, O(1) via the
// resident LiveLeaves counter (see header.go).
func (e *Engine) Size() uint64 { return e.hdr.LiveLeaves }

// LeafCount returns the number of leaf records ever allocated, including
// ones now sitting on the free list. This differs from Size once any
// entry has been removed; it is retained because spec.md's operations
// table lists leafCount separately from size.
func (e *Engine) LeafCount() uint64 { return e.hdr.LeafCount }

// NodeCount returns the number of non-root internal node records ever
// allocated, including ones now on the free list.
func (e *Engine) NodeCount() uint64 { return e.hdr.NodeCount }

// MemoryStats reports the physical footprint of both regions.
type MemoryStats struct {
	NodesBytes  int
	LeavesBytes int
}

// MemoryStats returns the current physical size of both regions.
func (e *Engine) MemoryStats() MemoryStats {
	return MemoryStats{
		NodesBytes:  e.nodes.Len(),
		LeavesBytes: e.leaves.Len(),
	}
}
