package triekv

// Entry is one key/value pair yielded by an Iterator.
type Entry struct {
	Key   []byte
	Value []byte
}

// frame is one level of the explicit DFS stack described in spec.md
// section 4.7: the node being scanned (the null pointer for the root
// sentinel), and the next child slot index to inspect.
type frame struct {
	node   Pointer
	atRoot bool
	i      int
	last   int // inclusive last valid index at this level
	rev    bool
}

// Iterator walks the trie in ascending or descending key order. It takes
// no snapshot: each Next reads the engine's live regions, and an Iterator
// created before the engine's first insert yields nothing. Mutating the
// engine while an Iterator is in flight is undefined, matching spec.md
// section 4.7's explicit option to leave that case undefined.
type Iterator struct {
	e     *Engine
	stack []frame
	rev   bool
	done  bool
}

// Entries returns an ascending in-order Iterator.
func (e *Engine) Entries() *Iterator {
	return e.newIterator(false)
}

// EntriesRev returns a descending in-order Iterator.
func (e *Engine) EntriesRev() *Iterator {
	return e.newIterator(true)
}

func (e *Engine) newIterator(rev bool) *Iterator {
	it := &Iterator{e: e, rev: rev}
	if !e.initialized {
		it.done = true
		return it
	}
	start := 0
	last := rootChildCount(e) - 1
	if rev {
		start = last
	}
	it.stack = []frame{{node: nullPointer, atRoot: true, i: start, last: last, rev: rev}}
	return it
}

func rootChildCount(e *Engine) int {
	return int(uint64(1) << e.d.R)
}

// Next advances the iterator and returns the next entry in order, or
// (Entry{}, false) once exhausted.
func (it *Iterator) Next() (Entry, bool) {
	if it.done {
		return Entry{}, false
	}
	e := it.e
	for len(it.stack) > 0 {
		top := &it.stack[len(it.stack)-1]

		inRange := top.i >= 0 && top.i <= top.last
		if !inRange {
			it.stack = it.stack[:len(it.stack)-1]
			if len(it.stack) == 0 {
				break
			}
			parent := &it.stack[len(it.stack)-1]
			if parent.rev {
				parent.i--
			} else {
				parent.i++
			}
			continue
		}

		child := e.getChild(top.node, uint64(top.i), top.atRoot)

		if child.IsNull() {
			if top.rev {
				top.i--
			} else {
				top.i++
			}
			continue
		}

		if child.IsLeaf() {
			if top.rev {
				top.i--
			} else {
				top.i++
			}
			key := e.leafKey(child)
			value := e.leafValue(child)
			return Entry{Key: key, Value: value}, true
		}

		// Internal node: push a new frame over it and descend.
		start := 0
		last := int(e.cfg.Aridity) - 1
		if top.rev {
			start = last
		}
		it.stack = append(it.stack, frame{node: child, atRoot: false, i: start, last: last, rev: top.rev})
	}
	it.done = true
	return Entry{}, false
}

// ToSlice drains the iterator into a slice, in order.
func (it *Iterator) ToSlice() []Entry {
	var out []Entry
	for {
		ent, ok := it.Next()
		if !ok {
			break
		}
		out = append(out, ent)
	}
	return out
}

// KeyIterator yields only keys.
type KeyIterator struct{ it *Iterator }

// Keys returns an ascending key-only iterator.
func (e *Engine) Keys() *KeyIterator { return &KeyIterator{it: e.Entries()} }

// KeysRev returns a descending key-only iterator.
func (e *Engine) KeysRev() *KeyIterator { return &KeyIterator{it: e.EntriesRev()} }

// Next returns the next key, or (nil, false) once exhausted.
func (k *KeyIterator) Next() ([]byte, bool) {
	ent, ok := k.it.Next()
	if !ok {
		return nil, false
	}
	return ent.Key, true
}

// ValueIterator yields only values.
type ValueIterator struct{ it *Iterator }

// Vals returns an ascending value-only iterator.
func (e *Engine) Vals() *ValueIterator { return &ValueIterator{it: e.Entries()} }

// ValsRev returns a descending value-only iterator.
func (e *Engine) ValsRev() *ValueIterator { return &ValueIterator{it: e.EntriesRev()} }

// Next returns the next value, or (nil, false) once exhausted.
func (v *ValueIterator) Next() ([]byte, bool) {
	ent, ok := v.it.Next()
	if !ok {
		return nil, false
	}
	return ent.Value, true
}
