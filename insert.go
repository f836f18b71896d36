package triekv

// PutResult is the outcome of PutStructural: whether a new leaf was
// created, and the leaf index the key now occupies either way.
type PutResult struct {
	Added     bool
	LeafIndex uint64
}

// rootChild reads the root's slot idx.
func (e *Engine) rootChild(idx uint64) Pointer {
	return e.decodePointer(e.nodes, e.rootSlotOffset(idx))
}

func (e *Engine) setRootChild(idx uint64, p Pointer) {
	e.encodePointer(e.nodes, e.rootSlotOffset(idx), p)
}

func (e *Engine) nodeChild(node Pointer, idx uint64) Pointer {
	return e.decodePointer(e.nodes, e.slotOffset(node, idx))
}

func (e *Engine) setNodeChild(node Pointer, idx uint64, p Pointer) {
	e.encodePointer(e.nodes, e.slotOffset(node, idx), p)
}

// getChild reads slot idx of node, where node == nullPointer is the root
// sentinel (slot offsets for the root differ from non-root nodes, see
// pool.go's rootSlotOffset/slotOffset split).
func (e *Engine) getChild(node Pointer, idx uint64, atRoot bool) Pointer {
	if atRoot {
		return e.rootChild(idx)
	}
	return e.nodeChild(node, idx)
}

func (e *Engine) setChild(node Pointer, idx uint64, atRoot bool, p Pointer) {
	if atRoot {
		e.setRootChild(idx, p)
		return
	}
	e.setNodeChild(node, idx, p)
}

// PutStructural is the shared put_ operation (spec.md section 4.5): it
// descends from the root to the first empty or leaf slot, and either
// fills the empty slot with a freshly allocated leaf or, on a diverging
// existing leaf, runs the divergence loop that allocates intermediate
// internal nodes until the two keys' per-step indices differ. It never
// writes a value: the facade decides, per operation (add/put always
// overwrite, getOrPut never does), whether and what to write via
// setLeafValue/leafValue after PutStructural returns.
func (e *Engine) PutStructural(key []byte) (PutResult, error) {
	if err := checkKeyLen(e.cfg, key); err != nil {
		return PutResult{}, err
	}
	if err := e.ensureInit(); err != nil {
		return PutResult{}, err
	}

	// Descend (spec.md 4.5 step 1).
	var node Pointer
	atRoot := true
	idx := keyToRootIndex(key, e.d.R)
	pos := uint64(e.d.R)

	var child Pointer
	for {
		child = e.getChild(node, idx, atRoot)
		if child.IsNull() || child.IsLeaf() {
			break
		}
		node = child
		atRoot = false
		idx = keyToIndex(key, pos, e.d.B)
		pos += uint64(e.d.B)
	}

	// Empty slot (step 2).
	if child.IsNull() {
		leaf, err := e.newLeaf(key)
		if err != nil {
			return PutResult{}, err
		}
		e.setChild(node, idx, atRoot, leaf)
		e.hdr.LiveLeaves++
		return PutResult{Added: true, LeafIndex: leaf.Index()}, nil
	}

	// Existing leaf (step 3).
	existingKey := e.leafKey(child)
	if bytesEqual(existingKey, key) {
		return PutResult{Added: false, LeafIndex: child.Index()}, nil
	}

	return e.divergenceLoop(node, idx, atRoot, child, existingKey, key, pos)
}

// divergenceLoop implements spec.md section 4.5's divergence loop,
// including the partial-rollback policy: if an allocation fails, the slot
// that was about to be overwritten is restored to its original leaf
// pointer before the error is returned.
func (e *Engine) divergenceLoop(node Pointer, idx uint64, atRoot bool, oldLeaf Pointer, oldKey, newKey []byte, pos uint64) (PutResult, error) {
	for {
		m, err := e.newInternalNode()
		if err != nil {
			// node[idx] was about to be overwritten with the new
			// internal node m; since that allocation failed, restore
			// oldLeaf into it so oldKey stays reachable (spec.md
			// section 4.5's partial-rollback policy). On the first
			// iteration this is a no-op (node[idx] already holds
			// oldLeaf); on later iterations node/idx address the m
			// allocated by the prior iteration, whose slot is still
			// null and must be repointed at oldLeaf.
			e.setChild(node, idx, atRoot, oldLeaf)
			return PutResult{}, err
		}
		e.setChild(node, idx, atRoot, m)

		a := keyToIndex(newKey, pos, e.d.B)
		bIdx := keyToIndex(oldKey, pos, e.d.B)
		pos += uint64(e.d.B)

		if a == bIdx {
			node = m
			atRoot = false
			idx = a
			continue
		}

		e.setNodeChild(m, bIdx, oldLeaf)

		newLeaf, err := e.newLeaf(newKey)
		if err != nil {
			// m is left reachable holding only oldLeaf under bIdx: a
			// transient I3 violation the spec explicitly permits
			// (section 4.5, partial-rollback policy).
			return PutResult{}, err
		}
		e.setNodeChild(m, a, newLeaf)
		e.hdr.LiveLeaves++
		return PutResult{Added: true, LeafIndex: newLeaf.Index()}, nil
	}
}
