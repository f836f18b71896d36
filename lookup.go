package triekv

// Lookup descends the trie as PutStructural's step 1 does (spec.md section
// 4.6) and reports whether key is present. found is false both when the
// descent hits a null slot and when it terminates on a leaf whose stored
// key differs from key.
func (e *Engine) Lookup(key []byte) (value []byte, leafIndex uint64, found bool, err error) {
	if err := checkKeyLen(e.cfg, key); err != nil {
		return nil, 0, false, err
	}
	if !e.initialized {
		return nil, 0, false, nil
	}

	var node Pointer
	atRoot := true
	idx := keyToRootIndex(key, e.d.R)
	pos := uint64(e.d.R)

	for {
		child := e.getChild(node, idx, atRoot)
		if child.IsNull() {
			return nil, 0, false, nil
		}
		if child.IsLeaf() {
			storedKey := e.leafKey(child)
			if !bytesEqual(storedKey, key) {
				return nil, 0, false, nil
			}
			return e.leafValue(child), child.Index(), true, nil
		}
		node = child
		atRoot = false
		idx = keyToIndex(key, pos, e.d.B)
		pos += uint64(e.d.B)
	}
}
