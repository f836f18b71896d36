/*
Package triekv implements a persistent, append-reusable key-value engine
backed by two linearly-grown byte regions, organized as a compressed
fixed-arity trie over fixed-length binary keys.

# Shape

Two pools share one tagged address space:

  - a nodes region, an array of fixed-size internal nodes each holding A
    pointer slots (A = aridity), with the root node occupying R slots at
    offset 0 (R = root_aridity, R >= A);
  - a leaves region, an array of fixed-size leaves each storing
    key_size+value_size bytes.

A pointer is a little-endian, pointer_size-byte unsigned integer: 0 means
null; a nonzero value's low bit selects leaf (1) or internal node (0), and
the remaining bits are the index into the corresponding pool. This mirrors
the postorder node-store records in this module's ancestor, urkle
(github.com/forestrie/go-merklelog/urkle), generalized from a fixed-arity-2
append-only hash trie to an arbitrary-arity, mutable key/value trie: where
urkle derives a branch's children from rightSpan arithmetic over postorder
position, triekv stores explicit child pointers, because deletion (which
urkle never needs) requires rewriting a parent's slot in place without
renumbering the rest of the trie.

# Compression invariant

Every non-root internal node expands into at least two distinct leaves.
Insertion (put_, insert.go) only creates internal nodes for a prefix that
two keys share, one node per bit step down to the step where they differ,
so nodes along a longer shared prefix have a single internal-node child.
Deletion (remove, delete.go) frees each node left with a single leaf below
it and puts that leaf in its place (collapse, delete.go).

# Facades

Package triekv itself is the shared Engine; the enumeration and kvmap
sibling packages are thin facades over it — enumeration never deletes and
exposes insertion-ordered indices, kvmap supports delete with free-list
slot reuse. Both facades, and the Engine itself, are single-threaded: no
method suspends mid-call, and there is no internal locking. Callers needing
thread safety must serialize access to every exported method, including
iterator steps, themselves.
*/
package triekv
