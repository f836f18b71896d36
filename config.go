package triekv

import "fmt"

// Config is the caller-supplied, immutable shape of a trie: every derived
// constant (bit widths, record sizes, the free-list sentinel) is computed
// from these five fields by Derive. Config carries no defaults; every field
// must be set explicitly and passed through Validate before use, mirroring
// the teacher's plain-struct-plus-Validate convention rather than a
// flags/viper configuration framework (spec.md section 6: no CLI, no
// environment variables).
type Config struct {
	// PointerSize is the width in bytes of an encoded pointer. Must be
	// one of 2, 4, 5, 6, 8.
	PointerSize uint8

	// Aridity is the number of child slots in a non-root internal node.
	// Must be one of 2, 4, 16, 256.
	Aridity uint32

	// RootAridity is the number of child slots in the root node. Must be
	// a power of two, RootAridity >= Aridity.
	RootAridity uint32

	// KeySize is the fixed length in bytes of every key.
	KeySize uint32

	// ValueSize is the fixed length in bytes of every value.
	ValueSize uint32
}

// Derived holds the constants computed once from a validated Config:
// per-step bit counts, the node/leaf record sizes, and the free-list
// sentinel mask. Engine recomputes and caches a Derived at construction
// time rather than recomputing these on every call.
type Derived struct {
	// B is the number of key bits a non-root internal node consumes per
	// step: log2(Aridity).
	B uint8

	// R is the number of key bits the root node consumes: log2(RootAridity).
	R uint8

	// M is the pointer value mask for the configured PointerSize
	// (all-ones in the low 8*PointerSize bits).
	M uint64

	// LoadMask is the free-list sentinel: the all-ones index value that
	// marks an empty free-list (spec.md section 4.9).
	LoadMask uint64

	// NodeSize is the byte size of one non-root internal node record:
	// Aridity * PointerSize.
	NodeSize uint32

	// RootSize is the byte size of the root node record:
	// RootAridity * PointerSize.
	RootSize uint32

	// LeafSize is the byte size of one leaf record: KeySize + ValueSize.
	LeafSize uint32
}

func isPowerOfTwo(v uint32) bool {
	return v != 0 && v&(v-1) == 0
}

func log2(v uint32) uint8 {
	var n uint8
	for v > 1 {
		v >>= 1
		n++
	}
	return n
}

// Validate checks the structural constraints spec.md section 6 places on
// every configuration, regardless of facade. It does not check the
// additional constraint ValidateForMap adds for the delete-capable Map
// facade.
func (c Config) Validate() error {
	switch c.PointerSize {
	case 2, 4, 5, 6, 8:
	default:
		return fmt.Errorf("%w: pointer_size %d must be one of 2,4,5,6,8", ErrConfigurationInvalid, c.PointerSize)
	}
	switch c.Aridity {
	case 2, 4, 16, 256:
	default:
		return fmt.Errorf("%w: aridity %d must be one of 2,4,16,256", ErrConfigurationInvalid, c.Aridity)
	}
	if !isPowerOfTwo(c.RootAridity) {
		return fmt.Errorf("%w: root_aridity %d must be a power of two", ErrConfigurationInvalid, c.RootAridity)
	}
	if c.RootAridity < c.Aridity {
		return fmt.Errorf("%w: root_aridity %d must be >= aridity %d", ErrConfigurationInvalid, c.RootAridity, c.Aridity)
	}
	if c.KeySize == 0 {
		return fmt.Errorf("%w: key_size must be > 0", ErrConfigurationInvalid)
	}
	if uint64(c.KeySize)+uint64(c.ValueSize) > 65536 {
		return fmt.Errorf("%w: key_size+value_size %d exceeds 65536", ErrConfigurationInvalid, uint64(c.KeySize)+uint64(c.ValueSize))
	}

	keyBits := uint64(c.KeySize) * 8
	r := log2(c.RootAridity)
	if uint64(r) > keyBits {
		return fmt.Errorf("%w: root_aridity consumes %d bits but key_size only has %d", ErrConfigurationInvalid, r, keyBits)
	}
	// Only check the reverse bound (root_aridity <= 2^keyBits) when
	// keyBits is small enough that 1<<keyBits doesn't overflow uint64;
	// for any realistic key_size (>=4 bytes, 32 bits) this can never
	// bind in practice, so the check is skipped rather than risking a
	// shift overflow.
	if keyBits < 32 {
		if uint64(c.RootAridity) > (uint64(1) << keyBits) {
			return fmt.Errorf("%w: root_aridity %d exceeds 2^key_bits %d", ErrConfigurationInvalid, c.RootAridity, keyBits)
		}
	}

	remaining := keyBits - uint64(r)
	b := log2(c.Aridity)
	if remaining%uint64(b) != 0 {
		return fmt.Errorf("%w: remaining key bits %d after root must divide evenly by %d bits/step", ErrConfigurationInvalid, remaining, b)
	}

	return nil
}

// ValidateForMap additionally enforces the constraint the delete-capable
// Map facade needs on top of Validate: key_size+value_size must be at least
// pointer_size, because a freed leaf stores the free-list link in its own
// first pointer_size bytes (see freelist.go).
func (c Config) ValidateForMap() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.KeySize+c.ValueSize < uint32(c.PointerSize) {
		return fmt.Errorf("%w: key_size+value_size %d must be >= pointer_size %d for the Map facade",
			ErrConfigurationInvalid, c.KeySize+c.ValueSize, c.PointerSize)
	}
	return nil
}

// Derive computes the constants that follow from a validated Config. The
// caller must have already called Validate (Derive does not repeat those
// checks).
func (c Config) Derive() Derived {
	r := log2(c.RootAridity)
	b := log2(c.Aridity)

	indexBits := uint(c.PointerSize)*8 - 1
	var loadMask uint64
	if indexBits >= 64 {
		loadMask = ^uint64(0)
	} else {
		loadMask = (uint64(1) << indexBits) - 1
	}

	var m uint64
	bits := uint(c.PointerSize) * 8
	if bits >= 64 {
		m = ^uint64(0)
	} else {
		m = (uint64(1) << bits) - 1
	}

	return Derived{
		B:        b,
		R:        r,
		M:        m,
		LoadMask: loadMask,
		NodeSize: c.Aridity * uint32(c.PointerSize),
		RootSize: c.RootAridity * uint32(c.PointerSize),
		LeafSize: c.KeySize + c.ValueSize,
	}
}
