package triekv

import "fmt"

// bytesEqual reports whether a and b hold the same bytes. Both are assumed
// to already be KeySize long; callers compare full keys only.
func bytesEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func checkKeyLen(cfg Config, key []byte) error {
	if uint32(len(key)) != cfg.KeySize {
		return fmt.Errorf("%w: key length %d, want %d", ErrPreconditionViolated, len(key), cfg.KeySize)
	}
	return nil
}

func checkValueLen(cfg Config, value []byte) error {
	if uint32(len(value)) != cfg.ValueSize {
		return fmt.Errorf("%w: value length %d, want %d", ErrPreconditionViolated, len(value), cfg.ValueSize)
	}
	return nil
}
