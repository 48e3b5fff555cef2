// Package container provides allocator-parameterized collections: a dynamic
// array and a shared hash-table engine backing both a set and a map. Every
// container holds a non-owning reference to an allocator.Allocator supplied
// at construction; the allocator must outlive the container.
package container

import (
	"unsafe"

	"github.com/cespare/xxhash/v2"
)

// Hasher computes a 64-bit hash of a key. The low 7 bits of the result pick
// a slot's H2 metadata tag; the remaining high bits pick the probe start
// (H1), per spec.md §4.H / §6.
type Hasher[K comparable] interface {
	Hash(key K) uint64
}

// stringHasher hashes string keys with xxhash, the library the rest of the
// retrieved example pack reaches for over a hand-rolled FNV/wyhash variant.
type stringHasher struct{}

func (stringHasher) Hash(key string) uint64 {
	return xxhash.Sum64String(key)
}

// wordHasher hashes any fixed-width comparable key by reading its bit
// pattern and feeding it to xxhash, the Go-ecosystem stand-in for the
// original's wyhash-based Hash<T> specializations over the integer and
// floating-point kinds.
type wordHasher[K comparable] struct{}

func (wordHasher[K]) Hash(key K) uint64 {
	return xxhash.Sum64(unsafe.Slice((*byte)(unsafe.Pointer(&key)), unsafe.Sizeof(key)))
}

// DefaultHasher returns the hasher used when a Set or Map is constructed
// without an explicit one: xxhash over the key's raw bytes for any
// fixed-width comparable type, with a dedicated fast path for string keys,
// whose header is not a hash of their contents.
func DefaultHasher[K comparable]() Hasher[K] {
	var zero K
	switch any(zero).(type) {
	case string:
		return any(stringHasher{}).(Hasher[K])
	default:
		return wordHasher[K]{}
	}
}
