// Package digest computes the content keys entries are stored under
package digest

import (
	"encoding/hex"

	"github.com/zeebo/xxh3"
)

// Size is the hex length of a digest produced by XXH3
const Size = 32

// Hasher turns text into a fixed width key
// implementations must be deterministic across processes
type Hasher interface {
	Digest(text string) string
}

// HasherFunc lets a plain function act as a Hasher
type HasherFunc func(string) string

// Digest calls f
func (f HasherFunc) Digest(text string) string { return f(text) }

// XXH3 is the 128 bit xxh3 hasher with seed 0
// changing it invalidates every stored key
type XXH3 struct{}

// Digest returns the canonical big endian xxh3-128 digest as lowercase hex
func (XXH3) Digest(text string) string {
	sum := xxh3.HashString128(text).Bytes()
	return hex.EncodeToString(sum[:])
}

// Default returns the hasher production stores use
func Default() Hasher { return XXH3{} }

// Or returns h, falling back to Default when h is nil
func Or(h Hasher) Hasher {
	if h == nil {
		return Default()
	}
	return h
}

// Valid reports whether s looks like a digest produced by XXH3
func Valid(s string) bool {
	if len(s) != Size {
		return false
	}
	_, err := hex.DecodeString(s)
	return err == nil
}
