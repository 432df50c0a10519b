package core

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"math"
	"sort"
)

// Hash represents a cryptographic hash
type Hash string

// NewHash creates a new hash from data
func NewHash(data []byte) Hash {
	sum := sha256.Sum256(data)
	return Hash(hex.EncodeToString(sum[:]))
}

// String returns the string representation
func (h Hash) String() string {
	return string(h)
}

// DatasetHash fingerprints a dataset independent of the order of its values.
// Two permutations of the same multiset hash identically.
func DatasetHash(values []float64) Hash {
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)

	buf := make([]byte, 8*len(sorted))
	for i, v := range sorted {
		if v == 0 {
			v = 0 // fold -0 into +0
		}
		binary.LittleEndian.PutUint64(buf[i*8:], math.Float64bits(v))
	}
	return NewHash(buf)
}
