package util

import (
	"github.com/OneOfOne/xxhash"
)

// HashCode returns the xxhash64 of data.
func HashCode(data []byte) uint64 {
	h := xxhash.New64()
	h.Write(data)
	return h.Sum64()
}
