// Digest algorithm implementations for payload fingerprints.
//
// Round-trip results carry a 16 hex character digest of the payload so two
// runs over the same input can be compared by eye or by script. Four
// algorithms are supported, selectable via Config.DigestAlgorithm.
package linkprobe

import (
	"fmt"
	"hash/fnv"

	"github.com/zeebo/xxh3"
	"golang.org/x/crypto/blake2b"
	"lukechampine.com/blake3"
)

// Digest algorithm constants.
const (
	AlgXXHash3 = 1 // Default, fastest
	AlgFNV1a   = 2 // No external dependencies
	AlgBlake2b = 3 // Best distribution
	AlgBlake3  = 4 // Cryptographic strength
)

// digestAlgs lists every supported algorithm with its report name, in
// probe order.
var digestAlgs = []struct {
	alg  int
	name string
}{
	{AlgXXHash3, "xxh3"},
	{AlgFNV1a, "fnv1a"},
	{AlgBlake2b, "blake2b"},
	{AlgBlake3, "blake3"},
}

// digest generates a 16 hex character fingerprint of data using the
// specified algorithm. Returns "" for an unknown algorithm.
func digest(data []byte, alg int) string {
	switch alg {
	case AlgXXHash3:
		return fmt.Sprintf("%016x", xxh3.Hash(data))
	case AlgFNV1a:
		h := fnv.New64a()
		h.Write(data)
		return fmt.Sprintf("%016x", h.Sum64())
	case AlgBlake2b:
		h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
		h.Write(data)
		return fmt.Sprintf("%016x", h.Sum(nil))
	case AlgBlake3:
		sum := blake3.Sum256(data)
		return fmt.Sprintf("%016x", sum[:8])
	default:
		return ""
	}
}

// digestName returns the report name for an algorithm constant, or "" if
// unknown.
func digestName(alg int) string {
	for _, d := range digestAlgs {
		if d.alg == alg {
			return d.name
		}
	}
	return ""
}
