// Codec registry and the buffer contract shared by every implementation.
//
// Codecs mirror the C zlib compress/uncompress calling convention the demo
// was built around: output is written into a caller-sized destination and
// the used prefix is returned. A destination is never grown past its
// capacity; a result that cannot fit is ErrShortBuffer.
package linkprobe

import "fmt"

// Codec is a compression scheme probed by the suite. Implementations are
// stateless values, safe for concurrent use.
type Codec interface {
	// Name returns the registry name, e.g. "zlib".
	Name() string

	// Compress writes the compressed form of src into dst's capacity and
	// returns the used prefix. A nil dst allocates as needed. Returns
	// ErrShortBuffer when the output exceeds cap(dst).
	Compress(dst, src []byte) ([]byte, error)

	// Decompress is the inverse of Compress under the same contract.
	// Formats that record their decompressed size are checked against
	// dst's capacity before any output is produced.
	Decompress(dst, src []byte) ([]byte, error)

	// Bound returns a worst-case compressed size for n input bytes.
	Bound(n int) int
}

// codecs lists every registered codec. The probe suite and Names iterate
// in this order.
var codecs = []Codec{
	zlibCodec{},
	flateCodec{},
	gzipCodec{},
	zstdCodec{},
	s2Codec{},
	snappyCodec{},
	lz4Codec{},
	brotliCodec{},
}

// Lookup returns the codec registered under name.
func Lookup(name string) (Codec, error) {
	for _, c := range codecs {
		if c.Name() == name {
			return c, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownCodec, name)
}

// Names returns the names of all registered codecs in registration order.
func Names() []string {
	names := make([]string, len(codecs))
	for i, c := range codecs {
		names[i] = c.Name()
	}
	return names
}

// checkCap reports ErrShortBuffer when n output bytes cannot fit within
// dst's capacity. A nil dst imposes no limit.
func checkCap(dst []byte, n int) error {
	if dst == nil {
		return nil
	}
	if n > cap(dst) {
		return fmt.Errorf("%w: output %d exceeds capacity %d", ErrShortBuffer, n, cap(dst))
	}
	return nil
}

// fit copies out into dst under the capacity contract and returns the used
// prefix, so the caller's buffer is the backing store regardless of how the
// codec produced its output. A nil dst returns out unchanged.
func fit(dst, out []byte) ([]byte, error) {
	if err := checkCap(dst, len(out)); err != nil {
		return nil, err
	}
	if dst == nil {
		return out, nil
	}
	dst = dst[:len(out)]
	copy(dst, out)
	return dst, nil
}

// compressBound is the fallback worst-case size for codecs whose library
// does not export its own bound: the zlib formula plus headroom for the
// larger frame headers of gzip, zstd and brotli.
func compressBound(n int) int {
	return n + n>>12 + n>>14 + n>>25 + 13 + 64
}
