// Round-trip verification, the core probe.
//
// RoundTrip compresses a payload into a fixed-capacity buffer, decompresses
// it into a second one, and compares the result to the input byte for byte.
// It keeps the shape of the C demo it replaced: both buffers are sized up
// front, output is confined to their capacity, and any failure ends the
// sequence. Unlike the demo, a mismatch is an error rather than something
// for the operator to spot in the printout.
package linkprobe

import (
	"bytes"
	"fmt"
)

// MaxPayloadSize is the default limit on payload length (16MB).
const MaxPayloadSize = 16 * 1024 * 1024

// RoundTripOptions configures a single verification. The zero value sizes
// the compression buffer at the codec's worst-case bound, the decompression
// buffer at the payload length, and digests with xxHash3.
type RoundTripOptions struct {
	Capacity        int // Capacity for both buffers (default per-buffer sizing)
	DigestAlgorithm int // 1=xxHash3, 2=FNV1a, 3=Blake2b, 4=Blake3
	MaxPayloadSize  int // Reject larger payloads (default 16MB)
}

// RoundTripResult reports a completed verification.
type RoundTripResult struct {
	Codec           string  // Codec name
	OriginalLen     int     // Payload length in bytes
	CompressedLen   int     // Compressed length in bytes
	DecompressedLen int     // Recovered length in bytes, equals OriginalLen
	Ratio           float64 // CompressedLen over OriginalLen
	Digest          string  // 16 hex character payload digest
}

// RoundTrip verifies that payload survives a compress/decompress cycle
// through c. Compression failures wrap ErrCompress and stop the sequence
// before decompression; decompression failures wrap ErrDecompress; a
// capacity violation in either direction is ErrShortBuffer; a recovered
// payload that differs from the input is ErrMismatch.
func RoundTrip(c Codec, payload []byte, opts *RoundTripOptions) (*RoundTripResult, error) {
	if opts == nil {
		opts = &RoundTripOptions{}
	}
	// Default option values
	if opts.DigestAlgorithm == 0 {
		opts.DigestAlgorithm = AlgXXHash3
	}
	if opts.MaxPayloadSize == 0 {
		opts.MaxPayloadSize = MaxPayloadSize
	}

	if len(payload) == 0 {
		return nil, ErrEmptyPayload
	}
	if len(payload) > opts.MaxPayloadSize {
		return nil, fmt.Errorf("%w: %d bytes, limit %d", ErrPayloadTooLarge, len(payload), opts.MaxPayloadSize)
	}
	if digestName(opts.DigestAlgorithm) == "" {
		return nil, fmt.Errorf("%w: algorithm %d", ErrUnknownDigest, opts.DigestAlgorithm)
	}

	compCap := opts.Capacity
	if compCap == 0 {
		compCap = c.Bound(len(payload))
	}
	decCap := opts.Capacity
	if decCap == 0 {
		decCap = len(payload)
	}

	compressed, err := c.Compress(make([]byte, 0, compCap), payload)
	if err != nil {
		return nil, err
	}

	decompressed, err := c.Decompress(make([]byte, 0, decCap), compressed)
	if err != nil {
		return nil, err
	}

	if !bytes.Equal(decompressed, payload) {
		return nil, fmt.Errorf("%w: %s: %d bytes in, %d bytes back", ErrMismatch, c.Name(), len(payload), len(decompressed))
	}

	return &RoundTripResult{
		Codec:           c.Name(),
		OriginalLen:     len(payload),
		CompressedLen:   len(compressed),
		DecompressedLen: len(decompressed),
		Ratio:           float64(len(compressed)) / float64(len(payload)),
		Digest:          digest(payload, opts.DigestAlgorithm),
	}, nil
}
