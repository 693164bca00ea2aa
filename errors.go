// Package linkprobe verifies that the libraries linked into a binary by the
// Go module system are present and usable at runtime. Each dependency is
// exercised by a small self-contained probe: a compression round trip, a
// digest computation, a JSON round trip, or a PNG encode/decode. The module
// versions recorded in the binary are reported from embedded build info.
//
// The package grew out of a one-file demo that compressed a fixed string,
// decompressed it, and printed an image library's compile-time and runtime
// versions to prove the toolchain had supplied working dependencies. Demo
// preserves that behavior exactly; Suite generalizes it to every library in
// the module graph.
package linkprobe

import "errors"

// Sentinel errors for programmatic handling. Callers can use errors.Is to
// distinguish contract violations (ErrShortBuffer, ErrEmptyPayload) from
// library failures (ErrCompress, ErrDecompress, ErrVersionQuery) and from
// verification failures (ErrMismatch).
var (
	ErrCompress        = errors.New("compression failed")
	ErrDecompress      = errors.New("decompression failed")
	ErrMismatch        = errors.New("round trip mismatch")
	ErrShortBuffer     = errors.New("buffer capacity exceeded")
	ErrUnknownCodec    = errors.New("unknown codec")
	ErrUnknownDigest   = errors.New("unknown digest algorithm")
	ErrEmptyPayload    = errors.New("payload cannot be empty")
	ErrPayloadTooLarge = errors.New("payload exceeds maximum size")
	ErrVersionQuery    = errors.New("version query failed")
	ErrNoRuns          = errors.New("no recorded runs")
	ErrLogClosed       = errors.New("run log is closed")
)
