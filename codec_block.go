// Block codecs: zstd, s2, snappy, lz4.
//
// These operate on whole byte slices. Formats that record the decompressed
// size (zstd's frame content size, s2, snappy, lz4's length header) are
// checked against the destination's capacity before any output is produced.
package linkprobe

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/golang/snappy"
	"github.com/klauspost/compress/s2"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Shared zstd encoder/decoder, both documented as safe for concurrent use.
// Allocated once because construction builds internal state tables that
// would dominate the cost of compressing small probe payloads. SpeedFastest
// because the probes measure presence, not ratio.
var (
	zstdEncoder, _ = zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedFastest))
	zstdDecoder, _ = zstd.NewReader(nil)
)

type zstdCodec struct{}

func (zstdCodec) Name() string { return "zstd" }

func (zstdCodec) Compress(dst, src []byte) ([]byte, error) {
	return fit(dst, zstdEncoder.EncodeAll(src, nil))
}

func (zstdCodec) Decompress(dst, src []byte) ([]byte, error) {
	var h zstd.Header
	if err := h.Decode(src); err != nil {
		return nil, fmt.Errorf("%w: zstd: %w", ErrDecompress, err)
	}
	// EncodeAll records the content size, so frames from Compress always
	// carry one. Frames without it are caught by fit after decoding.
	if h.HasFCS {
		if h.FrameContentSize > math.MaxInt32 {
			return nil, fmt.Errorf("%w: zstd: frame declares %d bytes", ErrDecompress, h.FrameContentSize)
		}
		if err := checkCap(dst, int(h.FrameContentSize)); err != nil {
			return nil, err
		}
	}

	out, err := zstdDecoder.DecodeAll(src, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: zstd: %w", ErrDecompress, err)
	}
	return fit(dst, out)
}

func (zstdCodec) Bound(n int) int { return compressBound(n) }

type s2Codec struct{}

func (s2Codec) Name() string { return "s2" }

func (s2Codec) Compress(dst, src []byte) ([]byte, error) {
	return fit(dst, s2.Encode(nil, src))
}

func (s2Codec) Decompress(dst, src []byte) ([]byte, error) {
	n, err := s2.DecodedLen(src)
	if err != nil {
		return nil, fmt.Errorf("%w: s2: %w", ErrDecompress, err)
	}
	if err := checkCap(dst, n); err != nil {
		return nil, err
	}

	out, err := s2.Decode(nil, src)
	if err != nil {
		return nil, fmt.Errorf("%w: s2: %w", ErrDecompress, err)
	}
	return fit(dst, out)
}

func (s2Codec) Bound(n int) int { return s2.MaxEncodedLen(n) }

type snappyCodec struct{}

func (snappyCodec) Name() string { return "snappy" }

func (snappyCodec) Compress(dst, src []byte) ([]byte, error) {
	return fit(dst, snappy.Encode(nil, src))
}

func (snappyCodec) Decompress(dst, src []byte) ([]byte, error) {
	n, err := snappy.DecodedLen(src)
	if err != nil {
		return nil, fmt.Errorf("%w: snappy: %w", ErrDecompress, err)
	}
	if err := checkCap(dst, n); err != nil {
		return nil, err
	}

	out, err := snappy.Decode(nil, src)
	if err != nil {
		return nil, fmt.Errorf("%w: snappy: %w", ErrDecompress, err)
	}
	return fit(dst, out)
}

func (snappyCodec) Bound(n int) int { return snappy.MaxEncodedLen(n) }

type lz4Codec struct{}

// lz4 wire form modes. The block format records no decompressed size, so
// payloads start with a uvarint of it, then a mode byte: lz4Raw stores the
// input verbatim when CompressBlock reports it incompressible, lz4Block an
// encoded block.
const (
	lz4Raw   = 0x00
	lz4Block = 0x01
)

func (lz4Codec) Name() string { return "lz4" }

func (lz4Codec) Compress(dst, src []byte) ([]byte, error) {
	out := binary.AppendUvarint(nil, uint64(len(src)))

	buf := make([]byte, lz4.CompressBlockBound(len(src)))
	n, err := lz4.CompressBlock(src, buf, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: lz4: %w", ErrCompress, err)
	}
	if n == 0 {
		out = append(out, lz4Raw)
		return fit(dst, append(out, src...))
	}
	out = append(out, lz4Block)
	return fit(dst, append(out, buf[:n]...))
}

func (lz4Codec) Decompress(dst, src []byte) ([]byte, error) {
	size, read := binary.Uvarint(src)
	if read <= 0 || read >= len(src) || size > math.MaxInt32 {
		return nil, fmt.Errorf("%w: lz4: invalid length header", ErrDecompress)
	}
	if err := checkCap(dst, int(size)); err != nil {
		return nil, err
	}

	mode, block := src[read], src[read+1:]
	switch mode {
	case lz4Raw:
		if uint64(len(block)) != size {
			return nil, fmt.Errorf("%w: lz4: raw block is %d bytes, header says %d", ErrDecompress, len(block), size)
		}
		return fit(dst, block)
	case lz4Block:
		out := make([]byte, size)
		n, err := lz4.UncompressBlock(block, out)
		if err != nil {
			return nil, fmt.Errorf("%w: lz4: %w", ErrDecompress, err)
		}
		return fit(dst, out[:n])
	}
	return nil, fmt.Errorf("%w: lz4: unknown block mode %#x", ErrDecompress, mode)
}

func (lz4Codec) Bound(n int) int {
	return binary.MaxVarintLen64 + 1 + lz4.CompressBlockBound(n)
}
