// Stream codecs: zlib, flate, gzip, brotli.
//
// These wrap writer/reader implementations and buffer output in memory
// before the capacity check. Decompression reads at most one byte past the
// destination's capacity, so an oversized stream stops early instead of
// being decoded in full.
package linkprobe

import (
	"bytes"
	"fmt"
	"io"

	"github.com/andybalholm/brotli"
	"github.com/klauspost/compress/flate"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zlib"
)

// readCapped drains r, stopping one byte past dst's capacity; fit then
// reports the violation as ErrShortBuffer. A nil dst reads the whole
// stream.
func readCapped(r io.Reader, dst []byte) ([]byte, error) {
	if dst == nil {
		return io.ReadAll(r)
	}
	return io.ReadAll(io.LimitReader(r, int64(cap(dst))+1))
}

type zlibCodec struct{}

func (zlibCodec) Name() string { return "zlib" }

func (zlibCodec) Compress(dst, src []byte) ([]byte, error) {
	var buf bytes.Buffer
	zw := zlib.NewWriter(&buf)
	if _, err := zw.Write(src); err != nil {
		return nil, fmt.Errorf("%w: zlib: %w", ErrCompress, err)
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("%w: zlib: %w", ErrCompress, err)
	}
	return fit(dst, buf.Bytes())
}

func (zlibCodec) Decompress(dst, src []byte) ([]byte, error) {
	zr, err := zlib.NewReader(bytes.NewReader(src))
	if err != nil {
		return nil, fmt.Errorf("%w: zlib: %w", ErrDecompress, err)
	}
	defer zr.Close()

	out, err := readCapped(zr, dst)
	if err != nil {
		return nil, fmt.Errorf("%w: zlib: %w", ErrDecompress, err)
	}
	return fit(dst, out)
}

func (zlibCodec) Bound(n int) int { return compressBound(n) }

type flateCodec struct{}

func (flateCodec) Name() string { return "flate" }

func (flateCodec) Compress(dst, src []byte) ([]byte, error) {
	var buf bytes.Buffer
	fw, err := flate.NewWriter(&buf, flate.DefaultCompression)
	if err != nil {
		return nil, fmt.Errorf("%w: flate: %w", ErrCompress, err)
	}
	if _, err := fw.Write(src); err != nil {
		return nil, fmt.Errorf("%w: flate: %w", ErrCompress, err)
	}
	if err := fw.Close(); err != nil {
		return nil, fmt.Errorf("%w: flate: %w", ErrCompress, err)
	}
	return fit(dst, buf.Bytes())
}

func (flateCodec) Decompress(dst, src []byte) ([]byte, error) {
	fr := flate.NewReader(bytes.NewReader(src))
	defer fr.Close()

	out, err := readCapped(fr, dst)
	if err != nil {
		return nil, fmt.Errorf("%w: flate: %w", ErrDecompress, err)
	}
	return fit(dst, out)
}

func (flateCodec) Bound(n int) int { return compressBound(n) }

type gzipCodec struct{}

func (gzipCodec) Name() string { return "gzip" }

func (gzipCodec) Compress(dst, src []byte) ([]byte, error) {
	var buf bytes.Buffer
	gw := gzip.NewWriter(&buf)
	if _, err := gw.Write(src); err != nil {
		return nil, fmt.Errorf("%w: gzip: %w", ErrCompress, err)
	}
	if err := gw.Close(); err != nil {
		return nil, fmt.Errorf("%w: gzip: %w", ErrCompress, err)
	}
	return fit(dst, buf.Bytes())
}

func (gzipCodec) Decompress(dst, src []byte) ([]byte, error) {
	gr, err := gzip.NewReader(bytes.NewReader(src))
	if err != nil {
		return nil, fmt.Errorf("%w: gzip: %w", ErrDecompress, err)
	}
	defer gr.Close()

	out, err := readCapped(gr, dst)
	if err != nil {
		return nil, fmt.Errorf("%w: gzip: %w", ErrDecompress, err)
	}
	return fit(dst, out)
}

func (gzipCodec) Bound(n int) int { return compressBound(n) }

type brotliCodec struct{}

func (brotliCodec) Name() string { return "brotli" }

func (brotliCodec) Compress(dst, src []byte) ([]byte, error) {
	var buf bytes.Buffer
	bw := brotli.NewWriter(&buf)
	if _, err := bw.Write(src); err != nil {
		return nil, fmt.Errorf("%w: brotli: %w", ErrCompress, err)
	}
	if err := bw.Close(); err != nil {
		return nil, fmt.Errorf("%w: brotli: %w", ErrCompress, err)
	}
	return fit(dst, buf.Bytes())
}

func (brotliCodec) Decompress(dst, src []byte) ([]byte, error) {
	out, err := readCapped(brotli.NewReader(bytes.NewReader(src)), dst)
	if err != nil {
		return nil, fmt.Errorf("%w: brotli: %w", ErrDecompress, err)
	}
	return fit(dst, out)
}

func (brotliCodec) Bound(n int) int { return compressBound(n) }
