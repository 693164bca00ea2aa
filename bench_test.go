package linkprobe

import (
	"bytes"
	"io"
	"testing"

	"github.com/sirupsen/logrus"
)

func benchPayload() []byte {
	return bytes.Repeat([]byte("# Heading\n\nSome markdown content.\n\n"), 30) // ~1KB
}

func benchCompress(b *testing.B, c Codec) {
	b.Helper()
	data := benchPayload()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := c.Compress(nil, data); err != nil {
			b.Fatal(err)
		}
	}
}

func benchDecompress(b *testing.B, c Codec) {
	b.Helper()
	data := benchPayload()
	compressed, err := c.Compress(nil, data)
	if err != nil {
		b.Fatal(err)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := c.Decompress(nil, compressed); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkCompressZlib(b *testing.B)   { benchCompress(b, zlibCodec{}) }
func BenchmarkCompressFlate(b *testing.B)  { benchCompress(b, flateCodec{}) }
func BenchmarkCompressGzip(b *testing.B)   { benchCompress(b, gzipCodec{}) }
func BenchmarkCompressZstd(b *testing.B)   { benchCompress(b, zstdCodec{}) }
func BenchmarkCompressS2(b *testing.B)     { benchCompress(b, s2Codec{}) }
func BenchmarkCompressSnappy(b *testing.B) { benchCompress(b, snappyCodec{}) }
func BenchmarkCompressLZ4(b *testing.B)    { benchCompress(b, lz4Codec{}) }
func BenchmarkCompressBrotli(b *testing.B) { benchCompress(b, brotliCodec{}) }

func BenchmarkDecompressZlib(b *testing.B) { benchDecompress(b, zlibCodec{}) }
func BenchmarkDecompressZstd(b *testing.B) { benchDecompress(b, zstdCodec{}) }
func BenchmarkDecompressS2(b *testing.B)   { benchDecompress(b, s2Codec{}) }
func BenchmarkDecompressLZ4(b *testing.B)  { benchDecompress(b, lz4Codec{}) }

func BenchmarkDigestXXHash3(b *testing.B) {
	data := benchPayload()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		digest(data, AlgXXHash3)
	}
}

func BenchmarkDigestFNV1a(b *testing.B) {
	data := benchPayload()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		digest(data, AlgFNV1a)
	}
}

func BenchmarkDigestBlake2b(b *testing.B) {
	data := benchPayload()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		digest(data, AlgBlake2b)
	}
}

func BenchmarkDigestBlake3(b *testing.B) {
	data := benchPayload()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		digest(data, AlgBlake3)
	}
}

func BenchmarkRoundTripZlib(b *testing.B) {
	zlib, _ := Lookup("zlib")
	data := benchPayload()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := RoundTrip(zlib, data, nil); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkRoundTripZstd(b *testing.B) {
	zstd, _ := Lookup("zstd")
	data := benchPayload()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := RoundTrip(zstd, data, nil); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkGoVersionNumber(b *testing.B) {
	for i := 0; i < b.N; i++ {
		goVersionNumber("go1.25.3")
	}
}

func BenchmarkImageRoundTrip(b *testing.B) {
	for i := 0; i < b.N; i++ {
		if _, err := ImageRoundTrip(); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkSuiteRun(b *testing.B) {
	log := logrus.New()
	log.SetOutput(io.Discard)
	s := NewSuite(log, Config{})

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		s.Run()
	}
}
