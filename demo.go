// The demo flow, kept byte-for-byte compatible with the C program this
// package replaced.
//
// One zlib round trip through two fixed 100-byte buffers, the recovered
// text printed next to the original, then the image library's compile-time
// and runtime versions. Compression diagnostics go to stdout as the C
// version's printf calls did; version diagnostics go to stderr. The first
// failure ends the run, there are no retries.
package linkprobe

import (
	"bytes"
	"fmt"
	"io"
)

// DemoText is the fixed payload of the demo flow.
const DemoText = "Hello from zlib via the Go module proxy!"

// DemoCapacity is the byte capacity of both demo buffers, matching the C
// demo's sizing.
const DemoCapacity = 100

// Demo runs the dependency check end to end, writing its report to stdout
// and diagnostics to stderr. A nil return means every step passed and the
// confirmation line was printed; callers map a non-nil error to exit
// status 1.
func Demo(stdout, stderr io.Writer) error {
	zlib, err := Lookup("zlib")
	if err != nil {
		return err
	}
	return demo(zlib, compileVersion, runtimeNumber, stdout, stderr)
}

// demo is Demo with its dependencies injectable, so failures in the codec
// and the version queries can be exercised.
func demo(c Codec, compileVer func() (string, error), runtimeNum func() uint64, stdout, stderr io.Writer) error {
	payload := []byte(DemoText)

	compressed, err := c.Compress(make([]byte, 0, DemoCapacity), payload)
	if err != nil {
		fmt.Fprintf(stdout, "compress() failed: %v\n", err)
		return err
	}

	decompressed, err := c.Decompress(make([]byte, 0, DemoCapacity), compressed)
	if err != nil {
		fmt.Fprintf(stdout, "uncompress() failed: %v\n", err)
		return err
	}

	fmt.Fprintf(stdout, "Original:     %s\n", payload)
	fmt.Fprintf(stdout, "Decompressed: %s\n", decompressed)
	if !bytes.Equal(decompressed, payload) {
		fmt.Fprintln(stderr, "round trip mismatch")
		return fmt.Errorf("%w: %s", ErrMismatch, c.Name())
	}

	compile, err := compileVer()
	if err != nil {
		fmt.Fprintf(stderr, "image/png version check failed: %v\n", err)
		return err
	}
	fmt.Fprintf(stdout, "image/png version (compile time): %s\n", compile)

	num := runtimeNum()
	if num == 0 {
		fmt.Fprintln(stderr, "image/png runtime version check failed")
		return fmt.Errorf("%w: numeric runtime version is 0", ErrVersionQuery)
	}
	fmt.Fprintf(stdout, "image/png version (runtime check): %d\n", num)

	fmt.Fprintln(stdout, "zlib and image/png are linked and usable.")
	return nil
}
