package linkprobe

import (
	"strings"
	"testing"
)

func TestDigestLength(t *testing.T) {
	data := []byte("test content for digesting")

	for _, d := range digestAlgs {
		t.Run(d.name, func(t *testing.T) {
			sum := digest(data, d.alg)
			if len(sum) != 16 {
				t.Errorf("digest = %q, want 16 characters", sum)
			}
			if strings.Trim(sum, "0123456789abcdef") != "" {
				t.Errorf("digest = %q, want lowercase hex", sum)
			}
		})
	}
}

func TestDigestStable(t *testing.T) {
	data := []byte(DemoText)

	for _, d := range digestAlgs {
		first := digest(data, d.alg)
		second := digest(data, d.alg)
		if first != second {
			t.Errorf("%s: digest unstable: %q then %q", d.name, first, second)
		}
	}
}

func TestDigestDistinctInputs(t *testing.T) {
	for _, d := range digestAlgs {
		a := digest([]byte("input a"), d.alg)
		b := digest([]byte("input b"), d.alg)
		if a == b {
			t.Errorf("%s: distinct inputs collided on %q", d.name, a)
		}
	}
}

// TestDigestDistinctAlgorithms verifies the algorithms are actually
// different functions. If two constants were wired to the same
// implementation, reports would claim a coverage the binary does not have.
func TestDigestDistinctAlgorithms(t *testing.T) {
	data := []byte(DemoText)

	seen := make(map[string]string)
	for _, d := range digestAlgs {
		sum := digest(data, d.alg)
		if prev, ok := seen[sum]; ok {
			t.Errorf("%s and %s produced the same digest %q", d.name, prev, sum)
		}
		seen[sum] = d.name
	}
}

func TestDigestUnknownAlgorithm(t *testing.T) {
	if sum := digest([]byte("data"), 99); sum != "" {
		t.Errorf("digest(99) = %q, want empty", sum)
	}
}

func TestDigestName(t *testing.T) {
	tests := []struct {
		alg  int
		want string
	}{
		{AlgXXHash3, "xxh3"},
		{AlgFNV1a, "fnv1a"},
		{AlgBlake2b, "blake2b"},
		{AlgBlake3, "blake3"},
		{99, ""},
	}

	for _, tt := range tests {
		if got := digestName(tt.alg); got != tt.want {
			t.Errorf("digestName(%d) = %q, want %q", tt.alg, got, tt.want)
		}
	}
}
