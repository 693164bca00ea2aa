// Probe suite configuration and behaviour tests.
//
// Config controls the probe payload, buffer capacity, digest algorithm,
// payload limit, and codec subset. The defaults reproduce the demo
// conditions so a bare Suite proves the same things the demo does, across
// every linked library. These tests verify that defaults are applied when
// Config{} is passed, custom values override them, and that a failing
// probe is recorded without stopping the probes after it.
package linkprobe

import (
	"io"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
)

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

// TestSuiteDefaults verifies the zero-value Config is usable. If the
// payload default were missing, every codec probe would fail on
// ErrEmptyPayload and a bare NewSuite would be useless.
func TestSuiteDefaults(t *testing.T) {
	s := NewSuite(nil, Config{})

	if string(s.config.Payload) != DemoText {
		t.Errorf("Payload = %q, want demo text", s.config.Payload)
	}
	if s.config.DigestAlgorithm != AlgXXHash3 {
		t.Errorf("DigestAlgorithm = %d, want %d", s.config.DigestAlgorithm, AlgXXHash3)
	}
	if s.config.MaxPayloadSize != MaxPayloadSize {
		t.Errorf("MaxPayloadSize = %d, want %d", s.config.MaxPayloadSize, MaxPayloadSize)
	}
	if len(s.config.Codecs) != len(Names()) {
		t.Errorf("Codecs = %v, want all registered", s.config.Codecs)
	}
	if s.log == nil {
		t.Error("nil logger not replaced")
	}
}

func TestSuiteConfigCustom(t *testing.T) {
	s := NewSuite(quietLogger(), Config{
		Payload:         []byte("custom"),
		Capacity:        256,
		DigestAlgorithm: AlgBlake3,
		MaxPayloadSize:  1024,
		Codecs:          []string{"zstd"},
	})

	if string(s.config.Payload) != "custom" {
		t.Errorf("Payload = %q, want %q", s.config.Payload, "custom")
	}
	if s.config.Capacity != 256 {
		t.Errorf("Capacity = %d, want 256", s.config.Capacity)
	}
	if s.config.DigestAlgorithm != AlgBlake3 {
		t.Errorf("DigestAlgorithm = %d, want %d", s.config.DigestAlgorithm, AlgBlake3)
	}
	if s.config.MaxPayloadSize != 1024 {
		t.Errorf("MaxPayloadSize = %d, want 1024", s.config.MaxPayloadSize)
	}
	if len(s.config.Codecs) != 1 || s.config.Codecs[0] != "zstd" {
		t.Errorf("Codecs = %v, want [zstd]", s.config.Codecs)
	}
}

func TestSuiteRun(t *testing.T) {
	outcomes := NewSuite(quietLogger(), Config{}).Run()

	want := len(Names()) + len(digestAlgs) + 3 // json, png, versions
	if len(outcomes) != want {
		t.Fatalf("got %d outcomes, want %d", len(outcomes), want)
	}

	for _, o := range outcomes {
		if o.Status != StatusOK {
			t.Errorf("%s: status %q (%s)", o.Probe, o.Status, o.Error)
		}
		if o.Probe == "" {
			t.Error("outcome with empty probe name")
		}
	}
	if Failed(outcomes) {
		t.Error("Failed = true for a clean run")
	}
}

func TestSuiteProbeOrder(t *testing.T) {
	outcomes := NewSuite(quietLogger(), Config{}).Run()

	if outcomes[0].Probe != "codec/zlib" {
		t.Errorf("first probe = %q, want codec/zlib", outcomes[0].Probe)
	}
	n := len(Names())
	if outcomes[n].Probe != "digest/xxh3" {
		t.Errorf("probe[%d] = %q, want digest/xxh3", n, outcomes[n].Probe)
	}
	tail := outcomes[len(outcomes)-3:]
	for i, want := range []string{"json", "png", "versions"} {
		if tail[i].Probe != want {
			t.Errorf("tail probe[%d] = %q, want %q", i, tail[i].Probe, want)
		}
	}
}

// TestSuiteUnknownCodec verifies that one bad codec name fails its own
// probe and nothing else. The suite exists to survey damage, so a single
// failure must not abort the probes after it.
func TestSuiteUnknownCodec(t *testing.T) {
	outcomes := NewSuite(quietLogger(), Config{Codecs: []string{"zlib", "nope"}}).Run()

	if outcomes[0].Status != StatusOK {
		t.Errorf("codec/zlib: status %q (%s)", outcomes[0].Status, outcomes[0].Error)
	}
	if outcomes[1].Status != StatusFailed {
		t.Errorf("codec/nope: status %q, want failed", outcomes[1].Status)
	}
	if !strings.Contains(outcomes[1].Error, "unknown codec") {
		t.Errorf("codec/nope error = %q, want unknown codec", outcomes[1].Error)
	}

	if !Failed(outcomes) {
		t.Error("Failed = false with a failed probe")
	}
	for _, o := range outcomes[2:] {
		if o.Status != StatusOK {
			t.Errorf("%s: status %q after earlier failure, want ok", o.Probe, o.Status)
		}
	}
}

func TestSuiteCapacityTooSmall(t *testing.T) {
	outcomes := NewSuite(quietLogger(), Config{Capacity: 4}).Run()

	for _, o := range outcomes {
		codec := strings.HasPrefix(o.Probe, "codec/")
		if codec && o.Status != StatusFailed {
			t.Errorf("%s: status %q with capacity 4, want failed", o.Probe, o.Status)
		}
		if codec && !strings.Contains(o.Error, "capacity") {
			t.Errorf("%s: error = %q, want capacity violation", o.Probe, o.Error)
		}
		if !codec && o.Status != StatusOK {
			t.Errorf("%s: status %q, want ok", o.Probe, o.Status)
		}
	}
}

func TestSuitePayloadTooLarge(t *testing.T) {
	config := Config{
		Payload:        []byte("twelve bytes"),
		MaxPayloadSize: 4,
	}
	outcomes := NewSuite(quietLogger(), config).Run()

	for _, o := range outcomes {
		if strings.HasPrefix(o.Probe, "codec/") && o.Status != StatusFailed {
			t.Errorf("%s: status %q over the payload limit, want failed", o.Probe, o.Status)
		}
	}
}

func TestSuiteCustomPayload(t *testing.T) {
	payload := []byte(strings.Repeat("payload variation ", 64))
	outcomes := NewSuite(quietLogger(), Config{Payload: payload}).Run()

	for _, o := range outcomes {
		if o.Status != StatusOK {
			t.Errorf("%s: status %q (%s)", o.Probe, o.Status, o.Error)
		}
	}
}

func TestFailed(t *testing.T) {
	if Failed(nil) {
		t.Error("Failed(nil) = true")
	}
	if Failed([]Outcome{{Status: StatusOK}, {Status: StatusOK}}) {
		t.Error("Failed = true for all ok")
	}
	if !Failed([]Outcome{{Status: StatusOK}, {Status: StatusFailed}}) {
		t.Error("Failed = false with one failure")
	}
}
