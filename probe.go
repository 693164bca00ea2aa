// Probe suite.
//
// A Suite runs one probe per linked library and records an Outcome for
// each, so a single invocation clears or indicts the whole dependency
// graph. Probes are independent: a failure is recorded and the run
// continues, unlike the demo flow, which stops at the first failure.
package linkprobe

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	json "github.com/goccy/go-json"
	"github.com/sirupsen/logrus"
)

// Outcome status values.
const (
	StatusOK     = "ok"
	StatusFailed = "failed"
)

// Config holds suite configuration options.
type Config struct {
	Payload         []byte   // Probe payload (default DemoText)
	Capacity        int      // Capacity for both buffers, 0 sizes per codec
	DigestAlgorithm int      // 1=xxHash3, 2=FNV1a, 3=Blake2b, 4=Blake3
	MaxPayloadSize  int      // Reject larger payloads (default 16MB)
	Codecs          []string // Codec subset to probe (default all)
}

// Outcome reports a single probe.
type Outcome struct {
	Probe    string        `json:"probe"`
	Status   string        `json:"status"`
	Detail   string        `json:"detail,omitempty"`
	Error    string        `json:"error,omitempty"`
	Duration time.Duration `json:"duration_ns"`
}

// Suite runs the full probe set over one configuration.
type Suite struct {
	log    logrus.FieldLogger
	config Config
}

// NewSuite creates a probe suite. A nil log uses the logrus standard
// logger; diagnostics go through it while contract output stays with the
// caller.
func NewSuite(log logrus.FieldLogger, config Config) *Suite {
	if log == nil {
		log = logrus.StandardLogger()
	}

	// Default config values
	if len(config.Payload) == 0 {
		config.Payload = []byte(DemoText)
	}
	if config.DigestAlgorithm == 0 {
		config.DigestAlgorithm = AlgXXHash3
	}
	if config.MaxPayloadSize == 0 {
		config.MaxPayloadSize = MaxPayloadSize
	}
	if len(config.Codecs) == 0 {
		config.Codecs = Names()
	}

	return &Suite{
		log:    log.WithField("component", "suite"),
		config: config,
	}
}

// Run executes every probe and returns their outcomes in a fixed order:
// codecs, digests, json, png, versions.
func (s *Suite) Run() []Outcome {
	var outcomes []Outcome
	for _, name := range s.config.Codecs {
		outcomes = append(outcomes, s.runCodec(name))
	}
	for _, d := range digestAlgs {
		outcomes = append(outcomes, s.runDigest(d.alg, d.name))
	}
	outcomes = append(outcomes, s.runJSON())
	outcomes = append(outcomes, s.runImage())
	outcomes = append(outcomes, s.runVersions())
	return outcomes
}

// Failed reports whether any outcome in the set failed.
func Failed(outcomes []Outcome) bool {
	for _, o := range outcomes {
		if o.Status != StatusOK {
			return true
		}
	}
	return false
}

// done finalises an outcome, stamping status and duration and logging the
// result.
func (s *Suite) done(out Outcome, start time.Time, detail string, err error) Outcome {
	out.Duration = time.Since(start)
	out.Detail = detail
	if err != nil {
		out.Status = StatusFailed
		out.Error = err.Error()
		s.log.WithField("probe", out.Probe).WithError(err).Warn("probe failed")
		return out
	}
	out.Status = StatusOK
	s.log.WithField("probe", out.Probe).Debug(detail)
	return out
}

func (s *Suite) runCodec(name string) Outcome {
	start := time.Now()
	out := Outcome{Probe: "codec/" + name}

	c, err := Lookup(name)
	if err != nil {
		return s.done(out, start, "", err)
	}

	res, err := RoundTrip(c, s.config.Payload, &RoundTripOptions{
		Capacity:        s.config.Capacity,
		DigestAlgorithm: s.config.DigestAlgorithm,
		MaxPayloadSize:  s.config.MaxPayloadSize,
	})
	if err != nil {
		return s.done(out, start, "", err)
	}

	detail := fmt.Sprintf("%d -> %d bytes (ratio %.2f), digest %s",
		res.OriginalLen, res.CompressedLen, res.Ratio, res.Digest)
	return s.done(out, start, detail, nil)
}

func (s *Suite) runDigest(alg int, name string) Outcome {
	start := time.Now()
	out := Outcome{Probe: "digest/" + name}

	sum := digest(s.config.Payload, alg)
	if sum == "" {
		return s.done(out, start, "", fmt.Errorf("%w: algorithm %d", ErrUnknownDigest, alg))
	}
	if len(sum) != 16 {
		return s.done(out, start, "", fmt.Errorf("%w: %s digest %q is not 16 hex characters", ErrMismatch, name, sum))
	}
	if again := digest(s.config.Payload, alg); again != sum {
		return s.done(out, start, "", fmt.Errorf("%w: %s digest unstable: %s then %s", ErrMismatch, name, sum, again))
	}
	return s.done(out, start, "digest "+sum, nil)
}

func (s *Suite) runJSON() Outcome {
	start := time.Now()
	out := Outcome{Probe: "json"}

	type envelope struct {
		Payload []byte `json:"payload"`
		Digest  string `json:"digest"`
		Length  int    `json:"length"`
	}
	in := envelope{
		Payload: s.config.Payload,
		Digest:  digest(s.config.Payload, s.config.DigestAlgorithm),
		Length:  len(s.config.Payload),
	}

	buf, err := json.Marshal(in)
	if err != nil {
		return s.done(out, start, "", fmt.Errorf("%w: json: %w", ErrCompress, err))
	}

	var back envelope
	if err := json.Unmarshal(buf, &back); err != nil {
		return s.done(out, start, "", fmt.Errorf("%w: json: %w", ErrDecompress, err))
	}
	if !bytes.Equal(back.Payload, in.Payload) || back.Digest != in.Digest || back.Length != in.Length {
		return s.done(out, start, "", fmt.Errorf("%w: json", ErrMismatch))
	}
	return s.done(out, start, fmt.Sprintf("%d byte document", len(buf)), nil)
}

func (s *Suite) runImage() Outcome {
	start := time.Now()
	out := Outcome{Probe: "png"}

	res, err := ImageRoundTrip()
	if err != nil {
		return s.done(out, start, "", err)
	}
	return s.done(out, start, fmt.Sprintf("%dx%d, %d bytes encoded", res.Width, res.Height, res.EncodedLen), nil)
}

func (s *Suite) runVersions() Outcome {
	start := time.Now()
	out := Outcome{Probe: "versions"}

	report, err := Versions()
	if err != nil {
		return s.done(out, start, "", err)
	}
	if len(report.Missing) > 0 {
		err := fmt.Errorf("%w: modules missing from build info: %s", ErrVersionQuery, strings.Join(report.Missing, ", "))
		return s.done(out, start, "", err)
	}

	detail := fmt.Sprintf("built %s, runtime %s (%d), %d modules",
		report.GoCompile, report.GoRuntime, report.GoNumeric, len(report.Deps))
	return s.done(out, start, detail, nil)
}
