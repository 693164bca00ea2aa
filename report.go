// Report rendering.
//
// Outcomes and version reports render two ways: aligned text for people
// reading a terminal, JSON for scripts. The text layout keeps the phrasing
// of the original demo's printout where it overlaps.
package linkprobe

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	json "github.com/goccy/go-json"
)

// WriteOutcomes renders outcomes as an aligned text table.
func WriteOutcomes(w io.Writer, outcomes []Outcome) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "PROBE\tSTATUS\tDETAIL")
	for _, o := range outcomes {
		detail := o.Detail
		if o.Status != StatusOK {
			detail = o.Error
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", o.Probe, o.Status, detail)
	}
	return tw.Flush()
}

// WriteOutcomesJSON renders outcomes as an indented JSON array.
func WriteOutcomesJSON(w io.Writer, outcomes []Outcome) error {
	return writeJSON(w, outcomes)
}

// WriteVersions renders a version report as text: the tool's identity, the
// two toolchain versions, then one line per module.
func WriteVersions(w io.Writer, report *VersionReport) error {
	fmt.Fprintf(w, "linkprobe %s (commit %s)\n", report.Tool, report.Commit)
	fmt.Fprintf(w, "go version (compile time): %s\n", report.GoCompile)
	fmt.Fprintf(w, "go version (runtime check): %s (%d)\n", report.GoRuntime, report.GoNumeric)
	fmt.Fprintf(w, "main module: %s\n\n", report.ModulePath)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "MODULE\tVERSION")
	for _, dep := range report.Deps {
		fmt.Fprintf(tw, "%s\t%s\n", dep.Path, dep.Version)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	for _, path := range report.Missing {
		fmt.Fprintf(w, "missing: %s\n", path)
	}
	return nil
}

// WriteVersionsJSON renders a version report as indented JSON.
func WriteVersionsJSON(w io.Writer, report *VersionReport) error {
	return writeJSON(w, report)
}

// WriteRuns renders run log history as text, one line per recorded run.
func WriteRuns(w io.Writer, runs []RunRecord) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "TIME\tTOOL\tGO\tPROBES\tFAILED")
	for _, r := range runs {
		failed := 0
		for _, o := range r.Outcomes {
			if o.Status != StatusOK {
				failed++
			}
		}
		when := time.Unix(r.Timestamp, 0).UTC().Format(time.RFC3339)
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%d\n", when, r.Tool, r.GoVersion, len(r.Outcomes), failed)
	}
	return tw.Flush()
}

// WriteRunsJSON renders run log history as an indented JSON array.
func WriteRunsJSON(w io.Writer, runs []RunRecord) error {
	return writeJSON(w, runs)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
