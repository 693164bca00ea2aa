// Command linkprobe checks that the binary's dependencies are linked and
// usable. With no arguments it runs the classic demo flow; subcommands run
// the full probe suite or print the version report.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/securapoint/linkprobe"
	"github.com/sirupsen/logrus"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	if len(args) == 0 {
		return runDemo()
	}

	switch args[0] {
	case "demo":
		return runDemo()
	case "probe":
		return runProbe(args[1:])
	case "history":
		return runHistory(args[1:])
	case "versions":
		return runVersions(args[1:])
	case "version":
		fmt.Println(linkprobe.VersionInfo())
		return 0
	case "help", "-h", "--help":
		printUsage()
		return 0
	default:
		fmt.Fprintln(os.Stderr, "unknown command:", args[0])
		printUsage()
		return 1
	}
}

// printUsage prints the command-line usage information
func printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  linkprobe                 run the demo check (default)")
	fmt.Println("  linkprobe demo            run the demo check")
	fmt.Println("  linkprobe probe [flags]   run every probe")
	fmt.Println("                            -json, -codec name, -log file, -q, -v")
	fmt.Println("  linkprobe history -log file [-json]")
	fmt.Println("                            print recorded runs")
	fmt.Println("  linkprobe versions [-json]")
	fmt.Println("                            print the version report")
	fmt.Println("  linkprobe version         print the build identity")
}

// runDemo maps the demo result to the process exit status: 0 when the
// confirmation line was printed, 1 on any failure.
func runDemo() int {
	if err := linkprobe.Demo(os.Stdout, os.Stderr); err != nil {
		return 1
	}
	return 0
}

func runProbe(args []string) int {
	fs := flag.NewFlagSet("probe", flag.ContinueOnError)
	jsonOut := fs.Bool("json", false, "emit outcomes as JSON")
	codec := fs.String("codec", "", "probe a single codec")
	logFile := fs.String("log", "", "append this run to a run log file")
	quiet := fs.Bool("q", false, "log errors only")
	verbose := fs.Bool("v", false, "log every probe, not only failures")
	if err := fs.Parse(args); err != nil {
		return 1
	}

	log := logrus.New()
	log.SetOutput(os.Stderr)
	switch {
	case *quiet:
		log.SetLevel(logrus.ErrorLevel)
	case *verbose:
		log.SetLevel(logrus.DebugLevel)
	default:
		log.SetLevel(logrus.WarnLevel)
	}

	var config linkprobe.Config
	if *codec != "" {
		config.Codecs = []string{*codec}
	}

	outcomes := linkprobe.NewSuite(log, config).Run()

	if *logFile != "" {
		if err := record(*logFile, outcomes); err != nil {
			fmt.Fprintln(os.Stderr, "Error:", err)
			return 1
		}
	}

	var err error
	if *jsonOut {
		err = linkprobe.WriteOutcomesJSON(os.Stdout, outcomes)
	} else {
		err = linkprobe.WriteOutcomes(os.Stdout, outcomes)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return 1
	}

	if linkprobe.Failed(outcomes) {
		return 1
	}
	return 0
}

// record appends one run to the log file, creating it on first use.
func record(path string, outcomes []linkprobe.Outcome) error {
	rl, err := linkprobe.OpenRunLog(path)
	if err != nil {
		return err
	}
	defer rl.Close()
	return rl.Append(outcomes)
}

func runHistory(args []string) int {
	fs := flag.NewFlagSet("history", flag.ContinueOnError)
	jsonOut := fs.Bool("json", false, "emit recorded runs as JSON")
	logFile := fs.String("log", "", "run log file to read")
	if err := fs.Parse(args); err != nil {
		return 1
	}

	if *logFile == "" {
		fmt.Fprintln(os.Stderr, "Error: history requires -log file")
		return 1
	}

	rl, err := linkprobe.OpenRunLog(*logFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return 1
	}
	defer rl.Close()

	runs, err := rl.Runs()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return 1
	}

	if *jsonOut {
		err = linkprobe.WriteRunsJSON(os.Stdout, runs)
	} else {
		err = linkprobe.WriteRuns(os.Stdout, runs)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return 1
	}
	return 0
}

func runVersions(args []string) int {
	fs := flag.NewFlagSet("versions", flag.ContinueOnError)
	jsonOut := fs.Bool("json", false, "emit the report as JSON")
	if err := fs.Parse(args); err != nil {
		return 1
	}

	report, err := linkprobe.Versions()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return 1
	}

	if *jsonOut {
		err = linkprobe.WriteVersionsJSON(os.Stdout, report)
	} else {
		err = linkprobe.WriteVersions(os.Stdout, report)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return 1
	}
	return 0
}
