// Version reporting from the running binary.
//
// The C demo asked libpng for a compile-time version string and a runtime
// numeric version, treating 0 as proof the library was unusable. The Go
// equivalents come from the build info embedded in every module-built
// binary and from the runtime package: the toolchain recorded at build
// time, the toolchain answering at run time, and the module versions the
// binary actually carries.
package linkprobe

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"slices"
	"strconv"
	"strings"
)

// requiredModules are the dependencies every probe binary must carry. The
// version report flags any that the embedded build info does not list.
var requiredModules = []string{
	"github.com/andybalholm/brotli",
	"github.com/goccy/go-json",
	"github.com/golang/snappy",
	"github.com/klauspost/compress",
	"github.com/pierrec/lz4/v4",
	"github.com/sirupsen/logrus",
	"github.com/zeebo/xxh3",
	"golang.org/x/crypto",
	"lukechampine.com/blake3",
}

// Module identifies one dependency resolved into the binary.
type Module struct {
	Path    string `json:"path"`
	Version string `json:"version"`
}

// VersionReport collects every version fact the binary can state about
// itself at run time.
type VersionReport struct {
	Tool       string   `json:"tool"`              // Release version, see Version
	Commit     string   `json:"commit"`            // VCS revision, set at link time
	GoCompile  string   `json:"go_compile"`        // Toolchain recorded at build time
	GoRuntime  string   `json:"go_runtime"`        // Toolchain answering at run time
	GoNumeric  uint64   `json:"go_numeric"`        // GoRuntime reduced to a number
	ModulePath string   `json:"module_path"`       // Main module path
	Deps       []Module `json:"deps"`              // Modules resolved into the binary
	Missing    []string `json:"missing,omitempty"` // Required modules absent from Deps
}

// Versions reports the binary's own version, the build and runtime
// toolchains, and the module versions resolved into the binary. A binary
// without embedded build info, or a runtime version with no numeric form,
// is ErrVersionQuery.
func Versions() (*VersionReport, error) {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return nil, fmt.Errorf("%w: no build info embedded in binary", ErrVersionQuery)
	}

	runtimeVer := runtime.Version()
	numeric := goVersionNumber(runtimeVer)
	if numeric == 0 {
		return nil, fmt.Errorf("%w: runtime version %q has no numeric form", ErrVersionQuery, runtimeVer)
	}

	report := &VersionReport{
		Tool:       Version,
		Commit:     Commit,
		GoCompile:  info.GoVersion,
		GoRuntime:  runtimeVer,
		GoNumeric:  numeric,
		ModulePath: info.Main.Path,
	}
	for _, dep := range info.Deps {
		report.Deps = append(report.Deps, Module{Path: dep.Path, Version: dep.Version})
	}
	report.Missing = missingModules(report.Deps)

	return report, nil
}

// missingModules reports which required modules the dependency list lacks,
// sorted. Not every binary records one: test binaries embed build info
// without the module list, so an empty deps means "not recorded", not
// "nothing linked", and flags nothing.
func missingModules(deps []Module) []string {
	if len(deps) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(deps))
	for _, dep := range deps {
		seen[dep.Path] = true
	}
	var missing []string
	for _, path := range requiredModules {
		if !seen[path] {
			missing = append(missing, path)
		}
	}
	slices.Sort(missing)
	return missing
}

// compileVersion returns the toolchain version recorded in the binary at
// build time.
func compileVersion() (string, error) {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return "", fmt.Errorf("%w: no build info embedded in binary", ErrVersionQuery)
	}
	return info.GoVersion, nil
}

// runtimeNumber returns the running toolchain's numeric version, 0 on
// failure.
func runtimeNumber() uint64 {
	return goVersionNumber(runtime.Version())
}

// goVersionNumber reduces a Go toolchain version string to one number the
// way libpng packs png_access_version_number: major*10000 + minor*100 +
// patch, so "go1.25.3" becomes 12503 and "go1.25" becomes 12500. Returns 0
// for anything that does not parse (devel builds, release candidates),
// which callers treat as the failure sentinel.
func goVersionNumber(v string) uint64 {
	v = strings.TrimPrefix(v, "go")
	parts := strings.SplitN(v, ".", 3)
	if len(parts) < 2 {
		return 0
	}

	var nums [3]uint64
	for i, part := range parts {
		n, err := strconv.ParseUint(part, 10, 64)
		if err != nil {
			return 0
		}
		nums[i] = n
	}
	return nums[0]*10000 + nums[1]*100 + nums[2]
}
