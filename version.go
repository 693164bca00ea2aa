// Build identity, overridable at link time.
package linkprobe

import "fmt"

// Version is the linkprobe release version.
const Version = "0.1.0"

// Commit is the VCS revision the binary was built from, injected with
//
//	-ldflags "-X github.com/securapoint/linkprobe.Commit=$(git rev-parse --short HEAD)"
var Commit = "unknown"

// VersionInfo returns a human-readable one-line build identity.
func VersionInfo() string {
	return fmt.Sprintf("linkprobe %s (commit %s)", Version, Commit)
}
