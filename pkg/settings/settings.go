// Package settings provides build metadata and per-run configuration
// shared by the yedit CLI and its packages.
package settings

// CliBinaryName is the canonical binary name for this tool.
const CliBinaryName = "yedit"

// VersionInformation is populated at build time via ldflags and holds the
// commit hash, semantic version, and build timestamp of the running binary.
var VersionInformation = VersionInfo{
	Commit:       "unknown",
	BuildVersion: "v0.0.0-nightly",
	BuildTime:    "unknown",
}

// VersionInfo holds metadata about the build, including the commit hash,
// build version, and build timestamp.
type VersionInfo struct {
	Commit       string
	BuildVersion string
	BuildTime    string
}

// Run holds the configuration for a single invocation: logging level,
// the file to open (empty means start in the picker), and display flags.
type Run struct {
	MinLogLevel int8
	FilePath    string
	NoColor     bool
}

// NewCliParams returns a Run with CLI defaults.
func NewCliParams() *Run {
	return &Run{
		MinLogLevel: 0,
		NoColor:     false,
	}
}
