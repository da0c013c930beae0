package config

// Build information reported by the version command
var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

// SetBuildFlags records the build information injected into the binary
func SetBuildFlags(version, commit, date string) {
	Version = version
	Commit = commit
	Date = date
}
