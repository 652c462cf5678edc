package version

// Version is set at build time with
// -ldflags "-X github.com/neox5/fixedmetrics/internal/version.Version=v1.2.3".
var Version = "dev"

// String returns the build version.
func String() string {
	return Version
}
