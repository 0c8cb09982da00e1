// Package version exposes the pxbridge build version.
package version

// Version is set at build time via ldflags:
//
//	go build -ldflags "-X github.com/pxbridge/pxbridge/pkg/version.Version=1.2.3"
var Version = "dev"

// GetVersion returns the current build version of pxbridge.
func GetVersion() string {
	return Version
}
