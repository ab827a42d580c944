// Package version holds the application version, set at build time via ldflags.
package version

// Version is the application version. Overridden at build time with:
//
//	go build -ldflags "-X stock-briefing/internal/version.Version=v1.2.3"
var Version = "dev"
