// Package version exposes build identity for logs and telemetry.
package version

const (
	// Name is the service identifier reported to telemetry backends.
	Name = "listd"
	// Version is overridden at build time via -ldflags.
	Version = "dev"
)
