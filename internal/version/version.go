// Package version provides build and version information.
package version

// Version is the current application version.
const Version = "0.3.0"

// Milestones:
// 0.3.0 - Grid coverage scoring, viper config layer, JSON snapshot export
// 0.2.0 - Path table parser, densification, footprint polygon assembly
// 0.1.0 - Initial release: Besselian totality engine, point query CLI
