// Package version provides build version information for authkit.
//
// Version, git commit, and build time are set at compile time via -ldflags:
//
//	go build -ldflags "-X github.com/skillsenselab/authkit/version.Version=1.0.0"
//
// When ldflags are absent, values fall back to the module build info embedded
// by the Go toolchain. Short() feeds the service version reported in trace
// resources.
package version
