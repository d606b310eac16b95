// Package version reports the build of the running prodcon binary.
//
// Version, commit, branch and build time can be set via -ldflags:
//
//	go build -ldflags "-X github.com/kbukum/prodcon/version.Version=1.0.0" ./cmd/prodcon
//
// Unset values fall back to the VCS stamp recorded by the Go toolchain.
package version
