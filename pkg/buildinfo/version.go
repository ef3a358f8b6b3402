// Package buildinfo provides build-time version information.
//
// Variables are set via ldflags during build:
//
//	go build -ldflags "-X github.com/influencerdeck/influencerdeck/pkg/buildinfo.Version=v1.0.0 \
//	    -X github.com/influencerdeck/influencerdeck/pkg/buildinfo.Commit=$(git rev-parse HEAD) \
//	    -X github.com/influencerdeck/influencerdeck/pkg/buildinfo.Date=$(date -u +%Y-%m-%dT%H:%M:%SZ)" \
//	    ./cmd/influencerdeck
package buildinfo

import "fmt"

var (
	// Version is the semantic version (e.g., "v1.2.3").
	Version = "dev"

	// Commit is the git commit SHA.
	Commit = "none"

	// Date is the build timestamp.
	Date = "unknown"
)

// Template returns the version template string for cobra.
func Template() string {
	return fmt.Sprintf("{{.Name}} version %s\ncommit: %s\nbuilt: %s\n", Version, Commit, Date)
}

// KeyVals returns the build information as alternating keys and values,
// ready for a structured logger.
func KeyVals() []any {
	return []any{"version", Version, "commit", Commit, "built", Date}
}
