// Package build carries version information stamped in at link time:
//
//	go build -ldflags "-X github.com/storacha/rangestream/pkg/build.Version=v1.2.3"
package build

var (
	Version = "v0.0.0-dev"
	Commit  = "unknown"
	Date    = "unknown"
	BuiltBy = "unknown"
)

