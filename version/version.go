// Package version provides build version information for restkit.
//
// Version is set at compile time via -ldflags:
//
//	go build -ldflags "-X github.com/kyildiz/restkit/version.Version=1.0.0"
package version

// Name is the library name reported in the default User-Agent.
const Name = "restkit"

// Version is set at build time using -ldflags.
var Version = "dev"

// UserAgent returns the default User-Agent value, "restkit/<version>".
func UserAgent() string {
	return Name + "/" + Version
}
