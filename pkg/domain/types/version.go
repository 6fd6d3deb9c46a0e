package types

// Version is the version of releasecheck. It is overwritten by -ldflags in release builds.
var Version = "dev"

// UserAgent returns the User-Agent header value sent to the GitHub API
func UserAgent() string {
	return "releasecheck/" + Version
}
