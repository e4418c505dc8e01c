package api

// Build metadata reported by --version and in the User-Agent header.
// Release builds set these with -ldflags "-X github.com/ensigniasec/reactions/internal/api.BuildVersion=...".
//
//nolint:gochecknoglobals // these are set at build time
var (
	BuildVersion = "dev"
	BuildCommit  = "none"
	BuildDate    = "unknown"
)
