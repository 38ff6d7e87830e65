package weave

// release is the version of the last tagged release, with a suffix for
// untagged builds.
const release = "v0.1.0-dev"

// GitCommit is set at build time with
//
//	-ldflags "-X github.com/iov-one/weave-escrow.GitCommit=<hash>"
var GitCommit = ""

// Version returns the release and, if known, the commit it was built from.
func Version() string {
	if GitCommit == "" {
		return release
	}
	return release + " " + GitCommit
}
