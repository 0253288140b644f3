package cli

import (
	"fmt"
	"io"
	"os"
	"runtime"
)

// For proper builds, these variables should be set via ldflags.
var version = "development"
var hash = "unknown"

// VersionCommand is the `version` command; it takes no flags.
type VersionCommand struct {
}

// Execute prints the version and exits.
// (This gets called by `go-flags` when `version` is provided on the command
// line)
func (command *VersionCommand) Execute(args []string) error {
	writeVersion(os.Stdout)
	os.Exit(0)
	return nil
}

func writeVersion(out io.Writer) {
	fmt.Fprintf(out, "edkeys %s (%s, %s %s/%s)\n", version, hash, runtime.Version(), runtime.GOOS, runtime.GOARCH)
}
