package cmd

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

// All linker flags will be set by goreleaser infra at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// setVersion enables --version with build details for diagnostic purposes.
func setVersion(cmd *cobra.Command) {
	cmd.Version = version
	cmd.SetVersionTemplate(fmt.Sprintf(
		"{{.Name}}\n  Version: %s\n  Commit:  %s\n  Built:   %s\n  Runtime: %s\n",
		version, commit, date, runtime.Version(),
	))
}
