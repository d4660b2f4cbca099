package cmd

import (
	"github.com/huangsam/cyclocsv/internal/contract"
	"github.com/huangsam/cyclocsv/internal/mcp"
	"github.com/spf13/cobra"
)

// NewMCPCommand builds the cyclocsv-mcp command.
func NewMCPCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:                "cyclocsv-mcp",
		Short:              "Start the cyclocsv MCP server",
		Long:               `Launch an MCP server on stdio that lets AI agents run complexity reports and generate fixtures via standard tools.`,
		Args:               usageArgs(cobra.NoArgs),
		SilenceErrors:      true,
		SilenceUsage:       true,
		DisableSuggestions: true,
		RunE: func(_ *cobra.Command, _ []string) error {
			return mcp.StartMCPServer(version, contract.NewLocalGitClient())
		},
	}
	setVersion(cmd)
	cmd.SetFlagErrorFunc(flagUsageError)
	return cmd
}
