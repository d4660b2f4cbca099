package cmd

import (
	"github.com/huangsam/cyclocsv/core"
	"github.com/huangsam/cyclocsv/internal/contract"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// NewFixtureCommand builds the fixturegen command.
func NewFixtureCommand() *cobra.Command {
	v := viper.New()
	cfg := &contract.FixtureConfig{}
	input := &contract.FixtureRawInput{}

	cmd := &cobra.Command{
		Use:   "fixturegen <num> <output_file>",
		Short: "Write random path,value,count CSV fixtures.",
		Long: `fixturegen writes <num> headerless CSV rows of the form
/path/to/file_<N>.txt,<value>,<count> with N in [1,1000], value in [0,40] and
count in [0,2000].`,
		Args:               usageArgs(cobra.ExactArgs(2)),
		SilenceErrors:      true,
		SilenceUsage:       true,
		DisableSuggestions: true,
		PreRunE: func(_ *cobra.Command, args []string) error {
			if err := readConfig(v, ".fixturegen", "FIXTUREGEN"); err != nil {
				return err
			}
			if err := v.Unmarshal(input); err != nil {
				return contract.NewUsageError("unable to unmarshal config: %w", err)
			}
			input.CountStr = args[0]
			input.OutputFile = args[1]

			// Validation happens before any file is created
			return contract.ProcessFixtureInput(cfg, input)
		},
		RunE: func(_ *cobra.Command, _ []string) error {
			return core.ExecuteFixtures(cfg)
		},
	}

	registerFixtureFlags(cmd, v)
	setVersion(cmd)
	cmd.SetFlagErrorFunc(flagUsageError)
	return cmd
}
