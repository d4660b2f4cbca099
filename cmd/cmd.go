// Package cmd defines the command-line interfaces for cyclocsv.
package cmd

import (
	"github.com/huangsam/cyclocsv/internal/contract"
	"github.com/huangsam/cyclocsv/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// registerReportFlags declares the cyclocsv flags and binds them to v.
func registerReportFlags(cmd *cobra.Command, v *viper.Viper) {
	flags := cmd.Flags()
	flags.StringArrayP("language", "l", nil, "Language to analyze (repeatable); all supported languages when omitted")
	flags.IntP("threads", "t", schema.DefaultThreads, "Number of analyzer threads")
	flags.BoolP("modified", "m", false, "Only analyze files with uncommitted changes")
	flags.String("output", schema.DefaultOutputPath, "Path of the output file")
	flags.StringArray("exclude", nil, "Glob pattern of files to skip (repeatable)")
	flags.Bool("verbose", false, "Print status lines and an optional summary table")
	flags.StringP("engine", "g", string(schema.LizardEngine), "Complexity engine: lizard or gocyclo or gocognit")
	flags.String("format", string(schema.CSVOut), "Output format: csv or json or parquet")
	flags.Int("top", 0, "With --verbose, show the N most complex functions")
	flags.Int("width", 0, "Terminal width override (0 = auto-detect)")
	flags.String("color", "yes", "Enable colored labels in output (yes/no/true/false/1/0)")
	flags.String("analysis-backend", "", "Run tracking backend: sqlite or mysql or postgresql or none")
	flags.String("analysis-db-connect", "", "Database connection string for run tracking")
	flags.String("config", "", "Path to config file")

	if err := v.BindPFlags(flags); err != nil {
		contract.LogFatal("Error binding report flags", err)
	}
}

// registerFixtureFlags declares the fixturegen flags and binds them to v.
func registerFixtureFlags(cmd *cobra.Command, v *viper.Viper) {
	flags := cmd.Flags()
	flags.String("seed", "", "Unsigned integer seed for reproducible output")
	flags.String("format", string(schema.CSVOut), "Output format: csv or parquet")
	flags.String("config", "", "Path to config file")

	if err := v.BindPFlags(flags); err != nil {
		contract.LogFatal("Error binding fixture flags", err)
	}
}
