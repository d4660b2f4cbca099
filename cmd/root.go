package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/huangsam/cyclocsv/core"
	"github.com/huangsam/cyclocsv/internal/contract"
	"github.com/huangsam/cyclocsv/internal/engine"
	"github.com/huangsam/cyclocsv/internal/iocache"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// rootCtx is the root context for all operations.
var rootCtx = context.Background()

// NewReportCommand builds the cyclocsv command. Every call gets its own Viper
// instance so commands can be constructed repeatedly in tests.
func NewReportCommand() *cobra.Command {
	v := viper.New()

	// cfg will hold the validated, final configuration.
	cfg := &contract.Config{}

	// input holds the raw, unvalidated configuration from all sources (file, env, flags).
	input := &contract.ConfigRawInput{}

	var analyzer contract.Analyzer

	cmd := &cobra.Command{
		Use:   "cyclocsv <path>",
		Short: "Write per-function length and cyclomatic complexity as CSV.",
		Long: `cyclocsv runs a complexity analyzer over a file or directory and writes one
headerless CSV row per function: file,function,length,complexity,line.`,
		Args:               usageArgs(cobra.ExactArgs(1)),
		SilenceErrors:      true,
		SilenceUsage:       true,
		DisableSuggestions: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := setupReport(cmd, v, input, cfg, args); err != nil {
				return err
			}

			// The engine must be usable before any file is touched
			a, err := engine.New(cfg.Engine)
			if err != nil {
				return &contract.UsageError{Err: err}
			}
			if err := engine.CheckAvailable(a); err != nil {
				return err
			}
			analyzer = a
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := iocache.NewRunStore(cfg.AnalysisBackend, cfg.AnalysisDBConnect)
			if err != nil {
				contract.LogWarn("Run tracking disabled", err)
				store = nil
			}
			if store != nil {
				defer func() { _ = store.Close() }()
			}
			return core.ExecuteReport(cmd.Context(), cfg, analyzer, contract.NewLocalGitClient(), store, cmd.OutOrStdout())
		},
	}

	registerReportFlags(cmd, v)
	setVersion(cmd)
	cmd.SetFlagErrorFunc(flagUsageError)
	return cmd
}

// setupReport merges defaults, config file, env and flags, then validates them into cfg.
func setupReport(cmd *cobra.Command, v *viper.Viper, input *contract.ConfigRawInput, cfg *contract.Config, args []string) error {
	// 1. Read config file. This merges defaults, file, env, and flags.
	if err := readConfig(v, ".cyclocsv", "CYCLOCSV"); err != nil {
		return err
	}

	// 2. Unmarshal all resolved values from Viper into our raw input struct.
	if err := v.Unmarshal(input); err != nil {
		return contract.NewUsageError("unable to unmarshal config: %w", err)
	}

	// Repeatable flags keep each occurrence verbatim, commas included
	if cmd.Flags().Changed("language") {
		input.Language, _ = cmd.Flags().GetStringArray("language")
	}
	if cmd.Flags().Changed("exclude") {
		input.Exclude, _ = cmd.Flags().GetStringArray("exclude")
	}

	// 3. Handle positional arguments (which Viper doesn't do).
	input.TargetPathStr = args[0]

	// 4. Run all validation and complex parsing.
	if err := contract.ProcessAndValidate(cfg, input); err != nil {
		return err
	}
	if !cfg.UseColors {
		color.NoColor = true
	}
	return nil
}

// readConfig points v at the config file and environment, then reads the file if present.
func readConfig(v *viper.Viper, name, envPrefix string) error {
	// Check if a specific config file is provided
	if configFile := v.GetString("config"); configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName(name) // Name of config file (without extension)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME")
	}

	// Set environment variable prefix
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			// Config file was found but another error was produced
			return fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found, which is fine; we'll use defaults/env/flags.
	}
	return nil
}

// usageArgs converts positional argument failures into usage errors.
func usageArgs(validate cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := validate(cmd, args); err != nil {
			return &contract.UsageError{Err: err}
		}
		return nil
	}
}

// flagUsageError converts flag parsing failures into usage errors.
func flagUsageError(_ *cobra.Command, err error) error {
	return &contract.UsageError{Err: err}
}

// Run executes cmd with args and returns the process exit code:
// 0 on success, 2 for usage errors and 1 for everything else.
func Run(cmd *cobra.Command, args []string, stderr io.Writer) int {
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(rootCtx)
	if err == nil {
		return 0
	}

	var usageErr *contract.UsageError
	if errors.As(err, &usageErr) {
		_, _ = fmt.Fprintf(stderr, "Error: %v\n\n%s", err, cmd.UsageString())
		return 2
	}
	_, _ = fmt.Fprintf(stderr, "Error: %v\n", err)
	return 1
}
