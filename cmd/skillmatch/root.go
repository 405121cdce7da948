package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/skillmatch/internal/config"
	"github.com/jonathan/skillmatch/internal/logging"
	"github.com/jonathan/skillmatch/internal/observability"
)

// globalOptions are the persistent flags shared by every subcommand
type globalOptions struct {
	configPath string
	apiKey     string
	logLevel   string
	logFormat  string
	verbose    bool
}

// runtime is what a subcommand needs once flags and config are resolved
type runtime struct {
	cfg     *config.Config
	logger  *zap.Logger
	printer *observability.Printer
}

func newRootCmd() *cobra.Command {
	opts := &globalOptions{}

	root := &cobra.Command{
		Use:           "skillmatch",
		Short:         "Score how well a resume matches a job description",
		Long:          "skillmatch compares a resume with a job description and reports an overall match score, per-component scores, skill gaps, keyword signals and ATS advice.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&opts.configPath, "config", "c", "", "Path to JSON config file")
	flags.StringVar(&opts.apiKey, "api-key", "", "Gemini API key (overrides SKILLMATCH_API_KEY env var)")
	flags.StringVar(&opts.logLevel, "log-level", "", "Log level: debug, info, warn or error")
	flags.StringVar(&opts.logFormat, "log-format", "", "Log format: json or console")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "Print human-readable summaries to stderr")

	root.AddCommand(newMatchCmd(opts))
	root.AddCommand(newExtractSkillsCmd(opts))
	root.AddCommand(newATSFeedbackCmd(opts))
	return root
}

// setup loads the config, applies flag overrides and builds the run logger.
// Every log line carries a run_id so one invocation can be traced.
func (o *globalOptions) setup(cmd *cobra.Command) (*runtime, error) {
	cfg, err := config.Read(o.configPath)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("api-key") {
		cfg.APIKey = o.apiKey
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = o.logLevel
	}
	if flags.Changed("log-format") {
		cfg.LogFormat = o.logFormat
	}
	if flags.Changed("verbose") {
		cfg.Verbose = o.verbose
	}
	// a config file may blank out keys; fall back to defaults for those
	merged := cfg.MergeWithDefaults(config.Defaults())
	cfg = &merged
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return nil, err
	}
	logger = logger.With(zap.String("run_id", uuid.NewString()))

	printerOut := io.Discard
	if cfg.Verbose {
		printerOut = cmd.ErrOrStderr()
	}

	return &runtime{
		cfg:     cfg,
		logger:  logger,
		printer: observability.NewPrinter(printerOut),
	}, nil
}

// writeOutput writes doc to path, or to the command's stdout when path is empty.
func writeOutput(cmd *cobra.Command, path string, doc []byte) error {
	if path == "" {
		if _, err := cmd.OutOrStdout().Write(append(doc, '\n')); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		return nil
	}
	return writeFile(path, doc)
}

func contextOf(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func writeFile(path string, doc []byte) error {
	if err := os.WriteFile(path, append(doc, '\n'), 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}
