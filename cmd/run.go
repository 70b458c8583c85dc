package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/persuasionlab/beliefshift/pkg/experiment"
	"github.com/persuasionlab/beliefshift/pkg/llm"
)

var (
	runModel           string
	runRounds          int
	runCorpusPath      string
	runConfigPath      string
	runOutput          string
	runSeed            int64
	runMaxAttempts     int
	runBackoffSeconds  int
	runContinueOnError bool
)

// NewRunCmd builds the run command.
func NewRunCmd() *cobra.Command {
	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Run the full experiment grid",
		Long: `Run one debate per (proposition, style, side) combination over the
corpus, then print the results table and grouped summary and export
them as JSON.

Examples:
  # Smoke run against the built-in corpus with the mock backend
  beliefshift run --model mock --backoff 0

  # Real run with a corpus file
  beliefshift run --corpus propositions.yml --model gemini-2.5-flash -o results.json`,
		Args: cobra.NoArgs,
		RunE: runExperiment,
	}

	runCmd.Flags().StringVarP(&runModel, "model", "m", "", "Model identifier (gemini-*, claude-*, or mock)")
	runCmd.Flags().IntVarP(&runRounds, "rounds", "r", 3, "Arguer/Target rounds per debate")
	runCmd.Flags().StringVar(&runCorpusPath, "corpus", "", "YAML corpus file (defaults to the built-in corpus)")
	runCmd.Flags().StringVar(&runConfigPath, "config", "", "YAML config file")
	runCmd.Flags().StringVarP(&runOutput, "output", "o", "results.json", "Results JSON output path (empty to skip)")
	runCmd.Flags().Int64Var(&runSeed, "seed", 0, "Proposition shuffle seed (0 = time-derived)")
	runCmd.Flags().IntVar(&runMaxAttempts, "max-attempts", 3, "Remote call attempts before giving up")
	runCmd.Flags().IntVar(&runBackoffSeconds, "backoff", 60, "Seconds to wait between retry attempts")
	runCmd.Flags().BoolVar(&runContinueOnError, "continue-on-error", false, "Record failed debates and continue instead of aborting the run")

	return runCmd
}

func runExperiment(cmd *cobra.Command, args []string) error {
	log, err := newLogger()
	if err != nil {
		return err
	}

	config := experiment.DefaultConfig()
	if runConfigPath != "" {
		config, err = experiment.LoadConfig(runConfigPath)
		if err != nil {
			return err
		}
	}

	// CLI flags beat the config file when set explicitly.
	flags := cmd.Flags()
	if flags.Changed("model") {
		config.Model = runModel
	}
	if flags.Changed("rounds") {
		config.Rounds = runRounds
	}
	if flags.Changed("seed") {
		config.Seed = runSeed
	}
	if flags.Changed("max-attempts") {
		config.MaxAttempts = runMaxAttempts
	}
	if flags.Changed("backoff") {
		config.BackoffSeconds = runBackoffSeconds
	}
	if flags.Changed("continue-on-error") {
		config.ContinueOnError = runContinueOnError
	}
	if err := config.Validate(); err != nil {
		return err
	}

	corpus := experiment.DefaultCorpus()
	if runCorpusPath != "" {
		corpus, err = experiment.LoadCorpus(runCorpusPath)
		if err != nil {
			return err
		}
	}

	ctx := cmd.Context()
	client, err := llm.NewClient(ctx, config.Model, config.APIKey)
	if err != nil {
		return err
	}

	driver := experiment.NewDriver(client, config, log)
	results, runErr := driver.Run(ctx, corpus)

	// Render and export whatever was collected, even on abort, so the
	// trace up to the failure is preserved.
	if results != nil {
		renderResults(os.Stdout, results)
		if runOutput != "" {
			if err := results.WriteFile(runOutput); err != nil {
				log.WithError(err).Error("Failed to write results file")
			} else {
				log.WithField("path", runOutput).Info("Results written")
			}
		}
	}

	if runErr != nil {
		return fmt.Errorf("experiment aborted: %w", runErr)
	}
	return nil
}
