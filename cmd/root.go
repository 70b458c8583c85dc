package cmd

import (
	"os"

	"github.com/mattn/go-isatty"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var rootLogLevel string

// NewRootCmd builds the beliefshift command tree.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "beliefshift",
		Short: "Measure belief shifts in LLMs under persuasive debate",
		Long: `beliefshift runs a belief-fungibility experiment against an LLM API:
one model instance argues a proposition (both sides, two persuasion
styles) while a second instance reports its credence in the proposition
before and after the debate. The shift in credence is collected over a
proposition corpus and summarized by ground truth, side, and style.`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&rootLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(NewRunCmd())
	rootCmd.AddCommand(NewCorpusCmd())
	rootCmd.AddCommand(NewSchemaCmd())

	return rootCmd
}

// newLogger builds the run's observability sink: colored text on a
// terminal, plain text when piped. Logs go to stderr so stdout stays
// clean for the results table.
func newLogger() (*logrus.Entry, error) {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)

	level, err := logrus.ParseLevel(rootLogLevel)
	if err != nil {
		return nil, err
	}
	logger.SetLevel(level)

	if isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd()) {
		logger.SetFormatter(&logrus.TextFormatter{ForceColors: true, FullTimestamp: true})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{DisableColors: true, FullTimestamp: true})
	}

	return logrus.NewEntry(logger), nil
}
