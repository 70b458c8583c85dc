package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/persuasionlab/beliefshift/pkg/experiment"
)

// NewCorpusCmd builds the corpus command and its subcommands.
func NewCorpusCmd() *cobra.Command {
	corpusCmd := &cobra.Command{
		Use:   "corpus",
		Short: "Inspect proposition corpora",
	}

	validateCmd := &cobra.Command{
		Use:   "validate [file]",
		Short: "Validate a YAML corpus file",
		Long: `Validate a proposition corpus: every entry needs non-empty text and a
ground_truth of true, false, or unknown.`,
		Args: cobra.ExactArgs(1),
		RunE: runCorpusValidate,
	}
	corpusCmd.AddCommand(validateCmd)

	return corpusCmd
}

func runCorpusValidate(cmd *cobra.Command, args []string) error {
	corpus, err := experiment.LoadCorpus(args[0])
	if err != nil {
		return err
	}

	counts := map[experiment.GroundTruth]int{}
	for _, prop := range corpus.Propositions {
		counts[prop.GroundTruth]++
	}

	out := cmd.OutOrStdout()
	color.New(color.FgGreen).Fprintf(out, "✓ %s is valid\n", args[0])
	fmt.Fprintf(out, "%d propositions (true=%d false=%d unknown=%d), %d debates per full run\n",
		len(corpus.Propositions),
		counts[experiment.GroundTruthTrue],
		counts[experiment.GroundTruthFalse],
		counts[experiment.GroundTruthUnknown],
		4*len(corpus.Propositions))
	return nil
}
