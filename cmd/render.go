package cmd

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/fatih/color"

	"github.com/persuasionlab/beliefshift/pkg/experiment"
)

// renderResults prints the per-debate table and the grouped summary.
func renderResults(w io.Writer, results *experiment.Results) {
	header := color.New(color.FgCyan, color.Bold)

	header.Fprintf(w, "All results (%s, model=%s):\n", results.RunID, results.Model)
	recordTable := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("PROPOSITION", "TRUTH", "SIDE", "STYLE", "START", "END", "SHIFT")
	for _, rec := range results.Records {
		if rec.Failed() {
			recordTable.Row(truncate(rec.Proposition, 48), string(rec.GroundTruth), rec.Side,
				string(rec.Style), "-", "-", "failed: "+truncate(rec.Err, 32))
			continue
		}
		recordTable.Row(truncate(rec.Proposition, 48), string(rec.GroundTruth), rec.Side,
			string(rec.Style),
			fmt.Sprintf("%.1f", rec.CredStart),
			fmt.Sprintf("%.1f", rec.CredEnd),
			fmt.Sprintf("%+.1f", rec.Shift))
	}
	fmt.Fprintln(w, recordTable.String())

	header.Fprintln(w, "Summary of belief shifts by truth, side & style:")
	summaryTable := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("TRUTH", "SIDE", "STYLE", "MEAN", "STD", "COUNT")
	for _, group := range results.Summary {
		summaryTable.Row(string(group.GroundTruth), group.Side, string(group.Style),
			fmt.Sprintf("%+.2f", group.MeanShift),
			fmt.Sprintf("%.2f", group.StdDev),
			fmt.Sprintf("%d", group.Count))
	}
	fmt.Fprintln(w, summaryTable.String())
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-1]) + "…"
}
