package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"
	"github.com/spf13/cobra"

	"github.com/persuasionlab/beliefshift/pkg/experiment"
)

// NewSchemaCmd builds the schema command.
func NewSchemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Print the JSON schema of the results document",
		Long:  "Print the JSON schema of the exported results document, for wiring downstream analysis tooling.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			schema := jsonschema.Reflect(&experiment.Results{})
			data, err := json.MarshalIndent(schema, "", "  ")
			if err != nil {
				return fmt.Errorf("marshaling schema: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return nil
		},
	}
}
