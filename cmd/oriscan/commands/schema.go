package commands

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/originality-tools/oriscan/view"
)

func schemaCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schema",
		Short: "Print the JSON schema of the scan result payload",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			schema, err := json.MarshalIndent(view.ScanResultSchema(), "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(schema))
			return nil
		},
	}
	return cmd
}
