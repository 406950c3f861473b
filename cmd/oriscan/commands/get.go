package commands

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/originality-tools/oriscan/service"
)

func getCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "get <scan-id>",
		Short: "Retrieve a previously submitted scan from the API",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireApiKey(); err != nil {
				return err
			}

			env, err := scanService.GetScan(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if env == nil {
				return fmt.Errorf("scan %s not found", args[0])
			}
			fmt.Println(service.FormatResult(env.Result))
			return nil
		},
	}
	return cmd
}

func scansCmd() *cobra.Command {
	var page, limit int

	cmd := &cobra.Command{
		Use:   "scans",
		Short: "List scans stored on the API side",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireApiKey(); err != nil {
				return err
			}

			raw, err := scanService.ListScans(cmd.Context(), page, limit)
			if err != nil {
				return err
			}
			var indented bytes.Buffer
			if err := json.Indent(&indented, raw, "", "  "); err != nil {
				fmt.Println(string(raw))
				return nil
			}
			fmt.Println(indented.String())
			return nil
		},
	}

	cmd.Flags().IntVar(&page, "page", 1, "page number")
	cmd.Flags().IntVar(&limit, "limit", 10, "page size")
	return cmd
}
