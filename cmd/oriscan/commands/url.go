package commands

import (
	"github.com/spf13/cobra"

	"github.com/originality-tools/oriscan/service"
	"github.com/originality-tools/oriscan/view"
)

func urlCmd() *cobra.Command {
	var scanType, output string
	var noRaw bool

	cmd := &cobra.Command{
		Use:   "url <url>",
		Short: "Scan the content behind a URL",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireApiKey(); err != nil {
				return err
			}
			if err := validateScanTypeFlag(scanType); err != nil {
				return err
			}

			outcome, err := scanService.ScanUrl(cmd.Context(), args[0], service.ScanParams{
				ScanType: view.ScanType(scanType),
				Basename: output,
				SkipRaw:  noRaw,
			})
			if err != nil {
				return err
			}
			printOutcome(outcome)
			return nil
		},
	}

	cmd.Flags().StringVar(&scanType, "type", string(view.ScanTypeAll), "scan type: ai, plagiarism or all")
	cmd.Flags().StringVar(&output, "output", "", "custom basename for the stored result files")
	cmd.Flags().BoolVar(&noRaw, "no-raw", false, "skip writing the raw JSON file")
	return cmd
}
