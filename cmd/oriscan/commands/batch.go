package commands

import (
	"github.com/spf13/cobra"

	"github.com/originality-tools/oriscan/service"
	"github.com/originality-tools/oriscan/view"
)

func batchCmd() *cobra.Command {
	var scanType, output string
	var noRaw bool

	cmd := &cobra.Command{
		Use:   "batch <file>...",
		Short: "Scan several text files in one batch request",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireApiKey(); err != nil {
				return err
			}
			if err := validateScanTypeFlag(scanType); err != nil {
				return err
			}

			outcome, err := scanService.BatchScan(cmd.Context(), args, service.ScanParams{
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
