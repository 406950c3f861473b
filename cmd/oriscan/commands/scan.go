package commands

import (
	"fmt"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/originality-tools/oriscan/exception"
	"github.com/originality-tools/oriscan/service"
	"github.com/originality-tools/oriscan/view"
)

const defaultInputFile = "input.txt"

func scanCmd() *cobra.Command {
	var title, scanType, excludedURL, output string
	var noRaw bool

	cmd := &cobra.Command{
		Use:   "scan [file]",
		Short: "Scan a text file for AI content, plagiarism, readability and grammar",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireApiKey(); err != nil {
				return err
			}
			if err := validateScanTypeFlag(scanType); err != nil {
				return err
			}

			input := defaultInputFile
			if len(args) > 0 {
				input = args[0]
			}

			outcome, err := scanService.ScanFile(cmd.Context(), input, service.ScanParams{
				Title:       title,
				ScanType:    view.ScanType(scanType),
				ExcludedURL: excludedURL,
				Basename:    output,
				SkipRaw:     noRaw,
			})
			if err != nil {
				return err
			}
			printOutcome(outcome)
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "scan title")
	cmd.Flags().StringVar(&scanType, "type", string(view.ScanTypeAll), "scan type: ai, plagiarism or all")
	cmd.Flags().StringVar(&excludedURL, "excluded-url", "", "URL to exclude from the plagiarism check")
	cmd.Flags().StringVar(&output, "output", "", "custom basename for the stored result files")
	cmd.Flags().BoolVar(&noRaw, "no-raw", false, "skip writing the raw JSON file")
	return cmd
}

func validateScanTypeFlag(scanType string) error {
	if !view.ValidScanType(view.ScanType(scanType)) {
		return &exception.CustomError{
			Status:  http.StatusBadRequest,
			Code:    exception.InvalidParameterValue,
			Message: exception.InvalidParameterValueMsg,
			Params:  map[string]interface{}{"value": scanType, "param": "type"},
		}
	}
	return nil
}

func printOutcome(outcome *service.ScanOutcome) {
	fmt.Printf("Formatted results saved to: %s\n", outcome.Files.FormattedPath)
	if outcome.Files.RawPath != "" {
		fmt.Printf("Raw JSON saved to: %s\n", outcome.Files.RawPath)
	}
	fmt.Println("\nScan Results:")
	fmt.Println(outcome.Report)
}
