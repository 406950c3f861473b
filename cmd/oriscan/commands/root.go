package commands

import (
	"net/http"

	"github.com/spf13/cobra"

	"github.com/originality-tools/oriscan/client"
	"github.com/originality-tools/oriscan/exception"
	"github.com/originality-tools/oriscan/repository"
	"github.com/originality-tools/oriscan/service"

	log "github.com/sirupsen/logrus"
)

var (
	resultsDirFlag string

	systemInfoService service.SystemInfoService
	resultRepository  repository.ResultRepository
	scanService       service.ScanService
)

func Execute() error {
	root := &cobra.Command{
		Use:           "oriscan",
		Short:         "Client for the Originality content-analysis API with a local results dashboard",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			systemInfoService, err = service.NewSystemInfoService()
			if err != nil {
				return err
			}

			if level := systemInfoService.GetLogLevel(); level != "" {
				parsed, err := log.ParseLevel(level)
				if err != nil {
					log.Warnf("Incorrect log level '%s', keeping default", level)
				} else {
					log.SetLevel(parsed)
				}
			}

			resultsDir := resultsDirFlag
			if resultsDir == "" {
				resultsDir = systemInfoService.GetResultsDir()
			}

			resultRepository = repository.NewResultRepository(resultsDir)
			originalityClient := client.NewOriginalityClient(systemInfoService.GetApiUrl(), systemInfoService.GetApiKey())
			scanService = service.NewScanService(originalityClient, resultRepository)
			return nil
		},
	}

	root.PersistentFlags().StringVar(&resultsDirFlag, "results-dir", "", "directory for stored results (default $RESULTS_DIR or originality_results)")

	root.AddCommand(scanCmd(), urlCmd(), batchCmd(), getCmd(), scansCmd(), serveCmd(), schemaCmd())
	return root.Execute()
}

func requireApiKey() error {
	if systemInfoService.GetApiKey() == "" {
		return &exception.CustomError{
			Status:  http.StatusUnauthorized,
			Code:    exception.ApiKeyNotConfigured,
			Message: exception.ApiKeyNotConfiguredMsg,
		}
	}
	return nil
}
