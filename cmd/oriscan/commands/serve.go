// Copyright 2025 Originality Tools
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package commands

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/spf13/cobra"

	"github.com/originality-tools/oriscan/controller"
	"github.com/originality-tools/oriscan/security"
	"github.com/originality-tools/oriscan/service"

	log "github.com/sirupsen/logrus"
)

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the local scan results dashboard",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			readyChan := make(chan bool)

			security.SetupDashboardAuth(systemInfoService.GetDashboardApiKey())
			if security.Enabled() {
				log.Info("Dashboard API key protection is enabled")
			}

			if ttlDays := systemInfoService.GetResultsTtlDays(); ttlDays > 0 {
				removed, err := resultRepository.Cleanup(time.Duration(ttlDays) * 24 * time.Hour)
				if err != nil {
					log.Warnf("Results retention pass failed: %s", err.Error())
				} else if removed > 0 {
					log.Infof("Removed %d stored scans older than %d days", removed, ttlDays)
				}
			}

			scanController := controller.NewScanController(scanService, resultRepository)
			dashboardController := controller.NewDashboardController()
			schemaController := controller.NewSchemaController()
			healthController := controller.NewHealthController(readyChan)

			router := mux.NewRouter()
			router.Use(requestIdMiddleware)
			router.HandleFunc("/", security.NoSecure(dashboardController.GetDashboard)).Methods(http.MethodGet)
			router.HandleFunc("/api/v1/scans", security.Secure(scanController.CreateScan)).Methods(http.MethodPost)
			router.HandleFunc("/api/v1/scans", security.Secure(scanController.ListStoredScans)).Methods(http.MethodGet)
			router.HandleFunc("/api/v1/scans/{id}", security.Secure(scanController.GetStoredScan)).Methods(http.MethodGet)
			router.HandleFunc("/api/v1/scans/{id}/report", security.Secure(scanController.GetStoredReport)).Methods(http.MethodGet)
			router.HandleFunc("/api/v1/scans/{id}/export", security.Secure(scanController.ExportStoredScan)).Methods(http.MethodGet)
			router.HandleFunc("/api/v1/schema", security.NoSecure(schemaController.GetScanResultSchema)).Methods(http.MethodGet)

			router.HandleFunc("/live", security.NoSecure(healthController.HandleLiveRequest)).Methods(http.MethodGet)
			router.HandleFunc("/ready", security.NoSecure(healthController.HandleReadyRequest)).Methods(http.MethodGet)
			readyChan <- true
			close(readyChan)

			srv := makeServer(systemInfoService, router)
			return srv.ListenAndServe()
		},
	}
	return cmd
}

func makeServer(systemInfoService service.SystemInfoService, r *mux.Router) *http.Server {
	listenAddr := systemInfoService.GetListenAddress()

	log.Infof("Listen addr = %s", listenAddr)

	var corsOptions []handlers.CORSOption

	corsOptions = append(corsOptions, handlers.AllowedHeaders([]string{"Connection", "Accept-Encoding", "Content-Encoding", "X-Requested-With", "Content-Type", "Authorization", security.ApiKeyHeader}))

	allowedOrigin := systemInfoService.GetOriginAllowed()
	if allowedOrigin != "" {
		corsOptions = append(corsOptions, handlers.AllowedOrigins([]string{allowedOrigin}))
	}
	corsOptions = append(corsOptions, handlers.AllowedMethods([]string{"GET", "HEAD", "POST", "OPTIONS"}))

	return &http.Server{
		Handler:      handlers.CompressHandler(handlers.CORS(corsOptions...)(r)),
		Addr:         listenAddr,
		WriteTimeout: 600 * time.Second,
		ReadTimeout:  60 * time.Second,
	}
}

func requestIdMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestId := r.Header.Get("X-Request-Id")
		if requestId == "" {
			requestId = uuid.New().String()
		}
		w.Header().Set("X-Request-Id", requestId)
		log.Debugf("%s %s [%s]", r.Method, r.URL.Path, requestId)
		next.ServeHTTP(w, r)
	})
}
