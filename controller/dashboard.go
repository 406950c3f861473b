package controller

import (
	"embed"
	"html/template"
	"net/http"

	log "github.com/sirupsen/logrus"
)

//go:embed templates/*.html
var templatesFS embed.FS

var pageTemplates = template.Must(template.ParseFS(templatesFS, "templates/*.html"))

type DashboardController interface {
	GetDashboard(w http.ResponseWriter, r *http.Request)
}

func NewDashboardController() DashboardController {
	return &dashboardControllerImpl{}
}

type dashboardControllerImpl struct {
}

func (d dashboardControllerImpl) GetDashboard(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pageTemplates.ExecuteTemplate(w, "dashboard", nil); err != nil {
		log.Errorf("Failed to render dashboard page: %s", err.Error())
	}
}
