package controller

import (
	"encoding/json"
	"html/template"
	"net/http"

	"github.com/originality-tools/oriscan/exception"
	"github.com/originality-tools/oriscan/service"
	"github.com/originality-tools/oriscan/view"

	log "github.com/sirupsen/logrus"
)

type reportPageData struct {
	Properties *view.ScanProperties
	Credits    *view.Credits
	Insights   []string
	RawJSON    template.JS
}

// ExportStoredScan renders a stored result as a standalone HTML report with
// the same charts as the dashboard page.
func (c scanControllerImpl) ExportStoredScan(w http.ResponseWriter, r *http.Request) {
	scanId := getStringParam(r, "id")

	raw, err := c.resultRepository.GetRaw(scanId)
	if err != nil {
		respondWithError(w, "Failed to export stored scan", err)
		return
	}
	if raw == nil {
		RespondWithCustomError(w, &exception.CustomError{
			Status:  http.StatusNotFound,
			Code:    exception.EntityNotFound,
			Message: exception.EntityNotFoundMsg,
			Params:  map[string]interface{}{"entity": "Scan result", "id": scanId},
		})
		return
	}

	var result view.ScanResult
	if err := json.Unmarshal(raw, &result); err != nil {
		respondWithError(w, "Failed to decode stored scan", err)
		return
	}

	// compact the stored (indented) JSON before embedding it in the page
	compacted, err := compactJson(raw)
	if err != nil {
		respondWithError(w, "Failed to prepare stored scan for export", err)
		return
	}

	data := reportPageData{
		Properties: result.Properties,
		Credits:    result.Credits,
		Insights:   service.Insights(result),
		RawJSON:    template.JS(compacted),
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Content-Disposition", "inline; filename=\""+scanId+"_report.html\"")
	if err := pageTemplates.ExecuteTemplate(w, "report", data); err != nil {
		log.Errorf("Failed to render report for %s: %s", scanId, err.Error())
	}
}

func compactJson(raw []byte) (string, error) {
	var decoded interface{}
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return "", err
	}
	compacted, err := json.Marshal(decoded)
	if err != nil {
		return "", err
	}
	return string(compacted), nil
}
