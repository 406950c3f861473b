package controller

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/originality-tools/oriscan/entity"
	"github.com/originality-tools/oriscan/exception"
	"github.com/originality-tools/oriscan/repository"
	"github.com/originality-tools/oriscan/service"
	"github.com/originality-tools/oriscan/utils"
	"github.com/originality-tools/oriscan/view"

	log "github.com/sirupsen/logrus"
)

type ScanController interface {
	CreateScan(w http.ResponseWriter, r *http.Request)
	ListStoredScans(w http.ResponseWriter, r *http.Request)
	GetStoredScan(w http.ResponseWriter, r *http.Request)
	GetStoredReport(w http.ResponseWriter, r *http.Request)
	ExportStoredScan(w http.ResponseWriter, r *http.Request)
}

func NewScanController(scanService service.ScanService, resultRepository repository.ResultRepository) ScanController {
	return &scanControllerImpl{scanService: scanService, resultRepository: resultRepository}
}

type scanControllerImpl struct {
	scanService      service.ScanService
	resultRepository repository.ResultRepository
}

type storedScansResponse struct {
	Scans []entity.StoredScan `json:"scans"`
}

func (c scanControllerImpl) CreateScan(w http.ResponseWriter, r *http.Request) {
	var scanReq view.CreateScanReq

	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		textFile, _, err := r.FormFile("textFile")
		if err != nil {
			if err == http.ErrMissingFile {
				RespondWithCustomError(w, &exception.CustomError{
					Status:  http.StatusBadRequest,
					Code:    exception.RequiredParamsMissing,
					Message: exception.RequiredParamsMissingMsg,
					Params:  map[string]interface{}{"params": "textFile"},
				})
				return
			}
			RespondWithCustomError(w, &exception.CustomError{
				Status:  http.StatusBadRequest,
				Code:    exception.IncorrectMultipartFile,
				Message: exception.IncorrectMultipartFileMsg,
				Debug:   err.Error()})
			return
		}
		content, err := io.ReadAll(textFile)
		closeErr := textFile.Close()
		if closeErr != nil {
			log.Debugf("failed to close multipart file: %+v", closeErr)
		}
		if err != nil {
			RespondWithCustomError(w, &exception.CustomError{
				Status:  http.StatusBadRequest,
				Code:    exception.IncorrectMultipartFile,
				Message: exception.IncorrectMultipartFileMsg,
				Debug:   err.Error()})
			return
		}
		scanReq.Content = string(content)
		scanReq.Title = r.FormValue("title")
		scanReq.ScanType = view.ScanType(r.FormValue("scanType"))
		scanReq.ExcludedURL = r.FormValue("excludedUrl")
	} else {
		body, err := io.ReadAll(r.Body)
		if err != nil || json.Unmarshal(body, &scanReq) != nil {
			RespondWithCustomError(w, &exception.CustomError{
				Status:  http.StatusBadRequest,
				Code:    exception.BadRequestBody,
				Message: exception.BadRequestBodyMsg,
			})
			return
		}
	}

	if scanReq.ScanType != "" && !view.ValidScanType(scanReq.ScanType) {
		RespondWithCustomError(w, &exception.CustomError{
			Status:  http.StatusBadRequest,
			Code:    exception.InvalidParameterValue,
			Message: exception.InvalidParameterValueMsg,
			Params:  map[string]interface{}{"value": scanReq.ScanType, "param": "scanType"},
		})
		return
	}

	outcome, err := c.scanService.ScanText(r.Context(), scanReq.Content, service.ScanParams{
		Title:       scanReq.Title,
		ScanType:    scanReq.ScanType,
		ExcludedURL: scanReq.ExcludedURL,
	})
	if err != nil {
		respondWithError(w, "Failed to scan content", err)
		return
	}

	respondWithJson(w, http.StatusCreated, view.CreateScanResponse{
		Id:            outcome.Files.Id,
		FormattedPath: outcome.Files.FormattedPath,
		RawPath:       outcome.Files.RawPath,
		Fingerprint:   outcome.Fingerprint,
		Result:        outcome.Raw,
		Insights:      service.Insights(outcome.Result),
	})
}

func (c scanControllerImpl) ListStoredScans(w http.ResponseWriter, r *http.Request) {
	scans, err := c.resultRepository.List()
	if err != nil {
		respondWithError(w, "Failed to list stored scans", err)
		return
	}
	respondWithJson(w, http.StatusOK, storedScansResponse{Scans: scans})
}

func (c scanControllerImpl) GetStoredScan(w http.ResponseWriter, r *http.Request) {
	scanId, err := getUnescapedStringParam(r, "id")
	if err != nil {
		RespondWithCustomError(w, &exception.CustomError{
			Status:  http.StatusBadRequest,
			Code:    exception.InvalidURLEscape,
			Message: exception.InvalidURLEscapeMsg,
			Params:  map[string]interface{}{"param": "id"},
			Debug:   err.Error(),
		})
		return
	}

	raw, err := c.resultRepository.GetRaw(scanId)
	if err != nil {
		respondWithError(w, "Failed to get stored scan", err)
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

	etag := utils.GetEncodedChecksum(raw)
	w.Header().Set("ETag", etag)
	if r.Header.Get("If-None-Match") == etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(raw)
}

func (c scanControllerImpl) GetStoredReport(w http.ResponseWriter, r *http.Request) {
	scanId := getStringParam(r, "id")

	report, err := c.resultRepository.GetReport(scanId)
	if err != nil {
		respondWithError(w, "Failed to get stored report", err)
		return
	}
	if report == "" {
		RespondWithCustomError(w, &exception.CustomError{
			Status:  http.StatusNotFound,
			Code:    exception.EntityNotFound,
			Message: exception.EntityNotFoundMsg,
			Params:  map[string]interface{}{"entity": "Scan report", "id": scanId},
		})
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(report))
}
