package controller

import (
	"net/http"

	"github.com/originality-tools/oriscan/view"
)

type SchemaController interface {
	GetScanResultSchema(w http.ResponseWriter, r *http.Request)
}

func NewSchemaController() SchemaController {
	return &schemaControllerImpl{}
}

type schemaControllerImpl struct {
}

func (s schemaControllerImpl) GetScanResultSchema(w http.ResponseWriter, r *http.Request) {
	respondWithJson(w, http.StatusOK, view.ScanResultSchema())
}
