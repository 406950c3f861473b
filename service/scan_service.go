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

package service

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"strings"

	"github.com/originality-tools/oriscan/client"
	"github.com/originality-tools/oriscan/entity"
	"github.com/originality-tools/oriscan/exception"
	"github.com/originality-tools/oriscan/repository"
	"github.com/originality-tools/oriscan/utils"
	"github.com/originality-tools/oriscan/view"

	log "github.com/sirupsen/logrus"
)

type ScanParams struct {
	Title       string
	ScanType    view.ScanType
	ExcludedURL string
	Basename    string
	SkipRaw     bool
}

// ScanOutcome is what one pass through the pipeline produces: the decoded
// result, its report, and the files written for it.
type ScanOutcome struct {
	Result      view.ScanResult
	Raw         json.RawMessage
	Report      string
	Files       *entity.ScanFiles
	Fingerprint string
}

type ScanService interface {
	ScanText(ctx context.Context, content string, params ScanParams) (*ScanOutcome, error)
	ScanFile(ctx context.Context, path string, params ScanParams) (*ScanOutcome, error)
	ScanUrl(ctx context.Context, targetUrl string, params ScanParams) (*ScanOutcome, error)
	BatchScan(ctx context.Context, files []string, params ScanParams) (*ScanOutcome, error)
	GetScan(ctx context.Context, scanId string) (*view.ScanEnvelope, error)
	ListScans(ctx context.Context, page int, limit int) (json.RawMessage, error)
}

func NewScanService(originalityClient client.OriginalityClient, resultRepository repository.ResultRepository) ScanService {
	return &scanServiceImpl{originalityClient: originalityClient, resultRepository: resultRepository}
}

type scanServiceImpl struct {
	originalityClient client.OriginalityClient
	resultRepository  repository.ResultRepository
}

func (s scanServiceImpl) ScanText(ctx context.Context, content string, params ScanParams) (*ScanOutcome, error) {
	if strings.TrimSpace(content) == "" {
		return nil, &exception.CustomError{
			Status:  http.StatusBadRequest,
			Code:    exception.EmptyContent,
			Message: exception.EmptyContentMsg,
		}
	}
	scanType := normalizeScanType(params.ScanType)

	env, err := s.originalityClient.NewScan(ctx, view.MakeScanRequest(content, params.Title, params.ExcludedURL, scanType))
	if err != nil {
		return nil, err
	}

	outcome, err := s.persist(env, params)
	if err != nil {
		return nil, err
	}
	outcome.Fingerprint = utils.CreateSHA256Hash([]byte(content))
	return outcome, nil
}

func (s scanServiceImpl) ScanFile(ctx context.Context, path string, params ScanParams) (*ScanOutcome, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &exception.CustomError{
				Status:  http.StatusBadRequest,
				Code:    exception.InputFileNotFound,
				Message: exception.InputFileNotFoundMsg,
				Params:  map[string]interface{}{"file": path},
			}
		}
		return nil, err
	}
	return s.ScanText(ctx, string(content), params)
}

func (s scanServiceImpl) ScanUrl(ctx context.Context, targetUrl string, params ScanParams) (*ScanOutcome, error) {
	if targetUrl == "" {
		return nil, &exception.CustomError{
			Status:  http.StatusBadRequest,
			Code:    exception.RequiredParamsMissing,
			Message: exception.RequiredParamsMissingMsg,
			Params:  map[string]interface{}{"params": "url"},
		}
	}
	scanType := normalizeScanType(params.ScanType)

	env, err := s.originalityClient.ScanURL(ctx, view.MakeUrlScanRequest(targetUrl, scanType))
	if err != nil {
		return nil, err
	}
	return s.persist(env, params)
}

func (s scanServiceImpl) BatchScan(ctx context.Context, files []string, params ScanParams) (*ScanOutcome, error) {
	if len(files) == 0 {
		return nil, &exception.CustomError{
			Status:  http.StatusBadRequest,
			Code:    exception.RequiredParamsMissing,
			Message: exception.RequiredParamsMissingMsg,
			Params:  map[string]interface{}{"params": "files"},
		}
	}
	scanType := normalizeScanType(params.ScanType)

	items := make([]view.BatchScanItem, 0, len(files))
	for _, path := range files {
		content, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				return nil, &exception.CustomError{
					Status:  http.StatusBadRequest,
					Code:    exception.InputFileNotFound,
					Message: exception.InputFileNotFoundMsg,
					Params:  map[string]interface{}{"file": path},
				}
			}
			return nil, err
		}
		items = append(items, view.BatchScanItem{
			Id:      utils.CreateSHA256Hash(content)[:16],
			Content: string(content),
			Type:    scanType,
		})
	}

	env, err := s.originalityClient.BatchScan(ctx, items)
	if err != nil {
		return nil, err
	}
	return s.persist(env, params)
}

func (s scanServiceImpl) GetScan(ctx context.Context, scanId string) (*view.ScanEnvelope, error) {
	return s.originalityClient.GetScan(ctx, scanId)
}

func (s scanServiceImpl) ListScans(ctx context.Context, page int, limit int) (json.RawMessage, error) {
	return s.originalityClient.ListScans(ctx, page, limit)
}

func (s scanServiceImpl) persist(env *view.ScanEnvelope, params ScanParams) (*ScanOutcome, error) {
	report := FormatResult(env.Result)
	files, err := s.resultRepository.Save(env, report, repository.SaveOptions{Basename: params.Basename, SkipRaw: params.SkipRaw})
	if err != nil {
		return nil, err
	}
	log.Debugf("Scan result saved as %s", files.Id)
	return &ScanOutcome{Result: env.Result, Raw: env.Raw, Report: report, Files: files}, nil
}

func normalizeScanType(scanType view.ScanType) view.ScanType {
	if scanType == "" {
		return view.ScanTypeAll
	}
	return scanType
}
