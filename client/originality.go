package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/originality-tools/oriscan/exception"
	"github.com/originality-tools/oriscan/view"

	log "github.com/sirupsen/logrus"
	"gopkg.in/resty.v1"
)

const apiKeyHeader = "X-OAI-API-KEY"

type OriginalityClient interface {
	NewScan(ctx context.Context, req view.ScanRequest) (*view.ScanEnvelope, error)
	ScanURL(ctx context.Context, req view.UrlScanRequest) (*view.ScanEnvelope, error)
	BatchScan(ctx context.Context, items []view.BatchScanItem) (*view.ScanEnvelope, error)
	GetScan(ctx context.Context, scanId string) (*view.ScanEnvelope, error)
	ListScans(ctx context.Context, page int, limit int) (json.RawMessage, error)
}

func NewOriginalityClient(apiUrl, apiKey string) OriginalityClient {
	parsedApiUrl, err := url.Parse(apiUrl)
	apiHost := ""
	if err != nil {
		log.Errorf("Can't parse analysis api url: %v", err)
	} else {
		apiHost = parsedApiUrl.Hostname()
	}

	cl := http.Client{Timeout: time.Second * 60}
	client := resty.NewWithClient(&cl)
	if apiHost != "" {
		client.SetRedirectPolicy(resty.DomainCheckRedirectPolicy(apiHost))
	}

	return &originalityClientImpl{apiUrl: apiUrl, apiKey: apiKey, client: client}
}

type originalityClientImpl struct {
	apiUrl string
	apiKey string
	client *resty.Client
}

func (o originalityClientImpl) NewScan(ctx context.Context, scanReq view.ScanRequest) (*view.ScanEnvelope, error) {
	req := o.makeRequest(ctx)
	req.SetBody(scanReq)

	resp, err := req.Post(fmt.Sprintf("%s/scan", o.apiUrl))
	if err != nil {
		return nil, fmt.Errorf("failed to create scan '%s': %s", scanReq.Title, err.Error())
	}
	if !isSuccess(resp.StatusCode()) {
		if authErr := checkUnauthorized(resp); authErr != nil {
			return nil, authErr
		}
		return nil, fmt.Errorf("failed to create scan '%s': status code %d %s", scanReq.Title, resp.StatusCode(), string(resp.Body()))
	}
	return decodeEnvelope(resp.Body())
}

func (o originalityClientImpl) ScanURL(ctx context.Context, urlReq view.UrlScanRequest) (*view.ScanEnvelope, error) {
	req := o.makeRequest(ctx)
	req.SetBody(urlReq)

	resp, err := req.Post(fmt.Sprintf("%s/scan/url", o.apiUrl))
	if err != nil {
		return nil, fmt.Errorf("failed to scan url %s: %s", urlReq.URL, err.Error())
	}
	if !isSuccess(resp.StatusCode()) {
		if authErr := checkUnauthorized(resp); authErr != nil {
			return nil, authErr
		}
		return nil, fmt.Errorf("failed to scan url %s: status code %d %s", urlReq.URL, resp.StatusCode(), string(resp.Body()))
	}
	return decodeEnvelope(resp.Body())
}

func (o originalityClientImpl) BatchScan(ctx context.Context, items []view.BatchScanItem) (*view.ScanEnvelope, error) {
	req := o.makeRequest(ctx)
	req.SetBody(view.BatchScanRequest{Items: items})

	resp, err := req.Post(fmt.Sprintf("%s/scan/batch", o.apiUrl))
	if err != nil {
		return nil, fmt.Errorf("failed to run batch scan of %d items: %s", len(items), err.Error())
	}
	if !isSuccess(resp.StatusCode()) {
		if authErr := checkUnauthorized(resp); authErr != nil {
			return nil, authErr
		}
		return nil, fmt.Errorf("failed to run batch scan of %d items: status code %d %s", len(items), resp.StatusCode(), string(resp.Body()))
	}
	return decodeEnvelope(resp.Body())
}

func (o originalityClientImpl) GetScan(ctx context.Context, scanId string) (*view.ScanEnvelope, error) {
	req := o.makeRequest(ctx)

	resp, err := req.Get(fmt.Sprintf("%s/scan/%s", o.apiUrl, url.PathEscape(scanId)))
	if err != nil {
		return nil, fmt.Errorf("failed to get scan %s: %s", scanId, err.Error())
	}
	if !isSuccess(resp.StatusCode()) {
		if resp.StatusCode() == http.StatusNotFound {
			return nil, nil
		}
		if authErr := checkUnauthorized(resp); authErr != nil {
			return nil, authErr
		}
		return nil, fmt.Errorf("failed to get scan %s: status code %d %s", scanId, resp.StatusCode(), string(resp.Body()))
	}
	return decodeEnvelope(resp.Body())
}

func (o originalityClientImpl) ListScans(ctx context.Context, page int, limit int) (json.RawMessage, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 10
	}
	req := o.makeRequest(ctx)
	req.SetQueryParam("page", strconv.Itoa(page))
	req.SetQueryParam("limit", strconv.Itoa(limit))

	resp, err := req.Get(fmt.Sprintf("%s/scans", o.apiUrl))
	if err != nil {
		return nil, fmt.Errorf("failed to list scans: %s", err.Error())
	}
	if !isSuccess(resp.StatusCode()) {
		if authErr := checkUnauthorized(resp); authErr != nil {
			return nil, authErr
		}
		return nil, fmt.Errorf("failed to list scans: status code %d %s", resp.StatusCode(), string(resp.Body()))
	}
	return json.RawMessage(resp.Body()), nil
}

func (o originalityClientImpl) makeRequest(ctx context.Context) *resty.Request {
	req := o.client.R()
	req.SetContext(ctx)
	req.SetHeader(apiKeyHeader, o.apiKey)
	req.SetHeader("Accept", "application/json")
	req.SetHeader("Content-Type", "application/json")
	return req
}

func isSuccess(statusCode int) bool {
	return statusCode >= http.StatusOK && statusCode < http.StatusMultipleChoices
}

func decodeEnvelope(body []byte) (*view.ScanEnvelope, error) {
	var result view.ScanResult
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, err
	}
	raw := make(json.RawMessage, len(body))
	copy(raw, body)
	return &view.ScanEnvelope{Result: result, Raw: raw}, nil
}

func checkUnauthorized(resp *resty.Response) error {
	if resp != nil && (resp.StatusCode() == http.StatusUnauthorized || resp.StatusCode() == http.StatusForbidden) {
		log.Errorf("Incorrect api key detected!")
		return &exception.CustomError{
			Status:  http.StatusFailedDependency,
			Code:    exception.NoApiAccess,
			Message: exception.NoApiAccessMsg,
			Params:  map[string]interface{}{"code": strconv.Itoa(resp.StatusCode())},
		}
	}
	return nil
}
