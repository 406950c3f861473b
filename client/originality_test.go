package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/originality-tools/oriscan/exception"
	"github.com/originality-tools/oriscan/view"
)

func TestNewScanSendsRequestAndKeepsRawBody(t *testing.T) {
	responseBody := `{"properties":{"id":"abc-1","title":"My Scan"},"ai":{"confidence":{"AI":0.82,"Original":0.18}},"someExtraField":42}`

	var gotReq view.ScanRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/scan" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if got := r.Header.Get("X-OAI-API-KEY"); got != "test-key" {
			t.Errorf("expected api key header, got %q", got)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(responseBody))
	}))
	defer srv.Close()

	cl := NewOriginalityClient(srv.URL, "test-key")
	env, err := cl.NewScan(context.Background(), view.MakeScanRequest("some content", "", "", view.ScanTypeAll))
	if err != nil {
		t.Fatalf("new scan: %v", err)
	}

	if gotReq.Content != "some content" {
		t.Errorf("expected content to pass through, got %q", gotReq.Content)
	}
	if gotReq.Title != "Scan" {
		t.Errorf("expected default title 'Scan', got %q", gotReq.Title)
	}
	if !gotReq.ScanAI || !gotReq.ScanPlag || !gotReq.ScanReadability || !gotReq.ScanGrammarSpelling {
		t.Errorf("expected all checks enabled for scan type 'all': %+v", gotReq)
	}
	if gotReq.AIModel != "lite" || !gotReq.StoreScan {
		t.Errorf("expected aiModel=lite and storeScan=true: %+v", gotReq)
	}

	if env.Result.Properties == nil || env.Result.Properties.Id != "abc-1" {
		t.Fatalf("expected decoded properties, got %+v", env.Result.Properties)
	}
	if string(env.Raw) != responseBody {
		t.Errorf("raw body must be kept verbatim, got %s", string(env.Raw))
	}
}

func TestNewScanTypeAiDisablesPlagiarism(t *testing.T) {
	req := view.MakeScanRequest("content", "t", "", view.ScanTypeAI)
	if !req.ScanAI || req.ScanPlag {
		t.Fatalf("expected ai-only flags, got %+v", req)
	}
	req = view.MakeScanRequest("content", "t", "", view.ScanTypePlagiarism)
	if req.ScanAI || !req.ScanPlag {
		t.Fatalf("expected plagiarism-only flags, got %+v", req)
	}
}

func TestNewScanUnauthorizedReturnsCustomError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	cl := NewOriginalityClient(srv.URL, "bad-key")
	_, err := cl.NewScan(context.Background(), view.MakeScanRequest("content", "", "", view.ScanTypeAll))
	if err == nil {
		t.Fatal("expected error for 401 response")
	}
	var customError *exception.CustomError
	if !errors.As(err, &customError) {
		t.Fatalf("expected CustomError, got %T: %v", err, err)
	}
	if customError.Code != exception.NoApiAccess {
		t.Errorf("expected code %s, got %s", exception.NoApiAccess, customError.Code)
	}
}

func TestNewScanServerErrorIsSurfaced(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("boom"))
	}))
	defer srv.Close()

	cl := NewOriginalityClient(srv.URL, "test-key")
	_, err := cl.NewScan(context.Background(), view.MakeScanRequest("content", "", "", view.ScanTypeAll))
	if err == nil {
		t.Fatal("expected error for 500 response")
	}
}

func TestScanURLEncodesFlags(t *testing.T) {
	var gotReq view.UrlScanRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/scan/url" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Errorf("decode request: %v", err)
		}
		_, _ = w.Write([]byte(`{"plagiarism":{"score":12}}`))
	}))
	defer srv.Close()

	cl := NewOriginalityClient(srv.URL, "test-key")
	env, err := cl.ScanURL(context.Background(), view.MakeUrlScanRequest("https://example.com/post", view.ScanTypePlagiarism))
	if err != nil {
		t.Fatalf("scan url: %v", err)
	}
	if gotReq.URL != "https://example.com/post" || gotReq.AIDetect || !gotReq.Plagiarism {
		t.Errorf("unexpected url scan request: %+v", gotReq)
	}
	if env.Result.Plagiarism == nil || env.Result.Plagiarism.Score != 12 {
		t.Errorf("unexpected result: %+v", env.Result)
	}
}

func TestGetScanNotFoundReturnsNil(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	cl := NewOriginalityClient(srv.URL, "test-key")
	env, err := cl.GetScan(context.Background(), "missing")
	if err != nil {
		t.Fatalf("get scan: %v", err)
	}
	if env != nil {
		t.Fatalf("expected nil envelope for 404, got %+v", env)
	}
}

func TestListScansSendsPagination(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/scans" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if page := r.URL.Query().Get("page"); page != "3" {
			t.Errorf("expected page=3, got %q", page)
		}
		if limit := r.URL.Query().Get("limit"); limit != "25" {
			t.Errorf("expected limit=25, got %q", limit)
		}
		_, _ = w.Write([]byte(`{"scans":[]}`))
	}))
	defer srv.Close()

	cl := NewOriginalityClient(srv.URL, "test-key")
	raw, err := cl.ListScans(context.Background(), 3, 25)
	if err != nil {
		t.Fatalf("list scans: %v", err)
	}
	if string(raw) != `{"scans":[]}` {
		t.Errorf("unexpected raw response %s", string(raw))
	}
}

func TestListScansDefaultsPagination(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if page := r.URL.Query().Get("page"); page != "1" {
			t.Errorf("expected default page=1, got %q", page)
		}
		if limit := r.URL.Query().Get("limit"); limit != "10" {
			t.Errorf("expected default limit=10, got %q", limit)
		}
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	cl := NewOriginalityClient(srv.URL, "test-key")
	if _, err := cl.ListScans(context.Background(), 0, 0); err != nil {
		t.Fatalf("list scans: %v", err)
	}
}
