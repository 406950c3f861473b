package view

import "encoding/json"

type ScanRequest struct {
	Content             string `json:"content"`
	Title               string `json:"title"`
	ExcludedURL         string `json:"excludedUrl,omitempty"`
	StoreScan           bool   `json:"storeScan"`
	AIModel             string `json:"aiModel,omitempty"`
	ScanAI              bool   `json:"scan_ai"`
	ScanPlag            bool   `json:"scan_plag"`
	ScanReadability     bool   `json:"scan_readability"`
	ScanGrammarSpelling bool   `json:"scan_grammar_spelling"`
}

// MakeScanRequest fills the request the way the API expects it for the given
// scan type. Readability and grammar checks are always on.
func MakeScanRequest(content, title, excludedURL string, scanType ScanType) ScanRequest {
	if title == "" {
		title = "Scan"
	}
	return ScanRequest{
		Content:             content,
		Title:               title,
		ExcludedURL:         excludedURL,
		StoreScan:           true,
		AIModel:             "lite",
		ScanAI:              scanType == ScanTypeAI || scanType == ScanTypeAll,
		ScanPlag:            scanType == ScanTypePlagiarism || scanType == ScanTypeAll,
		ScanReadability:     true,
		ScanGrammarSpelling: true,
	}
}

type UrlScanRequest struct {
	URL        string `json:"url"`
	AIDetect   bool   `json:"aidetect"`
	Plagiarism bool   `json:"plagiarism"`
}

func MakeUrlScanRequest(url string, scanType ScanType) UrlScanRequest {
	return UrlScanRequest{
		URL:        url,
		AIDetect:   scanType == ScanTypeAI || scanType == ScanTypeAll,
		Plagiarism: scanType == ScanTypePlagiarism || scanType == ScanTypeAll,
	}
}

type BatchScanItem struct {
	Id      string   `json:"id,omitempty"`
	Content string   `json:"content"`
	Type    ScanType `json:"type"`
}

type BatchScanRequest struct {
	Items []BatchScanItem `json:"items"`
}

// CreateScanReq is the dashboard's scan request body for pasted text.
type CreateScanReq struct {
	Content     string   `json:"content"`
	Title       string   `json:"title,omitempty"`
	ScanType    ScanType `json:"scanType,omitempty"`
	ExcludedURL string   `json:"excludedUrl,omitempty"`
}

// CreateScanResponse carries the raw result back to the dashboard together
// with the stored file locations.
type CreateScanResponse struct {
	Id            string          `json:"id"`
	FormattedPath string          `json:"formattedPath"`
	RawPath       string          `json:"rawPath,omitempty"`
	Fingerprint   string          `json:"fingerprint,omitempty"`
	Result        json.RawMessage `json:"result"`
	Insights      []string        `json:"insights,omitempty"`
}
