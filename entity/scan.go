package entity

import "time"

// StoredScan describes one persisted scan pair on disk. The id is the shared
// file basename, e.g. "scan_result_20250115_104501".
type StoredScan struct {
	Id              string    `json:"id"`
	Title           string    `json:"title,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
	FormattedPath   string    `json:"formattedPath"`
	RawPath         string    `json:"rawPath,omitempty"`
	AIProbability   *float64  `json:"aiProbability,omitempty"`
	PlagiarismScore *float64  `json:"plagiarismScore,omitempty"`
	ContentChecksum string    `json:"contentChecksum,omitempty"`
}

// ScanFiles is returned by a save: paths of the formatted report and the raw
// JSON. RawPath is empty when raw saving is disabled.
type ScanFiles struct {
	Id            string `json:"id"`
	FormattedPath string `json:"formattedPath"`
	RawPath       string `json:"rawPath,omitempty"`
}
