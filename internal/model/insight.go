package model

// UploadResult is what the insight backend returns for one uploaded document.
type UploadResult struct {
	Filename string `json:"filename"`
	Summary  string `json:"summary"`
}

// InsightRecord is one historical entry. Timestamp stays as the backend sent
// it; it is only parsed for display.
type InsightRecord struct {
	ID        uint   `json:"id,omitempty"`
	Filename  string `json:"filename"`
	Summary   string `json:"summary"`
	Timestamp string `json:"timestamp"`
}
