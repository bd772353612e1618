package models

import "time"

// StatusResponse reports the loaded corpus and matcher settings.
type StatusResponse struct {
	Ready       bool          `json:"ready"`
	Entries     int           `json:"entries"`
	Sources     []string      `json:"sources,omitempty"`
	SourceBytes int64         `json:"source_bytes"`
	LoadedAt    time.Time     `json:"loaded_at"`
	Threshold   float64       `json:"threshold"`
	Import      *ImportRecord `json:"import,omitempty"`
	LastError   string        `json:"last_error,omitempty"`
}

// ImportRecord describes the latest import into a corpus database.
type ImportRecord struct {
	Database   string    `json:"database,omitempty"`
	Source     string    `json:"source"`
	Entries    int       `json:"entries"`
	Stored     int64     `json:"stored"`
	ImportedAt time.Time `json:"imported_at"`
}
