package domain

import "encoding/json"

// ExportVersion is the document version written by the API.
const ExportVersion = "1.0"

// ExportDocument is the data export/import document.
// Entries are kept raw so that unknown fields survive a round trip.
type ExportDocument struct {
	Version        string            `json:"version"`
	ExportedAt     string            `json:"exported_at,omitempty"`
	Tasks          []json.RawMessage `json:"tasks,omitempty"`
	JournalEntries []json.RawMessage `json:"journal_entries,omitempty"`
	Settings       []json.RawMessage `json:"settings,omitempty"`
}

// ImportSummary counts what an import document contains.
type ImportSummary struct {
	Tasks          int
	JournalEntries int
	Settings       bool
}

// Summary returns the counts shown before an import proceeds.
func (d *ExportDocument) Summary() ImportSummary {
	return ImportSummary{
		Tasks:          len(d.Tasks),
		JournalEntries: len(d.JournalEntries),
		Settings:       len(d.Settings) > 0,
	}
}

// ImportResult is the API response to an import.
type ImportResult struct {
	ImportedCount map[string]int `json:"imported_count,omitempty"`
	Message       string         `json:"message"`
	Conflicts     []string       `json:"conflicts,omitempty"`
}
