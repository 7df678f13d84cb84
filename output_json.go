package cssprefix

import (
	"encoding/json"
	"io"
	"time"

	"github.com/google/uuid"
)

// JSONOutput represents the structured JSON export schema
type JSONOutput struct {
	Version    string          `json:"version"`
	RunID      string          `json:"run_id"`
	Timestamp  string          `json:"timestamp"`
	Summary    JSONSummary     `json:"summary"`
	Properties []PropertyCount `json:"properties"`
	Changes    []FileChange    `json:"changes"`
	Warnings   []string        `json:"warnings"`
}

// JSONSummary contains file and declaration counts
type JSONSummary struct {
	FilesDiscovered int  `json:"files_discovered"`
	FilesScanned    int  `json:"files_scanned"`
	FilesSkipped    int  `json:"files_skipped"`
	FilesChanged    int  `json:"files_changed"`
	FilesFailed     int  `json:"files_failed"`
	Declarations    int  `json:"declarations"`
	Expanded        int  `json:"expanded"`
	Emitted         int  `json:"emitted"`
	DryRun          bool `json:"dry_run"`
}

// WriteJSON writes the processing result as JSON
func WriteJSON(w io.Writer, result *ProcessResult) error {
	output := buildJSONOutput(result)
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}

// buildJSONOutput converts ProcessResult to JSONOutput
func buildJSONOutput(result *ProcessResult) JSONOutput {
	// Empty slices encode as [] rather than null
	changes := result.Changes
	if changes == nil {
		changes = []FileChange{}
	}
	warnings := result.Warnings
	if warnings == nil {
		warnings = []string{}
	}

	return JSONOutput{
		Version:   "1.0",
		RunID:     uuid.NewString(),
		Timestamp: time.Now().Format(time.RFC3339),
		Summary: JSONSummary{
			FilesDiscovered: result.FilesDiscovered,
			FilesScanned:    result.FilesScanned,
			FilesSkipped:    result.FilesSkipped,
			FilesChanged:    result.FilesChanged,
			FilesFailed:     result.FilesFailed,
			Declarations:    result.Declarations,
			Expanded:        result.Expanded,
			Emitted:         result.Emitted,
			DryRun:          result.DryRun,
		},
		Properties: propertyCounts(result.Changes),
		Changes:    changes,
		Warnings:   warnings,
	}
}
