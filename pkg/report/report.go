// Package report turns a finished batch into the consumer-facing run
// report: a JSON document on disk and a console summary. It only reads
// the batch; verdicts are already final.
package report

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"stegtriage/pkg/console"
	"stegtriage/pkg/models"
)

// Summary carries the run counters.
type Summary struct {
	TotalFiles      int `json:"total_files"`
	CleanFiles      int `json:"clean_files"`
	SuspiciousFiles int `json:"suspicious_files"`
	ConfirmedFiles  int `json:"confirmed_steg_files"`
	Errors          int `json:"errors"`
	ExtractedFiles  int `json:"extracted_files"`
}

// ConfirmedCase summarizes one confirmed extraction.
type ConfirmedCase struct {
	File        string             `json:"file"`
	PayloadSize int                `json:"payload_size"`
	ContentType models.ContentType `json:"content_type"`
	ContentHash string             `json:"content_hash"`
}

// FileError pairs a failed file with its error text.
type FileError struct {
	File  string `json:"file"`
	Error string `json:"error"`
}

// RunReport is the JSON document written at the end of a batch.
type RunReport struct {
	Timestamp string                  `json:"analysis_timestamp"`
	SourceDir string                  `json:"source_folder,omitempty"`
	OutputDir string                  `json:"output_folder"`
	Summary   Summary                 `json:"summary"`
	Extracted []models.ExtractedEntry `json:"extracted_files"`
	Confirmed []ConfirmedCase         `json:"confirmed_cases"`
	Errors    []FileError             `json:"errors"`
}

// BuildSummary derives the counters from a finished batch.
func BuildSummary(batch *models.BatchResult) Summary {
	return Summary{
		TotalFiles:      batch.Total(),
		CleanFiles:      len(batch.Clean),
		SuspiciousFiles: len(batch.Suspicious),
		ConfirmedFiles:  len(batch.Confirmed),
		Errors:          len(batch.Errored),
		ExtractedFiles:  len(batch.Extracted),
	}
}

// Build assembles the full run report.
func Build(batch *models.BatchResult, sourceDir, outputDir string) *RunReport {
	rep := &RunReport{
		Timestamp: time.Now().Format("2006-01-02 15:04:05"),
		SourceDir: sourceDir,
		OutputDir: outputDir,
		Summary:   BuildSummary(batch),
		Extracted: append([]models.ExtractedEntry(nil), batch.Extracted...),
	}
	for _, rec := range batch.Confirmed {
		rep.Confirmed = append(rep.Confirmed, ConfirmedCase{
			File:        rec.FilePath,
			PayloadSize: rec.Payload.PayloadSize,
			ContentType: rec.Payload.ContentType,
			ContentHash: rec.Payload.ContentHash,
		})
	}
	for _, rec := range batch.Errored {
		rep.Errors = append(rep.Errors, FileError{File: rec.FilePath, Error: rec.Error})
	}
	return rep
}

// WriteJSON writes the run report to path.
func WriteJSON(rep *RunReport, path string) error {
	data, err := json.MarshalIndent(rep, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// PrintSummary renders the run outcome on the console: bucket counts,
// confirmed cases, extracted files and per-file errors.
func PrintSummary(log *console.Logger, batch *models.BatchResult, outDir string) {
	log.Printf("\n=== Analysis Summary ===\n")
	log.Printf("Total files analyzed: %d\n", batch.Total())
	log.Successf("Clean files: %d", len(batch.Clean))

	if len(batch.Suspicious) > 0 {
		log.Warnf("Suspicious files: %d", len(batch.Suspicious))
	}

	if len(batch.Confirmed) > 0 {
		log.Alertf("Confirmed steganography: %d", len(batch.Confirmed))
		for _, rec := range batch.Confirmed {
			log.Printf("- %s (%s, %d bytes)\n",
				filepath.Base(rec.FilePath), rec.Payload.ContentType, rec.Payload.PayloadSize)
		}
	}

	if len(batch.Errored) > 0 {
		log.Errorf("Analysis errors: %d", len(batch.Errored))
		for _, rec := range batch.Errored {
			log.Printf("- %s: %s\n", filepath.Base(rec.FilePath), rec.Error)
		}
	}

	if len(batch.Extracted) > 0 {
		log.Printf("\nExtracted files (%d) in %s:\n", len(batch.Extracted), outDir)
		for _, e := range batch.Extracted {
			log.Printf("- [%s] %s (%d bytes)\n", e.Kind, e.Filename, e.Size)
		}
	}
}
