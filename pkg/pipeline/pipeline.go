// Package pipeline runs the per-file triage state machine:
// scanned -> skipped or extracting -> clean, suspicious, confirmed or
// errored. Verdicts are terminal and never revised.
package pipeline

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"stegtriage/pkg/classify"
	"stegtriage/pkg/console"
	"stegtriage/pkg/entropy"
	"stegtriage/pkg/filehandler"
	"stegtriage/pkg/models"
	"stegtriage/pkg/narrative"
	"stegtriage/pkg/signature"
	"stegtriage/pkg/stegcodec"
)

// narrativeTimeout bounds each narrative call so a slow model can never
// stall file analysis.
const narrativeTimeout = 30 * time.Second

// Pipeline analyzes single files. Safe for concurrent use.
type Pipeline struct {
	log         *console.Logger
	gen         narrative.Generator
	narrativeOn bool
}

// New builds a Pipeline. The narrative service is probed once here; an
// unavailable service simply disables narratives for the run.
func New(log *console.Logger, gen narrative.Generator) *Pipeline {
	if gen == nil {
		gen = narrative.Disabled{}
	}
	return &Pipeline{
		log:         log,
		gen:         gen,
		narrativeOn: gen.Available(),
	}
}

// NarrativeEnabled reports whether narrative text will be generated.
func (p *Pipeline) NarrativeEnabled() bool {
	return p.narrativeOn
}

// AnalyzeFile triages one file and, when warranted, extracts its payload
// into outDir. It always returns a record: format and integrity failures
// degrade the verdict to suspicious, and unexpected faults become an
// errored record instead of propagating.
func (p *Pipeline) AnalyzeFile(ctx context.Context, filePath, outDir string) (rec *models.FileVerdictRecord) {
	rec = &models.FileVerdictRecord{FilePath: filePath}

	defer func() {
		if r := recover(); r != nil {
			rec = &models.FileVerdictRecord{
				FilePath: filePath,
				Verdict:  models.VerdictErrored,
				Error:    fmt.Sprintf("unexpected fault: %v", r),
			}
		}
	}()

	data, err := filehandler.ReadFileBytes(filePath)
	if err != nil {
		rec.Verdict = models.VerdictErrored
		rec.Error = err.Error()
		return rec
	}

	entropyReport, err := entropy.Analyze(data)
	if err != nil {
		rec.Verdict = models.VerdictErrored
		rec.Error = err.Error()
		return rec
	}
	rec.Entropy = entropyReport
	rec.Signatures = signature.Scan(data)

	rec.NeedsDeepAnalysis = entropyReport.SuspicionLevel == models.LevelMedium ||
		entropyReport.SuspicionLevel == models.LevelHigh ||
		len(rec.Signatures.Matches) > 0

	rec.Narratives.Scan = p.narrate(ctx, scanPrompt(rec), scanSystem)

	if !rec.NeedsDeepAnalysis {
		rec.Verdict = models.VerdictClean
		rec.Narratives.Report = p.narrate(ctx, reportPrompt(rec), reportSystem)
		return rec
	}

	layout, entries, err := stegcodec.Extract(data, filePath, outDir)
	if err != nil {
		rec.Verdict = models.VerdictSuspicious
		rec.ExtractionError = err.Error()
		p.log.Warnf("Extraction failed for %s: %v", filepath.Base(filePath), err)
	} else {
		rec.Verdict = models.VerdictConfirmed
		analysis := classify.Classify(layout.Secret)
		analysis.Entries = entries
		rec.Payload = analysis
		rec.Narratives.Payload = p.narrate(ctx, payloadPrompt(rec), payloadSystem)
		p.log.Alertf("Confirmed hidden payload in %s (%s, %d bytes)",
			filepath.Base(filePath), analysis.ContentType, analysis.PayloadSize)
	}

	rec.Narratives.Report = p.narrate(ctx, reportPrompt(rec), reportSystem)
	return rec
}

func (p *Pipeline) narrate(ctx context.Context, prompt, system string) string {
	if !p.narrativeOn {
		return ""
	}
	nctx, cancel := context.WithTimeout(ctx, narrativeTimeout)
	defer cancel()
	return p.gen.Generate(nctx, prompt, system)
}
