package pipeline

import (
	"fmt"
	"path/filepath"

	"stegtriage/pkg/models"
)

const (
	scanSystem    = "You are a digital forensics expert specializing in steganography detection."
	payloadSystem = "You are a cybersecurity analyst specializing in hidden payload analysis."
	reportSystem  = "You are a professional digital forensics report writer."
)

func scanPrompt(rec *models.FileVerdictRecord) string {
	return fmt.Sprintf(`Assess these steganography triage results for %s.

Entropy: %.4f bits/byte (normalized %.4f, suspicion %s)
Signature matches: %d (overall confidence %s)

Give a brief technical assessment of whether this file looks suspicious.`,
		filepath.Base(rec.FilePath),
		rec.Entropy.ShannonEntropy, rec.Entropy.NormalizedEntropy, rec.Entropy.SuspicionLevel,
		len(rec.Signatures.Matches), rec.Signatures.OverallConfidence)
}

func payloadPrompt(rec *models.FileVerdictRecord) string {
	return fmt.Sprintf(`Analyze this extracted hidden payload.

File: %s
Payload size: %d bytes
Content type: %s
Hash: %s

Describe what might be hidden and the potential risks.`,
		filepath.Base(rec.FilePath),
		rec.Payload.PayloadSize, rec.Payload.ContentType, rec.Payload.ContentHash)
}

func reportPrompt(rec *models.FileVerdictRecord) string {
	return fmt.Sprintf(`Write a short forensic summary for %s.

Verdict: %s
Entropy suspicion: %s
Signature matches: %d
Extraction error: %s

Cover the findings, the risk, and recommended next steps.`,
		filepath.Base(rec.FilePath), rec.Verdict, rec.Entropy.SuspicionLevel,
		len(rec.Signatures.Matches), rec.ExtractionError)
}
