package signature

import (
	"bytes"
	"fmt"

	"stegtriage/pkg/models"
	"stegtriage/pkg/stegcodec"
)

// containerSignature is a known container magic number checked after the
// custom marker.
type containerSignature struct {
	name  string
	magic []byte
}

// Checked in this exact order; the scan must never depend on map iteration.
var containerSignatures = []containerSignature{
	{name: "ZIP", magic: []byte("PK\x03\x04")},
	{name: "PDF", magic: []byte("%PDF")},
}

// Scan runs the ordered signature checks over data: the custom embedding
// marker first, then the known container magics. Overall confidence is
// high exactly when something matched.
func Scan(data []byte) *models.SignatureReport {
	report := &models.SignatureReport{OverallConfidence: models.LevelLow}

	if bytes.Contains(data, []byte(stegcodec.Marker)) {
		report.Matches = append(report.Matches, models.SignatureMatch{
			Kind:        models.SigCustomMarker,
			Confidence:  models.LevelHigh,
			Description: "Detected custom steganography marker",
		})
	}

	for _, sig := range containerSignatures {
		if bytes.Contains(data, sig.magic) {
			report.Matches = append(report.Matches, models.SignatureMatch{
				Kind:        models.SigEmbeddedFile,
				Confidence:  models.LevelMedium,
				Description: fmt.Sprintf("Detected %s signature", sig.name),
			})
		}
	}

	if len(report.Matches) > 0 {
		report.OverallConfidence = models.LevelHigh
	}
	return report
}
