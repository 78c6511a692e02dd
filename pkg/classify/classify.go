package classify

import (
	"bytes"
	"crypto/md5"
	"encoding/hex"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"strings"

	// BMP and WebP header decoders for the dimension probe; such payloads
	// fall through the prefix rules but can still be measured.
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"

	"stegtriage/pkg/models"
)

const (
	previewBytes   = 100
	textProbeBytes = 500
)

// stopWords mark a lossy text decode as natural-language content.
var stopWords = []string{"the", "and", "is", "to"}

// First match wins.
var prefixRules = []struct {
	prefix []byte
	ctype  models.ContentType
}{
	{[]byte("PK\x03\x04"), models.ContentZipArchive},
	{[]byte("%PDF"), models.ContentPdfDocument},
	{[]byte("\x89PNG\r\n\x1a\n"), models.ContentPngImage},
	{[]byte{0xFF, 0xD8}, models.ContentJpegImage},
}

// Classify sniffs recovered payload bytes into a content category and
// computes the content hash and a short hex preview. It never fails:
// anything that matches no rule is reported as binary data.
func Classify(secret []byte) *models.PayloadAnalysis {
	analysis := &models.PayloadAnalysis{
		PayloadSize: len(secret),
		ContentType: sniffType(secret),
		ContentHash: hashHex(secret),
		Preview:     previewHex(secret),
	}

	if w, h, ok := probeImage(secret); ok {
		analysis.ImageWidth = w
		analysis.ImageHeight = h
	}

	return analysis
}

func sniffType(secret []byte) models.ContentType {
	for _, rule := range prefixRules {
		if bytes.HasPrefix(secret, rule.prefix) {
			return rule.ctype
		}
	}
	if isTextual(secret) {
		return models.ContentText
	}
	return models.ContentBinary
}

func hashHex(data []byte) string {
	sum := md5.Sum(data)
	return hex.EncodeToString(sum[:])
}

func previewHex(data []byte) string {
	if len(data) > previewBytes {
		data = data[:previewBytes]
	}
	return hex.EncodeToString(data)
}

// isTextual does a lossy decode of the leading bytes, dropping invalid
// UTF-8, and looks for common English stop words. Unlike the strict
// filename decoding in the codec this can never fail.
func isTextual(data []byte) bool {
	if len(data) > textProbeBytes {
		data = data[:textProbeBytes]
	}
	text := strings.ToLower(strings.ToValidUTF8(string(data), ""))
	for _, w := range stopWords {
		if strings.Contains(text, w) {
			return true
		}
	}
	return false
}

// probeImage reads only the image header. Failures are not errors; most
// payloads are not images.
func probeImage(data []byte) (width, height int, ok bool) {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return 0, 0, false
	}
	return cfg.Width, cfg.Height, true
}
