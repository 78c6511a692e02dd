package models

// Level expresses the low/medium/high scale used for both entropy suspicion
// and signature confidence.
type Level string

const (
	LevelLow    Level = "low"
	LevelMedium Level = "medium"
	LevelHigh   Level = "high"
)

// ByteCount pairs a byte value with its occurrence count.
type ByteCount struct {
	Value byte   `json:"value"`
	Count uint64 `json:"count"`
}

// EntropyReport holds the statistical triage signal for one file. It is
// never modified after Analyze returns it.
type EntropyReport struct {
	FileSize          uint64      `json:"file_size"`
	ShannonEntropy    float64     `json:"shannon_entropy"`
	NormalizedEntropy float64     `json:"normalized_entropy"`
	SuspicionLevel    Level       `json:"suspicion_level"`
	TopBytes          []ByteCount `json:"top_byte_histogram"`
}

// SignatureKind classifies what a signature match represents.
type SignatureKind string

const (
	SigCustomMarker SignatureKind = "custom_marker"
	SigEmbeddedFile SignatureKind = "embedded_file"
	SigSizeAnomaly  SignatureKind = "size_anomaly"
)

// SignatureMatch is a single marker or magic-number hit.
type SignatureMatch struct {
	Kind        SignatureKind `json:"kind"`
	Confidence  Level         `json:"confidence"`
	Description string        `json:"description"`
}

// SignatureReport lists matches in scan order. OverallConfidence is high
// exactly when Matches is non-empty.
type SignatureReport struct {
	Matches           []SignatureMatch `json:"matches"`
	OverallConfidence Level            `json:"overall_confidence"`
}

// PayloadHeader is the parsed embedding header.
type PayloadHeader struct {
	Filename     string
	ExpectedSize uint64
	Checksum     [16]byte
}

// EmbeddingLayout is the transient result of decoding an embedded stream.
type EmbeddingLayout struct {
	Cover  []byte
	Secret []byte
	Header PayloadHeader
}

// ContentType categorizes recovered payload bytes.
type ContentType string

const (
	ContentZipArchive  ContentType = "ZIP Archive"
	ContentPdfDocument ContentType = "PDF Document"
	ContentPngImage    ContentType = "PNG Image"
	ContentJpegImage   ContentType = "JPEG Image"
	ContentText        ContentType = "Text Content"
	ContentBinary      ContentType = "Binary Data"
)

// EntryKind distinguishes the recovered secret from the recovered cover.
type EntryKind string

const (
	EntryHiddenFile    EntryKind = "hidden_file"
	EntryOriginalCover EntryKind = "original_cover"
)

// ExtractedEntry describes one file written during extraction.
type ExtractedEntry struct {
	Kind     EntryKind `json:"type"`
	Path     string    `json:"path"`
	Filename string    `json:"filename"`
	Size     int64     `json:"size"`
}

// PayloadAnalysis describes a recovered secret payload. ImageWidth and
// ImageHeight are set only when the payload header decodes as an image.
type PayloadAnalysis struct {
	PayloadSize int              `json:"payload_size"`
	ContentType ContentType      `json:"content_type"`
	ContentHash string           `json:"content_hash"`
	Preview     string           `json:"payload_preview"`
	ImageWidth  int              `json:"image_width,omitempty"`
	ImageHeight int              `json:"image_height,omitempty"`
	Entries     []ExtractedEntry `json:"extracted_files"`
}

// Verdict is the terminal classification of a scanned file.
type Verdict string

const (
	VerdictClean      Verdict = "CLEAN"
	VerdictSuspicious Verdict = "SUSPICIOUS"
	VerdictConfirmed  Verdict = "CONFIRMED"
	VerdictErrored    Verdict = "ERRORED"
)

// Narratives carries the optional per-stage service text. Empty strings
// mean the service was unavailable or failed; verdicts are unaffected.
type Narratives struct {
	Scan    string `json:"scan,omitempty"`
	Payload string `json:"payload,omitempty"`
	Report  string `json:"report,omitempty"`
}

// FileVerdictRecord is the complete per-file analysis outcome. Extraction
// fields are populated only when NeedsDeepAnalysis is true; clean records
// never carry extraction data.
type FileVerdictRecord struct {
	FilePath          string           `json:"file_path"`
	Entropy           *EntropyReport   `json:"entropy_report,omitempty"`
	Signatures        *SignatureReport `json:"signature_report,omitempty"`
	NeedsDeepAnalysis bool             `json:"needs_deep_analysis"`
	ExtractionError   string           `json:"extraction_error,omitempty"`
	Payload           *PayloadAnalysis `json:"payload_analysis,omitempty"`
	Verdict           Verdict          `json:"verdict"`
	Narratives        Narratives       `json:"narratives"`
	Error             string           `json:"error,omitempty"`
}

// BatchResult aggregates a run into verdict buckets plus the flat list of
// everything extracted. Callers are responsible for serializing Add.
type BatchResult struct {
	Clean      []*FileVerdictRecord
	Suspicious []*FileVerdictRecord
	Confirmed  []*FileVerdictRecord
	Errored    []*FileVerdictRecord
	Extracted  []ExtractedEntry
}

// Add routes a record into its bucket and accumulates extracted entries.
func (b *BatchResult) Add(rec *FileVerdictRecord) {
	switch rec.Verdict {
	case VerdictClean:
		b.Clean = append(b.Clean, rec)
	case VerdictSuspicious:
		b.Suspicious = append(b.Suspicious, rec)
	case VerdictConfirmed:
		b.Confirmed = append(b.Confirmed, rec)
		if rec.Payload != nil {
			b.Extracted = append(b.Extracted, rec.Payload.Entries...)
		}
	default:
		b.Errored = append(b.Errored, rec)
	}
}

// Total counts records across the three verdict buckets. Errored records
// are tracked separately.
func (b *BatchResult) Total() int {
	return len(b.Clean) + len(b.Suspicious) + len(b.Confirmed)
}
