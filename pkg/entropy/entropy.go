package entropy

import (
	"errors"
	"math"
	"sort"

	"stegtriage/pkg/models"
)

// ErrEmptyInput is returned when there is nothing to analyze.
var ErrEmptyInput = errors.New("entropy: empty input")

const (
	// Normalized entropy above highThreshold is typical of encrypted or
	// compressed appended data; between the two thresholds it only warrants
	// a closer look.
	highThreshold   = 0.95
	mediumThreshold = 0.85

	histogramTop = 10
)

// Analyze computes the Shannon entropy of data over a 256-bin byte
// histogram and classifies the suspicion level. It has no side effects.
func Analyze(data []byte) (*models.EntropyReport, error) {
	if len(data) == 0 {
		return nil, ErrEmptyInput
	}

	var counts [256]uint64
	for _, b := range data {
		counts[b]++
	}

	size := float64(len(data))
	shannon := 0.0
	for _, c := range counts {
		if c == 0 {
			continue
		}
		p := float64(c) / size
		shannon -= p * math.Log2(p)
	}
	normalized := shannon / 8.0

	level := models.LevelLow
	switch {
	case normalized > highThreshold:
		level = models.LevelHigh
	case normalized > mediumThreshold:
		level = models.LevelMedium
	}

	return &models.EntropyReport{
		FileSize:          uint64(len(data)),
		ShannonEntropy:    shannon,
		NormalizedEntropy: normalized,
		SuspicionLevel:    level,
		TopBytes:          topHistogram(&counts),
	}, nil
}

// topHistogram returns the most frequent byte values, count descending,
// ties broken by byte value ascending.
func topHistogram(counts *[256]uint64) []models.ByteCount {
	all := make([]models.ByteCount, 0, 256)
	for v, c := range counts {
		if c > 0 {
			all = append(all, models.ByteCount{Value: byte(v), Count: c})
		}
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].Count != all[j].Count {
			return all[i].Count > all[j].Count
		}
		return all[i].Value < all[j].Value
	})
	if len(all) > histogramTop {
		all = all[:histogramTop]
	}
	return all
}
