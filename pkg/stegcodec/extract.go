package stegcodec

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"path/filepath"

	"stegtriage/pkg/filehandler"
	"stegtriage/pkg/models"
)

// Extract decodes data read from sourcePath and writes the recovered
// secret (under its embedded name) and the recovered cover (as
// original_<source-basename>) into a per-source subdirectory of outDir, so
// identical embedded filenames from unrelated sources never collide.
func Extract(data []byte, sourcePath, outDir string) (*models.EmbeddingLayout, []models.ExtractedEntry, error) {
	layout, err := Decode(data)
	if err != nil {
		return nil, nil, err
	}

	base := filepath.Base(sourcePath)
	destDir := filepath.Join(outDir, fmt.Sprintf("%s_%s", base, sourceID(sourcePath)))
	if err := filehandler.EnsureDir(destDir); err != nil {
		return nil, nil, fmt.Errorf("failed to create extraction dir: %w", err)
	}

	// Embedded filenames are attacker-controlled; keep only the base name
	// so a hostile header cannot write outside destDir.
	secretName := sanitizeName(layout.Header.Filename)
	if secretName == "" {
		secretName = "payload.bin"
	}
	secretPath := filepath.Join(destDir, secretName)
	if err := filehandler.SaveFileAtomic(layout.Secret, secretPath); err != nil {
		return nil, nil, fmt.Errorf("failed to write secret: %w", err)
	}

	coverName := "original_" + base
	coverPath := filepath.Join(destDir, coverName)
	if err := filehandler.SaveFileAtomic(layout.Cover, coverPath); err != nil {
		return nil, nil, fmt.Errorf("failed to write cover: %w", err)
	}

	entries := []models.ExtractedEntry{
		{Kind: models.EntryHiddenFile, Path: secretPath, Filename: secretName, Size: int64(len(layout.Secret))},
		{Kind: models.EntryOriginalCover, Path: coverPath, Filename: coverName, Size: int64(len(layout.Cover))},
	}
	return layout, entries, nil
}

// sourceID derives a short stable identifier from the full source path, so
// same-named sources in different directories keep distinct output dirs.
func sourceID(sourcePath string) string {
	sum := md5.Sum([]byte(sourcePath))
	return hex.EncodeToString(sum[:4])
}

// sanitizeName strips directory components from an embedded filename.
func sanitizeName(name string) string {
	name = filepath.Base(filepath.Clean(name))
	if name == "." || name == ".." || name == string(filepath.Separator) {
		return ""
	}
	return name
}
