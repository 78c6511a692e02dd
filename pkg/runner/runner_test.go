package runner

import (
	"bytes"
	"context"
	"crypto/md5"
	"encoding/binary"
	"io"
	"os"
	"path/filepath"
	"testing"

	"stegtriage/pkg/console"
	"stegtriage/pkg/pipeline"
	"stegtriage/pkg/stegcodec"
)

func newTestRunner(outDir string, workers int) *Runner {
	pipe := pipeline.New(console.New(io.Discard, true), nil)
	return New(Config{Workers: workers, OutDir: outDir}, pipe)
}

func writeFile(t *testing.T, dir, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("writing %s: %v", name, err)
	}
	return path
}

func embeddedStream(cover, secret []byte, filename string) []byte {
	sum := md5.Sum(secret)
	header := binary.LittleEndian.AppendUint32(nil, uint32(len(filename)))
	header = append(header, filename...)
	header = binary.LittleEndian.AppendUint64(header, uint64(len(secret)))
	header = append(header, sum[:]...)

	stream := append([]byte(nil), cover...)
	stream = append(stream, stegcodec.Marker...)
	stream = binary.LittleEndian.AppendUint32(stream, uint32(len(header)))
	stream = append(stream, header...)
	stream = append(stream, secret...)
	return stream
}

func TestRunBuckets(t *testing.T) {
	srcDir := t.TempDir()
	outDir := t.TempDir()

	corrupted := embeddedStream([]byte("c"), []byte("payload"), "p.bin")
	corrupted[len(corrupted)-1] ^= 0xFF

	files := []string{
		writeFile(t, srcDir, "clean.bin", bytes.Repeat([]byte{'A'}, 512)),
		writeFile(t, srcDir, "suspicious.bin", corrupted),
		writeFile(t, srcDir, "confirmed.bin", embeddedStream([]byte("c"), []byte("helloworld"), "x.txt")),
	}

	batch := newTestRunner(outDir, 3).Run(context.Background(), files)

	if len(batch.Clean) != 1 || len(batch.Suspicious) != 1 || len(batch.Confirmed) != 1 {
		t.Fatalf("expected buckets {1,1,1}, got {%d,%d,%d}",
			len(batch.Clean), len(batch.Suspicious), len(batch.Confirmed))
	}
	if len(batch.Errored) != 0 {
		t.Errorf("unexpected errored records: %d", len(batch.Errored))
	}
	if batch.Total() != 3 {
		t.Errorf("expected total 3, got %d", batch.Total())
	}
	if len(batch.Extracted) != 2 {
		t.Errorf("expected 2 extracted entries, got %d", len(batch.Extracted))
	}
	for _, e := range batch.Extracted {
		if _, err := os.Stat(e.Path); err != nil {
			t.Errorf("extracted file missing: %v", err)
		}
	}
}

func TestRunNoFilenameCollisions(t *testing.T) {
	srcDir := t.TempDir()
	outDir := t.TempDir()

	// Unrelated sources embedding the same filename must not overwrite
	// each other in the shared output directory.
	files := []string{
		writeFile(t, srcDir, "a.bin", embeddedStream([]byte("cover-a"), []byte("secret-a"), "x.txt")),
		writeFile(t, srcDir, "b.bin", embeddedStream([]byte("cover-b"), []byte("secret-b"), "x.txt")),
	}

	batch := newTestRunner(outDir, 2).Run(context.Background(), files)

	if len(batch.Confirmed) != 2 {
		t.Fatalf("expected 2 confirmed, got %d", len(batch.Confirmed))
	}
	if len(batch.Extracted) != 4 {
		t.Fatalf("expected 4 extracted entries, got %d", len(batch.Extracted))
	}

	seen := make(map[string]bool)
	for _, e := range batch.Extracted {
		if seen[e.Path] {
			t.Errorf("duplicate extraction path: %s", e.Path)
		}
		seen[e.Path] = true
		if _, err := os.Stat(e.Path); err != nil {
			t.Errorf("extracted file missing: %v", err)
		}
	}
}

func TestRunErroredFileDoesNotAbortBatch(t *testing.T) {
	srcDir := t.TempDir()
	outDir := t.TempDir()

	files := []string{
		writeFile(t, srcDir, "empty.bin", nil),
		writeFile(t, srcDir, "clean.bin", bytes.Repeat([]byte{'B'}, 128)),
	}

	batch := newTestRunner(outDir, 2).Run(context.Background(), files)

	if len(batch.Errored) != 1 {
		t.Errorf("expected 1 errored record, got %d", len(batch.Errored))
	}
	if len(batch.Clean) != 1 {
		t.Errorf("expected 1 clean record, got %d", len(batch.Clean))
	}
}

func TestRunCancelledContextStartsNothing(t *testing.T) {
	srcDir := t.TempDir()
	outDir := t.TempDir()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	files := []string{writeFile(t, srcDir, "clean.bin", bytes.Repeat([]byte{'A'}, 64))}
	batch := newTestRunner(outDir, 2).Run(ctx, files)

	if batch.Total() != 0 || len(batch.Errored) != 0 {
		t.Errorf("cancelled run processed files: %+v", batch)
	}
}
