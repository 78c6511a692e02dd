// Package stegcodec decodes the marker-based embedding layout:
//
//	cover_bytes MARKER header_size:u32 header secret_bytes
//	header := filename_len:u32 filename expected_size:u64 checksum[16]
//
// Integers are little-endian and the checksum is the MD5 digest of the
// secret bytes only. Every read is bounds-checked so truncated or hostile
// input can never fault.
package stegcodec

import (
	"bytes"
	"crypto/md5"
	"encoding/binary"
	"errors"
	"fmt"
	"unicode/utf8"

	"stegtriage/pkg/models"
)

// Marker separates cover bytes from the embedded payload section.
const Marker = "STEG_MARKER_v2_"

const (
	headerSizeField   = 4
	filenameLenField  = 4
	expectedSizeField = 8
	checksumField     = md5.Size
)

var (
	ErrNoMarker         = errors.New("stegcodec: no embedding marker found")
	ErrMalformedPayload = errors.New("stegcodec: malformed payload header")
	ErrInvalidEncoding  = errors.New("stegcodec: embedded filename is not valid UTF-8")
	ErrChecksumMismatch = errors.New("stegcodec: payload checksum mismatch")
)

// SizeMismatchError reports a secret section whose length disagrees with
// the expected size declared in the header.
type SizeMismatchError struct {
	Expected uint64
	Actual   uint64
}

func (e *SizeMismatchError) Error() string {
	return fmt.Sprintf("stegcodec: size mismatch: expected %d bytes, got %d bytes", e.Expected, e.Actual)
}

// Decode parses and validates an embedded stream. It never mutates data;
// the returned layout aliases it.
func Decode(data []byte) (*models.EmbeddingLayout, error) {
	idx := bytes.Index(data, []byte(Marker))
	if idx < 0 {
		return nil, ErrNoMarker
	}

	cover := data[:idx]
	section := data[idx+len(Marker):]

	if len(section) < headerSizeField {
		return nil, ErrMalformedPayload
	}
	headerSize := binary.LittleEndian.Uint32(section[:headerSizeField])
	rest := section[headerSizeField:]
	if uint64(len(rest)) < uint64(headerSize) {
		return nil, ErrMalformedPayload
	}
	header := rest[:headerSize]
	secret := rest[headerSize:]

	if len(header) < filenameLenField {
		return nil, ErrMalformedPayload
	}
	nameLen := binary.LittleEndian.Uint32(header[:filenameLenField])
	header = header[filenameLenField:]
	if uint64(len(header)) < uint64(nameLen)+expectedSizeField+checksumField {
		return nil, ErrMalformedPayload
	}
	nameBytes := header[:nameLen]
	if !utf8.Valid(nameBytes) {
		return nil, ErrInvalidEncoding
	}
	header = header[nameLen:]

	expected := binary.LittleEndian.Uint64(header[:expectedSizeField])
	var checksum [md5.Size]byte
	copy(checksum[:], header[expectedSizeField:expectedSizeField+checksumField])

	if uint64(len(secret)) != expected {
		return nil, &SizeMismatchError{Expected: expected, Actual: uint64(len(secret))}
	}
	if md5.Sum(secret) != checksum {
		return nil, ErrChecksumMismatch
	}

	return &models.EmbeddingLayout{
		Cover:  cover,
		Secret: secret,
		Header: models.PayloadHeader{
			Filename:     string(nameBytes),
			ExpectedSize: expected,
			Checksum:     checksum,
		},
	}, nil
}
