// Package imageref turns image files into self-contained data URI references
// and back. A data URI survives restarts, so it is the only reference form
// folio persists.
package imageref

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"
	"strings"

	// Decoders registered for format detection.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// DefaultMaxBytes caps the size of a single encoded file.
const DefaultMaxBytes int64 = 20 << 20

var (
	// ErrNotImage is returned for files that do not decode as a supported image.
	ErrNotImage = errors.New("not a supported image")
	// ErrTooLarge is returned for files above the encoder's size cap.
	ErrTooLarge = errors.New("image too large")
	// ErrNotDataURI is returned when a reference cannot be decoded locally.
	ErrNotDataURI = errors.New("not a base64 data URI")
)

// Encoder converts a file into a displayable reference.
type Encoder interface {
	Encode(ctx context.Context, path string) (string, error)
}

// FileEncoder reads image files from the local filesystem.
type FileEncoder struct {
	// MaxBytes caps the file size; zero uses DefaultMaxBytes.
	MaxBytes int64
}

var _ Encoder = FileEncoder{}

// Encode reads path and returns a data URI for it.
func (e FileEncoder) Encode(ctx context.Context, path string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	limit := e.MaxBytes
	if limit <= 0 {
		limit = DefaultMaxBytes
	}

	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open image: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, limit+1))
	if err != nil {
		return "", fmt.Errorf("read image: %w", err)
	}
	if int64(len(data)) > limit {
		return "", fmt.Errorf("%w: %s exceeds %d bytes", ErrTooLarge, filepath.Base(path), limit)
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return EncodeBytes(data)
}

// EncodeBytes returns a data URI for raw image bytes.
func EncodeBytes(data []byte) (string, error) {
	_, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrNotImage, err)
	}
	mime := "image/" + format
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}

// IsDurable reports whether ref can be resolved after a restart.
func IsDurable(ref string) bool {
	return strings.HasPrefix(ref, "data:")
}

// Decode splits a base64 data URI into its media type and payload.
func Decode(ref string) (mime string, data []byte, err error) {
	rest, ok := strings.CutPrefix(ref, "data:")
	if !ok {
		return "", nil, ErrNotDataURI
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return "", nil, ErrNotDataURI
	}
	mime, isBase64 := strings.CutSuffix(meta, ";base64")
	if !isBase64 {
		return "", nil, ErrNotDataURI
	}
	data, err = base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %v", ErrNotDataURI, err)
	}
	if mime == "" {
		mime = "application/octet-stream"
	}
	return mime, data, nil
}

var extensions = map[string]string{
	"image/png":  ".png",
	"image/jpeg": ".jpg",
	"image/gif":  ".gif",
	"image/bmp":  ".bmp",
	"image/webp": ".webp",
	"image/tiff": ".tiff",
}

// Extension returns the file extension for mime, or ".bin".
func Extension(mime string) string {
	if ext, ok := extensions[strings.ToLower(mime)]; ok {
		return ext
	}
	return ".bin"
}

// Size returns the decoded payload size of ref, or -1 when ref is not a data URI.
func Size(ref string) int {
	_, data, err := Decode(ref)
	if err != nil {
		return -1
	}
	return len(data)
}

// MediaType returns the media type of a data URI without decoding it.
func MediaType(ref string) string {
	rest, ok := strings.CutPrefix(ref, "data:")
	if !ok {
		return ""
	}
	meta, _, _ := strings.Cut(rest, ",")
	mime, _, _ := strings.Cut(meta, ";")
	return mime
}

// Export writes the image behind ref into dir as base plus the matching
// extension and returns the written path.
func Export(ref, dir, base string) (string, error) {
	mime, data, err := Decode(ref)
	if err != nil {
		return "", err
	}
	name := sanitizeBase(base)
	if name == "" {
		name = "image"
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create export dir: %w", err)
	}
	path := filepath.Join(dir, name+Extension(mime))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write export: %w", err)
	}
	return path, nil
}

func sanitizeBase(base string) string {
	var b strings.Builder
	for _, r := range strings.TrimSpace(base) {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	return b.String()
}
