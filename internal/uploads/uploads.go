// Package uploads stores patient medical report files for later attachment
// to the doctor's appointment request email.
package uploads

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// MaxUploadBytes caps a single medical report file.
const MaxUploadBytes = 16 << 20

var allowedExtensions = map[string]bool{
	".pdf":  true,
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".doc":  true,
	".docx": true,
}

// ErrInvalidType is returned for files outside the allowed set.
var ErrInvalidType = fmt.Errorf("uploads: invalid file type, allowed: pdf, jpg, jpeg, png, doc, docx")

// ErrTooLarge is returned when a file exceeds MaxUploadBytes.
var ErrTooLarge = fmt.Errorf("uploads: file exceeds %d bytes", MaxUploadBytes)

// Store writes uploads under a base directory, one subdirectory per session.
type Store struct {
	dir string
	now func() time.Time
}

// NewStore creates the base directory if needed.
func NewStore(dir string) (*Store, error) {
	if dir == "" {
		return nil, fmt.Errorf("uploads: directory required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("uploads: create directory: %w", err)
	}
	return &Store{dir: dir, now: time.Now}, nil
}

// Save validates and writes one uploaded file. The returned path is suitable
// for storing on the session and re-reading as an email attachment.
func (s *Store) Save(sessionID, filename string, size int64, r io.Reader) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if !allowedExtensions[ext] {
		return "", ErrInvalidType
	}
	if size > MaxUploadBytes {
		return "", ErrTooLarge
	}

	dir := filepath.Join(s.dir, filepath.Base(sessionID))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("uploads: create session directory: %w", err)
	}

	safe := fmt.Sprintf("%s_%s", s.now().Format("20060102_150405"), SanitizeFilename(filename))
	path := filepath.Join(dir, safe)

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return "", fmt.Errorf("uploads: create file: %w", err)
	}
	defer f.Close()

	written, err := io.Copy(f, io.LimitReader(r, MaxUploadBytes+1))
	if err != nil {
		os.Remove(path)
		return "", fmt.Errorf("uploads: write file: %w", err)
	}
	if written > MaxUploadBytes {
		os.Remove(path)
		return "", ErrTooLarge
	}
	return path, nil
}

// SanitizeFilename strips path components and anything outside a small safe
// character set, keeping the extension.
func SanitizeFilename(name string) string {
	name = filepath.Base(name)
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	out := strings.Trim(b.String(), "._")
	if out == "" {
		out = "upload"
	}
	return out
}
