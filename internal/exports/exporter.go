package exports

import (
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"regexp"
)

var (
	ErrValidation = errors.New("validation failed")
	ErrIO         = errors.New("i/o failure")
)

// unsafeChars matches everything outside the filename whitelist.
var unsafeChars = regexp.MustCompile(`[^a-zA-Z0-9.-]`)

// SanitizeFilename replaces every character outside [a-zA-Z0-9.-] with
// an underscore. Idempotent: a sanitized name passes through unchanged.
// The replacement also neutralizes path separators and "..", which
// keeps every sanitized name inside the export directory.
func SanitizeFilename(name string) string {
	return unsafeChars.ReplaceAllString(name, "_")
}

// Exporter writes standalone HTML artifacts into a single flat
// directory. The directory and the public prefix it is served under
// are injected so the exporter carries no process-global state.
type Exporter struct {
	dir          string
	publicPrefix string
}

// NewExporter creates an exporter rooted at dir, returning public
// paths under publicPrefix (e.g. "/exports").
func NewExporter(dir, publicPrefix string) *Exporter {
	return &Exporter{dir: dir, publicPrefix: publicPrefix}
}

// Write persists htmlContent under the sanitized desiredName,
// overwriting any previous artifact with the same name, and returns
// the public-facing path. Empty content or name fails validation
// before anything touches the filesystem.
func (e *Exporter) Write(htmlContent, desiredName string) (string, error) {
	if htmlContent == "" || desiredName == "" {
		return "", fmt.Errorf("%w: html and filename are required", ErrValidation)
	}

	safeName := SanitizeFilename(desiredName)

	// MkdirAll is a no-op on an existing directory, so racing exports
	// cannot fail each other here.
	if err := os.MkdirAll(e.dir, 0o755); err != nil {
		return "", fmt.Errorf("%w: create export directory: %v", ErrIO, err)
	}

	target := filepath.Join(e.dir, safeName)

	// Write to a temp file in the same directory, then rename over the
	// target so readers never observe a partially written artifact.
	tmp, err := os.CreateTemp(e.dir, ".export-*")
	if err != nil {
		return "", fmt.Errorf("%w: create temp file: %v", ErrIO, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.WriteString(htmlContent); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return "", fmt.Errorf("%w: write file: %v", ErrIO, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return "", fmt.Errorf("%w: close file: %v", ErrIO, err)
	}
	if err := os.Rename(tmpName, target); err != nil {
		os.Remove(tmpName)
		return "", fmt.Errorf("%w: replace file: %v", ErrIO, err)
	}

	return path.Join(e.publicPrefix, safeName), nil
}
