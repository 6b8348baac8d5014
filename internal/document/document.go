// Package document discovers receipt documents on disk and extracts their
// plain text for the evidence extractor.
package document

import (
	"bytes"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/dslipak/pdf"
)

// Walk recursively collects supported document paths under root. Paths are
// returned sorted so downstream processing is deterministic.
func Walk(root string) ([]string, error) {
	var paths []string

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		switch strings.ToLower(filepath.Ext(d.Name())) {
		case ".pdf", ".txt":
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk %s: %w", root, err)
	}

	sort.Strings(paths)
	return paths, nil
}

// Extractor returns the raw text of a document. Implementations report
// failures to the caller; a failed document simply contributes no evidence.
type Extractor interface {
	Text(path string) (string, error)
}

// FileExtractor extracts text from PDF and plain-text files on disk.
type FileExtractor struct{}

// Text returns the raw text of the document at path.
func (FileExtractor) Text(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		return extractPDF(path)
	case ".txt":
		data, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("failed to read %s: %w", path, err)
		}
		return string(data), nil
	default:
		return "", fmt.Errorf("unsupported document type: %s", path)
	}
}

// extractPDF pulls the plain text out of a PDF. The pdf library panics on
// some malformed files, so the panic is converted into an error here.
func extractPDF(path string) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("failed to extract text from %s: %v", path, r)
		}
	}()

	r, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open %s: %w", path, err)
	}

	reader, err := r.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("failed to extract text from %s: %w", path, err)
	}

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(reader); err != nil {
		return "", fmt.Errorf("failed to read text from %s: %w", path, err)
	}

	return buf.String(), nil
}
