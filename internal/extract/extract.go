// Package extract pulls plain text out of uploaded documents.
package extract

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"code.sajari.com/docconv"
)

// DefaultMaxChars caps the stored text of one document.
const DefaultMaxChars = 1 << 20

// Extractor converts PDF, DOCX and DOC files with docconv and reads plain
// text files directly.
type Extractor struct {
	maxChars int
}

func New(maxChars int) *Extractor {
	if maxChars <= 0 {
		maxChars = DefaultMaxChars
	}
	return &Extractor{maxChars: maxChars}
}

// Supports reports whether filename has a convertible extension.
func (e *Extractor) Supports(filename string) bool {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf", ".docx", ".doc", ".txt":
		return true
	}
	return false
}

func (e *Extractor) Extract(ctx context.Context, r io.Reader, filename string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	ext := strings.ToLower(filepath.Ext(filename))
	var text string
	switch ext {
	case ".txt":
		content, err := io.ReadAll(io.LimitReader(r, int64(e.maxChars)*4))
		if err != nil {
			return "", fmt.Errorf("failed to read text file: %w", err)
		}
		text = string(content)
	case ".pdf", ".docx", ".doc":
		res, err := docconv.Convert(r, docconv.MimeTypeByExtension(filename), false)
		if err != nil {
			return "", fmt.Errorf("failed to parse document: %w", err)
		}
		text = res.Body
	default:
		return "", fmt.Errorf("unsupported file type: %s", ext)
	}

	return e.truncate(strings.TrimSpace(text)), nil
}

func (e *Extractor) truncate(text string) string {
	runes := []rune(text)
	if len(runes) <= e.maxChars {
		return text
	}
	return string(runes[:e.maxChars])
}
