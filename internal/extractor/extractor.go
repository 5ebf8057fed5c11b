// Package extractor converts uploaded document binaries into plain text.
package extractor

import (
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/veyselka/AI-LIB/internal/models"
)

// Extract converts raw bytes of the declared format into plain text.
// Empty content or an unsupported format yields empty text with no
// error; callers treat empty text as a validation failure. A parse
// failure on any format returns an error before any text is produced.
func Extract(data []byte, fileType models.FileType) (string, error) {
	if len(data) == 0 {
		return "", nil
	}

	var text string
	var err error

	switch fileType {
	case models.FileTypePDF:
		text, err = ExtractPDF(data)
	case models.FileTypeDOCX:
		text, err = ExtractDOCX(data)
	case models.FileTypePPTX:
		text, err = ExtractPPTX(data)
	default:
		return "", nil
	}

	if err != nil {
		return "", err
	}

	return normalizeText(text), nil
}

// normalizeText NFC-normalizes extracted text and strips NUL bytes,
// which PDF content streams occasionally leak.
func normalizeText(text string) string {
	text = strings.ReplaceAll(text, "\x00", "")
	text = norm.NFC.String(text)
	return strings.TrimSpace(text)
}
