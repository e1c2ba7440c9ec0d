package doctext

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"invoice-processor-be/internal/entity"

	"github.com/ledongthuc/pdf"
)

// MaxDocumentCharacters bounds how much document text is handed to the
// model as grounding context.
const MaxDocumentCharacters = 8000

// Extract converts stored document bytes into plain text. PDFs go through
// the pdf reader; everything else is treated as UTF-8 text.
func Extract(docType entity.DocumentType, filename *string, content []byte) (string, error) {
	if isPdf(docType, filename) {
		return extractPdfText(content)
	}
	return strings.TrimSpace(string(content)), nil
}

// Truncate caps text at MaxDocumentCharacters.
func Truncate(text string) string {
	if len(text) > MaxDocumentCharacters {
		return text[:MaxDocumentCharacters]
	}
	return text
}

func isPdf(docType entity.DocumentType, filename *string) bool {
	if docType == entity.DocumentTypePdfAttachment {
		return true
	}
	return filename != nil && strings.HasSuffix(strings.ToLower(*filename), ".pdf")
}

func extractPdfText(content []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}

	textReader, err := reader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("extract pdf text: %w", err)
	}

	var sb strings.Builder
	if _, err := io.Copy(&sb, textReader); err != nil {
		return "", fmt.Errorf("read pdf text: %w", err)
	}

	return strings.TrimSpace(sb.String()), nil
}
