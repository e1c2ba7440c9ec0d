package classifier

import (
	"strings"
	"unicode/utf8"

	"invoice-processor-be/internal/entity"
)

// Classifier decides whether a document is worth sending to extraction.
// It is deterministic: identical document + content always yields the same
// classification. Unreadable content falls back to NOT_INVOICE instead of
// propagating an error.
type Classifier interface {
	Classify(doc *entity.Document, rawContent []byte) entity.Classification
}

type heuristicClassifier struct{}

func NewClassifier() Classifier {
	return &heuristicClassifier{}
}

var invoiceSignals = []string{
	"invoice", "rechnung", "factura", "facture", "amount due", "total due",
}

func (c *heuristicClassifier) Classify(doc *entity.Document, rawContent []byte) entity.Classification {
	if doc == nil {
		return entity.ClassificationNotInvoice
	}

	// PDF and image attachments are always extraction candidates; scanned
	// invoices carry no text signal the heuristics could see.
	switch doc.Type {
	case entity.DocumentTypePdfAttachment, entity.DocumentTypeImageAttachment:
		return entity.ClassificationInvoice
	}

	if doc.Filename != nil && containsSignal(strings.ToLower(*doc.Filename)) {
		return entity.ClassificationInvoice
	}

	if len(rawContent) > 0 && utf8.Valid(rawContent) {
		if containsSignal(strings.ToLower(string(rawContent))) {
			return entity.ClassificationInvoice
		}
	}

	return entity.ClassificationNotInvoice
}

func containsSignal(s string) bool {
	for _, signal := range invoiceSignals {
		if strings.Contains(s, signal) {
			return true
		}
	}
	return false
}
