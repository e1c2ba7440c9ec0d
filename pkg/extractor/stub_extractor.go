package extractor

import (
	"context"
	"strings"
	"time"

	"invoice-processor-be/internal/entity"
)

// StubExtractor is a deterministic offline extractor: documents whose
// filename or content location mentions "invoice" come back as valid
// invoices with fixed dummy data, everything else as NOT_INVOICE.
type StubExtractor struct{}

var _ InvoiceExtractor = &StubExtractor{}

func NewStubExtractor() *StubExtractor {
	return &StubExtractor{}
}

func (e *StubExtractor) Extract(ctx context.Context, doc *entity.Document, content []byte) (*Result, error) {
	filename := ""
	if doc.Filename != nil {
		filename = strings.ToLower(*doc.Filename)
	}
	location := strings.ToLower(doc.ContentLocation)

	if strings.Contains(filename, "invoice") || strings.Contains(location, "invoice") {
		return &Result{
			Classification: entity.ClassificationInvoice,
			InvoiceNumber:  "INV-" + strings.ToUpper(doc.Id.String()[:8]),
			InvoiceDate:    time.Now().Truncate(24 * time.Hour),
			SupplierName:   "Example Supplier Inc.",
			TotalAmount:    1234.56,
			Currency:       "EUR",
		}, nil
	}

	return &Result{
		Classification: entity.ClassificationNotInvoice,
	}, nil
}
