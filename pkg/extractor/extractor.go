package extractor

import (
	"context"
	"time"

	"invoice-processor-be/internal/entity"
)

// Result is what one extraction attempt produced: the model's
// classification of the content plus the structured invoice fields when it
// judged the content to be an invoice.
type Result struct {
	Classification entity.Classification
	InvoiceNumber  string
	InvoiceDate    time.Time
	SupplierName   string
	TotalAmount    float64
	Currency       string
}

// InvoiceExtractor derives structured invoice data from document content.
// Implementations must bound their own latency and return an error rather
// than hang.
type InvoiceExtractor interface {
	Extract(ctx context.Context, doc *entity.Document, content []byte) (*Result, error)
}
