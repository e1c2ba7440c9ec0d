package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type InvoiceExtraction struct {
	Id            uuid.UUID
	DocumentId    uuid.UUID
	InvoiceNumber string
	InvoiceDate   time.Time
	SupplierName  string
	TotalAmount   float64
	Currency      string
	CreatedAt     time.Time
	UpdatedAt     *time.Time
}

func NewInvoiceExtraction(documentId uuid.UUID, invoiceNumber string, invoiceDate time.Time, supplierName string, totalAmount float64, currency string) *InvoiceExtraction {
	return &InvoiceExtraction{
		Id:            uuid.New(),
		DocumentId:    documentId,
		InvoiceNumber: invoiceNumber,
		InvoiceDate:   invoiceDate,
		SupplierName:  supplierName,
		TotalAmount:   totalAmount,
		Currency:      currency,
	}
}

// IsValid checks the minimum field set an extraction must carry before it
// may be persisted as PROCESSED.
func (e *InvoiceExtraction) IsValid() bool {
	return strings.TrimSpace(e.InvoiceNumber) != "" &&
		!e.InvoiceDate.IsZero() &&
		strings.TrimSpace(e.SupplierName) != "" &&
		e.TotalAmount > 0 &&
		strings.TrimSpace(e.Currency) != ""
}
