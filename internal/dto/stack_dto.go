package dto

import (
	"time"

	"github.com/google/uuid"

	"invoice-processor-be/internal/entity"
)

type StackListItem struct {
	Id            uuid.UUID          `json:"id"`
	Subject       string             `json:"subject"`
	FromAddress   string             `json:"from_address"`
	Status        entity.StackStatus `json:"status"`
	DocumentCount int                `json:"document_count"`
	InvoiceCount  int                `json:"invoice_count"`
	ReceivedAt    time.Time          `json:"received_at"`
	CreatedAt     time.Time          `json:"created_at"`
	UpdatedAt     *time.Time         `json:"updated_at"`
}

type GetAllStacksResponse struct {
	Stacks     []StackListItem `json:"stacks"`
	Page       int             `json:"page"`
	PageSize   int             `json:"page_size"`
	TotalCount int64           `json:"total_count"`
}

type InvoiceExtractionResponse struct {
	Id            uuid.UUID `json:"id"`
	InvoiceNumber string    `json:"invoice_number"`
	InvoiceDate   string    `json:"invoice_date"`
	SupplierName  string    `json:"supplier_name"`
	TotalAmount   float64   `json:"total_amount"`
	Currency      string    `json:"currency"`
}

type DocumentResponse struct {
	Id               uuid.UUID                  `json:"id"`
	Type             entity.DocumentType        `json:"type"`
	Filename         *string                    `json:"filename"`
	Classification   entity.Classification      `json:"classification"`
	ExtractionStatus entity.ExtractionStatus    `json:"extraction_status"`
	Position         int                        `json:"position"`
	Invoice          *InvoiceExtractionResponse `json:"invoice,omitempty"`
	CreatedAt        time.Time                  `json:"created_at"`
	UpdatedAt        *time.Time                 `json:"updated_at"`
}

type ShowStackResponse struct {
	Id          uuid.UUID          `json:"id"`
	Subject     string             `json:"subject"`
	FromAddress string             `json:"from_address"`
	ToAddress   string             `json:"to_address"`
	Status      entity.StackStatus `json:"status"`
	ReceivedAt  time.Time          `json:"received_at"`
	Documents   []DocumentResponse `json:"documents"`
	CreatedAt   time.Time          `json:"created_at"`
	UpdatedAt   *time.Time         `json:"updated_at"`
}

type AttachmentPayload struct {
	Filename    string `json:"filename" validate:"required"`
	ContentType string `json:"content_type"`
	// Content is the raw attachment body, base64-encoded.
	Content string `json:"content"`
}

type SimulateEmailRequest struct {
	From        string              `json:"from" validate:"required"`
	To          string              `json:"to"`
	Subject     string              `json:"subject" validate:"required"`
	Body        string              `json:"body"`
	Attachments []AttachmentPayload `json:"attachments" validate:"dive"`
}

type ManualUploadRequest struct {
	Subject string              `json:"subject" validate:"required"`
	Files   []AttachmentPayload `json:"files" validate:"required,min=1,dive"`
}

type IngestStackResponse struct {
	Id     uuid.UUID          `json:"id"`
	Status entity.StackStatus `json:"status"`
}

type ImportEmailsResponse struct {
	Found            int `json:"found"`
	StacksCreated    int `json:"stacks_created"`
	DocumentsCreated int `json:"documents_created"`
	Failed           int `json:"failed"`
}
