package entity

import (
	"time"

	"github.com/google/uuid"
)

type DocumentType string

const (
	DocumentTypeEmailBody       DocumentType = "EMAIL_BODY"
	DocumentTypePdfAttachment   DocumentType = "PDF_ATTACHMENT"
	DocumentTypeImageAttachment DocumentType = "IMAGE_ATTACHMENT"
	DocumentTypeOtherAttachment DocumentType = "OTHER_ATTACHMENT"
)

type Classification string

const (
	ClassificationUnknown    Classification = "UNKNOWN"
	ClassificationInvoice    Classification = "INVOICE"
	ClassificationNotInvoice Classification = "NOT_INVOICE"
)

type ExtractionStatus string

const (
	ExtractionStatusNotApplicable ExtractionStatus = "NOT_APPLICABLE"
	ExtractionStatusPending       ExtractionStatus = "PENDING"
	ExtractionStatusExtracting    ExtractionStatus = "EXTRACTING"
	ExtractionStatusProcessed     ExtractionStatus = "PROCESSED"
	ExtractionStatusError         ExtractionStatus = "ERROR"
)

type Document struct {
	Id               uuid.UUID
	StackId          uuid.UUID
	Type             DocumentType
	Filename         *string
	ContentLocation  string
	Classification   Classification
	ExtractionStatus ExtractionStatus
	Position         int
	CreatedAt        time.Time
	UpdatedAt        *time.Time
	DeletedAt        *time.Time
	IsDeleted        bool
}

func NewDocument(stackId uuid.UUID, docType DocumentType, filename *string, contentLocation string) *Document {
	return &Document{
		Id:               uuid.New(),
		StackId:          stackId,
		Type:             docType,
		Filename:         filename,
		ContentLocation:  contentLocation,
		Classification:   ClassificationUnknown,
		ExtractionStatus: ExtractionStatusPending,
	}
}

// IsExtractionCandidate reports whether the classifier routed this document
// to extraction.
func (d *Document) IsExtractionCandidate() bool {
	return d.Classification == ClassificationInvoice
}
