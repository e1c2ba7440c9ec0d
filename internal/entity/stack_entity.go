package entity

import (
	"time"

	"github.com/google/uuid"
)

type StackStatus string

const (
	StackStatusReceived   StackStatus = "RECEIVED"
	StackStatusProcessing StackStatus = "PROCESSING"
	StackStatusProcessed  StackStatus = "PROCESSED"
	StackStatusError      StackStatus = "ERROR"
)

type Stack struct {
	Id          uuid.UUID
	Subject     string
	FromAddress string
	ToAddress   string
	ReceivedAt  time.Time
	Status      StackStatus
	Documents   []*Document
	CreatedAt   time.Time
	UpdatedAt   *time.Time
	DeletedAt   *time.Time
	IsDeleted   bool
}

func NewStack(fromAddress, toAddress, subject string) *Stack {
	return &Stack{
		Id:          uuid.New(),
		FromAddress: fromAddress,
		ToAddress:   toAddress,
		Subject:     subject,
		ReceivedAt:  time.Now(),
		Status:      StackStatusReceived,
		Documents:   make([]*Document, 0),
	}
}

func (s *Stack) AddDocument(doc *Document) {
	doc.Position = len(s.Documents)
	s.Documents = append(s.Documents, doc)
}

// UpdateStatusFromDocuments recomputes the aggregate status. The status is
// always a pure function of the document extraction statuses; it is never
// assigned from anywhere else.
func (s *Stack) UpdateStatusFromDocuments() {
	s.Status = DeriveStackStatus(s.Documents)
}

// DeriveStackStatus maps a document set onto one stack status. ERROR
// dominates and stays until every erroring document is re-extracted
// successfully. A stack with no documents remains RECEIVED.
func DeriveStackStatus(documents []*Document) StackStatus {
	if len(documents) == 0 {
		return StackStatusReceived
	}

	inFlight := false
	for _, doc := range documents {
		switch doc.ExtractionStatus {
		case ExtractionStatusError:
			return StackStatusError
		case ExtractionStatusPending, ExtractionStatusExtracting:
			inFlight = true
		}
	}

	if inFlight {
		return StackStatusProcessing
	}
	return StackStatusProcessed
}
