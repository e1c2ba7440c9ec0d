package service

import (
	"context"

	"invoice-processor-be/internal/dto"

	"github.com/google/uuid"
)

type IDocumentService interface {
	// Reextract re-runs classification + extraction for one document.
	// Calling it on a document that is already EXTRACTING is a no-op that
	// returns the current state.
	Reextract(ctx context.Context, documentId uuid.UUID) (*dto.ReextractResponse, error)
}

type documentService struct {
	processing IProcessingService
}

func NewDocumentService(processing IProcessingService) IDocumentService {
	return &documentService{
		processing: processing,
	}
}

func (s *documentService) Reextract(ctx context.Context, documentId uuid.UUID) (*dto.ReextractResponse, error) {
	doc, stack, err := s.processing.ProcessDocument(ctx, documentId)
	if err != nil {
		return nil, err
	}

	return &dto.ReextractResponse{
		DocumentId:       doc.Id,
		Classification:   doc.Classification,
		ExtractionStatus: doc.ExtractionStatus,
		StackStatus:      stack.Status,
	}, nil
}
