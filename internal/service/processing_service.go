package service

import (
	"context"
	"fmt"
	"time"

	"invoice-processor-be/internal/entity"
	"invoice-processor-be/internal/pkg/logger"
	"invoice-processor-be/internal/pkg/serverutils"
	"invoice-processor-be/internal/repository/specification"
	"invoice-processor-be/internal/repository/unitofwork"
	"invoice-processor-be/pkg/classifier"
	"invoice-processor-be/pkg/extractor"
	"invoice-processor-be/pkg/keylock"
	"invoice-processor-be/pkg/storage"

	"github.com/google/uuid"
)

type IProcessingService interface {
	// ProcessStack runs classification + extraction over every pending
	// document of the stack, then recomputes the stack status.
	ProcessStack(ctx context.Context, stackId uuid.UUID) error

	// ProcessDocument re-runs the pipeline for a single document,
	// whatever state it is in. Runs on the same stack are serialized, so
	// a persisted EXTRACTING can only be the leftover of an interrupted
	// run and is re-run like any other state.
	ProcessDocument(ctx context.Context, documentId uuid.UUID) (*entity.Document, *entity.Stack, error)
}

type processingService struct {
	uowFactory unitofwork.RepositoryFactory
	classifier classifier.Classifier
	extractor  extractor.InvoiceExtractor
	storage    storage.ObjectStorage
	locks      *keylock.KeyLock
	publisher  IPublisherService
	log        logger.ILogger
}

func NewProcessingService(
	uowFactory unitofwork.RepositoryFactory,
	cls classifier.Classifier,
	ext extractor.InvoiceExtractor,
	store storage.ObjectStorage,
	locks *keylock.KeyLock,
	publisher IPublisherService,
	log logger.ILogger,
) IProcessingService {
	return &processingService{
		uowFactory: uowFactory,
		classifier: cls,
		extractor:  ext,
		storage:    store,
		locks:      locks,
		publisher:  publisher,
		log:        log,
	}
}

func (s *processingService) ProcessStack(ctx context.Context, stackId uuid.UUID) error {
	s.locks.Lock(stackId.String())
	defer s.locks.Unlock(stackId.String())

	uow := s.uowFactory.NewUnitOfWork(ctx)

	stack, err := uow.StackRepository().FindOne(ctx, specification.ByID{ID: stackId})
	if err != nil {
		return err
	}
	if stack == nil {
		return serverutils.NewNotFoundError("stack not found")
	}

	documents, err := uow.DocumentRepository().FindAll(ctx,
		specification.ByStackID{StackID: stackId},
		specification.OrderBy{Field: "position"},
	)
	if err != nil {
		return err
	}

	for _, doc := range documents {
		if doc.ExtractionStatus != entity.ExtractionStatusPending {
			continue
		}
		// One failing document never aborts the stack run; it lands in
		// ERROR and the loop moves on.
		if err := s.processDocument(ctx, doc); err != nil {
			s.log.Error("processing", "document processing failed", map[string]interface{}{
				"document_id": doc.Id.String(),
				"error":       err.Error(),
			})
		}
	}

	stack, err = s.recomputeStackStatus(ctx, stackId)
	if err != nil {
		return err
	}

	s.publishIfTerminal(ctx, stack)
	return nil
}

func (s *processingService) ProcessDocument(ctx context.Context, documentId uuid.UUID) (*entity.Document, *entity.Stack, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	doc, err := uow.DocumentRepository().FindOne(ctx, specification.ByID{ID: documentId})
	if err != nil {
		return nil, nil, err
	}
	if doc == nil {
		return nil, nil, serverutils.NewNotFoundError("document not found")
	}

	s.locks.Lock(doc.StackId.String())
	defer s.locks.Unlock(doc.StackId.String())

	// Re-read under the lock; a concurrent run may have advanced it.
	doc, err = uow.DocumentRepository().FindOne(ctx, specification.ByID{ID: documentId})
	if err != nil {
		return nil, nil, err
	}
	if doc == nil {
		return nil, nil, serverutils.NewNotFoundError("document not found")
	}

	// A re-run starts from scratch: classification and status are
	// recomputed as if the document had just arrived, and any invoice
	// from an earlier run is discarded up front.
	doc.Classification = entity.ClassificationUnknown
	doc.ExtractionStatus = entity.ExtractionStatusPending
	if err := s.persistDocumentState(ctx, doc, nil); err != nil {
		return nil, nil, err
	}

	if err := s.processDocument(ctx, doc); err != nil {
		s.log.Error("processing", "document re-extraction failed", map[string]interface{}{
			"document_id": doc.Id.String(),
			"error":       err.Error(),
		})
	}

	stack, err := s.recomputeStackStatus(ctx, doc.StackId)
	if err != nil {
		return nil, nil, err
	}
	s.publishIfTerminal(ctx, stack)

	doc, err = uow.DocumentRepository().FindOne(ctx, specification.ByID{ID: documentId})
	if err != nil {
		return nil, nil, err
	}
	return doc, stack, nil
}

// processDocument moves one PENDING document through classification and,
// if it qualifies, extraction. Every terminal state it writes keeps the
// invariant that an invoice extraction row exists iff the document is
// PROCESSED.
func (s *processingService) processDocument(ctx context.Context, doc *entity.Document) error {
	content, err := s.storage.Get(ctx, doc.ContentLocation)
	if err != nil {
		return s.markError(ctx, doc, fmt.Errorf("load content: %w", err))
	}

	doc.Classification = s.classifier.Classify(doc, content)
	if !doc.IsExtractionCandidate() {
		doc.ExtractionStatus = entity.ExtractionStatusNotApplicable
		return s.persistDocumentState(ctx, doc, nil)
	}

	// Persist EXTRACTING before calling the model so an observer (and a
	// crashed run) can tell in-flight work from queued work.
	doc.ExtractionStatus = entity.ExtractionStatusExtracting
	if err := s.persistDocumentState(ctx, doc, nil); err != nil {
		return err
	}

	result, err := s.extractor.Extract(ctx, doc, content)
	if err != nil {
		return s.markError(ctx, doc, fmt.Errorf("extract: %w", err))
	}

	return s.applyExtractionResult(ctx, doc, result)
}

// applyExtractionResult maps an extractor result onto the document. The
// model may overrule the heuristic classification; a NOT_INVOICE verdict
// is a success that simply yields no invoice.
func (s *processingService) applyExtractionResult(ctx context.Context, doc *entity.Document, result *extractor.Result) error {
	if result.Classification == entity.ClassificationNotInvoice {
		doc.Classification = entity.ClassificationNotInvoice
		doc.ExtractionStatus = entity.ExtractionStatusNotApplicable
		return s.persistDocumentState(ctx, doc, nil)
	}

	invoice := entity.NewInvoiceExtraction(
		doc.Id,
		result.InvoiceNumber,
		result.InvoiceDate,
		result.SupplierName,
		result.TotalAmount,
		result.Currency,
	)
	if !invoice.IsValid() {
		return s.markError(ctx, doc, fmt.Errorf("extraction returned incomplete invoice data"))
	}

	doc.Classification = entity.ClassificationInvoice
	doc.ExtractionStatus = entity.ExtractionStatusProcessed
	return s.persistDocumentState(ctx, doc, invoice)
}

func (s *processingService) markError(ctx context.Context, doc *entity.Document, cause error) error {
	doc.ExtractionStatus = entity.ExtractionStatusError
	if err := s.persistDocumentState(ctx, doc, nil); err != nil {
		return err
	}
	return cause
}

// persistDocumentState writes the document and reconciles its invoice
// extraction in one transaction: replaced when PROCESSED, discarded
// otherwise. The delete is unconditional so an invoice row never
// outlives a status other than PROCESSED, not even mid-re-run.
func (s *processingService) persistDocumentState(ctx context.Context, doc *entity.Document, invoice *entity.InvoiceExtraction) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	now := time.Now()
	doc.UpdatedAt = &now
	if err := uow.DocumentRepository().Update(ctx, doc); err != nil {
		return err
	}

	if err := uow.InvoiceExtractionRepository().DeleteByDocumentId(ctx, doc.Id); err != nil {
		return err
	}
	if invoice != nil {
		if err := uow.InvoiceExtractionRepository().Create(ctx, invoice); err != nil {
			return err
		}
	}

	return uow.Commit()
}

func (s *processingService) recomputeStackStatus(ctx context.Context, stackId uuid.UUID) (*entity.Stack, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	stack, err := uow.StackRepository().FindOne(ctx, specification.ByID{ID: stackId})
	if err != nil {
		return nil, err
	}
	if stack == nil {
		return nil, serverutils.NewNotFoundError("stack not found")
	}

	documents, err := uow.DocumentRepository().FindAll(ctx, specification.ByStackID{StackID: stackId})
	if err != nil {
		return nil, err
	}

	newStatus := entity.DeriveStackStatus(documents)
	if newStatus != stack.Status {
		stack.Status = newStatus
		now := time.Now()
		stack.UpdatedAt = &now
		if err := uow.StackRepository().Update(ctx, stack); err != nil {
			return nil, err
		}
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}
	return stack, nil
}

func (s *processingService) publishIfTerminal(ctx context.Context, stack *entity.Stack) {
	if stack.Status != entity.StackStatusProcessed && stack.Status != entity.StackStatusError {
		return
	}
	if err := s.publisher.PublishStackProcessed(ctx, stack); err != nil {
		s.log.Warn("processing", "failed to publish stack processed event", map[string]interface{}{
			"stack_id": stack.Id.String(),
			"error":    err.Error(),
		})
	}
}
