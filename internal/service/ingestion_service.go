package service

import (
	"context"
	"encoding/base64"
	"fmt"
	"path"
	"strings"

	"invoice-processor-be/internal/dto"
	"invoice-processor-be/internal/entity"
	"invoice-processor-be/internal/pkg/logger"
	"invoice-processor-be/internal/pkg/serverutils"
	"invoice-processor-be/internal/repository/specification"
	"invoice-processor-be/internal/repository/unitofwork"
	"invoice-processor-be/pkg/mailfetch"
	"invoice-processor-be/pkg/storage"
)

type IIngestionService interface {
	// IngestEmail turns one inbound email (body + attachments) into a new
	// stack and runs the processing pipeline over it.
	IngestEmail(ctx context.Context, req *dto.SimulateEmailRequest) (*dto.IngestStackResponse, error)

	// IngestUpload turns a manual file upload into a new stack. Uploads
	// carry no email body, only file documents.
	IngestUpload(ctx context.Context, req *dto.ManualUploadRequest) (*dto.IngestStackResponse, error)

	// ImportEmails pulls unread messages from every configured email
	// source. Each message is ingested independently; a failing message
	// is counted and skipped, never aborting the batch.
	ImportEmails(ctx context.Context) (*dto.ImportEmailsResponse, error)
}

type ingestionService struct {
	uowFactory unitofwork.RepositoryFactory
	storage    storage.ObjectStorage
	fetcher    mailfetch.Fetcher
	processing IProcessingService
	log        logger.ILogger
}

func NewIngestionService(
	uowFactory unitofwork.RepositoryFactory,
	store storage.ObjectStorage,
	fetcher mailfetch.Fetcher,
	processing IProcessingService,
	log logger.ILogger,
) IIngestionService {
	return &ingestionService{
		uowFactory: uowFactory,
		storage:    store,
		fetcher:    fetcher,
		processing: processing,
		log:        log,
	}
}

// inboundFile is one decoded piece of content waiting to become a document.
type inboundFile struct {
	docType     entity.DocumentType
	filename    *string
	contentType string
	content     []byte
}

func (s *ingestionService) IngestEmail(ctx context.Context, req *dto.SimulateEmailRequest) (*dto.IngestStackResponse, error) {
	files := make([]inboundFile, 0, len(req.Attachments)+1)

	if strings.TrimSpace(req.Body) != "" {
		files = append(files, inboundFile{
			docType: entity.DocumentTypeEmailBody,
			content: []byte(req.Body),
		})
	}

	for _, att := range req.Attachments {
		content, err := base64.StdEncoding.DecodeString(att.Content)
		if err != nil {
			return nil, serverutils.NewBadRequestError(fmt.Sprintf("attachment %s: content is not valid base64", att.Filename))
		}
		filename := att.Filename
		files = append(files, inboundFile{
			docType:     DetermineDocumentType(att.Filename, att.ContentType),
			filename:    &filename,
			contentType: att.ContentType,
			content:     content,
		})
	}

	return s.ingest(ctx, req.From, req.To, req.Subject, files)
}

func (s *ingestionService) IngestUpload(ctx context.Context, req *dto.ManualUploadRequest) (*dto.IngestStackResponse, error) {
	files := make([]inboundFile, 0, len(req.Files))
	for _, f := range req.Files {
		content, err := base64.StdEncoding.DecodeString(f.Content)
		if err != nil {
			return nil, serverutils.NewBadRequestError(fmt.Sprintf("file %s: content is not valid base64", f.Filename))
		}
		filename := f.Filename
		files = append(files, inboundFile{
			docType:     DetermineDocumentType(f.Filename, f.ContentType),
			filename:    &filename,
			contentType: f.ContentType,
			content:     content,
		})
	}

	return s.ingest(ctx, "manual-upload", "", req.Subject, files)
}

func (s *ingestionService) ImportEmails(ctx context.Context) (*dto.ImportEmailsResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	endpoints, err := uow.IntegrationEndpointRepository().FindAll(ctx,
		specification.ByEndpointType{Type: string(entity.EndpointTypeEmailSource)},
	)
	if err != nil {
		return nil, err
	}

	res := &dto.ImportEmailsResponse{}
	for _, endpoint := range endpoints {
		settings, err := endpoint.EmailSourceSettings()
		if err != nil {
			s.log.Warn("ingestion", "skipping misconfigured email source", map[string]interface{}{
				"endpoint": endpoint.Name,
				"error":    err.Error(),
			})
			continue
		}

		messages, err := s.fetcher.FetchUnread(ctx, settings)
		if err != nil {
			s.log.Error("ingestion", "failed to fetch from email source", map[string]interface{}{
				"endpoint": endpoint.Name,
				"error":    err.Error(),
			})
			continue
		}

		res.Found += len(messages)
		for _, msg := range messages {
			documents, err := s.importMessage(ctx, settings, msg)
			if err != nil {
				res.Failed++
				s.log.Error("ingestion", "failed to import message", map[string]interface{}{
					"endpoint":   endpoint.Name,
					"message_id": msg.MessageID,
					"error":      err.Error(),
				})
				continue
			}
			res.StacksCreated++
			res.DocumentsCreated += documents
		}
	}

	return res, nil
}

// importMessage ingests one fetched message and reports how many documents
// the resulting stack holds. A panic while handling one message is turned
// into an error so the rest of the batch keeps going.
func (s *ingestionService) importMessage(ctx context.Context, settings *entity.EmailSourceSettings, msg *mailfetch.EmailMessage) (documents int, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("import message %s: %v", msg.MessageID, r)
		}
	}()

	files := make([]inboundFile, 0, len(msg.Attachments)+1)
	if strings.TrimSpace(msg.Body) != "" {
		files = append(files, inboundFile{
			docType: entity.DocumentTypeEmailBody,
			content: []byte(msg.Body),
		})
	}
	for _, att := range msg.Attachments {
		filename := att.Filename
		files = append(files, inboundFile{
			docType:     DetermineDocumentType(att.Filename, att.ContentType),
			filename:    &filename,
			contentType: att.ContentType,
			content:     att.Content,
		})
	}

	if _, err := s.ingest(ctx, msg.From, msg.To, msg.Subject, files); err != nil {
		return 0, err
	}

	// The message stays unread (and retriable) until the stack is safely
	// persisted.
	if err := s.fetcher.MarkRead(ctx, settings, msg.UID); err != nil {
		s.log.Warn("ingestion", "imported message could not be marked read", map[string]interface{}{
			"message_id": msg.MessageID,
			"error":      err.Error(),
		})
	}
	return len(files), nil
}

func (s *ingestionService) ingest(ctx context.Context, from, to, subject string, files []inboundFile) (*dto.IngestStackResponse, error) {
	stack := entity.NewStack(from, to, subject)

	for _, f := range files {
		doc := entity.NewDocument(stack.Id, f.docType, f.filename, "")
		doc.ContentLocation = objectKey(stack, doc, f.filename)
		if _, err := s.storage.Put(ctx, doc.ContentLocation, f.content, f.contentType); err != nil {
			return nil, fmt.Errorf("store document content: %w", err)
		}
		stack.AddDocument(doc)
	}

	stack.UpdateStatusFromDocuments()

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	if err := uow.StackRepository().Create(ctx, stack); err != nil {
		return nil, err
	}
	for _, doc := range stack.Documents {
		if err := uow.DocumentRepository().Create(ctx, doc); err != nil {
			return nil, err
		}
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}

	s.log.Info("ingestion", "stack ingested", map[string]interface{}{
		"stack_id":  stack.Id.String(),
		"documents": len(stack.Documents),
	})

	if err := s.processing.ProcessStack(ctx, stack.Id); err != nil {
		return nil, err
	}

	// Re-read for the post-processing status.
	uow = s.uowFactory.NewUnitOfWork(ctx)
	persisted, err := uow.StackRepository().FindOne(ctx, specification.ByID{ID: stack.Id})
	if err != nil {
		return nil, err
	}

	return &dto.IngestStackResponse{
		Id:     persisted.Id,
		Status: persisted.Status,
	}, nil
}

func objectKey(stack *entity.Stack, doc *entity.Document, filename *string) string {
	name := "body.txt"
	if filename != nil && *filename != "" {
		name = *filename
	}
	return path.Join("stacks", stack.Id.String(), doc.Id.String(), name)
}

// DetermineDocumentType maps an attachment onto a document type using the
// declared content type first and the filename extension as fallback.
func DetermineDocumentType(filename, contentType string) entity.DocumentType {
	ct := strings.ToLower(strings.TrimSpace(contentType))
	switch {
	case ct == "application/pdf":
		return entity.DocumentTypePdfAttachment
	case strings.HasPrefix(ct, "image/"):
		return entity.DocumentTypeImageAttachment
	}

	switch strings.ToLower(path.Ext(filename)) {
	case ".pdf":
		return entity.DocumentTypePdfAttachment
	case ".png", ".jpg", ".jpeg", ".gif", ".tiff", ".bmp", ".webp":
		return entity.DocumentTypeImageAttachment
	default:
		return entity.DocumentTypeOtherAttachment
	}
}
