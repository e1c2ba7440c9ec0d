package service

import (
	"context"
	"fmt"
	"strings"

	"invoice-processor-be/internal/dto"
	"invoice-processor-be/internal/entity"
	"invoice-processor-be/internal/pkg/logger"
	"invoice-processor-be/internal/pkg/serverutils"
	"invoice-processor-be/internal/repository/memory"
	"invoice-processor-be/internal/repository/specification"
	"invoice-processor-be/internal/repository/unitofwork"
	"invoice-processor-be/pkg/doctext"
	"invoice-processor-be/pkg/llm"
	"invoice-processor-be/pkg/storage"
	"invoice-processor-be/pkg/store"
)

const chatSystemPrompt = `You are an assistant for an invoice processing system.
You answer questions about ingested documents and their extracted invoice data.
Keep answers short and factual. If you do not know something, say so; never invent invoice data.`

type IChatService interface {
	// Query runs one chat turn. An empty session id starts a new session;
	// an unknown one is rejected. A document id in the request binds that
	// document to the session so later turns stay grounded in it.
	Query(ctx context.Context, req *dto.ChatRequest) (*dto.ChatResponse, error)
	History(ctx context.Context, sessionId string) (*dto.ChatHistoryResponse, error)
}

type chatService struct {
	sessions   *memory.SessionRepository
	uowFactory unitofwork.RepositoryFactory
	provider   llm.Provider
	storage    storage.ObjectStorage
	log        logger.ILogger
}

func NewChatService(
	sessions *memory.SessionRepository,
	uowFactory unitofwork.RepositoryFactory,
	provider llm.Provider,
	objectStore storage.ObjectStorage,
	log logger.ILogger,
) IChatService {
	return &chatService{
		sessions:   sessions,
		uowFactory: uowFactory,
		provider:   provider,
		storage:    objectStore,
		log:        log,
	}
}

func (s *chatService) Query(ctx context.Context, req *dto.ChatRequest) (*dto.ChatResponse, error) {
	session, err := s.resolveSession(req.SessionId)
	if err != nil {
		return nil, err
	}

	if req.DocumentId != nil {
		uow := s.uowFactory.NewUnitOfWork(ctx)
		doc, err := uow.DocumentRepository().FindOne(ctx, specification.ByID{ID: *req.DocumentId})
		if err != nil {
			return nil, err
		}
		if doc == nil {
			return nil, serverutils.NewNotFoundError("document not found")
		}
		session.BindDocument(doc.Id)
	}

	systemPrompt := chatSystemPrompt
	if session.BoundDocumentId != nil {
		docContext, err := s.buildDocumentContext(ctx, session)
		if err != nil {
			// Grounding is best effort; a missing blob must not kill the
			// conversation.
			s.log.Warn("chat", "failed to build document context", map[string]interface{}{
				"session_id": session.ID,
				"error":      err.Error(),
			})
		} else if docContext != "" {
			systemPrompt = systemPrompt + "\n\n" + docContext
		}
	}

	history := make([]llm.Message, 0, len(session.Messages)+2)
	history = append(history, llm.Message{Role: "system", Content: systemPrompt})
	for _, msg := range session.Messages {
		history = append(history, llm.Message{Role: msg.Role, Content: msg.Content})
	}
	history = append(history, llm.Message{Role: "user", Content: req.Message})

	reply, err := s.provider.Chat(ctx, history, llm.WithTemperature(0.2))
	if err != nil {
		return nil, serverutils.NewInternalError("chat provider failed", err)
	}

	session.Append("user", req.Message)
	session.Append("assistant", reply)
	s.sessions.Save(session)

	return &dto.ChatResponse{
		SessionId:       session.ID,
		Reply:           reply,
		BoundDocumentId: session.BoundDocumentId,
	}, nil
}

func (s *chatService) History(ctx context.Context, sessionId string) (*dto.ChatHistoryResponse, error) {
	session, found := s.sessions.Get(sessionId)
	if !found {
		return nil, serverutils.NewNotFoundError("chat session not found or expired")
	}

	res := &dto.ChatHistoryResponse{
		SessionId:       session.ID,
		Messages:        make([]dto.ChatMessageResponse, 0, len(session.Messages)),
		BoundDocumentId: session.BoundDocumentId,
	}
	for _, msg := range session.Messages {
		res.Messages = append(res.Messages, dto.ChatMessageResponse{
			Role:    msg.Role,
			Content: msg.Content,
			SentAt:  msg.SentAt,
		})
	}
	return res, nil
}

func (s *chatService) resolveSession(sessionId string) (*store.ChatSession, error) {
	if sessionId == "" {
		return store.NewChatSession(), nil
	}
	session, found := s.sessions.Get(sessionId)
	if !found {
		return nil, serverutils.NewNotFoundError("chat session not found or expired")
	}
	return session, nil
}

// buildDocumentContext renders the bound document (metadata, extracted
// invoice fields, and a bounded slice of its text) into prompt context.
func (s *chatService) buildDocumentContext(ctx context.Context, session *store.ChatSession) (string, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	doc, err := uow.DocumentRepository().FindOne(ctx, specification.ByID{ID: *session.BoundDocumentId})
	if err != nil {
		return "", err
	}
	if doc == nil {
		return "", fmt.Errorf("bound document %s no longer exists", session.BoundDocumentId)
	}

	var sb strings.Builder
	sb.WriteString("The user is asking about this document:\n")
	filename := "(none)"
	if doc.Filename != nil {
		filename = *doc.Filename
	}
	fmt.Fprintf(&sb, "Type: %s\nFilename: %s\nClassification: %s\nExtraction status: %s\n",
		doc.Type, filename, doc.Classification, doc.ExtractionStatus)

	if doc.ExtractionStatus == entity.ExtractionStatusProcessed {
		extraction, err := uow.InvoiceExtractionRepository().FindOne(ctx,
			specification.ByDocumentID{DocumentID: doc.Id},
		)
		if err != nil {
			return "", err
		}
		if extraction != nil {
			fmt.Fprintf(&sb, "Extracted invoice: number=%s date=%s supplier=%s total=%.2f %s\n",
				extraction.InvoiceNumber,
				extraction.InvoiceDate.Format("2006-01-02"),
				extraction.SupplierName,
				extraction.TotalAmount,
				extraction.Currency)
		}
	}

	content, err := s.storage.Get(ctx, doc.ContentLocation)
	if err != nil {
		return "", err
	}
	text, err := doctext.Extract(doc.Type, doc.Filename, content)
	if err == nil && text != "" {
		sb.WriteString("\nDocument text:\n")
		sb.WriteString(doctext.Truncate(text))
	}

	return sb.String(), nil
}
