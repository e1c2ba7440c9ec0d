package service

import (
	"context"
	"testing"

	"invoice-processor-be/internal/dto"
	"invoice-processor-be/internal/entity"
	"invoice-processor-be/internal/pkg/serverutils"
	"invoice-processor-be/internal/repository/memory"
	"invoice-processor-be/pkg/llm"
	"invoice-processor-be/pkg/storage"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingProvider captures the history it was handed so tests can
// inspect the prompt the service built.
type recordingProvider struct {
	lastHistory []llm.Message
	reply       string
}

func (p *recordingProvider) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	p.lastHistory = history
	return p.reply, nil
}

func (p *recordingProvider) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	return p.Chat(ctx, []llm.Message{{Role: "user", Content: prompt}}, options...)
}

func newChatEnv() (*fakeFactory, *memory.SessionRepository, *recordingProvider, *storage.MemoryStorage, IChatService) {
	factory := newFakeFactory()
	sessions := memory.NewSessionRepository()
	provider := &recordingProvider{reply: "the total is 199.99 EUR"}
	store := storage.NewMemoryStorage()
	svc := NewChatService(sessions, factory, provider, store, nopLogger{})
	return factory, sessions, provider, store, svc
}

func TestChatStartsNewSession(t *testing.T) {
	_, sessions, provider, _, svc := newChatEnv()

	res, err := svc.Query(context.Background(), &dto.ChatRequest{Message: "hello"})
	require.NoError(t, err)

	assert.NotEmpty(t, res.SessionId)
	assert.Equal(t, "the total is 199.99 EUR", res.Reply)

	session, found := sessions.Get(res.SessionId)
	require.True(t, found)
	require.Len(t, session.Messages, 2)
	assert.Equal(t, "user", session.Messages[0].Role)
	assert.Equal(t, "assistant", session.Messages[1].Role)

	// First turn: system prompt + the user message.
	require.Len(t, provider.lastHistory, 2)
	assert.Equal(t, "system", provider.lastHistory[0].Role)
}

func TestChatContinuesSession(t *testing.T) {
	_, _, provider, _, svc := newChatEnv()
	ctx := context.Background()

	first, err := svc.Query(ctx, &dto.ChatRequest{Message: "hello"})
	require.NoError(t, err)

	_, err = svc.Query(ctx, &dto.ChatRequest{SessionId: first.SessionId, Message: "and again"})
	require.NoError(t, err)

	// system + 2 prior turns + new user message
	assert.Len(t, provider.lastHistory, 4)
}

func TestChatRejectsUnknownSession(t *testing.T) {
	_, _, _, _, svc := newChatEnv()

	_, err := svc.Query(context.Background(), &dto.ChatRequest{SessionId: "gone", Message: "hi"})
	require.Error(t, err)

	var appErr *serverutils.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 404, appErr.Code)
}

func TestChatBindsDocumentAndGroundsPrompt(t *testing.T) {
	factory, _, provider, store, svc := newChatEnv()
	ctx := context.Background()

	filename := "invoice-march.txt"
	doc := entity.NewDocument(uuid.New(), entity.DocumentTypeOtherAttachment, &filename, "stacks/a/b/invoice-march.txt")
	doc.ExtractionStatus = entity.ExtractionStatusProcessed
	doc.Classification = entity.ClassificationInvoice

	uow := factory.NewUnitOfWork(ctx)
	require.NoError(t, uow.DocumentRepository().Create(ctx, doc))
	require.NoError(t, uow.InvoiceExtractionRepository().Create(ctx,
		entity.NewInvoiceExtraction(doc.Id, "INV-7", mustInvoiceDate(), "ACME GmbH", 199.99, "EUR"),
	))
	_, err := store.Put(ctx, doc.ContentLocation, []byte("Invoice INV-7 total 199.99 EUR"), "text/plain")
	require.NoError(t, err)

	res, err := svc.Query(ctx, &dto.ChatRequest{Message: "what is the total?", DocumentId: &doc.Id})
	require.NoError(t, err)

	require.NotNil(t, res.BoundDocumentId)
	assert.Equal(t, doc.Id, *res.BoundDocumentId)

	system := provider.lastHistory[0].Content
	assert.Contains(t, system, "invoice-march.txt")
	assert.Contains(t, system, "INV-7")
	assert.Contains(t, system, "ACME GmbH")
	assert.Contains(t, system, "Invoice INV-7 total 199.99 EUR")

	// The binding sticks for later turns without re-sending the id.
	_, err = svc.Query(ctx, &dto.ChatRequest{SessionId: res.SessionId, Message: "who sent it?"})
	require.NoError(t, err)
	assert.Contains(t, provider.lastHistory[0].Content, "INV-7")
}

func TestChatRejectsUnknownDocument(t *testing.T) {
	_, _, _, _, svc := newChatEnv()

	missing := uuid.New()
	_, err := svc.Query(context.Background(), &dto.ChatRequest{Message: "hi", DocumentId: &missing})
	require.Error(t, err)

	var appErr *serverutils.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 404, appErr.Code)
}

func TestChatSurvivesMissingContent(t *testing.T) {
	factory, _, _, _, svc := newChatEnv()
	ctx := context.Background()

	// Document exists but its blob is gone: the chat degrades to
	// ungrounded answers instead of failing.
	doc := entity.NewDocument(uuid.New(), entity.DocumentTypeEmailBody, nil, "stacks/missing")
	uow := factory.NewUnitOfWork(ctx)
	require.NoError(t, uow.DocumentRepository().Create(ctx, doc))

	res, err := svc.Query(ctx, &dto.ChatRequest{Message: "hi", DocumentId: &doc.Id})
	require.NoError(t, err)
	assert.NotEmpty(t, res.Reply)
}

func TestChatHistory(t *testing.T) {
	_, _, _, _, svc := newChatEnv()
	ctx := context.Background()

	res, err := svc.Query(ctx, &dto.ChatRequest{Message: "hello"})
	require.NoError(t, err)

	history, err := svc.History(ctx, res.SessionId)
	require.NoError(t, err)
	assert.Len(t, history.Messages, 2)

	_, err = svc.History(ctx, "unknown")
	require.Error(t, err)
}
