package service

import (
	"context"
	"encoding/base64"
	"errors"
	"testing"

	"invoice-processor-be/internal/dto"
	"invoice-processor-be/internal/entity"
	"invoice-processor-be/internal/pkg/serverutils"
	"invoice-processor-be/internal/repository/specification"
	"invoice-processor-be/pkg/classifier"
	"invoice-processor-be/pkg/extractor"
	"invoice-processor-be/pkg/keylock"
	"invoice-processor-be/pkg/mailfetch"
	"invoice-processor-be/pkg/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// failableStorage fails Put for content tagged with the failing content
// type, letting tests force a mid-batch ingestion error.
type failableStorage struct {
	*storage.MemoryStorage
}

const failingContentType = "application/x-fail"

func (s *failableStorage) Put(ctx context.Context, key string, content []byte, contentType string) (string, error) {
	if contentType == failingContentType {
		return "", errors.New("storage unavailable")
	}
	return s.MemoryStorage.Put(ctx, key, content, contentType)
}

type testEnv struct {
	factory    *fakeFactory
	storage    *failableStorage
	fetcher    *fakeFetcher
	processing IProcessingService
	ingestion  IIngestionService
}

func newTestEnv() *testEnv {
	factory := newFakeFactory()
	store := &failableStorage{MemoryStorage: storage.NewMemoryStorage()}
	fetcher := &fakeFetcher{}

	processing := NewProcessingService(
		factory,
		classifier.NewClassifier(),
		extractor.NewStubExtractor(),
		store,
		keylock.New(),
		nopPublisher{},
		nopLogger{},
	)
	ingestion := NewIngestionService(factory, store, fetcher, processing, nopLogger{})

	return &testEnv{
		factory:    factory,
		storage:    store,
		fetcher:    fetcher,
		processing: processing,
		ingestion:  ingestion,
	}
}

func b64(s string) string {
	return base64.StdEncoding.EncodeToString([]byte(s))
}

func TestIngestEmailFullPipeline(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	res, err := env.ingestion.IngestEmail(ctx, &dto.SimulateEmailRequest{
		From:    "supplier@example.com",
		To:      "inbox@company.com",
		Subject: "March invoice",
		Body:    "Hi, nothing to see here.",
		Attachments: []dto.AttachmentPayload{
			{Filename: "invoice-march.pdf", ContentType: "application/pdf", Content: b64("%PDF-fake")},
		},
	})
	require.NoError(t, err)

	// Body has no invoice signal, the PDF extracts successfully, so the
	// whole stack lands in PROCESSED.
	assert.Equal(t, entity.StackStatusProcessed, res.Status)

	uow := env.factory.NewUnitOfWork(ctx)
	documents, err := uow.DocumentRepository().FindAll(ctx, specification.ByStackID{StackID: res.Id})
	require.NoError(t, err)
	require.Len(t, documents, 2)

	byType := make(map[entity.DocumentType]*entity.Document)
	for _, doc := range documents {
		byType[doc.Type] = doc
	}

	body := byType[entity.DocumentTypeEmailBody]
	require.NotNil(t, body)
	assert.Equal(t, entity.ClassificationNotInvoice, body.Classification)
	assert.Equal(t, entity.ExtractionStatusNotApplicable, body.ExtractionStatus)

	pdf := byType[entity.DocumentTypePdfAttachment]
	require.NotNil(t, pdf)
	assert.Equal(t, entity.ClassificationInvoice, pdf.Classification)
	assert.Equal(t, entity.ExtractionStatusProcessed, pdf.ExtractionStatus)

	invoice, err := uow.InvoiceExtractionRepository().FindOne(ctx, specification.ByDocumentID{DocumentID: pdf.Id})
	require.NoError(t, err)
	require.NotNil(t, invoice)
	assert.True(t, invoice.IsValid())

	// Body document has no extraction row.
	noInvoice, err := uow.InvoiceExtractionRepository().FindOne(ctx, specification.ByDocumentID{DocumentID: body.Id})
	require.NoError(t, err)
	assert.Nil(t, noInvoice)

	// Content is retrievable through the stored location.
	content, err := env.storage.Get(ctx, pdf.ContentLocation)
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-fake"), content)
}

func TestIngestEmailBodyOnly(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	res, err := env.ingestion.IngestEmail(ctx, &dto.SimulateEmailRequest{
		From:    "someone@example.com",
		Subject: "hello",
		Body:    "Just a greeting.",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.StackStatusProcessed, res.Status)

	uow := env.factory.NewUnitOfWork(ctx)
	documents, err := uow.DocumentRepository().FindAll(ctx, specification.ByStackID{StackID: res.Id})
	require.NoError(t, err)
	require.Len(t, documents, 1)
	assert.Equal(t, entity.DocumentTypeEmailBody, documents[0].Type)
}

func TestIngestEmailRejectsBadBase64(t *testing.T) {
	env := newTestEnv()

	_, err := env.ingestion.IngestEmail(context.Background(), &dto.SimulateEmailRequest{
		From:    "a@b.c",
		Subject: "s",
		Attachments: []dto.AttachmentPayload{
			{Filename: "x.pdf", Content: "!!! not base64 !!!"},
		},
	})
	require.Error(t, err)

	var appErr *serverutils.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 400, appErr.Code)
}

func TestIngestUploadHasNoBodyDocument(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	res, err := env.ingestion.IngestUpload(ctx, &dto.ManualUploadRequest{
		Subject: "Scanned receipts",
		Files: []dto.AttachmentPayload{
			{Filename: "invoice-1.pdf", ContentType: "application/pdf", Content: b64("a")},
			{Filename: "notes.txt", ContentType: "text/plain", Content: b64("meeting notes")},
		},
	})
	require.NoError(t, err)

	uow := env.factory.NewUnitOfWork(ctx)
	documents, err := uow.DocumentRepository().FindAll(ctx,
		specification.ByStackID{StackID: res.Id},
		specification.OrderBy{Field: "position"},
	)
	require.NoError(t, err)
	require.Len(t, documents, 2)
	assert.Equal(t, entity.DocumentTypePdfAttachment, documents[0].Type)
	assert.Equal(t, entity.DocumentTypeOtherAttachment, documents[1].Type)
	assert.Equal(t, 0, documents[0].Position)
	assert.Equal(t, 1, documents[1].Position)
}

func TestImportEmailsIsolatesFailures(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	// A configured mail source is required for the import to reach the
	// fetcher at all.
	uow := env.factory.NewUnitOfWork(ctx)
	err := uow.IntegrationEndpointRepository().Create(ctx, entity.NewIntegrationEndpoint(
		"inbox", entity.EndpointTypeEmailSource,
		map[string]string{"host": "imap.example.com", "username": "u", "password": "p"},
	))
	require.NoError(t, err)

	env.fetcher.messages = []*mailfetch.EmailMessage{
		{
			UID:     1,
			From:    "good@example.com",
			Subject: "ok",
			Body:    "fine",
		},
		{
			UID:     2,
			From:    "bad@example.com",
			Subject: "broken",
			Attachments: []mailfetch.EmailAttachment{
				{Filename: "x.bin", ContentType: failingContentType, Content: []byte("boom")},
			},
		},
	}

	res, err := env.ingestion.ImportEmails(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Found)
	assert.Equal(t, 1, res.StacksCreated)
	assert.Equal(t, 1, res.DocumentsCreated)
	assert.Equal(t, 1, res.Failed)

	// Only the imported message was marked read.
	assert.Equal(t, []uint32{1}, env.fetcher.readUIDs)

	// The failed message left no stack behind.
	count, err := uow.StackRepository().Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestImportEmailsSkipsMisconfiguredSource(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	uow := env.factory.NewUnitOfWork(ctx)
	err := uow.IntegrationEndpointRepository().Create(ctx, entity.NewIntegrationEndpoint(
		"broken", entity.EndpointTypeEmailSource, map[string]string{},
	))
	require.NoError(t, err)

	res, err := env.ingestion.ImportEmails(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, res.Found)
	assert.Equal(t, 0, res.StacksCreated)
	assert.Equal(t, 0, res.Failed)
}

func TestDetermineDocumentType(t *testing.T) {
	tests := []struct {
		filename    string
		contentType string
		want        entity.DocumentType
	}{
		{"a.pdf", "application/pdf", entity.DocumentTypePdfAttachment},
		{"a.bin", "application/pdf", entity.DocumentTypePdfAttachment},
		{"photo.jpg", "", entity.DocumentTypeImageAttachment},
		{"photo.bin", "image/png", entity.DocumentTypeImageAttachment},
		{"doc.PDF", "", entity.DocumentTypePdfAttachment},
		{"report.docx", "application/vnd.ms-word", entity.DocumentTypeOtherAttachment},
		{"noext", "", entity.DocumentTypeOtherAttachment},
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			assert.Equal(t, tt.want, DetermineDocumentType(tt.filename, tt.contentType))
		})
	}
}
