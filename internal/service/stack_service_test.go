package service

import (
	"context"
	"testing"
	"time"

	"invoice-processor-be/internal/entity"
	"invoice-processor-be/internal/pkg/serverutils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedStackWithDocs(t *testing.T, factory *fakeFactory, receivedAt time.Time, statuses ...entity.ExtractionStatus) *entity.Stack {
	t.Helper()
	ctx := context.Background()

	stack := entity.NewStack("sender@example.com", "inbox@example.com", "subject")
	stack.ReceivedAt = receivedAt

	uow := factory.NewUnitOfWork(ctx)
	for _, status := range statuses {
		filename := "file.pdf"
		doc := entity.NewDocument(stack.Id, entity.DocumentTypePdfAttachment, &filename, "k")
		doc.ExtractionStatus = status
		stack.AddDocument(doc)
		require.NoError(t, uow.DocumentRepository().Create(ctx, doc))

		if status == entity.ExtractionStatusProcessed {
			require.NoError(t, uow.InvoiceExtractionRepository().Create(ctx,
				entity.NewInvoiceExtraction(doc.Id, "INV-1", mustInvoiceDate(), "S", 1, "EUR"),
			))
		}
	}
	stack.UpdateStatusFromDocuments()
	require.NoError(t, uow.StackRepository().Create(ctx, stack))
	return stack
}

func TestGetAllStacksPagedWithCounts(t *testing.T) {
	factory := newFakeFactory()
	svc := NewStackService(factory)
	ctx := context.Background()

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	older := seedStackWithDocs(t, factory, base, entity.ExtractionStatusProcessed, entity.ExtractionStatusNotApplicable)
	newer := seedStackWithDocs(t, factory, base.Add(time.Hour), entity.ExtractionStatusPending)

	res, err := svc.GetAll(ctx, 1, 10)
	require.NoError(t, err)

	assert.Equal(t, int64(2), res.TotalCount)
	require.Len(t, res.Stacks, 2)

	// Newest first.
	assert.Equal(t, newer.Id, res.Stacks[0].Id)
	assert.Equal(t, older.Id, res.Stacks[1].Id)

	assert.Equal(t, 1, res.Stacks[0].DocumentCount)
	assert.Equal(t, 0, res.Stacks[0].InvoiceCount)
	assert.Equal(t, entity.StackStatusProcessing, res.Stacks[0].Status)

	assert.Equal(t, 2, res.Stacks[1].DocumentCount)
	assert.Equal(t, 1, res.Stacks[1].InvoiceCount)
	assert.Equal(t, entity.StackStatusProcessed, res.Stacks[1].Status)
}

func TestGetAllStacksPagination(t *testing.T) {
	factory := newFakeFactory()
	svc := NewStackService(factory)
	ctx := context.Background()

	base := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		seedStackWithDocs(t, factory, base.Add(time.Duration(i)*time.Minute))
	}

	page1, err := svc.GetAll(ctx, 1, 2)
	require.NoError(t, err)
	assert.Len(t, page1.Stacks, 2)
	assert.Equal(t, int64(5), page1.TotalCount)

	page3, err := svc.GetAll(ctx, 3, 2)
	require.NoError(t, err)
	assert.Len(t, page3.Stacks, 1)

	// Out-of-range parameters fall back to sane defaults.
	res, err := svc.GetAll(ctx, 0, -1)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Page)
	assert.Equal(t, defaultPageSize, res.PageSize)
}

func TestShowStack(t *testing.T) {
	factory := newFakeFactory()
	svc := NewStackService(factory)
	ctx := context.Background()

	stack := seedStackWithDocs(t, factory, time.Now(),
		entity.ExtractionStatusProcessed,
		entity.ExtractionStatusNotApplicable,
	)

	res, err := svc.Show(ctx, stack.Id)
	require.NoError(t, err)

	assert.Equal(t, stack.Id, res.Id)
	assert.Equal(t, entity.StackStatusProcessed, res.Status)
	require.Len(t, res.Documents, 2)

	// Documents come back in ingestion order.
	assert.Equal(t, 0, res.Documents[0].Position)
	assert.Equal(t, 1, res.Documents[1].Position)

	// Invoice data rides along only where an extraction exists.
	require.NotNil(t, res.Documents[0].Invoice)
	assert.Equal(t, "INV-1", res.Documents[0].Invoice.InvoiceNumber)
	assert.Nil(t, res.Documents[1].Invoice)
}

func TestShowStackNotFound(t *testing.T) {
	factory := newFakeFactory()
	svc := NewStackService(factory)

	_, err := svc.Show(context.Background(), uuid.New())
	require.Error(t, err)

	var appErr *serverutils.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 404, appErr.Code)
}
