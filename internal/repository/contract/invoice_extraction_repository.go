package contract

import (
	"context"

	"invoice-processor-be/internal/entity"
	"invoice-processor-be/internal/repository/specification"

	"github.com/google/uuid"
)

type InvoiceExtractionRepository interface {
	Create(ctx context.Context, extraction *entity.InvoiceExtraction) error
	DeleteByDocumentId(ctx context.Context, documentId uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.InvoiceExtraction, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.InvoiceExtraction, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
