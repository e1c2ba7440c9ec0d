package unitofwork

import (
	"context"

	"invoice-processor-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	StackRepository() contract.StackRepository
	DocumentRepository() contract.DocumentRepository
	InvoiceExtractionRepository() contract.InvoiceExtractionRepository
	IntegrationEndpointRepository() contract.IntegrationEndpointRepository
}
