package contract

import (
	"context"

	"invoice-processor-be/internal/entity"
	"invoice-processor-be/internal/repository/specification"

	"github.com/google/uuid"
)

type IntegrationEndpointRepository interface {
	Create(ctx context.Context, endpoint *entity.IntegrationEndpoint) error
	Update(ctx context.Context, endpoint *entity.IntegrationEndpoint) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.IntegrationEndpoint, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.IntegrationEndpoint, error)
}
