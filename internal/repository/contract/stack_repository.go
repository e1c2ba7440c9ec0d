package contract

import (
	"context"

	"invoice-processor-be/internal/entity"
	"invoice-processor-be/internal/repository/specification"

	"github.com/google/uuid"
)

type StackRepository interface {
	Create(ctx context.Context, stack *entity.Stack) error
	Update(ctx context.Context, stack *entity.Stack) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Stack, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Stack, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
