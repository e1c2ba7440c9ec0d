package implementation

import (
	"context"
	"errors"

	"invoice-processor-be/internal/entity"
	"invoice-processor-be/internal/mapper"
	"invoice-processor-be/internal/model"
	"invoice-processor-be/internal/repository/contract"
	"invoice-processor-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type StackRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.StackMapper
}

func NewStackRepository(db *gorm.DB) contract.StackRepository {
	return &StackRepositoryImpl{
		db:     db,
		mapper: mapper.NewStackMapper(),
	}
}

func (r *StackRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *StackRepositoryImpl) Create(ctx context.Context, stack *entity.Stack) error {
	m := r.mapper.ToModel(stack)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	docs := stack.Documents
	*stack = *r.mapper.ToEntity(m)
	stack.Documents = docs
	return nil
}

func (r *StackRepositoryImpl) Update(ctx context.Context, stack *entity.Stack) error {
	m := r.mapper.ToModel(stack)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	docs := stack.Documents
	*stack = *r.mapper.ToEntity(m)
	stack.Documents = docs
	return nil
}

func (r *StackRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Stack{}, id).Error
}

func (r *StackRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Stack, error) {
	var m model.Stack
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *StackRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Stack, error) {
	var models []*model.Stack
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *StackRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.Stack{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
