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

type IntegrationEndpointRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.IntegrationEndpointMapper
}

func NewIntegrationEndpointRepository(db *gorm.DB) contract.IntegrationEndpointRepository {
	return &IntegrationEndpointRepositoryImpl{
		db:     db,
		mapper: mapper.NewIntegrationEndpointMapper(),
	}
}

func (r *IntegrationEndpointRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *IntegrationEndpointRepositoryImpl) Create(ctx context.Context, endpoint *entity.IntegrationEndpoint) error {
	m := r.mapper.ToModel(endpoint)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*endpoint = *r.mapper.ToEntity(m)
	return nil
}

func (r *IntegrationEndpointRepositoryImpl) Update(ctx context.Context, endpoint *entity.IntegrationEndpoint) error {
	m := r.mapper.ToModel(endpoint)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*endpoint = *r.mapper.ToEntity(m)
	return nil
}

func (r *IntegrationEndpointRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.IntegrationEndpoint{}, id).Error
}

func (r *IntegrationEndpointRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.IntegrationEndpoint, error) {
	var m model.IntegrationEndpoint
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *IntegrationEndpointRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.IntegrationEndpoint, error) {
	var models []*model.IntegrationEndpoint
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}
