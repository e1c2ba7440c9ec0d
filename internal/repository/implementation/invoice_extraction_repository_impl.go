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

type InvoiceExtractionRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.InvoiceExtractionMapper
}

func NewInvoiceExtractionRepository(db *gorm.DB) contract.InvoiceExtractionRepository {
	return &InvoiceExtractionRepositoryImpl{
		db:     db,
		mapper: mapper.NewInvoiceExtractionMapper(),
	}
}

func (r *InvoiceExtractionRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *InvoiceExtractionRepositoryImpl) Create(ctx context.Context, extraction *entity.InvoiceExtraction) error {
	m := r.mapper.ToModel(extraction)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*extraction = *r.mapper.ToEntity(m)
	return nil
}

func (r *InvoiceExtractionRepositoryImpl) DeleteByDocumentId(ctx context.Context, documentId uuid.UUID) error {
	return r.db.WithContext(ctx).Where("document_id = ?", documentId).Delete(&model.InvoiceExtraction{}).Error
}

func (r *InvoiceExtractionRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.InvoiceExtraction, error) {
	var m model.InvoiceExtraction
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *InvoiceExtractionRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.InvoiceExtraction, error) {
	var models []*model.InvoiceExtraction
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *InvoiceExtractionRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.InvoiceExtraction{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
