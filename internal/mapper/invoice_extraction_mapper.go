package mapper

import (
	"time"

	"invoice-processor-be/internal/entity"
	"invoice-processor-be/internal/model"
)

type InvoiceExtractionMapper struct{}

func NewInvoiceExtractionMapper() *InvoiceExtractionMapper {
	return &InvoiceExtractionMapper{}
}

func (m *InvoiceExtractionMapper) ToEntity(e *model.InvoiceExtraction) *entity.InvoiceExtraction {
	if e == nil {
		return nil
	}

	var updatedAt *time.Time
	if !e.UpdatedAt.IsZero() {
		t := e.UpdatedAt
		updatedAt = &t
	}

	return &entity.InvoiceExtraction{
		Id:            e.Id,
		DocumentId:    e.DocumentId,
		InvoiceNumber: e.InvoiceNumber,
		InvoiceDate:   e.InvoiceDate,
		SupplierName:  e.SupplierName,
		TotalAmount:   e.TotalAmount,
		Currency:      e.Currency,
		CreatedAt:     e.CreatedAt,
		UpdatedAt:     updatedAt,
	}
}

func (m *InvoiceExtractionMapper) ToModel(e *entity.InvoiceExtraction) *model.InvoiceExtraction {
	if e == nil {
		return nil
	}

	var updatedAt time.Time
	if e.UpdatedAt != nil {
		updatedAt = *e.UpdatedAt
	}

	return &model.InvoiceExtraction{
		Id:            e.Id,
		DocumentId:    e.DocumentId,
		InvoiceNumber: e.InvoiceNumber,
		InvoiceDate:   e.InvoiceDate,
		SupplierName:  e.SupplierName,
		TotalAmount:   e.TotalAmount,
		Currency:      e.Currency,
		CreatedAt:     e.CreatedAt,
		UpdatedAt:     updatedAt,
	}
}

func (m *InvoiceExtractionMapper) ToEntities(extractions []*model.InvoiceExtraction) []*entity.InvoiceExtraction {
	entities := make([]*entity.InvoiceExtraction, len(extractions))
	for i, e := range extractions {
		entities[i] = m.ToEntity(e)
	}
	return entities
}
