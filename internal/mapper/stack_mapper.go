package mapper

import (
	"time"

	"invoice-processor-be/internal/entity"
	"invoice-processor-be/internal/model"

	"gorm.io/gorm"
)

type StackMapper struct{}

func NewStackMapper() *StackMapper {
	return &StackMapper{}
}

func (m *StackMapper) ToEntity(s *model.Stack) *entity.Stack {
	if s == nil {
		return nil
	}

	var deletedAt *time.Time
	if s.DeletedAt.Valid {
		t := s.DeletedAt.Time
		deletedAt = &t
	}

	var updatedAt *time.Time
	if !s.UpdatedAt.IsZero() {
		t := s.UpdatedAt
		updatedAt = &t
	}

	return &entity.Stack{
		Id:          s.Id,
		Subject:     s.Subject,
		FromAddress: s.FromAddress,
		ToAddress:   s.ToAddress,
		ReceivedAt:  s.ReceivedAt,
		Status:      entity.StackStatus(s.Status),
		Documents:   make([]*entity.Document, 0),
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   updatedAt,
		DeletedAt:   deletedAt,
		IsDeleted:   s.DeletedAt.Valid,
	}
}

func (m *StackMapper) ToModel(s *entity.Stack) *model.Stack {
	if s == nil {
		return nil
	}

	var deletedAt gorm.DeletedAt
	if s.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *s.DeletedAt, Valid: true}
	} else if s.IsDeleted {
		deletedAt = gorm.DeletedAt{Time: time.Now(), Valid: true}
	}

	var updatedAt time.Time
	if s.UpdatedAt != nil {
		updatedAt = *s.UpdatedAt
	}

	return &model.Stack{
		Id:          s.Id,
		Subject:     s.Subject,
		FromAddress: s.FromAddress,
		ToAddress:   s.ToAddress,
		ReceivedAt:  s.ReceivedAt,
		Status:      string(s.Status),
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   updatedAt,
		DeletedAt:   deletedAt,
	}
}

func (m *StackMapper) ToEntities(stacks []*model.Stack) []*entity.Stack {
	entities := make([]*entity.Stack, len(stacks))
	for i, s := range stacks {
		entities[i] = m.ToEntity(s)
	}
	return entities
}
