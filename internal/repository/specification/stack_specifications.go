package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ByStackID struct {
	StackID uuid.UUID
}

func (s ByStackID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("stack_id = ?", s.StackID)
}

type ByStackIDs struct {
	StackIDs []uuid.UUID
}

func (s ByStackIDs) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("stack_id IN ?", s.StackIDs)
}

type ByDocumentID struct {
	DocumentID uuid.UUID
}

func (s ByDocumentID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("document_id = ?", s.DocumentID)
}

type ByDocumentIDs struct {
	DocumentIDs []uuid.UUID
}

func (s ByDocumentIDs) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("document_id IN ?", s.DocumentIDs)
}

type ByEndpointType struct {
	Type string
}

func (s ByEndpointType) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("type = ?", s.Type)
}
