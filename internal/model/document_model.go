package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Document struct {
	Id               uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	StackId          uuid.UUID      `gorm:"type:uuid;not null;index"`
	Type             string         `gorm:"type:varchar(30);not null"`
	Filename         *string        `gorm:"type:varchar(255)"`
	ContentLocation  string         `gorm:"type:text"`
	Classification   string         `gorm:"type:varchar(20);not null"`
	ExtractionStatus string         `gorm:"type:varchar(20);not null;index"`
	Position         int            `gorm:"not null;default:0"`
	CreatedAt        time.Time      `gorm:"autoCreateTime"`
	UpdatedAt        time.Time      `gorm:"autoUpdateTime"`
	DeletedAt        gorm.DeletedAt `gorm:"index"`
}

func (Document) TableName() string {
	return "documents"
}
