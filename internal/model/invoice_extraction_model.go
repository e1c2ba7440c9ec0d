package model

import (
	"time"

	"github.com/google/uuid"
)

type InvoiceExtraction struct {
	Id            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	DocumentId    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	InvoiceNumber string    `gorm:"type:varchar(100);not null"`
	InvoiceDate   time.Time `gorm:"type:date;not null"`
	SupplierName  string    `gorm:"type:varchar(255);not null"`
	TotalAmount   float64   `gorm:"type:numeric(14,2);not null"`
	Currency      string    `gorm:"type:varchar(10);not null"`
	CreatedAt     time.Time `gorm:"autoCreateTime"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime"`
}

func (InvoiceExtraction) TableName() string {
	return "invoice_extractions"
}
