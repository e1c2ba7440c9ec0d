package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Stack struct {
	Id          uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Subject     string         `gorm:"type:text"`
	FromAddress string         `gorm:"type:varchar(320)"`
	ToAddress   string         `gorm:"type:varchar(320)"`
	ReceivedAt  time.Time      `gorm:"not null;index"`
	Status      string         `gorm:"type:varchar(20);not null"`
	CreatedAt   time.Time      `gorm:"autoCreateTime"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime"`
	DeletedAt   gorm.DeletedAt `gorm:"index"`
}

func (Stack) TableName() string {
	return "stacks"
}
