package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type IntegrationEndpoint struct {
	Id        uuid.UUID         `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name      string            `gorm:"type:varchar(255);not null"`
	Type      string            `gorm:"type:varchar(30);not null;index"`
	Settings  datatypes.JSONMap `gorm:"type:jsonb"`
	CreatedAt time.Time         `gorm:"autoCreateTime"`
	UpdatedAt time.Time         `gorm:"autoUpdateTime"`
}

func (IntegrationEndpoint) TableName() string {
	return "integration_endpoints"
}
