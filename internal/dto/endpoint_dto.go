package dto

import (
	"time"

	"github.com/google/uuid"

	"invoice-processor-be/internal/entity"
)

type EndpointResponse struct {
	Id        uuid.UUID           `json:"id"`
	Name      string              `json:"name"`
	Type      entity.EndpointType `json:"type"`
	Settings  map[string]string   `json:"settings"`
	CreatedAt time.Time           `json:"created_at"`
	UpdatedAt *time.Time          `json:"updated_at"`
}

type CreateEndpointRequest struct {
	Name     string            `json:"name" validate:"required"`
	Type     string            `json:"type" validate:"required,oneof=EMAIL_SOURCE STORAGE"`
	Settings map[string]string `json:"settings" validate:"required"`
}

type UpdateEndpointRequest struct {
	Id       uuid.UUID
	Name     string            `json:"name" validate:"required"`
	Settings map[string]string `json:"settings" validate:"required"`
}
