package mapper

import (
	"fmt"
	"time"

	"invoice-processor-be/internal/entity"
	"invoice-processor-be/internal/model"

	"gorm.io/datatypes"
)

type IntegrationEndpointMapper struct{}

func NewIntegrationEndpointMapper() *IntegrationEndpointMapper {
	return &IntegrationEndpointMapper{}
}

func (m *IntegrationEndpointMapper) ToEntity(e *model.IntegrationEndpoint) *entity.IntegrationEndpoint {
	if e == nil {
		return nil
	}

	settings := make(map[string]string, len(e.Settings))
	for k, v := range e.Settings {
		if v == nil {
			continue
		}
		settings[k] = fmt.Sprintf("%v", v)
	}

	var updatedAt *time.Time
	if !e.UpdatedAt.IsZero() {
		t := e.UpdatedAt
		updatedAt = &t
	}

	return &entity.IntegrationEndpoint{
		Id:        e.Id,
		Name:      e.Name,
		Type:      entity.EndpointType(e.Type),
		Settings:  settings,
		CreatedAt: e.CreatedAt,
		UpdatedAt: updatedAt,
	}
}

func (m *IntegrationEndpointMapper) ToModel(e *entity.IntegrationEndpoint) *model.IntegrationEndpoint {
	if e == nil {
		return nil
	}

	settings := make(datatypes.JSONMap, len(e.Settings))
	for k, v := range e.Settings {
		settings[k] = v
	}

	var updatedAt time.Time
	if e.UpdatedAt != nil {
		updatedAt = *e.UpdatedAt
	}

	return &model.IntegrationEndpoint{
		Id:        e.Id,
		Name:      e.Name,
		Type:      string(e.Type),
		Settings:  settings,
		CreatedAt: e.CreatedAt,
		UpdatedAt: updatedAt,
	}
}

func (m *IntegrationEndpointMapper) ToEntities(endpoints []*model.IntegrationEndpoint) []*entity.IntegrationEndpoint {
	entities := make([]*entity.IntegrationEndpoint, len(endpoints))
	for i, e := range endpoints {
		entities[i] = m.ToEntity(e)
	}
	return entities
}
