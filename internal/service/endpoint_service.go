package service

import (
	"context"
	"time"

	"invoice-processor-be/internal/dto"
	"invoice-processor-be/internal/entity"
	"invoice-processor-be/internal/pkg/serverutils"
	"invoice-processor-be/internal/repository/specification"
	"invoice-processor-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

type IEndpointService interface {
	GetAll(ctx context.Context) ([]*dto.EndpointResponse, error)
	GetByType(ctx context.Context, endpointType entity.EndpointType) ([]*dto.EndpointResponse, error)
	Create(ctx context.Context, req *dto.CreateEndpointRequest) (*dto.EndpointResponse, error)
	Update(ctx context.Context, req *dto.UpdateEndpointRequest) (*dto.EndpointResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type endpointService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewEndpointService(uowFactory unitofwork.RepositoryFactory) IEndpointService {
	return &endpointService{
		uowFactory: uowFactory,
	}
}

func (s *endpointService) GetAll(ctx context.Context) ([]*dto.EndpointResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	endpoints, err := uow.IntegrationEndpointRepository().FindAll(ctx,
		specification.OrderBy{Field: "created_at"},
	)
	if err != nil {
		return nil, err
	}
	return mapEndpoints(endpoints), nil
}

func (s *endpointService) GetByType(ctx context.Context, endpointType entity.EndpointType) ([]*dto.EndpointResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	endpoints, err := uow.IntegrationEndpointRepository().FindAll(ctx,
		specification.ByEndpointType{Type: string(endpointType)},
		specification.OrderBy{Field: "created_at"},
	)
	if err != nil {
		return nil, err
	}
	return mapEndpoints(endpoints), nil
}

func (s *endpointService) Create(ctx context.Context, req *dto.CreateEndpointRequest) (*dto.EndpointResponse, error) {
	endpoint := entity.NewIntegrationEndpoint(req.Name, entity.EndpointType(req.Type), req.Settings)
	if err := validateSettings(endpoint); err != nil {
		return nil, err
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.IntegrationEndpointRepository().Create(ctx, endpoint); err != nil {
		return nil, err
	}
	return mapEndpoint(endpoint), nil
}

func (s *endpointService) Update(ctx context.Context, req *dto.UpdateEndpointRequest) (*dto.EndpointResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	endpoint, err := uow.IntegrationEndpointRepository().FindOne(ctx, specification.ByID{ID: req.Id})
	if err != nil {
		return nil, err
	}
	if endpoint == nil {
		return nil, serverutils.NewNotFoundError("endpoint not found")
	}

	endpoint.Name = req.Name
	endpoint.Settings = req.Settings
	now := time.Now()
	endpoint.UpdatedAt = &now

	if err := validateSettings(endpoint); err != nil {
		return nil, err
	}

	if err := uow.IntegrationEndpointRepository().Update(ctx, endpoint); err != nil {
		return nil, err
	}
	return mapEndpoint(endpoint), nil
}

func (s *endpointService) Delete(ctx context.Context, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	endpoint, err := uow.IntegrationEndpointRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return err
	}
	if endpoint == nil {
		return serverutils.NewNotFoundError("endpoint not found")
	}

	return uow.IntegrationEndpointRepository().Delete(ctx, id)
}

// validateSettings rejects configurations the typed views cannot read, so
// a broken endpoint never reaches the importer or the storage client.
func validateSettings(endpoint *entity.IntegrationEndpoint) error {
	var err error
	switch endpoint.Type {
	case entity.EndpointTypeEmailSource:
		_, err = endpoint.EmailSourceSettings()
	case entity.EndpointTypeStorage:
		_, err = endpoint.StorageSettings()
	default:
		return serverutils.NewBadRequestError("unknown endpoint type")
	}
	if err != nil {
		return serverutils.NewBadRequestError(err.Error())
	}
	return nil
}

func mapEndpoint(endpoint *entity.IntegrationEndpoint) *dto.EndpointResponse {
	return &dto.EndpointResponse{
		Id:        endpoint.Id,
		Name:      endpoint.Name,
		Type:      endpoint.Type,
		Settings:  endpoint.Settings,
		CreatedAt: endpoint.CreatedAt,
		UpdatedAt: endpoint.UpdatedAt,
	}
}

func mapEndpoints(endpoints []*entity.IntegrationEndpoint) []*dto.EndpointResponse {
	res := make([]*dto.EndpointResponse, 0, len(endpoints))
	for _, e := range endpoints {
		res = append(res, mapEndpoint(e))
	}
	return res
}
