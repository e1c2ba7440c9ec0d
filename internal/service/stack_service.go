package service

import (
	"context"

	"invoice-processor-be/internal/dto"
	"invoice-processor-be/internal/entity"
	"invoice-processor-be/internal/pkg/serverutils"
	"invoice-processor-be/internal/repository/specification"
	"invoice-processor-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

type IStackService interface {
	GetAll(ctx context.Context, page, pageSize int) (*dto.GetAllStacksResponse, error)
	Show(ctx context.Context, id uuid.UUID) (*dto.ShowStackResponse, error)
}

type stackService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewStackService(uowFactory unitofwork.RepositoryFactory) IStackService {
	return &stackService{
		uowFactory: uowFactory,
	}
}

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

func (s *stackService) GetAll(ctx context.Context, page, pageSize int) (*dto.GetAllStacksResponse, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	total, err := uow.StackRepository().Count(ctx)
	if err != nil {
		return nil, err
	}

	stacks, err := uow.StackRepository().FindAll(ctx,
		specification.OrderBy{Field: "received_at", Desc: true},
		specification.Pagination{Limit: pageSize, Offset: (page - 1) * pageSize},
	)
	if err != nil {
		return nil, err
	}

	res := &dto.GetAllStacksResponse{
		Stacks:     make([]dto.StackListItem, 0, len(stacks)),
		Page:       page,
		PageSize:   pageSize,
		TotalCount: total,
	}

	if len(stacks) == 0 {
		return res, nil
	}

	stackIds := make([]uuid.UUID, 0, len(stacks))
	for _, st := range stacks {
		stackIds = append(stackIds, st.Id)
	}

	documents, err := uow.DocumentRepository().FindAll(ctx, specification.ByStackIDs{StackIDs: stackIds})
	if err != nil {
		return nil, err
	}

	docCounts := make(map[uuid.UUID]int)
	invoiceCounts := make(map[uuid.UUID]int)
	for _, doc := range documents {
		docCounts[doc.StackId]++
		if doc.ExtractionStatus == entity.ExtractionStatusProcessed {
			invoiceCounts[doc.StackId]++
		}
	}

	for _, st := range stacks {
		res.Stacks = append(res.Stacks, dto.StackListItem{
			Id:            st.Id,
			Subject:       st.Subject,
			FromAddress:   st.FromAddress,
			Status:        st.Status,
			DocumentCount: docCounts[st.Id],
			InvoiceCount:  invoiceCounts[st.Id],
			ReceivedAt:    st.ReceivedAt,
			CreatedAt:     st.CreatedAt,
			UpdatedAt:     st.UpdatedAt,
		})
	}

	return res, nil
}

func (s *stackService) Show(ctx context.Context, id uuid.UUID) (*dto.ShowStackResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	stack, err := uow.StackRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if stack == nil {
		return nil, serverutils.NewNotFoundError("stack not found")
	}

	documents, err := uow.DocumentRepository().FindAll(ctx,
		specification.ByStackID{StackID: id},
		specification.OrderBy{Field: "position"},
	)
	if err != nil {
		return nil, err
	}

	docIds := make([]uuid.UUID, 0, len(documents))
	for _, doc := range documents {
		docIds = append(docIds, doc.Id)
	}

	invoicesByDoc := make(map[uuid.UUID]*entity.InvoiceExtraction)
	if len(docIds) > 0 {
		extractions, err := uow.InvoiceExtractionRepository().FindAll(ctx,
			specification.ByDocumentIDs{DocumentIDs: docIds},
		)
		if err != nil {
			return nil, err
		}
		for _, ex := range extractions {
			invoicesByDoc[ex.DocumentId] = ex
		}
	}

	res := &dto.ShowStackResponse{
		Id:          stack.Id,
		Subject:     stack.Subject,
		FromAddress: stack.FromAddress,
		ToAddress:   stack.ToAddress,
		Status:      stack.Status,
		ReceivedAt:  stack.ReceivedAt,
		Documents:   make([]dto.DocumentResponse, 0, len(documents)),
		CreatedAt:   stack.CreatedAt,
		UpdatedAt:   stack.UpdatedAt,
	}

	for _, doc := range documents {
		item := dto.DocumentResponse{
			Id:               doc.Id,
			Type:             doc.Type,
			Filename:         doc.Filename,
			Classification:   doc.Classification,
			ExtractionStatus: doc.ExtractionStatus,
			Position:         doc.Position,
			CreatedAt:        doc.CreatedAt,
			UpdatedAt:        doc.UpdatedAt,
		}
		if ex, ok := invoicesByDoc[doc.Id]; ok {
			item.Invoice = &dto.InvoiceExtractionResponse{
				Id:            ex.Id,
				InvoiceNumber: ex.InvoiceNumber,
				InvoiceDate:   ex.InvoiceDate.Format("2006-01-02"),
				SupplierName:  ex.SupplierName,
				TotalAmount:   ex.TotalAmount,
				Currency:      ex.Currency,
			}
		}
		res.Documents = append(res.Documents, item)
	}

	return res, nil
}
