package service

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"invoice-processor-be/internal/entity"
	"invoice-processor-be/internal/pkg/logger"
	"invoice-processor-be/internal/repository/contract"
	"invoice-processor-be/internal/repository/specification"
	"invoice-processor-be/internal/repository/unitofwork"
	"invoice-processor-be/pkg/mailfetch"

	"github.com/google/uuid"
)

// The fakes below back the service tests with plain maps. They interpret
// the same specification values the gorm implementations translate to SQL,
// limited to the ones the services actually use.

type fakeState struct {
	mu         sync.Mutex
	stacks     map[uuid.UUID]*entity.Stack
	documents  map[uuid.UUID]*entity.Document
	invoices   map[uuid.UUID]*entity.InvoiceExtraction
	endpoints  map[uuid.UUID]*entity.IntegrationEndpoint
}

func newFakeState() *fakeState {
	return &fakeState{
		stacks:    make(map[uuid.UUID]*entity.Stack),
		documents: make(map[uuid.UUID]*entity.Document),
		invoices:  make(map[uuid.UUID]*entity.InvoiceExtraction),
		endpoints: make(map[uuid.UUID]*entity.IntegrationEndpoint),
	}
}

type fakeFactory struct {
	state *fakeState
}

func newFakeFactory() *fakeFactory {
	return &fakeFactory{state: newFakeState()}
}

func (f *fakeFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return &fakeUow{state: f.state}
}

type fakeUow struct {
	state *fakeState
}

func (u *fakeUow) Begin(ctx context.Context) error { return nil }
func (u *fakeUow) Commit() error                   { return nil }
func (u *fakeUow) Rollback() error                 { return nil }

func (u *fakeUow) StackRepository() contract.StackRepository {
	return &fakeStackRepo{state: u.state}
}

func (u *fakeUow) DocumentRepository() contract.DocumentRepository {
	return &fakeDocumentRepo{state: u.state}
}

func (u *fakeUow) InvoiceExtractionRepository() contract.InvoiceExtractionRepository {
	return &fakeInvoiceRepo{state: u.state}
}

func (u *fakeUow) IntegrationEndpointRepository() contract.IntegrationEndpointRepository {
	return &fakeEndpointRepo{state: u.state}
}

// specFilter holds the interpreted form of a spec list.
type specFilter struct {
	id          *uuid.UUID
	stackIds    []uuid.UUID
	documentIds []uuid.UUID
	typeFilter  string
	orderField  string
	orderDesc   bool
	limit       int
	offset      int
}

func interpretSpecs(specs []specification.Specification) (*specFilter, error) {
	f := &specFilter{limit: -1}
	for _, spec := range specs {
		switch s := spec.(type) {
		case specification.ByID:
			id := s.ID
			f.id = &id
		case specification.ByStackID:
			f.stackIds = []uuid.UUID{s.StackID}
		case specification.ByStackIDs:
			f.stackIds = s.StackIDs
		case specification.ByDocumentID:
			f.documentIds = []uuid.UUID{s.DocumentID}
		case specification.ByDocumentIDs:
			f.documentIds = s.DocumentIDs
		case specification.ByEndpointType:
			f.typeFilter = s.Type
		case specification.OrderBy:
			f.orderField = s.Field
			f.orderDesc = s.Desc
		case specification.Pagination:
			f.limit = s.Limit
			f.offset = s.Offset
		default:
			return nil, fmt.Errorf("fake repository cannot interpret spec %T", spec)
		}
	}
	return f, nil
}

func containsId(ids []uuid.UUID, id uuid.UUID) bool {
	for _, candidate := range ids {
		if candidate == id {
			return true
		}
	}
	return false
}

// --- stacks ---

type fakeStackRepo struct {
	state *fakeState
}

func (r *fakeStackRepo) Create(ctx context.Context, stack *entity.Stack) error {
	r.state.mu.Lock()
	defer r.state.mu.Unlock()
	copied := *stack
	r.state.stacks[stack.Id] = &copied
	return nil
}

func (r *fakeStackRepo) Update(ctx context.Context, stack *entity.Stack) error {
	r.state.mu.Lock()
	defer r.state.mu.Unlock()
	if _, ok := r.state.stacks[stack.Id]; !ok {
		return fmt.Errorf("stack %s does not exist", stack.Id)
	}
	copied := *stack
	r.state.stacks[stack.Id] = &copied
	return nil
}

func (r *fakeStackRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.state.mu.Lock()
	defer r.state.mu.Unlock()
	delete(r.state.stacks, id)
	return nil
}

func (r *fakeStackRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Stack, error) {
	all, err := r.FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}
	if len(all) == 0 {
		return nil, nil
	}
	return all[0], nil
}

func (r *fakeStackRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Stack, error) {
	f, err := interpretSpecs(specs)
	if err != nil {
		return nil, err
	}

	r.state.mu.Lock()
	defer r.state.mu.Unlock()

	result := make([]*entity.Stack, 0)
	for _, stack := range r.state.stacks {
		if f.id != nil && stack.Id != *f.id {
			continue
		}
		copied := *stack
		result = append(result, &copied)
	}

	if f.orderField == "received_at" {
		sort.Slice(result, func(i, j int) bool {
			if f.orderDesc {
				return result[i].ReceivedAt.After(result[j].ReceivedAt)
			}
			return result[i].ReceivedAt.Before(result[j].ReceivedAt)
		})
	}

	return paginate(result, f), nil
}

func (r *fakeStackRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	r.state.mu.Lock()
	defer r.state.mu.Unlock()
	return int64(len(r.state.stacks)), nil
}

// --- documents ---

type fakeDocumentRepo struct {
	state *fakeState
}

func (r *fakeDocumentRepo) Create(ctx context.Context, doc *entity.Document) error {
	r.state.mu.Lock()
	defer r.state.mu.Unlock()
	copied := *doc
	r.state.documents[doc.Id] = &copied
	return nil
}

func (r *fakeDocumentRepo) Update(ctx context.Context, doc *entity.Document) error {
	r.state.mu.Lock()
	defer r.state.mu.Unlock()
	if _, ok := r.state.documents[doc.Id]; !ok {
		return fmt.Errorf("document %s does not exist", doc.Id)
	}
	copied := *doc
	r.state.documents[doc.Id] = &copied
	return nil
}

func (r *fakeDocumentRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.state.mu.Lock()
	defer r.state.mu.Unlock()
	delete(r.state.documents, id)
	return nil
}

func (r *fakeDocumentRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Document, error) {
	all, err := r.FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}
	if len(all) == 0 {
		return nil, nil
	}
	return all[0], nil
}

func (r *fakeDocumentRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Document, error) {
	f, err := interpretSpecs(specs)
	if err != nil {
		return nil, err
	}

	r.state.mu.Lock()
	defer r.state.mu.Unlock()

	result := make([]*entity.Document, 0)
	for _, doc := range r.state.documents {
		if f.id != nil && doc.Id != *f.id {
			continue
		}
		if len(f.stackIds) > 0 && !containsId(f.stackIds, doc.StackId) {
			continue
		}
		copied := *doc
		result = append(result, &copied)
	}

	if f.orderField == "position" {
		sort.Slice(result, func(i, j int) bool {
			return result[i].Position < result[j].Position
		})
	}

	return paginate(result, f), nil
}

func (r *fakeDocumentRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	all, err := r.FindAll(ctx, specs...)
	if err != nil {
		return 0, err
	}
	return int64(len(all)), nil
}

// --- invoice extractions ---

type fakeInvoiceRepo struct {
	state *fakeState
}

func (r *fakeInvoiceRepo) Create(ctx context.Context, extraction *entity.InvoiceExtraction) error {
	r.state.mu.Lock()
	defer r.state.mu.Unlock()
	copied := *extraction
	r.state.invoices[extraction.Id] = &copied
	return nil
}

func (r *fakeInvoiceRepo) DeleteByDocumentId(ctx context.Context, documentId uuid.UUID) error {
	r.state.mu.Lock()
	defer r.state.mu.Unlock()
	for id, ex := range r.state.invoices {
		if ex.DocumentId == documentId {
			delete(r.state.invoices, id)
		}
	}
	return nil
}

func (r *fakeInvoiceRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.InvoiceExtraction, error) {
	all, err := r.FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}
	if len(all) == 0 {
		return nil, nil
	}
	return all[0], nil
}

func (r *fakeInvoiceRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.InvoiceExtraction, error) {
	f, err := interpretSpecs(specs)
	if err != nil {
		return nil, err
	}

	r.state.mu.Lock()
	defer r.state.mu.Unlock()

	result := make([]*entity.InvoiceExtraction, 0)
	for _, ex := range r.state.invoices {
		if f.id != nil && ex.Id != *f.id {
			continue
		}
		if len(f.documentIds) > 0 && !containsId(f.documentIds, ex.DocumentId) {
			continue
		}
		copied := *ex
		result = append(result, &copied)
	}
	return result, nil
}

func (r *fakeInvoiceRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	all, err := r.FindAll(ctx, specs...)
	if err != nil {
		return 0, err
	}
	return int64(len(all)), nil
}

// --- integration endpoints ---

type fakeEndpointRepo struct {
	state *fakeState
}

func (r *fakeEndpointRepo) Create(ctx context.Context, endpoint *entity.IntegrationEndpoint) error {
	r.state.mu.Lock()
	defer r.state.mu.Unlock()
	copied := *endpoint
	r.state.endpoints[endpoint.Id] = &copied
	return nil
}

func (r *fakeEndpointRepo) Update(ctx context.Context, endpoint *entity.IntegrationEndpoint) error {
	r.state.mu.Lock()
	defer r.state.mu.Unlock()
	if _, ok := r.state.endpoints[endpoint.Id]; !ok {
		return fmt.Errorf("endpoint %s does not exist", endpoint.Id)
	}
	copied := *endpoint
	r.state.endpoints[endpoint.Id] = &copied
	return nil
}

func (r *fakeEndpointRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.state.mu.Lock()
	defer r.state.mu.Unlock()
	delete(r.state.endpoints, id)
	return nil
}

func (r *fakeEndpointRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.IntegrationEndpoint, error) {
	all, err := r.FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}
	if len(all) == 0 {
		return nil, nil
	}
	return all[0], nil
}

func (r *fakeEndpointRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.IntegrationEndpoint, error) {
	f, err := interpretSpecs(specs)
	if err != nil {
		return nil, err
	}

	r.state.mu.Lock()
	defer r.state.mu.Unlock()

	result := make([]*entity.IntegrationEndpoint, 0)
	for _, endpoint := range r.state.endpoints {
		if f.id != nil && endpoint.Id != *f.id {
			continue
		}
		if f.typeFilter != "" && string(endpoint.Type) != f.typeFilter {
			continue
		}
		copied := *endpoint
		result = append(result, &copied)
	}

	if f.orderField == "created_at" {
		sort.Slice(result, func(i, j int) bool {
			return result[i].CreatedAt.Before(result[j].CreatedAt)
		})
	}

	return result, nil
}

func paginate[T any](items []T, f *specFilter) []T {
	if f.offset > 0 {
		if f.offset >= len(items) {
			return nil
		}
		items = items[f.offset:]
	}
	if f.limit >= 0 && f.limit < len(items) {
		items = items[:f.limit]
	}
	return items
}

// --- supporting fakes ---

type fakeFetcher struct {
	messages  []*mailfetch.EmailMessage
	fetchErr  error
	readUIDs  []uint32
}

func (f *fakeFetcher) FetchUnread(ctx context.Context, settings *entity.EmailSourceSettings) ([]*mailfetch.EmailMessage, error) {
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	return f.messages, nil
}

func (f *fakeFetcher) MarkRead(ctx context.Context, settings *entity.EmailSourceSettings, uid uint32) error {
	f.readUIDs = append(f.readUIDs, uid)
	return nil
}

type nopLogger struct{}

func (nopLogger) Debug(module, message string, details map[string]interface{}) {}
func (nopLogger) Info(module, message string, details map[string]interface{})  {}
func (nopLogger) Warn(module, message string, details map[string]interface{})  {}
func (nopLogger) Error(module, message string, details map[string]interface{}) {}
func (nopLogger) Sync() error                                                  { return nil }

var _ logger.ILogger = nopLogger{}

type nopPublisher struct{}

func (nopPublisher) PublishStackProcessed(ctx context.Context, stack *entity.Stack) error {
	return nil
}
