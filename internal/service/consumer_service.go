package service

import (
	"context"
	"encoding/json"

	"invoice-processor-be/internal/dto"
	"invoice-processor-be/internal/pkg/logger"
	"invoice-processor-be/internal/repository/specification"
	"invoice-processor-be/internal/repository/unitofwork"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService listens for processed stacks and writes an audit log
// line summarizing what was extracted. It is the single subscriber of the
// in-process event bus; downstream integrations hook in here.
type consumerService struct {
	pubSub     *gochannel.GoChannel
	uowFactory unitofwork.RepositoryFactory
	log        logger.ILogger
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	uowFactory unitofwork.RepositoryFactory,
	log logger.ILogger,
) IConsumerService {
	return &consumerService{
		pubSub:     pubSub,
		uowFactory: uowFactory,
		log:        log,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, StackProcessedTopic)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.StackProcessedMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		cs.log.Error("consumer", "failed to unmarshal stack processed event", map[string]interface{}{
			"error": err.Error(),
		})
		msg.Ack() // malformed payloads would retry forever
		return
	}

	uow := cs.uowFactory.NewUnitOfWork(ctx)

	documents, err := uow.DocumentRepository().FindAll(ctx,
		specification.ByStackID{StackID: payload.StackId},
	)
	if err != nil {
		cs.log.Error("consumer", "failed to load documents for processed stack", map[string]interface{}{
			"stack_id": payload.StackId.String(),
			"error":    err.Error(),
		})
		msg.Nack()
		return
	}

	docIds := make([]uuid.UUID, 0, len(documents))
	for _, doc := range documents {
		docIds = append(docIds, doc.Id)
	}

	invoiceCount := 0
	totalsByCurrency := make(map[string]float64)
	if len(docIds) > 0 {
		extractions, err := uow.InvoiceExtractionRepository().FindAll(ctx,
			specification.ByDocumentIDs{DocumentIDs: docIds},
		)
		if err != nil {
			cs.log.Error("consumer", "failed to load extractions for processed stack", map[string]interface{}{
				"stack_id": payload.StackId.String(),
				"error":    err.Error(),
			})
			msg.Nack()
			return
		}
		invoiceCount = len(extractions)
		for _, ex := range extractions {
			totalsByCurrency[ex.Currency] += ex.TotalAmount
		}
	}

	cs.log.Info("consumer", "stack processing finished", map[string]interface{}{
		"stack_id":  payload.StackId.String(),
		"status":    string(payload.Status),
		"documents": len(documents),
		"invoices":  invoiceCount,
		"totals":    totalsByCurrency,
	})
	msg.Ack()
}
