package dto

import (
	"github.com/google/uuid"

	"invoice-processor-be/internal/entity"
)

type ReextractResponse struct {
	DocumentId       uuid.UUID               `json:"document_id"`
	Classification   entity.Classification   `json:"classification"`
	ExtractionStatus entity.ExtractionStatus `json:"extraction_status"`
	StackStatus      entity.StackStatus      `json:"stack_status"`
}
