package dto

import (
	"github.com/google/uuid"

	"invoice-processor-be/internal/entity"
)

// StackProcessedMessage is published whenever a stack reaches a terminal
// status (PROCESSED or ERROR) after a processing run.
type StackProcessedMessage struct {
	StackId uuid.UUID          `json:"stack_id"`
	Status  entity.StackStatus `json:"status"`
}
