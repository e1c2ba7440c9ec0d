package workflow

import "invoice-processor-be/internal/entity"

// OrderedStates is the progression presentation layers render for a stack.
// ERROR is an absorbing alternate terminal, not part of the ordered path.
var OrderedStates = []entity.StackStatus{
	entity.StackStatusReceived,
	entity.StackStatusProcessing,
	entity.StackStatusProcessed,
}

// IsStepCompleted reports whether the timeline step at stepIndex should be
// shown as completed given the current stack status. A step is completed if
// its index is at or before the current status' index. ERROR never
// completes earlier steps; it only marks itself.
func IsStepCompleted(current entity.StackStatus, stepIndex int) bool {
	if stepIndex < 0 || stepIndex >= len(OrderedStates) {
		return false
	}

	if current == entity.StackStatusError {
		return false
	}

	currentIndex := -1
	for i, state := range OrderedStates {
		if state == current {
			currentIndex = i
			break
		}
	}

	return currentIndex >= 0 && stepIndex <= currentIndex
}

// IsErrorStep reports whether the error marker itself should light up.
func IsErrorStep(current entity.StackStatus) bool {
	return current == entity.StackStatusError
}
