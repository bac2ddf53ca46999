package domain

import "errors"

// FlowState состояние пользовательского сценария бронирования/отмены
// Явный конечный автомат вместо набора булевых флагов:
// review -> success (confirmed / cancelled / pending_approval)
// review -> error (rejected)
// Терминальные состояния переходов не имеют
type FlowState string

const (
	FlowReview  FlowState = "review"
	FlowSuccess FlowState = "success"
	FlowError   FlowState = "error"
)

// ErrInvalidFlowTransition возвращается при переходе из терминального состояния
var ErrInvalidFlowTransition = errors.New("invalid flow state transition")

// NextFlowState применяет результат операции к текущему состоянию сценария
func NextFlowState(current FlowState, outcome Outcome) (FlowState, error) {
	if current != FlowReview {
		return current, ErrInvalidFlowTransition
	}

	if outcome.IsFailure() {
		return FlowError, nil
	}
	return FlowSuccess, nil
}

// IsTerminal возвращает true для конечных состояний сценария
func (s FlowState) IsTerminal() bool {
	return s == FlowSuccess || s == FlowError
}
