package domain

// OutcomeKind вид результата операции бронирования/отмены
type OutcomeKind string

const (
	// OutcomeConfirmed запись принята сразу
	OutcomeConfirmed OutcomeKind = "confirmed"
	// OutcomeCancelled отмена выполнена сразу
	OutcomeCancelled OutcomeKind = "cancelled"
	// OutcomePendingApproval операция принята, но требует подтверждения
	// Это НЕ ошибка - отдельный успешный вариант, который UI обязан
	// отображать иначе, чем подтверждение и чем отказ
	OutcomePendingApproval OutcomeKind = "pending_approval"
	// OutcomeRejected операция отклонена
	OutcomeRejected OutcomeKind = "rejected"
)

// Outcome результат операции бронирования или отмены
// Message заполняется для pending_approval и rejected
type Outcome struct {
	Kind    OutcomeKind
	Message string
}

// ConfirmedOutcome результат "подтверждено"
func ConfirmedOutcome() Outcome {
	return Outcome{Kind: OutcomeConfirmed}
}

// CancelledOutcome результат "отменено"
func CancelledOutcome() Outcome {
	return Outcome{Kind: OutcomeCancelled}
}

// PendingApprovalOutcome результат "ожидает подтверждения" с пояснением
func PendingApprovalOutcome(message string) Outcome {
	return Outcome{Kind: OutcomePendingApproval, Message: message}
}

// RejectedOutcome результат "отклонено" с причиной
// Если причина пустая, подставляется общий текст
func RejectedOutcome(reason string) Outcome {
	if reason == "" {
		reason = GenericRejectionMessage
	}
	return Outcome{Kind: OutcomeRejected, Message: reason}
}

// GenericRejectionMessage общий текст отказа, когда backend не вернул причину
const GenericRejectionMessage = "операция отклонена, попробуйте позже"

// IsFailure возвращает true только для отказа
// pending_approval отказом не является
func (o Outcome) IsFailure() bool {
	return o.Kind == OutcomeRejected
}

// IsAccepted возвращает true для всех успешных вариантов,
// включая ожидание подтверждения
func (o Outcome) IsAccepted() bool {
	return o.Kind != OutcomeRejected
}
