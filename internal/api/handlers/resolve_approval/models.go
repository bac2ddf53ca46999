package resolve_approval

import (
	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/service/appointments/models"
)

// ResolveApprovalRequest HTTP request model
type ResolveApprovalRequest struct {
	Approve bool   `json:"approve"`
	Reason  string `json:"reason,omitempty"`
}

// OutcomeResponse итог решения для клиента
type OutcomeResponse struct {
	Status    string `json:"status"` // confirmed | cancelled
	Message   string `json:"message,omitempty"`
	FlowState string `json:"flowState"` // success | error
}

// ResolveApprovalResponse HTTP ответ: запись + итог решения
type ResolveApprovalResponse struct {
	Appointment *models.AppointmentResponse `json:"appointment"`
	Outcome     OutcomeResponse             `json:"outcome"`
}

// FromServiceResponse конвертирует ответ сервиса в HTTP response
func FromServiceResponse(resp *models.ResolveApprovalResponse) *ResolveApprovalResponse {
	flowState, err := domain.NextFlowState(domain.FlowReview, resp.Outcome)
	if err != nil {
		flowState = domain.FlowError
	}

	return &ResolveApprovalResponse{
		Appointment: resp.Appointment,
		Outcome: OutcomeResponse{
			Status:    string(resp.Outcome.Kind),
			Message:   resp.Outcome.Message,
			FlowState: string(flowState),
		},
	}
}
