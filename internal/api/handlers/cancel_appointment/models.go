package cancel_appointment

import (
	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/service/appointments/models"
)

// CancelAppointmentRequest HTTP request model
type CancelAppointmentRequest struct {
	CancellationReason string `json:"cancellationReason"`
}

// OutcomeResponse итог операции для клиента
type OutcomeResponse struct {
	Status    string `json:"status"` // cancelled | pending_approval
	Message   string `json:"message,omitempty"`
	FlowState string `json:"flowState"` // success | error
}

// CancelAppointmentResponse HTTP ответ: запись + итог отмены
type CancelAppointmentResponse struct {
	Appointment *models.AppointmentResponse `json:"appointment"`
	Outcome     OutcomeResponse             `json:"outcome"`
}

// FromServiceResponse конвертирует ответ сервиса в HTTP response
func FromServiceResponse(resp *models.CancelAppointmentResponse) *CancelAppointmentResponse {
	flowState, err := domain.NextFlowState(domain.FlowReview, resp.Outcome)
	if err != nil {
		flowState = domain.FlowError
	}

	return &CancelAppointmentResponse{
		Appointment: resp.Appointment,
		Outcome: OutcomeResponse{
			Status:    string(resp.Outcome.Kind),
			Message:   resp.Outcome.Message,
			FlowState: string(flowState),
		},
	}
}
