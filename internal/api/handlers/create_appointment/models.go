package create_appointment

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	createAppointment "github.com/m04kA/SMC-AppointmentService/internal/usecase/create_appointment"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// CreateAppointmentRequest HTTP request model
type CreateAppointmentRequest struct {
	ProfessionalID  int64   `json:"professionalId"`
	ServiceID       int64   `json:"serviceId"`
	AppointmentDate string  `json:"appointmentDate"` // "2026-09-07"
	StartTime       string  `json:"startTime"`       // "10:00"
	ClientID        *int64  `json:"clientId,omitempty"` // только для записи сотрудником
	Notes           *string `json:"notes,omitempty"`
}

// OutcomeResponse итог операции для клиента
type OutcomeResponse struct {
	Status    string `json:"status"` // confirmed | pending_approval
	Message   string `json:"message,omitempty"`
	FlowState string `json:"flowState"` // success | error
}

// AppointmentResponse HTTP response model
type AppointmentResponse struct {
	ID              int64   `json:"id"`
	ClientID        int64   `json:"clientId"`
	ProfessionalID  int64   `json:"professionalId"`
	BusinessID      int64   `json:"businessId"`
	ServiceID       int64   `json:"serviceId"`
	AppointmentDate string  `json:"appointmentDate"`
	StartTime       string  `json:"startTime"`
	DurationMinutes int     `json:"durationMinutes"`
	Status          string  `json:"status"`
	BookedByID      *int64  `json:"bookedById,omitempty"`
	ServiceName     string  `json:"serviceName"`
	ServicePrice    float64 `json:"servicePrice"`
	Notes           *string `json:"notes,omitempty"`
	CreatedAt       string  `json:"createdAt"`
}

// CreateAppointmentResponse HTTP ответ: запись + итог бронирования
type CreateAppointmentResponse struct {
	Appointment *AppointmentResponse `json:"appointment"`
	Outcome     OutcomeResponse      `json:"outcome"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateAppointmentRequest) ToUseCaseRequest(session domain.Session) (*createAppointment.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.AppointmentDate)
	if err != nil {
		return nil, err
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	return &createAppointment.Request{
		Session:        session,
		ProfessionalID: r.ProfessionalID,
		ServiceID:      r.ServiceID,
		Date:           date,
		StartTime:      startTime,
		ClientID:       r.ClientID,
		Notes:          r.Notes,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
// Сценарий бронирования завершается через конечный автомат состояний
func FromUseCaseResponse(resp *createAppointment.Response) *CreateAppointmentResponse {
	appt := resp.Appointment

	flowState, err := domain.NextFlowState(domain.FlowReview, resp.Outcome)
	if err != nil {
		flowState = domain.FlowError
	}

	return &CreateAppointmentResponse{
		Appointment: &AppointmentResponse{
			ID:              appt.ID,
			ClientID:        appt.ClientID,
			ProfessionalID:  appt.ProfessionalID,
			BusinessID:      appt.BusinessID,
			ServiceID:       appt.ServiceID,
			AppointmentDate: appt.AppointmentDate.Format(domain.DateFormat),
			StartTime:       appt.StartTime.String(),
			DurationMinutes: appt.DurationMinutes,
			Status:          string(appt.Status),
			BookedByID:      appt.BookedByID,
			ServiceName:     appt.ServiceName,
			ServicePrice:    appt.ServicePrice,
			Notes:           appt.Notes,
			CreatedAt:       appt.CreatedAt.Format(time.RFC3339),
		},
		Outcome: OutcomeResponse{
			Status:    string(resp.Outcome.Kind),
			Message:   resp.Outcome.Message,
			FlowState: string(flowState),
		},
	}
}
