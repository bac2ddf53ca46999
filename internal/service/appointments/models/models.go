package models

import (
	"errors"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid appointment status")
)

// Request модели

// GetClientAppointmentsRequest запрос истории записей клиента
type GetClientAppointmentsRequest struct {
	Session domain.Session
	Status  *string
}

// GetProfessionalAppointmentsRequest запрос повестки профессионала
type GetProfessionalAppointmentsRequest struct {
	Session         domain.Session
	ProfessionalID  int64
	Date            *time.Time
	Status          *string
	IncludeInactive bool
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *GetProfessionalAppointmentsRequest) ToDomainFilter() (domain.ProfessionalAppointmentsFilter, error) {
	filter := domain.ProfessionalAppointmentsFilter{
		ProfessionalID:  r.ProfessionalID,
		Date:            r.Date,
		IncludeInactive: r.IncludeInactive,
	}

	if r.Status != nil {
		status, err := ToDomainAppointmentStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// CancelAppointmentRequest запрос на отмену записи
type CancelAppointmentRequest struct {
	Session            domain.Session
	CancellationReason string
}

// ResolveApprovalRequest решение бизнеса по записи в статусе pending
// Reason используется при отклонении записи
type ResolveApprovalRequest struct {
	Session domain.Session
	Approve bool
	Reason  string
}

// Response модели

// AppointmentResponse ответ с данными записи
type AppointmentResponse struct {
	ID              int64    `json:"id"`
	ClientID        int64    `json:"clientId"`
	ProfessionalID  int64    `json:"professionalId"`
	BusinessID      int64    `json:"businessId"`
	ServiceID       int64    `json:"serviceId"`
	AppointmentDate string   `json:"appointmentDate"` // "2026-09-07"
	StartTime       string   `json:"startTime"`       // "10:00"
	DurationMinutes int      `json:"durationMinutes"`
	Status          string   `json:"status"`
	BookedByID      *int64   `json:"bookedById,omitempty"`
	ServiceName     string   `json:"serviceName"`
	ServicePrice    float64  `json:"servicePrice"`
	Notes           *string  `json:"notes,omitempty"`
	CancelReason    *string  `json:"cancellationReason,omitempty"`
	CancelledAt     *string  `json:"cancelledAt,omitempty"`
	CreatedAt       string   `json:"createdAt"`
	UpdatedAt       string   `json:"updatedAt"`
}

// AppointmentListResponse ответ со списком записей
type AppointmentListResponse struct {
	Appointments []*AppointmentResponse `json:"appointments"`
	Total        int                    `json:"total"`
}

// CancelAppointmentResponse ответ на отмену записи
type CancelAppointmentResponse struct {
	Appointment *AppointmentResponse `json:"appointment"`
	Outcome     domain.Outcome       `json:"-"`
}

// ResolveApprovalResponse ответ на решение по pending записи
type ResolveApprovalResponse struct {
	Appointment *AppointmentResponse `json:"appointment"`
	Outcome     domain.Outcome       `json:"-"`
}

// Конвертация domain <-> API моделей

// FromDomainAppointment конвертирует domain модель в response
func FromDomainAppointment(a *domain.Appointment) *AppointmentResponse {
	resp := &AppointmentResponse{
		ID:              a.ID,
		ClientID:        a.ClientID,
		ProfessionalID:  a.ProfessionalID,
		BusinessID:      a.BusinessID,
		ServiceID:       a.ServiceID,
		AppointmentDate: a.AppointmentDate.Format(domain.DateFormat),
		StartTime:       a.StartTime.String(),
		DurationMinutes: a.DurationMinutes,
		Status:          string(a.Status),
		BookedByID:      a.BookedByID,
		ServiceName:     a.ServiceName,
		ServicePrice:    a.ServicePrice,
		Notes:           a.Notes,
		CancelReason:    a.CancellationReason,
		CreatedAt:       a.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       a.UpdatedAt.Format(time.RFC3339),
	}

	if a.CancelledAt != nil {
		cancelledAt := a.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &cancelledAt
	}

	return resp
}

// FromDomainAppointmentList конвертирует список domain моделей в response
func FromDomainAppointmentList(appointments []*domain.Appointment) *AppointmentListResponse {
	items := make([]*AppointmentResponse, 0, len(appointments))
	for _, a := range appointments {
		items = append(items, FromDomainAppointment(a))
	}
	return &AppointmentListResponse{
		Appointments: items,
		Total:        len(items),
	}
}

// ToDomainAppointmentStatus валидирует и конвертирует строку статуса
func ToDomainAppointmentStatus(s string) (domain.AppointmentStatus, error) {
	status := domain.AppointmentStatus(s)
	switch status {
	case domain.StatusPending,
		domain.StatusConfirmed,
		domain.StatusCompleted,
		domain.StatusCancelledByClient,
		domain.StatusCancelledByBusiness,
		domain.StatusNoShow:
		return status, nil
	default:
		return "", ErrInvalidStatus
	}
}
