package models

import (
	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// Request модели

// GetPolicyRequest запрос действующей политики бронирования
type GetPolicyRequest struct {
	BusinessID     int64
	ProfessionalID *int64
	ServiceID      *int64
}

// UpsertPolicyRequest запрос на создание или изменение политики
type UpsertPolicyRequest struct {
	Session        domain.Session
	BusinessID     int64
	ProfessionalID *int64
	ServiceID      *int64

	SlotGranularityMinutes  int `json:"slotGranularityMinutes"`
	MinBookingNoticeMinutes int `json:"minBookingNoticeMinutes"`
	LateCancelNoticeMinutes int `json:"lateCancelNoticeMinutes"`
	AdvanceBookingDays      int `json:"advanceBookingDays"`
}

// ToDomainPolicy конвертирует request в domain модель
func (r *UpsertPolicyRequest) ToDomainPolicy() *domain.BookingPolicy {
	return &domain.BookingPolicy{
		BusinessID:              r.BusinessID,
		ProfessionalID:          r.ProfessionalID,
		ServiceID:               r.ServiceID,
		SlotGranularityMinutes:  r.SlotGranularityMinutes,
		MinBookingNoticeMinutes: r.MinBookingNoticeMinutes,
		LateCancelNoticeMinutes: r.LateCancelNoticeMinutes,
		AdvanceBookingDays:      r.AdvanceBookingDays,
	}
}

// Response модели

// PolicyResponse ответ с политикой бронирования
type PolicyResponse struct {
	BusinessID     int64  `json:"businessId"`
	ProfessionalID *int64 `json:"professionalId,omitempty"`
	ServiceID      *int64 `json:"serviceId,omitempty"`

	SlotGranularityMinutes  int `json:"slotGranularityMinutes"`
	MinBookingNoticeMinutes int `json:"minBookingNoticeMinutes"`
	LateCancelNoticeMinutes int `json:"lateCancelNoticeMinutes"`
	AdvanceBookingDays      int `json:"advanceBookingDays"`

	// IsDefault true, когда для бизнеса не настроена ни одна политика
	IsDefault bool `json:"isDefault"`
}

// FromDomainPolicy конвертирует domain модель в response
func FromDomainPolicy(p *domain.BookingPolicy, isDefault bool) *PolicyResponse {
	return &PolicyResponse{
		BusinessID:              p.BusinessID,
		ProfessionalID:          p.ProfessionalID,
		ServiceID:               p.ServiceID,
		SlotGranularityMinutes:  p.SlotGranularityMinutes,
		MinBookingNoticeMinutes: p.MinBookingNoticeMinutes,
		LateCancelNoticeMinutes: p.LateCancelNoticeMinutes,
		AdvanceBookingDays:      p.AdvanceBookingDays,
		IsDefault:               isDefault,
	}
}
