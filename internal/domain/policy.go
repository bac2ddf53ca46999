package domain

import "time"

// BookingPolicy represents the booking policy of a business
// Supports hierarchical configuration:
// 1. Professional + service (business_id, professional_id, service_id)
// 2. Professional-wide (business_id, professional_id, NULL)
// 3. Service-wide (business_id, NULL, service_id)
// 4. Business-wide (business_id, NULL, NULL)
type BookingPolicy struct {
	ID             int64
	BusinessID     int64
	ProfessionalID *int64 // NULL = политика для всех профессионалов бизнеса
	ServiceID      *int64 // NULL = политика для всех услуг

	SlotGranularityMinutes  int // Шаг сетки слотов
	MinBookingNoticeMinutes int // Минимальное время до начала слота при записи
	LateCancelNoticeMinutes int // Отмена позже этого порога требует подтверждения
	AdvanceBookingDays      int // 0 = без ограничений

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsBusinessWide returns true if this is a business-wide policy
func (p *BookingPolicy) IsBusinessWide() bool {
	return p.ProfessionalID == nil && p.ServiceID == nil
}

// IsProfessionalSpecific returns true if the policy targets a specific professional
func (p *BookingPolicy) IsProfessionalSpecific() bool {
	return p.ProfessionalID != nil && p.ServiceID == nil
}

// IsServiceSpecific returns true if the policy targets a specific service
func (p *BookingPolicy) IsServiceSpecific() bool {
	return p.ProfessionalID == nil && p.ServiceID != nil
}

// IsProfessionalService returns true if the policy targets a specific service of a specific professional
func (p *BookingPolicy) IsProfessionalService() bool {
	return p.ProfessionalID != nil && p.ServiceID != nil
}

// HasAdvanceBookingLimit returns true if there's a limit on how far in advance bookings can be made
func (p *BookingPolicy) HasAdvanceBookingLimit() bool {
	return p.AdvanceBookingDays > 0
}

// DefaultBookingPolicy возвращает политику с дефолтными значениями
// Используется, когда для бизнеса не настроена ни одна политика
func DefaultBookingPolicy(businessID int64) *BookingPolicy {
	return &BookingPolicy{
		BusinessID:              businessID,
		SlotGranularityMinutes:  DefaultSlotGranularityMinutes,
		MinBookingNoticeMinutes: DefaultMinBookingNoticeMinutes,
		LateCancelNoticeMinutes: DefaultLateCancelNoticeMinutes,
		AdvanceBookingDays:      DefaultAdvanceBookingDays,
	}
}
