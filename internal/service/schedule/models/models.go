package models

import (
	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// Request модели

// ScheduleEntry одна запись недельного расписания
type ScheduleEntry struct {
	DayOfWeek int    `json:"dayOfWeek"` // 0 = воскресенье
	StartTime string `json:"startTime"` // "09:00"
	EndTime   string `json:"endTime"`   // "18:00"
}

// ReplaceScheduleRequest запрос на полную замену расписания
type ReplaceScheduleRequest struct {
	Session        domain.Session
	ProfessionalID int64
	Entries        []ScheduleEntry
}

// ToDomainEntries конвертирует записи запроса в domain модели
func (r *ReplaceScheduleRequest) ToDomainEntries() []*domain.WeeklyAvailability {
	entries := make([]*domain.WeeklyAvailability, 0, len(r.Entries))
	for _, e := range r.Entries {
		entries = append(entries, &domain.WeeklyAvailability{
			ProfessionalID: r.ProfessionalID,
			DayOfWeek:      e.DayOfWeek,
			StartTime:      types.TimeString(e.StartTime),
			EndTime:        types.TimeString(e.EndTime),
		})
	}
	return entries
}

// Response модели

// ScheduleResponse ответ с недельным расписанием профессионала
type ScheduleResponse struct {
	ProfessionalID int64           `json:"professionalId"`
	Entries        []ScheduleEntry `json:"entries"`
}

// FromDomainEntries конвертирует domain модели в response
func FromDomainEntries(professionalID int64, entries []*domain.WeeklyAvailability) *ScheduleResponse {
	items := make([]ScheduleEntry, 0, len(entries))
	for _, e := range entries {
		items = append(items, ScheduleEntry{
			DayOfWeek: e.DayOfWeek,
			StartTime: e.StartTime.String(),
			EndTime:   e.EndTime.String(),
		})
	}
	return &ScheduleResponse{
		ProfessionalID: professionalID,
		Entries:        items,
	}
}
