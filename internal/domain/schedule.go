package domain

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// WeeklyAvailability запись недельного расписания профессионала:
// рабочий интервал для одного дня недели
// Отсутствие записи для дня недели означает "в этот день не работает"
type WeeklyAvailability struct {
	ID             int64
	ProfessionalID int64
	DayOfWeek      int // 0 = воскресенье ... 6 = суббота, уникален в рамках профессионала
	StartTime      types.TimeString
	EndTime        types.TimeString

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Validate проверяет корректность записи расписания
func (w *WeeklyAvailability) Validate() error {
	if w.DayOfWeek < 0 || w.DayOfWeek > 6 {
		return fmt.Errorf("dayOfWeek must be between 0 and 6, got %d", w.DayOfWeek)
	}
	if err := w.StartTime.Validate(); err != nil {
		return fmt.Errorf("invalid startTime: %w", err)
	}
	if err := w.EndTime.Validate(); err != nil {
		return fmt.Errorf("invalid endTime: %w", err)
	}
	if !w.StartTime.IsBefore(w.EndTime) {
		return fmt.Errorf("startTime %s must be before endTime %s", w.StartTime, w.EndTime)
	}
	return nil
}

// WindowMinutes возвращает длину рабочего интервала в минутах
func (w *WeeklyAvailability) WindowMinutes() int {
	start, err := w.StartTime.TotalMinutes()
	if err != nil {
		return 0
	}
	end, err := w.EndTime.TotalMinutes()
	if err != nil {
		return 0
	}
	return end - start
}

// EntryForWeekday возвращает запись расписания для дня недели указанной даты
// nil означает, что профессионал в этот день не работает
func EntryForWeekday(entries []*WeeklyAvailability, date time.Time) *WeeklyAvailability {
	weekday := int(date.Weekday())
	for _, entry := range entries {
		if entry.DayOfWeek == weekday {
			return entry
		}
	}
	return nil
}
