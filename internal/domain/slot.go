package domain

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// Slot represents a bookable start time derived from the weekly availability,
// the service duration and the existing appointments of a professional
// Слоты не хранятся в БД и пересчитываются на каждый запрос
type Slot struct {
	Date            time.Time
	StartTime       types.TimeString
	DurationMinutes int
}

// End возвращает время окончания слота
func (s *Slot) End() (types.TimeString, error) {
	return s.StartTime.AddMinutes(s.DurationMinutes)
}

// Overlaps возвращает true, если интервал слота реально пересекается
// с активной записью. Граничные случаи (конец одного равен началу другого)
// пересечением не считаются
func (s *Slot) Overlaps(a *Appointment) bool {
	if !a.IsActive() {
		return false
	}

	slotEnd, err := s.End()
	if err != nil {
		return false
	}

	apptEnd, err := a.EndTime()
	if err != nil {
		return false
	}

	return a.StartTime.IsBefore(slotEnd) && apptEnd.IsAfter(s.StartTime)
}
