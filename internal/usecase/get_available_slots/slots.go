package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// generateSlots генерирует список доступных слотов на день
//
// Кандидаты идут с фиксированным шагом granularity от начала рабочего
// интервала; первый кандидат включается всегда, кандидат отбрасывается,
// если его окончание (start + duration) выходит за конец интервала.
// Затем кандидаты фильтруются по текущему времени (только для сегодняшней
// даты) и по пересечению с активными записями.
//
// Результат детерминирован и отсортирован по возрастанию
func generateSlots(
	entry *domain.WeeklyAvailability,
	durationMinutes int,
	granularityMinutes int,
	requestDate time.Time,
	now time.Time,
	minNoticeMinutes int,
	appointments []*domain.Appointment,
) ([]types.TimeString, error) {
	// Нет записи расписания на этот день недели - профессионал не работает
	if entry == nil {
		return []types.TimeString{}, nil
	}

	// Шаг 1: генерируем всех кандидатов в рабочем интервале
	candidates := make([]types.TimeString, 0)
	current := entry.StartTime

	for current.IsBefore(entry.EndTime) {
		slotEnd, err := current.AddMinutes(durationMinutes)
		if err != nil {
			return nil, err
		}
		// Услуга не успевает закончиться до конца рабочего дня
		if slotEnd.IsAfter(entry.EndTime) {
			break
		}

		candidates = append(candidates, current)

		next, err := current.AddMinutes(granularityMinutes)
		if err != nil {
			// Шаг вышел за пределы суток - кандидатов больше нет
			break
		}
		current = next
	}

	// Шаг 2: для сегодняшней даты отбрасываем слоты в прошлом
	// (плюс минимальное время уведомления из политики)
	if isSameDay(requestDate, now) {
		minAllowed, err := types.NewTimeString(now).AddMinutes(minNoticeMinutes)
		if err != nil {
			return []types.TimeString{}, nil
		}

		filtered := make([]types.TimeString, 0, len(candidates))
		for _, candidate := range candidates {
			if !candidate.IsBefore(minAllowed) {
				filtered = append(filtered, candidate)
			}
		}
		candidates = filtered
	}

	// Шаг 3: отбрасываем кандидатов, пересекающихся с активными записями
	available := make([]types.TimeString, 0, len(candidates))
	for _, candidate := range candidates {
		slot := domain.Slot{
			Date:            requestDate,
			StartTime:       candidate,
			DurationMinutes: durationMinutes,
		}

		if countOverlapping(&slot, appointments) == 0 {
			available = append(available, candidate)
		}
	}

	return available, nil
}

// countOverlapping подсчитывает количество активных записей, реально
// пересекающихся со слотом. Граничные случаи (запись заканчивается ровно
// в начале слота или наоборот) пересечением не считаются
func countOverlapping(slot *domain.Slot, appointments []*domain.Appointment) int {
	count := 0
	for _, appt := range appointments {
		if slot.Overlaps(appt) {
			count++
		}
	}
	return count
}

// isSameDay проверяет, что две даты относятся к одному и тому же дню
func isSameDay(date1, date2 time.Time) bool {
	y1, m1, d1 := date1.Date()
	y2, m2, d2 := date2.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// isDateInPast проверяет, что дата в прошлом (раньше сегодняшнего дня)
func isDateInPast(date, now time.Time) bool {
	// Обнуляем время, чтобы сравнивать только даты
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return dateOnly.Before(nowOnly)
}
