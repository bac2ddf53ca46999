package get_available_slots

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

func entry(day int, start, end string) *domain.WeeklyAvailability {
	return &domain.WeeklyAvailability{
		ProfessionalID: 1,
		DayOfWeek:      day,
		StartTime:      types.TimeString(start),
		EndTime:        types.TimeString(end),
	}
}

func activeAppointment(start string, durationMinutes int) *domain.Appointment {
	return &domain.Appointment{
		StartTime:       types.TimeString(start),
		DurationMinutes: durationMinutes,
		Status:          domain.StatusConfirmed,
	}
}

func asStrings(slots []types.TimeString) []string {
	out := make([]string, 0, len(slots))
	for _, s := range slots {
		out = append(out, s.String())
	}
	return out
}

func TestGenerateSlots_FullDayWithoutAppointments(t *testing.T) {
	// Рабочий день 08:00-18:00, услуга 60 минут, шаг 30 минут.
	// Последний допустимый старт - 17:00, итого 19 слотов
	workDay := entry(1, "08:00", "18:00")
	requestDate := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC) // понедельник
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

	slots, err := generateSlots(workDay, 60, 30, requestDate, now, 0, nil)
	require.NoError(t, err)

	assert.Len(t, slots, 19)
	assert.Equal(t, "08:00", slots[0].String())
	assert.Equal(t, "17:00", slots[len(slots)-1].String())

	// Слоты строго по возрастанию
	for i := 1; i < len(slots); i++ {
		assert.True(t, slots[i-1].IsBefore(slots[i]))
	}
}

func TestGenerateSlots_ExcludesOverlappingCandidates(t *testing.T) {
	// Запись 10:00-11:00 выбивает кандидатов 09:30, 10:00 и 10:30.
	// Граничные 09:00 (конец ровно в 10:00) и 11:00 (старт ровно
	// в конце записи) остаются доступными
	workDay := entry(1, "08:00", "18:00")
	requestDate := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

	appointments := []*domain.Appointment{
		activeAppointment("10:00", 60),
	}

	slots, err := generateSlots(workDay, 60, 30, requestDate, now, 0, appointments)
	require.NoError(t, err)

	got := asStrings(slots)
	assert.NotContains(t, got, "09:30")
	assert.NotContains(t, got, "10:00")
	assert.NotContains(t, got, "10:30")
	assert.Contains(t, got, "09:00")
	assert.Contains(t, got, "11:00")
}

func TestGenerateSlots_InactiveAppointmentsDoNotBlock(t *testing.T) {
	workDay := entry(1, "10:00", "12:00")
	requestDate := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

	appointments := []*domain.Appointment{
		{StartTime: types.TimeString("10:00"), DurationMinutes: 60, Status: domain.StatusCancelledByClient},
		{StartTime: types.TimeString("11:00"), DurationMinutes: 60, Status: domain.StatusNoShow},
	}

	slots, err := generateSlots(workDay, 60, 30, requestDate, now, 0, appointments)
	require.NoError(t, err)

	assert.Equal(t, []string{"10:00", "10:30", "11:00"}, asStrings(slots))
}

func TestGenerateSlots_ServiceLongerThanWindow(t *testing.T) {
	// Услуга 90 минут не помещается в часовое окно - слотов нет
	workDay := entry(1, "10:00", "11:00")
	requestDate := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

	slots, err := generateSlots(workDay, 90, 30, requestDate, now, 0, nil)
	require.NoError(t, err)

	assert.Empty(t, slots)
}

func TestGenerateSlots_NoScheduleEntry(t *testing.T) {
	requestDate := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

	slots, err := generateSlots(nil, 60, 30, requestDate, now, 0, nil)
	require.NoError(t, err)

	assert.Empty(t, slots)
}

func TestGenerateSlots_SameDayFiltersPastSlots(t *testing.T) {
	// Сейчас 14:10 - кандидаты до 14:10 отбрасываются
	workDay := entry(1, "08:00", "18:00")
	requestDate := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)
	now := time.Date(2026, 9, 7, 14, 10, 0, 0, time.UTC)

	slots, err := generateSlots(workDay, 60, 30, requestDate, now, 0, nil)
	require.NoError(t, err)

	require.NotEmpty(t, slots)
	assert.Equal(t, "14:30", slots[0].String())
	assert.Equal(t, "17:00", slots[len(slots)-1].String())
}

func TestGenerateSlots_SameDayRespectsMinNotice(t *testing.T) {
	// Сейчас 14:00, уведомление минимум за 60 минут - первый слот 15:00
	workDay := entry(1, "08:00", "18:00")
	requestDate := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)
	now := time.Date(2026, 9, 7, 14, 0, 0, 0, time.UTC)

	slots, err := generateSlots(workDay, 60, 30, requestDate, now, 60, nil)
	require.NoError(t, err)

	require.NotEmpty(t, slots)
	assert.Equal(t, "15:00", slots[0].String())
}

func TestGenerateSlots_FutureDateIgnoresCurrentTime(t *testing.T) {
	// Для будущей даты текущее время не влияет на результат
	workDay := entry(1, "08:00", "18:00")
	requestDate := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)
	now := time.Date(2026, 9, 1, 17, 45, 0, 0, time.UTC)

	slots, err := generateSlots(workDay, 60, 30, requestDate, now, 0, nil)
	require.NoError(t, err)

	assert.Equal(t, "08:00", slots[0].String())
}

func TestGenerateSlots_Deterministic(t *testing.T) {
	workDay := entry(1, "09:00", "13:00")
	requestDate := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

	appointments := []*domain.Appointment{
		activeAppointment("10:00", 30),
		activeAppointment("11:30", 60),
	}

	first, err := generateSlots(workDay, 30, 30, requestDate, now, 0, appointments)
	require.NoError(t, err)

	second, err := generateSlots(workDay, 30, 30, requestDate, now, 0, appointments)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestGenerateSlots_GranularitySixtyMinutes(t *testing.T) {
	workDay := entry(1, "08:00", "18:00")
	requestDate := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

	slots, err := generateSlots(workDay, 60, 60, requestDate, now, 0, nil)
	require.NoError(t, err)

	assert.Equal(t, []string{
		"08:00", "09:00", "10:00", "11:00", "12:00",
		"13:00", "14:00", "15:00", "16:00", "17:00",
	}, asStrings(slots))
}
