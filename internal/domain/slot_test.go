package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

func slotAt(start types.TimeString, duration int) *Slot {
	return &Slot{
		Date:            time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC),
		StartTime:       start,
		DurationMinutes: duration,
	}
}

func appointmentAt(start types.TimeString, duration int, status AppointmentStatus) *Appointment {
	return &Appointment{
		ID:              1,
		ClientID:        42,
		ProfessionalID:  1,
		StartTime:       start,
		DurationMinutes: duration,
		Status:          status,
	}
}

func TestSlot_Overlaps(t *testing.T) {
	// Запись 10:00-11:00, кандидаты длительностью 60 минут
	appt := appointmentAt("10:00", 60, StatusConfirmed)

	tests := []struct {
		name  string
		start types.TimeString
		want  bool
	}{
		{name: "слот целиком до записи", start: "08:00", want: false},
		{name: "слот заканчивается ровно в начале записи", start: "09:00", want: false},
		{name: "слот цепляет начало записи", start: "09:30", want: true},
		{name: "слот совпадает с записью", start: "10:00", want: true},
		{name: "слот начинается внутри записи", start: "10:30", want: true},
		{name: "слот начинается ровно в конце записи", start: "11:00", want: false},
		{name: "слот целиком после записи", start: "12:00", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, slotAt(tt.start, 60).Overlaps(appt))
		})
	}
}

func TestSlot_Overlaps_InactiveAppointments(t *testing.T) {
	// Неактивные записи слот не блокируют
	for _, status := range []AppointmentStatus{
		StatusCancelledByClient,
		StatusCancelledByBusiness,
		StatusNoShow,
	} {
		t.Run(string(status), func(t *testing.T) {
			appt := appointmentAt("10:00", 60, status)
			assert.False(t, slotAt("10:00", 60).Overlaps(appt))
		})
	}
}

func TestSlot_Overlaps_ActiveStatuses(t *testing.T) {
	// pending удерживает слот так же, как confirmed
	for _, status := range []AppointmentStatus{StatusPending, StatusConfirmed, StatusCompleted} {
		t.Run(string(status), func(t *testing.T) {
			appt := appointmentAt("10:00", 60, status)
			assert.True(t, slotAt("10:00", 60).Overlaps(appt))
		})
	}
}

func TestSlot_Overlaps_ShortAppointmentInsideLongSlot(t *testing.T) {
	// Запись 10:00-10:15 внутри слота 09:30-11:00
	appt := appointmentAt("10:00", 15, StatusConfirmed)

	assert.True(t, slotAt("09:30", 90).Overlaps(appt))
}

func TestSlot_End(t *testing.T) {
	end, err := slotAt("10:30", 45).End()

	assert.NoError(t, err)
	assert.Equal(t, types.TimeString("11:15"), end)
}
