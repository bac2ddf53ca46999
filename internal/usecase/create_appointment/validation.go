package create_appointment

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// validateRequest валидирует входные данные до любых внешних вызовов
func validateRequest(req *Request) error {
	if req.Session.UserID <= 0 {
		return fmt.Errorf("%w: session userID must be positive", ErrInvalidInput)
	}

	if req.ProfessionalID <= 0 {
		return fmt.Errorf("%w: professionalID must be positive", ErrInvalidInput)
	}

	if req.ServiceID <= 0 {
		return fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}

	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: startTime: %v", ErrInvalidInput, err)
	}

	if req.ClientID != nil {
		if *req.ClientID <= 0 {
			return fmt.Errorf("%w: clientID must be positive", ErrInvalidInput)
		}
		if !req.Session.Role.CanBookForOthers() {
			return fmt.Errorf("%w: role %q cannot book on behalf of a client", ErrPermissionDenied, req.Session.Role)
		}
	}

	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes exceed %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	return nil
}

// validateDate проверяет дату записи против текущей даты и политики
func validateDate(requestDate time.Time, now time.Time, advanceBookingDays int) error {
	dateOnly := truncateToDay(requestDate)
	nowOnly := truncateToDay(now)

	if dateOnly.Before(nowOnly) {
		return ErrInvalidDate
	}

	if advanceBookingDays == 0 {
		return nil
	}

	maxDate := nowOnly.AddDate(0, 0, advanceBookingDays)
	if dateOnly.After(maxDate) {
		return fmt.Errorf("%w: can only book %d days in advance", ErrDateTooFarInFuture, advanceBookingDays)
	}

	return nil
}

// validateSlotTime проверяет, что время попадает в рабочее окно,
// лежит на сетке слотов и услуга успевает закончиться до конца окна
func validateSlotTime(entry *domain.WeeklyAvailability, startTime types.TimeString, durationMinutes, granularityMinutes int) error {
	if entry == nil {
		return fmt.Errorf("%w: professional does not work on this day", ErrSlotNotAvailable)
	}

	if startTime.IsBefore(entry.StartTime) {
		return fmt.Errorf("%w: %s is before working hours", ErrSlotNotAvailable, startTime)
	}

	slotEnd, err := startTime.AddMinutes(durationMinutes)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrSlotNotAvailable, startTime, err)
	}
	if slotEnd.IsAfter(entry.EndTime) {
		return fmt.Errorf("%w: service does not fit into working hours", ErrSlotNotAvailable)
	}

	startMinutes, err := startTime.TotalMinutes()
	if err != nil {
		return fmt.Errorf("%w: startTime: %v", ErrInvalidInput, err)
	}
	windowStartMinutes, err := entry.StartTime.TotalMinutes()
	if err != nil {
		return fmt.Errorf("%w: schedule entry: %v", ErrInternal, err)
	}
	if (startMinutes-windowStartMinutes)%granularityMinutes != 0 {
		return fmt.Errorf("%w: %s is not aligned to the %d-minute slot grid", ErrSlotNotAvailable, startTime, granularityMinutes)
	}

	return nil
}

// validateNotice проверяет минимальное время уведомления для сегодняшней даты
func validateNotice(requestDate time.Time, startTime types.TimeString, now time.Time, minNoticeMinutes int) error {
	if !truncateToDay(requestDate).Equal(truncateToDay(now)) {
		return nil
	}

	minAllowed, err := types.NewTimeString(now).AddMinutes(minNoticeMinutes)
	if err != nil {
		// Минимальное время уведомления уходит за полночь - сегодня записаться нельзя
		return ErrTooLateToBook
	}

	if startTime.IsBefore(minAllowed) {
		return ErrTooLateToBook
	}

	return nil
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
