package domain

// Default booking policy values
const (
	DefaultSlotGranularityMinutes  = 30
	DefaultMinBookingNoticeMinutes = 0
	DefaultLateCancelNoticeMinutes = 120 // 2 hours
	DefaultAdvanceBookingDays      = 0   // 0 = unlimited
)

// Business validation constants
const (
	MinSlotGranularityMinutes = 5
	MaxSlotGranularityMinutes = 240 // 4 hours
	MinBookingNoticeMinutes   = 0
	MaxBookingNoticeMinutes   = 10080 // 1 week
	MinLateCancelMinutes      = 0
	MaxLateCancelMinutes      = 10080
	MinAdvanceBookingDays     = 0
	MaxAdvanceBookingDays     = 365 // 1 year
	MaxNotesLength            = 500
	MaxCancelReasonLength     = 500
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// InactiveStatuses список статусов, не занимающих слот
// Используется при фильтрации записей для подсчёта доступных слотов
var InactiveStatuses = []AppointmentStatus{
	StatusCancelledByClient,
	StatusCancelledByBusiness,
	StatusNoShow,
}

// ActiveStatuses список статусов, занимающих слот
var ActiveStatuses = []AppointmentStatus{
	StatusPending,
	StatusConfirmed,
	StatusCompleted,
}
