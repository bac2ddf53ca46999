package create_appointment

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrProfessionalNotFound возвращается, когда профессионал не найден
	ErrProfessionalNotFound = errors.New("professional not found")

	// ErrProfessionalInactive возвращается, когда профессионал не принимает записи
	ErrProfessionalInactive = errors.New("professional is not accepting appointments")

	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = errors.New("service not found")

	// ErrServiceNotOffered возвращается, когда услуга не оказывается этим профессионалом
	ErrServiceNotOffered = errors.New("service is not offered by this professional")

	// ErrPermissionDenied возвращается при записи от имени клиента без соответствующих прав
	ErrPermissionDenied = errors.New("permission denied")

	// ErrInvalidDate возвращается при некорректной дате (в прошлом)
	ErrInvalidDate = errors.New("invalid date")

	// ErrDateTooFarInFuture возвращается, когда дата превышает ограничение advanceBookingDays
	ErrDateTooFarInFuture = errors.New("date is too far in the future")

	// ErrSlotNotAvailable возвращается, когда время вне рабочего окна
	// или не совпадает с сеткой слотов
	ErrSlotNotAvailable = errors.New("slot is not available")

	// ErrTooLateToBook возвращается, когда до начала слота меньше минимального времени уведомления
	ErrTooLateToBook = errors.New("too late to book this slot")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)
