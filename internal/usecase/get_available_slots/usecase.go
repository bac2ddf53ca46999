package get_available_slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/infra/storage/policy"
	"github.com/m04kA/SMC-AppointmentService/internal/integrations/directoryservice"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// UseCase получение доступных слотов для записи к профессионалу
type UseCase struct {
	apptRepo        AppointmentRepository
	scheduleRepo    ScheduleRepository
	policyRepo      PolicyRepository
	directoryClient DirectoryServiceClient
	timeProvider    TimeProvider
	logs            Logger
}

// NewUseCase конструктор UseCase для получения доступных слотов
func NewUseCase(
	apptRepo AppointmentRepository,
	scheduleRepo ScheduleRepository,
	policyRepo PolicyRepository,
	directoryClient DirectoryServiceClient,
	timeProvider TimeProvider,
	logs Logger,
) *UseCase {
	return &UseCase{
		apptRepo:        apptRepo,
		scheduleRepo:    scheduleRepo,
		policyRepo:      policyRepo,
		directoryClient: directoryClient,
		timeProvider:    timeProvider,
		logs:            logs,
	}
}

// Execute возвращает доступные слоты на дату для пары профессионал + услуга
//
// Слоты строятся по недельному расписанию профессионала с шагом из политики
// бронирования, с учетом уже существующих активных записей. Если на сегодня
// слотов не осталось, выполняется однократный переход на завтрашний день
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	now := uc.timeProvider.Now()

	// 2. Проверяем профессионала через DirectoryService
	professional, err := uc.directoryClient.GetProfessional(ctx, req.ProfessionalID)
	if err != nil {
		if errors.Is(err, directoryservice.ErrProfessionalNotFound) {
			return nil, fmt.Errorf("%w: professionalID=%d", ErrProfessionalNotFound, req.ProfessionalID)
		}
		uc.logs.Error("[GetAvailableSlots] Failed to get professional %d: %v", req.ProfessionalID, err)
		return nil, fmt.Errorf("%w: failed to get professional: %v", ErrInternal, err)
	}

	if !professional.Active {
		return nil, fmt.Errorf("%w: professionalID=%d", ErrProfessionalInactive, req.ProfessionalID)
	}

	// 3. Проверяем услугу и что профессионал ее оказывает
	service, err := uc.directoryClient.GetService(ctx, professional.BusinessID, req.ServiceID)
	if err != nil {
		if errors.Is(err, directoryservice.ErrServiceNotFound) {
			return nil, fmt.Errorf("%w: serviceID=%d", ErrServiceNotFound, req.ServiceID)
		}
		uc.logs.Error("[GetAvailableSlots] Failed to get service %d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	if !service.OfferedBy(req.ProfessionalID) {
		return nil, fmt.Errorf("%w: serviceID=%d, professionalID=%d", ErrServiceNotOffered, req.ServiceID, req.ProfessionalID)
	}

	// 4. Получаем политику бронирования с учетом иерархии
	bookingPolicy, err := uc.policyRepo.GetWithHierarchy(ctx, professional.BusinessID, &req.ProfessionalID, &req.ServiceID)
	if err != nil {
		if errors.Is(err, policy.ErrPolicyNotFound) {
			bookingPolicy = domain.DefaultBookingPolicy(professional.BusinessID)
		} else {
			uc.logs.Error("[GetAvailableSlots] Failed to get booking policy for business %d: %v", professional.BusinessID, err)
			return nil, fmt.Errorf("%w: failed to get booking policy: %v", ErrInternal, err)
		}
	}

	// 5. Проверяем дату запроса
	if err := validateDate(req.Date, now, bookingPolicy.AdvanceBookingDays); err != nil {
		return nil, err
	}

	// 6. Получаем недельное расписание профессионала
	entries, err := uc.scheduleRepo.GetByProfessional(ctx, req.ProfessionalID)
	if err != nil {
		uc.logs.Error("[GetAvailableSlots] Failed to get schedule for professional %d: %v", req.ProfessionalID, err)
		return nil, fmt.Errorf("%w: failed to get schedule: %v", ErrInternal, err)
	}

	// 7. Строим слоты с однократным переходом на завтра при пустом "сегодня"
	slotsFor := func(date time.Time) ([]types.TimeString, error) {
		return uc.slotsForDate(ctx, req.ProfessionalID, entries, date, now, service.DurationMinutes, bookingPolicy)
	}

	effectiveDate, slots, err := resolveWithRollover(req.Date, now, slotsFor)
	if err != nil {
		uc.logs.Error("[GetAvailableSlots] Failed to build slots for professional %d: %v", req.ProfessionalID, err)
		return nil, fmt.Errorf("%w: failed to build slots: %v", ErrInternal, err)
	}

	uc.logs.Info("[GetAvailableSlots] Built %d slots: professionalID=%d, serviceID=%d, date=%s",
		len(slots), req.ProfessionalID, req.ServiceID, effectiveDate.Format(domain.DateFormat))

	return &Response{
		Date:            req.Date,
		EffectiveDate:   effectiveDate,
		ProfessionalID:  req.ProfessionalID,
		ServiceID:       req.ServiceID,
		DurationMinutes: service.DurationMinutes,
		Slots:           slots,
	}, nil
}

// slotsForDate строит слоты на одну конкретную дату
func (uc *UseCase) slotsForDate(
	ctx context.Context,
	professionalID int64,
	entries []*domain.WeeklyAvailability,
	date time.Time,
	now time.Time,
	durationMinutes int,
	bookingPolicy *domain.BookingPolicy,
) ([]types.TimeString, error) {
	entry := domain.EntryForWeekday(entries, date)
	if entry == nil {
		return []types.TimeString{}, nil
	}

	appointments, err := uc.apptRepo.GetByProfessionalWithFilter(ctx, domain.ProfessionalAppointmentsFilter{
		ProfessionalID: professionalID,
		Date:           &date,
	})
	if err != nil {
		return nil, err
	}

	return generateSlots(
		entry,
		durationMinutes,
		bookingPolicy.SlotGranularityMinutes,
		date,
		now,
		bookingPolicy.MinBookingNoticeMinutes,
		appointments,
	)
}
