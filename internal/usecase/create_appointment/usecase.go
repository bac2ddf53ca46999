package create_appointment

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/infra/storage/policy"
	"github.com/m04kA/SMC-AppointmentService/internal/integrations/directoryservice"
)

// UseCase создание записи к профессионалу
//
// Проверка занятости слота и вставка выполняются в одной SERIALIZABLE
// транзакции с блокировкой записей дня. Если слот успели занять, запись
// создается со статусом pending и возвращается как pending_approval -
// это вариант успеха, а не отказ
type UseCase struct {
	apptRepo        AppointmentRepository
	scheduleRepo    ScheduleRepository
	policyRepo      PolicyRepository
	directoryClient DirectoryServiceClient
	txManager       TxManager
	timeProvider    TimeProvider
	logs            Logger
}

// NewUseCase конструктор UseCase для создания записи
func NewUseCase(
	apptRepo AppointmentRepository,
	scheduleRepo ScheduleRepository,
	policyRepo PolicyRepository,
	directoryClient DirectoryServiceClient,
	txManager TxManager,
	timeProvider TimeProvider,
	logs Logger,
) *UseCase {
	return &UseCase{
		apptRepo:        apptRepo,
		scheduleRepo:    scheduleRepo,
		policyRepo:      policyRepo,
		directoryClient: directoryClient,
		txManager:       txManager,
		timeProvider:    timeProvider,
		logs:            logs,
	}
}

// Execute создает запись и возвращает итог бронирования
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных до любых внешних вызовов
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
		uc.logs.Error("[CreateAppointment] Failed to get professional %d: %v", req.ProfessionalID, err)
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
		uc.logs.Error("[CreateAppointment] Failed to get service %d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	if !service.OfferedBy(req.ProfessionalID) {
		return nil, fmt.Errorf("%w: serviceID=%d, professionalID=%d", ErrServiceNotOffered, req.ServiceID, req.ProfessionalID)
	}

	// 4. Запись от имени клиента доступна только сотрудникам этого бизнеса
	clientID, bookedByID, err := uc.resolveClient(ctx, req, professional.BusinessID)
	if err != nil {
		return nil, err
	}

	// 5. Получаем политику бронирования с учетом иерархии
	bookingPolicy, err := uc.policyRepo.GetWithHierarchy(ctx, professional.BusinessID, &req.ProfessionalID, &req.ServiceID)
	if err != nil {
		if errors.Is(err, policy.ErrPolicyNotFound) {
			bookingPolicy = domain.DefaultBookingPolicy(professional.BusinessID)
		} else {
			uc.logs.Error("[CreateAppointment] Failed to get booking policy for business %d: %v", professional.BusinessID, err)
			return nil, fmt.Errorf("%w: failed to get booking policy: %v", ErrInternal, err)
		}
	}

	// 6. Проверяем дату, рабочее окно и минимальное время уведомления
	if err := validateDate(req.Date, now, bookingPolicy.AdvanceBookingDays); err != nil {
		return nil, err
	}

	entries, err := uc.scheduleRepo.GetByProfessional(ctx, req.ProfessionalID)
	if err != nil {
		uc.logs.Error("[CreateAppointment] Failed to get schedule for professional %d: %v", req.ProfessionalID, err)
		return nil, fmt.Errorf("%w: failed to get schedule: %v", ErrInternal, err)
	}

	entry := domain.EntryForWeekday(entries, req.Date)
	if err := validateSlotTime(entry, req.StartTime, service.DurationMinutes, bookingPolicy.SlotGranularityMinutes); err != nil {
		return nil, err
	}

	if err := validateNotice(req.Date, req.StartTime, now, bookingPolicy.MinBookingNoticeMinutes); err != nil {
		return nil, err
	}

	appt := &domain.Appointment{
		ClientID:        clientID,
		ProfessionalID:  req.ProfessionalID,
		BusinessID:      professional.BusinessID,
		ServiceID:       req.ServiceID,
		AppointmentDate: truncateToDay(req.Date),
		StartTime:       req.StartTime,
		DurationMinutes: service.DurationMinutes,
		BookedByID:      bookedByID,
		ServiceName:     service.Name,
		Notes:           req.Notes,
	}
	if service.Price != nil {
		appt.ServicePrice = *service.Price
	}

	// 7. Проверка занятости и вставка в одной SERIALIZABLE транзакции
	var created *domain.Appointment
	var outcome domain.Outcome

	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		existing, err := uc.apptRepo.GetByProfessionalWithFilter(txCtx, domain.ProfessionalAppointmentsFilter{
			ProfessionalID: req.ProfessionalID,
			Date:           &appt.AppointmentDate,
		})
		if err != nil {
			return fmt.Errorf("failed to get appointments for conflict check: %w", err)
		}

		slot := domain.Slot{
			Date:            appt.AppointmentDate,
			StartTime:       req.StartTime,
			DurationMinutes: service.DurationMinutes,
		}

		if hasConflict(&slot, existing) {
			// Слот успели занять - создаем запись на подтверждение бизнесу
			appt.Status = domain.StatusPending
			outcome = domain.PendingApprovalOutcome(PendingApprovalMessage)
		} else {
			appt.Status = domain.StatusConfirmed
			outcome = domain.ConfirmedOutcome()
		}

		created, err = uc.apptRepo.Create(txCtx, appt)
		if err != nil {
			return fmt.Errorf("failed to create appointment: %w", err)
		}

		return nil
	})
	if err != nil {
		uc.logs.Error("[CreateAppointment] Transaction failed: professionalID=%d, date=%s: %v",
			req.ProfessionalID, req.Date.Format(domain.DateFormat), err)
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	uc.logs.Info("[CreateAppointment] Created appointment %d: professionalID=%d, clientID=%d, date=%s %s, status=%s",
		created.ID, req.ProfessionalID, clientID, req.Date.Format(domain.DateFormat), req.StartTime, created.Status)

	return &Response{
		Appointment: created,
		Outcome:     outcome,
	}, nil
}

// resolveClient определяет клиента записи и того, кто её оформил
//
// Самостоятельная запись: клиент - сам вызывающий. Запись от имени
// клиента требует членства вызывающего в персонале или администрации
// бизнеса (роль проверена при валидации)
func (uc *UseCase) resolveClient(ctx context.Context, req *Request, businessID int64) (clientID int64, bookedByID *int64, err error) {
	if req.ClientID == nil {
		return req.Session.UserID, nil, nil
	}

	business, err := uc.directoryClient.GetBusiness(ctx, businessID)
	if err != nil {
		if errors.Is(err, directoryservice.ErrBusinessNotFound) {
			return 0, nil, fmt.Errorf("%w: businessID=%d", ErrInternal, businessID)
		}
		uc.logs.Error("[CreateAppointment] Failed to get business %d: %v", businessID, err)
		return 0, nil, fmt.Errorf("%w: failed to get business: %v", ErrInternal, err)
	}

	if !business.IsStaff(req.Session.UserID) && !business.IsAdmin(req.Session.UserID) {
		return 0, nil, fmt.Errorf("%w: userID=%d is not staff of businessID=%d", ErrPermissionDenied, req.Session.UserID, businessID)
	}

	bookedBy := req.Session.UserID
	return *req.ClientID, &bookedBy, nil
}

// hasConflict проверяет пересечение слота с активными записями
func hasConflict(slot *domain.Slot, appointments []*domain.Appointment) bool {
	for _, appt := range appointments {
		if slot.Overlaps(appt) {
			return true
		}
	}
	return false
}
