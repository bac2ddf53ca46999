package appointments

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	apptRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/appointment"
	policyRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/policy"
	directoryClient "github.com/m04kA/SMC-AppointmentService/internal/integrations/directoryservice"
	"github.com/m04kA/SMC-AppointmentService/internal/service/appointments/models"
)

// LateCancellationMessage сообщение для отмены, требующей подтверждения бизнесом
const LateCancellationMessage = "До начала записи осталось мало времени, отмена передана бизнесу на подтверждение"

// BookingDeclinedMessage сообщение для записи, отклоненной бизнесом без причины
const BookingDeclinedMessage = "бизнес не подтвердил запись на это время"

// Service сервис для работы с записями
type Service struct {
	apptRepo     AppointmentRepository
	policyRepo   PolicyRepository
	directory    DirectoryServiceClient
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса записей
func NewService(
	apptRepo AppointmentRepository,
	policyRepo PolicyRepository,
	directory DirectoryServiceClient,
	timeProvider TimeProvider,
	logger Logger,
) *Service {
	return &Service{
		apptRepo:     apptRepo,
		policyRepo:   policyRepo,
		directory:    directory,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// GetByID получает запись по ID
// Запись видят её клиент, профессионал и персонал бизнеса
func (s *Service) GetByID(ctx context.Context, id int64, session domain.Session) (*models.AppointmentResponse, error) {
	s.logger.Info("GetByID: fetching appointment id=%d for user=%d", id, session.UserID)

	appt, err := s.apptRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, apptRepo.ErrAppointmentNotFound) {
			s.logger.Warn("GetByID: appointment id=%d not found", id)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("GetByID: repository error for appointment id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	if err := s.checkAppointmentAccess(ctx, appt, session); err != nil {
		s.logger.Warn("GetByID: access denied for user=%d to appointment id=%d", session.UserID, id)
		return nil, err
	}

	return models.FromDomainAppointment(appt), nil
}

// GetClientAppointments получает историю записей клиента
// Опционально фильтрует по статусу
func (s *Service) GetClientAppointments(ctx context.Context, req *models.GetClientAppointmentsRequest) (*models.AppointmentListResponse, error) {
	s.logger.Info("GetClientAppointments: fetching appointments for user=%d, status=%v", req.Session.UserID, req.Status)

	var domainStatus *domain.AppointmentStatus
	if req.Status != nil {
		status, err := models.ToDomainAppointmentStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetClientAppointments: invalid status=%s for user=%d", *req.Status, req.Session.UserID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		domainStatus = &status
	}

	appointments, err := s.apptRepo.GetByClientID(ctx, req.Session.UserID, domainStatus)
	if err != nil {
		s.logger.Error("GetClientAppointments: repository error for user=%d: %v", req.Session.UserID, err)
		return nil, fmt.Errorf("%w: GetClientAppointments - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetClientAppointments: fetched %d appointments for user=%d", len(appointments), req.Session.UserID)
	return models.FromDomainAppointmentList(appointments), nil
}

// GetProfessionalAppointments получает повестку профессионала
// Доступно самому профессионалу и персоналу его бизнеса
func (s *Service) GetProfessionalAppointments(ctx context.Context, req *models.GetProfessionalAppointmentsRequest) (*models.AppointmentListResponse, error) {
	s.logger.Info("GetProfessionalAppointments: fetching agenda for professional=%d, user=%d",
		req.ProfessionalID, req.Session.UserID)

	professional, err := s.getProfessional(ctx, req.ProfessionalID)
	if err != nil {
		return nil, err
	}

	if err := s.checkAgendaAccess(ctx, professional, req.Session); err != nil {
		s.logger.Warn("GetProfessionalAppointments: access denied for user=%d to professional=%d",
			req.Session.UserID, req.ProfessionalID)
		return nil, err
	}

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetProfessionalAppointments: invalid filter for professional=%d: %v", req.ProfessionalID, err)
		return nil, fmt.Errorf("%w: invalid filter", ErrInvalidInput)
	}

	appointments, err := s.apptRepo.GetByProfessionalWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetProfessionalAppointments: repository error for professional=%d: %v", req.ProfessionalID, err)
		return nil, fmt.Errorf("%w: GetProfessionalAppointments - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetProfessionalAppointments: fetched %d appointments for professional=%d",
		len(appointments), req.ProfessionalID)
	return models.FromDomainAppointmentList(appointments), nil
}

// Cancel отменяет запись
//
// Клиент отменяет свою запись (cancelled_by_client), персонал бизнеса -
// любую запись бизнеса (cancelled_by_business). Если клиент отменяет
// поздно (до начала меньше, чем lateCancelNoticeMinutes из политики),
// отмена не выполняется сразу: запись переводится в pending и итог
// возвращается как pending_approval
func (s *Service) Cancel(ctx context.Context, appointmentID int64, req *models.CancelAppointmentRequest) (*models.CancelAppointmentResponse, error) {
	s.logger.Info("Cancel: cancelling appointment id=%d by user=%d", appointmentID, req.Session.UserID)

	appt, err := s.apptRepo.GetByID(ctx, appointmentID)
	if err != nil {
		if errors.Is(err, apptRepo.ErrAppointmentNotFound) {
			s.logger.Warn("Cancel: appointment id=%d not found", appointmentID)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("Cancel: repository error for appointment id=%d: %v", appointmentID, err)
		return nil, fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	if !appt.CanBeCancelled() {
		s.logger.Warn("Cancel: appointment id=%d cannot be cancelled, status=%s", appointmentID, appt.Status)
		return nil, ErrCannotCancel
	}

	if len(req.CancellationReason) > domain.MaxCancelReasonLength {
		return nil, fmt.Errorf("%w: cancellation reason exceeds %d characters", ErrInvalidInput, domain.MaxCancelReasonLength)
	}

	// Определяем, кто отменяет: клиент или бизнес
	cancelStatus, err := s.resolveCancelStatus(ctx, appt, req.Session)
	if err != nil {
		return nil, err
	}

	// Поздняя отмена клиентом уходит на подтверждение бизнесу
	if cancelStatus == domain.StatusCancelledByClient {
		late, err := s.isLateCancellation(ctx, appt)
		if err != nil {
			return nil, err
		}
		if late {
			if err := s.apptRepo.RequestCancellation(ctx, appointmentID, req.CancellationReason); err != nil {
				s.logger.Error("Cancel: failed to request cancellation for appointment id=%d: %v", appointmentID, err)
				return nil, fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
			}

			updated, err := s.apptRepo.GetByID(ctx, appointmentID)
			if err != nil {
				s.logger.Error("Cancel: failed to reload appointment id=%d: %v", appointmentID, err)
				return nil, fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
			}

			s.logger.Info("Cancel: appointment id=%d moved to pending approval", appointmentID)
			return &models.CancelAppointmentResponse{
				Appointment: models.FromDomainAppointment(updated),
				Outcome:     domain.PendingApprovalOutcome(LateCancellationMessage),
			}, nil
		}
	}

	if err := s.apptRepo.Cancel(ctx, appointmentID, cancelStatus, req.CancellationReason); err != nil {
		if errors.Is(err, apptRepo.ErrAppointmentNotFound) {
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("Cancel: repository error for appointment id=%d: %v", appointmentID, err)
		return nil, fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	updated, err := s.apptRepo.GetByID(ctx, appointmentID)
	if err != nil {
		s.logger.Error("Cancel: failed to reload appointment id=%d: %v", appointmentID, err)
		return nil, fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Cancel: cancelled appointment id=%d with status=%s", appointmentID, cancelStatus)
	return &models.CancelAppointmentResponse{
		Appointment: models.FromDomainAppointment(updated),
		Outcome:     domain.CancelledOutcome(),
	}, nil
}

// ResolveApproval фиксирует решение бизнеса по записи в статусе pending.
// В pending запись попадает двумя путями: бронирование конфликтного слота
// и поздняя отмена клиентом. Путь различается по наличию причины отмены.
// Решение принимает профессионал записи либо персонал/администратор бизнеса
func (s *Service) ResolveApproval(ctx context.Context, appointmentID int64, req *models.ResolveApprovalRequest) (*models.ResolveApprovalResponse, error) {
	s.logger.Info("ResolveApproval: resolving appointment id=%d by user=%d, approve=%t",
		appointmentID, req.Session.UserID, req.Approve)

	appt, err := s.apptRepo.GetByID(ctx, appointmentID)
	if err != nil {
		if errors.Is(err, apptRepo.ErrAppointmentNotFound) {
			s.logger.Warn("ResolveApproval: appointment id=%d not found", appointmentID)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("ResolveApproval: repository error for appointment id=%d: %v", appointmentID, err)
		return nil, fmt.Errorf("%w: ResolveApproval - repository error: %v", ErrInternal, err)
	}

	if !appt.NeedsApproval() {
		s.logger.Warn("ResolveApproval: appointment id=%d is not pending, status=%s", appointmentID, appt.Status)
		return nil, ErrNotPendingApproval
	}

	if len(req.Reason) > domain.MaxCancelReasonLength {
		return nil, fmt.Errorf("%w: reason exceeds %d characters", ErrInvalidInput, domain.MaxCancelReasonLength)
	}

	if err := s.checkApprovalAccess(ctx, appt, req.Session); err != nil {
		return nil, err
	}

	// Запрос на отмену: причина отмены сохранена при переводе в pending
	if appt.CancellationReason != nil {
		if req.Approve {
			err = s.apptRepo.Cancel(ctx, appointmentID, domain.StatusCancelledByClient, *appt.CancellationReason)
		} else {
			// Отмена не подтверждена - запись остается в силе
			err = s.apptRepo.UpdateStatus(ctx, appointmentID, domain.StatusConfirmed)
		}
	} else {
		if req.Approve {
			err = s.apptRepo.UpdateStatus(ctx, appointmentID, domain.StatusConfirmed)
		} else {
			reason := req.Reason
			if reason == "" {
				reason = BookingDeclinedMessage
			}
			err = s.apptRepo.Cancel(ctx, appointmentID, domain.StatusCancelledByBusiness, reason)
		}
	}
	if err != nil {
		if errors.Is(err, apptRepo.ErrAppointmentNotFound) {
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("ResolveApproval: repository error for appointment id=%d: %v", appointmentID, err)
		return nil, fmt.Errorf("%w: ResolveApproval - repository error: %v", ErrInternal, err)
	}

	updated, err := s.apptRepo.GetByID(ctx, appointmentID)
	if err != nil {
		s.logger.Error("ResolveApproval: failed to reload appointment id=%d: %v", appointmentID, err)
		return nil, fmt.Errorf("%w: ResolveApproval - repository error: %v", ErrInternal, err)
	}

	outcome := domain.ConfirmedOutcome()
	if updated.IsCancelled() {
		outcome = domain.CancelledOutcome()
	}

	s.logger.Info("ResolveApproval: appointment id=%d resolved to status=%s", appointmentID, updated.Status)
	return &models.ResolveApprovalResponse{
		Appointment: models.FromDomainAppointment(updated),
		Outcome:     outcome,
	}, nil
}

// Вспомогательные методы

// checkApprovalAccess проверяет право решать судьбу pending записи.
// Клиент записи решение принимать не может - только сторона бизнеса
func (s *Service) checkApprovalAccess(ctx context.Context, appt *domain.Appointment, session domain.Session) error {
	professional, err := s.directory.GetProfessional(ctx, appt.ProfessionalID)
	if err == nil && professional.UserID == session.UserID {
		return nil
	}

	if !session.Role.CanCancelForBusiness() {
		s.logger.Warn("checkApprovalAccess: role %q cannot resolve approvals, user=%d", session.Role, session.UserID)
		return ErrAccessDenied
	}

	if err := s.checkBusinessMembership(ctx, appt.BusinessID, session.UserID); err != nil {
		return ErrAccessDenied
	}

	return nil
}

// getProfessional получает профессионала из DirectoryService
func (s *Service) getProfessional(ctx context.Context, professionalID int64) (*directoryClient.Professional, error) {
	professional, err := s.directory.GetProfessional(ctx, professionalID)
	if err != nil {
		if errors.Is(err, directoryClient.ErrProfessionalNotFound) {
			s.logger.Warn("getProfessional: professional id=%d not found", professionalID)
			return nil, ErrProfessionalNotFound
		}
		s.logger.Error("getProfessional: failed to get professional id=%d: %v", professionalID, err)
		return nil, fmt.Errorf("%w: failed to get professional: %v", ErrInternal, err)
	}
	return professional, nil
}

// checkAppointmentAccess проверяет доступ пользователя к записи
func (s *Service) checkAppointmentAccess(ctx context.Context, appt *domain.Appointment, session domain.Session) error {
	if appt.ClientID == session.UserID {
		return nil
	}

	professional, err := s.directory.GetProfessional(ctx, appt.ProfessionalID)
	if err == nil && professional.UserID == session.UserID {
		return nil
	}

	if err := s.checkBusinessMembership(ctx, appt.BusinessID, session.UserID); err != nil {
		return ErrAccessDenied
	}

	return nil
}

// checkAgendaAccess проверяет доступ к повестке профессионала
func (s *Service) checkAgendaAccess(ctx context.Context, professional *directoryClient.Professional, session domain.Session) error {
	if !session.Role.CanViewAgenda() {
		return ErrAccessDenied
	}

	if professional.UserID == session.UserID {
		return nil
	}

	if err := s.checkBusinessMembership(ctx, professional.BusinessID, session.UserID); err != nil {
		return ErrAccessDenied
	}

	return nil
}

// checkBusinessMembership проверяет, что пользователь входит в персонал бизнеса
func (s *Service) checkBusinessMembership(ctx context.Context, businessID, userID int64) error {
	business, err := s.directory.GetBusiness(ctx, businessID)
	if err != nil {
		if errors.Is(err, directoryClient.ErrBusinessNotFound) {
			s.logger.Warn("checkBusinessMembership: business id=%d not found", businessID)
			return ErrAccessDenied
		}
		s.logger.Error("checkBusinessMembership: failed to get business id=%d: %v", businessID, err)
		return fmt.Errorf("%w: failed to get business: %v", ErrInternal, err)
	}

	if !business.IsStaff(userID) {
		return ErrAccessDenied
	}

	return nil
}

// resolveCancelStatus определяет статус отмены по роли отменяющего
func (s *Service) resolveCancelStatus(ctx context.Context, appt *domain.Appointment, session domain.Session) (domain.AppointmentStatus, error) {
	if appt.ClientID == session.UserID {
		return domain.StatusCancelledByClient, nil
	}

	// Профессионал отменяет свою запись от имени бизнеса
	professional, err := s.directory.GetProfessional(ctx, appt.ProfessionalID)
	if err == nil && professional.UserID == session.UserID {
		return domain.StatusCancelledByBusiness, nil
	}

	if !session.Role.CanCancelForBusiness() {
		s.logger.Warn("resolveCancelStatus: role %q cannot cancel for business, user=%d", session.Role, session.UserID)
		return "", ErrAccessDenied
	}

	if err := s.checkBusinessMembership(ctx, appt.BusinessID, session.UserID); err != nil {
		return "", ErrAccessDenied
	}

	return domain.StatusCancelledByBusiness, nil
}

// isLateCancellation проверяет, попадает ли отмена под политику позднего уведомления
func (s *Service) isLateCancellation(ctx context.Context, appt *domain.Appointment) (bool, error) {
	bookingPolicy, err := s.policyRepo.GetWithHierarchy(ctx, appt.BusinessID, &appt.ProfessionalID, &appt.ServiceID)
	if err != nil {
		if errors.Is(err, policyRepo.ErrPolicyNotFound) {
			bookingPolicy = domain.DefaultBookingPolicy(appt.BusinessID)
		} else {
			s.logger.Error("isLateCancellation: failed to get policy for business=%d: %v", appt.BusinessID, err)
			return false, fmt.Errorf("%w: failed to get booking policy: %v", ErrInternal, err)
		}
	}

	if bookingPolicy.LateCancelNoticeMinutes == 0 {
		return false, nil
	}

	startAt, err := appointmentStartAt(appt)
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	now := s.timeProvider.Now()
	return now.Add(time.Duration(bookingPolicy.LateCancelNoticeMinutes) * time.Minute).After(startAt), nil
}

// appointmentStartAt собирает момент начала записи из даты и времени
func appointmentStartAt(appt *domain.Appointment) (time.Time, error) {
	startMinutes, err := appt.StartTime.TotalMinutes()
	if err != nil {
		return time.Time{}, err
	}

	d := appt.AppointmentDate
	return time.Date(d.Year(), d.Month(), d.Day(), startMinutes/60, startMinutes%60, 0, 0, d.Location()), nil
}
