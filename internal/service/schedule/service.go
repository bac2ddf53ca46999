package schedule

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	directoryClient "github.com/m04kA/SMC-AppointmentService/internal/integrations/directoryservice"
	"github.com/m04kA/SMC-AppointmentService/internal/service/schedule/models"
)

// Service сервис для работы с недельным расписанием профессионалов
type Service struct {
	scheduleRepo ScheduleRepository
	directory    DirectoryServiceClient
	txManager    TransactionManager
	logger       Logger
}

// NewService создает новый экземпляр сервиса расписания
func NewService(
	scheduleRepo ScheduleRepository,
	directory DirectoryServiceClient,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		scheduleRepo: scheduleRepo,
		directory:    directory,
		txManager:    txManager,
		logger:       logger,
	}
}

// GetSchedule получает недельное расписание профессионала
// Публичная операция: расписание нужно клиентам для выбора времени
func (s *Service) GetSchedule(ctx context.Context, professionalID int64) (*models.ScheduleResponse, error) {
	s.logger.Info("GetSchedule: fetching schedule for professional=%d", professionalID)

	if _, err := s.getProfessional(ctx, professionalID); err != nil {
		return nil, err
	}

	entries, err := s.scheduleRepo.GetByProfessional(ctx, professionalID)
	if err != nil {
		s.logger.Error("GetSchedule: repository error for professional=%d: %v", professionalID, err)
		return nil, fmt.Errorf("%w: GetSchedule - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainEntries(professionalID, entries), nil
}

// Replace полностью заменяет недельное расписание профессионала
//
// Замена атомарна: читатели видят либо прежний набор целиком, либо
// новый. Пустой набор записей допустим и означает "не принимает записи"
func (s *Service) Replace(ctx context.Context, req *models.ReplaceScheduleRequest) (*models.ScheduleResponse, error) {
	s.logger.Info("Replace: replacing schedule for professional=%d by user=%d, entries=%d",
		req.ProfessionalID, req.Session.UserID, len(req.Entries))

	professional, err := s.getProfessional(ctx, req.ProfessionalID)
	if err != nil {
		return nil, err
	}

	if err := s.checkManageAccess(ctx, professional, req.Session); err != nil {
		s.logger.Warn("Replace: access denied for user=%d to professional=%d schedule",
			req.Session.UserID, req.ProfessionalID)
		return nil, err
	}

	entries := req.ToDomainEntries()
	if err := validateEntries(entries); err != nil {
		s.logger.Warn("Replace: invalid entries for professional=%d: %v", req.ProfessionalID, err)
		return nil, err
	}

	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		return s.scheduleRepo.ReplaceAll(txCtx, req.ProfessionalID, entries)
	})
	if err != nil {
		s.logger.Error("Replace: failed to replace schedule for professional=%d: %v", req.ProfessionalID, err)
		return nil, fmt.Errorf("%w: Replace - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Replace: replaced schedule for professional=%d, entries=%d", req.ProfessionalID, len(entries))
	return models.FromDomainEntries(req.ProfessionalID, entries), nil
}

// Вспомогательные методы

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

// checkManageAccess проверяет право изменять расписание профессионала
// Разрешено самому профессионалу и администраторам его бизнеса
func (s *Service) checkManageAccess(ctx context.Context, professional *directoryClient.Professional, session domain.Session) error {
	if professional.UserID == session.UserID && session.Role.CanManageOwnSchedule() {
		return nil
	}

	if !session.Role.CanManageAnySchedule() {
		return ErrAccessDenied
	}

	business, err := s.directory.GetBusiness(ctx, professional.BusinessID)
	if err != nil {
		if errors.Is(err, directoryClient.ErrBusinessNotFound) {
			return ErrAccessDenied
		}
		s.logger.Error("checkManageAccess: failed to get business id=%d: %v", professional.BusinessID, err)
		return fmt.Errorf("%w: failed to get business: %v", ErrInternal, err)
	}

	if !business.IsAdmin(session.UserID) {
		return ErrAccessDenied
	}

	return nil
}

// validateEntries проверяет записи расписания и уникальность дней недели
func validateEntries(entries []*domain.WeeklyAvailability) error {
	seen := make(map[int]bool, len(entries))
	for _, entry := range entries {
		if err := entry.Validate(); err != nil {
			return fmt.Errorf("%w: day %d: %v", ErrInvalidEntry, entry.DayOfWeek, err)
		}
		if seen[entry.DayOfWeek] {
			return fmt.Errorf("%w: day %d", ErrDuplicateWeekday, entry.DayOfWeek)
		}
		seen[entry.DayOfWeek] = true
	}
	return nil
}
