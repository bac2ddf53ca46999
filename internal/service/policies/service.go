package policies

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	policyRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/policy"
	directoryClient "github.com/m04kA/SMC-AppointmentService/internal/integrations/directoryservice"
	"github.com/m04kA/SMC-AppointmentService/internal/service/policies/models"
)

// Service сервис для работы с политиками бронирования
type Service struct {
	policyRepo PolicyRepository
	directory  DirectoryServiceClient
	logger     Logger
}

// NewService создает новый экземпляр сервиса политик
func NewService(policyRepo PolicyRepository, directory DirectoryServiceClient, logger Logger) *Service {
	return &Service{
		policyRepo: policyRepo,
		directory:  directory,
		logger:     logger,
	}
}

// GetEffectivePolicy возвращает действующую политику для комбинации
// бизнес/профессионал/услуга с учетом иерархии приоритетов
// Если ни одна политика не настроена, возвращаются значения по умолчанию
func (s *Service) GetEffectivePolicy(ctx context.Context, req *models.GetPolicyRequest) (*models.PolicyResponse, error) {
	s.logger.Info("GetEffectivePolicy: fetching policy for business=%d", req.BusinessID)

	if req.BusinessID <= 0 {
		return nil, fmt.Errorf("%w: businessID must be positive", ErrInvalidInput)
	}

	policy, err := s.policyRepo.GetWithHierarchy(ctx, req.BusinessID, req.ProfessionalID, req.ServiceID)
	if err != nil {
		if errors.Is(err, policyRepo.ErrPolicyNotFound) {
			return models.FromDomainPolicy(domain.DefaultBookingPolicy(req.BusinessID), true), nil
		}
		s.logger.Error("GetEffectivePolicy: repository error for business=%d: %v", req.BusinessID, err)
		return nil, fmt.Errorf("%w: GetEffectivePolicy - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainPolicy(policy, false), nil
}

// Upsert создает или изменяет политику бронирования
// Доступно только администраторам бизнеса
func (s *Service) Upsert(ctx context.Context, req *models.UpsertPolicyRequest) (*models.PolicyResponse, error) {
	s.logger.Info("Upsert: upserting policy for business=%d by user=%d", req.BusinessID, req.Session.UserID)

	if req.BusinessID <= 0 {
		return nil, fmt.Errorf("%w: businessID must be positive", ErrInvalidInput)
	}

	if err := s.checkAdminAccess(ctx, req.BusinessID, req.Session); err != nil {
		s.logger.Warn("Upsert: access denied for user=%d to business=%d policy", req.Session.UserID, req.BusinessID)
		return nil, err
	}

	if err := validatePolicyValues(req); err != nil {
		s.logger.Warn("Upsert: invalid policy values for business=%d: %v", req.BusinessID, err)
		return nil, err
	}

	saved, err := s.policyRepo.Upsert(ctx, req.ToDomainPolicy())
	if err != nil {
		s.logger.Error("Upsert: repository error for business=%d: %v", req.BusinessID, err)
		return nil, fmt.Errorf("%w: Upsert - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Upsert: saved policy id=%d for business=%d", saved.ID, req.BusinessID)
	return models.FromDomainPolicy(saved, false), nil
}

// Вспомогательные методы

// checkAdminAccess проверяет, что пользователь администратор бизнеса
func (s *Service) checkAdminAccess(ctx context.Context, businessID int64, session domain.Session) error {
	if !session.Role.CanManageBookingRules() {
		return ErrAccessDenied
	}

	business, err := s.directory.GetBusiness(ctx, businessID)
	if err != nil {
		if errors.Is(err, directoryClient.ErrBusinessNotFound) {
			s.logger.Warn("checkAdminAccess: business id=%d not found", businessID)
			return ErrBusinessNotFound
		}
		s.logger.Error("checkAdminAccess: failed to get business id=%d: %v", businessID, err)
		return fmt.Errorf("%w: failed to get business: %v", ErrInternal, err)
	}

	if !business.IsAdmin(session.UserID) {
		return ErrAccessDenied
	}

	return nil
}

// validatePolicyValues проверяет значения политики на допустимые границы
func validatePolicyValues(req *models.UpsertPolicyRequest) error {
	if req.SlotGranularityMinutes < domain.MinSlotGranularityMinutes || req.SlotGranularityMinutes > domain.MaxSlotGranularityMinutes {
		return fmt.Errorf("%w: slotGranularityMinutes must be between %d and %d",
			ErrInvalidInput, domain.MinSlotGranularityMinutes, domain.MaxSlotGranularityMinutes)
	}

	if req.MinBookingNoticeMinutes < domain.MinBookingNoticeMinutes || req.MinBookingNoticeMinutes > domain.MaxBookingNoticeMinutes {
		return fmt.Errorf("%w: minBookingNoticeMinutes must be between %d and %d",
			ErrInvalidInput, domain.MinBookingNoticeMinutes, domain.MaxBookingNoticeMinutes)
	}

	if req.LateCancelNoticeMinutes < domain.MinLateCancelMinutes || req.LateCancelNoticeMinutes > domain.MaxLateCancelMinutes {
		return fmt.Errorf("%w: lateCancelNoticeMinutes must be between %d and %d",
			ErrInvalidInput, domain.MinLateCancelMinutes, domain.MaxLateCancelMinutes)
	}

	if req.AdvanceBookingDays < domain.MinAdvanceBookingDays || req.AdvanceBookingDays > domain.MaxAdvanceBookingDays {
		return fmt.Errorf("%w: advanceBookingDays must be between %d and %d",
			ErrInvalidInput, domain.MinAdvanceBookingDays, domain.MaxAdvanceBookingDays)
	}

	return nil
}
