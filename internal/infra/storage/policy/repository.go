package policy

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AppointmentService/pkg/psqlbuilder"
)

// DBExecutor интерфейс исполнителя запросов (переиспользуем dbmetrics)
type DBExecutor = dbmetrics.DBExecutor

var policyColumns = []string{
	"id",
	"business_id",
	"professional_id",
	"service_id",
	"slot_granularity_minutes",
	"min_booking_notice_minutes",
	"late_cancel_notice_minutes",
	"advance_booking_days",
	"created_at",
	"updated_at",
}

// Repository репозиторий политик бронирования
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория политик
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByKey получает политику по точному ключу (business, professional, service)
// nil в professionalID/serviceID означает политику уровня "для всех"
func (r *Repository) GetByKey(ctx context.Context, businessID int64, professionalID *int64, serviceID *int64) (*domain.BookingPolicy, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(policyColumns...).
		From("booking_policies").
		Where(squirrel.Eq{"business_id": businessID})

	if professionalID == nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"professional_id": nil})
	} else {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"professional_id": *professionalID})
	}

	if serviceID == nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"service_id": nil})
	} else {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"service_id": *serviceID})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByKey - build select query: %v", ErrBuildQuery, err)
	}

	return r.scanPolicy(executor.QueryRowContext(ctx, query, args...), "GetByKey")
}

// GetWithHierarchy получает политику с учетом иерархии приоритетов:
// professional+service > professional > service > business-wide
// Возвращает ErrPolicyNotFound, если не настроен ни один уровень
func (r *Repository) GetWithHierarchy(ctx context.Context, businessID int64, professionalID *int64, serviceID *int64) (*domain.BookingPolicy, error) {
	type key struct {
		professionalID *int64
		serviceID      *int64
	}

	keys := make([]key, 0, 4)
	if professionalID != nil && serviceID != nil {
		keys = append(keys, key{professionalID, serviceID})
	}
	if professionalID != nil {
		keys = append(keys, key{professionalID, nil})
	}
	if serviceID != nil {
		keys = append(keys, key{nil, serviceID})
	}
	keys = append(keys, key{nil, nil})

	for _, k := range keys {
		policy, err := r.GetByKey(ctx, businessID, k.professionalID, k.serviceID)
		if err != nil {
			if errors.Is(err, ErrPolicyNotFound) {
				continue
			}
			return nil, err
		}
		return policy, nil
	}

	return nil, ErrPolicyNotFound
}

// Upsert создает или обновляет политику по ключу (business, professional, service)
func (r *Repository) Upsert(ctx context.Context, p *domain.BookingPolicy) (*domain.BookingPolicy, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("booking_policies").
		Columns(
			"business_id",
			"professional_id",
			"service_id",
			"slot_granularity_minutes",
			"min_booking_notice_minutes",
			"late_cancel_notice_minutes",
			"advance_booking_days",
		).
		Values(
			p.BusinessID,
			p.ProfessionalID,
			p.ServiceID,
			p.SlotGranularityMinutes,
			p.MinBookingNoticeMinutes,
			p.LateCancelNoticeMinutes,
			p.AdvanceBookingDays,
		).
		Suffix(`ON CONFLICT (business_id, COALESCE(professional_id, 0), COALESCE(service_id, 0)) DO UPDATE SET
			slot_granularity_minutes = EXCLUDED.slot_granularity_minutes,
			min_booking_notice_minutes = EXCLUDED.min_booking_notice_minutes,
			late_cancel_notice_minutes = EXCLUDED.late_cancel_notice_minutes,
			advance_booking_days = EXCLUDED.advance_booking_days,
			updated_at = NOW()
		RETURNING id, created_at, updated_at`).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&p.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - execute insert: %v", ErrExecQuery, err)
	}

	p.CreatedAt = createdAt.Time
	p.UpdatedAt = updatedAt.Time

	return p, nil
}

// scanPolicy сканирует одну строку политики
func (r *Repository) scanPolicy(row *sql.Row, op string) (*domain.BookingPolicy, error) {
	var p domain.BookingPolicy
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&p.ID,
		&p.BusinessID,
		&p.ProfessionalID,
		&p.ServiceID,
		&p.SlotGranularityMinutes,
		&p.MinBookingNoticeMinutes,
		&p.LateCancelNoticeMinutes,
		&p.AdvanceBookingDays,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrPolicyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan policy: %v", ErrScanRow, op, err)
	}

	p.CreatedAt = createdAt.Time
	p.UpdatedAt = updatedAt.Time

	return &p, nil
}
