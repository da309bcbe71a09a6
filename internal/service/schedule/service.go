package schedule

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SalonBooking/internal/service/schedule/models"
)

// Service сервис недельного расписания салона
type Service struct {
	scheduleRepo ScheduleRepository
	access       AccessChecker
	txManager    TransactionManager
	logger       Logger
}

// NewService создает новый экземпляр сервиса расписания
func NewService(scheduleRepo ScheduleRepository, access AccessChecker, txManager TransactionManager, logger Logger) *Service {
	return &Service{
		scheduleRepo: scheduleRepo,
		access:       access,
		txManager:    txManager,
		logger:       logger,
	}
}

// GetWeek возвращает расписание на все дни недели
func (s *Service) GetWeek(ctx context.Context) (*models.WeekResponse, error) {
	week, err := s.scheduleRepo.GetWeek(ctx)
	if err != nil {
		s.logger.Error("GetWeek: repository error: %v", err)
		return nil, fmt.Errorf("%w: GetWeek - repository error: %v", ErrInternal, err)
	}

	sort.Slice(week, func(i, j int) bool { return week[i].DayOfWeek < week[j].DayOfWeek })
	return models.FromDomainWeek(week), nil
}

// UpdateWeek заменяет расписание всех семи дней одной транзакцией
// Доступно только сотрудникам. При любой ошибке изменения откатываются.
func (s *Service) UpdateWeek(ctx context.Context, req *models.UpdateWeekRequest) (*models.WeekResponse, error) {
	s.logger.Info("UpdateWeek: updating schedule by user=%s", req.UserID)

	// 1. Проверяем права
	if err := s.checkStaff(ctx, req.UserID); err != nil {
		return nil, err
	}

	// 2. Валидация
	week, err := req.ToDomain()
	if err != nil {
		s.logger.Warn("UpdateWeek: %v", err)
		return nil, err
	}
	if err := week.Validate(); err != nil {
		s.logger.Warn("UpdateWeek: validation failed: %v", err)
		return nil, err
	}
	week.Normalize()

	// 3. Сохраняем все дни в одной транзакции
	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		for i := range week {
			if err := s.scheduleRepo.UpsertDay(txCtx, &week[i]); err != nil {
				return fmt.Errorf("day %d: %v", week[i].DayOfWeek, err)
			}
		}
		return nil
	})
	if err != nil {
		s.logger.Error("UpdateWeek: failed to save schedule: %v", err)
		return nil, fmt.Errorf("%w: UpdateWeek - save: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateWeek: schedule updated")
	return s.GetWeek(ctx)
}

func (s *Service) checkStaff(ctx context.Context, userID uuid.UUID) error {
	isStaff, err := s.access.IsStaff(ctx, userID)
	if err != nil {
		s.logger.Error("UpdateWeek: failed to check role for user=%s: %v", userID, err)
		return fmt.Errorf("%w: check role: %v", ErrInternal, err)
	}
	if !isStaff {
		s.logger.Warn("UpdateWeek: user=%s is not staff", userID)
		return ErrAccessDenied
	}
	return nil
}
