package schedule

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/m04kA/SMC-BarberBooking/internal/availability"
	"github.com/m04kA/SMC-BarberBooking/internal/domain"
	scheduleRepo "github.com/m04kA/SMC-BarberBooking/internal/infra/storage/schedule"
	"github.com/m04kA/SMC-BarberBooking/internal/service/schedule/models"
)

// Service сервис расписания рабочего дня.
// Держит в памяти последнюю прочитанную конфигурацию и построенные из неё Engine и Policy
type Service struct {
	repo     ScheduleRepository
	defaults domain.ScheduleConfig
	location *time.Location
	logger   Logger

	mu     sync.RWMutex
	cached *snapshot
}

type snapshot struct {
	config *domain.ScheduleConfig
	engine *availability.Engine
	policy availability.Policy
}

// NewService создает сервис расписания.
// defaults используются, пока администратор не сохранил своё расписание
func NewService(repo ScheduleRepository, defaults domain.ScheduleConfig, location *time.Location, logger Logger) *Service {
	if location == nil {
		location = time.Local
	}
	return &Service{
		repo:     repo,
		defaults: defaults,
		location: location,
		logger:   logger,
	}
}

// Get текущее расписание вместе с сеткой слотов
func (s *Service) Get(ctx context.Context) (*models.ScheduleResponse, error) {
	snap, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	return models.FromDomainSchedule(snap.config, snap.engine.Grid(), s.location), nil
}

// Current Engine и Policy по актуальному расписанию
func (s *Service) Current(ctx context.Context) (*availability.Engine, availability.Policy, error) {
	snap, err := s.load(ctx)
	if err != nil {
		return nil, availability.Policy{}, err
	}
	return snap.engine, snap.policy, nil
}

// Update частично изменяет расписание
func (s *Service) Update(ctx context.Context, req *models.UpdateScheduleRequest) (*models.ScheduleResponse, error) {
	if req == nil || req.IsEmpty() {
		return nil, ErrInvalidInput
	}

	// 1. Берем текущее расписание
	current, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	// 2. Применяем изменения к копии
	updated := *current.config
	if err := req.ApplyToConfig(&updated); err != nil {
		s.logger.Warn("Update: invalid time in request: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidTime, err)
	}

	// 3. Валидируем и строим новую сетку
	snap, err := s.build(&updated)
	if err != nil {
		s.logger.Warn("Update: validation failed: %v", err)
		return nil, err
	}

	// 4. Сохраняем
	saved, err := s.repo.Save(ctx, &updated)
	if err != nil {
		s.logger.Error("Update: repository error: %v", err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}
	snap.config = saved

	s.mu.Lock()
	s.cached = snap
	s.mu.Unlock()

	s.logger.Info("Update: schedule saved %s-%s every %d min, lead time %d min",
		saved.OpeningTime, saved.ClosingTime, saved.IntervalMinutes, saved.LeadTimeMinutes)
	return models.FromDomainSchedule(saved, snap.engine.Grid(), s.location), nil
}

// Invalidate сбрасывает кэш, следующий запрос перечитает расписание
func (s *Service) Invalidate() {
	s.mu.Lock()
	s.cached = nil
	s.mu.Unlock()
}

func (s *Service) load(ctx context.Context) (*snapshot, error) {
	s.mu.RLock()
	cached := s.cached
	s.mu.RUnlock()
	if cached != nil {
		return cached, nil
	}

	cfg, err := s.repo.Get(ctx)
	if err != nil {
		if !errors.Is(err, scheduleRepo.ErrScheduleNotFound) {
			s.logger.Error("load: repository error: %v", err)
			return nil, fmt.Errorf("%w: load - repository error: %v", ErrInternal, err)
		}
		defaults := s.defaults
		cfg = &defaults
	}

	snap, err := s.build(cfg)
	if err != nil {
		// Сохраненное расписание испорчено: работаем по значениям из конфигурации
		s.logger.Error("load: stored schedule is invalid, falling back to defaults: %v", err)
		defaults := s.defaults
		if snap, err = s.build(&defaults); err != nil {
			return nil, fmt.Errorf("%w: load - invalid default schedule: %v", ErrInternal, err)
		}
	}

	s.mu.Lock()
	s.cached = snap
	s.mu.Unlock()
	return snap, nil
}

func (s *Service) build(cfg *domain.ScheduleConfig) (*snapshot, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	grid, err := availability.NewGrid(cfg.OpeningTime, cfg.ClosingTime, cfg.IntervalMinutes)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInterval, err)
	}
	if grid.Len() == 0 {
		return nil, fmt.Errorf("%w: closing time must be after opening time", ErrInvalidTime)
	}

	return &snapshot{
		config: cfg,
		engine: availability.NewEngine(grid, s.location),
		policy: availability.NewPolicy(cfg.LeadTime(), s.location),
	}, nil
}

func validateConfig(cfg *domain.ScheduleConfig) error {
	if err := cfg.OpeningTime.Validate(); err != nil {
		return fmt.Errorf("%w: opening %v", ErrInvalidTime, err)
	}
	if err := cfg.ClosingTime.Validate(); err != nil {
		return fmt.Errorf("%w: closing %v", ErrInvalidTime, err)
	}
	if !cfg.OpeningTime.IsBefore(cfg.ClosingTime) {
		return fmt.Errorf("%w: closing time must be after opening time", ErrInvalidTime)
	}
	if cfg.IntervalMinutes < domain.MinIntervalMinutes || cfg.IntervalMinutes > domain.MaxIntervalMinutes {
		return fmt.Errorf("%w: must be between %d and %d minutes",
			ErrInvalidInterval, domain.MinIntervalMinutes, domain.MaxIntervalMinutes)
	}
	if cfg.LeadTimeMinutes <= 0 || cfg.LeadTimeMinutes > domain.MaxLeadTimeMinutes {
		return fmt.Errorf("%w: must be between 1 and %d minutes", ErrInvalidLeadTime, domain.MaxLeadTimeMinutes)
	}
	return nil
}
