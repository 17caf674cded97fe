package blockeddays

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-BarberBooking/internal/availability"
	"github.com/m04kA/SMC-BarberBooking/internal/domain"
	blockedDayRepo "github.com/m04kA/SMC-BarberBooking/internal/infra/storage/blockedday"
	"github.com/m04kA/SMC-BarberBooking/internal/service/blockeddays/models"
	"github.com/m04kA/SMC-BarberBooking/pkg/pgerr"
	"github.com/m04kA/SMC-BarberBooking/pkg/types"
)

const monthLayout = "2006-01"

// Service сервис закрытых администратором дней и времени
type Service struct {
	blockedDayRepo  BlockedDayRepository
	appointmentRepo AppointmentRepository
	schedule        ScheduleProvider
	txManager       TransactionManager
	timeProvider    TimeProvider
	logger          Logger
}

// NewService создает новый экземпляр сервиса закрытых дней
func NewService(
	blockedDayRepo BlockedDayRepository,
	appointmentRepo AppointmentRepository,
	schedule ScheduleProvider,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		blockedDayRepo:  blockedDayRepo,
		appointmentRepo: appointmentRepo,
		schedule:        schedule,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// List все закрытые дни
func (s *Service) List(ctx context.Context) ([]*models.BlockedDayResponse, error) {
	engine, _, err := s.schedule.Current(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: List - schedule: %v", ErrInternal, err)
	}

	days, err := s.blockedDayRepo.List(ctx)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	resp := make([]*models.BlockedDayResponse, 0, len(days))
	for _, day := range days {
		resp = append(resp, models.FromDomainBlockedDay(day, engine.ClassifyDay(day.Date, days)))
	}
	return resp, nil
}

// Calendar состояние каждого дня месяца "YYYY-MM"
func (s *Service) Calendar(ctx context.Context, month string) (*models.CalendarResponse, error) {
	start, err := time.Parse(monthLayout, month)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidMonth, month)
	}

	engine, _, err := s.schedule.Current(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: Calendar - schedule: %v", ErrInternal, err)
	}

	days, err := s.blockedDayRepo.List(ctx)
	if err != nil {
		s.logger.Error("Calendar: repository error: %v", err)
		return nil, fmt.Errorf("%w: Calendar - repository error: %v", ErrInternal, err)
	}

	return models.FromCalendar(start.Format(monthLayout), engine.Calendar(start, days, s.timeProvider.Now())), nil
}

// Block закрывает время дня, объединяя с уже закрытым.
// Пустой список закрывает весь день целиком. Частично закрыть уже занятое время нельзя
func (s *Service) Block(ctx context.Context, req *models.BlockDayRequest) (*models.BlockedDayResponse, error) {
	engine, _, err := s.schedule.Current(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: Block - schedule: %v", ErrInternal, err)
	}

	// 1. Дата
	date, err := s.validateDate(engine, req.Date)
	if err != nil {
		s.logger.Warn("Block: invalid date %q: %v", req.Date, err)
		return nil, err
	}

	// 2. Время. Пустой список = вся сетка
	times, fullDay, err := resolveTimes(engine.Grid(), req.BlockedTimes)
	if err != nil {
		s.logger.Warn("Block: invalid times for %s: %v", date, err)
		return nil, err
	}

	var result *domain.BlockedDay

	// 3. Проверка и сохранение в сериализуемой транзакции
	err = s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 3.1. Частичное закрытие не должно задевать существующие записи
		if !fullDay {
			appts, err := s.appointmentRepo.List(txCtx, domain.AppointmentFilter{Date: &date})
			if err != nil {
				return fmt.Errorf("%w: Block - list appointments: %w", ErrInternal, err)
			}
			occupied := availability.OccupiedTimes(date, appts, "")
			for _, t := range times {
				if _, taken := occupied[t]; taken {
					return fmt.Errorf("%w: %s %s", ErrTimeOccupied, date, t)
				}
			}
		}

		// 3.2. Объединяем с уже закрытым днём или создаём новый
		existing, err := s.blockedDayRepo.GetByDate(txCtx, date)
		if err != nil && !errors.Is(err, blockedDayRepo.ErrBlockedDayNotFound) {
			return fmt.Errorf("%w: Block - get blocked day: %w", ErrInternal, err)
		}

		if existing != nil {
			existing.Merge(times...)
			if err := s.blockedDayRepo.UpdateTimes(txCtx, existing.ID, existing.BlockedTimes); err != nil {
				return fmt.Errorf("%w: Block - update blocked day: %w", ErrInternal, err)
			}
			result = existing
			return nil
		}

		day := &domain.BlockedDay{Date: date}
		day.Merge(times...)
		created, err := s.blockedDayRepo.Create(txCtx, day)
		if err != nil {
			if errors.Is(err, blockedDayRepo.ErrDuplicateDate) {
				return fmt.Errorf("%w: %s", ErrConflict, date)
			}
			return fmt.Errorf("%w: Block - create blocked day: %w", ErrInternal, err)
		}
		result = created
		return nil
	})

	if err != nil {
		if pgerr.IsSerializationFailure(err) {
			err = fmt.Errorf("%w: %s", ErrConflict, date)
		}
		if errors.Is(err, ErrInternal) {
			s.logger.Error("Block: failed for %s: %v", date, err)
		} else {
			s.logger.Warn("Block: refused for %s: %v", date, err)
		}
		return nil, err
	}

	s.logger.Info("Block: %s now has %d blocked times", date, len(result.BlockedTimes))
	return models.FromDomainBlockedDay(result, engine.ClassifyDay(date, []*domain.BlockedDay{result})), nil
}

// Unblock открывает одно время или весь день.
// День, у которого не осталось закрытого времени, удаляется
func (s *Service) Unblock(ctx context.Context, req *models.UnblockRequest) error {
	date, err := types.ParseDateString(req.Date)
	if err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidDate, req.Date)
	}

	var target *types.TimeString
	if req.Time != nil && *req.Time != "" {
		t, err := types.NewTimeStringFromString(*req.Time)
		if err != nil {
			return fmt.Errorf("%w: %q", ErrInvalidTime, *req.Time)
		}
		target = &t
	}

	err = s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		day, err := s.blockedDayRepo.GetByDate(txCtx, date)
		if err != nil {
			if errors.Is(err, blockedDayRepo.ErrBlockedDayNotFound) {
				return ErrBlockedDayNotFound
			}
			return fmt.Errorf("%w: Unblock - get blocked day: %w", ErrInternal, err)
		}

		if target != nil {
			if !day.Remove(*target) {
				return fmt.Errorf("%w: %s %s", ErrTimeNotBlocked, date, *target)
			}
			if !day.IsEmpty() {
				if err := s.blockedDayRepo.UpdateTimes(txCtx, day.ID, day.BlockedTimes); err != nil {
					return fmt.Errorf("%w: Unblock - update blocked day: %w", ErrInternal, err)
				}
				return nil
			}
		}

		if err := s.blockedDayRepo.Delete(txCtx, day.ID); err != nil {
			if errors.Is(err, blockedDayRepo.ErrBlockedDayNotFound) {
				return ErrBlockedDayNotFound
			}
			return fmt.Errorf("%w: Unblock - delete blocked day: %w", ErrInternal, err)
		}
		return nil
	})

	if err != nil {
		if pgerr.IsSerializationFailure(err) {
			err = fmt.Errorf("%w: %s", ErrConflict, date)
		}
		if errors.Is(err, ErrInternal) {
			s.logger.Error("Unblock: failed for %s: %v", date, err)
		} else {
			s.logger.Warn("Unblock: refused for %s: %v", date, err)
		}
		return err
	}

	if target != nil {
		s.logger.Info("Unblock: %s %s reopened", date, *target)
	} else {
		s.logger.Info("Unblock: %s fully reopened", date)
	}
	return nil
}

func (s *Service) validateDate(engine *availability.Engine, raw string) (types.DateString, error) {
	date, err := types.ParseDateString(raw)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidDate, raw)
	}
	if date.IsSunday() {
		return "", ErrSunday
	}
	if date.Before(engine.Today(s.timeProvider.Now())) {
		return "", fmt.Errorf("%w: %s", ErrPastDate, date)
	}
	return date, nil
}

// resolveTimes разбирает время и проверяет принадлежность сетке.
// fullDay true, если в итоге закрывается вся сетка
func resolveTimes(grid *availability.Grid, raw []string) ([]types.TimeString, bool, error) {
	if len(raw) == 0 {
		return grid.Slots(), true, nil
	}

	seen := make(map[types.TimeString]struct{}, len(raw))
	times := make([]types.TimeString, 0, len(raw))
	for _, r := range raw {
		t, err := types.NewTimeStringFromString(r)
		if err != nil || !grid.Contains(t) {
			return nil, false, fmt.Errorf("%w: %q", ErrInvalidTime, r)
		}
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		times = append(times, t)
	}

	return times, len(times) == grid.Len(), nil
}
