package get_available_slots

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-BarberBooking/internal/availability"
	"github.com/m04kA/SMC-BarberBooking/internal/domain"
	blockedDayRepo "github.com/m04kA/SMC-BarberBooking/internal/infra/storage/blockedday"
)

// UseCase use case для получения свободных слотов даты
type UseCase struct {
	appointmentRepo AppointmentRepository
	blockedDayRepo  BlockedDayRepository
	schedule        ScheduleProvider
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	blockedDayRepo BlockedDayRepository,
	schedule ScheduleProvider,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		blockedDayRepo:  blockedDayRepo,
		schedule:        schedule,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case получения свободных слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	date, err := parseDate(req)
	if err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Актуальная сетка и текущее время
	engine, _, err := uc.schedule.Current(ctx)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to load schedule: %v", err)
		return nil, fmt.Errorf("%w: failed to load schedule: %v", ErrInternal, err)
	}
	now := uc.timeProvider.Now()

	resp := &Response{
		Date: date,
		Past: date.Before(engine.Today(now)),
	}

	// 3. Воскресенье и прошедшие даты не требуют обращения к БД
	if date.IsSunday() || resp.Past {
		resp.Status = engine.ClassifyDay(date, nil)
		resp.Slots = engine.FreeSlots(availability.Query{Date: date, Now: now})
		return resp, nil
	}

	// 4. Записи и закрытое время даты
	appts, err := uc.appointmentRepo.List(ctx, domain.AppointmentFilter{Date: &date})
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to list appointments for %s: %v", date, err)
		return nil, fmt.Errorf("%w: failed to list appointments: %v", ErrInternal, err)
	}

	var blocked []*domain.BlockedDay
	day, err := uc.blockedDayRepo.GetByDate(ctx, date)
	switch {
	case err == nil:
		blocked = append(blocked, day)
	case !errors.Is(err, blockedDayRepo.ErrBlockedDayNotFound):
		uc.logger.Error("GetAvailableSlots: failed to get blocked day %s: %v", date, err)
		return nil, fmt.Errorf("%w: failed to get blocked day: %v", ErrInternal, err)
	}

	// 5. Свободные слоты
	resp.Status = engine.ClassifyDay(date, blocked)
	resp.Slots = engine.FreeSlots(availability.Query{
		Date:         date,
		Appointments: appts,
		BlockedDays:  blocked,
		Now:          now,
		ExcludeID:    strings.TrimSpace(req.ExcludeID),
	})

	uc.logger.Info("GetAvailableSlots: %s has %d free slots", date, len(resp.Slots))
	return resp, nil
}
