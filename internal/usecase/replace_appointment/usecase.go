package replace_appointment

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-BarberBooking/internal/availability"
	"github.com/m04kA/SMC-BarberBooking/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-BarberBooking/internal/infra/storage/appointment"
	barberRepo "github.com/m04kA/SMC-BarberBooking/internal/infra/storage/barber"
	blockedDayRepo "github.com/m04kA/SMC-BarberBooking/internal/infra/storage/blockedday"
	"github.com/m04kA/SMC-BarberBooking/pkg/pgerr"
)

// UseCase полная замена записи администратором. Окно изменений не применяется
type UseCase struct {
	appointmentRepo AppointmentRepository
	blockedDayRepo  BlockedDayRepository
	barberRepo      BarberRepository
	schedule        ScheduleProvider
	txManager       TransactionManager
	metrics         Metrics
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	blockedDayRepo BlockedDayRepository,
	barberRepo BarberRepository,
	schedule ScheduleProvider,
	txManager TransactionManager,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		blockedDayRepo:  blockedDayRepo,
		barberRepo:      barberRepo,
		schedule:        schedule,
		txManager:       txManager,
		metrics:         metrics,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет замену записи
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	next, err := parseRequest(req)
	if err != nil {
		uc.logger.Warn("ReplaceAppointment: validation failed: %v", err)
		return nil, err
	}

	uc.logger.Info("ReplaceAppointment: id=%s to %s %s", next.ID, next.Date, next.Time)

	// 2. Актуальная сетка и время
	engine, _, err := uc.schedule.Current(ctx)
	if err != nil {
		uc.logger.Error("ReplaceAppointment: failed to load schedule: %v", err)
		return nil, fmt.Errorf("%w: failed to load schedule: %v", ErrInternal, err)
	}
	now := uc.timeProvider.Now()

	// 3. Проверки и сохранение в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 3.1. Текущая запись с блокировкой
		current, err := uc.appointmentRepo.GetByID(txCtx, next.ID)
		if err != nil {
			if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
				return ErrAppointmentNotFound
			}
			return fmt.Errorf("%w: failed to get appointment: %w", ErrInternal, err)
		}

		// 3.2. Слот проверяем, только если он изменился
		if next.Date != current.Date || next.Time != current.Time {
			appts, err := uc.appointmentRepo.List(txCtx, domain.AppointmentFilter{Date: &next.Date})
			if err != nil {
				return fmt.Errorf("%w: failed to list appointments: %w", ErrInternal, err)
			}

			var blocked []*domain.BlockedDay
			day, err := uc.blockedDayRepo.GetByDate(txCtx, next.Date)
			switch {
			case err == nil:
				blocked = append(blocked, day)
			case !errors.Is(err, blockedDayRepo.ErrBlockedDayNotFound):
				return fmt.Errorf("%w: failed to get blocked day: %w", ErrInternal, err)
			}

			query := availability.Query{
				Date:         next.Date,
				Appointments: appts,
				BlockedDays:  blocked,
				Now:          now,
				ExcludeID:    current.ID,
			}
			if err := mapSlotError(engine.CheckSlot(query, next.Time)); err != nil {
				return err
			}
		}

		// 3.3. Парикмахер: nil оставляет текущего, пустая строка снимает
		next.Barber = current.Barber
		if req.BarberID != nil {
			next.Barber = nil
			if *req.BarberID != "" {
				barber, err := uc.barberRepo.GetByID(txCtx, *req.BarberID)
				if err != nil {
					if errors.Is(err, barberRepo.ErrBarberNotFound) {
						return fmt.Errorf("%w: %q", ErrBarberNotFound, *req.BarberID)
					}
					return fmt.Errorf("%w: failed to get barber: %w", ErrInternal, err)
				}
				next.Barber = barber
			}
		}
		next.CreatedAt = current.CreatedAt

		// 3.4. Сохраняем
		if err := uc.appointmentRepo.Update(txCtx, next); err != nil {
			switch {
			case errors.Is(err, appointmentRepo.ErrSlotTaken):
				return fmt.Errorf("%w: %s %s", ErrSlotTaken, next.Date, next.Time)
			case errors.Is(err, appointmentRepo.ErrAppointmentNotFound):
				return ErrAppointmentNotFound
			}
			return fmt.Errorf("%w: failed to update appointment: %w", ErrInternal, err)
		}
		return nil
	})

	if err != nil {
		if pgerr.IsSerializationFailure(err) {
			err = fmt.Errorf("%w: concurrent booking for %s %s", ErrSlotTaken, next.Date, next.Time)
		}

		switch {
		case errors.Is(err, ErrSlotTaken):
			uc.metrics.BookingConflict("replace")
			uc.logger.Warn("ReplaceAppointment: slot %s %s is taken", next.Date, next.Time)
		case errors.Is(err, ErrInternal):
			uc.logger.Error("ReplaceAppointment: %v", err)
		default:
			uc.logger.Warn("ReplaceAppointment: refused: %v", err)
		}
		return nil, err
	}

	uc.logger.Info("ReplaceAppointment: id=%s replaced", next.ID)
	return &Response{Appointment: next}, nil
}
