package reschedule_appointment

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-BarberBooking/internal/availability"
	"github.com/m04kA/SMC-BarberBooking/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-BarberBooking/internal/infra/storage/appointment"
	blockedDayRepo "github.com/m04kA/SMC-BarberBooking/internal/infra/storage/blockedday"
	"github.com/m04kA/SMC-BarberBooking/pkg/pgerr"
)

// UseCase перенос записи клиентом: новая дата, время и услуга.
// Разрешен только вне окна изменений и только на свободный слот
type UseCase struct {
	appointmentRepo AppointmentRepository
	blockedDayRepo  BlockedDayRepository
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
	schedule ScheduleProvider,
	txManager TransactionManager,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		blockedDayRepo:  blockedDayRepo,
		schedule:        schedule,
		txManager:       txManager,
		metrics:         metrics,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет перенос записи
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	parsed, err := parseRequest(req)
	if err != nil {
		uc.logger.Warn("RescheduleAppointment: validation failed: %v", err)
		return nil, err
	}

	uc.logger.Info("RescheduleAppointment: id=%s to %s %s", parsed.id, parsed.date, parsed.time)

	// 2. Актуальные сетка, окно изменений и время
	engine, policy, err := uc.schedule.Current(ctx)
	if err != nil {
		uc.logger.Error("RescheduleAppointment: failed to load schedule: %v", err)
		return nil, fmt.Errorf("%w: failed to load schedule: %v", ErrInternal, err)
	}
	now := uc.timeProvider.Now()

	var result *domain.Appointment

	// 3. Проверки и сохранение в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 3.1. Текущая запись с блокировкой
		current, err := uc.appointmentRepo.GetByID(txCtx, parsed.id)
		if err != nil {
			if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
				return ErrAppointmentNotFound
			}
			return fmt.Errorf("%w: failed to get appointment: %w", ErrInternal, err)
		}

		// 3.2. Окно изменений считается от текущего времени записи
		if decision := policy.CanModify(current, now); !decision.Allowed {
			return fmt.Errorf("%w: %w", ErrModificationLocked, decision.Err())
		}

		// 3.3. Новый слот проверяем, только если он изменился. Своё время записи считается свободным
		if parsed.date != current.Date || parsed.time != current.Time {
			appts, err := uc.appointmentRepo.List(txCtx, domain.AppointmentFilter{Date: &parsed.date})
			if err != nil {
				return fmt.Errorf("%w: failed to list appointments: %w", ErrInternal, err)
			}

			var blocked []*domain.BlockedDay
			day, err := uc.blockedDayRepo.GetByDate(txCtx, parsed.date)
			switch {
			case err == nil:
				blocked = append(blocked, day)
			case !errors.Is(err, blockedDayRepo.ErrBlockedDayNotFound):
				return fmt.Errorf("%w: failed to get blocked day: %w", ErrInternal, err)
			}

			query := availability.Query{
				Date:         parsed.date,
				Appointments: appts,
				BlockedDays:  blocked,
				Now:          now,
				ExcludeID:    current.ID,
			}
			if err := mapSlotError(engine.CheckSlot(query, parsed.time)); err != nil {
				return err
			}
		}

		// 3.4. Применяем изменения
		updated := *current
		updated.Date = parsed.date
		updated.Time = parsed.time
		if parsed.service != "" {
			updated.Service = parsed.service
		}

		if err := uc.appointmentRepo.Update(txCtx, &updated); err != nil {
			switch {
			case errors.Is(err, appointmentRepo.ErrSlotTaken):
				return fmt.Errorf("%w: %s %s", ErrSlotTaken, parsed.date, parsed.time)
			case errors.Is(err, appointmentRepo.ErrAppointmentNotFound):
				return ErrAppointmentNotFound
			}
			return fmt.Errorf("%w: failed to update appointment: %w", ErrInternal, err)
		}

		result = &updated
		return nil
	})

	if err != nil {
		if pgerr.IsSerializationFailure(err) {
			err = fmt.Errorf("%w: concurrent booking for %s %s", ErrSlotTaken, parsed.date, parsed.time)
		}

		switch {
		case errors.Is(err, ErrSlotTaken):
			uc.metrics.BookingConflict("reschedule")
			uc.logger.Warn("RescheduleAppointment: slot %s %s is taken", parsed.date, parsed.time)
		case errors.Is(err, ErrModificationLocked):
			uc.metrics.PolicyRefusal("reschedule")
			uc.logger.Warn("RescheduleAppointment: id=%s is inside the modification window", parsed.id)
		case errors.Is(err, ErrInternal):
			uc.logger.Error("RescheduleAppointment: %v", err)
		default:
			uc.logger.Warn("RescheduleAppointment: refused: %v", err)
		}
		return nil, err
	}

	uc.logger.Info("RescheduleAppointment: id=%s moved to %s %s", result.ID, result.Date, result.Time)
	return &Response{Appointment: result}, nil
}
