package create_appointment

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

// UseCase use case для создания записи
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

// Execute выполняет use case создания записи.
// Проверка слота и вставка идут в одной сериализуемой транзакции, уникальный индекс (date, time) страхует от гонки
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	appt, err := parseRequest(req)
	if err != nil {
		uc.logger.Warn("CreateAppointment: validation failed: %v", err)
		return nil, err
	}

	uc.logger.Info("CreateAppointment: date=%s, time=%s, service=%s", appt.Date, appt.Time, appt.Service)

	// 2. Актуальная сетка и текущее время
	engine, _, err := uc.schedule.Current(ctx)
	if err != nil {
		uc.logger.Error("CreateAppointment: failed to load schedule: %v", err)
		return nil, fmt.Errorf("%w: failed to load schedule: %v", ErrInternal, err)
	}
	now := uc.timeProvider.Now()

	var result *domain.Appointment

	// 3. Выполняем операции с БД в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 3.1. Записи на дату с блокировкой (FOR UPDATE)
		appts, err := uc.appointmentRepo.List(txCtx, domain.AppointmentFilter{Date: &appt.Date})
		if err != nil {
			return fmt.Errorf("%w: failed to list appointments: %w", ErrInternal, err)
		}

		// 3.2. Закрытое время дня
		var blocked []*domain.BlockedDay
		day, err := uc.blockedDayRepo.GetByDate(txCtx, appt.Date)
		switch {
		case err == nil:
			blocked = append(blocked, day)
		case !errors.Is(err, blockedDayRepo.ErrBlockedDayNotFound):
			return fmt.Errorf("%w: failed to get blocked day: %w", ErrInternal, err)
		}

		// 3.3. Проверяем слот тем же правилом, что и клиент
		query := availability.Query{Date: appt.Date, Appointments: appts, BlockedDays: blocked, Now: now}
		if err := mapSlotError(engine.CheckSlot(query, appt.Time)); err != nil {
			return err
		}

		// 3.4. Парикмахер, если указан
		if req.BarberID != nil && *req.BarberID != "" {
			barber, err := uc.barberRepo.GetByID(txCtx, *req.BarberID)
			if err != nil {
				if errors.Is(err, barberRepo.ErrBarberNotFound) {
					return fmt.Errorf("%w: %q", ErrBarberNotFound, *req.BarberID)
				}
				return fmt.Errorf("%w: failed to get barber: %w", ErrInternal, err)
			}
			appt.Barber = barber
		}

		// 3.5. Сохраняем
		created, err := uc.appointmentRepo.Create(txCtx, appt)
		if err != nil {
			if errors.Is(err, appointmentRepo.ErrSlotTaken) {
				return fmt.Errorf("%w: %s %s", ErrSlotTaken, appt.Date, appt.Time)
			}
			return fmt.Errorf("%w: failed to create appointment: %w", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		// Повторы сериализуемой транзакции исчерпаны: слот оспаривают параллельно
		if pgerr.IsSerializationFailure(err) {
			err = fmt.Errorf("%w: concurrent booking for %s %s", ErrSlotTaken, appt.Date, appt.Time)
		}

		switch {
		case errors.Is(err, ErrSlotTaken):
			uc.metrics.BookingConflict("create")
			uc.logger.Warn("CreateAppointment: slot %s %s is taken", appt.Date, appt.Time)
		case errors.Is(err, ErrInternal):
			uc.logger.Error("CreateAppointment: %v", err)
		default:
			uc.logger.Warn("CreateAppointment: refused: %v", err)
		}
		return nil, err
	}

	uc.metrics.AppointmentCreated(string(result.Service))
	uc.logger.Info("CreateAppointment: created appointment id=%s for %s %s", result.ID, result.Date, result.Time)

	return &Response{Appointment: result}, nil
}
