package appointments

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-BarberBooking/internal/infra/storage/appointment"
	"github.com/m04kA/SMC-BarberBooking/internal/service/appointments/models"
)

// Service сервис чтения, отмены и удаления записей.
// Создание и изменение записей выполняются в use case'ах
type Service struct {
	appointmentRepo AppointmentRepository
	schedule        ScheduleProvider
	txManager       TransactionManager
	metrics         Metrics
	timeProvider    TimeProvider
	logger          Logger
}

// NewService создает новый экземпляр сервиса записей
func NewService(
	appointmentRepo AppointmentRepository,
	schedule ScheduleProvider,
	txManager TransactionManager,
	metrics Metrics,
	logger Logger,
) *Service {
	return &Service{
		appointmentRepo: appointmentRepo,
		schedule:        schedule,
		txManager:       txManager,
		metrics:         metrics,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// List записи с фильтрами администратора, по дате и времени
func (s *Service) List(ctx context.Context, req *models.ListAppointmentsRequest) (*models.AppointmentListResponse, error) {
	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("List: invalid filter: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	list, err := s.appointmentRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	_, policy, err := s.schedule.Current(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: List - schedule: %v", ErrInternal, err)
	}

	return models.FromDomainAppointmentList(list, policy, s.timeProvider.Now()), nil
}

// ListByEmail все записи клиента
func (s *Service) ListByEmail(ctx context.Context, email string) (*models.AppointmentListResponse, error) {
	email = strings.TrimSpace(email)
	if email == "" || len(email) > domain.MaxEmailLength {
		return nil, fmt.Errorf("%w: email is required", ErrInvalidInput)
	}

	list, err := s.appointmentRepo.List(ctx, domain.AppointmentFilter{ClientEmail: &email})
	if err != nil {
		s.logger.Error("ListByEmail: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListByEmail - repository error: %v", ErrInternal, err)
	}

	_, policy, err := s.schedule.Current(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByEmail - schedule: %v", ErrInternal, err)
	}

	s.logger.Info("ListByEmail: found %d appointments", len(list))
	return models.FromDomainAppointmentList(list, policy, s.timeProvider.Now()), nil
}

// GetByID запись по ID
func (s *Service) GetByID(ctx context.Context, id string) (*models.AppointmentResponse, error) {
	appt, err := s.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("GetByID: repository error for id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	_, policy, err := s.schedule.Current(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - schedule: %v", ErrInternal, err)
	}

	return models.FromDomainAppointmentWithState(appt, policy, s.timeProvider.Now()), nil
}

// Cancel отмена записи клиентом. Разрешена, только если до начала больше окна изменений.
// Отмена удаляет запись
func (s *Service) Cancel(ctx context.Context, id string) error {
	s.logger.Info("Cancel: cancelling appointment id=%s", id)

	_, policy, err := s.schedule.Current(ctx)
	if err != nil {
		return fmt.Errorf("%w: Cancel - schedule: %v", ErrInternal, err)
	}

	now := s.timeProvider.Now()

	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		// 1. Получаем запись с блокировкой строки
		appt, err := s.appointmentRepo.GetByID(txCtx, id)
		if err != nil {
			if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
				return ErrAppointmentNotFound
			}
			return fmt.Errorf("%w: Cancel - get appointment: %v", ErrInternal, err)
		}

		// 2. Проверяем окно отмены
		if decision := policy.CanModify(appt, now); !decision.Allowed {
			s.metrics.PolicyRefusal("cancel")
			return fmt.Errorf("%w: %w", ErrModificationLocked, decision.Err())
		}

		// 3. Удаляем
		if err := s.appointmentRepo.Delete(txCtx, id); err != nil {
			if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
				return ErrAppointmentNotFound
			}
			return fmt.Errorf("%w: Cancel - delete appointment: %v", ErrInternal, err)
		}
		return nil
	})

	if err != nil {
		switch {
		case errors.Is(err, ErrAppointmentNotFound):
			s.logger.Warn("Cancel: appointment id=%s not found", id)
		case errors.Is(err, ErrModificationLocked):
			s.logger.Warn("Cancel: appointment id=%s is inside the modification window", id)
		default:
			s.logger.Error("Cancel: failed for id=%s: %v", id, err)
		}
		return err
	}

	s.logger.Info("Cancel: appointment id=%s cancelled", id)
	return nil
}

// Delete удаление записи администратором, без проверки окна
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.appointmentRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("Delete: appointment id=%s not found", id)
			return ErrAppointmentNotFound
		}
		s.logger.Error("Delete: repository error for id=%s: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Delete: appointment id=%s removed by admin", id)
	return nil
}

// Stats сводка по записям: всего, предстоящие, уникальные клиенты, по услугам и парикмахерам
func (s *Service) Stats(ctx context.Context) (*models.StatsResponse, error) {
	engine, _, err := s.schedule.Current(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: Stats - schedule: %v", ErrInternal, err)
	}

	stats, err := s.appointmentRepo.Stats(ctx, engine.Today(s.timeProvider.Now()))
	if err != nil {
		s.logger.Error("Stats: repository error: %v", err)
		return nil, fmt.Errorf("%w: Stats - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainStats(stats), nil
}
