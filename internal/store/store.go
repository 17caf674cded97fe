package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/m04kA/SMC-BarberBooking/internal/availability"
	"github.com/m04kA/SMC-BarberBooking/internal/domain"
	"github.com/m04kA/SMC-BarberBooking/internal/integrations/turnosapi"
	"github.com/m04kA/SMC-BarberBooking/pkg/types"
)

// Store кэш записей и закрытых дней на стороне клиента.
// Снимок меняется только целиком: после успешной мутации данные перечитываются с сервера
type Store struct {
	backend      Backend
	location     *time.Location
	timeProvider TimeProvider
	logger       Logger

	mu   sync.RWMutex
	snap *Snapshot
}

// NewStore создает хранилище. location используется, пока сервер не вернул свой часовой пояс
func NewStore(backend Backend, location *time.Location, logger Logger) *Store {
	if location == nil {
		location = time.Local
	}
	return &Store{
		backend:      backend,
		location:     location,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
		snap: &Snapshot{
			Appointments: []*domain.Appointment{},
			BlockedDays:  []*domain.BlockedDay{},
			Engine:       availability.NewEngine(availability.DefaultGrid(), location),
			Policy:       availability.NewPolicy(domain.DefaultLeadTime, location),
		},
	}
}

// Snapshot текущий снимок. Изменять его нельзя
func (s *Store) Snapshot() *Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap
}

// Refresh перечитывает расписание, записи и закрытые дни и заменяет снимок.
// При ошибке снимок остается прежним
func (s *Store) Refresh(ctx context.Context) error {
	current := s.Snapshot()

	// 1. Расписание: при ошибке сохраняем прежнюю сетку
	engine, policy := current.Engine, current.Policy
	schedule, err := s.backend.GetSchedule(ctx)
	if err != nil {
		s.logger.Warn("Refresh: schedule unavailable, keeping current grid: %v", err)
	} else if e, p, err := s.buildSchedule(schedule); err != nil {
		s.logger.Warn("Refresh: invalid schedule from server: %v", err)
	} else {
		engine, policy = e, p
	}

	// 2. Оба списка целиком
	appointments, err := s.backend.ListAppointments(ctx)
	if err != nil {
		s.logger.Error("Refresh: failed to fetch appointments: %v", err)
		return mapBackendError(err)
	}
	blocked, err := s.backend.ListBlockedDays(ctx)
	if err != nil {
		s.logger.Error("Refresh: failed to fetch blocked days: %v", err)
		return mapBackendError(err)
	}

	sortAppointments(appointments)
	next := &Snapshot{
		Appointments: appointments,
		BlockedDays:  blocked,
		Engine:       engine,
		Policy:       policy,
		FetchedAt:    s.timeProvider.Now(),
	}

	// 3. Побеждает последний завершившийся запрос
	s.mu.Lock()
	s.snap = next
	s.mu.Unlock()

	s.logger.Info("Refresh: %d appointments, %d blocked days", len(appointments), len(blocked))
	return nil
}

// FreeSlots свободные слоты даты по снимку
func (s *Store) FreeSlots(date types.DateString, excludeID string) []types.TimeString {
	snap := s.Snapshot()
	return snap.Engine.FreeSlots(snap.query(date, excludeID, s.timeProvider.Now()))
}

// DayStatus состояние дня для календаря
func (s *Store) DayStatus(date types.DateString) domain.DayStatus {
	snap := s.Snapshot()
	return snap.Engine.ClassifyDay(date, snap.BlockedDays)
}

// Calendar состояние дней месяца
func (s *Store) Calendar(month time.Time) []availability.DayInfo {
	snap := s.Snapshot()
	return snap.Engine.Calendar(month, snap.BlockedDays, s.timeProvider.Now())
}

// Book создает запись: проверка по снимку, запрос к серверу, перечитывание
func (s *Store) Book(ctx context.Context, in *turnosapi.AppointmentInput) (*domain.Appointment, error) {
	// 1. Нормализуем дату и время
	date, t, err := parseSlot(in)
	if err != nil {
		return nil, err
	}

	// 2. Проверка по снимку
	snap := s.Snapshot()
	if err := checkSlot(snap, snap.query(date, "", s.timeProvider.Now()), t); err != nil {
		s.logger.Warn("Book: %s %s refused locally: %v", date, t, err)
		return nil, err
	}

	// 3. Сервер решает окончательно
	req := *in
	req.Date, req.Time = date.String(), t.String()
	created, err := s.backend.CreateAppointment(ctx, &req)
	if err != nil {
		s.logger.Warn("Book: %s %s refused by server: %v", date, t, err)
		return nil, mapBackendError(err)
	}

	s.refreshAfter(ctx, "Book")
	return created, nil
}

// Replace полная замена записи администратором, без окна изменений
func (s *Store) Replace(ctx context.Context, id string, in *turnosapi.AppointmentInput) (*domain.Appointment, error) {
	date, t, err := parseSlot(in)
	if err != nil {
		return nil, err
	}

	snap := s.Snapshot()
	if current, ok := snap.Appointment(id); !ok || current.Date != date || current.Time != t {
		if err := checkSlot(snap, snap.query(date, id, s.timeProvider.Now()), t); err != nil {
			return nil, err
		}
	}

	req := *in
	req.Date, req.Time = date.String(), t.String()
	updated, err := s.backend.ReplaceAppointment(ctx, id, &req)
	if err != nil {
		return nil, mapBackendError(err)
	}

	s.refreshAfter(ctx, "Replace")
	return updated, nil
}

// Reschedule перенос записи клиентом. Окно изменений проверяется до запроса к серверу
func (s *Store) Reschedule(ctx context.Context, id string, in *turnosapi.RescheduleInput) (*domain.Appointment, error) {
	if in == nil {
		return nil, ErrInvalidInput
	}
	date, t, err := parseDateTime(in.Date, in.Time)
	if err != nil {
		return nil, err
	}

	snap := s.Snapshot()
	now := s.timeProvider.Now()

	// Записи нет в снимке: решает сервер
	if current, ok := snap.Appointment(id); ok {
		if decision := snap.Policy.CanModify(current, now); !decision.Allowed {
			return nil, fmt.Errorf("%w: %w", ErrPolicyViolation, decision.Err())
		}
		if current.Date != date || current.Time != t {
			if err := checkSlot(snap, snap.query(date, id, now), t); err != nil {
				return nil, err
			}
		}
	}

	req := *in
	req.Date, req.Time = date.String(), t.String()
	updated, err := s.backend.RescheduleAppointment(ctx, id, &req)
	if err != nil {
		return nil, mapBackendError(err)
	}

	s.refreshAfter(ctx, "Reschedule")
	return updated, nil
}

// Cancel отмена записи клиентом. Внутри окна изменений отказ без запроса к серверу
func (s *Store) Cancel(ctx context.Context, id string) error {
	snap := s.Snapshot()
	if current, ok := snap.Appointment(id); ok {
		if decision := snap.Policy.CanModify(current, s.timeProvider.Now()); !decision.Allowed {
			s.logger.Warn("Cancel: id=%s inside the modification window", id)
			return fmt.Errorf("%w: %w", ErrPolicyViolation, decision.Err())
		}
	}

	if err := s.backend.CancelAppointment(ctx, id); err != nil {
		return mapBackendError(err)
	}

	s.refreshAfter(ctx, "Cancel")
	return nil
}

// Delete удаление записи администратором
func (s *Store) Delete(ctx context.Context, id string) error {
	if err := s.backend.DeleteAppointment(ctx, id); err != nil {
		return mapBackendError(err)
	}

	s.refreshAfter(ctx, "Delete")
	return nil
}

// BlockDay закрывает весь день
func (s *Store) BlockDay(ctx context.Context, date string) (*domain.BlockedDay, error) {
	return s.block(ctx, "BlockDay", date, nil)
}

// BlockTime закрывает одно время дня
func (s *Store) BlockTime(ctx context.Context, date, t string) (*domain.BlockedDay, error) {
	parsed, err := types.NewTimeStringFromString(t)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", availability.ErrNotOnGrid, err)
	}
	return s.block(ctx, "BlockTime", date, []string{parsed.String()})
}

// Unblock открывает одно время или, при пустом t, весь день
func (s *Store) Unblock(ctx context.Context, date, t string) error {
	normalized, err := types.ParseDateString(date)
	if err != nil {
		return fmt.Errorf("%w: %q", availability.ErrInvalidDate, date)
	}

	if err := s.backend.UnblockDay(ctx, normalized.String(), strings.TrimSpace(t)); err != nil {
		return mapBackendError(err)
	}

	s.refreshAfter(ctx, "Unblock")
	return nil
}

func (s *Store) block(ctx context.Context, op, date string, times []string) (*domain.BlockedDay, error) {
	normalized, err := types.ParseDateString(date)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", availability.ErrInvalidDate, date)
	}

	day, err := s.backend.BlockDay(ctx, normalized.String(), times)
	if err != nil {
		return nil, mapBackendError(err)
	}

	s.refreshAfter(ctx, op)
	return day, nil
}

// refreshAfter перечитывает данные после успешной мутации.
// Ошибка перечитывания не отменяет мутацию: снимок остается устаревшим до следующего Refresh
func (s *Store) refreshAfter(ctx context.Context, op string) {
	if err := s.Refresh(ctx); err != nil {
		s.logger.Warn("%s: refetch after mutation failed, snapshot is stale: %v", op, err)
	}
}

func (s *Store) buildSchedule(schedule *turnosapi.Schedule) (*availability.Engine, availability.Policy, error) {
	open, err := types.NewTimeStringFromString(schedule.OpeningTime)
	if err != nil {
		return nil, availability.Policy{}, err
	}
	closing, err := types.NewTimeStringFromString(schedule.ClosingTime)
	if err != nil {
		return nil, availability.Policy{}, err
	}
	grid, err := availability.NewGrid(open, closing, schedule.IntervalMinutes)
	if err != nil {
		return nil, availability.Policy{}, err
	}

	loc := s.location
	if schedule.Timezone != "" {
		if l, err := time.LoadLocation(schedule.Timezone); err == nil {
			loc = l
		}
	}

	lead := domain.DefaultLeadTime
	if schedule.LeadTimeMinutes > 0 {
		lead = time.Duration(schedule.LeadTimeMinutes) * time.Minute
	}
	return availability.NewEngine(grid, loc), availability.NewPolicy(lead, loc), nil
}

func parseSlot(in *turnosapi.AppointmentInput) (types.DateString, types.TimeString, error) {
	if in == nil || strings.TrimSpace(in.ClientName) == "" || strings.TrimSpace(in.Mail) == "" ||
		strings.TrimSpace(in.Service) == "" {
		return "", "", fmt.Errorf("%w: name, email and service are required", ErrInvalidInput)
	}
	return parseDateTime(in.Date, in.Time)
}

func parseDateTime(rawDate, rawTime string) (types.DateString, types.TimeString, error) {
	date, err := types.ParseDateString(rawDate)
	if err != nil {
		return "", "", fmt.Errorf("%w: %q", availability.ErrInvalidDate, rawDate)
	}
	t, err := types.NewTimeStringFromString(rawTime)
	if err != nil {
		return "", "", fmt.Errorf("%w: %q", availability.ErrNotOnGrid, rawTime)
	}
	return date, t, nil
}

// checkSlot проверка по снимку. Занятый слот - конфликт, остальное - ошибки Engine
func checkSlot(snap *Snapshot, q availability.Query, t types.TimeString) error {
	err := snap.Engine.CheckSlot(q, t)
	if errors.Is(err, availability.ErrSlotTaken) {
		return fmt.Errorf("%w: %w", ErrConflict, err)
	}
	return err
}

// mapBackendError ошибки сервера в ошибки хранилища. Текст сервера доступен через turnosapi.Message
func mapBackendError(err error) error {
	switch {
	case errors.Is(err, turnosapi.ErrConflict):
		return fmt.Errorf("%w: %w", ErrConflict, err)
	case errors.Is(err, turnosapi.ErrPolicy):
		return fmt.Errorf("%w: %w", ErrPolicyViolation, err)
	case errors.Is(err, turnosapi.ErrNotFound):
		return fmt.Errorf("%w: %w", ErrNotFound, err)
	case errors.Is(err, turnosapi.ErrValidation):
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	default:
		return fmt.Errorf("%w: %w", ErrBackend, err)
	}
}
