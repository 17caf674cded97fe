package appointment

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
	"github.com/m04kA/SMC-BarberBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-BarberBooking/pkg/pgerr"
	"github.com/m04kA/SMC-BarberBooking/pkg/psqlbuilder"
	"github.com/m04kA/SMC-BarberBooking/pkg/types"
)

const tableName = "appointments"

var columns = []string{
	"id",
	"client_name",
	"client_email",
	"date",
	"time",
	"service",
	"barber_id",
	"barber_name",
	"created_at",
	"updated_at",
}

// Repository репозиторий записей
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория записей
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает запись. ID генерируется, если не задан.
// Занятый (date, time) возвращает ErrSlotTaken: уникальный индекс окончательно решает гонку
func (r *Repository) Create(ctx context.Context, appt *domain.Appointment) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if appt.ID == "" {
		appt.ID = uuid.NewString()
	}
	barberID, barberName := barberColumns(appt.Barber)

	query, args, err := psqlbuilder.Insert(tableName).
		Columns(
			"id",
			"client_name",
			"client_email",
			"date",
			"time",
			"service",
			"barber_id",
			"barber_name",
		).
		Values(
			appt.ID,
			appt.ClientName,
			strings.ToLower(appt.ClientEmail),
			appt.Date,
			appt.Time,
			appt.Service,
			barberID,
			barberName,
		).
		Suffix("RETURNING created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&createdAt, &updatedAt)
	if pgerr.IsUniqueViolation(err) {
		return nil, fmt.Errorf("%w: %s %s", ErrSlotTaken, appt.Date, appt.Time)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	appt.ClientEmail = strings.ToLower(appt.ClientEmail)
	appt.CreatedAt = createdAt.Time
	appt.UpdatedAt = updatedAt.Time

	return appt, nil
}

// GetByID получает запись по ID. Внутри транзакции строка блокируется (FOR UPDATE)
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrAppointmentNotFound
	}

	selectBuilder := psqlbuilder.Select(columns...).
		From(tableName).
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	appt, err := scanAppointment(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrAppointmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan appointment: %w", ErrScanRow, err)
	}

	return appt, nil
}

// List записи с фильтрацией, по дате и времени.
// Фильтр по одной дате внутри транзакции блокирует строки этой даты (FOR UPDATE)
func (r *Repository) List(ctx context.Context, filter domain.AppointmentFilter) ([]*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From(tableName).
		OrderBy("date ASC", "time ASC")

	if filter.Date != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"date": *filter.Date})
	}
	if filter.Time != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"time": *filter.Time})
	}
	if filter.Service != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"service": *filter.Service})
	}
	if filter.ClientEmail != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"client_email": strings.ToLower(*filter.ClientEmail)})
	}

	if dbmetrics.IsInTransaction(ctx) && filter.Date != nil {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanAppointments(rows)
}

// ListFrom записи начиная с даты from (для расчета доступности)
func (r *Repository) ListFrom(ctx context.Context, from types.DateString) ([]*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(tableName).
		Where(squirrel.GtOrEq{"date": from}).
		OrderBy("date ASC", "time ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListFrom - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListFrom - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanAppointments(rows)
}

// Update перезаписывает дату, время, услугу и данные клиента
func (r *Repository) Update(ctx context.Context, appt *domain.Appointment) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if _, err := uuid.Parse(appt.ID); err != nil {
		return ErrAppointmentNotFound
	}
	barberID, barberName := barberColumns(appt.Barber)

	query, args, err := psqlbuilder.Update(tableName).
		Set("client_name", appt.ClientName).
		Set("client_email", strings.ToLower(appt.ClientEmail)).
		Set("date", appt.Date).
		Set("time", appt.Time).
		Set("service", appt.Service).
		Set("barber_id", barberID).
		Set("barber_name", barberName).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": appt.ID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if pgerr.IsUniqueViolation(err) {
		return fmt.Errorf("%w: %s %s", ErrSlotTaken, appt.Date, appt.Time)
	}
	if err != nil {
		return fmt.Errorf("%w: Update - execute update: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Update - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrAppointmentNotFound
	}

	return nil
}

// Delete удаляет запись. Отмена записи тоже физическое удаление
func (r *Repository) Delete(ctx context.Context, id string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if _, err := uuid.Parse(id); err != nil {
		return ErrAppointmentNotFound
	}

	query, args, err := psqlbuilder.Delete(tableName).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrAppointmentNotFound
	}

	return nil
}

// Stats сводка по записям. Предстоящими считаются записи с датой >= today
func (r *Repository) Stats(ctx context.Context, today types.DateString) (*domain.AppointmentStats, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	stats := &domain.AppointmentStats{
		ByService: make(map[domain.Service]int),
		ByBarber:  make(map[string]int),
	}

	// 1. Общие счетчики
	query, args, err := psqlbuilder.Select(
		"COUNT(*)",
		"COUNT(DISTINCT client_email)",
	).
		Column(squirrel.Expr("COUNT(*) FILTER (WHERE date >= ?)", today)).
		From(tableName).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Stats - build totals query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&stats.Total, &stats.UniqueClients, &stats.Upcoming)
	if err != nil {
		return nil, fmt.Errorf("%w: Stats - scan totals: %w", ErrScanRow, err)
	}

	// 2. По услугам
	byService, err := r.countBy(ctx, executor, "service", nil)
	if err != nil {
		return nil, err
	}
	for key, count := range byService {
		stats.ByService[domain.Service(key)] = count
	}

	// 3. По парикмахерам (только записи старого формата)
	stats.ByBarber, err = r.countBy(ctx, executor, "COALESCE(barber_name, barber_id)", squirrel.NotEq{"barber_id": nil})
	if err != nil {
		return nil, err
	}

	return stats, nil
}

func (r *Repository) countBy(ctx context.Context, executor DBExecutor, expr string, where squirrel.Sqlizer) (map[string]int, error) {
	selectBuilder := psqlbuilder.Select(expr+" AS bucket", "COUNT(*)").
		From(tableName).
		GroupBy("bucket")

	if where != nil {
		selectBuilder = selectBuilder.Where(where)
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: countBy - build query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: countBy - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	result := make(map[string]int)
	for rows.Next() {
		var key string
		var count int
		if err := rows.Scan(&key, &count); err != nil {
			return nil, fmt.Errorf("%w: countBy - scan row: %v", ErrScanRow, err)
		}
		result[key] = count
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: countBy - rows error: %v", ErrScanRow, err)
	}

	return result, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanAppointment(row rowScanner) (*domain.Appointment, error) {
	var appt domain.Appointment
	var barberID, barberName sql.NullString
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&appt.ID,
		&appt.ClientName,
		&appt.ClientEmail,
		&appt.Date,
		&appt.Time,
		&appt.Service,
		&barberID,
		&barberName,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if barberID.Valid {
		appt.Barber = &domain.Barber{ID: barberID.String, Name: barberName.String}
	}
	appt.CreatedAt = createdAt.Time
	appt.UpdatedAt = updatedAt.Time

	return &appt, nil
}

// scanAppointments сканирует результаты запроса в слайс записей
func scanAppointments(rows *sql.Rows) ([]*domain.Appointment, error) {
	appointments := make([]*domain.Appointment, 0)

	for rows.Next() {
		appt, err := scanAppointment(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanAppointments - scan row: %v", ErrScanRow, err)
		}
		appointments = append(appointments, appt)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanAppointments - rows error: %v", ErrScanRow, err)
	}

	return appointments, nil
}

func barberColumns(barber *domain.Barber) (interface{}, interface{}) {
	if barber == nil || barber.ID == "" {
		return nil, nil
	}
	if barber.Name == "" {
		return barber.ID, nil
	}
	return barber.ID, barber.Name
}
