package blockedday

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
	"github.com/m04kA/SMC-BarberBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-BarberBooking/pkg/pgerr"
	"github.com/m04kA/SMC-BarberBooking/pkg/psqlbuilder"
	"github.com/m04kA/SMC-BarberBooking/pkg/types"
)

const tableName = "blocked_days"

// Repository репозиторий закрытых дней
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория закрытых дней
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// List все закрытые дни по возрастанию даты
func (r *Repository) List(ctx context.Context) ([]*domain.BlockedDay, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "date", "blocked_times").
		From(tableName).
		OrderBy("date ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	days := make([]*domain.BlockedDay, 0)
	for rows.Next() {
		day, err := scanBlockedDay(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %v", ErrScanRow, err)
		}
		days = append(days, day)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %v", ErrScanRow, err)
	}

	return days, nil
}

// GetByDate закрытый день по дате. Внутри транзакции строка блокируется (FOR UPDATE)
func (r *Repository) GetByDate(ctx context.Context, date types.DateString) (*domain.BlockedDay, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select("id", "date", "blocked_times").
		From(tableName).
		Where(squirrel.Eq{"date": date})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByDate - build select query: %v", ErrBuildQuery, err)
	}

	day, err := scanBlockedDay(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBlockedDayNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByDate - scan row: %w", ErrScanRow, err)
	}

	return day, nil
}

// Create сохраняет закрытый день. ID генерируется, если не задан
func (r *Repository) Create(ctx context.Context, day *domain.BlockedDay) (*domain.BlockedDay, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if day.ID == "" {
		day.ID = uuid.NewString()
	}

	query, args, err := psqlbuilder.Insert(tableName).
		Columns("id", "date", "blocked_times").
		Values(day.ID, day.Date, pq.Array(timesToStrings(day.BlockedTimes))).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	_, err = executor.ExecContext(ctx, query, args...)
	if pgerr.IsUniqueViolation(err) {
		return nil, fmt.Errorf("%w: %s", ErrDuplicateDate, day.Date)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	return day, nil
}

// UpdateTimes заменяет набор закрытых времен
func (r *Repository) UpdateTimes(ctx context.Context, id string, times []types.TimeString) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(tableName).
		Set("blocked_times", pq.Array(timesToStrings(times))).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateTimes - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateTimes - execute update: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateTimes - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrBlockedDayNotFound
	}

	return nil
}

// Delete удаляет закрытый день
func (r *Repository) Delete(ctx context.Context, id string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

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
		return ErrBlockedDayNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBlockedDay(row rowScanner) (*domain.BlockedDay, error) {
	var day domain.BlockedDay
	var times []string

	if err := row.Scan(&day.ID, &day.Date, pq.Array(&times)); err != nil {
		return nil, err
	}

	day.BlockedTimes = make([]types.TimeString, 0, len(times))
	for _, raw := range times {
		t, err := types.NewTimeStringFromString(raw)
		if err != nil {
			continue
		}
		day.BlockedTimes = append(day.BlockedTimes, t)
	}
	domain.SortTimes(day.BlockedTimes)

	return &day, nil
}

func timesToStrings(times []types.TimeString) []string {
	out := make([]string, len(times))
	for i, t := range times {
		out[i] = t.String()
	}
	return out
}
