package schedule

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
	"github.com/m04kA/SMC-BarberBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-BarberBooking/pkg/psqlbuilder"
)

const (
	tableName = "schedule_settings"

	// singletonID единственная строка расписания
	singletonID = 1
)

type DBExecutor = dbmetrics.DBExecutor

// Repository репозиторий расписания рабочего дня
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория расписания
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Get текущее расписание
func (r *Repository) Get(ctx context.Context) (*domain.ScheduleConfig, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"opening_time",
		"closing_time",
		"interval_minutes",
		"lead_time_minutes",
		"updated_at",
	).
		From(tableName).
		Where(squirrel.Eq{"id": singletonID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Get - build select query: %v", ErrBuildQuery, err)
	}

	var cfg domain.ScheduleConfig
	var updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&cfg.OpeningTime,
		&cfg.ClosingTime,
		&cfg.IntervalMinutes,
		&cfg.LeadTimeMinutes,
		&updatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrScheduleNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Get - scan schedule: %v", ErrScanRow, err)
	}

	cfg.UpdatedAt = updatedAt.Time
	return &cfg, nil
}

// Save создает или перезаписывает расписание
func (r *Repository) Save(ctx context.Context, cfg *domain.ScheduleConfig) (*domain.ScheduleConfig, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(tableName).
		Columns("id", "opening_time", "closing_time", "interval_minutes", "lead_time_minutes").
		Values(singletonID, cfg.OpeningTime, cfg.ClosingTime, cfg.IntervalMinutes, cfg.LeadTimeMinutes).
		Suffix("ON CONFLICT (id) DO UPDATE SET " +
			"opening_time = EXCLUDED.opening_time, " +
			"closing_time = EXCLUDED.closing_time, " +
			"interval_minutes = EXCLUDED.interval_minutes, " +
			"lead_time_minutes = EXCLUDED.lead_time_minutes, " +
			"updated_at = NOW() " +
			"RETURNING updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Save - build upsert query: %v", ErrBuildQuery, err)
	}

	var updatedAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&updatedAt); err != nil {
		return nil, fmt.Errorf("%w: Save - execute upsert: %w", ErrExecQuery, err)
	}

	cfg.UpdatedAt = updatedAt.Time
	return cfg, nil
}
