package schedule

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
	"github.com/m04kA/SMC-BarberBooking/pkg/types"
)

func TestRepository_Get(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("FROM schedule_settings WHERE id = $1")).
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"opening_time", "closing_time", "interval_minutes", "lead_time_minutes", "updated_at"}))

	_, err = repo.Get(context.Background())
	require.ErrorIs(t, err, ErrScheduleNotFound)

	mock.ExpectQuery(regexp.QuoteMeta("FROM schedule_settings WHERE id = $1")).
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"opening_time", "closing_time", "interval_minutes", "lead_time_minutes", "updated_at"}).
			AddRow("09:00:00", "18:00:00", 45, 360, time.Now()))

	cfg, err := repo.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, types.TimeString("09:00"), cfg.OpeningTime)
	assert.Equal(t, types.TimeString("18:00"), cfg.ClosingTime)
	assert.Equal(t, 45, cfg.IntervalMinutes)
	assert.Equal(t, 6*time.Hour, cfg.LeadTime())

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Save(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewRepository(db)
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO schedule_settings (id,opening_time,closing_time,interval_minutes,lead_time_minutes) VALUES ($1,$2,$3,$4,$5) ON CONFLICT (id) DO UPDATE")).
		WithArgs(1, "10:00", "20:00", 30, 360).
		WillReturnRows(sqlmock.NewRows([]string{"updated_at"}).AddRow(now))

	saved, err := repo.Save(context.Background(), &domain.ScheduleConfig{
		OpeningTime: "10:00", ClosingTime: "20:00", IntervalMinutes: 30, LeadTimeMinutes: 360,
	})
	require.NoError(t, err)
	assert.Equal(t, now, saved.UpdatedAt)
	require.NoError(t, mock.ExpectationsWereMet())
}
