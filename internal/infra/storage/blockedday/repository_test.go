package blockedday

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
	"github.com/m04kA/SMC-BarberBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-BarberBooking/pkg/types"
)

func newMock(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewRepository(db), mock
}

func TestRepository_List_SortsAndNormalizesTimes(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, date, blocked_times FROM blocked_days ORDER BY date ASC")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "date", "blocked_times"}).
			AddRow("b1", time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC), []byte(`{"10:30","10:00","garbage"}`)).
			AddRow("b2", time.Date(2026, 1, 6, 0, 0, 0, 0, time.UTC), []byte(`{}`)))

	days, err := repo.List(context.Background())
	require.NoError(t, err)

	require.Len(t, days, 2)
	assert.Equal(t, types.DateString("2026-01-05"), days[0].Date)
	assert.Equal(t, []types.TimeString{"10:00", "10:30"}, days[0].BlockedTimes)
	assert.True(t, days[1].IsEmpty())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetByDate(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("FROM blocked_days WHERE date = $1")).
		WithArgs("2026-01-07").
		WillReturnRows(sqlmock.NewRows([]string{"id", "date", "blocked_times"}))

	_, err = repo.GetByDate(context.Background(), "2026-01-07")
	require.ErrorIs(t, err, ErrBlockedDayNotFound)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("FROM blocked_days WHERE date = $1 FOR UPDATE")).
		WithArgs("2026-01-05").
		WillReturnRows(sqlmock.NewRows([]string{"id", "date", "blocked_times"}).
			AddRow("b1", time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC), `{"12:00"}`))
	mock.ExpectRollback()

	tx, err := db.Begin()
	require.NoError(t, err)
	day, err := repo.GetByDate(dbmetrics.WithTx(context.Background(), tx), "2026-01-05")
	require.NoError(t, err)
	require.NoError(t, tx.Rollback())

	assert.Equal(t, []types.TimeString{"12:00"}, day.BlockedTimes)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Create(t *testing.T) {
	repo, mock := newMock(t)
	times := []types.TimeString{"10:00", "10:30"}

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO blocked_days (id,date,blocked_times) VALUES ($1,$2,$3)")).
		WithArgs(sqlmock.AnyArg(), "2026-01-05", pq.Array([]string{"10:00", "10:30"})).
		WillReturnResult(sqlmock.NewResult(0, 1))

	day, err := repo.Create(context.Background(), &domain.BlockedDay{Date: "2026-01-05", BlockedTimes: times})
	require.NoError(t, err)
	assert.NotEmpty(t, day.ID)

	mock.ExpectExec("INSERT INTO blocked_days").WillReturnError(&pq.Error{Code: "23505"})
	_, err = repo.Create(context.Background(), &domain.BlockedDay{Date: "2026-01-05", BlockedTimes: times})
	require.ErrorIs(t, err, ErrDuplicateDate)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_UpdateTimesAndDelete(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE blocked_days SET blocked_times = $1, updated_at = NOW() WHERE id = $2")).
		WithArgs(pq.Array([]string{"14:00"}), "b1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.UpdateTimes(context.Background(), "b1", []types.TimeString{"14:00"}))

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM blocked_days WHERE id = $1")).
		WithArgs("missing").
		WillReturnResult(sqlmock.NewResult(0, 0))
	require.ErrorIs(t, repo.Delete(context.Background(), "missing"), ErrBlockedDayNotFound)

	require.NoError(t, mock.ExpectationsWereMet())
}
