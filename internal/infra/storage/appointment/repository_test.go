package appointment

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

const testID = "6f1c2a9e-3f4b-4c1d-9a55-1e2f3a4b5c6d"

func newMock(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewRepository(db), mock
}

func appointmentRows() *sqlmock.Rows {
	return sqlmock.NewRows(columns)
}

func TestRepository_Create(t *testing.T) {
	repo, mock := newMock(t)
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta(
		"INSERT INTO appointments (id,client_name,client_email,date,time,service,barber_id,barber_name) " +
			"VALUES ($1,$2,$3,$4,$5,$6,$7,$8) RETURNING created_at, updated_at")).
		WithArgs(sqlmock.AnyArg(), "Juan", "juan@mail.com", "2026-01-05", "14:00", "Corte", nil, nil).
		WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))

	created, err := repo.Create(context.Background(), &domain.Appointment{
		ClientName:  "Juan",
		ClientEmail: "Juan@Mail.com",
		Date:        "2026-01-05",
		Time:        "14:00",
		Service:     domain.ServiceCut,
	})

	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "juan@mail.com", created.ClientEmail)
	assert.Equal(t, now, created.CreatedAt)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Create_UniqueViolation(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectQuery("INSERT INTO appointments").
		WillReturnError(&pq.Error{Code: "23505", Constraint: "appointments_date_time_key"})

	_, err := repo.Create(context.Background(), &domain.Appointment{
		ClientName: "Ana", ClientEmail: "ana@mail.com", Date: "2026-01-05", Time: "14:00", Service: domain.ServiceBeard,
	})

	require.ErrorIs(t, err, ErrSlotTaken)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetByID(t *testing.T) {
	repo, mock := newMock(t)
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta("FROM appointments WHERE id = $1")).
		WithArgs(testID).
		WillReturnRows(appointmentRows().AddRow(
			testID, "Juan", "juan@mail.com",
			time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC), "14:00:00", "Corte",
			"p1", "Carlos", now, now,
		))

	appt, err := repo.GetByID(context.Background(), testID)

	require.NoError(t, err)
	assert.Equal(t, types.DateString("2026-01-05"), appt.Date)
	assert.Equal(t, types.TimeString("14:00"), appt.Time)
	assert.Equal(t, domain.ServiceCut, appt.Service)
	require.NotNil(t, appt.Barber)
	assert.Equal(t, "Carlos", appt.Barber.Name)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetByID_NotFound(t *testing.T) {
	repo, mock := newMock(t)

	_, err := repo.GetByID(context.Background(), "not-a-uuid")
	require.ErrorIs(t, err, ErrAppointmentNotFound)

	mock.ExpectQuery("FROM appointments").WithArgs(testID).WillReturnRows(appointmentRows())
	_, err = repo.GetByID(context.Background(), testID)
	require.ErrorIs(t, err, ErrAppointmentNotFound)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_List_LocksDateInsideTransaction(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(
		"FROM appointments WHERE date = $1 ORDER BY date ASC, time ASC FOR UPDATE")).
		WithArgs("2026-01-05").
		WillReturnRows(appointmentRows().
			AddRow(testID, "Juan", "juan@mail.com", time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC), "10:00:00", "Corte", nil, nil, nil, nil))
	mock.ExpectCommit()

	tx, err := db.Begin()
	require.NoError(t, err)

	date := types.DateString("2026-01-05")
	list, err := repo.List(dbmetrics.WithTx(context.Background(), tx), domain.AppointmentFilter{Date: &date})
	require.NoError(t, err)
	require.NoError(t, tx.Commit())

	require.Len(t, list, 1)
	assert.Nil(t, list[0].Barber)
	assert.Equal(t, types.TimeString("10:00"), list[0].Time)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_List_Filters(t *testing.T) {
	repo, mock := newMock(t)

	service := domain.ServiceCutAndBeard
	email := "Ana@Mail.com"

	mock.ExpectQuery(regexp.QuoteMeta(
		"FROM appointments WHERE service = $1 AND client_email = $2 ORDER BY date ASC, time ASC")).
		WithArgs("Corte + Barba", "ana@mail.com").
		WillReturnRows(appointmentRows())

	list, err := repo.List(context.Background(), domain.AppointmentFilter{Service: &service, ClientEmail: &email})
	require.NoError(t, err)
	assert.Empty(t, list)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Update(t *testing.T) {
	repo, mock := newMock(t)
	appt := &domain.Appointment{
		ID: testID, ClientName: "Juan", ClientEmail: "juan@mail.com",
		Date: "2026-01-06", Time: "11:00", Service: domain.ServiceCut,
	}

	mock.ExpectExec(regexp.QuoteMeta("UPDATE appointments SET client_name = $1")).
		WithArgs("Juan", "juan@mail.com", "2026-01-06", "11:00", "Corte", nil, nil, testID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.Update(context.Background(), appt))

	mock.ExpectExec("UPDATE appointments").
		WillReturnError(&pq.Error{Code: "23505"})
	require.ErrorIs(t, repo.Update(context.Background(), appt), ErrSlotTaken)

	mock.ExpectExec("UPDATE appointments").
		WillReturnResult(sqlmock.NewResult(0, 0))
	require.ErrorIs(t, repo.Update(context.Background(), appt), ErrAppointmentNotFound)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Delete(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM appointments WHERE id = $1")).
		WithArgs(testID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.Delete(context.Background(), testID))

	mock.ExpectExec("DELETE FROM appointments").
		WithArgs(testID).
		WillReturnResult(sqlmock.NewResult(0, 0))
	require.ErrorIs(t, repo.Delete(context.Background(), testID), ErrAppointmentNotFound)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Stats(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT COUNT(*), COUNT(DISTINCT client_email), COUNT(*) FILTER (WHERE date >= $1) FROM appointments")).
		WithArgs("2026-01-05").
		WillReturnRows(sqlmock.NewRows([]string{"total", "clients", "upcoming"}).AddRow(5, 3, 2))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT service AS bucket, COUNT(*) FROM appointments GROUP BY bucket")).
		WillReturnRows(sqlmock.NewRows([]string{"bucket", "count"}).AddRow("Corte", 4).AddRow("Barba", 1))
	mock.ExpectQuery(regexp.QuoteMeta("WHERE barber_id IS NOT NULL GROUP BY bucket")).
		WillReturnRows(sqlmock.NewRows([]string{"bucket", "count"}).AddRow("Carlos", 2))

	stats, err := repo.Stats(context.Background(), "2026-01-05")
	require.NoError(t, err)

	assert.Equal(t, 5, stats.Total)
	assert.Equal(t, 3, stats.UniqueClients)
	assert.Equal(t, 2, stats.Upcoming)
	assert.Equal(t, 4, stats.ByService[domain.ServiceCut])
	assert.Equal(t, 2, stats.ByBarber["Carlos"])
	require.NoError(t, mock.ExpectationsWereMet())
}
