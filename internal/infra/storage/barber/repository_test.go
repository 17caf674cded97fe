package barber

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepository_List(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, name FROM barbers ORDER BY name ASC")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow("p1", "Carlos").AddRow("p2", "Mateo"))

	barbers, err := NewRepository(db).List(context.Background())
	require.NoError(t, err)

	require.Len(t, barbers, 2)
	assert.Equal(t, "Carlos", barbers[0].DisplayName())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, name FROM barbers WHERE id = $1")).
		WithArgs("p1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow("p1", "Carlos"))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, name FROM barbers WHERE id = $1")).
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}))

	barber, err := repo.GetByID(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, "Carlos", barber.Name)

	_, err = repo.GetByID(context.Background(), "missing")
	require.ErrorIs(t, err, ErrBarberNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}
