package cancel_appointment

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BarberBooking/internal/availability"
	"github.com/m04kA/SMC-BarberBooking/internal/service/appointments"
	"github.com/m04kA/SMC-BarberBooking/pkg/logger"
)

type fakeService struct {
	gotID string
	err   error
}

func (f *fakeService) Cancel(_ context.Context, id string) error {
	f.gotID = id
	return f.err
}

func serve(svc *fakeService, path string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/api/turnos/cancelar/{id}", NewHandler(svc, logger.NewNop()).Handle).Methods(http.MethodDelete)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, path, nil))
	return rec
}

func TestHandler_Cancelled(t *testing.T) {
	svc := &fakeService{}
	rec := serve(svc, "/api/turnos/cancelar/a1")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "a1", svc.gotID)
}

func TestHandler_InsideWindow(t *testing.T) {
	locked := &availability.LockedError{Reason: "Faltan 5 horas para tu turno", HoursLeft: 5}
	svc := &fakeService{err: fmt.Errorf("%w: %w", appointments.ErrModificationLocked, locked)}

	rec := serve(svc, "/api/turnos/cancelar/a1")

	require.Equal(t, http.StatusForbidden, rec.Code)
	var resp struct {
		Error string `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Faltan 5 horas para tu turno", resp.Error)
}

func TestHandler_LockedWithoutReason(t *testing.T) {
	rec := serve(&fakeService{err: appointments.ErrModificationLocked}, "/api/turnos/cancelar/a1")

	require.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), msgLocked)
}

func TestHandler_NotFound(t *testing.T) {
	rec := serve(&fakeService{err: appointments.ErrAppointmentNotFound}, "/api/turnos/cancelar/zz")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
